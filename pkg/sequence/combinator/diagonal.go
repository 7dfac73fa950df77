// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package combinator

import "github.com/consensys/go-testprog/pkg/util/collection/iter"

// NewDiagonal returns a combinator which advances all components in lockstep.
// Components which run out are restarted, and enumeration finishes once every
// component has been exhausted at least once.  Thus, the number of tuples is
// the length of the longest component.  For example, given components [A,B]
// and [X,Y,Z] this produces [A,X], [B,Y], [A,Z].
func NewDiagonal[T any](sequences ...iter.Sequence[T]) *Combinator[T] {
	return New[T](&diagonalRule[T]{}, sequences...)
}

type diagonalRule[T any] struct {
	// Identifies components which have been exhausted at least once.
	exhausted []bool
}

//nolint:revive
func (p *diagonalRule[T]) Init(sequences []iter.Sequence[T]) bool {
	p.exhausted = make([]bool, len(sequences))
	//
	return initAll(sequences)
}

//nolint:revive
func (p *diagonalRule[T]) Next(sequences []iter.Sequence[T]) bool {
	done := true
	//
	for i, seq := range sequences {
		seq.Next()
		//
		if !seq.HasValue() {
			p.exhausted[i] = true
			// wrap around
			seq.Init()
		}
		//
		done = done && p.exhausted[i]
	}
	//
	return !done
}

//nolint:revive
func (p *diagonalRule[T]) Value(sequences []iter.Sequence[T], tuple []T) {
	currentValues(sequences, tuple)
}
