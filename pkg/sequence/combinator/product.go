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

// NewProduct returns a combinator which enumerates the full cross product of
// its components.  The first component varies fastest.  For example, given
// components [A,B] and [X,Y] this produces [A,X], [B,X], [A,Y], [B,Y].
func NewProduct[T any](sequences ...iter.Sequence[T]) *Combinator[T] {
	return New[T](productRule[T]{}, sequences...)
}

type productRule[T any] struct{}

//nolint:revive
func (p productRule[T]) Init(sequences []iter.Sequence[T]) bool {
	return initAll(sequences)
}

//nolint:revive
func (p productRule[T]) Next(sequences []iter.Sequence[T]) bool {
	// Increment counters
	for _, seq := range sequences {
		seq.Next()
		// Check for overflow
		if seq.HasValue() {
			return true
		}
		// overflow, so carry into the next component.
		seq.Init()
	}
	// Every component overflowed, hence we're done.
	return false
}

//nolint:revive
func (p productRule[T]) Value(sequences []iter.Sequence[T], tuple []T) {
	currentValues(sequences, tuple)
}
