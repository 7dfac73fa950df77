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
package compositor

import "github.com/consensys/go-testprog/pkg/util/collection/iter"

// NewCatenation returns a compositor which drains its components strictly in
// registration order.  Thus, all values of one component are visited before
// any value of the next, and components are never interleaved.
func NewCatenation[T any](sequences ...iter.Sequence[T]) *Compositor[T] {
	return New[T](&catenationRule[T]{}, sequences...)
}

type catenationRule[T any] struct {
	// The current component index.
	index int
}

//nolint:revive
func (p *catenationRule[T]) Init(_ []iter.Sequence[T]) {
	p.index = 0
}

// Choose scans forward from the current index.  The index only ever moves here,
// when an exhausted component is skipped.
//
//nolint:revive
func (p *catenationRule[T]) Choose(sequences []iter.Sequence[T]) int {
	for ; p.index < len(sequences); p.index++ {
		if sequences[p.index].HasValue() {
			return p.index
		}
	}
	//
	return Exhausted
}

//nolint:revive
func (p *catenationRule[T]) Next(_ []iter.Sequence[T], _ int) {
	// Do nothing.
}
