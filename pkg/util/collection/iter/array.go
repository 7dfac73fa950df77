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
package iter

// arraySequence provides a sequence over a fixed array of items.
type arraySequence[T any] struct {
	items []T
	index uint
}

// NewArraySequence constructs a sequence over an array of items.  The array is
// not copied, hence it should not be modified during enumeration.
func NewArraySequence[T any](items ...T) Sequence[T] {
	return &arraySequence[T]{items, 0}
}

// NewEmptySequence constructs a sequence which never has a value.
func NewEmptySequence[T any]() Sequence[T] {
	return &arraySequence[T]{nil, 0}
}

// Init restarts this sequence from its first item.
//
//nolint:revive
func (p *arraySequence[T]) Init() {
	p.index = 0
}

// HasValue checks whether or not there is a current item.
//
//nolint:revive
func (p *arraySequence[T]) HasValue() bool {
	return p.index < uint(len(p.items))
}

// Value returns the current item.
//
//nolint:revive
func (p *arraySequence[T]) Value() T {
	if !p.HasValue() {
		exhausted()
	}

	return p.items[p.index]
}

// Next advances to the next item.
//
//nolint:revive
func (p *arraySequence[T]) Next() {
	if p.HasValue() {
		p.index++
	}
}

// Stop moves the cursor past the last item.
//
//nolint:revive
func (p *arraySequence[T]) Stop() {
	p.index = uint(len(p.items))
}
