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

// projectSequence maps every value of an underlying sequence through a
// projection.  The projection is applied lazily on each call to Value, hence it
// should be a pure function.
type projectSequence[S, T any] struct {
	seq        Sequence[S]
	projection func(S) T
}

// NewProjectSequence constructs a sequence that is the projection of another.
// The resulting sequence takes ownership of the underlying one.
func NewProjectSequence[S, T any](seq Sequence[S], projection func(S) T) Sequence[T] {
	return &projectSequence[S, T]{seq, projection}
}

//nolint:revive
func (p *projectSequence[S, T]) Init() {
	p.seq.Init()
}

//nolint:revive
func (p *projectSequence[S, T]) HasValue() bool {
	return p.seq.HasValue()
}

//nolint:revive
func (p *projectSequence[S, T]) Value() T {
	return p.projection(p.seq.Value())
}

//nolint:revive
func (p *projectSequence[S, T]) Next() {
	p.seq.Next()
}

//nolint:revive
func (p *projectSequence[S, T]) Stop() {
	p.seq.Stop()
}

// ===============================================================
// Flatten
// ===============================================================

// flattenSequence visits, in order, every item of every array produced by an
// underlying sequence.  Empty arrays are skipped.
type flattenSequence[T any] struct {
	seq   Sequence[[]T]
	block []T
	index int
}

// NewFlattenSequence constructs a sequence over the items of the arrays
// produced by another sequence.
func NewFlattenSequence[T any](seq Sequence[[]T]) Sequence[T] {
	p := &flattenSequence[T]{seq: seq}
	p.load()
	//
	return p
}

//nolint:revive
func (p *flattenSequence[T]) Init() {
	p.seq.Init()
	p.load()
}

//nolint:revive
func (p *flattenSequence[T]) HasValue() bool {
	return p.index < len(p.block)
}

//nolint:revive
func (p *flattenSequence[T]) Value() T {
	if !p.HasValue() {
		exhausted()
	}
	//
	return p.block[p.index]
}

//nolint:revive
func (p *flattenSequence[T]) Next() {
	if !p.HasValue() {
		return
	}
	//
	p.index++
	//
	if p.index == len(p.block) {
		p.seq.Next()
		p.load()
	}
}

//nolint:revive
func (p *flattenSequence[T]) Stop() {
	p.seq.Stop()
	p.block, p.index = nil, 0
}

// Position on the first non-empty array from the current position of the
// underlying sequence.
func (p *flattenSequence[T]) load() {
	p.block, p.index = nil, 0
	//
	for ; p.seq.HasValue(); p.seq.Next() {
		if block := p.seq.Value(); len(block) > 0 {
			p.block = block
			return
		}
	}
}
