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
package sequence

import (
	"slices"

	"github.com/consensys/go-testprog/pkg/util/collection/iter"
	"github.com/consensys/go-testprog/pkg/util/random"
)

// ============================================================================
// Merge
// ============================================================================

// merge combines blocks using a combinator and then merges each combination of
// blocks into one sequence using a (named) compositor.
type merge[T any] struct {
	combinations iter.Sequence[[][]T]
	compositor   string
	// Private source for compositors, reset on Init.
	seed uint64
	rnd  *random.Random
	// Merged value of the current combination, copied out by Value.
	current []T
}

func newMerge[T any](combinations iter.Sequence[[][]T], compositor string, rnd *random.Random) *merge[T] {
	seed := rnd.Uint64()
	p := &merge[T]{combinations: combinations, compositor: compositor, seed: seed, rnd: random.New(seed)}
	p.Init()
	//
	return p
}

//nolint:revive
func (p *merge[T]) Init() {
	p.rnd.SetSeed(p.seed)
	p.combinations.Init()
	p.update()
}

//nolint:revive
func (p *merge[T]) HasValue() bool {
	return p.combinations.HasValue()
}

//nolint:revive
func (p *merge[T]) Value() []T {
	if !p.HasValue() {
		panic("generator has no value")
	}
	//
	return slices.Clone(p.current)
}

//nolint:revive
func (p *merge[T]) Next() {
	if p.combinations.HasValue() {
		p.combinations.Next()
		p.update()
	}
}

//nolint:revive
func (p *merge[T]) Stop() {
	p.combinations.Stop()
	p.current = nil
}

func (p *merge[T]) update() {
	if !p.combinations.HasValue() {
		p.current = nil
		return
	}
	//
	blocks := p.combinations.Value()
	seqs := make([]iter.Sequence[T], len(blocks))
	//
	for i, block := range blocks {
		seqs[i] = iter.NewArraySequence(block...)
	}
	// Name was validated by the builder.
	merged, err := NewCompositor(p.compositor, p.rnd, seqs...)
	if err != nil {
		panic(err.Error())
	}
	//
	p.current = iter.Collect(merged)
}

// ============================================================================
// Single
// ============================================================================

// single yields exactly one value: the concatenation of every value of an
// underlying sequence of blocks.
type single[T any] struct {
	blocks   iter.Sequence[[]T]
	hasValue bool
	current  []T
}

func newSingle[T any](blocks iter.Sequence[[]T]) *single[T] {
	p := &single[T]{blocks: blocks}
	p.Init()
	//
	return p
}

//nolint:revive
func (p *single[T]) Init() {
	p.current = make([]T, 0)
	//
	for _, block := range iter.Collect(p.blocks) {
		p.current = append(p.current, block...)
	}
	//
	p.hasValue = true
}

//nolint:revive
func (p *single[T]) HasValue() bool {
	return p.hasValue
}

//nolint:revive
func (p *single[T]) Value() []T {
	if !p.hasValue {
		panic("generator has no value")
	}
	//
	return slices.Clone(p.current)
}

//nolint:revive
func (p *single[T]) Next() {
	p.hasValue = false
}

//nolint:revive
func (p *single[T]) Stop() {
	p.hasValue = false
}
