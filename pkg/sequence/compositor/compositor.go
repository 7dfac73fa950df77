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

import (
	"github.com/consensys/go-testprog/pkg/util/collection/iter"
)

// Exhausted is returned by Rule.Choose when no component has a value left.
const Exhausted = -1

// Rule determines which component a compositor draws its next value from.
type Rule[T any] interface {
	// Init resets any selection state.  Components have already been restarted.
	Init(sequences []iter.Sequence[T])

	// Choose returns the index of the component supplying the current value, or
	// Exhausted.
	Choose(sequences []iter.Sequence[T]) int

	// Next is called after the chosen component was advanced.
	Next(sequences []iter.Sequence[T], chosen int)
}

// Compositor merges several sequences of the same element type into a single
// sequence, according to a selection rule.  A compositor exclusively owns its
// components whilst enumerating.
type Compositor[T any] struct {
	sequences []iter.Sequence[T]
	rule      Rule[T]
	// Index of the component supplying the current value
	chosen int
}

// New constructs a compositor using a given rule over zero or more component
// sequences.  The compositor is initialised, hence positioned on its first
// value (if any).
func New[T any](rule Rule[T], sequences ...iter.Sequence[T]) *Compositor[T] {
	p := &Compositor[T]{sequences, rule, Exhausted}
	p.Init()
	//
	return p
}

// AddSequence appends a component sequence.  The compositor must be restarted
// (via Init) before continuing enumeration.
func (p *Compositor[T]) AddSequence(seq iter.Sequence[T]) {
	p.sequences = append(p.sequences, seq)
	p.chosen = Exhausted
}

// Size returns the number of component sequences.
func (p *Compositor[T]) Size() uint {
	return uint(len(p.sequences))
}

//nolint:revive
func (p *Compositor[T]) Init() {
	for _, seq := range p.sequences {
		seq.Init()
	}
	//
	p.rule.Init(p.sequences)
	p.chosen = p.rule.Choose(p.sequences)
}

//nolint:revive
func (p *Compositor[T]) HasValue() bool {
	return p.chosen != Exhausted && p.sequences[p.chosen].HasValue()
}

//nolint:revive
func (p *Compositor[T]) Value() T {
	if !p.HasValue() {
		panic("compositor has no value")
	}
	//
	return p.sequences[p.chosen].Value()
}

// Next delegates to the chosen component, and then chooses again.
//
//nolint:revive
func (p *Compositor[T]) Next() {
	if !p.HasValue() {
		return
	}
	//
	p.sequences[p.chosen].Next()
	p.rule.Next(p.sequences, p.chosen)
	p.chosen = p.rule.Choose(p.sequences)
}

//nolint:revive
func (p *Compositor[T]) Stop() {
	p.chosen = Exhausted
}
