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

import (
	"github.com/consensys/go-testprog/pkg/util/collection/iter"
)

// Rule determines how a combinator selects its next tuple of values from its
// component sequences.  The combinator owns the cursor protocol (Init, HasValue,
// Value, Next, Stop); a rule only decides which combination comes next.
type Rule[T any] interface {
	// Init positions the components on the first combination, returning false
	// if there is none.
	Init(sequences []iter.Sequence[T]) bool

	// Next advances to the following combination, returning false when the
	// combinations are exhausted.
	Next(sequences []iter.Sequence[T]) bool

	// Value fills the given tuple with the current combination.  The tuple has
	// exactly one slot per component.
	Value(sequences []iter.Sequence[T], tuple []T)
}

// Combinator is a sequence of tuples built by combining the values of several
// component sequences.  Every tuple yielded has exactly one element per
// component.  A combinator exclusively owns its components whilst enumerating.
type Combinator[T any] struct {
	sequences []iter.Sequence[T]
	rule      Rule[T]
	hasValue  bool
}

// New constructs a combinator using a given rule over zero or more component
// sequences.  The combinator is initialised, hence is positioned on its first
// tuple (if any).
func New[T any](rule Rule[T], sequences ...iter.Sequence[T]) *Combinator[T] {
	p := &Combinator[T]{sequences, rule, false}
	p.Init()
	//
	return p
}

// AddSequence appends a component sequence.  The combinator must be restarted
// (via Init) before continuing enumeration.
func (p *Combinator[T]) AddSequence(seq iter.Sequence[T]) {
	p.sequences = append(p.sequences, seq)
	p.hasValue = false
}

// Size returns the number of component sequences.
func (p *Combinator[T]) Size() uint {
	return uint(len(p.sequences))
}

// Init restarts enumeration from the first combination.  A combinator without
// components has no combinations.
//
//nolint:revive
func (p *Combinator[T]) Init() {
	p.hasValue = len(p.sequences) > 0 && p.rule.Init(p.sequences)
}

//nolint:revive
func (p *Combinator[T]) HasValue() bool {
	return p.hasValue
}

// Value returns a freshly allocated tuple holding the current combination.
//
//nolint:revive
func (p *Combinator[T]) Value() []T {
	if !p.hasValue {
		panic("combinator has no value")
	}
	//
	tuple := make([]T, len(p.sequences))
	p.rule.Value(p.sequences, tuple)
	//
	return tuple
}

//nolint:revive
func (p *Combinator[T]) Next() {
	if p.hasValue {
		p.hasValue = p.rule.Next(p.sequences)
	}
}

//nolint:revive
func (p *Combinator[T]) Stop() {
	p.hasValue = false
}

// ============================================================================
// Helpers
// ============================================================================

// initAll restarts every component, returning true if all of them have a
// value.
func initAll[T any](sequences []iter.Sequence[T]) bool {
	ok := true
	//
	for _, seq := range sequences {
		seq.Init()
		ok = ok && seq.HasValue()
	}
	//
	return ok
}

// currentValues reads the current value of every component.
func currentValues[T any](sequences []iter.Sequence[T], tuple []T) {
	for i, seq := range sequences {
		tuple[i] = seq.Value()
	}
}
