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
	"github.com/consensys/go-testprog/pkg/util/random"
)

// NewRotation returns a compositor which takes one value from each component in
// turn (round robin), skipping components which are exhausted.  For example,
// given [A,B,C] and [X] this produces A, X, B, C.
func NewRotation[T any](sequences ...iter.Sequence[T]) *Compositor[T] {
	return New[T](&rotationRule[T]{}, sequences...)
}

type rotationRule[T any] struct {
	index int
}

//nolint:revive
func (p *rotationRule[T]) Init(_ []iter.Sequence[T]) {
	p.index = 0
}

//nolint:revive
func (p *rotationRule[T]) Choose(sequences []iter.Sequence[T]) int {
	n := len(sequences)
	//
	for i := 0; i < n; i++ {
		j := (p.index + i) % n
		if sequences[j].HasValue() {
			return j
		}
	}
	//
	return Exhausted
}

//nolint:revive
func (p *rotationRule[T]) Next(sequences []iter.Sequence[T], chosen int) {
	p.index = (chosen + 1) % len(sequences)
}

// ============================================================================
// Random
// ============================================================================

// NewRandom returns a compositor which draws each value from a component chosen
// uniformly at random amongst those not yet exhausted.  As for the random
// combinator, the choices are fixed at construction by drawing a seed from the
// given source, so restarting reproduces the same sequence.
func NewRandom[T any](rnd *random.Random, sequences ...iter.Sequence[T]) *Compositor[T] {
	return New[T](&randomRule[T]{seed: rnd.Uint64()}, sequences...)
}

type randomRule[T any] struct {
	seed uint64
	rnd  *random.Random
	// Choice made for the current value, which must remain stable until Next.
	current int
}

//nolint:revive
func (p *randomRule[T]) Init(_ []iter.Sequence[T]) {
	p.rnd = random.New(p.seed)
	p.current = Exhausted
}

//nolint:revive
func (p *randomRule[T]) Choose(sequences []iter.Sequence[T]) int {
	if p.current != Exhausted && sequences[p.current].HasValue() {
		return p.current
	}
	//
	var live []int
	//
	for i, seq := range sequences {
		if seq.HasValue() {
			live = append(live, i)
		}
	}
	//
	if len(live) == 0 {
		p.current = Exhausted
	} else {
		p.current = random.Choose(p.rnd, live)
	}
	//
	return p.current
}

//nolint:revive
func (p *randomRule[T]) Next(_ []iter.Sequence[T], _ int) {
	// Force a fresh choice for the following value.
	p.current = Exhausted
}
