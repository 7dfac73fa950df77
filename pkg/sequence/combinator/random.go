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
	"math"

	"github.com/consensys/go-testprog/pkg/util/collection/iter"
	"github.com/consensys/go-testprog/pkg/util/random"
)

// NewRandom returns a combinator which, at each step, picks a value uniformly
// at random from every component.  The number of tuples produced equals the
// size of the full cross product, though tuples may repeat.  The stream of
// choices is fixed at construction by drawing a seed from the given source, so
// restarting the combinator reproduces the same tuples.
func NewRandom[T any](rnd *random.Random, sequences ...iter.Sequence[T]) *Combinator[T] {
	return New[T](&randomRule[T]{seed: rnd.Uint64()}, sequences...)
}

type randomRule[T any] struct {
	seed uint64
	rnd  *random.Random
	// Materialised component domains
	domains [][]T
	// Current choice per component
	choice []uint
	// Number of tuples left to produce (including the current one)
	remaining uint64
}

//nolint:revive
func (p *randomRule[T]) Init(sequences []iter.Sequence[T]) bool {
	p.rnd = random.New(p.seed)
	p.domains = make([][]T, len(sequences))
	p.choice = make([]uint, len(sequences))
	p.remaining = 1
	//
	for i, seq := range sequences {
		p.domains[i] = iter.Collect(seq)
		n := uint64(len(p.domains[i]))
		//
		if n == 0 {
			return false
		} else if p.remaining > math.MaxUint64/n {
			p.remaining = math.MaxUint64
		} else {
			p.remaining *= n
		}
	}
	//
	p.choose()
	//
	return true
}

//nolint:revive
func (p *randomRule[T]) Next(sequences []iter.Sequence[T]) bool {
	p.remaining--
	//
	if p.remaining == 0 {
		return false
	}
	//
	p.choose()
	//
	return true
}

//nolint:revive
func (p *randomRule[T]) Value(sequences []iter.Sequence[T], tuple []T) {
	for i, domain := range p.domains {
		tuple[i] = domain[p.choice[i]]
	}
}

func (p *randomRule[T]) choose() {
	for i, domain := range p.domains {
		p.choice[i] = p.rnd.UintN(uint(len(domain)))
	}
}
