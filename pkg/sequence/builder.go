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
	"fmt"
	"slices"

	"github.com/consensys/go-testprog/pkg/sequence/combinator"
	"github.com/consensys/go-testprog/pkg/sequence/compositor"
	"github.com/consensys/go-testprog/pkg/util/collection/iter"
	"github.com/consensys/go-testprog/pkg/util/random"
	log "github.com/sirupsen/logrus"
)

// DefaultCombinator is used when only a compositor has been named.
const DefaultCombinator = "random"

// DefaultCompositor is used when only a combinator has been named.
const DefaultCompositor = "random"

// Combinators lists the names of the available combinator strategies.
var Combinators = []string{"product", "diagonal", "random"}

// Compositors lists the names of the available compositor strategies.
var Compositors = []string{"catenation", "rotation", "random"}

// Builder assembles a generator of test sequences from a number of block
// sequences, each of which enumerates candidate sequences (i.e. arrays of
// calls) for one block of a test template.
type Builder[T any] struct {
	combinator string
	compositor string
	// Whether all sequences should be united into one
	single    bool
	sequences []iter.Sequence[[]T]
	random    *random.Random
}

// NewBuilder constructs an empty builder drawing randomness from the given
// source.
func NewBuilder[T any](rnd *random.Random) *Builder[T] {
	return &Builder[T]{random: rnd}
}

// SetCombinator names the combinator used to combine blocks.
func (p *Builder[T]) SetCombinator(name string) *Builder[T] {
	p.combinator = name
	return p
}

// SetCompositor names the compositor used to merge a combination of blocks into
// a single sequence.
func (p *Builder[T]) SetCompositor(name string) *Builder[T] {
	p.compositor = name
	return p
}

// SetSingle determines whether a single sequence is generated, which unites
// every sequence of every block.
func (p *Builder[T]) SetSingle(single bool) *Builder[T] {
	p.single = single
	return p
}

// AddSequence adds a block sequence.
func (p *Builder[T]) AddSequence(seq iter.Sequence[[]T]) *Builder[T] {
	p.sequences = append(p.sequences, seq)
	return p
}

// Build the generator.  If neither a combinator nor a compositor has been
// named, the blocks are simply visited one after another.  An error is returned
// for an unknown strategy name.
func (p *Builder[T]) Build() (iter.Sequence[[]T], error) {
	if p.single {
		log.Debug("building single sequence generator")
		return newSingle[T](compositor.NewCatenation(p.sequences...)), nil
	} else if p.combinator == "" && p.compositor == "" {
		log.Debug("building catenating generator")
		return compositor.NewCatenation(p.sequences...), nil
	}
	//
	combName, compName := p.combinator, p.compositor
	//
	if combName == "" {
		combName = DefaultCombinator
	}
	//
	if compName == "" {
		compName = DefaultCompositor
	}
	//
	comb, err := NewCombinator(combName, p.random, p.sequences...)
	if err != nil {
		return nil, err
	}
	// Check compositor name early, rather than on first use.
	if !slices.Contains(Compositors, compName) {
		return nil, fmt.Errorf("unknown compositor \"%s\"", compName)
	}
	//
	log.Debugf("building %s/%s generator over %d blocks", combName, compName, len(p.sequences))
	//
	return newMerge(comb, compName, p.random), nil
}

// NewCombinator constructs a combinator by name.
func NewCombinator[T any](name string, rnd *random.Random, seqs ...iter.Sequence[T]) (iter.Sequence[[]T], error) {
	switch name {
	case "product":
		return combinator.NewProduct(seqs...), nil
	case "diagonal":
		return combinator.NewDiagonal(seqs...), nil
	case "random":
		return combinator.NewRandom(rnd, seqs...), nil
	default:
		return nil, fmt.Errorf("unknown combinator \"%s\"", name)
	}
}

// NewCompositor constructs a compositor by name.
func NewCompositor[T any](name string, rnd *random.Random, seqs ...iter.Sequence[T]) (iter.Sequence[T], error) {
	switch name {
	case "catenation":
		return compositor.NewCatenation(seqs...), nil
	case "rotation":
		return compositor.NewRotation(seqs...), nil
	case "random":
		return compositor.NewRandom(rnd, seqs...), nil
	default:
		return nil, fmt.Errorf("unknown compositor \"%s\"", name)
	}
}
