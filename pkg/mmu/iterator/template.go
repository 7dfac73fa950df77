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
package iterator

import (
	"github.com/consensys/go-testprog/pkg/mmu/coverage"
	"github.com/consensys/go-testprog/pkg/sequence/combinator"
	"github.com/consensys/go-testprog/pkg/util/collection/iter"
)

// DependencyGenerator determines the possible dependencies between the i-th and
// j-th accesses of a template (where i < j), given the paths they follow.
type DependencyGenerator func(i uint, j uint, lhs *coverage.ExecutionPath,
	rhs *coverage.ExecutionPath) []*coverage.Dependency

// AllDependencies is the generator which admits every dependency arising
// between two paths, regardless of their position.
func AllDependencies(_ uint, _ uint, lhs *coverage.ExecutionPath, rhs *coverage.ExecutionPath) []*coverage.Dependency {
	return coverage.AllDependencies(lhs, rhs)
}

// TemplateIterator enumerates templates for a fixed number of accesses.  This
// is a nested enumeration: for each combination of execution paths (drawn from
// an outer sequence), every combination of pairwise dependencies between those
// paths is enumerated.  A fresh template is constructed for each value.
type TemplateIterator struct {
	paths     iter.Sequence[[]*coverage.ExecutionPath]
	generator DependencyGenerator
	// Current combination of paths, or nil when none
	current []*coverage.ExecutionPath
	// Dependencies for the current combination, or nil when none
	deps iter.Sequence[[]*coverage.Dependency]
}

// NewTemplateIterator constructs an iterator over templates whose paths are
// drawn from a given sequence of path combinations.  All combinations produced
// by that sequence must have the same length.
func NewTemplateIterator(paths iter.Sequence[[]*coverage.ExecutionPath],
	generator DependencyGenerator) *TemplateIterator {
	if generator == nil {
		generator = AllDependencies
	}
	//
	it := &TemplateIterator{paths: paths, generator: generator}
	it.Init()
	//
	return it
}

// NewExhaustiveIterator constructs an iterator over every template arising from
// the cross product of the candidate paths for each access, along with every
// possible dependency between them.
func NewExhaustiveIterator(accesses [][]*coverage.ExecutionPath) *TemplateIterator {
	return NewTemplateIterator(combinator.NewProduct(AccessSequences(accesses)...), nil)
}

// AccessSequences constructs one sequence per access, which enumerates the
// candidate paths for that access.
func AccessSequences(accesses [][]*coverage.ExecutionPath) []iter.Sequence[*coverage.ExecutionPath] {
	seqs := make([]iter.Sequence[*coverage.ExecutionPath], len(accesses))
	//
	for i, paths := range accesses {
		seqs[i] = iter.NewArraySequence(paths...)
	}
	//
	return seqs
}

// Init restarts the enumeration from the first template.
//
//nolint:revive
func (p *TemplateIterator) Init() {
	p.paths.Init()
	p.current, p.deps = nil, nil
	p.seek()
}

// HasValue checks whether there is a current template.
//
//nolint:revive
func (p *TemplateIterator) HasValue() bool {
	return p.deps != nil && p.deps.HasValue()
}

// Value constructs the current template.
//
//nolint:revive
func (p *TemplateIterator) Value() *coverage.Template {
	if !p.HasValue() {
		panic("template iterator is exhausted")
	}
	//
	var (
		n      = len(p.current)
		tuple  = p.deps.Value()
		matrix = make([][]*coverage.Dependency, n)
		k      = 0
	)
	//
	for j := range n {
		matrix[j] = make([]*coverage.Dependency, j)
		//
		for i := range j {
			matrix[j][i] = tuple[k]
			k++
		}
	}
	//
	return coverage.NewTemplate(p.current, matrix)
}

// Next advances to the next template.
//
//nolint:revive
func (p *TemplateIterator) Next() {
	if !p.HasValue() {
		return
	}
	//
	p.deps.Next()
	//
	if !p.deps.HasValue() {
		p.paths.Next()
		p.current, p.deps = nil, nil
		p.seek()
	}
}

// Stop forces this iterator into the exhausted state.
//
//nolint:revive
func (p *TemplateIterator) Stop() {
	p.paths.Stop()
	p.current, p.deps = nil, nil
}

// Find the first path combination (from the current one) which admits at least
// one combination of dependencies.
func (p *TemplateIterator) seek() {
	for p.paths.HasValue() {
		p.current = p.paths.Value()
		p.deps = p.dependencies(p.current)
		//
		if p.deps.HasValue() {
			return
		}
		//
		p.paths.Next()
	}
	//
	p.current, p.deps = nil, nil
}

// Construct the sequence of dependency combinations for a given combination of
// paths.  Pairs are ordered by the later access, then by the earlier access.
func (p *TemplateIterator) dependencies(paths []*coverage.ExecutionPath) iter.Sequence[[]*coverage.Dependency] {
	var pairs []iter.Sequence[*coverage.Dependency]
	//
	for j := 1; j < len(paths); j++ {
		for i := range j {
			deps := p.generator(uint(i), uint(j), paths[i], paths[j])
			pairs = append(pairs, iter.NewArraySequence(deps...))
		}
	}
	//
	if len(pairs) == 0 {
		return iter.NewUnitSequence[[]*coverage.Dependency](nil)
	}
	//
	return combinator.NewProduct(pairs...)
}
