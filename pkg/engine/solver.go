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
package engine

import (
	"context"
	"slices"

	"github.com/consensys/go-testprog/pkg/mmu/coverage"
	log "github.com/sirupsen/logrus"
)

// Solver turns a template which survived filtering into an abstract sequence,
// or reports that it is unsatisfiable.  Solvers may take a long time, and
// should respect cancellation of the given context.
type Solver interface {
	Solve(ctx context.Context, template *coverage.Template) (*AbstractSequence, bool)
}

// SolverFunc adapts an ordinary function into a Solver.
type SolverFunc func(context.Context, *coverage.Template) (*AbstractSequence, bool)

// Solve calls the underlying function.
func (f SolverFunc) Solve(ctx context.Context, template *coverage.Template) (*AbstractSequence, bool) {
	return f(ctx, template)
}

// TemplateSolver is a simple solver for the address constraints of a template.
// Within each address space, accesses related by ADDR_EQUAL share an address,
// and all others receive distinct addresses ordered as required by ADDR_LESS
// and ADDR_GREATER.  A template is unsatisfiable when it relates two accesses
// sharing an address by any other hazard, when its ordering hazards are cyclic,
// when two accesses share a start address but not some other address, or when
// an address does not fit the width of its space.
type TemplateSolver struct {
	base   uint64
	stride uint64
}

// NewTemplateSolver constructs a solver which assigns addresses in the start
// address space from a given base, separated by a given stride.
func NewTemplateSolver(base uint64, stride uint64) *TemplateSolver {
	if stride == 0 {
		panic("zero address stride")
	}
	//
	return &TemplateSolver{base, stride}
}

// Solve the address constraints of a given template.
//
//nolint:revive
func (p *TemplateSolver) Solve(ctx context.Context, template *coverage.Template) (*AbstractSequence, bool) {
	if ctx.Err() != nil {
		return nil, false
	}
	//
	var (
		n       = template.Size()
		spaces  []*coverage.AddressSpace
		classes = make(map[*coverage.AddressSpace][]uint)
	)
	// Determine the address spaces involved.
	for i := range n {
		for _, s := range template.Path(i).AddressSpaces() {
			if _, ok := classes[s]; !ok {
				spaces = append(spaces, s)
				classes[s] = nil
			}
		}
	}
	//
	for _, s := range spaces {
		c, ok := solveSpace(template, s)
		//
		if !ok {
			log.Debugf("unsatisfiable address constraints in %s: %s", s, template)
			return nil, false
		}
		//
		classes[s] = c
	}
	// Translation is deterministic: equal start addresses imply equal addresses
	// elsewhere.
	for j := range n {
		path := template.Path(j)
		start := classes[path.StartAddress()]
		//
		for i := range j {
			if start[i] != start[j] {
				continue
			}
			//
			for _, s := range path.AddressSpaces() {
				if template.Path(i).Touches(s) && classes[s][i] != classes[s][j] {
					log.Debugf("non-deterministic translation in %s: %s", s, template)
					return nil, false
				}
			}
		}
	}
	// Addresses must fit the width of their space.
	for k, s := range spaces {
		top := p.base + uint64(k)<<32 + uint64(slices.Max(classes[s]))*p.stride
		//
		if w := s.Width(); w < 64 && top>>w != 0 {
			log.Debugf("address 0x%x exceeds the width of %s: %s", top, s, template)
			return nil, false
		}
	}
	//
	return p.sequence(template, spaces, classes), true
}

// Construct the abstract sequence for a solved template.
func (p *TemplateSolver) sequence(template *coverage.Template, spaces []*coverage.AddressSpace,
	classes map[*coverage.AddressSpace][]uint) *AbstractSequence {
	calls := make([]AbstractCall, template.Size())
	//
	address := func(s *coverage.AddressSpace, i uint) uint64 {
		region := uint64(slices.Index(spaces, s)) << 32
		return p.base + region + uint64(classes[s][i])*p.stride
	}
	//
	for i := range template.Size() {
		var (
			path    = template.Path(i)
			start   = path.StartAddress()
			va      = address(start, i)
			entries []BufferEntry
		)
		// Each other space holds the entry translating the start address.
		for _, s := range path.AddressSpaces() {
			if s != start {
				entries = append(entries, BufferEntry{s.Name(), address(s, i), va, !s.IsVirtual()})
			}
		}
		//
		name := "ld"
		if path.Access() == coverage.Store {
			name = "sd"
		}
		//
		calls[i] = AbstractCall{
			Name:      name,
			Arguments: []string{"t0"},
			Access:    &MemoryAccess{path, va, true, entries},
		}
	}
	//
	return NewAbstractSequence(calls...)
}

// Partition the accesses touching a given space into classes sharing the same
// address, returning the class of each access.  Classes are numbered in order
// of their first access.
func solveSpace(template *coverage.Template, space *coverage.AddressSpace) ([]uint, bool) {
	n := template.Size()
	parent := make([]uint, n)
	//
	for i := range parent {
		parent[i] = uint(i)
	}
	//
	var find func(uint) uint
	find = func(i uint) uint {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		//
		return parent[i]
	}
	//
	for j := range n {
		for i := range j {
			if dep := template.Dependency(i, j); dep != nil && dep.Has(coverage.AddrEqual, space) {
				parent[find(j)] = find(i)
			}
		}
	}
	// Check other hazards do not relate accesses sharing an address.
	for j := range n {
		for i := range j {
			dep := template.Dependency(i, j)
			//
			if dep == nil || find(i) != find(j) {
				continue
			}
			//
			for _, t := range []coverage.HazardType{coverage.AddrNotEqual, coverage.AddrLess, coverage.AddrGreater} {
				if dep.Has(t, space) {
					return nil, false
				}
			}
		}
	}
	// Number the classes in an order consistent with the ordering hazards,
	// otherwise in order of their first access.
	var (
		roots   []uint
		after   = make(map[uint][]uint)
		degree  = make(map[uint]uint)
		numbers = make(map[uint]uint)
		classes = make([]uint, n)
	)
	//
	for i := range n {
		if root := find(i); !slices.Contains(roots, root) {
			roots = append(roots, root)
		}
	}
	//
	precede := func(lo uint, hi uint) {
		after[lo] = append(after[lo], hi)
		degree[hi]++
	}
	//
	for j := range n {
		for i := range j {
			dep := template.Dependency(i, j)
			//
			if dep == nil {
				continue
			} else if dep.Has(coverage.AddrLess, space) {
				precede(find(j), find(i))
			}
			//
			if dep.Has(coverage.AddrGreater, space) {
				precede(find(i), find(j))
			}
		}
	}
	//
	for len(numbers) < len(roots) {
		next := slices.IndexFunc(roots, func(root uint) bool {
			_, done := numbers[root]
			return !done && degree[root] == 0
		})
		// Cyclic ordering
		if next < 0 {
			return nil, false
		}
		//
		numbers[roots[next]] = uint(len(numbers))
		//
		for _, hi := range after[roots[next]] {
			degree[hi]--
		}
	}
	//
	for i := range n {
		classes[i] = numbers[find(i)]
	}
	//
	return classes, true
}
