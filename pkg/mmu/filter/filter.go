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
package filter

import (
	"fmt"
	"slices"

	"github.com/consensys/go-testprog/pkg/mmu/coverage"
)

// ExecutionFilter is an execution-level filter, which decides whether a given
// execution path is acceptable on its own.  A return value of true means keep.
type ExecutionFilter func(*coverage.ExecutionPath) bool

// DependencyFilter is a dependency-level filter, which decides whether the
// dependency between two execution paths is acceptable.
type DependencyFilter func(*coverage.ExecutionPath, *coverage.ExecutionPath, *coverage.Dependency) bool

// UnitedDependencyFilter is a united-dependency-level filter, which decides
// whether an execution path is consistent with the united dependency of its
// access on all earlier accesses.  Such filters are pure and total.
type UnitedDependencyFilter func(*coverage.ExecutionPath, *coverage.UnitedDependency) bool

// VaEqualPaNotEqual rejects a combination which claims that two accesses use
// the same address in the start (virtual) address space, but different
// addresses in some other (physical) address space.  Address translation is
// deterministic, hence such a claim cannot be satisfied.  Address spaces are
// compared by identity.  Absent relations are unconstrained.  This panics if
// either the path or the dependency is nil.
func VaEqualPaNotEqual(path *coverage.ExecutionPath, dependency *coverage.UnitedDependency) bool {
	if path == nil {
		panic("filter requires an execution path")
	} else if dependency == nil {
		panic(fmt.Sprintf("filter requires a united dependency (path %s)", path))
	}
	//
	va := path.StartAddress()
	vaHazard := dependency.Hazard(va)
	//
	if vaHazard == nil {
		return true
	}
	//
	vaEqual := vaHazard.Relation(coverage.AddrEqual)
	//
	if vaEqual.None() {
		return true
	}
	//
	for _, paHazard := range dependency.AddrHazards() {
		if paHazard.Space() == va {
			continue
		}
		// VA.ADDR_EQUAL => PA.ADDR_EQUAL
		if paHazard.Relation(coverage.AddrNotEqual).IntersectionCardinality(vaEqual) > 0 {
			return false
		}
	}
	//
	return true
}

// EqualNotEqualConflict rejects a dependency which claims that two addresses in
// the same address space are both equal and not equal.
func EqualNotEqualConflict(_ *coverage.ExecutionPath, _ *coverage.ExecutionPath, dep *coverage.Dependency) bool {
	for _, h := range dep.Hazards() {
		if h.Type == coverage.AddrEqual && dep.Has(coverage.AddrNotEqual, h.Space) {
			return false
		}
	}
	//
	return true
}

// OrderedNotEqual rejects a dependency which claims that two addresses are both
// equal and ordered (i.e. less or greater) within the same address space.
func OrderedNotEqual(_ *coverage.ExecutionPath, _ *coverage.ExecutionPath, dep *coverage.Dependency) bool {
	for _, h := range dep.Hazards() {
		if h.Type != coverage.AddrEqual {
			continue
		}
		//
		if dep.Has(coverage.AddrLess, h.Space) || dep.Has(coverage.AddrGreater, h.Space) {
			return false
		}
	}
	//
	return true
}

// WithinSpaces constructs an execution-level filter which accepts only those
// paths touching no address space other than those given.
func WithinSpaces(spaces ...*coverage.AddressSpace) ExecutionFilter {
	return func(path *coverage.ExecutionPath) bool {
		for _, s := range path.AddressSpaces() {
			if !slices.Contains(spaces, s) {
				return false
			}
		}
		//
		return true
	}
}

// ============================================================================
// Combinators
// ============================================================================

// AndExecution conjoins zero or more execution-level filters.  An empty
// conjunction accepts everything.
func AndExecution(filters ...ExecutionFilter) ExecutionFilter {
	return func(path *coverage.ExecutionPath) bool {
		for _, f := range filters {
			if !f(path) {
				return false
			}
		}
		//
		return true
	}
}

// AndDependency conjoins zero or more dependency-level filters.
func AndDependency(filters ...DependencyFilter) DependencyFilter {
	return func(p1 *coverage.ExecutionPath, p2 *coverage.ExecutionPath, dep *coverage.Dependency) bool {
		for _, f := range filters {
			if !f(p1, p2, dep) {
				return false
			}
		}
		//
		return true
	}
}

// AndUnited conjoins zero or more united-dependency-level filters.
func AndUnited(filters ...UnitedDependencyFilter) UnitedDependencyFilter {
	return func(path *coverage.ExecutionPath, dep *coverage.UnitedDependency) bool {
		for _, f := range filters {
			if !f(path, dep) {
				return false
			}
		}
		//
		return true
	}
}
