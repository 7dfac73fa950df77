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
package coverage

import (
	"fmt"
	"strings"
)

// Template is one candidate combination of memory accesses: an execution path
// for each access, together with the dependencies between them.  Access j may
// depend on any earlier access i < j.  The united dependency of access j is
// derived from all of its dependencies, using i as the combination index.
// Templates are immutable and built afresh for each candidate.
type Template struct {
	paths []*ExecutionPath
	// deps[j][i] is the dependency of access j on access i (for i < j), or nil.
	deps   [][]*Dependency
	united []*UnitedDependency
}

// NewTemplate constructs a template from a set of paths, and a dependency
// matrix where deps[j][i] gives the dependency of access j on access i < j (or
// nil for none).  The matrix may be shorter than the number of paths, in which
// case missing entries are treated as nil.  This panics if any path is nil, or
// if the matrix has entries for i >= j.
func NewTemplate(paths []*ExecutionPath, deps [][]*Dependency) *Template {
	n := len(paths)
	matrix := make([][]*Dependency, n)
	united := make([]*UnitedDependency, n)
	//
	for j, path := range paths {
		if path == nil {
			panic(fmt.Sprintf("nil execution path for access %d", j))
		}
		//
		matrix[j] = make([]*Dependency, j)
		//
		if j < len(deps) {
			if len(deps[j]) > j {
				panic(fmt.Sprintf("access %d cannot depend on access %d", j, len(deps[j])-1))
			}
			//
			copy(matrix[j], deps[j])
		}
	}
	//
	if len(deps) > n {
		panic(fmt.Sprintf("dependencies given for %d accesses, but only %d paths", len(deps), n))
	}
	//
	for j := range paths {
		var indexed []IndexedDependency
		//
		for i, d := range matrix[j] {
			if d != nil {
				indexed = append(indexed, IndexedDependency{d, uint(i)})
			}
		}
		//
		united[j] = NewUnitedDependency(indexed...)
	}
	//
	return &Template{append([]*ExecutionPath(nil), paths...), matrix, united}
}

// Size returns the number of accesses in this template.
func (p *Template) Size() uint {
	return uint(len(p.paths))
}

// Path returns the execution path of the ith access.
func (p *Template) Path(i uint) *ExecutionPath {
	return p.paths[i]
}

// Paths returns the execution paths of all accesses.
func (p *Template) Paths() []*ExecutionPath {
	return append([]*ExecutionPath(nil), p.paths...)
}

// Dependency returns the dependency of access j on access i (where i < j), or
// nil if there is none.
func (p *Template) Dependency(i, j uint) *Dependency {
	if i >= j {
		panic(fmt.Sprintf("invalid dependency (%d,%d)", i, j))
	}
	//
	return p.deps[j][i]
}

// UnitedDependency returns the united dependency of the jth access on all
// earlier accesses.
func (p *Template) UnitedDependency(j uint) *UnitedDependency {
	return p.united[j]
}

func (p *Template) String() string {
	var builder strings.Builder
	//
	for j, path := range p.paths {
		if j != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(path.String())
		//
		for i, d := range p.deps[j] {
			if d != nil && !d.IsEmpty() {
				builder.WriteString(fmt.Sprintf("<%d:%s>", i, d))
			}
		}
	}
	//
	return builder.String()
}
