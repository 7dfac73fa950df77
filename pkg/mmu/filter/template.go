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
	"github.com/consensys/go-testprog/pkg/mmu/coverage"
	log "github.com/sirupsen/logrus"
)

// Template composes execution-, dependency- and united-dependency-level filters
// into a filter over entire templates.
type Template struct {
	executions []ExecutionFilter
	deps       []DependencyFilter
	united     []UnitedDependencyFilter
}

// NewTemplate constructs an empty template filter, which accepts everything.
func NewTemplate() *Template {
	return &Template{}
}

// Default returns the template filter used when none is configured.  This
// includes all the sound filters.
func Default() *Template {
	return NewTemplate().
		AddDependencyFilter(EqualNotEqualConflict).
		AddDependencyFilter(OrderedNotEqual).
		AddUnitedFilter(VaEqualPaNotEqual)
}

// AddExecutionFilter registers an execution-level filter.
func (p *Template) AddExecutionFilter(filter ExecutionFilter) *Template {
	p.executions = append(p.executions, filter)
	return p
}

// AddDependencyFilter registers a dependency-level filter.
func (p *Template) AddDependencyFilter(filter DependencyFilter) *Template {
	p.deps = append(p.deps, filter)
	return p
}

// AddUnitedFilter registers a united-dependency-level filter.
func (p *Template) AddUnitedFilter(filter UnitedDependencyFilter) *Template {
	p.united = append(p.united, filter)
	return p
}

// Test checks whether a given template should be kept.  For each access, the
// execution-level filters are applied to its path; then the dependency-level
// filters to every (non-nil) dependency of a later access on it; and, finally,
// the united-dependency-level filters to its united dependency.
func (p *Template) Test(template *coverage.Template) bool {
	n := template.Size()
	//
	for i := range n {
		path1 := template.Path(i)
		// Apply the execution-level filters.
		for _, f := range p.executions {
			if !f(path1) {
				log.Debugf("execution filter rejected %s", path1)
				return false
			}
		}
		//
		for j := i + 1; j < n; j++ {
			path2 := template.Path(j)
			dep := template.Dependency(i, j)
			//
			if dep == nil {
				continue
			}
			// Apply the dependency-level filters.
			for _, f := range p.deps {
				if !f(path1, path2, dep) {
					log.Debugf("dependency filter rejected %s -> %s %s", path1, path2, dep)
					return false
				}
			}
		}
		// Apply the united-dependency-level filters.
		united := template.UnitedDependency(i)
		//
		for _, f := range p.united {
			if !f(path1, united) {
				log.Debugf("united dependency filter rejected %s %s", path1, united)
				return false
			}
		}
	}
	//
	return true
}
