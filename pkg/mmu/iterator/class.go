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
	"slices"

	"github.com/consensys/go-testprog/pkg/mmu/coverage"
	"github.com/consensys/go-testprog/pkg/util"
	"github.com/consensys/go-testprog/pkg/util/random"
)

// ExecutionPathClass is an insertion-ordered collection of execution paths
// which are considered interchangeable for the purposes of sampling.
type ExecutionPathClass struct {
	executions []*coverage.ExecutionPath
	random     *random.Random
}

// NewExecutionPathClass constructs an empty class, which samples its members
// using a given random source.
func NewExecutionPathClass(rnd *random.Random) *ExecutionPathClass {
	if rnd == nil {
		panic("execution path class requires a random source")
	}
	//
	return &ExecutionPathClass{nil, rnd}
}

// AddExecution appends an execution path to this class.  This panics if the
// path is nil.
func (p *ExecutionPathClass) AddExecution(path *coverage.ExecutionPath) {
	if path == nil {
		panic("cannot add nil execution path")
	}
	//
	p.executions = append(p.executions, path)
}

// Executions returns the members of this class, in insertion order.  The result
// is a copy, hence modifying it does not affect this class.
func (p *ExecutionPathClass) Executions() []*coverage.ExecutionPath {
	return slices.Clone(p.executions)
}

// Size returns the number of members of this class.
func (p *ExecutionPathClass) Size() uint {
	return uint(len(p.executions))
}

// Execution returns a member of this class chosen uniformly at random, or
// nothing if this class is empty.
func (p *ExecutionPathClass) Execution() util.Option[*coverage.ExecutionPath] {
	if len(p.executions) == 0 {
		return util.None[*coverage.ExecutionPath]()
	}
	//
	return util.Some(random.Choose(p.random, p.executions))
}

// Classify partitions a set of execution paths into classes, such that paths
// with the same key are interchangeable.  Classes are returned in the order
// their first member was encountered.
func Classify(paths []*coverage.ExecutionPath, key func(*coverage.ExecutionPath) string,
	rnd *random.Random) []*ExecutionPathClass {
	var (
		classes []*ExecutionPathClass
		index   = make(map[string]*ExecutionPathClass)
	)
	//
	for _, path := range paths {
		k := key(path)
		class, ok := index[k]
		//
		if !ok {
			class = NewExecutionPathClass(rnd)
			index[k] = class
			classes = append(classes, class)
		}
		//
		class.AddExecution(path)
	}
	//
	return classes
}

// Representatives selects one member at random from each non-empty class.
func Representatives(classes []*ExecutionPathClass) []*coverage.ExecutionPath {
	var paths []*coverage.ExecutionPath
	//
	for _, class := range classes {
		if path := class.Execution(); path.HasValue() {
			paths = append(paths, path.Unwrap())
		}
	}
	//
	return paths
}
