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
	"fmt"

	"github.com/consensys/go-testprog/pkg/config"
)

// Adapter converts accepted abstract sequences into concrete ones.  Within a
// program, OnStartProgram is called first, then Adapt any number of times, and
// finally OnEndProgram.  Adapt never panics for ordinary inputs: failure is
// reported as an AdapterResult with status ERROR.
type Adapter interface {
	// Configure applies a set of named options before the first call to Adapt.
	// Unknown options are ignored.
	Configure(options config.Options)
	// Adapt converts an abstract sequence into a concrete one.
	Adapt(ctx *EngineContext, sequence *AbstractSequence) AdapterResult
	// OnStartProgram resets any per-program state.
	OnStartProgram()
	// OnEndProgram finalises any per-program state.
	OnEndProgram()
}

// NewAdapter constructs an adapter by name.
func NewAdapter(name string) (Adapter, error) {
	switch name {
	case "memory":
		return NewMemoryAdapter(), nil
	case "branch":
		return NewBranchAdapter(), nil
	default:
		return nil, fmt.Errorf("unknown adapter \"%s\"", name)
	}
}

// Convert an abstract call into a concrete instruction.
func concreteCall(call AbstractCall) ConcreteCall {
	return NewInstruction("%s", call.String())
}
