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
	"slices"
	"strings"
)

// Status indicates whether adaptation succeeded.
type Status uint8

const (
	// OK indicates a concrete sequence was constructed.
	OK Status = iota
	// ERROR indicates a concrete sequence could not be constructed.
	ERROR
)

func (s Status) String() string {
	if s == OK {
		return "OK"
	}
	//
	return "ERROR"
}

// AdapterResult is the outcome of adapting an abstract sequence.  On success it
// holds a concrete sequence, otherwise one or more diagnostics (and no
// sequence).  Results are immutable.
type AdapterResult struct {
	status   Status
	sequence *ConcreteSequence
	errors   []string
}

// NewOK constructs a successful result.  This panics if the sequence is nil.
func NewOK(sequence *ConcreteSequence) AdapterResult {
	if sequence == nil {
		panic("successful adapter result requires a sequence")
	}
	//
	return AdapterResult{OK, sequence, nil}
}

// NewError constructs a failed result from one or more diagnostics.  This
// panics if there are none, or if any is empty.
func NewError(errors ...string) AdapterResult {
	if len(errors) == 0 {
		panic("failed adapter result requires a diagnostic")
	}
	//
	for _, e := range errors {
		if strings.TrimSpace(e) == "" {
			panic("empty diagnostic")
		}
	}
	//
	return AdapterResult{ERROR, nil, slices.Clone(errors)}
}

// Status returns the status of this result.
func (r AdapterResult) Status() Status {
	return r.status
}

// IsOK checks whether adaptation succeeded.
func (r AdapterResult) IsOK() bool {
	return r.status == OK
}

// Sequence returns the concrete sequence of a successful result, or nil.
func (r AdapterResult) Sequence() *ConcreteSequence {
	return r.sequence
}

// Errors returns the diagnostics of a failed result.  This is never nil.
func (r AdapterResult) Errors() []string {
	if r.errors == nil {
		return []string{}
	}
	//
	return slices.Clone(r.errors)
}
