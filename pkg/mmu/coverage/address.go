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
	"slices"
	"strings"
)

// AddressSpace identifies an address space of the memory subsystem (e.g. the
// virtual address space, or a physical address space).  Address spaces are
// compared by identity: two distinct handles are distinct spaces, even if they
// happen to carry the same name.
type AddressSpace struct {
	name string
	// Width of an address (in bits)
	width uint
	// Whether addresses in this space are translated
	virtual bool
}

// NewAddressSpace constructs a new address space handle.
func NewAddressSpace(name string, width uint, virtual bool) *AddressSpace {
	return &AddressSpace{name, width, virtual}
}

// Name returns the name of this address space.
func (p *AddressSpace) Name() string {
	return p.name
}

// Width returns the bitwidth of addresses in this space.
func (p *AddressSpace) Width() uint {
	return p.width
}

// IsVirtual indicates whether addresses in this space are subject to
// translation.
func (p *AddressSpace) IsVirtual() bool {
	return p.virtual
}

func (p *AddressSpace) String() string {
	return p.name
}

// ============================================================================
// Execution Path
// ============================================================================

// AccessType identifies the kind of memory operation an execution path performs.
type AccessType uint8

const (
	// Load reads from memory.
	Load AccessType = iota
	// Store writes to memory.
	Store
)

func (t AccessType) String() string {
	switch t {
	case Load:
		return "load"
	case Store:
		return "store"
	default:
		return fmt.Sprintf("access(%d)", uint8(t))
	}
}

// ParseAccessType parses the name of an access type (as produced by String).
func ParseAccessType(name string) (AccessType, error) {
	switch strings.ToLower(name) {
	case "load":
		return Load, nil
	case "store":
		return Store, nil
	default:
		return 0, fmt.Errorf("unknown access type \"%s\"", name)
	}
}

// ExecutionPath identifies one control-flow path through a memory access
// operation (e.g. "TLB hit, cache miss").  It designates the address space in
// which the access starts (typically the virtual one), together with all the
// address spaces it goes through.  Execution paths are immutable.
type ExecutionPath struct {
	name   string
	access AccessType
	start  *AddressSpace
	spaces []*AddressSpace
}

// NewExecutionPath constructs an execution path starting in a given address
// space.  The start space is always included in the set of spaces touched by
// the path, and duplicates are dropped.  This panics if the start space is nil.
func NewExecutionPath(name string, access AccessType, start *AddressSpace,
	spaces ...*AddressSpace) *ExecutionPath {
	if start == nil {
		panic("execution path requires a start address space")
	}
	//
	touched := []*AddressSpace{start}
	//
	for _, s := range spaces {
		if s == nil {
			panic(fmt.Sprintf("execution path %s touches nil address space", name))
		} else if !slices.Contains(touched, s) {
			touched = append(touched, s)
		}
	}
	//
	return &ExecutionPath{name, access, start, touched}
}

// Name returns the name of this execution path.
func (p *ExecutionPath) Name() string {
	return p.name
}

// Access returns the kind of memory operation performed on this path.
func (p *ExecutionPath) Access() AccessType {
	return p.access
}

// StartAddress returns the address space in which this path starts.
func (p *ExecutionPath) StartAddress() *AddressSpace {
	return p.start
}

// AddressSpaces returns the address spaces touched by this path, starting with
// the start space.
func (p *ExecutionPath) AddressSpaces() []*AddressSpace {
	return slices.Clone(p.spaces)
}

// Touches checks whether this path goes through a given address space.
func (p *ExecutionPath) Touches(space *AddressSpace) bool {
	return slices.Contains(p.spaces, space)
}

func (p *ExecutionPath) String() string {
	return fmt.Sprintf("%s[%s@%s]", p.name, p.access, p.start)
}
