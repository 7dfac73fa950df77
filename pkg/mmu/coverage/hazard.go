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

// HazardType identifies a relation between the addresses of two memory
// accesses within the same address space.
type HazardType uint8

const (
	// AddrEqual indicates both accesses use the same address.
	AddrEqual HazardType = iota
	// AddrNotEqual indicates the accesses use different addresses.
	AddrNotEqual
	// AddrLess indicates the address of the later access is below that of the
	// earlier one.
	AddrLess
	// AddrGreater indicates the address of the later access is above that of
	// the earlier one.
	AddrGreater
	// number of hazard types
	numHazardTypes
)

// HazardTypes lists every hazard type, in order.
var HazardTypes = []HazardType{AddrEqual, AddrNotEqual, AddrLess, AddrGreater}

func (t HazardType) String() string {
	switch t {
	case AddrEqual:
		return "ADDR_EQUAL"
	case AddrNotEqual:
		return "ADDR_NOT_EQUAL"
	case AddrLess:
		return "ADDR_LESS"
	case AddrGreater:
		return "ADDR_GREATER"
	default:
		return fmt.Sprintf("HAZARD(%d)", uint8(t))
	}
}

// ParseHazardType parses the name of a hazard type (as produced by String).
func ParseHazardType(name string) (HazardType, error) {
	for _, t := range HazardTypes {
		if strings.EqualFold(name, t.String()) {
			return t, nil
		}
	}
	//
	return 0, fmt.Errorf("unknown hazard type \"%s\"", name)
}

// Hazard records a relation between the addresses of two accesses within a given
// address space.
type Hazard struct {
	Type  HazardType
	Space *AddressSpace
}

// NewHazard constructs a hazard, panicking if the address space is nil.
func NewHazard(t HazardType, space *AddressSpace) Hazard {
	if space == nil {
		panic("hazard requires an address space")
	}
	//
	return Hazard{t, space}
}

func (h Hazard) String() string {
	return fmt.Sprintf("%s.%s", h.Space, h.Type)
}

// ============================================================================
// Dependency
// ============================================================================

// Dependency holds the hazards between two memory accesses, at most one per
// address space and hazard type.
type Dependency struct {
	hazards []Hazard
}

// NewDependency constructs a dependency from zero or more hazards.  Duplicate
// hazards are dropped.
func NewDependency(hazards ...Hazard) *Dependency {
	var unique []Hazard
	//
	for _, h := range hazards {
		if h.Space == nil {
			panic("hazard requires an address space")
		}
		//
		if !containsHazard(unique, h) {
			unique = append(unique, h)
		}
	}
	//
	return &Dependency{unique}
}

// Hazards returns the hazards of this dependency, in construction order.
func (p *Dependency) Hazards() []Hazard {
	return append([]Hazard(nil), p.hazards...)
}

// HazardsOn returns the hazards of this dependency which concern a given address
// space.
func (p *Dependency) HazardsOn(space *AddressSpace) []Hazard {
	var hazards []Hazard
	//
	for _, h := range p.hazards {
		if h.Space == space {
			hazards = append(hazards, h)
		}
	}
	//
	return hazards
}

// Has checks whether this dependency holds a hazard of the given type on the
// given address space.
func (p *Dependency) Has(t HazardType, space *AddressSpace) bool {
	return containsHazard(p.hazards, Hazard{t, space})
}

// IsEmpty checks whether this dependency holds any hazards.
func (p *Dependency) IsEmpty() bool {
	return len(p.hazards) == 0
}

func (p *Dependency) String() string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i, h := range p.hazards {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(h.String())
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}

func containsHazard(hazards []Hazard, hazard Hazard) bool {
	for _, h := range hazards {
		if h.Type == hazard.Type && h.Space == hazard.Space {
			return true
		}
	}
	//
	return false
}

// AllDependencies enumerates every dependency which can arise between two
// execution paths: for each address space touched by both paths, the addresses
// are either equal or not.  For example, two paths sharing a virtual and a
// physical address space give rise to four dependencies.  Paths sharing no
// address space give rise to exactly one (empty) dependency.
func AllDependencies(lhs *ExecutionPath, rhs *ExecutionPath) []*Dependency {
	var shared []*AddressSpace
	//
	for _, s := range lhs.spaces {
		if rhs.Touches(s) {
			shared = append(shared, s)
		}
	}
	//
	deps := []*Dependency{NewDependency()}
	//
	for _, s := range shared {
		var next []*Dependency
		//
		for _, t := range []HazardType{AddrEqual, AddrNotEqual} {
			for _, d := range deps {
				next = append(next, NewDependency(append(d.Hazards(), NewHazard(t, s))...))
			}
		}
		//
		deps = next
	}
	//
	return deps
}
