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

	"github.com/bits-and-blooms/bitset"
)

// IndexedHazard associates a hazard with the index of the access it relates to.
type IndexedHazard struct {
	Hazard Hazard
	// Index of the other access in the template's combination space.
	Index uint
}

// UnitedHazard unites, for a single address space, the hazards contributed by
// several accesses.  For each hazard type it records the set of access indices
// for which that relation holds.
type UnitedHazard struct {
	space    *AddressSpace
	relation [numHazardTypes]*bitset.BitSet
}

// NewUnitedHazard constructs a united hazard from a non-empty set of indexed
// hazards, all of which must concern the same address space (by identity).
// This panics otherwise.
func NewUnitedHazard(hazards ...IndexedHazard) *UnitedHazard {
	if len(hazards) == 0 {
		panic("united hazard requires at least one hazard")
	}
	//
	p := &UnitedHazard{}
	// Initialise the relation map with empty sets of indices.
	for i := range p.relation {
		p.relation[i] = bitset.New(0)
	}
	//
	for _, h := range hazards {
		// Check the consistency of the hazards.
		if h.Hazard.Space == nil {
			panic("hazard requires an address space")
		} else if p.space == nil {
			p.space = h.Hazard.Space
		} else if p.space != h.Hazard.Space {
			panic(fmt.Sprintf("different address spaces in a hazard: %s != %s", p.space, h.Hazard.Space))
		}
		//
		p.relation[h.Hazard.Type].Set(h.Index)
	}
	//
	return p
}

// Space returns the address space of this united hazard.
func (p *UnitedHazard) Space() *AddressSpace {
	return p.space
}

// Relation returns the set of access indices for which a given hazard type
// holds.  The result is never nil, but may be empty.  It must not be modified.
func (p *UnitedHazard) Relation(t HazardType) *bitset.BitSet {
	return p.relation[t]
}

// Indices returns the access indices for which a given hazard type holds, in
// ascending order.
func (p *UnitedHazard) Indices(t HazardType) []uint {
	set := p.relation[t]
	indices := make([]uint, 0, set.Count())
	//
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		indices = append(indices, i)
	}
	//
	return indices
}

func (p *UnitedHazard) String() string {
	var builder strings.Builder
	//
	for i, t := range HazardTypes {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(fmt.Sprintf("%s.%s=%v", p.space, t, p.Indices(t)))
	}
	//
	return builder.String()
}

// ============================================================================
// United Dependency
// ============================================================================

// IndexedDependency associates a dependency with the index of the access it
// relates to.
type IndexedDependency struct {
	Dependency *Dependency
	Index      uint
}

// UnitedDependency unites the dependencies of one access on zero or more other
// accesses.  It maps each address space (by identity) to a united hazard.
type UnitedDependency struct {
	// Address spaces in the order they were first encountered
	spaces  []*AddressSpace
	hazards map[*AddressSpace]*UnitedHazard
}

// NewUnitedDependency constructs a united dependency from zero or more indexed
// dependencies.  This panics if any dependency is nil.
func NewUnitedDependency(deps ...IndexedDependency) *UnitedDependency {
	var (
		spaces  []*AddressSpace
		grouped = make(map[*AddressSpace][]IndexedHazard)
	)
	//
	for _, d := range deps {
		if d.Dependency == nil {
			panic("united dependency requires non-nil dependencies")
		}
		//
		for _, h := range d.Dependency.hazards {
			if _, ok := grouped[h.Space]; !ok {
				spaces = append(spaces, h.Space)
			}
			//
			grouped[h.Space] = append(grouped[h.Space], IndexedHazard{h, d.Index})
		}
	}
	//
	hazards := make(map[*AddressSpace]*UnitedHazard, len(spaces))
	//
	for _, s := range spaces {
		hazards[s] = NewUnitedHazard(grouped[s]...)
	}
	//
	return &UnitedDependency{spaces, hazards}
}

// Hazard returns the united hazard for a given address space, or nil if no
// hazard concerns that space.  Spaces are resolved by identity.
func (p *UnitedDependency) Hazard(space *AddressSpace) *UnitedHazard {
	return p.hazards[space]
}

// AddrHazards returns the united hazard of every address space, in the order
// spaces were first encountered.
func (p *UnitedDependency) AddrHazards() []*UnitedHazard {
	hazards := make([]*UnitedHazard, len(p.spaces))
	//
	for i, s := range p.spaces {
		hazards[i] = p.hazards[s]
	}
	//
	return hazards
}

// Spaces returns the address spaces covered by this united dependency.
func (p *UnitedDependency) Spaces() []*AddressSpace {
	return append([]*AddressSpace(nil), p.spaces...)
}

func (p *UnitedDependency) String() string {
	parts := make([]string, len(p.spaces))
	//
	for i, s := range p.spaces {
		parts[i] = p.hazards[s].String()
	}
	//
	return "[" + strings.Join(parts, "; ") + "]"
}
