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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	va = NewAddressSpace("VA", 64, true)
	pa = NewAddressSpace("PA", 36, false)
)

func Test_ExecutionPath_1(t *testing.T) {
	path := NewExecutionPath("hit", Load, va, pa, va)
	assert.Equal(t, va, path.StartAddress())
	assert.Equal(t, []*AddressSpace{va, pa}, path.AddressSpaces())
	assert.True(t, path.Touches(pa))
	assert.False(t, path.Touches(NewAddressSpace("PA", 36, false)))
	assert.Equal(t, "hit[load@VA]", path.String())
}

func Test_ExecutionPath_Nil(t *testing.T) {
	assert.Panics(t, func() { NewExecutionPath("x", Load, nil) })
	assert.Panics(t, func() { NewExecutionPath("x", Load, va, nil) })
}

func Test_ParseHazardType(t *testing.T) {
	for _, ht := range HazardTypes {
		parsed, err := ParseHazardType(ht.String())
		require.NoError(t, err)
		assert.Equal(t, ht, parsed)
	}
	//
	parsed, err := ParseHazardType("addr_equal")
	require.NoError(t, err)
	assert.Equal(t, AddrEqual, parsed)
	//
	_, err = ParseHazardType("ADDR_SIDEWAYS")
	assert.Error(t, err)
}

func Test_Dependency_1(t *testing.T) {
	dep := NewDependency(NewHazard(AddrEqual, va), NewHazard(AddrNotEqual, pa), NewHazard(AddrEqual, va))
	assert.Len(t, dep.Hazards(), 2)
	assert.True(t, dep.Has(AddrEqual, va))
	assert.False(t, dep.Has(AddrEqual, pa))
	assert.Equal(t, []Hazard{NewHazard(AddrNotEqual, pa)}, dep.HazardsOn(pa))
	assert.Equal(t, "{VA.ADDR_EQUAL, PA.ADDR_NOT_EQUAL}", dep.String())
}

func Test_AllDependencies_1(t *testing.T) {
	p1 := NewExecutionPath("p1", Load, va, pa)
	p2 := NewExecutionPath("p2", Store, va, pa)
	deps := AllDependencies(p1, p2)
	require.Len(t, deps, 4)
	//
	for _, d := range deps {
		assert.Len(t, d.Hazards(), 2)
		assert.Len(t, d.HazardsOn(va), 1)
		assert.Len(t, d.HazardsOn(pa), 1)
	}
}

func Test_AllDependencies_2(t *testing.T) {
	other := NewAddressSpace("IO", 16, false)
	p1 := NewExecutionPath("p1", Load, va)
	p2 := NewExecutionPath("p2", Load, other)
	deps := AllDependencies(p1, p2)
	require.Len(t, deps, 1)
	assert.True(t, deps[0].IsEmpty())
}

func Test_UnitedHazard_1(t *testing.T) {
	hazard := NewUnitedHazard(
		IndexedHazard{NewHazard(AddrEqual, va), 0},
		IndexedHazard{NewHazard(AddrEqual, va), 3},
		IndexedHazard{NewHazard(AddrNotEqual, va), 1},
	)
	assert.Equal(t, va, hazard.Space())
	assert.Equal(t, []uint{0, 3}, hazard.Indices(AddrEqual))
	assert.Equal(t, []uint{1}, hazard.Indices(AddrNotEqual))
	// Missing relations are empty, never nil
	require.NotNil(t, hazard.Relation(AddrLess))
	assert.Equal(t, uint(0), hazard.Relation(AddrLess).Count())
}

func Test_UnitedHazard_Invalid(t *testing.T) {
	assert.Panics(t, func() { NewUnitedHazard() })
	assert.Panics(t, func() {
		NewUnitedHazard(IndexedHazard{NewHazard(AddrEqual, va), 0}, IndexedHazard{NewHazard(AddrEqual, pa), 1})
	})
}

func Test_UnitedDependency_1(t *testing.T) {
	d0 := NewDependency(NewHazard(AddrEqual, va), NewHazard(AddrEqual, pa))
	d1 := NewDependency(NewHazard(AddrNotEqual, pa))
	united := NewUnitedDependency(IndexedDependency{d0, 0}, IndexedDependency{d1, 1})
	//
	assert.Equal(t, []*AddressSpace{va, pa}, united.Spaces())
	assert.Equal(t, []uint{0}, united.Hazard(va).Indices(AddrEqual))
	assert.Equal(t, []uint{0}, united.Hazard(pa).Indices(AddrEqual))
	assert.Equal(t, []uint{1}, united.Hazard(pa).Indices(AddrNotEqual))
	require.Len(t, united.AddrHazards(), 2)
	// Lookup is by identity
	assert.Nil(t, united.Hazard(NewAddressSpace("VA", 64, true)))
}

func Test_UnitedDependency_Empty(t *testing.T) {
	united := NewUnitedDependency()
	assert.Nil(t, united.Hazard(va))
	assert.Empty(t, united.AddrHazards())
	assert.Panics(t, func() { NewUnitedDependency(IndexedDependency{nil, 0}) })
}

func Test_Template_1(t *testing.T) {
	p := NewExecutionPath("p", Load, va, pa)
	d01 := NewDependency(NewHazard(AddrEqual, va))
	d12 := NewDependency(NewHazard(AddrNotEqual, pa))
	template := NewTemplate([]*ExecutionPath{p, p, p}, [][]*Dependency{nil, {d01}, {nil, d12}})
	//
	assert.Equal(t, uint(3), template.Size())
	assert.Equal(t, d01, template.Dependency(0, 1))
	assert.Nil(t, template.Dependency(0, 2))
	assert.Equal(t, d12, template.Dependency(1, 2))
	assert.Empty(t, template.UnitedDependency(0).Spaces())
	assert.Equal(t, []uint{0}, template.UnitedDependency(1).Hazard(va).Indices(AddrEqual))
	assert.Equal(t, []uint{1}, template.UnitedDependency(2).Hazard(pa).Indices(AddrNotEqual))
	assert.Panics(t, func() { template.Dependency(1, 1) })
}

func Test_Template_Invalid(t *testing.T) {
	p := NewExecutionPath("p", Load, va)
	d := NewDependency(NewHazard(AddrEqual, va))
	assert.Panics(t, func() { NewTemplate([]*ExecutionPath{p, nil}, nil) })
	assert.Panics(t, func() { NewTemplate([]*ExecutionPath{p}, [][]*Dependency{{d}}) })
	assert.Panics(t, func() { NewTemplate([]*ExecutionPath{p}, [][]*Dependency{nil, {d}}) })
}

func Test_ParseAccessType(t *testing.T) {
	access, err := ParseAccessType("Store")
	require.NoError(t, err)
	assert.Equal(t, Store, access)
	//
	_, err = ParseAccessType("fetch")
	assert.Error(t, err)
}
