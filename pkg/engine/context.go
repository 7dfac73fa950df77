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
	"math/bits"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/go-testprog/pkg/config"
)

// EngineContext holds the resources shared by successive adapt calls within a
// unit of generation.  A context is not safe for concurrent use: each parallel
// unit of work must have its own.
type EngineContext struct {
	Registers *RegisterAllocator
	Memory    *AddressAllocator
	// Number of instructions which fit into a delay slot (0 if there are none).
	DelaySlotSize uint
}

// NewEngineContext constructs a context from the engine configuration.  The
// upper half of the configured memory region is used for test data, whilst the
// lower half is left for the addresses of memory accesses.
func NewEngineContext(cfg config.EngineConfig) *EngineContext {
	half := cfg.MemorySize / 2
	//
	return &EngineContext{
		Registers:     NewRegisterAllocator(cfg.Registers...),
		Memory:        NewAddressAllocator(cfg.MemoryBase+half, cfg.MemorySize-half, cfg.Alignment),
		DelaySlotSize: cfg.DelaySlot,
	}
}

// ============================================================================
// Registers
// ============================================================================

// RegisterAllocator hands out registers from a fixed set.  Registers are
// allocated lowest first.
type RegisterAllocator struct {
	names []string
	used  *bitset.BitSet
}

// NewRegisterAllocator constructs an allocator over a given set of registers.
// This panics if a register is given more than once.
func NewRegisterAllocator(names ...string) *RegisterAllocator {
	for i, n := range names {
		if slices.Index(names, n) != i {
			panic(fmt.Sprintf("duplicate register %s", n))
		}
	}
	//
	return &RegisterAllocator{slices.Clone(names), bitset.New(uint(len(names)))}
}

// Allocate returns a free register, or false if there are none.
func (p *RegisterAllocator) Allocate() (string, bool) {
	i, ok := p.used.NextClear(0)
	//
	if !ok || i >= uint(len(p.names)) {
		return "", false
	}
	//
	p.used.Set(i)
	//
	return p.names[i], true
}

// Free releases a register.  This panics if the register is unknown, or not
// currently allocated.
func (p *RegisterAllocator) Free(name string) {
	i := slices.Index(p.names, name)
	//
	if i < 0 {
		panic(fmt.Sprintf("unknown register %s", name))
	} else if !p.used.Test(uint(i)) {
		panic(fmt.Sprintf("register %s is not allocated", name))
	}
	//
	p.used.Clear(uint(i))
}

// Available returns the number of free registers.
func (p *RegisterAllocator) Available() uint {
	return uint(len(p.names)) - p.used.Count()
}

// Reset frees all registers.
func (p *RegisterAllocator) Reset() {
	p.used.ClearAll()
}

// ============================================================================
// Memory
// ============================================================================

// AddressAllocator is a bump allocator over a region of memory.
type AddressAllocator struct {
	base      uint64
	size      uint64
	alignment uint64
	next      uint64
}

// NewAddressAllocator constructs an allocator over a region of memory.  This
// panics if the alignment is not a power of two.
func NewAddressAllocator(base, size, alignment uint64) *AddressAllocator {
	if bits.OnesCount64(alignment) != 1 {
		panic(fmt.Sprintf("alignment %d is not a power of two", alignment))
	}
	//
	return &AddressAllocator{base, size, alignment, 0}
}

// Allocate reserves a (suitably aligned) block of a given size, returning its
// address.  An error is returned if the region is exhausted.
func (p *AddressAllocator) Allocate(size uint64) (uint64, error) {
	mask := p.alignment - 1
	offset := (p.next + mask) &^ mask
	//
	if offset > p.size || size > p.size-offset {
		return 0, fmt.Errorf("cannot allocate %d bytes (%d of %d bytes in use)", size, p.next, p.size)
	}
	//
	p.next = offset + size
	//
	return p.base + offset, nil
}

// Contains checks whether an address lies within this region.
func (p *AddressAllocator) Contains(address uint64) bool {
	return address >= p.base && address-p.base < p.size
}

// Reset releases all allocated blocks.
func (p *AddressAllocator) Reset() {
	p.next = 0
}
