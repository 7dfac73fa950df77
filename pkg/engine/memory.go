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
	"maps"
	"slices"

	"github.com/consensys/go-testprog/pkg/config"
	log "github.com/sirupsen/logrus"
)

const (
	// PreparatorOption selects how buffer entries are prepared: "static" places
	// memory-mapped entries into the data section, "dynamic" writes them from
	// the prologue.
	PreparatorOption = "preparator"
	// ReuseRegistersOption determines whether accesses to the same address share
	// an address register.
	ReuseRegistersOption = "reuse-registers"
)

// MemoryAdapter concretises sequences of memory accesses.  The prologue writes
// the buffer entries each access relies on, then loads the address of each
// access into a register.  The body performs the accesses through those
// registers.
type MemoryAdapter struct {
	static bool
	reuse  bool
	// Addresses of the entries placed in the data section of the current
	// program.
	dataSection map[uint64]bool
}

// NewMemoryAdapter constructs a memory adapter with the default options.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{static: true, reuse: true, dataSection: make(map[uint64]bool)}
}

// Configure the preparator and register reuse policy.
//
//nolint:revive
func (p *MemoryAdapter) Configure(options config.Options) {
	p.static = options.String(PreparatorOption, "static") != "dynamic"
	p.reuse = options.Bool(ReuseRegistersOption, true)
}

// Adapt a sequence of memory accesses.
//
//nolint:revive
func (p *MemoryAdapter) Adapt(ctx *EngineContext, sequence *AbstractSequence) AdapterResult {
	if ctx == nil || sequence == nil {
		panic("memory adapter requires a context and a sequence")
	}
	//
	var (
		builder   = NewBuilder()
		allocated []string
		// Entries placed in the data section by this sequence, which are only
		// recorded if adaptation succeeds.
		placed = make(map[uint64]bool)
	)
	// Registers are only held for the duration of this sequence.
	defer func() {
		for _, r := range allocated {
			ctx.Registers.Free(r)
		}
	}()
	//
	allocate := func() (string, bool) {
		r, ok := ctx.Registers.Allocate()
		if ok {
			allocated = append(allocated, r)
		}
		//
		return r, ok
	}
	// Write entries into the buffers.
	for i, call := range sequence.calls {
		if call.Access == nil {
			continue
		}
		//
		for _, entry := range call.Access.Entries {
			calls, err := p.prepareEntry(ctx.Registers, entry, placed)
			//
			if err != nil {
				return NewError(fmt.Sprintf("cannot prepare entry %s of access %d: %s", entry, i, err))
			}
			//
			builder.AddToPrologue(calls...)
		}
	}
	// Load addresses into the registers.
	registers, err := p.prepareAddresses(sequence, ctx.Memory, builder, allocate)
	//
	if err != nil {
		return NewError(err.Error())
	}
	// Convert the abstract sequence into the concrete one.
	for i, call := range sequence.calls {
		if call.Access == nil {
			builder.Add(concreteCall(call))
			continue
		}
		//
		args := append(slices.Clone(call.Arguments), fmt.Sprintf("0(%s)", registers[i]))
		builder.Add(NewInstruction("%s", NewCall(call.Name, args...)))
	}
	//
	maps.Copy(p.dataSection, placed)
	//
	return NewOK(builder.Build())
}

// OnStartProgram clears the data section.
//
//nolint:revive
func (p *MemoryAdapter) OnStartProgram() {
	clear(p.dataSection)
}

// OnEndProgram reports the entries placed in the data section.
//
//nolint:revive
func (p *MemoryAdapter) OnEndProgram() {
	log.Debugf("entries in data section: %x", slices.Sorted(maps.Keys(p.dataSection)))
}

// Prepare a single buffer entry.  Memory-mapped entries are placed into the
// data section (once per program) when the static preparator is used, and
// otherwise written by the prologue.  Entries placed in the data section are
// added to the given set.
func (p *MemoryAdapter) prepareEntry(registers *RegisterAllocator, entry BufferEntry,
	placed map[uint64]bool) ([]ConcreteCall, error) {
	comment := NewComment(entry.String())
	//
	if entry.Memory && p.static && !p.dataSection[entry.Address] && !placed[entry.Address] {
		log.Debugf("placing %s in data section", entry)
		//
		placed[entry.Address] = true
		//
		return []ConcreteCall{
			comment,
			NewData(fmt.Sprintf(".org 0x%x", entry.Address)),
			NewData(fmt.Sprintf(".dword 0x%x", entry.Data)),
		}, nil
	}
	//
	// Temporary registers
	addr, ok1 := registers.Allocate()
	if ok1 {
		defer registers.Free(addr)
	}
	//
	data, ok2 := registers.Allocate()
	if ok2 {
		defer registers.Free(data)
	}
	//
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("no free registers")
	}
	//
	calls := []ConcreteCall{
		NewLine(),
		comment,
		NewInstruction("li %s, 0x%x", addr, entry.Address),
		NewInstruction("li %s, 0x%x", data, entry.Data),
	}
	//
	if entry.Memory {
		calls = append(calls, NewInstruction("sd %s, 0(%s)", data, addr))
	} else {
		calls = append(calls, NewInstruction("wrbuf %s, %s, %s", entry.Buffer, addr, data))
	}
	//
	return calls, nil
}

// Load the address of every access into a register, returning the register
// used by each access.
func (p *MemoryAdapter) prepareAddresses(sequence *AbstractSequence, memory *AddressAllocator, builder *Builder,
	allocate func() (string, bool)) (map[int]string, error) {
	var (
		registers = make(map[int]string)
		loaded    = make(map[uint64]string)
	)
	//
	for i, call := range sequence.calls {
		if call.Access == nil {
			continue
		} else if !call.Access.Resolved {
			return nil, fmt.Errorf("unresolved address for access %d (%s)", i, call.Access.Path)
		} else if memory.Contains(call.Access.Address) {
			return nil, fmt.Errorf("address 0x%x of access %d (%s) lies within the test data", call.Access.Address, i,
				call.Access.Path)
		}
		//
		address := call.Access.Address
		//
		if r, ok := loaded[address]; ok && p.reuse {
			registers[i] = r
			continue
		}
		//
		r, ok := allocate()
		//
		if !ok {
			return nil, fmt.Errorf("no free register for the address of access %d (%s)", i, call.Access.Path)
		}
		//
		log.Debugf("access %d: 0x%x in %s", i, address, r)
		builder.AddToPrologue(NewInstruction("li %s, 0x%x", r, address))
		//
		registers[i], loaded[address] = r, r
	}
	//
	return registers, nil
}
