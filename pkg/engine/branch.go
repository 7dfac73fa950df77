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
	// DelaySlotsOption determines whether control code may be placed into delay
	// slots.
	DelaySlotsOption = "delay-slots"
	// StreamSizeOption gives the number of bytes reserved for each test data
	// stream.
	StreamSizeOption = "stream-size"
)

// BranchAdapter concretises sequences of conditional branches.  The execution
// trace of each branch is enforced by control code which reads the branch's
// operands from a test data stream.  This code is placed after the basic
// blocks covering the branch or, failing that, into the branch's delay slot.
type BranchAdapter struct {
	delaySlots bool
	streamSize uint64
}

// NewBranchAdapter constructs a branch adapter with the default options.
func NewBranchAdapter() *BranchAdapter {
	return &BranchAdapter{delaySlots: true, streamSize: 64}
}

// Configure the use of delay slots, and the size of data streams.
//
//nolint:revive
func (p *BranchAdapter) Configure(options config.Options) {
	p.delaySlots = options.Bool(DelaySlotsOption, true)
	p.streamSize = uint64(max(options.Int(StreamSizeOption, 64), 8))
}

// Adapt a sequence containing conditional branches.
//
//nolint:revive
func (p *BranchAdapter) Adapt(ctx *EngineContext, sequence *AbstractSequence) AdapterResult {
	if ctx == nil || sequence == nil {
		panic("branch adapter requires a context and a sequence")
	}
	//
	var (
		builder = NewBuilder()
		// Maps positions to the control code inserted there.
		steps = make(map[int][]AbstractCall)
		// Positions of the delay slots.
		slots = make(map[int]bool)
		// Streams already initialised.
		streams = make(map[string]bool)
	)
	// Register into which test data is read.
	data, ok := ctx.Registers.Allocate()
	//
	if !ok {
		return NewError("no free register for the test data")
	}
	//
	defer ctx.Registers.Free(data)
	//
	for i, call := range sequence.calls {
		if call.Branch == nil {
			continue
		}
		//
		entry := call.Branch
		code := streamRead(data, entry.Stream)
		enforced := false
		// Insert the control code after the basic blocks, if possible.  Empty
		// coverage requires no additional code.
		if entry.BlockCoverage != nil {
			for _, block := range entry.BlockCoverage {
				log.Debugf("control code of length %d for instruction %d put to block %d", len(code), i, block)
				steps[block+1] = append(steps[block+1], code...)
			}
			//
			enforced = true
		}
		// Otherwise, insert the control code into the delay slot (which follows
		// the branch).
		if !enforced && p.delaySlots && entry.SlotCoverage != nil && uint(len(code)) <= ctx.DelaySlotSize {
			steps[i+1] = append(steps[i+1], code...)
			slots[i+1] = true
			enforced = true
		}
		//
		if !enforced {
			return NewError(fmt.Sprintf("cannot construct the control code %d: blockCoverage=%v, slotCoverage=%v",
				i, entry.BlockCoverage, entry.SlotCoverage))
		}
		// Initialise the stream
		if !streams[entry.Stream] {
			address, err := ctx.Memory.Allocate(p.streamSize)
			//
			if err != nil {
				return NewError(fmt.Sprintf("cannot allocate test data stream %s: %s", entry.Stream, err))
			}
			//
			builder.AddToPrologue(NewComment(fmt.Sprintf("test data stream for instruction %d", i)),
				NewInstruction("la %s, 0x%x", entry.Stream, address))
			streams[entry.Stream] = true
		}
	}
	// Insert the control code into the sequence.
	var (
		calls      = sequence.Calls()
		correction = 0
	)
	//
	for _, position := range slices.Sorted(maps.Keys(steps)) {
		code := steps[position]
		at := min(position+correction, len(calls))
		calls = slices.Insert(calls, at, code...)
		//
		if slots[position] {
			// Remove the old delay slot.
			end := min(at+2*len(code), len(calls))
			calls = slices.Delete(calls, at+len(code), end)
		} else {
			correction += len(code)
		}
	}
	//
	for _, call := range calls {
		builder.Add(concreteCall(call))
	}
	//
	return NewOK(builder.Build())
}

// OnStartProgram does nothing.
//
//nolint:revive
func (p *BranchAdapter) OnStartProgram() {}

// OnEndProgram does nothing.
//
//nolint:revive
func (p *BranchAdapter) OnEndProgram() {}

// Code which reads the next item of a test data stream.
func streamRead(data string, stream string) []AbstractCall {
	return []AbstractCall{
		NewCall("ld", data, fmt.Sprintf("0(%s)", stream)),
		NewCall("addi", stream, stream, "8"),
	}
}
