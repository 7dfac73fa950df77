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
	"slices"
	"strings"

	"github.com/consensys/go-testprog/pkg/mmu/coverage"
)

// AbstractCall is a single (solved) symbolic instruction.  Memory and branch
// instructions carry additional information, which adapters use to construct
// their concrete counterparts.
type AbstractCall struct {
	// Mnemonic of the instruction
	Name string
	// Operands other than those determined by an adapter
	Arguments []string
	// Memory access performed by this instruction (if any)
	Access *MemoryAccess
	// Branch performed by this instruction (if any)
	Branch *BranchEntry
}

// NewCall constructs a plain abstract call.
func NewCall(name string, args ...string) AbstractCall {
	return AbstractCall{Name: name, Arguments: args}
}

func (c AbstractCall) String() string {
	if len(c.Arguments) == 0 {
		return c.Name
	}
	//
	return fmt.Sprintf("%s %s", c.Name, strings.Join(c.Arguments, ", "))
}

// MemoryAccess describes the memory access of an abstract call, as determined
// by the solver.
type MemoryAccess struct {
	Path *coverage.ExecutionPath
	// Address in the start address space of the path.
	Address uint64
	// Indicates whether the solver determined the address.
	Resolved bool
	// Entries which must be written into buffers for the access to follow its
	// execution path.
	Entries []BufferEntry
}

// BufferEntry is an entry to be placed into a buffer of the memory subsystem
// (e.g. a page table entry).
type BufferEntry struct {
	Buffer  string
	Address uint64
	Data    uint64
	// Indicates whether the buffer is mapped into memory, in which case the entry
	// can be placed into the data section.
	Memory bool
}

func (e BufferEntry) String() string {
	return fmt.Sprintf("%s[0x%x]=0x%x", e.Buffer, e.Address, e.Data)
}

// BranchEntry describes where the control code enforcing a conditional
// branch's execution trace can be placed.
type BranchEntry struct {
	// Basic blocks after which the control code can be placed, or nil if this
	// is not possible.  An empty (non-nil) coverage requires no control code.
	BlockCoverage []int
	// Delay slots into which the control code can be placed, or nil if this is
	// not possible.
	SlotCoverage []int
	// Register pointing to the test data stream of the branch.
	Stream string
}

// AbstractSequence is an immutable sequence of abstract calls.
type AbstractSequence struct {
	calls []AbstractCall
}

// NewAbstractSequence constructs an abstract sequence from a given set of calls.
func NewAbstractSequence(calls ...AbstractCall) *AbstractSequence {
	return &AbstractSequence{slices.Clone(calls)}
}

// Size returns the number of calls in this sequence.
func (p *AbstractSequence) Size() uint {
	return uint(len(p.calls))
}

// Call returns the ith call of this sequence.
func (p *AbstractSequence) Call(i uint) AbstractCall {
	return p.calls[i]
}

// Calls returns a copy of the calls of this sequence.
func (p *AbstractSequence) Calls() []AbstractCall {
	return slices.Clone(p.calls)
}

// ============================================================================
// Concrete Sequences
// ============================================================================

// CallKind distinguishes the various kinds of concrete call.
type CallKind uint8

const (
	// Instruction is an executable instruction.
	Instruction CallKind = iota
	// Data is a data directive placed in the data section.
	Data
	// Comment is a comment line.
	Comment
	// Line is an empty line.
	Line
)

// ConcreteCall is a single line of a test program.
type ConcreteCall struct {
	Kind CallKind
	Text string
}

// NewInstruction constructs an instruction from a format string.
func NewInstruction(format string, args ...any) ConcreteCall {
	return ConcreteCall{Instruction, fmt.Sprintf(format, args...)}
}

// NewData constructs a data directive.
func NewData(text string) ConcreteCall {
	return ConcreteCall{Data, text}
}

// NewComment constructs a comment.
func NewComment(text string) ConcreteCall {
	return ConcreteCall{Comment, text}
}

// NewLine constructs an empty line.
func NewLine() ConcreteCall {
	return ConcreteCall{Line, ""}
}

func (c ConcreteCall) String() string {
	switch c.Kind {
	case Comment:
		return "// " + c.Text
	case Line:
		return ""
	default:
		return "\t" + c.Text
	}
}

// ConcreteSequence is a sequence of concrete calls ready for encoding.  The
// prologue prepares the state (registers, buffers) which the body relies on.
type ConcreteSequence struct {
	prologue []ConcreteCall
	body     []ConcreteCall
}

// Prologue returns the calls of the prologue.
func (p *ConcreteSequence) Prologue() []ConcreteCall {
	return slices.Clone(p.prologue)
}

// Body returns the calls of the body.
func (p *ConcreteSequence) Body() []ConcreteCall {
	return slices.Clone(p.body)
}

// Instructions returns the text of every instruction in this sequence, prologue
// first.
func (p *ConcreteSequence) Instructions() []string {
	var insns []string
	//
	for _, c := range slices.Concat(p.prologue, p.body) {
		if c.Kind == Instruction {
			insns = append(insns, c.Text)
		}
	}
	//
	return insns
}

func (p *ConcreteSequence) String() string {
	var builder strings.Builder
	//
	for _, c := range slices.Concat(p.prologue, p.body) {
		builder.WriteString(c.String())
		builder.WriteString("\n")
	}
	//
	return builder.String()
}

// Builder accumulates the calls of a concrete sequence.
type Builder struct {
	prologue []ConcreteCall
	body     []ConcreteCall
}

// NewBuilder constructs an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddToPrologue appends calls to the prologue.
func (b *Builder) AddToPrologue(calls ...ConcreteCall) {
	b.prologue = append(b.prologue, calls...)
}

// Add appends calls to the body.
func (b *Builder) Add(calls ...ConcreteCall) {
	b.body = append(b.body, calls...)
}

// Build constructs the concrete sequence.  The builder can be reused afterwards.
func (b *Builder) Build() *ConcreteSequence {
	return &ConcreteSequence{slices.Clone(b.prologue), slices.Clone(b.body)}
}
