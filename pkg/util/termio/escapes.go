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
package termio

import (
	"fmt"
	"strings"
)

// Colour is one of the eight standard terminal colours.
type Colour uint

const (
	// TERM_BLACK represents black
	TERM_BLACK Colour = iota
	// TERM_RED represents red
	TERM_RED
	// TERM_GREEN represents green
	TERM_GREEN
	// TERM_YELLOW represents yellow
	TERM_YELLOW
	// TERM_BLUE represents blue
	TERM_BLUE
	// TERM_MAGENTA represents magenta
	TERM_MAGENTA
	// TERM_CYAN represents cyan
	TERM_CYAN
	// TERM_WHITE represents white
	TERM_WHITE
)

// AnsiEscape represents an ANSI escape code used for formatting text in a
// terminal.  An escape is a sequence of parameters, each of which sets some
// attribute of the text which follows.
type AnsiEscape struct {
	params []uint
}

// NewAnsiEscape construct an empty escape
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{nil}
}

// ResetAnsiEscape constructs an escape which resets all attributes.
func ResetAnsiEscape() AnsiEscape {
	return AnsiEscape{[]uint{0}}
}

// Bold adds the bold attribute.
func (p AnsiEscape) Bold() AnsiEscape {
	return p.with(1)
}

// FgColour sets the foreground colour
func (p AnsiEscape) FgColour(col Colour) AnsiEscape {
	return p.with(30 + uint(col))
}

// BgColour sets the background colour
func (p AnsiEscape) BgColour(col Colour) AnsiEscape {
	return p.with(40 + uint(col))
}

// Build constructs the final escape
func (p AnsiEscape) Build() string {
	var builder strings.Builder
	//
	builder.WriteString("\033[")
	//
	for i, param := range p.params {
		if i != 0 {
			builder.WriteString(";")
		}
		//
		builder.WriteString(fmt.Sprintf("%d", param))
	}
	//
	builder.WriteString("m")
	//
	return builder.String()
}

func (p AnsiEscape) with(param uint) AnsiEscape {
	params := make([]uint, len(p.params), len(p.params)+1)
	copy(params, p.params)
	//
	return AnsiEscape{append(params, param)}
}
