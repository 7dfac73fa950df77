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
	"io"
)

// TablePrinter is useful for printing tables to the terminal.  Rows are added
// one at a time, and column widths are determined by their widest cell.
type TablePrinter struct {
	widths        []uint
	rows          [][]string
	escapes       [][]string
	enableEscapes bool
}

// NewTablePrinter constructs a new (empty) table with a given number of
// columns.
func NewTablePrinter(width uint) *TablePrinter {
	return &TablePrinter{make([]uint, width), nil, nil, true}
}

// Width returns the number of columns in this table.
func (p *TablePrinter) Width() uint {
	return uint(len(p.widths))
}

// Height returns the number of rows in this table.
func (p *TablePrinter) Height() uint {
	return uint(len(p.rows))
}

// AddRow appends a row to this table, returning its index.  This panics if the
// number of values does not match the number of columns.
func (p *TablePrinter) AddRow(vals ...string) uint {
	if len(vals) != len(p.widths) {
		panic("incorrect number of columns")
	}
	// Update column widths
	for i, v := range vals {
		p.widths[i] = max(p.widths[i], uint(len(v)))
	}
	//
	p.rows = append(p.rows, vals)
	p.escapes = append(p.escapes, make([]string, len(vals)))
	//
	return uint(len(p.rows) - 1)
}

// Get the contents of a given cell in this table
func (p *TablePrinter) Get(col uint, row uint) string {
	return p.rows[row][col]
}

// SetEscape set the colour to use when printing the contents of a given cell
func (p *TablePrinter) SetEscape(col uint, row uint, escape AnsiEscape) {
	p.escapes[row][col] = escape.Build()
}

// AnsiEscapes enables or disables the use of ANSI escapes (e.g. for showing
// colour).  Disabling escapes is useful when the output is not a terminal, as
// otherwise the escape characters become visible.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.enableEscapes = enable
}

// SetMaxWidth puts an upper bound on the width of any column.
func (p *TablePrinter) SetMaxWidth(width uint) {
	for i := range p.widths {
		p.widths[i] = min(p.widths[i], max(width, 2))
	}
}

// Print the table to a given writer.  Cells wider than their column are
// truncated.
func (p *TablePrinter) Print(w io.Writer) error {
	for i, row := range p.rows {
		for j, col := range row {
			var (
				width  = p.widths[j]
				escape = p.escapes[i][j]
				err    error
			)
			// Print colour (if applicable)
			if p.enableEscapes && escape != "" {
				if _, err = io.WriteString(w, escape); err != nil {
					return err
				}
			}
			// Print data
			if uint(len(col)) > width {
				_, err = fmt.Fprintf(w, " %*s..", width-2, col[:width-2])
			} else {
				_, err = fmt.Fprintf(w, " %*s", width, col)
			}
			//
			if err != nil {
				return err
			}
			// Cancel colour (if applicable)
			if p.enableEscapes && escape != "" {
				if _, err = io.WriteString(w, ResetAnsiEscape().Build()); err != nil {
					return err
				}
			}
			//
			if _, err = io.WriteString(w, " |"); err != nil {
				return err
			}
		}
		//
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	//
	return nil
}
