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
package cmd

import (
	"fmt"
	"io"

	"github.com/consensys/go-testprog/pkg/engine"
	"github.com/consensys/go-testprog/pkg/util/termio"
)

// Print a summary table of the given reports.  Adapted sequences are
// highlighted in green, and failures in red.
func printReports(w io.Writer, reports []*engine.Report, ansi bool) error {
	tbl := termio.NewTablePrinter(6)
	tbl.AddRow("scenario", "enumerated", "filtered", "unsolved", "adapted", "failed")
	//
	for _, r := range reports {
		if r == nil {
			continue
		}
		//
		row := tbl.AddRow(r.Name, count(r.Enumerated), count(r.Filtered), count(r.Unsolved), count(r.Adapted),
			count(r.Failed))
		//
		if r.Adapted > 0 {
			tbl.SetEscape(4, row, termio.NewAnsiEscape().FgColour(termio.TERM_GREEN))
		}
		//
		if r.Failed > 0 {
			tbl.SetEscape(5, row, termio.NewAnsiEscape().Bold().FgColour(termio.TERM_RED))
		}
	}
	//
	tbl.SetMaxWidth(32)
	tbl.AnsiEscapes(ansi)
	//
	return tbl.Print(w)
}

// Write the sequences of the given reports as a single program.
func writeProgram(w io.Writer, reports []*engine.Report) error {
	for _, r := range reports {
		if r == nil {
			continue
		}
		//
		if _, err := fmt.Fprintf(w, "// %s (%s)\n", r.Name, r.ID); err != nil {
			return err
		}
		//
		for i, seq := range r.Sequences {
			if _, err := fmt.Fprintf(w, "// sequence %d\n%s\n", i, seq); err != nil {
				return err
			}
		}
	}
	//
	return nil
}

func count(n uint) string {
	return fmt.Sprintf("%d", n)
}
