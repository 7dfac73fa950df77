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
	"context"
	"strings"
	"testing"

	"github.com/consensys/go-testprog/pkg/config"
	"github.com/consensys/go-testprog/pkg/engine"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDir determines the (relative) location of the test directory.
const TestDir = "../../testdata"

func Test_Generate_1(t *testing.T) {
	cfg := loadConfig(t, "tlb.yaml")
	reports, err := Generate(context.Background(), cfg)
	//
	require.NoError(t, err)
	require.Len(t, reports, 1)
	//
	r := reports[0]
	assert.Equal(t, "tlb+uncached", r.Name)
	assert.Equal(t, uint(8), r.Enumerated)
	assert.Equal(t, uint(1), r.Filtered)
	assert.Equal(t, uint(0), r.Unsolved)
	assert.Equal(t, uint(7), r.Adapted)
	assert.Len(t, r.Sequences, 7)
}

func Test_Generate_2(t *testing.T) {
	cfg := loadConfig(t, "tlb.yaml")
	cfg.Parallel = 2
	reports, err := Generate(context.Background(), cfg)
	//
	require.NoError(t, err)
	require.Len(t, reports, 2)
	// Reports are in scenario order
	assert.Equal(t, "tlb", reports[0].Name)
	assert.Equal(t, uint(4), reports[0].Enumerated)
	assert.Equal(t, uint(3), reports[0].Adapted)
	assert.Equal(t, "uncached", reports[1].Name)
	assert.Equal(t, uint(4), reports[1].Adapted)
}

func Test_Generate_3(t *testing.T) {
	cfg := loadConfig(t, "tlb.yaml")
	cfg.MaxCandidates = 2
	reports, err := Generate(context.Background(), cfg)
	//
	require.NoError(t, err)
	assert.Equal(t, uint(2), reports[0].Enumerated)
}

func Test_Generate_4(t *testing.T) {
	// Generation is reproducible for a given seed, whatever the strategies.
	for _, combinator := range []string{"product", "diagonal", "random"} {
		for _, compositor := range []string{"catenation", "rotation", "random"} {
			lhs, rhs := loadConfig(t, "tlb.yaml"), loadConfig(t, "tlb.yaml")
			lhs.Combinator, rhs.Combinator = combinator, combinator
			lhs.Compositor, rhs.Compositor = compositor, compositor
			//
			assert.Equal(t, program(t, lhs), program(t, rhs), "%s/%s", combinator, compositor)
		}
	}
}

func Test_Generate_5(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	//
	_, err := Generate(ctx, loadConfig(t, "tlb.yaml"))
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_Generate_6(t *testing.T) {
	cfg := loadConfig(t, "tlb.yaml")
	cfg.Adapter = "cache"
	//
	_, err := Generate(context.Background(), cfg)
	assert.Error(t, err)
}

func Test_Generate_7(t *testing.T) {
	// The store is ordered below the first load, which the second load shares.
	reports, err := Generate(context.Background(), loadConfig(t, "ordered.yaml"))
	//
	require.NoError(t, err)
	require.Len(t, reports, 1)
	//
	r := reports[0]
	assert.Equal(t, uint(4), r.Enumerated)
	assert.Equal(t, uint(2), r.Filtered)
	assert.Equal(t, uint(1), r.Unsolved)
	assert.Equal(t, uint(1), r.Adapted)
	require.Len(t, r.Sequences, 1)
	//
	text := r.Sequences[0].String()
	assert.Contains(t, text, "0x10008")
	assert.Contains(t, text, "0x10000")
}

func Test_Generate_8(t *testing.T) {
	// Scenarios generated into one program advance in lockstep, each keeping
	// the templates it has when generated on its own.
	parallel := loadConfig(t, "tlb.yaml")
	parallel.Parallel = 2
	//
	lhs, err := Generate(context.Background(), loadConfig(t, "tlb.yaml"))
	require.NoError(t, err)
	rhs, err := Generate(context.Background(), parallel)
	require.NoError(t, err)
	//
	var (
		merged   = lhs[0].Sequences
		tlb      = rhs[0].Sequences
		uncached = rhs[1].Sequences
	)
	//
	require.Len(t, merged, len(tlb)+len(uncached))
	require.Len(t, tlb, 3)
	//
	for i, expected := range []*engine.ConcreteSequence{tlb[0], uncached[0], tlb[1], uncached[1]} {
		assert.Equal(t, expected.String(), merged[i].String(), "sequence %d", i)
	}
}

func Test_ApplyOverrides_1(t *testing.T) {
	cmd := &cobra.Command{}
	registerRootFlags(cmd)
	registerGenerateFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--seed", "9", "--combinator", "diagonal", "-j", "4",
		"-D", "preparator=dynamic", "-D", "stream-size=128"}))
	//
	cfg := loadConfig(t, "tlb.yaml")
	require.NoError(t, applyOverrides(cmd, cfg))
	//
	assert.Equal(t, uint64(9), cfg.Seed)
	assert.Equal(t, "diagonal", cfg.Combinator)
	assert.Equal(t, uint(4), cfg.Parallel)
	assert.Equal(t, "dynamic", cfg.Options.String("preparator", ""))
	assert.Equal(t, 128, cfg.Options.Int("stream-size", 0))
	// Unset flags do not override the configuration file
	assert.Equal(t, "catenation", cfg.Compositor)
	assert.True(t, cfg.Options.Bool("reuse-registers", false))
	assert.NoError(t, cfg.Validate())
}

func Test_ApplyOverrides_2(t *testing.T) {
	cmd := &cobra.Command{}
	registerGenerateFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"-D", "preparator"}))
	//
	assert.Error(t, applyOverrides(cmd, loadConfig(t, "tlb.yaml")))
}

func Test_PrintReports(t *testing.T) {
	var out strings.Builder
	//
	report := engine.NewReport("tlb")
	report.Enumerated, report.Adapted, report.Failed = 4, 3, 1
	//
	require.NoError(t, printReports(&out, []*engine.Report{report, nil}, false))
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	//
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "scenario")
	assert.Equal(t, "      tlb |          4 |        0 |        0 |       3 |      1 |", lines[1])
	assert.NotContains(t, out.String(), "\033")
	// Escapes when printing to a terminal
	out.Reset()
	require.NoError(t, printReports(&out, []*engine.Report{report}, true))
	assert.Contains(t, out.String(), "\033[32m")
}

func Test_WriteProgram(t *testing.T) {
	var out strings.Builder
	//
	reports, err := Generate(context.Background(), loadConfig(t, "tlb.yaml"))
	require.NoError(t, err)
	require.NoError(t, writeProgram(&out, reports))
	//
	text := out.String()
	assert.True(t, strings.HasPrefix(text, "// tlb+uncached ("))
	assert.Contains(t, text, "// sequence 6\n")
	assert.NotContains(t, text, "// sequence 7\n")
}

// ============================================================================
// Test Helpers
// ============================================================================

func loadConfig(t *testing.T, name string) *config.Config {
	t.Helper()
	//
	cfg, err := config.Load(TestDir + "/" + name)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	//
	return cfg
}

// Generate a configuration, returning the text of the program.  Report
// identifiers are omitted since they are unique to each run.
func program(t *testing.T, cfg *config.Config) string {
	t.Helper()
	//
	var builder strings.Builder
	//
	reports, err := Generate(context.Background(), cfg)
	require.NoError(t, err)
	//
	for _, r := range reports {
		for _, seq := range r.Sequences {
			builder.WriteString(seq.String())
		}
	}
	//
	return builder.String()
}
