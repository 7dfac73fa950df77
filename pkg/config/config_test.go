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
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-testprog/pkg/mmu/coverage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioYaml = `
seed: 7
combinator: diagonal
max-candidates: 100
options:
  preparator: dynamic
  reuse-registers: true
  limit: 3
engine:
  registers: [a0, a1]
  delay-slot: 1
scenarios:
  - name: tlb
    spaces:
      - {name: VA, width: 64, virtual: true}
      - {name: PA, width: 36}
    paths:
      - {name: hit, access: load, start: VA, spaces: [PA], class: fast}
      - {name: miss, access: load, start: VA, spaces: [PA]}
      - {name: store, access: store, start: VA, spaces: [PA], class: fast}
    accesses:
      - [hit, miss]
      - []
    hazards:
      - from: 0
        to: 1
        dependencies:
          - [VA.ADDR_LESS]
          - [VA.ADDR_EQUAL, PA.addr_equal]
          - []
    sample: true
`

func Test_Parse_1(t *testing.T) {
	cfg, err := Parse([]byte(scenarioYaml))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	//
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, "diagonal", cfg.Combinator)
	// Unset fields retain their defaults
	assert.Equal(t, "catenation", cfg.Compositor)
	assert.Equal(t, "memory", cfg.Adapter)
	assert.Equal(t, uint64(8), cfg.Engine.Alignment)
	assert.Equal(t, []string{"a0", "a1"}, cfg.Engine.Registers)
	assert.Equal(t, uint(1), cfg.Engine.DelaySlot)
	//
	assert.Equal(t, "dynamic", cfg.Options.String("preparator", "static"))
	assert.True(t, cfg.Options.Bool("reuse-registers", false))
	assert.Equal(t, 3, cfg.Options.Int("limit", 0))
}

func Test_Parse_2(t *testing.T) {
	_, err := Parse([]byte("seeed: 1\n"))
	assert.Error(t, err)
	// Empty input gives the defaults
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	// Which is invalid for lack of scenarios
	assert.Error(t, cfg.Validate())
}

func Test_Load(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(scenarioYaml), 0o600))
	//
	cfg, err := Load(filename)
	require.NoError(t, err)
	assert.Len(t, cfg.Scenarios, 1)
	//
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func Test_Validate(t *testing.T) {
	for _, mutate := range []func(*Config){
		func(c *Config) { c.Combinator = "zigzag" },
		func(c *Config) { c.Compositor = "shuffle" },
		func(c *Config) { c.Adapter = "cache" },
		func(c *Config) { c.Parallel = 0 },
		func(c *Config) { c.Engine.Registers = nil },
		func(c *Config) { c.Engine.MemorySize = 0 },
		func(c *Config) { c.Engine.Alignment = 12 },
		func(c *Config) { c.Scenarios[0].Accesses = append(c.Scenarios[0].Accesses, []string{"nowhere"}) },
	} {
		cfg, err := Parse([]byte(scenarioYaml))
		require.NoError(t, err)
		mutate(cfg)
		assert.Error(t, cfg.Validate())
	}
}

func Test_Scenario_Build(t *testing.T) {
	cfg, err := Parse([]byte(scenarioYaml))
	require.NoError(t, err)
	model, err := cfg.Scenarios[0].Build()
	require.NoError(t, err)
	//
	require.Len(t, model.Spaces, 2)
	require.Len(t, model.Paths, 3)
	require.Len(t, model.Accesses, 2)
	assert.Len(t, model.Accesses[0], 2)
	assert.Equal(t, model.Paths, model.Accesses[1])
	assert.True(t, model.Sample)
	// Paths share address spaces by identity
	hit, store := model.Paths[0], model.Paths[2]
	assert.Same(t, hit.StartAddress(), store.StartAddress())
	assert.Equal(t, "fast", model.Class(hit))
	assert.Equal(t, "miss", model.Class(model.Paths[1]))
	// Configured hazards
	deps := model.Dependencies(0, 1, hit, store)
	require.Len(t, deps, 3)
	assert.Equal(t, "{VA.ADDR_LESS}", deps[0].String())
	assert.Equal(t, "{VA.ADDR_EQUAL, PA.ADDR_EQUAL}", deps[1].String())
	assert.True(t, deps[2].IsEmpty())
}

func Test_Scenario_Hazards(t *testing.T) {
	scenario := Scenario{
		Spaces: []SpaceConfig{{Name: "VA", Width: 64, Virtual: true}, {Name: "PA", Width: 36}},
		Paths: []PathConfig{
			{Name: "v", Access: "load", Start: "VA"},
			{Name: "p", Access: "store", Start: "VA", Spaces: []string{"PA"}},
		},
		Accesses: [][]string{{"v", "p"}, {"p"}, {"p"}},
		Hazards: []HazardConfig{
			{From: 0, To: 2, Dependencies: [][]string{{"PA.ADDR_GREATER"}, {"VA.ADDR_NOT_EQUAL"}}},
		},
	}
	model, err := scenario.Build()
	require.NoError(t, err)
	//
	v, p := model.Paths[0], model.Paths[1]
	// Dependencies on spaces a path does not touch are dropped
	deps := model.Dependencies(0, 2, v, p)
	require.Len(t, deps, 1)
	assert.True(t, deps[0].Has(coverage.AddrNotEqual, model.Spaces[0]))
	assert.Len(t, model.Dependencies(0, 2, p, p), 2)
	// Other pairs admit every dependency
	assert.Equal(t, coverage.AllDependencies(p, p), model.Dependencies(1, 2, p, p))
}

func Test_Scenario_Invalid(t *testing.T) {
	spaces := []SpaceConfig{{Name: "VA", Width: 64, Virtual: true}}
	path := PathConfig{Name: "p", Access: "load", Start: "VA"}
	//
	for _, s := range []Scenario{
		{Spaces: spaces, Paths: []PathConfig{path}},
		{Spaces: append(spaces, spaces...), Paths: []PathConfig{path}, Accesses: [][]string{{}}},
		{Spaces: spaces, Paths: []PathConfig{path, path}, Accesses: [][]string{{}}},
		{Spaces: spaces, Paths: []PathConfig{{Name: "p", Access: "jump", Start: "VA"}}, Accesses: [][]string{{}}},
		{Spaces: spaces, Paths: []PathConfig{{Name: "p", Access: "load", Start: "PA"}}, Accesses: [][]string{{}}},
		{Spaces: spaces, Accesses: [][]string{{}}},
	} {
		_, err := s.Build()
		assert.Error(t, err)
	}
	//
	for _, hc := range []HazardConfig{
		{From: 1, To: 1, Dependencies: [][]string{{}}},
		{From: 0, To: 2, Dependencies: [][]string{{}}},
		{From: 0, To: 1},
		{From: 0, To: 1, Dependencies: [][]string{{"VA"}}},
		{From: 0, To: 1, Dependencies: [][]string{{"PA.ADDR_EQUAL"}}},
		{From: 0, To: 1, Dependencies: [][]string{{"VA.ADDR_NEAR"}}},
	} {
		s := Scenario{Spaces: spaces, Paths: []PathConfig{path}, Accesses: [][]string{{}, {}},
			Hazards: []HazardConfig{hc}}
		_, err := s.Build()
		assert.Error(t, err, "%v", hc)
	}
	// Pairs are configured at most once
	hc := HazardConfig{From: 0, To: 1, Dependencies: [][]string{{"VA.ADDR_EQUAL"}}}
	s := Scenario{Spaces: spaces, Paths: []PathConfig{path}, Accesses: [][]string{{}, {}},
		Hazards: []HazardConfig{hc, hc}}
	_, err := s.Build()
	assert.ErrorContains(t, err, "duplicate hazards")
}

func Test_Options(t *testing.T) {
	options, err := ParseOptions([]string{"preparator=static", "depth=4", "flag=yes"})
	require.NoError(t, err)
	//
	assert.Equal(t, "static", options.String("preparator", ""))
	assert.Equal(t, 4, options.Int("depth", 0))
	// Malformed or missing values give the default
	assert.True(t, options.Bool("flag", true))
	assert.Equal(t, 9, options.Int("preparator", 9))
	assert.Equal(t, "x", options.String("unknown", "x"))
	//
	merged := Options{"depth": 1, "other": true}.Merge(options)
	assert.Equal(t, 4, merged.Int("depth", 0))
	assert.True(t, merged.Bool("other", false))
	//
	_, err = ParseOptions([]string{"novalue"})
	assert.Error(t, err)
}
