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
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"os"
	"slices"

	"github.com/consensys/go-testprog/pkg/sequence"
	"gopkg.in/yaml.v3"
)

// Adapters lists the names of the available adapters.
var Adapters = []string{"memory", "branch"}

// Config holds the configuration of a generation run.
type Config struct {
	// Seed of the random source.  A run is reproducible given its seed.
	Seed uint64 `yaml:"seed"`
	// Strategy used to combine the candidate paths of each access.
	Combinator string `yaml:"combinator"`
	// Strategy used to merge the templates of several scenarios.
	Compositor string `yaml:"compositor"`
	// Maximum number of templates enumerated per unit of generation (0 means no
	// bound).
	MaxCandidates uint `yaml:"max-candidates"`
	// Number of scenarios processed concurrently.
	Parallel uint `yaml:"parallel"`
	// Name of the adapter used to concretise abstract sequences.
	Adapter string `yaml:"adapter"`
	// Options passed to the adapter.
	Options Options `yaml:"options"`
	// Resources of the engine context.
	Engine EngineConfig `yaml:"engine"`
	// Scenarios to generate programs for.
	Scenarios []Scenario `yaml:"scenarios"`
}

// EngineConfig describes the resources available to adapters.
type EngineConfig struct {
	Registers  []string `yaml:"registers"`
	MemoryBase uint64   `yaml:"memory-base"`
	MemorySize uint64   `yaml:"memory-size"`
	Alignment  uint64   `yaml:"alignment"`
	DelaySlot  uint     `yaml:"delay-slot"`
}

// Default returns the default configuration, which has no scenarios.
func Default() *Config {
	return &Config{
		Seed:       1,
		Combinator: "product",
		Compositor: "catenation",
		Parallel:   1,
		Adapter:    "memory",
		Options:    Options{},
		Engine: EngineConfig{
			Registers:  []string{"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15"},
			MemoryBase: 0x1000,
			MemorySize: 0x10000,
			Alignment:  8,
		},
	}
}

// Load reads a configuration from a YAML file.  Fields missing from the file
// retain their default values.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	//
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	//
	return Parse(data)
}

// Parse reads a configuration from YAML.  Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	//
	return cfg, nil
}

// Validate checks this configuration is well-formed.
func (c *Config) Validate() error {
	switch {
	case !slices.Contains(sequence.Combinators, c.Combinator):
		return fmt.Errorf("unknown combinator \"%s\"", c.Combinator)
	case !slices.Contains(sequence.Compositors, c.Compositor):
		return fmt.Errorf("unknown compositor \"%s\"", c.Compositor)
	case !slices.Contains(Adapters, c.Adapter):
		return fmt.Errorf("unknown adapter \"%s\"", c.Adapter)
	case c.Parallel == 0:
		return errors.New("parallel must be at least 1")
	case len(c.Engine.Registers) == 0:
		return errors.New("no registers available")
	case c.Engine.MemorySize == 0:
		return errors.New("memory size must be non-zero")
	case c.Engine.Alignment == 0 || bits.OnesCount64(c.Engine.Alignment) != 1:
		return fmt.Errorf("alignment %d is not a power of two", c.Engine.Alignment)
	case len(c.Scenarios) == 0:
		return errors.New("no scenarios")
	}
	//
	for i := range c.Scenarios {
		if _, err := c.Scenarios[i].Build(); err != nil {
			return fmt.Errorf("scenario %d: %w", i, err)
		}
	}
	//
	return nil
}
