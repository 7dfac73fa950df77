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
	"errors"
	"fmt"
	"strings"

	"github.com/consensys/go-testprog/pkg/mmu/coverage"
)

// Scenario describes the memory subsystem under test (its address spaces and
// the execution paths through it), along with a sequence of accesses for which
// templates are enumerated.
type Scenario struct {
	Name   string        `yaml:"name"`
	Spaces []SpaceConfig `yaml:"spaces"`
	Paths  []PathConfig  `yaml:"paths"`
	// Candidate paths for each access, by name.  An empty list stands for all
	// paths.
	Accesses [][]string `yaml:"accesses"`
	// Dependencies admitted between given pairs of accesses.  Other pairs admit
	// every dependency.
	Hazards []HazardConfig `yaml:"hazards"`
	// When set, each access considers only one (randomly chosen) path from each
	// class of interchangeable paths.
	Sample bool `yaml:"sample"`
}

// SpaceConfig describes an address space.
type SpaceConfig struct {
	Name    string `yaml:"name"`
	Width   uint   `yaml:"width"`
	Virtual bool   `yaml:"virtual"`
}

// PathConfig describes an execution path.
type PathConfig struct {
	Name   string `yaml:"name"`
	Access string `yaml:"access"`
	// Name of the address space in which this path starts.
	Start string `yaml:"start"`
	// Names of other address spaces this path goes through.
	Spaces []string `yaml:"spaces"`
	// Class of interchangeable paths this path belongs to.  Defaults to the
	// path's own name.
	Class string `yaml:"class"`
}

// HazardConfig restricts the dependencies between two accesses, identified by
// their position.
type HazardConfig struct {
	From uint `yaml:"from"`
	To   uint `yaml:"to"`
	// Alternative dependencies, each a list of hazards written "SPACE.TYPE"
	// (e.g. "VA.ADDR_LESS").  An empty list stands for no hazard at all.
	Dependencies [][]string `yaml:"dependencies"`
}

// Model is a scenario resolved into coverage objects.
type Model struct {
	Name     string
	Spaces   []*coverage.AddressSpace
	Paths    []*coverage.ExecutionPath
	Accesses [][]*coverage.ExecutionPath
	Sample   bool
	classes  map[*coverage.ExecutionPath]string
	hazards  map[[2]uint][]*coverage.Dependency
}

// Class returns the class of a given path.
func (m *Model) Class(path *coverage.ExecutionPath) string {
	return m.classes[path]
}

// Dependencies returns the possible dependencies between the i-th and j-th
// accesses (where i < j) following the given paths.  Pairs without configured
// hazards admit every dependency.  A configured dependency is admitted only
// when both paths touch every address space it mentions.
func (m *Model) Dependencies(i uint, j uint, lhs *coverage.ExecutionPath,
	rhs *coverage.ExecutionPath) []*coverage.Dependency {
	deps, ok := m.hazards[[2]uint{i, j}]
	//
	if !ok {
		return coverage.AllDependencies(lhs, rhs)
	}
	//
	var admitted []*coverage.Dependency
	//
	for _, dep := range deps {
		if touchesAll(lhs, dep) && touchesAll(rhs, dep) {
			admitted = append(admitted, dep)
		}
	}
	//
	return admitted
}

func touchesAll(path *coverage.ExecutionPath, dep *coverage.Dependency) bool {
	for _, h := range dep.Hazards() {
		if !path.Touches(h.Space) {
			return false
		}
	}
	//
	return true
}

// Build resolves this scenario into coverage objects, checking that all names
// are defined exactly once.
func (s *Scenario) Build() (*Model, error) {
	model := &Model{Name: s.Name, Sample: s.Sample, classes: make(map[*coverage.ExecutionPath]string),
		hazards: make(map[[2]uint][]*coverage.Dependency)}
	spaces := make(map[string]*coverage.AddressSpace)
	paths := make(map[string]*coverage.ExecutionPath)
	//
	for _, sc := range s.Spaces {
		if _, ok := spaces[sc.Name]; ok || sc.Name == "" {
			return nil, fmt.Errorf("invalid or duplicate address space \"%s\"", sc.Name)
		}
		//
		space := coverage.NewAddressSpace(sc.Name, sc.Width, sc.Virtual)
		spaces[sc.Name] = space
		model.Spaces = append(model.Spaces, space)
	}
	//
	for _, pc := range s.Paths {
		path, err := pc.build(spaces)
		//
		if err != nil {
			return nil, err
		} else if _, ok := paths[pc.Name]; ok {
			return nil, fmt.Errorf("duplicate execution path \"%s\"", pc.Name)
		}
		//
		paths[pc.Name] = path
		model.Paths = append(model.Paths, path)
		//
		if pc.Class != "" {
			model.classes[path] = pc.Class
		} else {
			model.classes[path] = pc.Name
		}
	}
	//
	if len(s.Accesses) == 0 {
		return nil, errors.New("no accesses")
	}
	//
	for i, names := range s.Accesses {
		var candidates []*coverage.ExecutionPath
		//
		if len(names) == 0 {
			candidates = model.Paths
		}
		//
		for _, name := range names {
			path, ok := paths[name]
			//
			if !ok {
				return nil, fmt.Errorf("access %d: unknown execution path \"%s\"", i, name)
			}
			//
			candidates = append(candidates, path)
		}
		//
		if len(candidates) == 0 {
			return nil, fmt.Errorf("access %d has no candidate paths", i)
		}
		//
		model.Accesses = append(model.Accesses, candidates)
	}
	//
	for _, hc := range s.Hazards {
		key := [2]uint{hc.From, hc.To}
		//
		if hc.From >= hc.To || hc.To >= uint(len(s.Accesses)) {
			return nil, fmt.Errorf("hazards between invalid accesses (%d,%d)", hc.From, hc.To)
		} else if _, ok := model.hazards[key]; ok {
			return nil, fmt.Errorf("duplicate hazards between accesses (%d,%d)", hc.From, hc.To)
		}
		//
		deps, err := hc.build(spaces)
		//
		if err != nil {
			return nil, fmt.Errorf("hazards between accesses (%d,%d): %w", hc.From, hc.To, err)
		}
		//
		model.hazards[key] = deps
	}
	//
	return model, nil
}

func (hc *HazardConfig) build(spaces map[string]*coverage.AddressSpace) ([]*coverage.Dependency, error) {
	if len(hc.Dependencies) == 0 {
		return nil, errors.New("no dependencies")
	}
	//
	deps := make([]*coverage.Dependency, len(hc.Dependencies))
	//
	for i, names := range hc.Dependencies {
		hazards := make([]coverage.Hazard, len(names))
		//
		for k, name := range names {
			hazard, err := parseHazard(name, spaces)
			//
			if err != nil {
				return nil, err
			}
			//
			hazards[k] = hazard
		}
		//
		deps[i] = coverage.NewDependency(hazards...)
	}
	//
	return deps, nil
}

// Parse a hazard written "SPACE.TYPE".
func parseHazard(name string, spaces map[string]*coverage.AddressSpace) (coverage.Hazard, error) {
	split := strings.LastIndex(name, ".")
	//
	if split < 0 {
		return coverage.Hazard{}, fmt.Errorf("malformed hazard \"%s\"", name)
	}
	//
	space, ok := spaces[name[:split]]
	//
	if !ok {
		return coverage.Hazard{}, fmt.Errorf("unknown address space \"%s\"", name[:split])
	}
	//
	t, err := coverage.ParseHazardType(name[split+1:])
	//
	if err != nil {
		return coverage.Hazard{}, err
	}
	//
	return coverage.NewHazard(t, space), nil
}

func (pc *PathConfig) build(spaces map[string]*coverage.AddressSpace) (*coverage.ExecutionPath, error) {
	if pc.Name == "" {
		return nil, errors.New("execution path without a name")
	}
	//
	access, err := coverage.ParseAccessType(pc.Access)
	//
	if err != nil {
		return nil, fmt.Errorf("execution path \"%s\": %w", pc.Name, err)
	}
	//
	start, ok := spaces[pc.Start]
	//
	if !ok {
		return nil, fmt.Errorf("execution path \"%s\": unknown address space \"%s\"", pc.Name, pc.Start)
	}
	//
	others := make([]*coverage.AddressSpace, len(pc.Spaces))
	//
	for i, name := range pc.Spaces {
		if others[i], ok = spaces[name]; !ok {
			return nil, fmt.Errorf("execution path \"%s\": unknown address space \"%s\"", pc.Name, name)
		}
	}
	//
	return coverage.NewExecutionPath(pc.Name, access, start, others...), nil
}
