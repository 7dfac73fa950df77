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
	"fmt"
	"strings"

	"github.com/consensys/go-testprog/pkg/config"
	"github.com/consensys/go-testprog/pkg/engine"
	"github.com/consensys/go-testprog/pkg/mmu/coverage"
	"github.com/consensys/go-testprog/pkg/mmu/filter"
	"github.com/consensys/go-testprog/pkg/mmu/iterator"
	"github.com/consensys/go-testprog/pkg/sequence"
	"github.com/consensys/go-testprog/pkg/util/collection/iter"
	"github.com/consensys/go-testprog/pkg/util/random"
	log "github.com/sirupsen/logrus"
)

// ScenarioCombinator combines the templates of scenarios generated into a
// single program.  Scenarios advance in lockstep, so the i-th templates of all
// scenarios form one block, and shorter scenarios restart until the longest
// has been exhausted.
const ScenarioCombinator = "diagonal"

// Generate test programs for every scenario of a (valid) configuration.  When
// more than one unit of work is permitted, each scenario is generated
// independently (and concurrently), giving one report per scenario.
// Otherwise, the templates of all scenarios are combined into blocks, each of
// which is merged by the configured compositor, giving a single program and
// one report.
func Generate(ctx context.Context, cfg *config.Config) ([]*engine.Report, error) {
	var (
		rnd    = random.New(cfg.Seed)
		models = make([]*config.Model, len(cfg.Scenarios))
		err    error
	)
	//
	for i := range cfg.Scenarios {
		if models[i], err = cfg.Scenarios[i].Build(); err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
	}
	//
	if cfg.Parallel > 1 && len(models) > 1 {
		log.Debugf("generating %d scenarios (%d at a time)", len(models), cfg.Parallel)
		//
		return engine.RunParallel(ctx, uint(len(models)), cfg.Parallel, rnd,
			func(i uint, rnd *random.Random) (*engine.Pipeline, error) {
				templates, err := newTemplates(cfg, models[i], rnd)
				if err != nil {
					return nil, err
				}
				//
				return newPipeline(cfg, models[i].Name, templates, models[i].Spaces)
			})
	}
	// Sequential generation
	var (
		names   = make([]string, len(models))
		spaces  []*coverage.AddressSpace
		builder = sequence.NewBuilder[*coverage.Template](rnd)
	)
	//
	builder.SetCombinator(ScenarioCombinator).SetCompositor(cfg.Compositor)
	//
	for i, model := range models {
		templates, err := newTemplates(cfg, model, rnd.Fork(uint64(i)))
		if err != nil {
			return nil, err
		}
		//
		names[i] = model.Name
		spaces = append(spaces, model.Spaces...)
		// An exhausted block would end the lockstep enumeration at once.
		if !templates.HasValue() {
			log.Debugf("scenario %s has no templates", model.Name)
			continue
		}
		//
		builder.AddSequence(iter.NewProjectSequence[*coverage.Template](templates, block))
	}
	//
	blocks, err := builder.Build()
	if err != nil {
		return nil, err
	}
	//
	templates := iter.NewFlattenSequence(blocks)
	//
	pipeline, err := newPipeline(cfg, strings.Join(names, "+"), templates, spaces)
	if err != nil {
		return nil, err
	}
	//
	report, err := pipeline.Run(ctx)
	//
	return []*engine.Report{report}, err
}

// Wrap a template as a block of its own.
func block(template *coverage.Template) []*coverage.Template {
	return []*coverage.Template{template}
}

// Construct the sequence of templates for a given scenario.  The candidate
// paths for each access are combined using the configured combinator, and the
// dependencies between accesses follow the scenario's hazards.  When
// sampling, each access considers only one representative of each class of
// interchangeable paths.
func newTemplates(cfg *config.Config, model *config.Model, rnd *random.Random) (*iterator.TemplateIterator, error) {
	accesses := model.Accesses
	//
	if model.Sample {
		accesses = make([][]*coverage.ExecutionPath, len(model.Accesses))
		//
		for i, paths := range model.Accesses {
			accesses[i] = iterator.Representatives(iterator.Classify(paths, model.Class, rnd))
			log.Debugf("access %d of %s: %d paths sampled from %d", i, model.Name, len(accesses[i]), len(paths))
		}
	}
	//
	paths, err := sequence.NewCombinator(cfg.Combinator, rnd, iterator.AccessSequences(accesses)...)
	if err != nil {
		return nil, err
	}
	//
	return iterator.NewTemplateIterator(paths, model.Dependencies), nil
}

// Construct the pipeline for a given sequence of templates, whose paths should
// only touch the given address spaces.
func newPipeline(cfg *config.Config, name string, templates iter.Sequence[*coverage.Template],
	spaces []*coverage.AddressSpace) (*engine.Pipeline, error) {
	adapter, err := engine.NewAdapter(cfg.Adapter)
	if err != nil {
		return nil, err
	}
	//
	adapter.Configure(cfg.Options)
	//
	return &engine.Pipeline{
		Name:          name,
		Templates:     templates,
		Filter:        filter.Default().AddExecutionFilter(filter.WithinSpaces(spaces...)),
		Solver:        engine.NewTemplateSolver(cfg.Engine.MemoryBase, cfg.Engine.Alignment),
		Adapter:       adapter,
		Context:       engine.NewEngineContext(cfg.Engine),
		MaxCandidates: cfg.MaxCandidates,
	}, nil
}
