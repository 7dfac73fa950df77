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
	"context"
	"fmt"

	"github.com/consensys/go-testprog/pkg/mmu/coverage"
	"github.com/consensys/go-testprog/pkg/mmu/filter"
	"github.com/consensys/go-testprog/pkg/util"
	"github.com/consensys/go-testprog/pkg/util/collection/iter"
	"github.com/consensys/go-testprog/pkg/util/random"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Pipeline is a single unit of generation.  Templates are enumerated, filtered,
// solved and, finally, adapted into concrete sequences.  Each stage only sees
// what the previous one accepted.
type Pipeline struct {
	Name      string
	Templates iter.Sequence[*coverage.Template]
	// Filter applied to every template (nil accepts everything).
	Filter  *filter.Template
	Solver  Solver
	Adapter Adapter
	Context *EngineContext
	// Maximum number of templates to enumerate (0 means no bound).
	MaxCandidates uint
}

// Report summarises the outcome of running a pipeline.
type Report struct {
	ID   uuid.UUID
	Name string
	// Number of templates enumerated.
	Enumerated uint
	// Number of templates discarded by the filter.
	Filtered uint
	// Number of templates the solver could not satisfy.
	Unsolved uint
	// Number of sequences adapted successfully.
	Adapted uint
	// Number of sequences which could not be adapted.
	Failed uint
	// Concrete sequences constructed.
	Sequences []*ConcreteSequence
	// Diagnostics of failed adaptations.
	Diagnostics []string
}

// NewReport constructs an empty report with a fresh identifier.
func NewReport(name string) *Report {
	return &Report{ID: uuid.New(), Name: name}
}

func (r *Report) String() string {
	return fmt.Sprintf("%s: %d enumerated, %d filtered, %d unsolved, %d adapted, %d failed",
		r.Name, r.Enumerated, r.Filtered, r.Unsolved, r.Adapted, r.Failed)
}

// Run the pipeline to completion, or until the given context is cancelled.  In
// the latter case the report so far is returned along with the context's
// error.  Adaptation failures are recorded in the report, and do not stop the
// run.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	var (
		report = NewReport(p.Name)
		stats  = util.NewPerfStats()
	)
	//
	p.Context.Memory.Reset()
	p.Adapter.OnStartProgram()
	//
	defer p.Adapter.OnEndProgram()
	//
	for p.Templates.HasValue() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		//
		template := p.Templates.Value()
		report.Enumerated++
		//
		p.process(ctx, template, report)
		//
		if p.MaxCandidates != 0 && report.Enumerated >= p.MaxCandidates {
			p.Templates.Stop()
		} else {
			p.Templates.Next()
		}
	}
	//
	stats.Log(fmt.Sprintf("Generation (%s)", p.Name))
	log.Info(report.String())
	//
	return report, nil
}

// Process a single template.
func (p *Pipeline) process(ctx context.Context, template *coverage.Template, report *Report) {
	if p.Filter != nil && !p.Filter.Test(template) {
		report.Filtered++
		return
	}
	//
	sequence, ok := p.Solver.Solve(ctx, template)
	//
	if !ok {
		report.Unsolved++
		return
	}
	//
	result := p.Adapter.Adapt(p.Context, sequence)
	//
	if result.IsOK() {
		report.Adapted++
		report.Sequences = append(report.Sequences, result.Sequence())
		//
		return
	}
	//
	report.Failed++
	//
	for _, e := range result.Errors() {
		log.Debugf("adaptation of %s failed: %s", template, e)
		report.Diagnostics = append(report.Diagnostics, fmt.Sprintf("template %d: %s", report.Enumerated-1, e))
	}
}

// ============================================================================
// Parallel Execution
// ============================================================================

// UnitFactory constructs the pipeline for the ith unit of work.  Each unit is
// given its own random source, which depends only on the run's seed and i.
type UnitFactory func(i uint, rnd *random.Random) (*Pipeline, error)

// RunParallel runs a number of independent units, at most limit at a time.  The
// reports are returned in unit order.  The first error (from constructing or
// running a unit) cancels the remaining units.
func RunParallel(ctx context.Context, units uint, limit uint, rnd *random.Random,
	factory UnitFactory) ([]*Report, error) {
	reports := make([]*Report, units)
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(int(max(limit, 1)))
	// Derive the random streams up front, since rnd is not safe for concurrent
	// use.
	streams := make([]*random.Random, units)
	//
	for i := range units {
		streams[i] = rnd.Fork(uint64(i))
	}
	//
	for i := range units {
		group.Go(func() error {
			pipeline, err := factory(i, streams[i])
			//
			if err != nil {
				return fmt.Errorf("unit %d: %w", i, err)
			}
			//
			report, err := pipeline.Run(ctx)
			reports[i] = report
			//
			return err
		})
	}
	//
	if err := group.Wait(); err != nil {
		return reports, err
	}
	//
	return reports, nil
}
