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
package compiler

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/qubitlabs/go-transpile/pkg/circuit"
	"github.com/qubitlabs/go-transpile/pkg/device"
	"github.com/qubitlabs/go-transpile/pkg/esp"
	"github.com/qubitlabs/go-transpile/pkg/layout"
	"github.com/qubitlabs/go-transpile/pkg/optimise"
	"github.com/qubitlabs/go-transpile/pkg/routing"
	"github.com/qubitlabs/go-transpile/pkg/translate"
	"github.com/qubitlabs/go-transpile/pkg/verify"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Observer is notified of progress during compilation.  Observers may be
// called concurrently when circuits are compiled in parallel.
type Observer interface {
	// StageCompleted is called after each stage completes successfully.
	StageCompleted(device string, snapshot Snapshot)
	// CompilationFinished is called once a compilation is finalised, whether
	// or not it succeeded.
	CompilationFinished(report *Report)
}

// Result holds the outcome of compiling a circuit.  When compilation fails, the
// fields for stages which were not reached are nil.
type Result struct {
	// Circuit is the compiled circuit over the physical qubits of the device.
	Circuit *circuit.Circuit
	// InitialLayout maps logical qubits to physical qubits at the start of the
	// compiled circuit.
	InitialLayout *layout.Layout
	// FinalLayout maps logical qubits to physical qubits at the end of the
	// compiled circuit.
	FinalLayout *layout.Layout
	// ESP is the estimated success probability of the compiled circuit.
	ESP *esp.Result
	// Report describes the compilation.
	Report *Report
}

// Pipeline compiles circuits for a given device.  A pipeline is immutable and
// can be used to compile many circuits concurrently.
type Pipeline struct {
	device       *device.Device
	assignor     layout.Assignor
	translator   *translate.Translator
	optimisation optimise.OptimisationConfig
	estimate     bool
	espConfig    esp.Config
	observers    []Observer
	tracer       trace.Tracer
}

// NewPipeline constructs a pipeline targeting a given device, using the default
// optimisation level and with success probability estimation enabled.
func NewPipeline(dev *device.Device) Pipeline {
	return Pipeline{
		device:       dev,
		assignor:     layout.NewAssignor(),
		translator:   translate.NewTranslator(dev.Natives()),
		optimisation: optimise.DEFAULT_OPTIMISATION_LEVEL,
		estimate:     true,
		espConfig:    esp.DefaultConfig(),
		tracer:       otel.Tracer("github.com/qubitlabs/go-transpile/pkg/compiler"),
	}
}

// Device returns the device targeted by this pipeline.
func (p Pipeline) Device() *device.Device {
	return p.device
}

// WithOptimisationLevel selects one of the precanned optimisation levels.  This
// panics if the level does not exist.
func (p Pipeline) WithOptimisationLevel(level uint) Pipeline {
	if level >= uint(len(optimise.OPTIMISATION_LEVELS)) {
		panic(fmt.Sprintf("invalid optimisation level %d", level))
	}
	//
	p.optimisation = optimise.OPTIMISATION_LEVELS[level]
	//
	return p
}

// WithOptimisation determines the optimisation configuration to use.
func (p Pipeline) WithOptimisation(config optimise.OptimisationConfig) Pipeline {
	p.optimisation = config
	//
	return p
}

// WithAssignor determines the layout assignor to use.
func (p Pipeline) WithAssignor(assignor layout.Assignor) Pipeline {
	p.assignor = assignor
	//
	return p
}

// WithESP enables success probability estimation, using the given values for
// missing calibration data.
func (p Pipeline) WithESP(config esp.Config) Pipeline {
	p.estimate = true
	p.espConfig = config
	//
	return p
}

// WithoutESP disables success probability estimation.
func (p Pipeline) WithoutESP() Pipeline {
	p.estimate = false
	//
	return p
}

// WithObserver adds an observer to be notified of compilation progress.
func (p Pipeline) WithObserver(observer Observer) Pipeline {
	// clone observers first
	p.observers = append(slices.Clone(p.observers), observer)
	//
	return p
}

// WithTracer determines the tracer used to record spans for each stage.
func (p Pipeline) WithTracer(tracer trace.Tracer) Pipeline {
	p.tracer = tracer
	//
	return p
}

// Compile a circuit for the target device.  Stages are applied in order and
// the first failure halts compilation, returning an Error which identifies the
// failing stage.  In all cases, the result is returned with as much as was
// computed before any failure, along with the finalised report.
func (p Pipeline) Compile(ctx context.Context, c *circuit.Circuit) (*Result, error) {
	var (
		start  = time.Now()
		report = &Report{ID: uuid.NewString(), Device: p.device.Name(), Stage: Received,
			originalDepth: c.Depth(), originalGates: c.Len()}
		result = &Result{Report: report}
	)
	//
	ctx, span := p.tracer.Start(ctx, "compile", trace.WithAttributes(
		attribute.String("compile.id", report.ID),
		attribute.String("compile.device", p.device.Name()),
		attribute.Int("compile.qubits", int(c.NumQubits())),
		attribute.Int("compile.gates", int(c.Len())),
	))
	defer span.End()
	//
	err := p.run(ctx, c, result)
	//
	report.finalise(result.Circuit, time.Since(start))
	//
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Debugf("compilation %s failed: %s", report.ID, err)
	} else {
		span.SetStatus(codes.Ok, "")
		log.Debugf("compilation %s completed in %s (%d -> %d gates, %d swaps)", report.ID, report.CompileTime,
			report.originalGates, report.compiledGates, report.Swaps)
	}
	//
	for _, o := range p.observers {
		o.CompilationFinished(report)
	}
	//
	return result, err
}

// Run each stage in turn, filling out the result as we go.
func (p Pipeline) run(ctx context.Context, c *circuit.Circuit, result *Result) error {
	var (
		report = result.Report
		// Circuit after unrolling, on logical qubits
		unrolled *circuit.Circuit
		// Circuit after each stage, on physical qubits
		routed, translated, optimised *circuit.Circuit
	)
	// Layout
	err := p.stage(ctx, report, LayoutAssigned, c, func() (*circuit.Circuit, error) {
		var err error
		//
		unrolled = translate.Unroll(c)
		result.InitialLayout, err = p.assignor.Assign(unrolled, p.device)
		//
		if err == nil {
			result.InitialLayout.Freeze()
		}
		//
		return unrolled, err
	})
	// Routing
	if err == nil {
		err = p.stage(ctx, report, Routed, unrolled, func() (*circuit.Circuit, error) {
			r, err := routing.Route(unrolled, p.device, result.InitialLayout)
			if err != nil {
				return nil, err
			}
			//
			routed, result.FinalLayout, report.Swaps, report.Shuttles = r.Circuit, r.Layout, r.Swaps, r.Shuttles
			result.FinalLayout.Freeze()
			//
			return routed, nil
		})
	}
	// Translation
	if err == nil {
		err = p.stage(ctx, report, Translated, routed, func() (*circuit.Circuit, error) {
			var err error
			translated, err = p.translator.Translate(routed)
			//
			return translated, err
		})
	}
	// Optimisation
	if err == nil {
		err = p.stage(ctx, report, Optimised, translated, func() (*circuit.Circuit, error) {
			optimised, report.Passes = optimise.NewOptimiser(p.device.Natives(), p.optimisation).Optimise(translated)
			return optimised, nil
		})
	}
	// Verification
	if err == nil {
		err = p.stage(ctx, report, Verified, optimised, func() (*circuit.Circuit, error) {
			return optimised, verify.Verify(optimised, p.device)
		})
	}
	//
	if err != nil {
		return err
	}
	//
	result.Circuit = optimised
	// Estimation
	if p.estimate {
		estimate := esp.NewEstimator(p.device).WithConfig(p.espConfig).Estimate(optimised)
		result.ESP = &estimate
		report.ESP = estimate.TotalESP
	}
	//
	report.Stage = Done
	//
	return nil
}

// Run a single stage, recording a snapshot on success.  On failure, the report
// is marked as failed and the error wrapped to identify the stage.
func (p Pipeline) stage(ctx context.Context, report *Report, stage Stage, before *circuit.Circuit,
	fn func() (*circuit.Circuit, error)) error {
	_, span := p.tracer.Start(ctx, stage.String())
	defer span.End()
	//
	start := time.Now()
	after, err := fn()
	elapsed := time.Since(start)
	//
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		report.fail(stage, err)
		//
		return &Error{stage, err}
	}
	//
	snapshot := newSnapshot(stage, before, after, elapsed)
	report.record(snapshot)
	//
	span.SetAttributes(attribute.Int("gates_after", int(snapshot.GatesAfter)),
		attribute.Int("depth_after", int(snapshot.DepthAfter)))
	log.Debugf("%s stage took %s (depth %d -> %d, gates %d -> %d)", stage, elapsed, snapshot.DepthBefore,
		snapshot.DepthAfter, snapshot.GatesBefore, snapshot.GatesAfter)
	//
	for _, o := range p.observers {
		o.StageCompleted(report.Device, snapshot)
	}
	//
	return nil
}
