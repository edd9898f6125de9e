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
	"time"

	"github.com/qubitlabs/go-transpile/pkg/circuit"
)

// Snapshot records the effect of a single stage on the circuit being compiled.
type Snapshot struct {
	Stage       Stage         `json:"stage"`
	DepthBefore uint          `json:"depth_before"`
	DepthAfter  uint          `json:"depth_after"`
	GatesBefore uint          `json:"gates_before"`
	GatesAfter  uint          `json:"gates_after"`
	Elapsed     time.Duration `json:"elapsed_ns"`
}

func newSnapshot(stage Stage, before, after *circuit.Circuit, elapsed time.Duration) Snapshot {
	return Snapshot{stage, before.Depth(), after.Depth(), before.Len(), after.Len(), elapsed}
}

// Report describes a single compilation.  It is built up stage by stage and
// finalised once compilation completes (or fails).
type Report struct {
	// ID uniquely identifies this compilation.
	ID string `json:"id"`
	// Device is the name of the target device.
	Device string `json:"device"`
	// Stages holds a snapshot for each completed stage, in order.
	Stages []Snapshot `json:"stages"`
	// Stage is the final stage reached, which is either Done or Failed.
	Stage Stage `json:"final_stage"`
	// FailedAt identifies the stage which failed (if any).
	FailedAt *Stage `json:"failed_at,omitempty"`
	// Failure describes the error which halted compilation (if any).
	Failure string `json:"failure,omitempty"`
	// CompileTime is the total time taken.
	CompileTime time.Duration `json:"compile_time_ns"`
	// Passes is the number of optimisation passes made.
	Passes uint `json:"passes"`
	// Swaps is the number of swaps inserted during routing.
	Swaps uint `json:"swaps"`
	// Shuttles is the number of shuttles inserted during routing on a zoned
	// device.
	Shuttles uint `json:"shuttles,omitempty"`
	// ESP is the estimated success probability of the compiled circuit, or 0
	// if it was not estimated.
	ESP float64 `json:"esp,omitempty"`
	// Depth and gate count of the original and compiled circuits.
	originalDepth, compiledDepth uint
	originalGates, compiledGates uint
}

// Succeeded determines whether compilation completed successfully.
func (p *Report) Succeeded() bool {
	return p.Stage == Done
}

// CompilationStats summarises a compilation.
type CompilationStats struct {
	OriginalDepth         uint    `json:"original_depth"`
	CompiledDepth         uint    `json:"compiled_depth"`
	GatesBefore           uint    `json:"gates_before"`
	GatesAfter            uint    `json:"gates_after"`
	NumPasses             uint    `json:"num_passes"`
	CompileTimeMicros     int64   `json:"compile_time_us"`
	ThroughputGatesPerSec float64 `json:"throughput_gates_per_sec"`
	SwapsInserted         uint    `json:"swaps_inserted"`
}

// Stats summarises this compilation.  Throughput is the number of gates in the
// original circuit per second of compilation time.
func (p *Report) Stats() CompilationStats {
	var throughput float64
	//
	if seconds := p.CompileTime.Seconds(); seconds > 0 {
		throughput = float64(p.originalGates) / seconds
	}
	//
	return CompilationStats{
		OriginalDepth:         p.originalDepth,
		CompiledDepth:         p.compiledDepth,
		GatesBefore:           p.originalGates,
		GatesAfter:            p.compiledGates,
		NumPasses:             p.Passes,
		CompileTimeMicros:     p.CompileTime.Microseconds(),
		ThroughputGatesPerSec: throughput,
		SwapsInserted:         p.Swaps,
	}
}

func (p *Report) record(snapshot Snapshot) {
	p.Stages = append(p.Stages, snapshot)
	p.Stage = snapshot.Stage
}

func (p *Report) fail(stage Stage, err error) {
	p.Stage = Failed
	p.FailedAt = &stage
	p.Failure = err.Error()
}

func (p *Report) finalise(compiled *circuit.Circuit, elapsed time.Duration) {
	p.CompileTime = elapsed
	//
	if compiled != nil {
		p.compiledDepth = compiled.Depth()
		p.compiledGates = compiled.Len()
	}
}
