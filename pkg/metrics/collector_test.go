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
package metrics

import (
	"context"
	"strings"
	"testing"

	"github.com/qubitlabs/go-transpile/pkg/circuit"
	"github.com/qubitlabs/go-transpile/pkg/compiler"
	"github.com/qubitlabs/go-transpile/pkg/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Collector_00(t *testing.T) {
	collector := NewCollector()
	pipeline := check_Pipeline(t).WithObserver(collector)
	//
	_, err := pipeline.Compile(context.Background(), circuit.New(3, 0).Append(circuit.H, 0).Append(circuit.CX, 0, 2))
	require.NoError(t, err)
	//
	assert.Equal(t, 1.0, check_Counter(t, collector, "transpile_compilations_total", "succeeded"))
	assert.Equal(t, uint64(5), check_Samples(t, collector, "transpile_stage_duration_seconds"))
	assert.Equal(t, uint64(1), check_Samples(t, collector, "transpile_swaps_inserted"))
	assert.Equal(t, uint64(1), check_Samples(t, collector, "transpile_estimated_success_probability"))
}

func Test_Collector_01(t *testing.T) {
	collector := NewCollector()
	pipeline := check_Pipeline(t).WithObserver(collector)
	// Too wide for the device
	_, err := pipeline.Compile(context.Background(), circuit.New(5, 0))
	require.Error(t, err)
	_, err = pipeline.Compile(context.Background(), circuit.New(4, 0))
	require.Error(t, err)
	//
	assert.Equal(t, 2.0, check_Counter(t, collector, "transpile_compilations_total", "failed_layout_assigned"))
	assert.Equal(t, uint64(0), check_Samples(t, collector, "transpile_stage_duration_seconds"))
}

func Test_Collector_02(t *testing.T) {
	var (
		collector = NewCollector()
		pipeline  = check_Pipeline(t).WithObserver(collector)
		text      strings.Builder
	)
	//
	_, err := pipeline.Compile(context.Background(), circuit.New(2, 0).Append(circuit.CZ, 0, 1))
	require.NoError(t, err)
	require.NoError(t, collector.WriteText(&text))
	//
	assert.Contains(t, text.String(), "# TYPE transpile_compilations_total counter")
	assert.Contains(t, text.String(), `transpile_compilations_total{device="line",outcome="succeeded"} 1`)
	assert.Contains(t, text.String(), "transpile_stage_duration_seconds_bucket")
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_Pipeline(t *testing.T) compiler.Pipeline {
	t.Helper()
	//
	dev := device.NewUncalibrated("line", device.Linear(3), device.NewGateSet(circuit.H, circuit.CX, circuit.CZ))
	//
	return compiler.NewPipeline(dev)
}

// Determine the value of a counter with a given outcome label.
func check_Counter(t *testing.T, collector *Collector, name string, outcome string) float64 {
	t.Helper()
	//
	families, err := collector.Registry().Gather()
	require.NoError(t, err)
	//
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		//
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "outcome" && label.GetValue() == outcome {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	//
	return 0
}

// Determine the total number of observations across every series of a
// histogram.
func check_Samples(t *testing.T, collector *Collector, name string) uint64 {
	t.Helper()
	//
	var count uint64
	//
	families, err := collector.Registry().Gather()
	require.NoError(t, err)
	//
	for _, family := range families {
		if family.GetName() == name {
			for _, metric := range family.GetMetric() {
				count += metric.GetHistogram().GetSampleCount()
			}
		}
	}
	//
	return count
}
