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
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
	"github.com/qubitlabs/go-transpile/pkg/compiler"
)

// Collector records compilation metrics in its own Prometheus registry.  A
// collector can be registered as an observer with any number of pipelines.
type Collector struct {
	registry *prometheus.Registry
	// Time taken by each stage
	stageDuration *prometheus.HistogramVec
	// Compilations by device and outcome
	compilations *prometheus.CounterVec
	// Swaps inserted per successful compilation
	swaps *prometheus.HistogramVec
	// Estimated success probability per successful compilation
	esp *prometheus.HistogramVec
	// Compiled gate count per successful compilation
	gates *prometheus.HistogramVec
}

// NewCollector constructs a collector with a fresh registry.
func NewCollector() *Collector {
	var (
		registry = prometheus.NewRegistry()
		factory  = promauto.With(registry)
	)
	//
	return &Collector{
		registry: registry,
		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "transpile",
			Name:      "stage_duration_seconds",
			Help:      "Time taken by each compilation stage",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"device", "stage"}),
		compilations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "transpile",
			Name:      "compilations_total",
			Help:      "Compilations by device and outcome",
		}, []string{"device", "outcome"}),
		swaps: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "transpile",
			Name:      "swaps_inserted",
			Help:      "Swaps inserted during routing",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64, 128},
		}, []string{"device"}),
		esp: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "transpile",
			Name:      "estimated_success_probability",
			Help:      "Estimated success probability of compiled circuits",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}, []string{"device"}),
		gates: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "transpile",
			Name:      "compiled_gates",
			Help:      "Gate count of compiled circuits",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		}, []string{"device"}),
	}
}

// Registry returns the registry holding this collector's metrics, for example
// to expose them over HTTP.
func (p *Collector) Registry() *prometheus.Registry {
	return p.registry
}

// StageCompleted records the time taken by a stage.
func (p *Collector) StageCompleted(device string, snapshot compiler.Snapshot) {
	p.stageDuration.WithLabelValues(device, snapshot.Stage.String()).Observe(snapshot.Elapsed.Seconds())
}

// CompilationFinished records the outcome of a compilation.
func (p *Collector) CompilationFinished(report *compiler.Report) {
	if !report.Succeeded() {
		p.compilations.WithLabelValues(report.Device, "failed_"+report.FailedAt.String()).Inc()
		return
	}
	//
	p.compilations.WithLabelValues(report.Device, "succeeded").Inc()
	p.swaps.WithLabelValues(report.Device).Observe(float64(report.Swaps))
	p.gates.WithLabelValues(report.Device).Observe(float64(report.Stats().GatesAfter))
	//
	if report.ESP > 0 {
		p.esp.WithLabelValues(report.Device).Observe(report.ESP)
	}
}

// WriteText writes every metric in the Prometheus text exposition format.
func (p *Collector) WriteText(w io.Writer) error {
	families, err := p.registry.Gather()
	if err != nil {
		return err
	}
	//
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}
	//
	return nil
}
