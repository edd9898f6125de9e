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
package esp

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/qubitlabs/go-transpile/pkg/circuit"
	"github.com/qubitlabs/go-transpile/pkg/device"
	"github.com/qubitlabs/go-transpile/pkg/util/collection/bit"
	log "github.com/sirupsen/logrus"
)

// Config provides the values used in place of missing calibration data.  Times
// are in seconds.
type Config struct {
	// Fidelity of an uncalibrated single qubit operation.
	SingleQubitFidelity float64 `json:"single_qubit_fidelity" yaml:"single_qubit_fidelity" validate:"gt=0,lte=1"`
	// Fidelity of an uncalibrated operation on two or more qubits.
	MultiQubitFidelity float64 `json:"multi_qubit_fidelity" yaml:"multi_qubit_fidelity" validate:"gt=0,lte=1"`
	// Duration of an uncalibrated single qubit operation.
	SingleQubitDuration float64 `json:"single_qubit_duration" yaml:"single_qubit_duration" validate:"gte=0"`
	// Duration of an uncalibrated operation on two or more qubits.
	MultiQubitDuration float64 `json:"multi_qubit_duration" yaml:"multi_qubit_duration" validate:"gte=0"`
	// Duration of an uncalibrated measurement or reset.
	MeasureDuration float64 `json:"measure_duration" yaml:"measure_duration" validate:"gte=0"`
	// Relaxation time of an uncalibrated qubit.
	T1 float64 `json:"t1" yaml:"t1" validate:"gt=0"`
	// Dephasing time of an uncalibrated qubit.
	T2 float64 `json:"t2" yaml:"t2" validate:"gt=0"`
	// Readout error of an uncalibrated qubit.
	ReadoutError float64 `json:"readout_error" yaml:"readout_error" validate:"gte=0,lt=1"`
}

// DefaultConfig returns the default values used for missing calibration data.
func DefaultConfig() Config {
	return Config{
		SingleQubitFidelity: 0.999,
		MultiQubitFidelity:  0.99,
		SingleQubitDuration: 50e-9,
		MultiQubitDuration:  300e-9,
		MeasureDuration:     1e-6,
		T1:                  100e-6,
		T2:                  80e-6,
		ReadoutError:        0.02,
	}
}

var validate = validator.New()

// Validate checks this configuration is well-formed.
func (p *Config) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid esp configuration: %w", err)
	}
	//
	return nil
}

// Result holds the estimated success probability of a circuit, layer by layer.
type Result struct {
	// Success probability of each layer in isolation.
	LayerESP []float64 `json:"layer_esp"`
	// Running product of the layer probabilities.
	CumulativeESP []float64 `json:"cumulative_esp"`
	// Success probability of the whole circuit.
	TotalESP float64 `json:"total_esp"`
}

// Estimator computes the estimated success probability of circuits compiled
// for a given device.
type Estimator struct {
	device *device.Device
	config Config
}

// NewEstimator constructs an estimator for a given device, using the default
// configuration for missing calibration data.
func NewEstimator(dev *device.Device) Estimator {
	return Estimator{dev, DefaultConfig()}
}

// WithConfig returns an estimator using a different configuration for missing
// calibration data.
func (p Estimator) WithConfig(config Config) Estimator {
	p.config = config
	return p
}

// Estimate the success probability of a compiled circuit.  Each ASAP layer
// contributes the product of its operation fidelities, together with the
// decoherence of every qubit used by the circuit but idle in that layer.  The
// duration of a layer is that of its longest operation.
func (p Estimator) Estimate(c *circuit.Circuit) Result {
	var (
		layers     = c.Layers()
		active     = c.ActiveQubits()
		result     = Result{make([]float64, len(layers)), make([]float64, len(layers)), 1}
		cumulative = 1.0
	)
	//
	for i, layer := range layers {
		var (
			fidelity = 1.0
			duration = 0.0
			busy     = bit.NewSet(c.NumQubits())
		)
		//
		for _, index := range layer {
			op := c.Operation(index)
			f, d := p.characterise(op)
			fidelity *= f
			duration = max(duration, d)
			//
			busy.InsertAll(op.Qubits...)
		}
		//
		for _, q := range active.Elements() {
			if !busy.Contains(q) {
				t1, t2 := p.coherence(q)
				fidelity *= math.Exp(-duration/t1) * math.Exp(-duration/t2)
			}
		}
		//
		cumulative *= fidelity
		result.LayerESP[i] = fidelity
		result.CumulativeESP[i] = cumulative
	}
	//
	result.TotalESP = cumulative
	//
	log.Debugf("estimated success probability %.6f over %d layers (%d active qubits %s)", cumulative, len(layers),
		active.Count(), active.String())
	//
	return result
}

// Estimate the success probability of a circuit compiled for a given device,
// using the default configuration.
func Estimate(c *circuit.Circuit, dev *device.Device) Result {
	return NewEstimator(dev).Estimate(c)
}

// Determine the fidelity and duration of an operation.
func (p Estimator) characterise(op circuit.Operation) (float64, float64) {
	cal, calibrated := p.device.Calibration(op.Kind)
	//
	switch {
	case calibrated:
		return cal.Fidelity, cal.Duration
	case op.IsMeasure():
		fidelity := 1.0
		//
		for _, q := range op.Qubits {
			fidelity *= 1 - p.readoutError(q)
		}
		//
		return fidelity, p.config.MeasureDuration
	case op.Kind == circuit.RESET:
		return p.config.SingleQubitFidelity, p.config.MeasureDuration
	case op.Arity() >= 2:
		return p.config.MultiQubitFidelity, p.config.MultiQubitDuration
	default:
		return p.config.SingleQubitFidelity, p.config.SingleQubitDuration
	}
}

// Determine the T1 and T2 times of a physical qubit, falling back to the
// defaults where these are not calibrated.
func (p Estimator) coherence(qubit uint) (float64, float64) {
	t1, t2 := p.config.T1, p.config.T2
	//
	if qubit < p.device.NumQubits() {
		site := p.device.Site(qubit)
		//
		if site.T1 > 0 {
			t1 = site.T1
		}
		//
		if site.T2 > 0 {
			t2 = site.T2
		}
	}
	//
	return t1, t2
}

func (p Estimator) readoutError(qubit uint) float64 {
	if qubit < p.device.NumQubits() {
		if e := p.device.Site(qubit).ReadoutError; e > 0 {
			return e
		}
	}
	//
	return p.config.ReadoutError
}
