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
package device

import (
	"fmt"
	"sort"
	"strings"

	"github.com/qubitlabs/go-transpile/pkg/circuit"
)

// preset describes a family of devices which share a topology, native gate
// set and (typical) calibration data.
type preset struct {
	description string
	size        uint
	topology    func(n uint) *CouplingMap
	natives     []string
	site        SiteCalibration
	operations  []OperationCalibration
	zones       uint
}

var presets = map[string]preset{
	"iqm": {
		"superconducting, star topology, phased-rx + cz", 5, Star,
		[]string{circuit.PRX, circuit.CZ, circuit.MEASURE},
		SiteCalibration{45e-6, 30e-6, 0.03},
		[]OperationCalibration{
			{circuit.PRX, 20e-9, 0.999, 1},
			{circuit.CZ, 40e-9, 0.99, 2},
			{circuit.MEASURE, 1.5e-6, 0.97, 1},
		},
		0,
	},
	"ibm": {
		"superconducting, linear topology, rz/sx/x + cx", 5, Linear,
		[]string{circuit.ID, circuit.RZ, circuit.SX, circuit.X, circuit.CX, circuit.MEASURE, circuit.RESET},
		SiteCalibration{120e-6, 90e-6, 0.02},
		[]OperationCalibration{
			{circuit.ID, 35e-9, 0.9997, 1},
			{circuit.RZ, 0, 1, 1},
			{circuit.SX, 35e-9, 0.9997, 1},
			{circuit.X, 35e-9, 0.9997, 1},
			{circuit.CX, 300e-9, 0.99, 2},
			{circuit.MEASURE, 1e-6, 0.98, 1},
			{circuit.RESET, 1e-6, 0.99, 1},
		},
		0,
	},
	"heron": {
		"superconducting, linear topology, rz/sx/x/rx + cz/rzz", 5, Linear,
		[]string{circuit.ID, circuit.RZ, circuit.SX, circuit.X, circuit.RX, circuit.CZ, circuit.RZZ,
			circuit.MEASURE, circuit.RESET},
		SiteCalibration{250e-6, 150e-6, 0.015},
		[]OperationCalibration{
			{circuit.ID, 32e-9, 0.9998, 1},
			{circuit.RZ, 0, 1, 1},
			{circuit.SX, 32e-9, 0.9998, 1},
			{circuit.X, 32e-9, 0.9998, 1},
			{circuit.RX, 32e-9, 0.9998, 1},
			{circuit.CZ, 68e-9, 0.997, 2},
			{circuit.RZZ, 68e-9, 0.996, 2},
			{circuit.MEASURE, 1.2e-6, 0.985, 1},
			{circuit.RESET, 1.2e-6, 0.99, 1},
		},
		0,
	},
	"neutral-atom": {
		"neutral atoms, all-to-all topology in two zones, rz/rx/ry + cz + shuttle", 6, Full,
		[]string{circuit.RZ, circuit.RX, circuit.RY, circuit.CZ, circuit.SHUTTLE, circuit.MEASURE},
		SiteCalibration{10, 1.5, 0.05},
		[]OperationCalibration{
			{circuit.RZ, 1e-6, 0.999, 1},
			{circuit.RX, 1e-6, 0.998, 1},
			{circuit.RY, 1e-6, 0.998, 1},
			{circuit.CZ, 0.5e-6, 0.995, 2},
			{circuit.SHUTTLE, 100e-6, 0.999, 1},
			{circuit.MEASURE, 5e-3, 0.95, 1},
		},
		2,
	},
	"ideal": {
		"uncalibrated, all-to-all topology, every standard one and two qubit operation", 5, Full,
		idealGates(),
		SiteCalibration{},
		nil,
		0,
	},
}

// PresetNames returns the names of all available device presets in sorted
// order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	//
	for n := range presets {
		names = append(names, n)
	}
	//
	sort.Strings(names)
	//
	return names
}

// PresetDescription returns a short description of a given preset.
func PresetDescription(name string) string {
	return presets[name].description
}

// Preset constructs a device from a named preset with a given number of
// qubits.  If the number of qubits is zero, the preset's default size is
// used.
func Preset(name string, numQubits uint) (*Device, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown device preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	//
	if numQubits == 0 {
		numQubits = p.size
	}
	//
	desc := Descriptor{
		Name:        fmt.Sprintf("%s-%d", name, numQubits),
		NumQubits:   numQubits,
		NativeGates: p.natives,
		Operations:  p.operations,
		Zones:       min(p.zones, numQubits),
	}
	//
	for _, e := range p.topology(numQubits).Edges() {
		desc.CouplingMap = append(desc.CouplingMap, []uint{e[0], e[1]})
	}
	//
	if p.site != (SiteCalibration{}) {
		desc.Sites = make([]SiteCalibration, numQubits)
		//
		for i := range desc.Sites {
			desc.Sites[i] = p.site
		}
	}
	//
	return New(desc)
}

func idealGates() []string {
	var kinds []string
	//
	for _, k := range circuit.StandardKinds() {
		info, _ := circuit.Lookup(k)
		//
		if k != circuit.BARRIER && k != circuit.SHUTTLE && info.Qubits <= 2 {
			kinds = append(kinds, k)
		}
	}
	//
	return kinds
}
