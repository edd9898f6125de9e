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
	"os"
	"path/filepath"
	"testing"

	"github.com/qubitlabs/go-transpile/pkg/circuit"
	"github.com/stretchr/testify/require"
)

const jsonDevice = `{
  "name": "line-3",
  "num_qubits": 3,
  "coupling_map": [[0, 1], [1, 2]],
  "native_gates": ["rz", "sx", "cx", "measure"],
  "sites": [
    {"t1": 1e-4, "t2": 8e-5, "readout_error": 0.02},
    {"t1": 1e-4, "t2": 8e-5, "readout_error": 0.03},
    {"t1": 1e-4, "t2": 8e-5, "readout_error": 0.01}
  ],
  "operations": [
    {"name": "sx", "duration": 3.5e-8, "fidelity": 0.999, "num_qubits": 1},
    {"name": "cx", "duration": 3e-7, "fidelity": 0.99, "num_qubits": 2}
  ]
}`

const yamlDevice = `
name: line-3
num_qubits: 3
coupling_map:
  - [0, 1]
  - [1, 2]
native_gates: [rz, sx, cx, measure]
sites:
  - {t1: 1.0e-4, t2: 8.0e-5, readout_error: 0.02}
  - {t1: 1.0e-4, t2: 8.0e-5, readout_error: 0.03}
  - {t1: 1.0e-4, t2: 8.0e-5, readout_error: 0.01}
operations:
  - {name: sx, duration: 3.5e-8, fidelity: 0.999, num_qubits: 1}
  - {name: cx, duration: 3.0e-7, fidelity: 0.99, num_qubits: 2}
`

func Test_CouplingMap_00(t *testing.T) {
	cmap := Linear(5)
	//
	require.Equal(t, uint(5), cmap.Size())
	require.Len(t, cmap.Edges(), 4)
	require.True(t, cmap.Adjacent(1, 2))
	require.True(t, cmap.Adjacent(2, 1))
	require.False(t, cmap.Adjacent(0, 2))
	require.Equal(t, uint(4), cmap.Distance(0, 4))
	require.Equal(t, uint(0), cmap.Distance(3, 3))
	require.Equal(t, []uint{0, 1, 2, 3, 4}, cmap.ShortestPath(0, 4))
	require.Equal(t, []uint{3, 2, 1}, cmap.ShortestPath(3, 1))
	require.Equal(t, [][]uint{{0, 1, 2, 3, 4}}, cmap.Components())
}

func Test_CouplingMap_01(t *testing.T) {
	cmap := Ring(4)
	// Both 0-1-2 and 0-3-2 are shortest
	require.Equal(t, []uint{0, 1, 2}, cmap.ShortestPath(0, 2))
	require.Equal(t, []uint{3, 0}, cmap.ShortestPath(3, 0))
	//
	grid := Grid(2, 3)
	require.Equal(t, uint(3), grid.Distance(0, 5))
	require.Equal(t, []uint{0, 1, 2, 5}, grid.ShortestPath(0, 5))
}

func Test_CouplingMap_02(t *testing.T) {
	cmap, err := NewCouplingMap(5, []Edge{{0, 1}, {3, 4}, {1, 0}})
	require.NoError(t, err)
	//
	require.Len(t, cmap.Edges(), 2)
	require.Equal(t, Unreachable, cmap.Distance(0, 3))
	require.False(t, cmap.Connected(1, 4))
	require.Nil(t, cmap.ShortestPath(0, 4))
	require.Equal(t, [][]uint{{0, 1}, {2}, {3, 4}}, cmap.Components())
	require.Equal(t, uint(3), cmap.Component(4))
}

func Test_CouplingMap_03(t *testing.T) {
	_, err := NewCouplingMap(2, []Edge{{0, 2}})
	require.Error(t, err)
	//
	_, err = NewCouplingMap(2, []Edge{{1, 1}})
	require.Error(t, err)
}

func Test_CouplingMap_04(t *testing.T) {
	require.Len(t, Star(5).Edges(), 4)
	require.Equal(t, uint(2), Star(5).Distance(1, 4))
	require.Len(t, Full(4).Edges(), 6)
	require.Len(t, Ring(5).Edges(), 5)
	require.Len(t, Grid(3, 3).Edges(), 12)
}

func Test_GateSet_00(t *testing.T) {
	natives := NewGateSet("cz", "prx", "cz", "measure")
	//
	require.Equal(t, []string{"cz", "measure", "prx"}, natives.Kinds())
	require.True(t, natives.Contains("prx"))
	require.True(t, natives.Contains(circuit.BARRIER))
	require.False(t, natives.Contains("cx"))
	require.Equal(t, "{cz,measure,prx}", natives.String())
}

func Test_Descriptor_00(t *testing.T) {
	desc, err := ParseJSONDescriptor([]byte(jsonDevice))
	require.NoError(t, err)
	check_LineDevice(t, desc)
}

func Test_Descriptor_01(t *testing.T) {
	desc, err := ParseYAMLDescriptor([]byte(yamlDevice))
	require.NoError(t, err)
	check_LineDevice(t, desc)
}

func Test_Descriptor_02(t *testing.T) {
	dir := t.TempDir()
	jsonFile := filepath.Join(dir, "device.json")
	yamlFile := filepath.Join(dir, "device.yml")
	txtFile := filepath.Join(dir, "device.txt")
	//
	require.NoError(t, os.WriteFile(jsonFile, []byte(jsonDevice), 0o600))
	require.NoError(t, os.WriteFile(yamlFile, []byte(yamlDevice), 0o600))
	require.NoError(t, os.WriteFile(txtFile, []byte(yamlDevice), 0o600))
	//
	d1, err := Load(jsonFile)
	require.NoError(t, err)
	d2, err := Load(yamlFile)
	require.NoError(t, err)
	require.Equal(t, d1.Descriptor(), d2.Descriptor())
	//
	_, err = Load(txtFile)
	require.ErrorContains(t, err, "unknown device file format")
	//
	_, err = Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func Test_Device_00(t *testing.T) {
	base := func() Descriptor {
		desc, err := ParseJSONDescriptor([]byte(jsonDevice))
		require.NoError(t, err)
		//
		return desc
	}
	// Fidelity out of range
	desc := base()
	desc.Operations[0].Fidelity = 1.5
	_, err := New(desc)
	require.Error(t, err)
	// Zero fidelity
	desc = base()
	desc.Operations[1].Fidelity = 0
	_, err = New(desc)
	require.Error(t, err)
	// Coupling out of bounds
	desc = base()
	desc.CouplingMap = append(desc.CouplingMap, []uint{2, 3})
	_, err = New(desc)
	require.Error(t, err)
	// Malformed coupling
	desc = base()
	desc.CouplingMap = append(desc.CouplingMap, []uint{2})
	_, err = New(desc)
	require.Error(t, err)
	// Site count mismatch
	desc = base()
	desc.Sites = desc.Sites[:2]
	_, err = New(desc)
	require.Error(t, err)
	// Duplicate calibration
	desc = base()
	desc.Operations = append(desc.Operations, desc.Operations[0])
	_, err = New(desc)
	require.ErrorContains(t, err, "duplicate")
	// Arity mismatch
	desc = base()
	desc.Operations[1].NumQubits = 1
	_, err = New(desc)
	require.Error(t, err)
	// No name
	desc = base()
	desc.Name = ""
	_, err = New(desc)
	require.Error(t, err)
	// No native gates
	desc = base()
	desc.NativeGates = nil
	_, err = New(desc)
	require.Error(t, err)
}

func Test_Device_01(t *testing.T) {
	for _, name := range PresetNames() {
		dev, err := Preset(name, 0)
		require.NoError(t, err, name)
		require.NotEmpty(t, PresetDescription(name))
		require.True(t, dev.IsNative(circuit.MEASURE), name)
		require.Len(t, dev.CouplingMap().Components(), 1, name)
		// Round trip through the descriptor
		again, err := New(dev.Descriptor())
		require.NoError(t, err, name)
		require.Equal(t, dev.Descriptor(), again.Descriptor())
	}
	//
	dev, err := Preset("ibm", 7)
	require.NoError(t, err)
	require.Equal(t, "ibm-7", dev.Name())
	require.Equal(t, uint(7), dev.NumQubits())
	require.True(t, dev.Adjacent(5, 6))
	//
	_, err = Preset("quantum-toaster", 5)
	require.ErrorContains(t, err, "unknown device preset")
}

func Test_Device_02(t *testing.T) {
	dev := NewUncalibrated("bare", Linear(3), NewGateSet("h", "cx"))
	//
	_, ok := dev.Calibration("cx")
	require.False(t, ok)
	require.Equal(t, SiteCalibration{}, dev.Site(2))
	require.True(t, dev.IsNative("cx"))
	require.False(t, dev.IsNative("measure"))
	require.Equal(t, uint(1), dev.Zones())
	require.Equal(t, uint(0), dev.ZoneOf(2))
}

func Test_Device_03(t *testing.T) {
	// Seven qubits in three zones, with the remainder in the last
	dev := NewUncalibrated("zoned", Full(7), NewGateSet("cz", "shuttle")).WithZones(3)
	zones := make([]uint, dev.NumQubits())
	//
	for q := range zones {
		zones[q] = dev.ZoneOf(uint(q))
	}
	//
	require.Equal(t, uint(3), dev.Zones())
	require.Equal(t, []uint{0, 0, 1, 1, 2, 2, 2}, zones)
	// Zones survive a descriptor round trip
	again, err := New(dev.Descriptor())
	require.NoError(t, err)
	require.Equal(t, uint(3), again.Zones())
	// More zones than qubits
	desc := dev.Descriptor()
	desc.Zones = 8
	_, err = New(desc)
	require.ErrorContains(t, err, "zones")
	// Neutral atom preset splits its qubits in two
	dev, err = Preset("neutral-atom", 0)
	require.NoError(t, err)
	require.Equal(t, uint(2), dev.Zones())
	require.True(t, dev.IsNative("shuttle"))
	require.Equal(t, uint(0), dev.ZoneOf(2))
	require.Equal(t, uint(1), dev.ZoneOf(3))
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_LineDevice(t *testing.T, desc Descriptor) {
	t.Helper()
	//
	dev, err := New(desc)
	require.NoError(t, err)
	//
	require.Equal(t, "line-3", dev.Name())
	require.Equal(t, uint(3), dev.NumQubits())
	require.True(t, dev.Adjacent(0, 1))
	require.False(t, dev.Adjacent(0, 2))
	require.True(t, dev.IsNative("sx"))
	require.False(t, dev.IsNative("h"))
	require.InDelta(t, 0.03, dev.Site(1).ReadoutError, 1e-12)
	//
	cal, ok := dev.Calibration("cx")
	require.True(t, ok)
	require.InDelta(t, 0.99, cal.Fidelity, 1e-12)
	require.InDelta(t, 3e-7, cal.Duration, 1e-18)
	require.Equal(t, uint(2), cal.NumQubits)
}
