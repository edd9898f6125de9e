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
package verify

import (
	"errors"
	"testing"

	"github.com/qubitlabs/go-transpile/pkg/circuit"
	"github.com/qubitlabs/go-transpile/pkg/device"
)

var line = device.NewUncalibrated("line", device.Linear(3),
	device.NewGateSet(circuit.H, circuit.CX, circuit.CCX, circuit.MEASURE))

var zoned = device.NewUncalibrated("zoned", device.Full(4),
	device.NewGateSet(circuit.H, circuit.CZ, circuit.SHUTTLE)).WithZones(2)

func Test_Verify_00(t *testing.T) {
	c := circuit.New(3, 3).Append(circuit.H, 0).Append(circuit.CX, 0, 1).Append(circuit.CX, 2, 1).Barrier().
		Measure(0, 0).Measure(1, 1).Measure(2, 2)
	//
	if err := Verify(c, line); err != nil {
		t.Error(err)
	}
	// Narrower circuits are fine
	if err := Verify(circuit.New(2, 0).Append(circuit.CX, 1, 0), line); err != nil {
		t.Error(err)
	}
}

func Test_Verify_01(t *testing.T) {
	c := circuit.New(3, 0).Append(circuit.H, 0).Append(circuit.X, 1)
	check_Verify(t, c, 1, circuit.X)
}

func Test_Verify_02(t *testing.T) {
	c := circuit.New(3, 0).Append(circuit.CX, 0, 1).Append(circuit.CX, 0, 2)
	check_Verify(t, c, 1, circuit.CX)
}

func Test_Verify_03(t *testing.T) {
	// Even native, three qubit gates cannot be executed
	c := circuit.New(3, 0).Append(circuit.CCX, 0, 1, 2)
	check_Verify(t, c, 0, circuit.CCX)
}

func Test_Verify_04(t *testing.T) {
	c := circuit.New(4, 0).Append(circuit.H, 0)
	check_Verify(t, c, -1, "")
}

func Test_Verify_05(t *testing.T) {
	c := circuit.New(4, 0).Append(circuit.CZ, 0, 1).AppendParams(circuit.SHUTTLE, []float64{1, 0}, 2).
		Append(circuit.CZ, 0, 2).Append(circuit.H, 2).AppendParams(circuit.SHUTTLE, []float64{0, 1}, 2).
		Append(circuit.CZ, 3, 2)
	//
	if err := Verify(c, zoned); err != nil {
		t.Error(err)
	}
}

func Test_Verify_06(t *testing.T) {
	// Crossing zones without a shuttle
	c := circuit.New(4, 0).Append(circuit.CZ, 0, 1).Append(circuit.CZ, 1, 3)
	check_VerifyWith(t, c, zoned, 1, circuit.CZ)
}

func Test_Verify_07(t *testing.T) {
	// Shuttle from the wrong zone
	c := circuit.New(4, 0).AppendParams(circuit.SHUTTLE, []float64{0, 1}, 3)
	check_VerifyWith(t, c, zoned, 0, circuit.SHUTTLE)
	// Shuttle into a zone which does not exist
	c = circuit.New(4, 0).AppendParams(circuit.SHUTTLE, []float64{1, 2}, 3)
	check_VerifyWith(t, c, zoned, 0, circuit.SHUTTLE)
}

func Test_Verify_08(t *testing.T) {
	// Shuttled qubit does not return before its next crossing
	c := circuit.New(4, 0).AppendParams(circuit.SHUTTLE, []float64{1, 0}, 2).Append(circuit.CZ, 0, 2).
		Append(circuit.CZ, 2, 3)
	check_VerifyWith(t, c, zoned, 2, circuit.CZ)
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_Verify(t *testing.T, c *circuit.Circuit, index int, kind string) {
	t.Helper()
	//
	check_VerifyWith(t, c, line, index, kind)
}

func check_VerifyWith(t *testing.T, c *circuit.Circuit, dev *device.Device, index int, kind string) {
	t.Helper()
	//
	var verr *VerificationError
	//
	if err := Verify(c, dev); !errors.As(err, &verr) {
		t.Errorf("expected verification error, got %v", err)
	} else if verr.Index != index || verr.Kind != kind {
		t.Errorf("unexpected verification error: %s", verr.Error())
	}
}
