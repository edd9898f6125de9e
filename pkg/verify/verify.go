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
	"fmt"

	"github.com/qubitlabs/go-transpile/pkg/circuit"
	"github.com/qubitlabs/go-transpile/pkg/device"
)

// VerificationError indicates a compiled circuit cannot be executed on its
// target device.
//
//nolint:revive
type VerificationError struct {
	// Index of the offending operation.
	Index int
	// Kind of the offending operation.
	Kind string
	// Message describing the problem.
	Message string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification error (operation %d, %s): %s", e.Index, e.Kind, e.Message)
}

// Verify checks that a circuit can be executed on a given device as is.  That
// is, every operation is native, acts on distinct qubits of the device and, if
// it acts on two qubits, those qubits are coupled.  Operations on more than two
// qubits are never executable.  On a zoned device, the zone of each qubit is
// tracked through its shuttles, and a two qubit operation must act on qubits
// which currently share a zone.  The first violation found is reported.
func Verify(c *circuit.Circuit, dev *device.Device) error {
	if c.NumQubits() > dev.NumQubits() {
		return &VerificationError{-1, "", fmt.Sprintf("circuit has %d qubits, but device %s has only %d",
			c.NumQubits(), dev.Name(), dev.NumQubits())}
	}
	//
	zones := make([]uint, dev.NumQubits())
	//
	for q := range zones {
		zones[q] = dev.ZoneOf(uint(q))
	}
	//
	for i, op := range c.Operations() {
		if msg := check(op, dev); msg != "" {
			return &VerificationError{i, op.Kind, msg}
		} else if msg := checkZones(op, dev, zones); msg != "" {
			return &VerificationError{i, op.Kind, msg}
		}
	}
	//
	return nil
}

// Check a single operation, returning a description of the problem (if any).
func check(op circuit.Operation, dev *device.Device) string {
	if !dev.IsNative(op.Kind) {
		return fmt.Sprintf("not native to device %s (natives %s)", dev.Name(), dev.Natives().String())
	}
	//
	for i, q := range op.Qubits {
		if q >= dev.NumQubits() {
			return fmt.Sprintf("qubit %d out of bounds", q)
		}
		//
		for _, r := range op.Qubits[:i] {
			if q == r {
				return fmt.Sprintf("qubit %d used more than once", q)
			}
		}
	}
	//
	switch {
	case op.IsBarrier():
		return ""
	case op.Arity() > 2:
		return fmt.Sprintf("acts on %d qubits", op.Arity())
	case op.Arity() == 2 && !dev.Adjacent(op.Qubits[0], op.Qubits[1]):
		return fmt.Sprintf("qubits %d and %d are not coupled", op.Qubits[0], op.Qubits[1])
	}
	//
	return ""
}

// Check an operation against the current zone of each qubit, updating these for
// a shuttle.
func checkZones(op circuit.Operation, dev *device.Device, zones []uint) string {
	switch {
	case op.IsShuttle():
		q := op.Qubits[0]
		from, to := op.Zones()
		//
		if from != zones[q] {
			return fmt.Sprintf("qubit %d is in zone %d, not %d", q, zones[q], from)
		} else if to >= dev.Zones() {
			return fmt.Sprintf("zone %d out of bounds", to)
		}
		//
		zones[q] = to
	case !op.IsBarrier() && op.Arity() == 2 && zones[op.Qubits[0]] != zones[op.Qubits[1]]:
		return fmt.Sprintf("qubits %d and %d are in different zones", op.Qubits[0], op.Qubits[1])
	}
	//
	return ""
}
