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
package optimise

import (
	"math"
	"slices"

	"github.com/qubitlabs/go-transpile/pkg/circuit"
)

// Tolerance used when comparing angles and matrices.
const epsilon = 1e-9

// Inverse of each gate kind which has a named inverse.
var inverses = map[string]string{
	circuit.X:     circuit.X,
	circuit.Y:     circuit.Y,
	circuit.Z:     circuit.Z,
	circuit.H:     circuit.H,
	circuit.CX:    circuit.CX,
	circuit.CY:    circuit.CY,
	circuit.CZ:    circuit.CZ,
	circuit.SWAP:  circuit.SWAP,
	circuit.CCX:   circuit.CCX,
	circuit.CSWAP: circuit.CSWAP,
	circuit.S:     circuit.SDG,
	circuit.SDG:   circuit.S,
	circuit.T:     circuit.TDG,
	circuit.TDG:   circuit.T,
	circuit.SX:    circuit.SXDG,
	circuit.SXDG:  circuit.SX,
}

// Period (up to global phase) of the angle of each rotation kind.
var periods = map[string]float64{
	circuit.RX:  2 * math.Pi,
	circuit.RY:  2 * math.Pi,
	circuit.RZ:  2 * math.Pi,
	circuit.P:   2 * math.Pi,
	circuit.PRX: 2 * math.Pi,
	circuit.CP:  2 * math.Pi,
	circuit.RZZ: 2 * math.Pi,
	circuit.CRZ: 4 * math.Pi,
}

// Two qubit kinds whose operands can be exchanged.
var symmetric = map[string]bool{
	circuit.CZ:   true,
	circuit.SWAP: true,
	circuit.CP:   true,
	circuit.RZZ:  true,
}

// Check whether two operations act on the same qubits.
func sameQubits(a, b circuit.Operation) bool {
	if slices.Equal(a.Qubits, b.Qubits) {
		return true
	}
	//
	return symmetric[a.Kind] && len(a.Qubits) == 2 && len(b.Qubits) == 2 && a.Qubits[0] == b.Qubits[1] &&
		a.Qubits[1] == b.Qubits[0]
}

func isInversePair(a, b circuit.Operation) bool {
	inverse, ok := inverses[a.Kind]
	//
	return ok && inverse == b.Kind && sameQubits(a, b)
}

func canMerge(a, b circuit.Operation) bool {
	if _, ok := periods[a.Kind]; !ok || a.Kind != b.Kind || !sameQubits(a, b) {
		return false
	} else if a.Kind == circuit.PRX {
		// Rotation axes must coincide
		return math.Abs(normalise(a.Param(1)-b.Param(1), 2*math.Pi)) < epsilon
	}
	//
	return true
}

// Merge two rotations about the same axis.
func merge(a, b circuit.Operation) circuit.Operation {
	merged := a.Clone()
	merged.Params[0] = normalise(a.Param(0)+b.Param(0), periods[a.Kind])
	//
	return merged
}

func canFuse(a, b circuit.Operation) bool {
	if len(a.Qubits) != 1 || !slices.Equal(a.Qubits, b.Qubits) {
		return false
	}
	//
	_, okA := circuit.Unitary(a)
	_, okB := circuit.Unitary(b)
	//
	return okA && okB
}

// Fuse two single qubit gates into a u gate.
func fuse(a, b circuit.Operation) circuit.Operation {
	ma, _ := circuit.Unitary(a)
	mb, _ := circuit.Unitary(b)
	θ, φ, λ := eulerAngles(mb.Mul(ma))
	//
	return circuit.NewOperation(circuit.U, []float64{θ, φ, λ}, a.Qubits[0])
}

// Check whether an operation is the identity, up to global phase.
func isIdentity(op circuit.Operation) bool {
	if op.Kind == circuit.ID {
		return true
	} else if !op.IsUnitary() {
		return false
	}
	//
	m, ok := circuit.Unitary(op)
	//
	return ok && m.EqualsUpToPhase(circuit.Identity(len(m)), epsilon)
}

// Basis in which an operation is diagonal on one of its wires.
type basis uint8

const (
	noBasis basis = iota
	zBasis
	xBasis
)

// Determine the basis in which an operation is diagonal on its ith operand, if
// any.  For multi-qubit gates, the gate is diagonal in the product of the
// bases of its operands.
func basisOf(op circuit.Operation, i int) basis {
	switch op.Kind {
	case circuit.ID, circuit.Z, circuit.S, circuit.SDG, circuit.T, circuit.TDG, circuit.RZ, circuit.P:
		return zBasis
	case circuit.X, circuit.SX, circuit.SXDG, circuit.RX:
		return xBasis
	case circuit.CZ, circuit.CP, circuit.CRZ, circuit.RZZ:
		return zBasis
	case circuit.CX, circuit.CCX:
		if i == len(op.Qubits)-1 {
			return xBasis
		}
		//
		return zBasis
	case circuit.CY, circuit.CSWAP:
		if i == 0 {
			return zBasis
		}
	}
	//
	return noBasis
}

// Check whether two operations commute.  This holds when, on every shared
// wire, both are diagonal in the same basis.  Operations on disjoint wires
// trivially commute.
func commute(a, b circuit.Operation) bool {
	if !a.IsUnitary() || !b.IsUnitary() {
		return false
	}
	//
	for i, q := range a.Qubits {
		if j := slices.Index(b.Qubits, q); j >= 0 {
			if ba := basisOf(a, i); ba == noBasis || ba != basisOf(b, j) {
				return false
			}
		}
	}
	//
	return true
}

// Normalise an angle into the interval [-period/2, period/2].
func normalise(θ float64, period float64) float64 {
	θ = θ - period*math.Round(θ/period)
	//
	if math.Abs(θ) < epsilon {
		return 0
	}
	//
	return θ
}

// Determine angles θ, φ and λ such that u(θ,φ,λ) equals a given single qubit
// unitary, up to global phase.
func eulerAngles(m circuit.Matrix) (float64, float64, float64) {
	var (
		a, b, c, d = m[0][0], m[0][1], m[1][0], m[1][1]
		θ          = 2 * math.Atan2(abs(c), abs(a))
		φ, λ       float64
	)
	//
	switch {
	case abs(c) < epsilon:
		// Diagonal: only φ+λ matters
		λ = arg(d) - arg(a)
	case abs(a) < epsilon:
		// Anti-diagonal: only φ-λ matters
		φ = arg(c) - arg(-b)
	default:
		φ = arg(c) - arg(a)
		λ = arg(-b) - arg(a)
	}
	//
	return θ, normalise(φ, 2*math.Pi), normalise(λ, 2*math.Pi)
}

func abs(z complex128) float64 {
	return math.Hypot(real(z), imag(z))
}

func arg(z complex128) float64 {
	return math.Atan2(imag(z), real(z))
}
