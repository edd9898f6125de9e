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
package translate

import (
	"math"

	"github.com/qubitlabs/go-transpile/pkg/circuit"
)

const π = math.Pi

// Param computes the parameter of a template step from the parameters of the
// operation being decomposed.
type Param func(params []float64) float64

// Step is a single operation in a decomposition template.  Qubits are given as
// positions within the operands of the operation being decomposed.
type Step struct {
	Kind   string
	Qubits []int
	Params []Param
}

// Rule decomposes one operation kind into a sequence of steps (in time order).
// Every rule is exact up to a global phase.
type Rule struct {
	Kind  string
	Steps []Step
}

func on(kind string, qubits ...int) Step {
	return Step{kind, qubits, nil}
}

func (s Step) with(params ...Param) Step {
	s.Params = params
	return s
}

func constant(v float64) Param {
	return func([]float64) float64 { return v }
}

// The ith parameter scaled by a constant, plus an offset.
func affine(i int, scale float64, offset float64) Param {
	return func(ps []float64) float64 { return scale*ps[i] + offset }
}

func arg(i int) Param {
	return affine(i, 1, 0)
}

func neg(i int) Param {
	return affine(i, -1, 0)
}

func half(i int) Param {
	return affine(i, 0.5, 0)
}

func negHalf(i int) Param {
	return affine(i, -0.5, 0)
}

// RULES is the table of decompositions.  Where a kind has several rules, the
// cheapest (for a given native set) is chosen and earlier rules are preferred
// when costs are equal.
var RULES = []Rule{
	{circuit.ID, nil},
	// Single qubit Cliffords
	{circuit.H, []Step{on(circuit.U, 0).with(constant(π/2), constant(0), constant(π))}},
	{circuit.H, []Step{on(circuit.RZ, 0).with(constant(π/2)), on(circuit.SX, 0), on(circuit.RZ, 0).with(constant(π/2))}},
	{circuit.H, []Step{on(circuit.RZ, 0).with(constant(π)), on(circuit.RY, 0).with(constant(π/2))}},
	{circuit.H, []Step{on(circuit.PRX, 0).with(constant(π/2), constant(π/2)), on(circuit.PRX, 0).with(constant(π), constant(0))}},
	{circuit.X, []Step{on(circuit.RX, 0).with(constant(π))}},
	{circuit.X, []Step{on(circuit.PRX, 0).with(constant(π), constant(0))}},
	{circuit.X, []Step{on(circuit.U, 0).with(constant(π), constant(0), constant(π))}},
	{circuit.X, []Step{on(circuit.SX, 0), on(circuit.SX, 0)}},
	{circuit.Y, []Step{on(circuit.RY, 0).with(constant(π))}},
	{circuit.Y, []Step{on(circuit.PRX, 0).with(constant(π), constant(π/2))}},
	{circuit.Y, []Step{on(circuit.U, 0).with(constant(π), constant(π/2), constant(π/2))}},
	{circuit.Y, []Step{on(circuit.RZ, 0).with(constant(π)), on(circuit.X, 0)}},
	{circuit.Z, []Step{on(circuit.RZ, 0).with(constant(π))}},
	{circuit.Z, []Step{on(circuit.P, 0).with(constant(π))}},
	{circuit.Z, []Step{on(circuit.U, 0).with(constant(0), constant(0), constant(π))}},
	{circuit.Z, []Step{on(circuit.PRX, 0).with(constant(π), constant(0)), on(circuit.PRX, 0).with(constant(π), constant(π/2))}},
	{circuit.S, []Step{on(circuit.RZ, 0).with(constant(π / 2))}},
	{circuit.S, []Step{on(circuit.P, 0).with(constant(π / 2))}},
	{circuit.S, []Step{on(circuit.U, 0).with(constant(0), constant(0), constant(π/2))}},
	{circuit.SDG, []Step{on(circuit.RZ, 0).with(constant(-π / 2))}},
	{circuit.SDG, []Step{on(circuit.P, 0).with(constant(-π / 2))}},
	{circuit.SDG, []Step{on(circuit.U, 0).with(constant(0), constant(0), constant(-π/2))}},
	{circuit.T, []Step{on(circuit.RZ, 0).with(constant(π / 4))}},
	{circuit.T, []Step{on(circuit.P, 0).with(constant(π / 4))}},
	{circuit.T, []Step{on(circuit.U, 0).with(constant(0), constant(0), constant(π/4))}},
	{circuit.TDG, []Step{on(circuit.RZ, 0).with(constant(-π / 4))}},
	{circuit.TDG, []Step{on(circuit.P, 0).with(constant(-π / 4))}},
	{circuit.TDG, []Step{on(circuit.U, 0).with(constant(0), constant(0), constant(-π/4))}},
	{circuit.SX, []Step{on(circuit.RX, 0).with(constant(π / 2))}},
	{circuit.SX, []Step{on(circuit.PRX, 0).with(constant(π/2), constant(0))}},
	{circuit.SX, []Step{on(circuit.U, 0).with(constant(π/2), constant(-π/2), constant(π/2))}},
	{circuit.SXDG, []Step{on(circuit.RX, 0).with(constant(-π / 2))}},
	{circuit.SXDG, []Step{on(circuit.PRX, 0).with(constant(-π/2), constant(0))}},
	{circuit.SXDG, []Step{on(circuit.SX, 0), on(circuit.X, 0)}},
	// Single qubit rotations
	{circuit.RX, []Step{on(circuit.PRX, 0).with(arg(0), constant(0))}},
	{circuit.RX, []Step{on(circuit.U, 0).with(arg(0), constant(-π/2), constant(π/2))}},
	{circuit.RX, []Step{on(circuit.H, 0), on(circuit.RZ, 0).with(arg(0)), on(circuit.H, 0)}},
	{circuit.RY, []Step{on(circuit.PRX, 0).with(arg(0), constant(π/2))}},
	{circuit.RY, []Step{on(circuit.U, 0).with(arg(0), constant(0), constant(0))}},
	{circuit.RY, []Step{on(circuit.SX, 0), on(circuit.RZ, 0).with(arg(0)), on(circuit.SXDG, 0)}},
	{circuit.RZ, []Step{on(circuit.P, 0).with(arg(0))}},
	{circuit.RZ, []Step{on(circuit.U, 0).with(constant(0), constant(0), arg(0))}},
	{circuit.RZ, []Step{on(circuit.PRX, 0).with(constant(π), constant(0)), on(circuit.PRX, 0).with(constant(π), half(0))}},
	{circuit.RZ, []Step{on(circuit.H, 0), on(circuit.RX, 0).with(arg(0)), on(circuit.H, 0)}},
	{circuit.P, []Step{on(circuit.RZ, 0).with(arg(0))}},
	{circuit.P, []Step{on(circuit.U, 0).with(constant(0), constant(0), arg(0))}},
	{circuit.U, []Step{on(circuit.RZ, 0).with(arg(2)), on(circuit.RY, 0).with(arg(0)), on(circuit.RZ, 0).with(arg(1))}},
	{circuit.PRX, []Step{on(circuit.RZ, 0).with(neg(1)), on(circuit.RX, 0).with(arg(0)), on(circuit.RZ, 0).with(arg(1))}},
	{circuit.PRX, []Step{on(circuit.U, 0).with(arg(0), affine(1, 1, -π/2), affine(1, -1, π/2))}},
	// Two qubit gates
	{circuit.CX, []Step{on(circuit.H, 1), on(circuit.CZ, 0, 1), on(circuit.H, 1)}},
	{circuit.CX, []Step{on(circuit.RY, 1).with(constant(-π / 2)), on(circuit.CZ, 0, 1), on(circuit.RY, 1).with(constant(π / 2))}},
	{circuit.CZ, []Step{on(circuit.H, 1), on(circuit.CX, 0, 1), on(circuit.H, 1)}},
	{circuit.CY, []Step{on(circuit.SDG, 1), on(circuit.CX, 0, 1), on(circuit.S, 1)}},
	{circuit.SWAP, []Step{on(circuit.CX, 0, 1), on(circuit.CX, 1, 0), on(circuit.CX, 0, 1)}},
	{circuit.CP, []Step{on(circuit.P, 0).with(half(0)), on(circuit.CX, 0, 1), on(circuit.P, 1).with(negHalf(0)), on(circuit.CX, 0, 1),
		on(circuit.P, 1).with(half(0))}},
	{circuit.CRZ, []Step{on(circuit.RZ, 1).with(half(0)), on(circuit.CX, 0, 1), on(circuit.RZ, 1).with(negHalf(0)), on(circuit.CX, 0, 1)}},
	{circuit.RZZ, []Step{on(circuit.CX, 0, 1), on(circuit.RZ, 1).with(arg(0)), on(circuit.CX, 0, 1)}},
	// Three qubit gates
	{circuit.CCX, []Step{
		on(circuit.H, 2), on(circuit.CX, 1, 2), on(circuit.TDG, 2), on(circuit.CX, 0, 2), on(circuit.T, 2), on(circuit.CX, 1, 2), on(circuit.TDG, 2), on(circuit.CX, 0, 2),
		on(circuit.T, 1), on(circuit.T, 2), on(circuit.H, 2), on(circuit.CX, 0, 1), on(circuit.T, 0), on(circuit.TDG, 1), on(circuit.CX, 0, 1),
	}},
	{circuit.CSWAP, []Step{on(circuit.CX, 2, 1), on(circuit.CCX, 0, 1, 2), on(circuit.CX, 2, 1)}},
}

// Apply a step to the operands and parameters of an operation being
// decomposed.
func (s Step) instantiate(op circuit.Operation) circuit.Operation {
	var (
		qubits = make([]uint, len(s.Qubits))
		params []float64
	)
	//
	for i, q := range s.Qubits {
		qubits[i] = op.Qubits[q]
	}
	//
	if len(s.Params) > 0 {
		params = make([]float64, len(s.Params))
		//
		for i, p := range s.Params {
			params[i] = p(op.Params)
		}
	}
	//
	return circuit.NewOperation(s.Kind, params, qubits...)
}
