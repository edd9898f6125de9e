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
package circuit

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Operation represents a single gate, measurement, reset or directive applied
// to an ordered list of qubits (and, possibly, classical bits).  Operations are
// treated as values: passes never modify an operation in place once it has
// been added to a circuit.
type Operation struct {
	// Kind identifies the operation (e.g. "h", "cx", "measure").
	Kind string `json:"kind"`
	// Params holds the angle parameters (in radians), if any.
	Params []float64 `json:"params"`
	// Qubits identifies the qubits this operation acts upon, in order.  For
	// controlled gates the controls come first.
	Qubits []uint `json:"qubits"`
	// Clbits identifies the classical bits written by this operation.
	Clbits []uint `json:"clbits"`
}

// NewOperation constructs a new operation of a given kind acting on zero or
// more qubits.
func NewOperation(kind string, params []float64, qubits ...uint) Operation {
	return Operation{kind, params, qubits, nil}
}

// NewMeasure constructs a measurement of a given qubit into a given classical
// bit.
func NewMeasure(qubit uint, clbit uint) Operation {
	return Operation{MEASURE, nil, []uint{qubit}, []uint{clbit}}
}

// NewShuttle constructs a move of a given qubit from one zone to another.
func NewShuttle(qubit uint, from uint, to uint) Operation {
	return Operation{SHUTTLE, []float64{float64(from), float64(to)}, []uint{qubit}, nil}
}

// IsShuttle checks whether this operation moves a qubit between zones.
func (p Operation) IsShuttle() bool {
	return p.Kind == SHUTTLE
}

// Zones returns the source and destination zones of a shuttle.
func (p Operation) Zones() (uint, uint) {
	return uint(p.Params[0]), uint(p.Params[1])
}

// IsBarrier checks whether this operation is a barrier directive.  Barriers
// order operations but are neither gates nor do they occupy a layer.
func (p Operation) IsBarrier() bool {
	return p.Kind == BARRIER
}

// IsMeasure checks whether this operation is a measurement.
func (p Operation) IsMeasure() bool {
	return p.Kind == MEASURE
}

// IsUnitary checks whether this is a known unitary gate.
func (p Operation) IsUnitary() bool {
	info, ok := gates[p.Kind]
	return ok && info.Unitary
}

// Arity returns the number of qubits this operation acts upon.
func (p Operation) Arity() uint {
	return uint(len(p.Qubits))
}

// Param returns the ith parameter of this operation, or zero if no such
// parameter exists.
func (p Operation) Param(i int) float64 {
	if i < len(p.Params) {
		return p.Params[i]
	}
	//
	return 0
}

// ActsOn determines whether or not this operation touches a given qubit.
func (p Operation) ActsOn(qubit uint) bool {
	return slices.Contains(p.Qubits, qubit)
}

// Clone returns a copy of this operation which does not alias the original.
func (p Operation) Clone() Operation {
	return Operation{p.Kind, slices.Clone(p.Params), slices.Clone(p.Qubits), slices.Clone(p.Clbits)}
}

// WithQubits returns a copy of this operation acting on a different set of
// qubits.
func (p Operation) WithQubits(qubits ...uint) Operation {
	return Operation{p.Kind, slices.Clone(p.Params), qubits, slices.Clone(p.Clbits)}
}

// Equals checks whether two operations are identical.  Parameters are
// compared exactly.
func (p Operation) Equals(o Operation) bool {
	return p.Kind == o.Kind && slices.Equal(p.Params, o.Params) && slices.Equal(p.Qubits, o.Qubits) &&
		slices.Equal(p.Clbits, o.Clbits)
}

// String returns an OpenQASM-like rendering of this operation.
func (p Operation) String() string {
	var builder strings.Builder
	//
	builder.WriteString(p.Kind)
	//
	if len(p.Params) > 0 {
		builder.WriteString("(")
		//
		for i, v := range p.Params {
			if i != 0 {
				builder.WriteString(",")
			}
			//
			builder.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		//
		builder.WriteString(")")
	}
	//
	for i, q := range p.Qubits {
		if i == 0 {
			builder.WriteString(" ")
		} else {
			builder.WriteString(",")
		}
		//
		builder.WriteString(fmt.Sprintf("q[%d]", q))
	}
	//
	for _, c := range p.Clbits {
		builder.WriteString(fmt.Sprintf(" -> c[%d]", c))
	}
	//
	return builder.String()
}
