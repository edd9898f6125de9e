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

import "sort"

// Standard operation kinds.  These follow the usual OpenQASM naming.
const (
	ID      = "id"
	X       = "x"
	Y       = "y"
	Z       = "z"
	H       = "h"
	S       = "s"
	SDG     = "sdg"
	T       = "t"
	TDG     = "tdg"
	SX      = "sx"
	SXDG    = "sxdg"
	RX      = "rx"
	RY      = "ry"
	RZ      = "rz"
	P       = "p"
	U       = "u"
	PRX     = "prx"
	CX      = "cx"
	CY      = "cy"
	CZ      = "cz"
	SWAP    = "swap"
	CP      = "cp"
	CRZ     = "crz"
	RZZ     = "rzz"
	CCX     = "ccx"
	CSWAP   = "cswap"
	MEASURE = "measure"
	RESET   = "reset"
	BARRIER = "barrier"
	// SHUTTLE moves an atom between the interaction zones of a zoned device.
	// Its two parameters are the source and destination zones.
	SHUTTLE = "shuttle"
)

// GateInfo describes the shape of a standard operation kind.
type GateInfo struct {
	// Name of the operation kind
	Name string
	// Number of qubits the operation acts upon.  This is zero for a barrier,
	// whose arity is variable.
	Qubits uint
	// Number of classical bits written by the operation.
	Clbits uint
	// Number of (angle) parameters the operation takes.
	Params uint
	// Unitary indicates whether or not this is a unitary gate (as opposed to
	// a measurement, reset or directive).
	Unitary bool
}

var gates = map[string]GateInfo{
	ID:      {ID, 1, 0, 0, true},
	X:       {X, 1, 0, 0, true},
	Y:       {Y, 1, 0, 0, true},
	Z:       {Z, 1, 0, 0, true},
	H:       {H, 1, 0, 0, true},
	S:       {S, 1, 0, 0, true},
	SDG:     {SDG, 1, 0, 0, true},
	T:       {T, 1, 0, 0, true},
	TDG:     {TDG, 1, 0, 0, true},
	SX:      {SX, 1, 0, 0, true},
	SXDG:    {SXDG, 1, 0, 0, true},
	RX:      {RX, 1, 0, 1, true},
	RY:      {RY, 1, 0, 1, true},
	RZ:      {RZ, 1, 0, 1, true},
	P:       {P, 1, 0, 1, true},
	U:       {U, 1, 0, 3, true},
	PRX:     {PRX, 1, 0, 2, true},
	CX:      {CX, 2, 0, 0, true},
	CY:      {CY, 2, 0, 0, true},
	CZ:      {CZ, 2, 0, 0, true},
	SWAP:    {SWAP, 2, 0, 0, true},
	CP:      {CP, 2, 0, 1, true},
	CRZ:     {CRZ, 2, 0, 1, true},
	RZZ:     {RZZ, 2, 0, 1, true},
	CCX:     {CCX, 3, 0, 0, true},
	CSWAP:   {CSWAP, 3, 0, 0, true},
	MEASURE: {MEASURE, 1, 1, 0, false},
	RESET:   {RESET, 1, 0, 0, false},
	BARRIER: {BARRIER, 0, 0, 0, false},
	SHUTTLE: {SHUTTLE, 1, 0, 2, false},
}

// Lookup returns the shape of a standard operation kind, or false if the kind
// is not a standard one.
func Lookup(kind string) (GateInfo, bool) {
	info, ok := gates[kind]
	return info, ok
}

// StandardKinds returns the names of all standard operation kinds in sorted
// order.
func StandardKinds() []string {
	kinds := make([]string, 0, len(gates))
	//
	for k := range gates {
		kinds = append(kinds, k)
	}
	//
	sort.Strings(kinds)
	//
	return kinds
}
