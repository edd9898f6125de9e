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
	"strings"

	"github.com/qubitlabs/go-transpile/pkg/util/collection/bit"
)

// Circuit is an ordered sequence of operations over a fixed number of qubits
// and classical bits.  Every qubit (resp. classical bit) referenced by an
// operation is guaranteed to be within bounds, since this is checked when the
// operation is added.  Compilation passes never modify a circuit they are
// given; instead, they construct a new one.
type Circuit struct {
	numQubits uint
	numClbits uint
	ops       []Operation
}

// New constructs an empty circuit over a given number of qubits and classical
// bits.
func New(numQubits uint, numClbits uint) *Circuit {
	return &Circuit{numQubits, numClbits, nil}
}

// NumQubits returns the number of qubits in this circuit.
func (p *Circuit) NumQubits() uint {
	return p.numQubits
}

// NumClbits returns the number of classical bits in this circuit.
func (p *Circuit) NumClbits() uint {
	return p.numClbits
}

// Operations returns the operations of this circuit in order.  The returned
// slice must not be modified.
func (p *Circuit) Operations() []Operation {
	return p.ops
}

// Operation returns the ith operation of this circuit.
func (p *Circuit) Operation(i int) Operation {
	return p.ops[i]
}

// Size returns the total number of operations in this circuit, including
// directives such as barriers.
func (p *Circuit) Size() int {
	return len(p.ops)
}

// Len returns the gate count of this circuit.  That is the number of
// operations which are not barriers.
func (p *Circuit) Len() uint {
	count := uint(0)
	//
	for _, op := range p.ops {
		if !op.IsBarrier() {
			count++
		}
	}
	//
	return count
}

// Add a new operation onto the end of this circuit.  This fails if the
// operation refers to a qubit or classical bit which is out of bounds, acts on
// the same qubit twice or, for a standard operation, does not have the expected
// shape.
func (p *Circuit) Add(op Operation) error {
	if err := p.check(op); err != nil {
		return err
	}
	//
	p.ops = append(p.ops, op.Clone())
	//
	return nil
}

// Append adds a parameterless operation to this circuit, returning the circuit
// to allow chaining.  This panics if the operation is invalid and is intended
// for constructing circuits programmatically.
func (p *Circuit) Append(kind string, qubits ...uint) *Circuit {
	return p.AppendParams(kind, nil, qubits...)
}

// AppendParams adds a parameterised operation to this circuit, returning the
// circuit to allow chaining.  This panics if the operation is invalid.
func (p *Circuit) AppendParams(kind string, params []float64, qubits ...uint) *Circuit {
	if err := p.Add(NewOperation(kind, params, qubits...)); err != nil {
		panic(err.Error())
	}
	//
	return p
}

// Measure adds a measurement of a given qubit into a given classical bit.
// This panics if either is out of bounds.
func (p *Circuit) Measure(qubit uint, clbit uint) *Circuit {
	if err := p.Add(NewMeasure(qubit, clbit)); err != nil {
		panic(err.Error())
	}
	//
	return p
}

// Barrier adds a barrier over the given qubits.  A barrier with no qubits
// spans every qubit of the circuit.
func (p *Circuit) Barrier(qubits ...uint) *Circuit {
	return p.Append(BARRIER, qubits...)
}

func (p *Circuit) check(op Operation) error {
	if op.Kind == "" {
		return fmt.Errorf("operation has no kind")
	}
	//
	for i, q := range op.Qubits {
		if q >= p.numQubits {
			return fmt.Errorf("%s: qubit %d out of bounds (circuit has %d qubits)", op.Kind, q, p.numQubits)
		}
		//
		for _, r := range op.Qubits[:i] {
			if q == r {
				return fmt.Errorf("%s: qubit %d used more than once", op.Kind, q)
			}
		}
	}
	//
	for _, c := range op.Clbits {
		if c >= p.numClbits {
			return fmt.Errorf("%s: classical bit %d out of bounds (circuit has %d classical bits)", op.Kind, c,
				p.numClbits)
		}
	}
	//
	info, ok := gates[op.Kind]
	//
	switch {
	case !ok && len(op.Qubits) == 0:
		return fmt.Errorf("%s: operation acts on no qubits", op.Kind)
	case !ok:
		return nil
	case op.IsBarrier():
		if len(op.Params) != 0 || len(op.Clbits) != 0 {
			return fmt.Errorf("barrier cannot have parameters or classical bits")
		}
	case uint(len(op.Qubits)) != info.Qubits:
		return fmt.Errorf("%s: expected %d qubits, found %d", op.Kind, info.Qubits, len(op.Qubits))
	case uint(len(op.Params)) != info.Params:
		return fmt.Errorf("%s: expected %d parameters, found %d", op.Kind, info.Params, len(op.Params))
	case uint(len(op.Clbits)) != info.Clbits:
		return fmt.Errorf("%s: expected %d classical bits, found %d", op.Kind, info.Clbits, len(op.Clbits))
	}
	//
	return nil
}

// Layers partitions the operations of this circuit into "as soon as possible"
// layers.  Each layer holds the indices of operations which can execute
// concurrently and every operation is placed in the earliest layer after all
// operations it depends upon.  Barriers are excluded from the layers, but
// still order the operations either side of them.
func (p *Circuit) Layers() [][]int {
	var (
		layers [][]int
		qlevel = make([]int, p.numQubits)
		clevel = make([]int, p.numClbits)
	)
	//
	for i, op := range p.ops {
		if op.IsBarrier() {
			p.applyBarrier(op, qlevel)
			continue
		}
		//
		layer := 0
		//
		for _, q := range op.Qubits {
			layer = max(layer, qlevel[q])
		}
		//
		for _, c := range op.Clbits {
			layer = max(layer, clevel[c])
		}
		//
		for len(layers) <= layer {
			layers = append(layers, nil)
		}
		//
		layers[layer] = append(layers[layer], i)
		//
		for _, q := range op.Qubits {
			qlevel[q] = layer + 1
		}
		//
		for _, c := range op.Clbits {
			clevel[c] = layer + 1
		}
	}
	//
	return layers
}

// Synchronise all qubits covered by a barrier to the latest of them.
func (p *Circuit) applyBarrier(op Operation, qlevel []int) {
	qubits := op.Qubits
	//
	if len(qubits) == 0 {
		qubits = p.AllQubits()
	}
	//
	level := 0
	//
	for _, q := range qubits {
		level = max(level, qlevel[q])
	}
	//
	for _, q := range qubits {
		qlevel[q] = level
	}
}

// Depth returns the number of layers in this circuit.
func (p *Circuit) Depth() uint {
	return uint(len(p.Layers()))
}

// AllQubits returns the list of every qubit index in this circuit.
func (p *Circuit) AllQubits() []uint {
	qubits := make([]uint, p.numQubits)
	//
	for i := range qubits {
		qubits[i] = uint(i)
	}
	//
	return qubits
}

// ActiveQubits returns the set of qubits touched by at least one operation
// other than a barrier.
func (p *Circuit) ActiveQubits() bit.Set {
	active := bit.NewSet(p.numQubits)
	//
	for _, op := range p.ops {
		if !op.IsBarrier() {
			active.InsertAll(op.Qubits...)
		}
	}
	//
	return active
}

// CountOps returns the number of operations of each kind in this circuit.
func (p *Circuit) CountOps() map[string]uint {
	counts := make(map[string]uint)
	//
	for _, op := range p.ops {
		counts[op.Kind]++
	}
	//
	return counts
}

// CountMultiQubit returns the number of gates acting on two or more qubits.
func (p *Circuit) CountMultiQubit() uint {
	count := uint(0)
	//
	for _, op := range p.ops {
		if !op.IsBarrier() && op.Arity() >= 2 {
			count++
		}
	}
	//
	return count
}

// Clone creates a copy of this circuit.  Since operations are never modified
// in place, they are shared between the original and the copy.
func (p *Circuit) Clone() *Circuit {
	ops := make([]Operation, len(p.ops))
	copy(ops, p.ops)
	//
	return &Circuit{p.numQubits, p.numClbits, ops}
}

// Equals determines whether two circuits have the same width and the same
// sequence of operations.
func (p *Circuit) Equals(o *Circuit) bool {
	if p.numQubits != o.numQubits || p.numClbits != o.numClbits || len(p.ops) != len(o.ops) {
		return false
	}
	//
	for i := range p.ops {
		if !p.ops[i].Equals(o.ops[i]) {
			return false
		}
	}
	//
	return true
}

// Relabel constructs a new circuit of a given width by mapping every qubit q
// of this circuit to mapping[q].  This fails if the mapping is too short or
// maps outside the given width.
func (p *Circuit) Relabel(mapping []uint, width uint) (*Circuit, error) {
	if uint(len(mapping)) < p.numQubits {
		return nil, fmt.Errorf("mapping covers %d qubits, circuit has %d", len(mapping), p.numQubits)
	}
	//
	ncircuit := New(width, p.numClbits)
	//
	for _, op := range p.ops {
		qubits := make([]uint, len(op.Qubits))
		//
		for i, q := range op.Qubits {
			qubits[i] = mapping[q]
		}
		//
		if err := ncircuit.Add(op.WithQubits(qubits...)); err != nil {
			return nil, err
		}
	}
	//
	return ncircuit, nil
}

func (p *Circuit) String() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("qreg q[%d];\n", p.numQubits))
	//
	if p.numClbits > 0 {
		builder.WriteString(fmt.Sprintf("creg c[%d];\n", p.numClbits))
	}
	//
	for _, op := range p.ops {
		builder.WriteString(op.String())
		builder.WriteString(";\n")
	}
	//
	return builder.String()
}
