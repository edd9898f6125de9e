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
	"encoding/json"
	"math"
	"slices"
	"strings"
	"testing"
)

func Test_Circuit_00(t *testing.T) {
	c := New(2, 0).Append(H, 0).Append(CX, 0, 1)
	check_Shape(t, c, 2, 2)
}

func Test_Circuit_01(t *testing.T) {
	// GHZ chain
	c := New(5, 0).Append(H, 0)
	//
	for i := uint(0); i < 4; i++ {
		c.Append(CX, i, i+1)
	}
	//
	check_Shape(t, c, 5, 5)
}

func Test_Circuit_02(t *testing.T) {
	// Parallel gates share a layer
	c := New(4, 0).Append(H, 0).Append(H, 1).Append(H, 2).Append(CX, 0, 1).Append(CX, 2, 3)
	check_Shape(t, c, 5, 2)
}

func Test_Circuit_03(t *testing.T) {
	// Barriers order without occupying a layer.
	c := New(2, 0).Append(H, 0).Append(H, 0).Barrier().Append(X, 1)
	check_Shape(t, c, 3, 3)
	//
	if c.Size() != 4 {
		t.Errorf("expected 4 operations, got %d", c.Size())
	}
}

func Test_Circuit_04(t *testing.T) {
	// Partial barrier only synchronises its own qubits
	c := New(3, 0).Append(H, 0).Append(H, 0).Barrier(0, 1).Append(X, 1).Append(X, 2)
	check_Shape(t, c, 4, 3)
	//
	layers := c.Layers()
	//
	if !slices.Contains(layers[0], 4) {
		t.Errorf("x q[2] should be in the first layer: %v", layers)
	}
}

func Test_Circuit_05(t *testing.T) {
	// Measurements into the same classical bit are ordered.
	c := New(2, 1).Measure(0, 0).Measure(1, 0)
	check_Shape(t, c, 2, 2)
}

func Test_Circuit_06(t *testing.T) {
	c := New(2, 1)
	check_Invalid(t, c, NewOperation(H, nil, 2))
	check_Invalid(t, c, NewOperation(CX, nil, 1, 1))
	check_Invalid(t, c, NewOperation(CX, nil, 1))
	check_Invalid(t, c, NewOperation(RZ, nil, 1))
	check_Invalid(t, c, NewOperation(H, []float64{1}, 1))
	check_Invalid(t, c, NewMeasure(0, 1))
	check_Invalid(t, c, NewOperation(MEASURE, nil, 0))
	check_Invalid(t, c, NewOperation("", nil, 0))
	check_Invalid(t, c, NewOperation("mygate", nil))
	//
	if c.Size() != 0 {
		t.Errorf("invalid operations were added")
	}
	// Custom gates are accepted
	if err := c.Add(NewOperation("mygate", []float64{0.5}, 0, 1)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func Test_Circuit_07(t *testing.T) {
	c := New(3, 2).Append(H, 0).AppendParams(RZ, []float64{math.Pi / 4}, 1).Append(CX, 0, 2).Barrier().
		Measure(0, 0).Measure(2, 1)
	//
	bytes, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	//
	d, err := ParseJSON(bytes)
	if err != nil {
		t.Fatal(err)
	}
	//
	if !c.Equals(d) {
		t.Errorf("circuit changed after JSON round trip:\n%s\n%s", c.String(), d.String())
	}
	// Empty lists are written explicitly
	if !strings.Contains(string(bytes), `"params":[]`) {
		t.Errorf("expected explicit empty params in %s", string(bytes))
	}
}

func Test_Circuit_08(t *testing.T) {
	_, err := ParseJSON([]byte(`{"num_qubits":1,"num_clbits":0,"operations":[{"kind":"cx","qubits":[0,1]}]}`))
	//
	if err == nil || !strings.Contains(err.Error(), "operation 0") {
		t.Errorf("expected an error for operation 0, got %v", err)
	}
}

func Test_Circuit_09(t *testing.T) {
	c := New(2, 0).Append(H, 0).Append(CX, 0, 1)
	r, err := c.Relabel([]uint{3, 1}, 4)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	expected := New(4, 0).Append(H, 3).Append(CX, 3, 1)
	//
	if !r.Equals(expected) {
		t.Errorf("unexpected relabelling:\n%s", r.String())
	}
	//
	if _, err := c.Relabel([]uint{0}, 4); err == nil {
		t.Errorf("expected error for short mapping")
	}
}

func Test_Circuit_10(t *testing.T) {
	c := New(3, 0).Append(H, 0).Append(CX, 0, 1).Append(CX, 0, 1).Barrier()
	active := c.ActiveQubits()
	counts := c.CountOps()
	//
	if !slices.Equal(active.Elements(), []uint{0, 1}) {
		t.Errorf("unexpected active qubits %s", active.String())
	} else if counts[CX] != 2 || counts[H] != 1 || counts[BARRIER] != 1 {
		t.Errorf("unexpected counts %v", counts)
	} else if c.CountMultiQubit() != 2 {
		t.Errorf("unexpected multi-qubit count %d", c.CountMultiQubit())
	}
}

func Test_Unitary_00(t *testing.T) {
	sx, _ := Unitary(NewOperation(SX, nil, 0))
	x, _ := Unitary(NewOperation(X, nil, 0))
	//
	if !sx.Mul(sx).EqualsUpToPhase(x, 1e-9) {
		t.Errorf("sx.sx != x")
	}
}

func Test_Unitary_01(t *testing.T) {
	h, _ := Unitary(NewOperation(H, nil, 0))
	u, _ := Unitary(NewOperation(U, []float64{math.Pi / 2, 0, math.Pi}, 0))
	//
	if !h.EqualsUpToPhase(u, 1e-9) {
		t.Errorf("u(pi/2,0,pi) != h")
	}
	//
	if h.EqualsUpToPhase(Identity(2), 1e-9) {
		t.Errorf("h == id")
	}
}

func Test_Unitary_02(t *testing.T) {
	rz, _ := Unitary(NewOperation(RZ, []float64{0.3}, 0))
	p, _ := Unitary(NewOperation(P, []float64{0.3}, 0))
	prx, _ := Unitary(NewOperation(PRX, []float64{0.7, 0}, 0))
	rx, _ := Unitary(NewOperation(RX, []float64{0.7}, 0))
	//
	if !rz.EqualsUpToPhase(p, 1e-9) {
		t.Errorf("rz != p")
	} else if !prx.EqualsUpToPhase(rx, 1e-9) {
		t.Errorf("prx(θ,0) != rx(θ)")
	}
	//
	if _, ok := Unitary(NewMeasure(0, 0)); ok {
		t.Errorf("measure should not have a unitary")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_Shape(t *testing.T, c *Circuit, gates uint, depth uint) {
	t.Helper()
	//
	if c.Len() != gates {
		t.Errorf("expected %d gates, got %d", gates, c.Len())
	}
	//
	if c.Depth() != depth {
		t.Errorf("expected depth %d, got %d (layers %v)", depth, c.Depth(), c.Layers())
	}
}

func check_Invalid(t *testing.T, c *Circuit, op Operation) {
	t.Helper()
	//
	if err := c.Add(op); err == nil {
		t.Errorf("expected %s to be rejected", op.String())
	}
}
