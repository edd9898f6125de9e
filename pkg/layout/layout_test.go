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
package layout

import (
	"errors"
	"slices"
	"testing"

	"github.com/qubitlabs/go-transpile/pkg/circuit"
	"github.com/qubitlabs/go-transpile/pkg/device"
)

func Test_Layout_00(t *testing.T) {
	l := Trivial(2, 4)
	l.Swap(1, 3)
	//
	check_Physicals(t, l, 0, 3)
	//
	if q, ok := l.Logical(3); !ok || q != 1 {
		t.Errorf("physical 3 should host logical 1")
	} else if _, ok := l.Logical(1); ok {
		t.Errorf("physical 1 should be free")
	}
	// Swapping two free qubits has no effect
	l.Swap(1, 2)
	check_Physicals(t, l, 0, 3)
}

func Test_Layout_01(t *testing.T) {
	l := New(2, 3)
	//
	if err := l.Assign(0, 2); err != nil {
		t.Fatal(err)
	} else if l.IsComplete() {
		t.Errorf("layout should be incomplete")
	}
	//
	if err := l.Assign(1, 2); err == nil {
		t.Errorf("expected conflict on physical 2")
	} else if err := l.Assign(0, 1); err == nil {
		t.Errorf("expected conflict on logical 0")
	} else if err := l.Assign(1, 3); err == nil {
		t.Errorf("expected out of bounds")
	}
	//
	if err := l.Assign(1, 0); err != nil {
		t.Fatal(err)
	}
	//
	expected := []QubitMapping{{0, 2}, {1, 0}}
	//
	if !slices.Equal(l.Mapping(), expected) {
		t.Errorf("unexpected mapping %v", l.Mapping())
	}
}

func Test_Layout_02(t *testing.T) {
	l := Trivial(2, 2)
	c := l.Clone()
	l.Freeze()
	//
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic when swapping frozen layout")
		}
	}()
	// Clone is not frozen
	c.Swap(0, 1)
	check_Physicals(t, c, 1, 0)
	//
	l.Swap(0, 1)
}

func Test_Layout_03(t *testing.T) {
	if _, err := FromPhysical([]uint{1, 1}, 3); err == nil {
		t.Errorf("expected non-injective layout to be rejected")
	} else if _, err := FromPhysical([]uint{0, 1, 2}, 2); err == nil {
		t.Errorf("expected oversize layout to be rejected")
	}
}

func Test_Interaction_00(t *testing.T) {
	c := circuit.New(4, 0).Append(circuit.CX, 0, 1).Append(circuit.CX, 1, 0).Append(circuit.CCX, 1, 2, 3).
		Barrier().Append(circuit.H, 2)
	g := NewInteractionGraph(c)
	//
	expected := []Interaction{{0, 1, 2}, {1, 2, 1}, {1, 3, 1}, {2, 3, 1}}
	//
	if !slices.Equal(g.Edges(), expected) {
		t.Errorf("unexpected interactions %v", g.Edges())
	} else if g.TotalWeight() != 5 {
		t.Errorf("unexpected total weight %d", g.TotalWeight())
	} else if g.WeightedDegree(1) != 4 {
		t.Errorf("unexpected weighted degree %d", g.WeightedDegree(1))
	}
}

func Test_Interaction_01(t *testing.T) {
	c := circuit.New(6, 0).Append(circuit.CX, 4, 5).Append(circuit.CX, 0, 2).Append(circuit.CZ, 2, 3).
		Append(circuit.H, 1)
	comps := NewInteractionGraph(c).Components()
	//
	if len(comps) != 2 || !slices.Equal(comps[0], []uint{0, 2, 3}) || !slices.Equal(comps[1], []uint{4, 5}) {
		t.Errorf("unexpected components %v", comps)
	}
}

func Test_Assign_00(t *testing.T) {
	// Too many qubits
	c := circuit.New(10, 0).Append(circuit.H, 0)
	dev := device.NewUncalibrated("line", device.Linear(5), device.NewGateSet(circuit.CX))
	//
	_, err := Assign(c, dev)
	//
	var lerr *LayoutError
	if !errors.As(err, &lerr) {
		t.Errorf("expected layout error, got %v", err)
	}
}

func Test_Assign_01(t *testing.T) {
	// GHZ on a line is already optimal
	c := circuit.New(5, 0).Append(circuit.H, 0)
	//
	for i := uint(0); i < 4; i++ {
		c.Append(circuit.CX, i, i+1)
	}
	//
	check_Assign(t, c, device.Linear(5), 0, 1, 2, 3, 4)
}

func Test_Assign_02(t *testing.T) {
	c := circuit.New(3, 0).Append(circuit.CX, 0, 2)
	check_Assign(t, c, device.Linear(3), 0, 2, 1)
}

func Test_Assign_03(t *testing.T) {
	// Star interaction onto a star device: logical 2 must be at the centre.
	c := circuit.New(4, 0).Append(circuit.CX, 2, 0).Append(circuit.CX, 2, 1).Append(circuit.CX, 2, 3)
	check_Assign(t, c, device.Star(4), 1, 2, 0, 3)
}

func Test_Assign_04(t *testing.T) {
	// A ring of four interactions fits a 2x2 grid at cost 4.
	c := circuit.New(4, 0).Append(circuit.CX, 0, 1).Append(circuit.CX, 1, 2).Append(circuit.CX, 2, 3).
		Append(circuit.CX, 3, 0)
	l := check_Cost(t, c, device.Grid(2, 2), 4)
	//
	check_Physicals(t, l, 0, 1, 3, 2)
}

func Test_Assign_05(t *testing.T) {
	// Interacting groups must each fit a connected region.
	cmap, _ := device.NewCouplingMap(4, []device.Edge{{0, 1}, {2, 3}})
	dev := device.NewUncalibrated("split", cmap, device.NewGateSet(circuit.CX))
	ok := circuit.New(4, 0).Append(circuit.CX, 0, 2).Append(circuit.CX, 1, 3)
	bad := circuit.New(3, 0).Append(circuit.CX, 0, 1).Append(circuit.CX, 1, 2)
	//
	l, err := Assign(ok, dev)
	if err != nil {
		t.Fatal(err)
	}
	//
	for _, pair := range [][2]uint{{0, 2}, {1, 3}} {
		if !cmap.Adjacent(l.Physical(pair[0]), l.Physical(pair[1])) {
			t.Errorf("logical qubits %v not adjacent in %s", pair, l.String())
		}
	}
	//
	var lerr *LayoutError
	if _, err := Assign(bad, dev); !errors.As(err, &lerr) {
		t.Errorf("expected layout error, got %v", err)
	}
}

func Test_Assign_06(t *testing.T) {
	// Without the exact search, the heuristic must still give a valid layout.
	c := circuit.New(5, 0)
	//
	for i := uint(0); i < 5; i++ {
		for j := i + 1; j < 5; j++ {
			c.Append(circuit.CZ, i, j)
		}
	}
	//
	dev := device.NewUncalibrated("grid", device.Grid(3, 3), device.NewGateSet(circuit.CZ))
	//
	for _, budget := range []uint{0, 10, DEFAULT_SEARCH_BUDGET} {
		l, err := NewAssignor().WithSearchBudget(budget).Assign(c, dev)
		//
		if err != nil {
			t.Fatal(err)
		} else if !l.IsComplete() {
			t.Errorf("incomplete layout %s", l.String())
		}
	}
}

func Test_Assign_07(t *testing.T) {
	// Best fit fails, but chains of 5,4,4,3,2,2 pack as 5+3+2 and 4+4+2.
	var (
		edges []device.Edge
		c     = circuit.New(20, 0)
		start = uint(0)
	)
	//
	for i := uint(0); i < 9; i++ {
		edges = append(edges, device.Edge{i, i + 1}, device.Edge{i + 10, i + 11})
	}
	//
	cmap, _ := device.NewCouplingMap(20, edges)
	dev := device.NewUncalibrated("split", cmap, device.NewGateSet(circuit.CX))
	//
	for _, size := range []uint{5, 4, 4, 3, 2, 2} {
		for i := start; i+1 < start+size; i++ {
			c.Append(circuit.CX, i, i+1)
		}
		//
		start += size
	}
	//
	l, err := Assign(c, dev)
	if err != nil {
		t.Fatal(err)
	}
	//
	for _, op := range c.Operations() {
		if !cmap.Connected(l.Physical(op.Qubits[0]), l.Physical(op.Qubits[1])) {
			t.Errorf("%s placed in disconnected regions by %s", op.String(), l.String())
		}
	}
}

func Test_Assign_08(t *testing.T) {
	// Isolated qubits take part in the tie-break
	c := circuit.New(4, 0).Append(circuit.CX, 3, 1).Append(circuit.CX, 3, 2).Append(circuit.CX, 1, 2)
	l := check_Cost(t, c, device.Linear(6), 4)
	//
	check_Physicals(t, l, 0, 1, 2, 3)
	// Isolated qubit in the middle
	c = circuit.New(4, 0).Append(circuit.CX, 0, 3).Append(circuit.CX, 3, 2).Append(circuit.CX, 0, 2)
	l = check_Cost(t, c, device.Linear(4), 4)
	//
	check_Physicals(t, l, 0, 3, 1, 2)
}

func Test_Pack_00(t *testing.T) {
	check_Pack(t, []int{10, 10}, []int{5, 4, 4, 3, 2, 2}, true)
	check_Pack(t, []int{10, 10}, []int{6, 6, 6}, false)
	check_Pack(t, []int{3, 3}, []int{2, 2, 2}, false)
	check_Pack(t, []int{4, 2}, []int{2, 2, 2}, true)
	check_Pack(t, []int{5}, []int{6}, false)
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_Physicals(t *testing.T, l *Layout, physicals ...uint) {
	t.Helper()
	//
	if !slices.Equal(l.Physicals(), physicals) {
		t.Errorf("expected layout %v, got %v", physicals, l.Physicals())
	}
}

func check_Assign(t *testing.T, c *circuit.Circuit, cmap *device.CouplingMap, physicals ...uint) {
	t.Helper()
	//
	dev := device.NewUncalibrated("test", cmap, device.NewGateSet(circuit.H, circuit.CX))
	//
	l, err := Assign(c, dev)
	if err != nil {
		t.Fatal(err)
	}
	//
	check_Physicals(t, l, physicals...)
}

func check_Cost(t *testing.T, c *circuit.Circuit, cmap *device.CouplingMap, cost uint) *Layout {
	t.Helper()
	//
	dev := device.NewUncalibrated("test", cmap, device.NewGateSet(circuit.CX))
	//
	l, err := Assign(c, dev)
	if err != nil {
		t.Fatal(err)
	}
	//
	if actual := NewInteractionGraph(c).Cost(l.Physicals(), cmap); actual != cost {
		t.Errorf("expected cost %d, got %d (layout %s)", cost, actual, l.String())
	}
	//
	return l
}

// Check whether components of the given sizes can be packed into regions of the
// given sizes, and that any packing found respects their capacity.
func check_Pack(t *testing.T, regionSizes []int, compSizes []int, expected bool) {
	t.Helper()
	//
	var (
		regions = make([][]uint, len(regionSizes))
		comps   = make([][]uint, len(compSizes))
		next    = uint(0)
	)
	//
	for i, n := range regionSizes {
		for ; n > 0; n-- {
			regions[i] = append(regions[i], next)
			next++
		}
	}
	//
	for i, n := range compSizes {
		comps[i] = make([]uint, n)
	}
	//
	targets, ok := packRegions(comps, regions)
	//
	if ok != expected {
		t.Fatalf("packing %v into %v: expected %t, got %t", compSizes, regionSizes, expected, ok)
	} else if !ok {
		return
	}
	//
	used := make([]int, len(regions))
	//
	for i, comp := range comps {
		used[targets[i]] += len(comp)
	}
	//
	for i, n := range used {
		if n > len(regions[i]) {
			t.Errorf("region %d holds %d qubits, but has only %d (packing %v)", i, n, len(regions[i]), targets)
		}
	}
}
