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
	"fmt"
	"slices"
)

// Unreachable is the distance between two physical qubits which lie in
// different connected components of a coupling map.
const Unreachable = ^uint(0)

// Edge is an (unordered) pair of coupled physical qubits.
type Edge [2]uint

// CouplingMap describes which pairs of physical qubits can interact directly.
// Connectivity is treated as undirected.  The map precomputes all-pairs
// shortest path distances so that distance queries are constant time.
type CouplingMap struct {
	size uint
	// Edges in the order they were first given (duplicates removed).
	edges []Edge
	// Sorted adjacency lists, indexed by physical qubit.
	neighbours [][]uint
	// Flattened size*size distance matrix.
	distances []uint
	// Connected component identifier of each physical qubit.
	components []uint
}

// NewCouplingMap constructs a coupling map over a given number of physical
// qubits.  This fails if an edge refers to a qubit out of bounds, or couples a
// qubit with itself.  Duplicate edges (in either direction) are ignored.
func NewCouplingMap(size uint, edges []Edge) (*CouplingMap, error) {
	var (
		neighbours = make([][]uint, size)
		kept       []Edge
	)
	//
	for _, e := range edges {
		a, b := e[0], e[1]
		//
		switch {
		case a >= size || b >= size:
			return nil, fmt.Errorf("coupling (%d,%d) out of bounds (device has %d qubits)", a, b, size)
		case a == b:
			return nil, fmt.Errorf("qubit %d cannot be coupled with itself", a)
		case slices.Contains(neighbours[a], b):
			continue
		}
		//
		neighbours[a] = append(neighbours[a], b)
		neighbours[b] = append(neighbours[b], a)
		kept = append(kept, e)
	}
	//
	for _, ns := range neighbours {
		slices.Sort(ns)
	}
	//
	cmap := &CouplingMap{size, kept, neighbours, nil, nil}
	cmap.computeDistances()
	//
	return cmap, nil
}

// Breadth-first search from every qubit.  This also identifies the connected
// components, since a component is the set of qubits reachable from its
// smallest member.
func (p *CouplingMap) computeDistances() {
	n := p.size
	p.distances = make([]uint, n*n)
	p.components = make([]uint, n)
	//
	for i := range p.distances {
		p.distances[i] = Unreachable
	}
	//
	for i := range p.components {
		p.components[i] = Unreachable
	}
	//
	queue := make([]uint, 0, n)
	//
	for src := uint(0); src < n; src++ {
		row := p.distances[src*n : (src+1)*n]
		row[src] = 0
		queue = append(queue[:0], src)
		//
		for len(queue) > 0 {
			q := queue[0]
			queue = queue[1:]
			//
			for _, r := range p.neighbours[q] {
				if row[r] == Unreachable {
					row[r] = row[q] + 1
					queue = append(queue, r)
				}
			}
		}
		//
		if p.components[src] == Unreachable {
			for q := uint(0); q < n; q++ {
				if row[q] != Unreachable {
					p.components[q] = src
				}
			}
		}
	}
}

// Size returns the number of physical qubits covered by this map.
func (p *CouplingMap) Size() uint {
	return p.size
}

// Edges returns the edges of this coupling map.  The returned slice must not be
// modified.
func (p *CouplingMap) Edges() []Edge {
	return p.edges
}

// Neighbours returns the physical qubits coupled with a given qubit, in
// ascending order.  The returned slice must not be modified.
func (p *CouplingMap) Neighbours(qubit uint) []uint {
	return p.neighbours[qubit]
}

// Adjacent determines whether two physical qubits are directly coupled.
func (p *CouplingMap) Adjacent(a, b uint) bool {
	return a < p.size && b < p.size && p.distances[a*p.size+b] == 1
}

// Distance returns the length of the shortest path between two physical
// qubits, or Unreachable if they lie in different components.
func (p *CouplingMap) Distance(a, b uint) uint {
	return p.distances[a*p.size+b]
}

// Connected determines whether there is some path between two physical
// qubits.
func (p *CouplingMap) Connected(a, b uint) bool {
	return p.components[a] == p.components[b]
}

// ShortestPath returns the lexicographically smallest shortest path from a to b
// (inclusive of both), or nil if no path exists.  At each step the path moves
// to the smallest neighbour which is one step closer to b.
func (p *CouplingMap) ShortestPath(a, b uint) []uint {
	if !p.Connected(a, b) {
		return nil
	}
	//
	path := []uint{a}
	//
	for cur := a; cur != b; {
		d := p.Distance(cur, b)
		//
		for _, next := range p.neighbours[cur] {
			if p.Distance(next, b) == d-1 {
				cur = next
				break
			}
		}
		//
		path = append(path, cur)
	}
	//
	return path
}

// Component returns an identifier for the connected component containing a
// given qubit.  This is the smallest qubit in that component.
func (p *CouplingMap) Component(qubit uint) uint {
	return p.components[qubit]
}

// Components returns the connected components of this map, each sorted in
// ascending order.  Components are ordered by their smallest element.
func (p *CouplingMap) Components() [][]uint {
	var (
		index  = make(map[uint]int)
		groups [][]uint
	)
	//
	for q := uint(0); q < p.size; q++ {
		c := p.components[q]
		//
		i, ok := index[c]
		if !ok {
			i = len(groups)
			index[c] = i
			groups = append(groups, nil)
		}
		//
		groups[i] = append(groups[i], q)
	}
	//
	return groups
}

// ============================================================================
// Standard topologies
// ============================================================================

// Linear constructs a chain 0 - 1 - ... - (n-1).
func Linear(n uint) *CouplingMap {
	var edges []Edge
	//
	for i := uint(0); i+1 < n; i++ {
		edges = append(edges, Edge{i, i + 1})
	}
	//
	return mustCouplingMap(n, edges)
}

// Ring constructs a chain whose ends are coupled.
func Ring(n uint) *CouplingMap {
	var edges []Edge
	//
	for i := uint(0); i+1 < n; i++ {
		edges = append(edges, Edge{i, i + 1})
	}
	//
	if n > 2 {
		edges = append(edges, Edge{n - 1, 0})
	}
	//
	return mustCouplingMap(n, edges)
}

// Star constructs a map where qubit 0 is coupled with every other qubit.
func Star(n uint) *CouplingMap {
	var edges []Edge
	//
	for i := uint(1); i < n; i++ {
		edges = append(edges, Edge{0, i})
	}
	//
	return mustCouplingMap(n, edges)
}

// Grid constructs a rows x cols square lattice, numbered row by row.
func Grid(rows, cols uint) *CouplingMap {
	var edges []Edge
	//
	for r := uint(0); r < rows; r++ {
		for c := uint(0); c < cols; c++ {
			q := r*cols + c
			//
			if c+1 < cols {
				edges = append(edges, Edge{q, q + 1})
			}
			//
			if r+1 < rows {
				edges = append(edges, Edge{q, q + cols})
			}
		}
	}
	//
	return mustCouplingMap(rows*cols, edges)
}

// Full constructs a map where every pair of qubits is coupled.
func Full(n uint) *CouplingMap {
	var edges []Edge
	//
	for i := uint(0); i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, Edge{i, j})
		}
	}
	//
	return mustCouplingMap(n, edges)
}

func mustCouplingMap(n uint, edges []Edge) *CouplingMap {
	cmap, err := NewCouplingMap(n, edges)
	// Should be unreachable
	if err != nil {
		panic(err.Error())
	}
	//
	return cmap
}
