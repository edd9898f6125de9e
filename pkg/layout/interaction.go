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
	"cmp"
	"slices"

	"github.com/qubitlabs/go-transpile/pkg/circuit"
	"github.com/qubitlabs/go-transpile/pkg/device"
)

// Interaction records how many multi-qubit operations act on a given pair of
// logical qubits.
type Interaction struct {
	A      uint
	B      uint
	Weight uint
}

type neighbour struct {
	qubit  uint
	weight uint
}

// InteractionGraph is the weighted graph of logical qubits, where an edge
// between two qubits is weighted by the number of operations involving both.
type InteractionGraph struct {
	edges      []Interaction
	neighbours [][]neighbour
	total      uint
}

// NewInteractionGraph constructs the interaction graph of a given circuit.
// Every pair of qubits of an operation acting on two or more qubits gives an
// interaction.  Barriers are ignored.
func NewInteractionGraph(c *circuit.Circuit) *InteractionGraph {
	var (
		weights = make(map[[2]uint]uint)
		edges   []Interaction
		total   uint
	)
	//
	for _, op := range c.Operations() {
		if op.IsBarrier() {
			continue
		}
		//
		for i, a := range op.Qubits {
			for _, b := range op.Qubits[i+1:] {
				weights[[2]uint{min(a, b), max(a, b)}]++
			}
		}
	}
	//
	for k, w := range weights {
		edges = append(edges, Interaction{k[0], k[1], w})
		total += w
	}
	//
	slices.SortFunc(edges, func(l, r Interaction) int {
		return cmp.Or(cmp.Compare(l.A, r.A), cmp.Compare(l.B, r.B))
	})
	//
	neighbours := make([][]neighbour, c.NumQubits())
	//
	for _, e := range edges {
		neighbours[e.A] = append(neighbours[e.A], neighbour{e.B, e.Weight})
		neighbours[e.B] = append(neighbours[e.B], neighbour{e.A, e.Weight})
	}
	//
	return &InteractionGraph{edges, neighbours, total}
}

// Edges returns the interactions of this graph, sorted by qubit pair.
func (p *InteractionGraph) Edges() []Interaction {
	return p.edges
}

// TotalWeight returns the sum of all interaction weights.  This is a lower
// bound on the cost of any layout.
func (p *InteractionGraph) TotalWeight() uint {
	return p.total
}

// Interacting determines whether a given logical qubit interacts with any
// other.
func (p *InteractionGraph) Interacting(qubit uint) bool {
	return len(p.neighbours[qubit]) > 0
}

// WeightedDegree returns the sum of weights of all interactions of a given
// qubit.
func (p *InteractionGraph) WeightedDegree(qubit uint) uint {
	sum := uint(0)
	//
	for _, n := range p.neighbours[qubit] {
		sum += n.weight
	}
	//
	return sum
}

// Components returns the connected components of interacting qubits, largest
// first (ties broken by smallest member).  Each component is sorted.
func (p *InteractionGraph) Components() [][]uint {
	var (
		seen  = make([]bool, len(p.neighbours))
		comps [][]uint
	)
	//
	for q := range p.neighbours {
		if seen[q] || !p.Interacting(uint(q)) {
			continue
		}
		//
		comp := []uint{uint(q)}
		seen[q] = true
		//
		for i := 0; i < len(comp); i++ {
			for _, n := range p.neighbours[comp[i]] {
				if !seen[n.qubit] {
					seen[n.qubit] = true
					comp = append(comp, n.qubit)
				}
			}
		}
		//
		slices.Sort(comp)
		comps = append(comps, comp)
	}
	//
	slices.SortStableFunc(comps, func(l, r []uint) int {
		return cmp.Compare(len(r), len(l))
	})
	//
	return comps
}

// Cost returns the total weighted distance of a given assignment (indexed by
// logical qubit) on a given coupling map.  This is device.Unreachable if some
// interacting pair is unassigned or cannot be connected.
func (p *InteractionGraph) Cost(l2p []uint, cmap *device.CouplingMap) uint {
	cost := uint(0)
	//
	for _, e := range p.edges {
		pa, pb := l2p[e.A], l2p[e.B]
		//
		if pa == Unassigned || pb == Unassigned {
			return device.Unreachable
		}
		//
		d := cmap.Distance(pa, pb)
		//
		if d == device.Unreachable {
			return device.Unreachable
		}
		//
		cost += e.Weight * d
	}
	//
	return cost
}

// Cost contribution of the interactions of a single logical qubit, if it were
// placed on a given physical qubit.  Neighbours which are not yet assigned are
// ignored.  Returns false if some assigned neighbour is unreachable.
func (p *InteractionGraph) localCost(qubit uint, physical uint, l2p []uint, cmap *device.CouplingMap) (uint, bool) {
	cost := uint(0)
	//
	for _, n := range p.neighbours[qubit] {
		if q := l2p[n.qubit]; q != Unassigned {
			d := cmap.Distance(physical, q)
			//
			if d == device.Unreachable {
				return 0, false
			}
			//
			cost += n.weight * d
		}
	}
	//
	return cost, true
}
