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
	"fmt"

	"github.com/qubitlabs/go-transpile/pkg/circuit"
	"github.com/qubitlabs/go-transpile/pkg/device"
	log "github.com/sirupsen/logrus"
)

// DEFAULT_SEARCH_BUDGET is the default number of nodes the exact search may
// visit before settling for the best layout found so far.
const DEFAULT_SEARCH_BUDGET = uint(100_000)

// Maximum number of rounds of pairwise exchange.
const maxClimbRounds = 16

// LayoutError indicates no layout of a circuit onto a device exists.
//
//nolint:revive
type LayoutError struct {
	// Index of the offending operation, or -1 if there is none.
	Index int
	// Message describing the problem.
	Message string
}

func (e *LayoutError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("layout error (operation %d): %s", e.Index, e.Message)
	}
	//
	return fmt.Sprintf("layout error: %s", e.Message)
}

// Assignor chooses an initial placement of logical qubits onto physical qubits.
// The aim is to minimise the sum, over all interacting pairs, of interaction
// weight times the distance between their physical qubits.  Ties are broken in
// favour of the lexicographically smallest assignment.
type Assignor struct {
	budget uint
}

// NewAssignor constructs an assignor with the default search budget.
func NewAssignor() Assignor {
	return Assignor{DEFAULT_SEARCH_BUDGET}
}

// WithSearchBudget returns an assignor whose exact search visits at most the
// given number of nodes.  A budget of zero disables the exact search.
func (a Assignor) WithSearchBudget(budget uint) Assignor {
	a.budget = budget
	return a
}

// Assign a layout for a given circuit onto a given device using the default
// assignor.
func Assign(c *circuit.Circuit, dev *device.Device) (*Layout, error) {
	return NewAssignor().Assign(c, dev)
}

// Assign a layout for a given circuit onto a given device.  This fails if the
// circuit has more qubits than the device, or if some group of interacting
// qubits cannot be placed within a single connected region of the device.
func (a Assignor) Assign(c *circuit.Circuit, dev *device.Device) (*Layout, error) {
	var (
		nl   = c.NumQubits()
		np   = dev.NumQubits()
		cmap = dev.CouplingMap()
	)
	//
	if nl > np {
		return nil, &LayoutError{-1, fmt.Sprintf("circuit requires %d qubits but device %s has only %d", nl,
			dev.Name(), np)}
	}
	//
	graph := NewInteractionGraph(c)
	trivial := Trivial(nl, np)
	// Identity layout is used whenever it is already optimal.
	if graph.Cost(trivial.l2p, cmap) == graph.TotalWeight() {
		log.Debugf("trivial layout is optimal for %d interactions", len(graph.Edges()))
		return trivial, nil
	}
	//
	l2p, err := placeGreedy(graph, cmap, nl, np)
	if err != nil {
		return nil, err
	}
	//
	cost := climb(graph, cmap, l2p, np)
	l2p, cost = a.search(graph, cmap, placeIsolated(graph, l2p, np), cost, np)
	//
	log.Debugf("layout %v has cost %d (lower bound %d)", l2p, cost, graph.TotalWeight())
	//
	return FromPhysical(l2p, np)
}

// ============================================================================
// Greedy placement
// ============================================================================

// Place each component of the interaction graph into a connected region of the
// device (see packRegions).  Within a region, qubits are placed one at a time
// next to those already placed.
func placeGreedy(graph *InteractionGraph, cmap *device.CouplingMap, nl, np uint) ([]uint, error) {
	var (
		regions = cmap.Components()
		comps   = graph.Components()
		used    = make([]bool, np)
		l2p     = make([]uint, nl)
	)
	//
	for i := range l2p {
		l2p[i] = Unassigned
	}
	//
	targets, ok := packRegions(comps, regions)
	if !ok {
		return nil, &LayoutError{-1, fmt.Sprintf("interacting qubits %v cannot be packed into the connected regions of "+
			"the device", comps)}
	}
	//
	for i, comp := range comps {
		placeComponent(graph, cmap, comp, regions[targets[i]], l2p, used)
	}
	//
	return l2p, nil
}

// Choose a connected region of the device for each component, such that no
// region holds more qubits than it has.  Components are taken largest first,
// each going to the region with the least free capacity which can still hold it
// (best fit).  If that fails, an exhaustive search over the choices of region
// decides whether any packing exists.
func packRegions(comps [][]uint, regions [][]uint) ([]int, bool) {
	var (
		targets = make([]int, len(comps))
		free    = make([]int, len(regions))
	)
	//
	for i, r := range regions {
		free[i] = len(r)
	}
	//
	fits := true
	//
	for i, comp := range comps {
		targets[i] = -1
		//
		for j, f := range free {
			if f >= len(comp) && (targets[i] < 0 || f < free[targets[i]]) {
				targets[i] = j
			}
		}
		//
		if targets[i] < 0 {
			fits = false
			break
		}
		//
		free[targets[i]] -= len(comp)
	}
	//
	if fits {
		return targets, true
	}
	//
	log.Debugf("best fit packing of %d interacting groups failed, searching exhaustively", len(comps))
	//
	for i, r := range regions {
		free[i] = len(r)
	}
	//
	return targets, pack(comps, free, targets, 0)
}

// Pack components i onwards into the remaining free capacity.  Regions whose
// free capacity equals that of a region already tried for the same component
// are skipped, since they lead to the same outcome.
func pack(comps [][]uint, free []int, targets []int, i int) bool {
	if i == len(comps) {
		return true
	}
	//
	size := len(comps[i])
	tried := make(map[int]bool)
	//
	for j, f := range free {
		if f < size || tried[f] {
			continue
		}
		//
		tried[f] = true
		free[j] -= size
		targets[i] = j
		//
		if pack(comps, free, targets, i+1) {
			return true
		}
		//
		free[j] += size
	}
	//
	return false
}

func placeComponent(graph *InteractionGraph, cmap *device.CouplingMap, comp []uint, region []uint, l2p []uint,
	used []bool) {
	placed := make(map[uint]bool)
	// Start from the most connected logical qubit on the most connected
	// physical qubit.
	first := comp[0]
	//
	for _, l := range comp {
		if graph.WeightedDegree(l) > graph.WeightedDegree(first) {
			first = l
		}
	}
	//
	start := Unassigned
	//
	for _, q := range region {
		if !used[q] && (start == Unassigned || len(cmap.Neighbours(q)) > len(cmap.Neighbours(start))) {
			start = q
		}
	}
	//
	l2p[first], used[start], placed[first] = start, true, true
	//
	for len(placed) < len(comp) {
		// Choose the unplaced qubit most strongly tied to those already placed.
		next, tie := Unassigned, uint(0)
		//
		for _, l := range comp {
			if placed[l] {
				continue
			}
			//
			w := uint(0)
			//
			for _, n := range graph.neighbours[l] {
				if placed[n.qubit] {
					w += n.weight
				}
			}
			//
			if next == Unassigned || w > tie {
				next, tie = l, w
			}
		}
		// Choose the closest free physical qubit.
		best, bestCost := Unassigned, device.Unreachable
		//
		for _, q := range region {
			if used[q] {
				continue
			}
			//
			if c, ok := graph.localCost(next, q, l2p, cmap); ok && (best == Unassigned || c < bestCost) {
				best, bestCost = q, c
			}
		}
		//
		l2p[next], used[best], placed[next] = best, true, true
	}
}

// Isolated qubits take the lowest free physical qubits, in order.
func placeIsolated(graph *InteractionGraph, l2p []uint, np uint) []uint {
	var (
		nl2p = make([]uint, len(l2p))
		used = make([]bool, np)
		next = uint(0)
	)
	//
	for l, p := range l2p {
		if graph.Interacting(uint(l)) {
			nl2p[l] = p
			used[p] = true
		}
	}
	//
	for l := range l2p {
		if graph.Interacting(uint(l)) {
			continue
		}
		//
		for used[next] {
			next++
		}
		//
		nl2p[l] = next
		used[next] = true
	}
	//
	return nl2p
}

// ============================================================================
// Local improvement
// ============================================================================

// Repeatedly exchange the contents of pairs of physical qubits whenever this
// strictly reduces the cost.  Returns the final cost.
func climb(graph *InteractionGraph, cmap *device.CouplingMap, l2p []uint, np uint) uint {
	var (
		cost = graph.Cost(l2p, cmap)
		p2l  = make([]uint, np)
	)
	//
	for i := range p2l {
		p2l[i] = Unassigned
	}
	//
	for l, p := range l2p {
		if p != Unassigned {
			p2l[p] = uint(l)
		}
	}
	//
	for round, improved := 0, true; improved && round < maxClimbRounds; round++ {
		improved = false
		//
		for a := uint(0); a < np; a++ {
			for b := a + 1; b < np; b++ {
				if delta, ok := exchange(graph, cmap, l2p, p2l, a, b); ok && delta < 0 {
					cost = uint(int(cost) + delta)
					improved = true
				}
			}
		}
	}
	//
	return cost
}

// Attempt to exchange the contents of two physical qubits.  The exchange is
// kept only when it strictly reduces the cost, in which case the (negative)
// change in cost is returned.
func exchange(graph *InteractionGraph, cmap *device.CouplingMap, l2p, p2l []uint, a, b uint) (int, bool) {
	la, lb := p2l[a], p2l[b]
	ia := la != Unassigned && graph.Interacting(la)
	ib := lb != Unassigned && graph.Interacting(lb)
	//
	if !ia && !ib {
		return 0, false
	}
	//
	before := exchangeCost(graph, cmap, l2p, la, lb)
	//
	swapContents(l2p, p2l, a, b)
	//
	after := exchangeCost(graph, cmap, l2p, la, lb)
	//
	if after < 0 || after >= before {
		swapContents(l2p, p2l, a, b)
		return 0, false
	}
	//
	return after - before, true
}

// Cost of the interactions of two logical qubits (either of which may be
// Unassigned), or -1 if this is unbounded.
func exchangeCost(graph *InteractionGraph, cmap *device.CouplingMap, l2p []uint, la, lb uint) int {
	total := 0
	//
	for _, l := range []uint{la, lb} {
		if l == Unassigned {
			continue
		}
		//
		c, ok := graph.localCost(l, l2p[l], l2p, cmap)
		if !ok {
			return -1
		}
		//
		total += int(c)
	}
	//
	return total
}

func swapContents(l2p, p2l []uint, a, b uint) {
	la, lb := p2l[a], p2l[b]
	p2l[a], p2l[b] = lb, la
	//
	if la != Unassigned {
		l2p[la] = b
	}
	//
	if lb != Unassigned {
		l2p[lb] = a
	}
}

// ============================================================================
// Exact search
// ============================================================================

type searchState struct {
	graph  *InteractionGraph
	cmap   *device.CouplingMap
	order  []uint
	rest   []uint
	l2p    []uint
	used   []bool
	best   []uint
	cost   uint
	nodes  uint
	budget uint
	// Set once the search has replaced the incumbent.  Any later complete
	// assignment is lexicographically larger.
	improved bool
}

// Branch and bound over every logical qubit in ascending order, trying
// physical qubits in ascending order.  Isolated qubits contribute nothing to
// the cost, but are included so that complete assignments are compared as a
// whole.  Since the search visits assignments in lexicographic order, the first
// optimal assignment found is the lexicographically smallest.  The incumbent
// bounds the search from the outset, and is returned unchanged if the budget
// runs out before anything better is found.
func (a Assignor) search(graph *InteractionGraph, cmap *device.CouplingMap, incumbent []uint, cost uint,
	np uint) ([]uint, uint) {
	if a.budget == 0 {
		return incumbent, cost
	}
	//
	order := make([]uint, len(incumbent))
	//
	for l := range order {
		order[l] = uint(l)
	}
	// rest[k] is the weight of interactions not complete after placing the
	// first k qubits of the order.
	position := make(map[uint]int)
	//
	for i, l := range order {
		position[l] = i
	}
	//
	rest := make([]uint, len(order)+1)
	//
	for _, e := range graph.Edges() {
		last := max(position[e.A], position[e.B])
		//
		for k := 0; k <= last; k++ {
			rest[k] += e.Weight
		}
	}
	//
	l2p := make([]uint, len(incumbent))
	//
	for i := range l2p {
		l2p[i] = Unassigned
	}
	//
	s := &searchState{graph, cmap, order, rest, l2p, make([]bool, np), append([]uint(nil), incumbent...), cost, 0,
		a.budget, false}
	s.visit(0, 0, 0)
	//
	log.Debugf("layout search visited %d nodes (budget %d)", s.nodes, s.budget)
	//
	return s.best, s.cost
}

// Visit the ith qubit of the search order.  The lex parameter compares the
// current partial assignment with the incumbent: negative means smaller, zero
// means equal so far.
func (s *searchState) visit(i int, partial uint, lex int) {
	if s.nodes >= s.budget {
		return
	}
	//
	s.nodes++
	//
	if i == len(s.order) {
		if partial < s.cost || (partial == s.cost && lex < 0 && !s.improved) {
			copy(s.best, s.l2p)
			s.cost = partial
			s.improved = true
		}
		//
		return
	}
	//
	l := s.order[i]
	//
	for q := uint(0); q < uint(len(s.used)); q++ {
		if s.used[q] {
			continue
		}
		//
		c, ok := s.graph.localCost(l, q, s.l2p, s.cmap)
		if !ok {
			continue
		}
		//
		bound := partial + c + s.rest[i+1]
		nlex := lex
		//
		if nlex == 0 && q != s.best[l] {
			nlex = compare(q, s.best[l])
		}
		//
		if bound > s.cost || (bound == s.cost && (s.improved || nlex > 0)) {
			continue
		}
		//
		s.l2p[l], s.used[q] = q, true
		s.visit(i+1, partial+c, nlex)
		s.l2p[l], s.used[q] = Unassigned, false
	}
}

func compare(l, r uint) int {
	if l < r {
		return -1
	} else if l > r {
		return 1
	}
	//
	return 0
}
