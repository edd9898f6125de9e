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
	"github.com/qubitlabs/go-transpile/pkg/circuit"
	"github.com/qubitlabs/go-transpile/pkg/device"
	log "github.com/sirupsen/logrus"
)

// OptimisationConfig provides a mechanism for controlling which peephole
// optimisations are applied to a translated circuit.
type OptimisationConfig struct {
	// MaxIterations bounds the number of passes made over the circuit.  A value
	// of 0 disables optimisation altogether.
	MaxIterations uint
	// CancelInverses removes adjacent pairs of gates which are mutual inverses
	// (e.g. h;h or s;sdg).
	CancelInverses bool
	// MergeRotations combines adjacent rotations about the same axis into a
	// single rotation.
	MergeRotations bool
	// RemoveIdentities drops gates which are the identity up to global phase
	// (e.g. id or rz(0)).
	RemoveIdentities bool
	// Commutation allows the partner of a gate to be found beyond operations
	// which commute with it.
	Commutation bool
	// FuseSingleQubit combines runs of single qubit gates into a single u gate,
	// provided u is native.
	FuseSingleQubit bool
}

// OPTIMISATION_LEVELS provides a set of precanned optimisation configurations.
// Here 0 implies no optimisation and, otherwise, increasing levels implies
// increasingly aggressive optimisation.
var OPTIMISATION_LEVELS = []OptimisationConfig{
	// Level 0 == nothing enabled
	{0, false, false, false, false, false},
	// Level 1 == cancellation and merging of adjacent gates.
	{8, true, true, true, false, false},
	// Level 2 == as above, but looking through commuting gates.
	{32, true, true, true, true, false},
	// Level 3 == as above, plus single qubit fusion.
	{128, true, true, true, true, true},
}

// DEFAULT_OPTIMISATION_INDEX gives the index of the default optimisation level
// in OPTIMISATION_LEVELS.
var DEFAULT_OPTIMISATION_INDEX = uint(1)

// DEFAULT_OPTIMISATION_LEVEL provides a default level of optimisation which
// should be used in most cases.
var DEFAULT_OPTIMISATION_LEVEL = OPTIMISATION_LEVELS[DEFAULT_OPTIMISATION_INDEX]

// Optimiser applies peephole optimisations to circuits over a given native
// gate set.  Optimisations never introduce a gate which is not already native,
// nor change the qubits any multi-qubit gate acts upon.
type Optimiser struct {
	natives device.GateSet
	config  OptimisationConfig
}

// NewOptimiser constructs an optimiser for a given native gate set and
// configuration.
func NewOptimiser(natives device.GateSet, config OptimisationConfig) *Optimiser {
	return &Optimiser{natives, config}
}

// Optimise a circuit by repeatedly applying the configured rewrites until
// either none applies, or the iteration bound is reached.  This returns the
// optimised circuit, along with the number of passes made.  The given circuit
// is not modified.
func (p *Optimiser) Optimise(c *circuit.Circuit) (*circuit.Circuit, uint) {
	var (
		current = c.Clone()
		passes  uint
	)
	//
	for passes < p.config.MaxIterations {
		next, fired := p.pass(current)
		passes++
		//
		log.Debugf("optimisation pass %d fired %d rewrites (%d -> %d gates)", passes, fired, current.Len(), next.Len())
		//
		current = next
		//
		if fired == 0 {
			break
		}
	}
	//
	return current, passes
}

// Optimise a circuit over a given native gate set using a given configuration.
func Optimise(c *circuit.Circuit, natives device.GateSet, config OptimisationConfig) *circuit.Circuit {
	optimised, _ := NewOptimiser(natives, config).Optimise(c)
	return optimised
}

// Make a single pass over the circuit.  Operations are considered in order and
// each is compared against the most recent operation on its wires which it
// does not commute with (or simply the most recent, when commutation is
// disabled).
func (p *Optimiser) pass(c *circuit.Circuit) (*circuit.Circuit, uint) {
	s := &sweep{
		config: p.config,
		fuse:   p.config.FuseSingleQubit && p.natives.Contains(circuit.U),
		wires:  make([][]int, c.NumQubits()),
	}
	//
	for _, op := range c.Operations() {
		s.process(op.Clone(), c.NumQubits())
	}
	//
	optimised := circuit.New(c.NumQubits(), c.NumClbits())
	//
	for i, op := range s.ops {
		if s.alive[i] {
			if err := optimised.Add(op); err != nil {
				// Should be unreachable, since operands are never changed.
				panic(err.Error())
			}
		}
	}
	//
	return optimised, s.fired
}

// State of a single pass.
type sweep struct {
	config OptimisationConfig
	fuse   bool
	// Operations emitted so far, some of which may since have been removed.
	ops   []circuit.Operation
	alive []bool
	// Indices of the live operations on each wire, in order.
	wires [][]int
	// Number of rewrites applied.
	fired uint
}

func (s *sweep) process(op circuit.Operation, width uint) {
	if s.config.RemoveIdentities && isIdentity(op) {
		s.fired++
		return
	}
	//
	if j, ok := s.partner(op, width); ok {
		if merged, ok := s.combine(s.ops[j], op); !ok {
			// Partner search only returns combinable operations
			panic("invalid partner")
		} else if merged == nil {
			s.remove(j, width)
		} else {
			s.ops[j] = *merged
		}
		//
		s.fired++
		//
		return
	}
	//
	index := len(s.ops)
	s.ops = append(s.ops, op)
	s.alive = append(s.alive, true)
	//
	for _, q := range wiresOf(op, width) {
		s.wires[q] = append(s.wires[q], index)
	}
}

// Find an earlier operation which the given operation can be combined with.
// This requires the operation can be moved back until it is immediately after
// its partner.
func (s *sweep) partner(op circuit.Operation, width uint) (int, bool) {
	if !op.IsUnitary() || len(op.Qubits) == 0 {
		return 0, false
	}
	// Search along the first wire
	var (
		wire      = s.wires[op.Qubits[0]]
		candidate = -1
	)
	//
	for k := len(wire) - 1; k >= 0; k-- {
		earlier := s.ops[wire[k]]
		//
		if _, ok := s.combine(earlier, op); ok {
			candidate = wire[k]
			break
		} else if !s.config.Commutation || !commute(earlier, op) {
			return 0, false
		}
	}
	//
	if candidate < 0 {
		return 0, false
	}
	// Check remaining wires are clear back to the candidate
	for _, q := range op.Qubits[1:] {
		wire := s.wires[q]
		//
		for k := len(wire) - 1; wire[k] != candidate; k-- {
			if !s.config.Commutation || !commute(s.ops[wire[k]], op) {
				return 0, false
			}
		}
	}
	//
	return candidate, true
}

// Attempt to combine two operations, where b follows a.  This returns false if
// no rewrite applies.  Otherwise, it returns the operation replacing both, or
// nil if both are eliminated.
func (s *sweep) combine(a, b circuit.Operation) (*circuit.Operation, bool) {
	var merged circuit.Operation
	//
	switch {
	case s.config.CancelInverses && isInversePair(a, b):
		return nil, true
	case s.config.MergeRotations && canMerge(a, b):
		merged = merge(a, b)
	case s.fuse && canFuse(a, b):
		merged = fuse(a, b)
	default:
		return nil, false
	}
	//
	if s.config.RemoveIdentities && isIdentity(merged) {
		return nil, true
	}
	//
	return &merged, true
}

// Remove a live operation.
func (s *sweep) remove(index int, width uint) {
	s.alive[index] = false
	//
	for _, q := range wiresOf(s.ops[index], width) {
		wire := s.wires[q]
		// Removed operations are always found near the end of a wire
		for k := len(wire) - 1; k >= 0; k-- {
			if wire[k] == index {
				s.wires[q] = append(wire[:k], wire[k+1:]...)
				break
			}
		}
	}
}

// Determine the wires an operation occupies.  A barrier without qubits
// occupies every wire.
func wiresOf(op circuit.Operation, width uint) []uint {
	if op.IsBarrier() && len(op.Qubits) == 0 {
		wires := make([]uint, width)
		//
		for i := range wires {
			wires[i] = uint(i)
		}
		//
		return wires
	}
	//
	return op.Qubits
}
