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
	"slices"
)

// Unassigned indicates a logical qubit without a physical qubit, or a physical
// qubit hosting no logical qubit.
const Unassigned = ^uint(0)

// QubitMapping is a single logical to physical assignment.
type QubitMapping struct {
	Logical  uint `json:"logical"`
	Physical uint `json:"physical"`
}

// Layout is an injective mapping from logical qubits onto physical qubits,
// maintained together with its inverse.  Physical qubits which host no logical
// qubit are free for use as routing ancillas.  A layout can be frozen, after
// which any attempt to modify it is a programming error.
type Layout struct {
	l2p    []uint
	p2l    []uint
	frozen bool
}

// New constructs an empty layout for a given number of logical and physical
// qubits.
func New(numLogical, numPhysical uint) *Layout {
	if numLogical > numPhysical {
		panic(fmt.Sprintf("layout of %d logical qubits onto %d physical qubits", numLogical, numPhysical))
	}
	//
	l2p := make([]uint, numLogical)
	p2l := make([]uint, numPhysical)
	//
	for i := range l2p {
		l2p[i] = Unassigned
	}
	//
	for i := range p2l {
		p2l[i] = Unassigned
	}
	//
	return &Layout{l2p, p2l, false}
}

// Trivial constructs the identity layout, which maps logical qubit i onto
// physical qubit i.
func Trivial(numLogical, numPhysical uint) *Layout {
	l := New(numLogical, numPhysical)
	//
	for i := uint(0); i < numLogical; i++ {
		l.l2p[i] = i
		l.p2l[i] = i
	}
	//
	return l
}

// FromPhysical constructs a layout from a list giving the physical qubit for
// each logical qubit.  This fails if the list is not injective or refers to a
// physical qubit out of bounds.
func FromPhysical(l2p []uint, numPhysical uint) (*Layout, error) {
	if uint(len(l2p)) > numPhysical {
		return nil, fmt.Errorf("cannot place %d logical qubits onto %d physical qubits", len(l2p), numPhysical)
	}
	//
	l := New(uint(len(l2p)), numPhysical)
	//
	for i, p := range l2p {
		if err := l.Assign(uint(i), p); err != nil {
			return nil, err
		}
	}
	//
	return l, nil
}

// NumLogical returns the number of logical qubits in this layout.
func (p *Layout) NumLogical() uint {
	return uint(len(p.l2p))
}

// NumPhysical returns the number of physical qubits in this layout.
func (p *Layout) NumPhysical() uint {
	return uint(len(p.p2l))
}

// Assign places a given logical qubit onto a given physical qubit.  This fails
// if either is already assigned, or out of bounds.
func (p *Layout) Assign(logical, physical uint) error {
	p.checkMutable()
	//
	switch {
	case logical >= uint(len(p.l2p)):
		return fmt.Errorf("logical qubit %d out of bounds", logical)
	case physical >= uint(len(p.p2l)):
		return fmt.Errorf("physical qubit %d out of bounds", physical)
	case p.l2p[logical] != Unassigned:
		return fmt.Errorf("logical qubit %d already assigned to physical qubit %d", logical, p.l2p[logical])
	case p.p2l[physical] != Unassigned:
		return fmt.Errorf("physical qubit %d already hosts logical qubit %d", physical, p.p2l[physical])
	}
	//
	p.l2p[logical] = physical
	p.p2l[physical] = logical
	//
	return nil
}

// Physical returns the physical qubit hosting a given logical qubit (or
// Unassigned).
func (p *Layout) Physical(logical uint) uint {
	return p.l2p[logical]
}

// Logical returns the logical qubit hosted by a given physical qubit, or false
// if it hosts none.
func (p *Layout) Logical(physical uint) (uint, bool) {
	l := p.p2l[physical]
	return l, l != Unassigned
}

// IsComplete checks whether every logical qubit has been assigned.
func (p *Layout) IsComplete() bool {
	return !slices.Contains(p.l2p, Unassigned)
}

// Swap exchanges the contents of two physical qubits, updating both directions
// of the mapping.  Either (or both) of the physical qubits may be free.
func (p *Layout) Swap(p1, p2 uint) {
	p.checkMutable()
	//
	l1, l2 := p.p2l[p1], p.p2l[p2]
	p.p2l[p1], p.p2l[p2] = l2, l1
	//
	if l1 != Unassigned {
		p.l2p[l1] = p2
	}
	//
	if l2 != Unassigned {
		p.l2p[l2] = p1
	}
}

// Freeze prevents any further modification of this layout.
func (p *Layout) Freeze() {
	p.frozen = true
}

// Frozen checks whether this layout has been frozen.
func (p *Layout) Frozen() bool {
	return p.frozen
}

// Clone returns an (unfrozen) copy of this layout.
func (p *Layout) Clone() *Layout {
	return &Layout{slices.Clone(p.l2p), slices.Clone(p.p2l), false}
}

// Physicals returns the physical qubit of each logical qubit, in order of
// logical qubit.
func (p *Layout) Physicals() []uint {
	return slices.Clone(p.l2p)
}

// Mapping returns the logical to physical assignments of this layout, in order
// of logical qubit.
func (p *Layout) Mapping() []QubitMapping {
	mapping := make([]QubitMapping, len(p.l2p))
	//
	for i, q := range p.l2p {
		mapping[i] = QubitMapping{uint(i), q}
	}
	//
	return mapping
}

func (p *Layout) String() string {
	return fmt.Sprintf("%v", p.l2p)
}

func (p *Layout) checkMutable() {
	if p.frozen {
		panic("attempt to modify frozen layout")
	}
}
