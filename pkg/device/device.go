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
	"strings"

	"github.com/qubitlabs/go-transpile/pkg/circuit"
)

// Device describes a target quantum processor: its physical qubits, their
// connectivity, the operations executed natively and their calibration data.
// A Device is immutable once constructed and, hence, can be shared freely
// between concurrent compilations.
type Device struct {
	name       string
	coupling   *CouplingMap
	natives    GateSet
	sites      []SiteCalibration
	operations map[string]OperationCalibration
	zones      uint
}

// New constructs a device from its descriptor, checking that the descriptor is
// well-formed.
func New(desc Descriptor) (*Device, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	//
	edges := make([]Edge, len(desc.CouplingMap))
	//
	for i, e := range desc.CouplingMap {
		edges[i] = Edge{e[0], e[1]}
	}
	//
	cmap, err := NewCouplingMap(desc.NumQubits, edges)
	if err != nil {
		return nil, fmt.Errorf("device %s: %w", desc.Name, err)
	}
	//
	operations := make(map[string]OperationCalibration)
	//
	for _, op := range desc.Operations {
		if _, ok := operations[op.Name]; ok {
			return nil, fmt.Errorf("device %s: duplicate calibration for %s", desc.Name, op.Name)
		} else if info, ok := circuit.Lookup(op.Name); ok && info.Qubits != 0 && info.Qubits != op.NumQubits {
			return nil, fmt.Errorf("device %s: calibration for %s has %d qubits (expected %d)", desc.Name, op.Name,
				op.NumQubits, info.Qubits)
		}
		//
		operations[op.Name] = op
	}
	//
	sites := make([]SiteCalibration, desc.NumQubits)
	copy(sites, desc.Sites)
	//
	return &Device{desc.Name, cmap, NewGateSet(desc.NativeGates...), sites, operations, max(desc.Zones, 1)}, nil
}

// NewUncalibrated constructs a device without any calibration data.
func NewUncalibrated(name string, cmap *CouplingMap, natives GateSet) *Device {
	sites := make([]SiteCalibration, cmap.Size())
	return &Device{name, cmap, natives, sites, make(map[string]OperationCalibration), 1}
}

// Name returns the name of this device.
func (p *Device) Name() string {
	return p.name
}

// NumQubits returns the number of physical qubits on this device.
func (p *Device) NumQubits() uint {
	return p.coupling.Size()
}

// CouplingMap returns the connectivity of this device.
func (p *Device) CouplingMap() *CouplingMap {
	return p.coupling
}

// Natives returns the set of natively executed operation kinds.
func (p *Device) Natives() GateSet {
	return p.natives
}

// IsNative determines whether a given operation kind is executed natively.
func (p *Device) IsNative(kind string) bool {
	return p.natives.Contains(kind)
}

// Adjacent determines whether two physical qubits are directly coupled.
func (p *Device) Adjacent(a, b uint) bool {
	return p.coupling.Adjacent(a, b)
}

// Zones returns the number of interaction zones of this device, which is one
// for a device that is not zoned.
func (p *Device) Zones() uint {
	return p.zones
}

// ZoneOf returns the zone in which a given physical qubit resides.  Qubits are
// split evenly across zones in index order, with any remainder going to the
// last zone.
func (p *Device) ZoneOf(qubit uint) uint {
	perZone := p.NumQubits() / p.zones
	//
	return min(qubit/perZone, p.zones-1)
}

// WithZones returns a copy of this device split into a given number of
// interaction zones.
func (p *Device) WithZones(zones uint) *Device {
	dev := *p
	dev.zones = max(min(zones, p.NumQubits()), 1)
	//
	return &dev
}

// Site returns the calibration data for a given physical qubit.  A zero field
// indicates that value was not calibrated.
func (p *Device) Site(qubit uint) SiteCalibration {
	return p.sites[qubit]
}

// Calibration returns the calibration data for a given operation kind, or false
// if there is none.
func (p *Device) Calibration(kind string) (OperationCalibration, bool) {
	cal, ok := p.operations[kind]
	return cal, ok
}

// Descriptor returns the serialisable form of this device.
func (p *Device) Descriptor() Descriptor {
	var (
		edges      = make([][]uint, len(p.coupling.Edges()))
		operations = make([]OperationCalibration, 0, len(p.operations))
	)
	//
	for i, e := range p.coupling.Edges() {
		edges[i] = []uint{e[0], e[1]}
	}
	//
	for _, op := range p.operations {
		operations = append(operations, op)
	}
	//
	slices.SortFunc(operations, func(l, r OperationCalibration) int {
		return strings.Compare(l.Name, r.Name)
	})
	//
	zones := p.zones
	//
	if zones == 1 {
		zones = 0
	}
	//
	return Descriptor{p.name, p.NumQubits(), edges, p.natives.Kinds(), slices.Clone(p.sites), operations, zones}
}
