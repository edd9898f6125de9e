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
package routing

import (
	"fmt"

	"github.com/qubitlabs/go-transpile/pkg/circuit"
	"github.com/qubitlabs/go-transpile/pkg/device"
	"github.com/qubitlabs/go-transpile/pkg/layout"
	log "github.com/sirupsen/logrus"
)

// RoutingError indicates an operation could not be made to act on coupled
// physical qubits.
//
//nolint:revive
type RoutingError struct {
	// Index of the offending operation in the input circuit.
	Index int
	// Physical qubits the operation acts upon at the point of failure.
	Physical []uint
	// Message describing the problem.
	Message string
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("routing error (operation %d on physical qubits %v): %s", e.Index, e.Physical, e.Message)
}

// Result captures the outcome of routing a circuit.
type Result struct {
	// Circuit over the physical qubits of the device, in which every two qubit
	// operation acts on a coupled pair.
	Circuit *circuit.Circuit
	// Layout after all inserted swaps have been applied.
	Layout *layout.Layout
	// Swaps is the number of swap operations inserted.
	Swaps uint
	// Shuttles is the number of shuttle operations inserted on a zoned
	// device.
	Shuttles uint
}

// Route rewrites a circuit over logical qubits into one over the physical
// qubits of a given device, starting from a given initial layout.  Operations
// are processed in their original order.  Whenever a two qubit operation acts
// on physical qubits which are not coupled, swaps are inserted along the
// (lexicographically smallest) shortest path to bring its first qubit next to
// its second, and the layout is updated accordingly.  On a zoned device, a two
// qubit operation whose qubits lie in different zones is additionally wrapped
// in shuttles which move its second qubit into the zone of its first and back
// again.  The initial layout is not modified.
func Route(c *circuit.Circuit, dev *device.Device, initial *layout.Layout) (*Result, error) {
	var (
		cmap    = dev.CouplingMap()
		current = initial.Clone()
		routed  = circuit.New(dev.NumQubits(), c.NumClbits())
		swaps   = uint(0)
		moves   = uint(0)
	)
	//
	if initial.NumLogical() < c.NumQubits() || initial.NumPhysical() != dev.NumQubits() {
		return nil, &RoutingError{-1, nil, fmt.Sprintf("layout of %d onto %d qubits does not fit circuit of %d qubits on %d",
			initial.NumLogical(), initial.NumPhysical(), c.NumQubits(), dev.NumQubits())}
	} else if !initial.IsComplete() {
		return nil, &RoutingError{-1, nil, fmt.Sprintf("incomplete layout %s", initial.String())}
	}
	//
	for i, op := range c.Operations() {
		physical := make([]uint, len(op.Qubits))
		//
		for j, q := range op.Qubits {
			physical[j] = current.Physical(q)
		}
		//
		switch {
		case op.IsBarrier() || len(physical) <= 1:
			// nothing to do
		case len(physical) > 2:
			return nil, &RoutingError{i, physical, fmt.Sprintf("%s acts on %d qubits", op.Kind, len(physical))}
		case !cmap.Connected(physical[0], physical[1]):
			return nil, &RoutingError{i, physical, "qubits lie in disconnected regions of the device"}
		default:
			path := cmap.ShortestPath(physical[0], physical[1])
			// Move the first qubit along the path until adjacent
			for k := 0; k+2 < len(path); k++ {
				if err := routed.Add(circuit.NewOperation(circuit.SWAP, nil, path[k], path[k+1])); err != nil {
					return nil, err
				}
				//
				current.Swap(path[k], path[k+1])
				swaps++
			}
			//
			physical[0] = path[len(path)-2]
		}
		//
		op = op.WithQubits(physical...)
		//
		if err := emit(routed, dev, op); err != nil {
			return nil, err
		} else if crossesZones(dev, op) {
			moves += 2
		}
	}
	//
	log.Debugf("routing inserted %d swaps and %d shuttles", swaps, moves)
	//
	return &Result{routed, current, swaps, moves}, nil
}

// Append a routed operation, shuttling its second qubit into the zone of its
// first (and back) when these differ.
func emit(routed *circuit.Circuit, dev *device.Device, op circuit.Operation) error {
	if !crossesZones(dev, op) {
		return routed.Add(op)
	}
	//
	var (
		q  = op.Qubits[1]
		z0 = dev.ZoneOf(op.Qubits[0])
		z1 = dev.ZoneOf(q)
	)
	//
	if err := routed.Add(circuit.NewShuttle(q, z1, z0)); err != nil {
		return err
	} else if err := routed.Add(op); err != nil {
		return err
	}
	//
	return routed.Add(circuit.NewShuttle(q, z0, z1))
}

func crossesZones(dev *device.Device, op circuit.Operation) bool {
	return dev.Zones() > 1 && !op.IsBarrier() && len(op.Qubits) == 2 &&
		dev.ZoneOf(op.Qubits[0]) != dev.ZoneOf(op.Qubits[1])
}
