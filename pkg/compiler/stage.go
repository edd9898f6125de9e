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
package compiler

import "fmt"

// Stage identifies how far a compilation has progressed.
type Stage uint8

const (
	// Received indicates a circuit has been accepted for compilation.
	Received Stage = iota
	// LayoutAssigned indicates logical qubits have been placed on physical
	// qubits.
	LayoutAssigned
	// Routed indicates swaps have been inserted so that every two qubit
	// operation acts on coupled qubits.
	Routed
	// Translated indicates every operation is native to the device.
	Translated
	// Optimised indicates peephole optimisations have been applied.
	Optimised
	// Verified indicates the compiled circuit was checked against the device.
	Verified
	// Done indicates compilation completed successfully.
	Done
	// Failed indicates compilation was halted by an error.
	Failed
)

var stageNames = []string{"received", "layout_assigned", "routed", "translated", "optimised", "verified", "done",
	"failed"}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	//
	return fmt.Sprintf("stage(%d)", s)
}

// MarshalText encodes a stage as its name.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Error is returned when compilation fails at a given stage.  The underlying
// error is one of the stage specific errors (e.g. a layout.LayoutError) and can
// be extracted with errors.As.
//
//nolint:revive
type Error struct {
	// Stage which failed.
	Stage Stage
	// Err is the cause of the failure.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s stage failed: %s", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
