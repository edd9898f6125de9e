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
	"fmt"
)

type jsonCircuit struct {
	NumQubits  uint        `json:"num_qubits"`
	NumClbits  uint        `json:"num_clbits"`
	Operations []Operation `json:"operations"`
}

// ParseJSON parses a circuit from its JSON representation, checking every
// operation as it is added.
func ParseJSON(bytes []byte) (*Circuit, error) {
	var c Circuit
	//
	if err := json.Unmarshal(bytes, &c); err != nil {
		return nil, err
	}
	//
	return &c, nil
}

// MarshalJSON implements the json.Marshaler interface.  Empty lists are always
// written as such (rather than as null).
func (p *Circuit) MarshalJSON() ([]byte, error) {
	ops := make([]Operation, len(p.ops))
	//
	for i, op := range p.ops {
		ops[i] = Operation{op.Kind, nonNil(op.Params), nonNil(op.Qubits), nonNil(op.Clbits)}
	}
	//
	return json.Marshal(jsonCircuit{p.numQubits, p.numClbits, ops})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *Circuit) UnmarshalJSON(bytes []byte) error {
	var jc jsonCircuit
	//
	if err := json.Unmarshal(bytes, &jc); err != nil {
		return err
	}
	//
	c := New(jc.NumQubits, jc.NumClbits)
	//
	for i, op := range jc.Operations {
		if err := c.Add(op); err != nil {
			return fmt.Errorf("operation %d: %w", i, err)
		}
	}
	//
	*p = *c
	//
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	//
	return items
}
