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
	"slices"
	"strings"

	"github.com/qubitlabs/go-transpile/pkg/circuit"
)

// GateSet is the set of operation kinds a device executes natively.  Barriers
// are directives rather than operations and, hence, are always permitted.
type GateSet struct {
	kinds []string
}

// NewGateSet constructs a gate set from the given kinds.  Duplicates are
// ignored.
func NewGateSet(kinds ...string) GateSet {
	nkinds := slices.Clone(kinds)
	slices.Sort(nkinds)
	//
	return GateSet{slices.Compact(nkinds)}
}

// Contains determines whether a given kind is native.
func (p GateSet) Contains(kind string) bool {
	if kind == circuit.BARRIER {
		return true
	}
	//
	_, ok := slices.BinarySearch(p.kinds, kind)
	//
	return ok
}

// Kinds returns the native kinds in sorted order.
func (p GateSet) Kinds() []string {
	return slices.Clone(p.kinds)
}

// Len returns the number of native kinds.
func (p GateSet) Len() int {
	return len(p.kinds)
}

func (p GateSet) String() string {
	return "{" + strings.Join(p.kinds, ",") + "}"
}
