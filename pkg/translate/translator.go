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
package translate

import (
	"fmt"

	"github.com/qubitlabs/go-transpile/pkg/circuit"
	"github.com/qubitlabs/go-transpile/pkg/device"
	log "github.com/sirupsen/logrus"
)

// TranslationError indicates an operation has no decomposition into the native
// gates of the target device.
//
//nolint:revive
type TranslationError struct {
	// Index of the offending operation.
	Index int
	// Kind of the offending operation.
	Kind string
	// Message describing the problem.
	Message string
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translation error (operation %d): %s", e.Index, e.Message)
}

// Translator rewrites circuits into a fixed set of native gates.  The choice of
// decomposition for each kind is made once, on construction, and a Translator
// is safe for concurrent use thereafter.
type Translator struct {
	natives device.GateSet
	// Index (in RULES) of the rule chosen for each translatable kind.
	plan map[string]int
	// Number of native operations each translatable kind expands into.
	costs map[string]uint
}

// NewTranslator constructs a translator targeting a given native gate set.
// Decompositions are chosen to minimise the number of native operations
// produced.  This is done by repeatedly settling the cheapest kind whose rule
// only uses kinds already settled.  Since a rule never costs less than any of
// its steps, a kind is settled at its optimal cost and the chosen rules can
// never form a cycle.
func NewTranslator(natives device.GateSet) *Translator {
	var (
		plan  = make(map[string]int)
		costs = make(map[string]uint)
	)
	//
	for _, k := range natives.Kinds() {
		costs[k] = 1
	}
	//
	for {
		bestKind, bestRule, bestCost := "", -1, uint(0)
		//
		for i, r := range RULES {
			if _, done := costs[r.Kind]; done || natives.Contains(r.Kind) {
				continue
			}
			//
			if c, ok := ruleCost(r, costs); ok && (bestRule < 0 || c < bestCost) {
				bestKind, bestRule, bestCost = r.Kind, i, c
			}
		}
		//
		if bestRule < 0 {
			break
		}
		//
		costs[bestKind] = bestCost
		plan[bestKind] = bestRule
	}
	//
	log.Debugf("translator for %s covers %d kinds", natives.String(), len(costs))
	//
	return &Translator{natives, plan, costs}
}

// Cost of a rule, or false if some step uses a kind not yet settled.
func ruleCost(r Rule, costs map[string]uint) (uint, bool) {
	total := uint(0)
	//
	for _, s := range r.Steps {
		c, ok := costs[s.Kind]
		if !ok {
			return 0, false
		}
		//
		total += c
	}
	//
	return total, true
}

// Natives returns the native gate set targeted by this translator.
func (p *Translator) Natives() device.GateSet {
	return p.natives
}

// CanTranslate determines whether operations of a given kind can be expressed
// in the native gate set.
func (p *Translator) CanTranslate(kind string) bool {
	_, ok := p.costs[kind]
	return ok || p.natives.Contains(kind)
}

// Cost returns the number of native operations a given kind translates into,
// or false if it cannot be translated.
func (p *Translator) Cost(kind string) (uint, bool) {
	c, ok := p.costs[kind]
	return c, ok
}

// Translate rewrites every non-native operation of a circuit into native
// operations.  Native operations are left untouched, and the order of
// operations is otherwise preserved.  This fails on the first operation which
// cannot be translated.
func (p *Translator) Translate(c *circuit.Circuit) (*circuit.Circuit, error) {
	translated := circuit.New(c.NumQubits(), c.NumClbits())
	//
	for i, op := range c.Operations() {
		if !p.CanTranslate(op.Kind) {
			return nil, &TranslationError{i, op.Kind, fmt.Sprintf("no decomposition of %s into native gates %s", op.Kind,
				p.natives.String())}
		}
		//
		if err := p.expand(op, translated); err != nil {
			return nil, &TranslationError{i, op.Kind, err.Error()}
		}
	}
	//
	return translated, nil
}

func (p *Translator) expand(op circuit.Operation, target *circuit.Circuit) error {
	if p.natives.Contains(op.Kind) {
		return target.Add(op)
	}
	//
	rule := RULES[p.plan[op.Kind]]
	//
	if info, ok := circuit.Lookup(op.Kind); ok && uint(len(op.Params)) != info.Params {
		return fmt.Errorf("%s expects %d parameters", op.Kind, info.Params)
	}
	//
	for _, step := range rule.Steps {
		if err := p.expand(step.instantiate(op), target); err != nil {
			return err
		}
	}
	//
	return nil
}

// Translate a circuit into a given native gate set.
func Translate(c *circuit.Circuit, natives device.GateSet) (*circuit.Circuit, error) {
	return NewTranslator(natives).Translate(c)
}

// Unroll decomposes every operation acting on three or more qubits into
// standard one and two qubit operations.  Operations without a decomposition
// are left as they are.
func Unroll(c *circuit.Circuit) *circuit.Circuit {
	unrolled := circuit.New(c.NumQubits(), c.NumClbits())
	//
	for _, op := range c.Operations() {
		unroll(op, unrolled)
	}
	//
	return unrolled
}

func unroll(op circuit.Operation, target *circuit.Circuit) {
	if !op.IsBarrier() && op.Arity() > 2 {
		for _, r := range RULES {
			if r.Kind == op.Kind {
				for _, step := range r.Steps {
					unroll(step.instantiate(op), target)
				}
				//
				return
			}
		}
	}
	//
	if err := target.Add(op); err != nil {
		// Should be unreachable, since op came from a valid circuit.
		panic(err.Error())
	}
}
