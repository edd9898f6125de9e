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

import (
	"context"
	"runtime"

	"github.com/qubitlabs/go-transpile/pkg/circuit"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Outcome holds the result of compiling one circuit in a batch.
type Outcome struct {
	// Index of the circuit in the batch.
	Index int
	// Result of compilation, which is nil if the job never ran.
	Result *Result
	// Err holds the compilation error (if any).
	Err error
}

// CompileAll compiles a batch of circuits concurrently using a given pipeline,
// with at most the given number of workers (or one per CPU if this is zero).
// Each circuit is compiled independently, so the failure of one does not
// affect the others.  Cancelling the context prevents any further jobs from
// starting, in which case the context's error is returned.
func CompileAll(ctx context.Context, pipeline Pipeline, circuits []*circuit.Circuit, workers uint) ([]Outcome,
	error) {
	var (
		outcomes = make([]Outcome, len(circuits))
		group, _ = errgroup.WithContext(ctx)
	)
	//
	if workers == 0 {
		workers = uint(runtime.NumCPU())
	}
	//
	group.SetLimit(int(workers))
	//
	for i := range outcomes {
		outcomes[i].Index = i
	}
	//
	for i, c := range circuits {
		if ctx.Err() != nil {
			break
		}
		//
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			//
			outcomes[i].Result, outcomes[i].Err = pipeline.Compile(ctx, c)
			//
			return nil
		})
	}
	//
	err := group.Wait()
	//
	if err == nil {
		err = ctx.Err()
	}
	//
	log.Debugf("compiled batch of %d circuits using %d workers", len(circuits), workers)
	//
	return outcomes, err
}
