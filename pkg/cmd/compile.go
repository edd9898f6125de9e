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
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/qubitlabs/go-transpile/pkg/circuit"
	"github.com/qubitlabs/go-transpile/pkg/compiler"
	"github.com/qubitlabs/go-transpile/pkg/config"
	"github.com/qubitlabs/go-transpile/pkg/esp"
	"github.com/qubitlabs/go-transpile/pkg/layout"
	"github.com/qubitlabs/go-transpile/pkg/metrics"
	"github.com/qubitlabs/go-transpile/pkg/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] circuit_file(s)",
	Short: "compile circuits for a target device.",
	Long: `Compile one or more circuits (in JSON form) for a given target device, reporting
	 statistics for each.  Circuits are compiled concurrently and independently, so
	 the failure of one does not prevent the others from compiling.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			cfg   = getConfig(cmd)
			stats = util.NewPerfStats()
			opts  = compileOptions{
				output:  GetString(cmd, "output"),
				stats:   GetFlag(cmd, "stats"),
				esp:     GetFlag(cmd, "esp"),
				metrics: GetFlag(cmd, "metrics"),
				styled:  isTerminal(),
			}
		)
		//
		failures, err := runCompile(context.Background(), cfg, args, opts, os.Stdout)
		//
		stats.Log("Compilation")
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		} else if failures > 0 {
			os.Exit(1)
		}
	},
}

type compileOptions struct {
	// File to which compiled circuits are written (if any).
	output string
	// Report statistics for each circuit.
	stats bool
	// Report success probabilities for each layer.
	esp bool
	// Report metrics for the batch.
	metrics bool
	// Style the report for a terminal.
	styled bool
}

// compiledFile is the serialisable outcome of compiling a single file.
type compiledFile struct {
	File          string                    `json:"file"`
	ID            string                    `json:"id"`
	Device        string                    `json:"device"`
	Stage         compiler.Stage            `json:"final_stage"`
	Error         string                    `json:"error,omitempty"`
	Circuit       *circuit.Circuit          `json:"circuit,omitempty"`
	InitialLayout []layout.QubitMapping     `json:"initial_layout,omitempty"`
	FinalLayout   []layout.QubitMapping     `json:"final_layout,omitempty"`
	Stats         compiler.CompilationStats `json:"stats"`
	ESP           *esp.Result               `json:"esp,omitempty"`
}

func newCompiledFile(file string, r *compiler.Result, err error) compiledFile {
	entry := compiledFile{
		File:    file,
		ID:      r.Report.ID,
		Device:  r.Report.Device,
		Stage:   r.Report.Stage,
		Circuit: r.Circuit,
		Stats:   r.Report.Stats(),
		ESP:     r.ESP,
	}
	//
	if err != nil {
		entry.Error = err.Error()
	}
	//
	if r.InitialLayout != nil {
		entry.InitialLayout = r.InitialLayout.Mapping()
	}
	//
	if r.FinalLayout != nil {
		entry.FinalLayout = r.FinalLayout.Mapping()
	}
	//
	return entry
}

// Compile a set of circuit files, writing a report to the given writer.  This
// returns the number of circuits which failed to compile.  An error is
// returned only when the batch as a whole could not be compiled.
func runCompile(ctx context.Context, cfg config.Config, files []string, opts compileOptions, w io.Writer) (int,
	error) {
	var (
		batch     = uuid.NewString()
		collector *metrics.Collector
		failures  int
	)
	//
	dev, err := cfg.Device()
	if err != nil {
		return 0, err
	}
	//
	circuits, err := readCircuitFiles(files)
	if err != nil {
		return 0, err
	}
	//
	pipeline := cfg.Pipeline(dev)
	//
	if opts.metrics {
		collector = metrics.NewCollector()
		pipeline = pipeline.WithObserver(collector)
	}
	//
	log.Debugf("batch %s: compiling %d circuit(s) for %s at level %d", batch, len(circuits), dev.Name(),
		cfg.OptimisationLevel)
	//
	outcomes, err := compiler.CompileAll(ctx, pipeline, circuits, cfg.Workers)
	if err != nil {
		return 0, err
	}
	//
	var (
		entries  = make([]compiledFile, len(outcomes))
		reporter = newReporter(w, opts.styled)
	)
	//
	for i, o := range outcomes {
		entries[i] = newCompiledFile(files[i], o.Result, o.Err)
		//
		if o.Err != nil {
			failures++
		}
		//
		reporter.compiled(files[i], o.Result, o.Err)
		//
		if opts.stats {
			reporter.stats(o.Result.Report.Stats())
		}
		//
		if opts.esp && o.Result.ESP != nil {
			reporter.esp(*o.Result.ESP)
		}
	}
	//
	log.Debugf("batch %s: %d of %d circuit(s) failed", batch, failures, len(circuits))
	//
	if opts.output != "" {
		if err := writeCompiledFiles(opts.output, entries); err != nil {
			return failures, err
		}
	}
	//
	if collector != nil {
		if err := collector.WriteText(w); err != nil {
			return failures, err
		}
	}
	//
	return failures, reporter.err
}

func writeCompiledFiles(filename string, entries []compiledFile) error {
	bytes, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	//
	return os.WriteFile(filename, bytes, 0o644)
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(compileCmd)
	addDeviceFlags(compileCmd)
	compileCmd.Flags().StringP("output", "o", "", "write compiled circuits (as JSON) to a file")
	compileCmd.Flags().Uint("workers", 0, "maximum number of circuits compiled concurrently (0 for one per CPU)")
	compileCmd.Flags().Bool("stats", false, "report compilation statistics for each circuit")
	compileCmd.Flags().Bool("esp", false, "report success probability of each layer")
	compileCmd.Flags().Bool("metrics", false, "report metrics for the batch (Prometheus text format)")
}
