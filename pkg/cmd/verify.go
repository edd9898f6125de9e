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
	"fmt"
	"io"
	"os"

	"github.com/qubitlabs/go-transpile/pkg/config"
	"github.com/qubitlabs/go-transpile/pkg/verify"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [flags] circuit_file(s)",
	Short: "verify compiled circuits can be executed on a target device.",
	Long: `Check that every operation of one or more circuits (in JSON form) is native to
	 the target device, acts on qubits within bounds and, for two qubit operations,
	 on coupled qubits.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig(cmd)
		//
		failures, err := runVerify(cfg, args, os.Stdout, isTerminal())
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		} else if failures > 0 {
			os.Exit(1)
		}
	},
}

// Verify a set of circuit files, returning the number which failed.
func runVerify(cfg config.Config, files []string, w io.Writer, styled bool) (int, error) {
	var (
		r        = newReporter(w, styled)
		failures int
	)
	//
	dev, err := cfg.Device()
	if err != nil {
		return 0, err
	}
	//
	for _, file := range files {
		c, err := readCircuitFile(file)
		if err != nil {
			return failures, err
		}
		//
		name := r.style(nameStyle, file)
		//
		if err := verify.Verify(c, dev); err != nil {
			failures++
			//
			r.printf("%s: %s %s\n", name, r.style(failureStyle, "failed"), err)
		} else {
			r.printf("%s: %s\n", name, r.style(okStyle, "ok"))
		}
	}
	//
	return failures, r.err
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	addDeviceFlags(verifyCmd)
}
