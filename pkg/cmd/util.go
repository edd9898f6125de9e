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
	"os"

	"github.com/qubitlabs/go-transpile/pkg/circuit"
	"github.com/qubitlabs/go-transpile/pkg/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Determine whether a flag was given explicitly on the command line.
func changed(cmd *cobra.Command, flag string) bool {
	f := cmd.Flags().Lookup(flag)
	//
	return f != nil && f.Changed
}

// Construct the run configuration for a command.  This starts from the
// configuration file (if given) or the defaults, then applies environment
// variables and, finally, any flags given on the command line.  This also
// configures the log level.
func getConfig(cmd *cobra.Command) config.Config {
	var (
		cfg = config.Default()
		err error
	)
	//
	if filename := GetString(cmd, "config"); filename != "" {
		if cfg, err = config.Load(filename); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	cfg.ApplyEnv()
	//
	if changed(cmd, "opt") {
		cfg.OptimisationLevel = GetUint(cmd, "opt")
	}
	//
	if changed(cmd, "target") {
		cfg.Target = GetString(cmd, "target")
		cfg.DeviceFile = ""
	}
	//
	if changed(cmd, "device") {
		cfg.DeviceFile = GetString(cmd, "device")
	}
	//
	if changed(cmd, "qubits") {
		cfg.Qubits = GetUint(cmd, "qubits")
	}
	//
	if changed(cmd, "zones") {
		cfg.Zones = GetUint(cmd, "zones")
	}
	//
	if changed(cmd, "workers") {
		cfg.Workers = GetUint(cmd, "workers")
	}
	//
	if err := cfg.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	// Configure log level
	log.SetLevel(cfg.Level())
	//
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	return cfg
}

// Read a circuit from a JSON file.
func readCircuitFile(filename string) (*circuit.Circuit, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	c, err := circuit.ParseJSON(bytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return c, nil
}

// Read a set of circuits from JSON files.
func readCircuitFiles(filenames []string) ([]*circuit.Circuit, error) {
	circuits := make([]*circuit.Circuit, len(filenames))
	//
	for i, filename := range filenames {
		c, err := readCircuitFile(filename)
		if err != nil {
			return nil, err
		}
		//
		circuits[i] = c
	}
	//
	return circuits, nil
}

// Add the flags used to select the target device.
func addDeviceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("target", "t", "ibm", "target device preset (see \"devices\")")
	cmd.Flags().StringP("device", "d", "", "target device descriptor file (JSON or YAML)")
	cmd.Flags().Uint("qubits", 0, "number of qubits for the target preset (0 for its default size)")
	cmd.Flags().Uint("zones", 0, "number of interaction zones of the target device (0 for its own)")
}
