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

	"github.com/charmbracelet/lipgloss"
	"github.com/qubitlabs/go-transpile/pkg/device"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices [flags]",
	Short: "list the available device presets.",
	Long:  `List the device presets which can be targeted, along with their default size and native gates.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		getConfig(cmd)
		//
		if err := runDevices(os.Stdout, isTerminal()); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

// Write a table of the available presets.
func runDevices(w io.Writer, styled bool) error {
	var (
		r      = newReporter(w, styled)
		widths = []int{len("name"), len("qubits"), len("natives")}
		rows   [][]string
	)
	//
	for _, name := range device.PresetNames() {
		dev, err := device.Preset(name, 0)
		if err != nil {
			return err
		}
		//
		row := []string{name, fmt.Sprintf("%d", dev.NumQubits()), dev.Natives().String(),
			device.PresetDescription(name)}
		//
		for i := range widths {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
		//
		rows = append(rows, row)
	}
	//
	r.printf("%s\n", r.style(nameStyle, pad([]string{"name", "qubits", "natives", "description"}, widths)))
	//
	for _, row := range rows {
		r.printf("%s\n", pad(row, widths))
	}
	//
	return r.err
}

// Pad all but the last column of a row to the given widths.
func pad(row []string, widths []int) string {
	var line string
	//
	for i, cell := range row {
		if i < len(widths) {
			line += lipgloss.NewStyle().Width(widths[i]+2).Render(cell)
		} else {
			line += cell
		}
	}
	//
	return line
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
