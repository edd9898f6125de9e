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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/qubitlabs/go-transpile/pkg/compiler"
	"github.com/qubitlabs/go-transpile/pkg/esp"
	"golang.org/x/term"
)

// Determine whether standard output is a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var (
	nameStyle    = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	detailStyle  = lipgloss.NewStyle().Faint(true)
)

// reporter writes human readable reports, styling them only when writing to a
// terminal.  The first error encountered whilst writing is retained, and
// subsequent writes are skipped.
type reporter struct {
	out    io.Writer
	styled bool
	err    error
}

func newReporter(out io.Writer, styled bool) *reporter {
	return &reporter{out: out, styled: styled}
}

func (p *reporter) style(style lipgloss.Style, text string) string {
	if p.styled {
		return style.Render(text)
	}
	//
	return text
}

func (p *reporter) printf(format string, args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.out, format, args...)
	}
}

// Report the outcome of compiling a single file.
func (p *reporter) compiled(file string, r *compiler.Result, err error) {
	name := p.style(nameStyle, file)
	//
	if err != nil {
		p.printf("%s: %s %s\n", name, p.style(failureStyle, "failed"), err)
		return
	}
	//
	stats := r.Report.Stats()
	details := fmt.Sprintf("%s, gates %d -> %d, depth %d -> %d, %d swap(s), %d pass(es), %dus", r.Report.Device,
		stats.GatesBefore, stats.GatesAfter, stats.OriginalDepth, stats.CompiledDepth, stats.SwapsInserted,
		stats.NumPasses, stats.CompileTimeMicros)
	//
	if r.ESP != nil {
		details = fmt.Sprintf("%s, esp %.4f", details, r.ESP.TotalESP)
	}
	//
	p.printf("%s: %s (%s)\n", name, p.style(okStyle, "ok"), p.style(detailStyle, details))
}

// Report the statistics of a single compilation as JSON.
func (p *reporter) stats(stats compiler.CompilationStats) {
	bytes, err := json.MarshalIndent(stats, "  ", "  ")
	if err != nil {
		p.err = err
		return
	}
	//
	p.printf("  %s\n", bytes)
}

// Report the success probability of each layer.
func (p *reporter) esp(result esp.Result) {
	layers := make([]string, len(result.LayerESP))
	//
	for i, v := range result.LayerESP {
		layers[i] = fmt.Sprintf("%.4f", v)
	}
	//
	p.printf("  %s [%s]\n", p.style(detailStyle, "layer esp"), strings.Join(layers, " "))
}
