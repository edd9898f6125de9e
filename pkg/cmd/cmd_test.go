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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qubitlabs/go-transpile/pkg/circuit"
	"github.com/qubitlabs/go-transpile/pkg/config"
	"github.com/qubitlabs/go-transpile/pkg/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Compile_00(t *testing.T) {
	var (
		dir    = t.TempDir()
		output = filepath.Join(dir, "out.json")
		files  = []string{
			check_WriteCircuit(t, dir, "bell.json", circuit.New(2, 2).Append(circuit.H, 0).Append(circuit.CX, 0, 1).
				Measure(0, 0).Measure(1, 1)),
			check_WriteCircuit(t, dir, "wide.json", circuit.New(9, 0).Append(circuit.H, 8)),
		}
		text strings.Builder
	)
	//
	failures, err := runCompile(context.Background(), config.Default(), files, compileOptions{output: output, stats: true,
		esp: true, metrics: true}, &text)
	require.NoError(t, err)
	assert.Equal(t, 1, failures)
	//
	assert.Contains(t, text.String(), "bell.json: ok")
	assert.Contains(t, text.String(), "wide.json: failed")
	assert.Contains(t, text.String(), "\"swaps_inserted\"")
	assert.Contains(t, text.String(), "layer esp")
	assert.Contains(t, text.String(), "transpile_compilations_total")
	// Check compiled circuits
	var entries []map[string]json.RawMessage
	//
	bytes, err := os.ReadFile(output)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(bytes, &entries))
	require.Len(t, entries, 2)
	//
	compiled, err := circuit.ParseJSON(entries[0]["circuit"])
	require.NoError(t, err)
	//
	cfg := config.Default()
	dev, err := cfg.Device()
	require.NoError(t, err)
	assert.Equal(t, dev.NumQubits(), compiled.NumQubits())
	//
	for _, key := range []string{"id", "initial_layout", "final_layout", "stats", "esp"} {
		assert.Contains(t, entries[0], key)
	}
	//
	assert.Contains(t, entries[1], "error")
	assert.NotContains(t, entries[1], "circuit")
	assert.JSONEq(t, `"failed"`, string(entries[1]["final_stage"]))
}

func Test_Compile_01(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.json")
	//
	_, err := runCompile(context.Background(), config.Default(), []string{missing}, compileOptions{}, &strings.Builder{})
	assert.Error(t, err)
	//
	malformed := filepath.Join(dir, "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte(`{"num_qubits": 1, "operations": [{"kind": "h", "qubits": [3]}]}`),
		0o600))
	//
	_, err = runCompile(context.Background(), config.Default(), []string{malformed}, compileOptions{},
		&strings.Builder{})
	assert.Error(t, err)
}

func Test_Verify_00(t *testing.T) {
	var (
		dir  = t.TempDir()
		text strings.Builder
		cfg  = config.Default()
	)
	//
	cfg.Target = "iqm"
	//
	files := []string{
		check_WriteCircuit(t, dir, "native.json", circuit.New(5, 0).AppendParams(circuit.PRX, []float64{0.1, 0.2}, 1).
			Append(circuit.CZ, 0, 3)),
		check_WriteCircuit(t, dir, "uncoupled.json", circuit.New(5, 0).Append(circuit.CZ, 1, 2)),
		check_WriteCircuit(t, dir, "foreign.json", circuit.New(5, 0).Append(circuit.H, 0)),
	}
	//
	failures, err := runVerify(cfg, files, &text, false)
	require.NoError(t, err)
	assert.Equal(t, 2, failures)
	//
	lines := strings.Split(strings.TrimSpace(text.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], ": ok"), lines[0])
	assert.Contains(t, lines[1], "not coupled")
	assert.Contains(t, lines[2], "not native")
}

func Test_Devices_00(t *testing.T) {
	var text strings.Builder
	//
	require.NoError(t, runDevices(&text, false))
	//
	lines := strings.Split(strings.TrimSpace(text.String()), "\n")
	require.Len(t, lines, len(device.PresetNames())+1)
	assert.True(t, strings.HasPrefix(lines[0], "name"))
	//
	for i, name := range device.PresetNames() {
		assert.True(t, strings.HasPrefix(lines[i+1], name+" "), lines[i+1])
		assert.Contains(t, lines[i+1], device.PresetDescription(name))
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_WriteCircuit(t *testing.T, dir string, name string, c *circuit.Circuit) string {
	t.Helper()
	//
	bytes, err := json.Marshal(c)
	require.NoError(t, err)
	//
	filename := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(filename, bytes, 0o600))
	//
	return filename
}
