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
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/qubitlabs/go-transpile/pkg/compiler"
	"github.com/qubitlabs/go-transpile/pkg/device"
	"github.com/qubitlabs/go-transpile/pkg/esp"
	"github.com/qubitlabs/go-transpile/pkg/optimise"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ENV_PREFIX is the prefix of environment variables which override values
// given in a configuration file.
//
//nolint:revive
const ENV_PREFIX = "GO_TRANSPILE_"

// Config describes a compilation run.  A device file, when given, takes
// precedence over the named preset.
type Config struct {
	// Target is the name of a preset device.
	Target string `yaml:"target" validate:"required_without=DeviceFile"`
	// DeviceFile is a JSON or YAML device descriptor.
	DeviceFile string `yaml:"device_file"`
	// Qubits is the number of qubits for presets which can be resized, where 0
	// selects the preset's default size.
	Qubits uint `yaml:"qubits"`
	// Zones overrides the number of interaction zones of the device, where 0
	// keeps the device's own zones.
	Zones uint `yaml:"zones"`
	// OptimisationLevel selects one of the precanned optimisation levels.
	OptimisationLevel uint `yaml:"optimisation_level" validate:"lte=3"`
	// Workers bounds the number of circuits compiled concurrently, where 0
	// means one per CPU.
	Workers uint `yaml:"workers"`
	// EstimateESP determines whether success probabilities are estimated.
	EstimateESP bool `yaml:"estimate_esp"`
	// ESP provides the values used for missing calibration data.
	ESP esp.Config `yaml:"esp"`
	// LogLevel is the minimum level of log messages to report.
	LogLevel string `yaml:"log_level" validate:"oneof=panic fatal error warn warning info debug trace"`
}

var validate = validator.New()

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Target:            "ibm",
		OptimisationLevel: optimise.DEFAULT_OPTIMISATION_INDEX,
		EstimateESP:       true,
		ESP:               esp.DefaultConfig(),
		LogLevel:          "info",
	}
}

// Parse a YAML configuration.  Keys which are not given retain their default
// values, whilst unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	var (
		config  = Default()
		decoder = yaml.NewDecoder(bytes.NewReader(data))
	)
	//
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("invalid configuration: %w", err)
	}
	//
	return config, config.Validate()
}

// Load a YAML configuration from a file.
func Load(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	//
	config, err := Parse(data)
	if err != nil {
		return config, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return config, nil
}

// Validate checks the values of this configuration lie within range.
func (p *Config) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	//
	return nil
}

// ApplyEnv overrides values using any GO_TRANSPILE_* environment variables
// which are set.  Malformed values are ignored.
func (p *Config) ApplyEnv() {
	if v := os.Getenv(ENV_PREFIX + "TARGET"); v != "" {
		p.Target = v
	}
	//
	if v := os.Getenv(ENV_PREFIX + "DEVICE_FILE"); v != "" {
		p.DeviceFile = v
	}
	//
	if v := os.Getenv(ENV_PREFIX + "QUBITS"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			p.Qubits = uint(n)
		}
	}
	//
	if v := os.Getenv(ENV_PREFIX + "ZONES"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			p.Zones = uint(n)
		}
	}
	//
	if v := os.Getenv(ENV_PREFIX + "OPT"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			p.OptimisationLevel = uint(n)
		}
	}
	//
	if v := os.Getenv(ENV_PREFIX + "WORKERS"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			p.Workers = uint(n)
		}
	}
	//
	if v := os.Getenv(ENV_PREFIX + "ESTIMATE_ESP"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			p.EstimateESP = b
		}
	}
	//
	if v := os.Getenv(ENV_PREFIX + "LOG_LEVEL"); v != "" {
		p.LogLevel = v
	}
}

// Level returns the logging level of this configuration.
func (p *Config) Level() log.Level {
	level, err := log.ParseLevel(p.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	//
	return level
}

// Device constructs the target device, either from the device file or from
// the named preset, and applies any zone override.
func (p *Config) Device() (*device.Device, error) {
	var (
		dev *device.Device
		err error
	)
	//
	if p.DeviceFile != "" {
		dev, err = device.Load(p.DeviceFile)
	} else {
		dev, err = device.Preset(p.Target, p.Qubits)
	}
	//
	if err != nil || p.Zones == 0 {
		return dev, err
	}
	//
	return dev.WithZones(p.Zones), nil
}

// Pipeline constructs a compilation pipeline for a given device according to
// this configuration.
func (p *Config) Pipeline(dev *device.Device) compiler.Pipeline {
	pipeline := compiler.NewPipeline(dev).WithOptimisationLevel(p.OptimisationLevel)
	//
	if p.EstimateESP {
		return pipeline.WithESP(p.ESP)
	}
	//
	return pipeline.WithoutESP()
}
