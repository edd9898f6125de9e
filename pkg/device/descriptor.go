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
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SiteCalibration holds the measured characteristics of a single physical
// qubit.  Times are in seconds.  A zero value means "not calibrated".
type SiteCalibration struct {
	T1           float64 `json:"t1" yaml:"t1" validate:"gte=0"`
	T2           float64 `json:"t2" yaml:"t2" validate:"gte=0"`
	ReadoutError float64 `json:"readout_error" yaml:"readout_error" validate:"gte=0,lt=1"`
}

// OperationCalibration holds the measured characteristics of a native
// operation kind.  The duration is in seconds.
type OperationCalibration struct {
	Name      string  `json:"name" yaml:"name" validate:"required"`
	Duration  float64 `json:"duration" yaml:"duration" validate:"gte=0"`
	Fidelity  float64 `json:"fidelity" yaml:"fidelity" validate:"gt=0,lte=1"`
	NumQubits uint    `json:"num_qubits" yaml:"num_qubits" validate:"gte=1"`
}

// Descriptor is the serialisable form of a device, as read from (or written
// to) a JSON or YAML file.
type Descriptor struct {
	Name        string                 `json:"name" yaml:"name" validate:"required"`
	NumQubits   uint                   `json:"num_qubits" yaml:"num_qubits" validate:"gte=1"`
	CouplingMap [][]uint               `json:"coupling_map" yaml:"coupling_map" validate:"dive,len=2"`
	NativeGates []string               `json:"native_gates" yaml:"native_gates" validate:"min=1,dive,required"`
	Sites       []SiteCalibration      `json:"sites" yaml:"sites" validate:"dive"`
	Operations  []OperationCalibration `json:"operations" yaml:"operations" validate:"dive"`
	// Zones is the number of interaction zones of a zoned (e.g. neutral atom)
	// device.  Zero or one means the device is not zoned.
	Zones uint `json:"zones,omitempty" yaml:"zones,omitempty"`
}

var validate = validator.New()

// Validate checks the structural constraints of this descriptor, such as
// fidelities lying within (0,1].
func (p *Descriptor) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid device descriptor: %w", err)
	}
	//
	if len(p.Sites) != 0 && uint(len(p.Sites)) != p.NumQubits {
		return fmt.Errorf("invalid device descriptor: %d site calibrations given for %d qubits", len(p.Sites),
			p.NumQubits)
	} else if p.Zones > p.NumQubits {
		return fmt.Errorf("invalid device descriptor: %d zones given for %d qubits", p.Zones, p.NumQubits)
	}
	//
	return nil
}

// ParseJSONDescriptor parses a device descriptor from JSON.
func ParseJSONDescriptor(bytes []byte) (Descriptor, error) {
	var desc Descriptor
	//
	err := json.Unmarshal(bytes, &desc)
	//
	return desc, err
}

// ParseYAMLDescriptor parses a device descriptor from YAML.
func ParseYAMLDescriptor(bytes []byte) (Descriptor, error) {
	var desc Descriptor
	//
	err := yaml.Unmarshal(bytes, &desc)
	//
	return desc, err
}

// ReadDescriptor reads a device descriptor from a file, using a parser based on
// the extension of the filename.
func ReadDescriptor(filename string) (Descriptor, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return Descriptor{}, err
	}
	//
	switch ext := path.Ext(filename); ext {
	case ".json":
		return ParseJSONDescriptor(bytes)
	case ".yaml", ".yml":
		return ParseYAMLDescriptor(bytes)
	default:
		return Descriptor{}, fmt.Errorf("unknown device file format: %s", ext)
	}
}

// Load reads a device descriptor from a file and constructs the device it
// describes.
func Load(filename string) (*Device, error) {
	desc, err := ReadDescriptor(filename)
	if err != nil {
		return nil, err
	}
	//
	return New(desc)
}
