// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package axisfmt stores decoded numeric time axes in a
// compact, self-describing container: a definition naming the
// axis, its "<unit> since <origin>" declaration and its
// calendar, followed by the raw values in compressed,
// checksummed blocks. Dataset file formats stay out of scope;
// this is the cache format pipelines use between decoding an
// axis once and reusing it.
package axisfmt

import (
	"fmt"

	"sigs.k8s.io/yaml"

	"github.com/SnellerInc/cftime"
	"github.com/SnellerInc/cftime/calendar"
)

// A Definition declares one time axis: a name for it, the
// unit/origin string, and the calendar the origin (and every
// decoded value) is interpreted under. The calendar defaults
// to the mixed standard calendar when omitted.
type Definition struct {
	// Name identifies the axis (conventionally the
	// variable name in the source dataset).
	Name string `json:"name"`
	// Units is the "<unit> since <origin>" declaration.
	Units string `json:"units"`
	// Calendar selects the calendar variant.
	Calendar calendar.Kind `json:"calendar,omitempty"`
}

// ParseDefinition unmarshals a definition from JSON or YAML
// and validates it; see (*Definition).Spec.
func ParseDefinition(data []byte) (*Definition, error) {
	d := new(Definition)
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("axis definition: %w", err)
	}
	if _, err := d.Spec(); err != nil {
		return nil, err
	}
	return d, nil
}

// Spec parses the Units declaration under the declared
// calendar. Malformed units or an origin that does not exist
// under the calendar fail the way cftime.ParseSpec fails.
func (d *Definition) Spec() (*cftime.Spec, error) {
	return cftime.ParseSpec(d.Units, d.Calendar)
}

// Axis wraps raw values for decoding under the definition.
func (d *Definition) Axis(raw []int64) (cftime.Axis, error) {
	s, err := d.Spec()
	if err != nil {
		return cftime.Axis{}, err
	}
	return s.Axis(raw), nil
}
