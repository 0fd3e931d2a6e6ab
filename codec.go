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

package cftime

import (
	"fmt"
	"math"
)

// Decode converts one raw axis value into an Instant: v units
// of the spec's resolution after the spec's origin. Decode is
// total and exact; it is the inverse of Encode.
func (s *Spec) Decode(v int64) Instant {
	return Instant{kind: s.Kind(), origin: s.origin, offset: s.unit.D(v)}
}

// DecodeFloat converts a raw floating-point axis value.
// Numeric axes are integer counts at their declared
// resolution, so only integral values are accepted: a
// fractional value fails with ErrInexact (redeclare the axis
// at a finer unit instead), and a value beyond the int64
// range fails with ErrOverflow.
func (s *Spec) DecodeFloat(v float64) (Instant, error) {
	if v != math.Trunc(v) || math.IsNaN(v) {
		return Instant{}, fmt.Errorf("axis value %v: %w", v, ErrInexact)
	}
	if v < math.MinInt64 || v >= math.MaxInt64 {
		return Instant{}, fmt.Errorf("axis value %v: %w", v, ErrOverflow)
	}
	return s.Decode(int64(v)), nil
}

// Encode converts an Instant back into a raw axis value: the
// elapsed time from the spec's origin, in whole units of the
// spec's resolution. Encode never rounds: if x is finer than
// the axis unit and not an exact multiple, it fails with
// ErrInexact and the caller must Floor, Ceil, or Round first.
// Instants of another calendar kind fail with
// ErrCalendarMismatch.
func (s *Spec) Encode(x Instant) (int64, error) {
	d, err := x.Difference(s.Decode(0))
	if err != nil {
		return 0, err
	}
	d, err = d.In(s.unit)
	if err != nil {
		return 0, err
	}
	return d.Mantissa(), nil
}

// An Axis is a view of a raw numeric axis through a Spec. It
// decodes lazily (nothing is materialized until an element is
// asked for), preserves the input order 1:1, and can be walked
// any number of times. Every element is independent of every
// other, so callers may decode disjoint index ranges from
// multiple goroutines.
type Axis struct {
	spec *Spec
	raw  []int64
}

// Axis wraps raw values for decoding through s.
// The values are not copied.
func (s *Spec) Axis(raw []int64) Axis {
	return Axis{spec: s, raw: raw}
}

// Len returns the number of axis values.
func (a Axis) Len() int { return len(a.raw) }

// Spec returns the spec the axis decodes through.
func (a Axis) Spec() *Spec { return a.spec }

// Raw returns the i'th raw value.
func (a Axis) Raw(i int) int64 { return a.raw[i] }

// At decodes the i'th value.
func (a Axis) At(i int) Instant { return a.spec.Decode(a.raw[i]) }

// Each calls fn on each (index, instant) pair in order until
// fn returns false.
func (a Axis) Each(fn func(i int, x Instant) bool) {
	for i := range a.raw {
		if !fn(i, a.At(i)) {
			return
		}
	}
}

// Instants decodes the whole axis.
func (a Axis) Instants() []Instant {
	out := make([]Instant, len(a.raw))
	for i := range a.raw {
		out[i] = a.At(i)
	}
	return out
}

// EncodeAll encodes instants through s, preserving order.
// It stops at the first element that does not encode exactly;
// see Encode.
func (s *Spec) EncodeAll(xs []Instant) ([]int64, error) {
	out := make([]int64, len(xs))
	for i := range xs {
		v, err := s.Encode(xs[i])
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
