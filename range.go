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

	"github.com/SnellerInc/cftime/ints"
)

// A Range is the finite arithmetic sequence of Instants
// start, start+step, ..., bounded (inclusively) by stop.
// Its length is computed analytically at construction, so a
// Range of any size costs the same; elements are produced on
// demand and iteration can restart freely. A negative step
// produces a descending range.
type Range struct {
	start, stop Instant
	step        Duration
	length      int64
}

// NewRange builds the range from start to stop in increments
// of step. start and stop must share a calendar kind
// (ErrCalendarMismatch), step must be nonzero (ErrInvalidStep:
// there is no default increment), and the span from start to
// stop must be exactly expressible at a scale common with step
// (ErrInexact).
func NewRange(start Instant, step Duration, stop Instant) (*Range, error) {
	if step.IsZero() {
		return nil, fmt.Errorf("zero step: %w", ErrInvalidStep)
	}
	diff, err := stop.Difference(start)
	if err != nil {
		return nil, err
	}
	diff, step2, err := diff.common(step)
	if err != nil {
		return nil, err
	}
	dm, sm := diff.Mantissa(), step2.Mantissa()
	if sm < 0 {
		if dm == math.MinInt64 || sm == math.MinInt64 {
			return nil, fmt.Errorf("range span: %w", ErrOverflow)
		}
		dm, sm = -dm, -sm
	}
	var length int64
	if dm >= 0 {
		length = ints.FloorDiv(dm, sm) + 1
	}
	return &Range{start: start, stop: stop, step: step, length: length}, nil
}

// Len returns the number of elements in r.
func (r *Range) Len() int64 { return r.length }

// Start returns the first bound of r.
func (r *Range) Start() Instant { return r.start }

// Stop returns the inclusive second bound of r.
func (r *Range) Stop() Instant { return r.stop }

// Step returns r's increment.
func (r *Range) Step() Duration { return r.step }

// At returns the i'th element, start + i*step. It fails with
// ErrOutOfRange unless 0 <= i < Len.
func (r *Range) At(i int64) (Instant, error) {
	if i < 0 || i >= r.length {
		return Instant{}, fmt.Errorf("index %d of %d: %w", i, r.length, ErrOutOfRange)
	}
	d, err := r.step.Mul(i)
	if err != nil {
		return Instant{}, err
	}
	return r.start.Add(d)
}

// Each calls fn on each element in order until fn returns
// false. Iteration is restartable: Each may be called any
// number of times and always starts from the first element.
func (r *Range) Each(fn func(x Instant) bool) error {
	for i := int64(0); i < r.length; i++ {
		x, err := r.At(i)
		if err != nil {
			return err
		}
		if !fn(x) {
			return nil
		}
	}
	return nil
}

// Instants materializes the whole range.
func (r *Range) Instants() ([]Instant, error) {
	out := make([]Instant, 0, r.length)
	err := r.Each(func(x Instant) bool {
		out = append(out, x)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// String formats the range bounds for debugging.
func (r *Range) String() string {
	return fmt.Sprintf("%s .. %s step %s (%d elements)", r.start, r.stop, r.step, r.length)
}
