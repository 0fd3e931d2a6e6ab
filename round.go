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

	"github.com/SnellerInc/cftime/ints"
)

// aligned brings x's offset and step to one scale and returns
// the offset mantissa, the (positive) step mantissa, and the
// shared scale. Rounding is always relative to x's own origin.
func aligned(x Instant, step Duration) (off, stepm int64, factor int64, exp int, err error) {
	if step.Sign() <= 0 {
		return 0, 0, 0, 0, fmt.Errorf("step %s: %w", step, ErrInvalidStep)
	}
	d, s, err := x.offset.common(step)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	factor, exp = d.Scale()
	return d.Mantissa(), s.Mantissa(), factor, exp, nil
}

// Floor returns the latest multiple of step (counted from x's
// origin) that is not after x. The division floors toward
// negative infinity, so pre-origin instants floor to earlier
// multiples, never toward zero. step must be positive
// (ErrInvalidStep) and commensurable-or-rescalable with x's
// offset (ErrInexact otherwise).
func Floor(x Instant, step Duration) (Instant, error) {
	off, stepm, factor, exp, err := aligned(x, step)
	if err != nil {
		return Instant{}, err
	}
	q := ints.FloorDiv(off, stepm)
	m, ok := ints.MulCheck(q, stepm)
	if !ok {
		return Instant{}, fmt.Errorf("floor to %s: %w", step, ErrOverflow)
	}
	return Instant{kind: x.kind, origin: x.origin, offset: Duration{mant: m, factor: factor, exp: int32(exp)}}, nil
}

// Ceil returns the earliest multiple of step that is not
// before x: Floor(x, step), plus one step when x is not
// already a multiple.
func Ceil(x Instant, step Duration) (Instant, error) {
	off, stepm, factor, exp, err := aligned(x, step)
	if err != nil {
		return Instant{}, err
	}
	q := ints.FloorDiv(off, stepm)
	m, ok := ints.MulCheck(q, stepm)
	if ok && m != off {
		m, ok = ints.AddCheck(m, stepm)
	}
	if !ok {
		return Instant{}, fmt.Errorf("ceil to %s: %w", step, ErrOverflow)
	}
	return Instant{kind: x.kind, origin: x.origin, offset: Duration{mant: m, factor: factor, exp: int32(exp)}}, nil
}

// Round returns the multiple of step nearest to x. Ties go
// away from the floor value, toward Ceil; the remainder is a
// floor-mod and therefore nonnegative, so the tie direction is
// the same for pre-origin instants as for later ones.
func Round(x Instant, step Duration) (Instant, error) {
	off, stepm, _, _, err := aligned(x, step)
	if err != nil {
		return Instant{}, err
	}
	rem := ints.FloorMod(off, stepm)
	// rem >= stepm-rem avoids computing 2*rem, which
	// could overflow for very large steps
	if rem != 0 && rem >= stepm-rem {
		return Ceil(x, step)
	}
	return Floor(x, step)
}
