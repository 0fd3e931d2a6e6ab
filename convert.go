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
	"errors"
	"fmt"
	"time"

	"github.com/SnellerInc/cftime/calendar"
)

// unitOf maps a Duration scale back to a Unit, falling back
// to Second for scales no Unit uses.
func unitOf(d Duration) Unit {
	f, e := d.Scale()
	for u := Unit(0); u < maxUnit; u++ {
		if unitScales[u].factor == f && int(unitScales[u].exp) == e {
			return u
		}
	}
	return Second
}

// Convert reinterprets x under another calendar kind. The
// calendar date fields are preserved, not the physical point:
// Julian 1500-02-29 converts to proleptic-Gregorian
// 1500-02-29, which is ten physical days away. This matches
// the convention of datasets that relabel axes between
// calendars. It fails with ErrInvalidDate when x's fields (or
// its origin's) do not exist under the target, for example a
// 360-day-calendar February 30, or any date inside the mixed
// calendar's 1582 gap; rebase x onto an origin valid under
// both kinds first if only the origin is the problem.
func Convert(target calendar.Kind, x Instant) (Instant, error) {
	if target == x.kind {
		return x, nil
	}
	f, err := x.Fields()
	if err != nil {
		return Instant{}, err
	}
	od := x.origin.Date()
	origin, err := newOrigin(target, od.Year, od.Month, od.Day, od.Hour, od.Minute, od.Second, x.origin.atto)
	if err != nil {
		return Instant{}, fmt.Errorf("origin %s under %s: %w", x.origin, target, ErrInvalidDate)
	}
	return NewAt(target, f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second,
		f.Sub, unitOf(x.offset), origin)
}

// ToTime converts x to a time.Time at UTC, preserving the
// calendar date fields. time.Time is proleptic Gregorian, so
// the fields must denote an existing proleptic-Gregorian date
// (ErrInvalidDate otherwise), and its resolution is fixed at
// nanoseconds, so a sub-second component that is not a whole
// number of nanoseconds fails with ErrPrecisionLoss: Round the
// instant to a nanosecond step first to accept the loss
// explicitly.
func ToTime(x Instant) (time.Time, error) {
	f, err := x.Fields()
	if err != nil {
		return time.Time{}, err
	}
	if !calendar.ProlepticGregorian.Valid(f.Year, f.Month, f.Day) {
		return time.Time{}, fmt.Errorf("%04d-%02d-%02d (%s) as time.Time: %w",
			f.Year, f.Month, f.Day, x.kind, ErrInvalidDate)
	}
	ns, err := f.Sub.In(Nanosecond)
	if err != nil {
		if errors.Is(err, ErrInexact) {
			return time.Time{}, fmt.Errorf("sub-second %s at nanoseconds: %w", f.Sub, ErrPrecisionLoss)
		}
		return time.Time{}, err
	}
	return time.Date(f.Year, time.Month(f.Month), f.Day,
		f.Hour, f.Minute, f.Second, int(ns.Mantissa()), time.UTC), nil
}

// FromTime builds an Instant under kind from the UTC calendar
// fields of t, at nanosecond resolution with the default
// origin. It fails with ErrInvalidDate when t's fields do not
// exist under kind (February 29 under the no-leap calendar,
// and so on).
func FromTime(kind calendar.Kind, t time.Time) (Instant, error) {
	t = t.UTC()
	return NewAt(kind, t.Year(), int(t.Month()), t.Day(),
		t.Hour(), t.Minute(), t.Second(),
		Nanosecond.D(int64(t.Nanosecond())), Nanosecond, DefaultOrigin(kind))
}

// Reinterpret changes the resolution x's offset is stored at
// without moving the represented point. It fails with
// ErrInexact when the offset is not a whole number of unit.
func Reinterpret(x Instant, unit Unit) (Instant, error) {
	off, err := x.offset.In(unit)
	if err != nil {
		return Instant{}, err
	}
	return Instant{kind: x.kind, origin: x.origin, offset: off}, nil
}

// Rebase re-expresses x relative to another origin of the same
// calendar kind without moving the represented point. The
// rebased offset keeps x's resolution when that is exact and
// otherwise the finest exact scale of the reconciliation.
func Rebase(x Instant, origin Origin) (Instant, error) {
	if origin.kind != x.kind {
		return Instant{}, fmt.Errorf("%s origin on a %s instant: %w", origin.kind, x.kind, ErrCalendarMismatch)
	}
	d, err := x.Difference(Instant{kind: x.kind, origin: origin})
	if err != nil {
		return Instant{}, err
	}
	if r, err := d.Rescale(x.offset.Scale()); err == nil {
		d = r
	}
	return Instant{kind: x.kind, origin: origin, offset: d}, nil
}
