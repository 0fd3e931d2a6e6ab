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

	"github.com/SnellerInc/cftime/calendar"
	"github.com/SnellerInc/cftime/ints"
)

const secsPerDay = 86400

// An Origin is the zero point of a time axis: a calendar date
// (optionally with a sub-second component) under one calendar
// kind. Instants measure their offset from an Origin.
type Origin struct {
	kind calendar.Kind
	day  int64 // day number under kind
	sec  int32 // second of day, [0, 86400)
	atto int64 // attosecond remainder, [0, 1e18)
}

// NewOrigin constructs an Origin at the given date and
// time of day under kind. It fails with ErrInvalidDate if
// the fields do not denote an existing date.
func NewOrigin(kind calendar.Kind, year, month, day, hour, min, sec int) (Origin, error) {
	return newOrigin(kind, year, month, day, hour, min, sec, 0)
}

func newOrigin(kind calendar.Kind, year, month, day, hour, min, sec int, atto int64) (Origin, error) {
	dn, ok := kind.DayNumber(year, month, day)
	if !ok {
		return Origin{}, fmt.Errorf("%04d-%02d-%02d under %s: %w", year, month, day, kind, ErrInvalidDate)
	}
	if !validClock(hour, min, sec) {
		return Origin{}, fmt.Errorf("%02d:%02d:%02d: %w", hour, min, sec, ErrInvalidDate)
	}
	return Origin{
		kind: kind,
		day:  dn,
		sec:  int32(hour*3600 + min*60 + sec),
		atto: atto,
	}, nil
}

// DefaultOrigin returns the conventional default origin
// for kind: year 0, January 1, midnight.
func DefaultOrigin(kind calendar.Kind) Origin {
	o, err := NewOrigin(kind, 0, 1, 1, 0, 0, 0)
	if err != nil {
		panic("year 0 missing from calendar " + kind.String())
	}
	return o
}

// Kind returns the calendar kind the origin date is
// expressed in.
func (o Origin) Kind() calendar.Kind { return o.kind }

// Date returns the origin's calendar date fields.
func (o Origin) Date() DateFields {
	y, m, d := o.kind.Date(o.day)
	sod := int(o.sec)
	return DateFields{
		Year: y, Month: m, Day: d,
		Hour: sod / 3600, Minute: sod / 60 % 60, Second: sod % 60,
		Sub: Attosecond.D(o.atto),
	}
}

// String formats the origin date for debugging.
func (o Origin) String() string {
	return o.Date().String() + " " + o.kind.String()
}

func validClock(hour, min, sec int) bool {
	return hour >= 0 && hour < 24 &&
		min >= 0 && min < 60 &&
		sec >= 0 && sec < 60
}

// DateFields is the broken-down form of an Instant: a calendar
// date, a time of day, and the sub-second remainder. Sub is
// always nonnegative and less than one second; decomposition
// returns it in attoseconds (exactly, whatever the source
// resolution was).
type DateFields struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	Sub                  Duration
}

// String formats the fields as an ISO-style date and time,
// appending the sub-second remainder in as few decimal digits
// as represent it exactly.
func (f DateFields) String() string {
	s := fmt.Sprintf("%04d-%02d-%02d", f.Year, f.Month, f.Day)
	if f.Hour == 0 && f.Minute == 0 && f.Second == 0 && f.Sub.IsZero() {
		return s
	}
	s += fmt.Sprintf(" %02d:%02d:%02d", f.Hour, f.Minute, f.Second)
	if f.Sub.IsZero() {
		return s
	}
	if a, err := f.Sub.In(Attosecond); err == nil {
		frac := fmt.Sprintf("%018d", a.Mantissa())
		for len(frac) > 1 && frac[len(frac)-1] == '0' {
			frac = frac[:len(frac)-1]
		}
		return s + "." + frac
	}
	return s + "+" + f.Sub.String()
}

// An Instant is a point in time under one calendar kind,
// stored as an Origin plus an exact Duration offset from it.
// Instants are immutable; all arithmetic returns new values.
// Instants of different kinds never combine or compare: such
// operations fail with ErrCalendarMismatch.
type Instant struct {
	kind   calendar.Kind
	origin Origin
	offset Duration
}

// New constructs an Instant at the given date and time of day
// under kind, using the default millisecond unit and the
// default origin (year 0, January 1). It fails with
// ErrInvalidDate if the fields do not denote an existing date
// under kind, including the 1582-10-05..14 gap of the mixed
// calendar.
func New(kind calendar.Kind, year, month, day, hour, min, sec int) (Instant, error) {
	return NewAt(kind, year, month, day, hour, min, sec,
		Duration{}, Millisecond, DefaultOrigin(kind))
}

// NewAt constructs an Instant like New, but with an explicit
// sub-second component and an explicit unit and origin for the
// internal offset, so that axes built from the same Spec share
// one representation. It fails with ErrInvalidDate on
// nonexistent dates (or a sub outside [0s, 1s)), with
// ErrCalendarMismatch if origin belongs to a different kind,
// and with ErrInexact if the fields are not representable as a
// whole number of unit (for example seconds into a days axis).
func NewAt(kind calendar.Kind, year, month, day, hour, min, sec int, sub Duration, unit Unit, origin Origin) (Instant, error) {
	if origin.kind != kind {
		return Instant{}, fmt.Errorf("%s origin on a %s instant: %w", origin.kind, kind, ErrCalendarMismatch)
	}
	dn, ok := kind.DayNumber(year, month, day)
	if !ok {
		return Instant{}, fmt.Errorf("%04d-%02d-%02d under %s: %w", year, month, day, kind, ErrInvalidDate)
	}
	if !validClock(hour, min, sec) {
		return Instant{}, fmt.Errorf("%02d:%02d:%02d: %w", hour, min, sec, ErrInvalidDate)
	}
	if sub.Sign() < 0 {
		return Instant{}, fmt.Errorf("negative sub-second %s: %w", sub, ErrInvalidDate)
	}
	if c, err := sub.Compare(Second.D(1)); err != nil {
		return Instant{}, err
	} else if c >= 0 {
		return Instant{}, fmt.Errorf("sub-second %s: %w", sub, ErrInvalidDate)
	}
	days, ok := ints.SubCheck(dn, origin.day)
	if !ok {
		return Instant{}, fmt.Errorf("offset from %s: %w", origin, ErrOverflow)
	}
	secs, ok := ints.MulCheck(days, secsPerDay)
	if !ok {
		return Instant{}, fmt.Errorf("offset from %s: %w", origin, ErrOverflow)
	}
	secs, ok = ints.AddCheck(secs, int64(hour*3600+min*60+sec)-int64(origin.sec))
	if !ok {
		return Instant{}, fmt.Errorf("offset from %s: %w", origin, ErrOverflow)
	}
	off, err := Second.D(secs).In(unit)
	if err != nil {
		return Instant{}, err
	}
	rel := sub
	if origin.atto != 0 {
		rel, err = sub.Sub(Attosecond.D(origin.atto))
		if err != nil {
			return Instant{}, err
		}
	}
	if !rel.IsZero() {
		r, err := rel.In(unit)
		if err != nil {
			return Instant{}, err
		}
		off, err = off.Add(r)
		if err != nil {
			return Instant{}, err
		}
	}
	return Instant{kind: kind, origin: origin, offset: off}, nil
}

// Kind returns the calendar kind of x.
func (x Instant) Kind() calendar.Kind { return x.kind }

// Origin returns the origin x measures its offset from.
func (x Instant) Origin() Origin { return x.origin }

// Offset returns the exact offset of x from its origin.
func (x Instant) Offset() Duration { return x.offset }

// abs decomposes x into seconds and a nonnegative attosecond
// remainder relative to the calendar's day-number epoch.
func (x Instant) abs() (sec, atto int64, err error) {
	s, a, err := x.offset.split()
	if err != nil {
		return 0, 0, err
	}
	ds, ok := ints.MulCheck(x.origin.day, secsPerDay)
	if !ok {
		return 0, 0, fmt.Errorf("instant out of range: %w", ErrOverflow)
	}
	sec, ok = ints.AddCheck(ds, int64(x.origin.sec))
	if ok {
		sec, ok = ints.AddCheck(sec, s)
	}
	if !ok {
		return 0, 0, fmt.Errorf("instant out of range: %w", ErrOverflow)
	}
	atto = a + x.origin.atto
	if atto >= attosPerSec {
		atto -= attosPerSec
		sec, ok = ints.AddCheck(sec, 1)
		if !ok {
			return 0, 0, fmt.Errorf("instant out of range: %w", ErrOverflow)
		}
	}
	return sec, atto, nil
}

// Fields decomposes x into calendar date and time-of-day
// fields. The decomposition is exact: the sub-second remainder
// comes back in attoseconds with no rounding at any step. It
// fails with ErrOverflow only when the offset exceeds the
// representable second count.
func (x Instant) Fields() (DateFields, error) {
	sec, atto, err := x.abs()
	if err != nil {
		return DateFields{}, err
	}
	days := ints.FloorDiv(sec, secsPerDay)
	sod := int(sec - days*secsPerDay)
	y, m, d := x.kind.Date(days)
	return DateFields{
		Year: y, Month: m, Day: d,
		Hour: sod / 3600, Minute: sod / 60 % 60, Second: sod % 60,
		Sub: Attosecond.D(atto),
	}, nil
}

// DayOfYear returns the 1-based ordinal day of x's year.
func (x Instant) DayOfYear() (int, error) {
	f, err := x.Fields()
	if err != nil {
		return 0, err
	}
	return x.kind.DayOfYear(f.Year, f.Month, f.Day), nil
}

// Add returns x shifted forward by d. The shift is exact: if
// d cannot be rescaled to x's resolution (or vice versa), Add
// fails with ErrInexact rather than rounding.
func (x Instant) Add(d Duration) (Instant, error) {
	off, err := x.offset.Add(d)
	if err != nil {
		return Instant{}, err
	}
	return Instant{kind: x.kind, origin: x.origin, offset: off}, nil
}

// Sub returns x shifted backward by d, under the same rules
// as Add.
func (x Instant) Sub(d Duration) (Instant, error) {
	off, err := x.offset.Sub(d)
	if err != nil {
		return Instant{}, err
	}
	return Instant{kind: x.kind, origin: x.origin, offset: off}, nil
}

// Difference returns the elapsed time from y to x (positive
// when x is later). The two instants must share a calendar
// kind (ErrCalendarMismatch otherwise) but not an origin:
// differing origins of the same kind are reconciled exactly.
func (x Instant) Difference(y Instant) (Duration, error) {
	if x.kind != y.kind {
		return Duration{}, fmt.Errorf("%s vs %s: %w", x.kind, y.kind, ErrCalendarMismatch)
	}
	d, err := x.offset.Sub(y.offset)
	if err != nil {
		return Duration{}, err
	}
	if x.origin == y.origin {
		return d, nil
	}
	days, ok := ints.SubCheck(x.origin.day, y.origin.day)
	if !ok {
		return Duration{}, fmt.Errorf("reconcile origins: %w", ErrOverflow)
	}
	secs, ok := ints.MulCheck(days, secsPerDay)
	if !ok {
		return Duration{}, fmt.Errorf("reconcile origins: %w", ErrOverflow)
	}
	secs, ok = ints.AddCheck(secs, int64(x.origin.sec)-int64(y.origin.sec))
	if !ok {
		return Duration{}, fmt.Errorf("reconcile origins: %w", ErrOverflow)
	}
	d, err = d.Add(Second.D(secs))
	if err != nil {
		return Duration{}, err
	}
	if x.origin.atto != y.origin.atto {
		d, err = d.Add(Attosecond.D(x.origin.atto - y.origin.atto))
		if err != nil {
			return Duration{}, err
		}
	}
	return d, nil
}

// Compare returns -1, 0, or 1 according to whether x is
// earlier than, equal to, or later than y. The order is total
// within one calendar kind; comparing across kinds fails with
// ErrCalendarMismatch. Instants whose resolutions do not
// reconcile exactly still compare, by decomposing both sides
// to seconds and attoseconds.
func (x Instant) Compare(y Instant) (int, error) {
	if x.kind != y.kind {
		return 0, fmt.Errorf("%s vs %s: %w", x.kind, y.kind, ErrCalendarMismatch)
	}
	d, err := x.Difference(y)
	if err == nil {
		return d.Sign(), nil
	}
	if !errors.Is(err, ErrInexact) {
		return 0, err
	}
	xs, xa, err := x.abs()
	if err != nil {
		return 0, err
	}
	ys, ya, err := y.abs()
	if err != nil {
		return 0, err
	}
	if c := cmp64(xs, ys); c != 0 {
		return c, nil
	}
	return cmp64(xa, ya), nil
}

// Equal reports whether x and y denote the same point in time.
func (x Instant) Equal(y Instant) (bool, error) {
	c, err := x.Compare(y)
	return c == 0, err
}

// Before reports whether x is earlier than y.
func (x Instant) Before(y Instant) (bool, error) {
	c, err := x.Compare(y)
	return c < 0, err
}

// After reports whether x is later than y.
func (x Instant) After(y Instant) (bool, error) {
	c, err := x.Compare(y)
	return c > 0, err
}

// String formats x's calendar date for debugging.
func (x Instant) String() string {
	f, err := x.Fields()
	if err != nil {
		return fmt.Sprintf("%s from %s", x.offset, x.origin)
	}
	return f.String() + " " + x.kind.String()
}
