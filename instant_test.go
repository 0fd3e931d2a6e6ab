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
	"math/rand"
	"testing"

	"github.com/SnellerInc/cftime/calendar"
)

var allKinds = []calendar.Kind{
	calendar.Standard,
	calendar.ProlepticGregorian,
	calendar.Julian,
	calendar.NoLeap,
	calendar.AllLeap,
	calendar.Day360,
}

func mustNew(t *testing.T, kind calendar.Kind, y, mo, d, h, mi, s int) Instant {
	t.Helper()
	x, err := New(kind, y, mo, d, h, mi, s)
	if err != nil {
		t.Fatalf("New(%s, %04d-%02d-%02d %02d:%02d:%02d): %v", kind, y, mo, d, h, mi, s, err)
	}
	return x
}

func sameInstant(t *testing.T, got, want Instant) {
	t.Helper()
	c, err := got.Compare(want)
	if err != nil {
		t.Fatalf("compare %s and %s: %v", got, want, err)
	}
	if c != 0 {
		t.Fatalf("got %s; want %s", got, want)
	}
}

func TestFieldsRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(0x0ffe))
	for _, kind := range allKinds {
		for i := 0; i < 2000; i++ {
			year := rng.Intn(8000) - 4000
			month := 1 + rng.Intn(12)
			day := 1 + rng.Intn(kind.DaysIn(year, month))
			h, mi, s := rng.Intn(24), rng.Intn(60), rng.Intn(60)
			if !kind.Valid(year, month, day) {
				continue // the 1582 gap
			}
			x, err := New(kind, year, month, day, h, mi, s)
			if err != nil {
				t.Fatal(err)
			}
			f, err := x.Fields()
			if err != nil {
				t.Fatal(err)
			}
			if f.Year != year || f.Month != month || f.Day != day ||
				f.Hour != h || f.Minute != mi || f.Second != s || !f.Sub.IsZero() {
				t.Fatalf("%s %04d-%02d-%02d %02d:%02d:%02d came back as %s",
					kind, year, month, day, h, mi, s, f)
			}
		}
	}
}

func TestSubSecondRoundTrip(t *testing.T) {
	origin := DefaultOrigin(calendar.Standard)
	x, err := NewAt(calendar.Standard, 1999, 12, 31, 23, 59, 59,
		Millisecond.D(250), Millisecond, origin)
	if err != nil {
		t.Fatal(err)
	}
	f, err := x.Fields()
	if err != nil {
		t.Fatal(err)
	}
	if c, _ := f.Sub.Compare(Millisecond.D(250)); c != 0 {
		t.Errorf("sub-second came back as %s", f.Sub)
	}
	if f.Second != 59 || f.Minute != 59 || f.Hour != 23 {
		t.Errorf("fields came back as %s", f)
	}
}

func TestNewErrors(t *testing.T) {
	bad := []struct {
		kind                   calendar.Kind
		year, mo, d, hh, mm, ss int
	}{
		{calendar.Standard, 1582, 10, 10, 0, 0, 0},
		{calendar.Standard, 2001, 2, 29, 0, 0, 0},
		{calendar.NoLeap, 2000, 2, 29, 0, 0, 0},
		{calendar.Day360, 2000, 1, 31, 0, 0, 0},
		{calendar.Standard, 2000, 1, 1, 24, 0, 0},
		{calendar.Standard, 2000, 1, 1, 0, 60, 0},
		{calendar.Standard, 2000, 1, 1, 0, 0, -1},
	}
	for _, c := range bad {
		_, err := New(c.kind, c.year, c.mo, c.d, c.hh, c.mm, c.ss)
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("%s %04d-%02d-%02d %02d:%02d:%02d: expected ErrInvalidDate, got %v",
				c.kind, c.year, c.mo, c.d, c.hh, c.mm, c.ss, err)
		}
	}
	// a time of day that is not a whole number of days
	// cannot live on a day-resolution axis
	_, err := NewAt(calendar.Standard, 2000, 1, 1, 12, 0, 0,
		Duration{}, Day, DefaultOrigin(calendar.Standard))
	if !errors.Is(err, ErrInexact) {
		t.Errorf("expected ErrInexact, got %v", err)
	}
	_, err = NewAt(calendar.Standard, 2000, 1, 1, 0, 0, 0,
		Duration{}, Millisecond, DefaultOrigin(calendar.Julian))
	if !errors.Is(err, ErrCalendarMismatch) {
		t.Errorf("expected ErrCalendarMismatch, got %v", err)
	}
	_, err = NewAt(calendar.Standard, 2000, 1, 1, 0, 0, 0,
		Second.D(2), Millisecond, DefaultOrigin(calendar.Standard))
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("sub of 2s: expected ErrInvalidDate, got %v", err)
	}
}

func TestSwitchoverArithmetic(t *testing.T) {
	x := mustNew(t, calendar.Standard, 1582, 10, 4, 0, 0, 0)
	y, err := x.Add(Day.D(1))
	if err != nil {
		t.Fatal(err)
	}
	f, err := y.Fields()
	if err != nil {
		t.Fatal(err)
	}
	if f.Year != 1582 || f.Month != 10 || f.Day != 15 {
		t.Errorf("1582-10-04 + 1 day = %s; want 1582-10-15", f)
	}
	want := mustNew(t, calendar.Standard, 1582, 10, 15, 0, 0, 0)
	sameInstant(t, y, want)
	// and under the proleptic calendars the gap does not exist
	j := mustNew(t, calendar.Julian, 1582, 10, 4, 0, 0, 0)
	j1, err := j.Add(Day.D(1))
	if err != nil {
		t.Fatal(err)
	}
	jf, _ := j1.Fields()
	if jf.Day != 5 {
		t.Errorf("julian 1582-10-04 + 1 day = %s", jf)
	}
}

func TestDifference(t *testing.T) {
	a := mustNew(t, calendar.Standard, 2000, 1, 1, 0, 0, 0)
	b := mustNew(t, calendar.Standard, 2000, 1, 2, 0, 0, 0)
	d, err := b.Difference(a)
	if err != nil {
		t.Fatal(err)
	}
	if c, _ := d.Compare(Day.D(1)); c != 0 {
		t.Errorf("difference = %s; want 1 day", d)
	}
	d, err = a.Difference(b)
	if err != nil {
		t.Fatal(err)
	}
	if c, _ := d.Compare(Day.D(-1)); c != 0 {
		t.Errorf("difference = %s; want -1 day", d)
	}
	// same point expressed against two different origins
	s1, err := ParseSpec("hours since 2000-01-01", calendar.Standard)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := ParseSpec("minutes since 2000-01-02", calendar.Standard)
	if err != nil {
		t.Fatal(err)
	}
	d, err = s2.Decode(0).Difference(s1.Decode(24))
	if err != nil {
		t.Fatal(err)
	}
	if !d.IsZero() {
		t.Errorf("difference = %s; want zero", d)
	}
	// across kinds there is no difference at all
	j := mustNew(t, calendar.Julian, 2000, 1, 1, 0, 0, 0)
	if _, err := a.Difference(j); !errors.Is(err, ErrCalendarMismatch) {
		t.Errorf("expected ErrCalendarMismatch, got %v", err)
	}
	if _, err := a.Compare(j); !errors.Is(err, ErrCalendarMismatch) {
		t.Errorf("expected ErrCalendarMismatch, got %v", err)
	}
}

func TestCompareTotalOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	spec, err := ParseSpec("seconds since 1970-01-01", calendar.Standard)
	if err != nil {
		t.Fatal(err)
	}
	xs := make([]Instant, 50)
	raw := make([]int64, len(xs))
	for i := range xs {
		raw[i] = rng.Int63n(1 << 40)
		xs[i] = spec.Decode(raw[i])
	}
	for i := range xs {
		for j := range xs {
			c, err := xs[i].Compare(xs[j])
			if err != nil {
				t.Fatal(err)
			}
			want := cmp64(raw[i], raw[j])
			if c != want {
				t.Fatalf("compare %d vs %d = %d; want %d", raw[i], raw[j], c, want)
			}
			d, err := xs[i].Difference(xs[j])
			if err != nil {
				t.Fatal(err)
			}
			if d.Sign() != want {
				t.Fatalf("difference sign %d; want %d", d.Sign(), want)
			}
		}
	}
}

func TestBeforeAfterEqual(t *testing.T) {
	a := mustNew(t, calendar.Standard, 2000, 1, 1, 0, 0, 0)
	b := mustNew(t, calendar.Standard, 2000, 1, 2, 0, 0, 0)
	if ok, err := a.Before(b); err != nil || !ok {
		t.Errorf("Before = %v, %v", ok, err)
	}
	if ok, err := b.After(a); err != nil || !ok {
		t.Errorf("After = %v, %v", ok, err)
	}
	if ok, err := a.Equal(b); err != nil || ok {
		t.Errorf("Equal = %v, %v", ok, err)
	}
	if ok, err := a.Equal(a); err != nil || !ok {
		t.Errorf("self Equal = %v, %v", ok, err)
	}
}

func TestDayOfYearInstant(t *testing.T) {
	x := mustNew(t, calendar.Standard, 2000, 12, 31, 0, 0, 0)
	doy, err := x.DayOfYear()
	if err != nil || doy != 366 {
		t.Errorf("DayOfYear = %d, %v; want 366", doy, err)
	}
}
