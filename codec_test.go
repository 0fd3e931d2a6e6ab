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

	"golang.org/x/exp/slices"

	"github.com/SnellerInc/cftime/calendar"
)

func TestDecodeLiteral(t *testing.T) {
	s, err := ParseSpec("days since 2000-01-01", calendar.Standard)
	if err != nil {
		t.Fatal(err)
	}
	f, err := s.Decode(366).Fields()
	if err != nil {
		t.Fatal(err)
	}
	if f.Year != 2001 || f.Month != 1 || f.Day != 1 {
		t.Errorf("2000-01-01 + 366 days = %s; want 2001-01-01", f)
	}
	f, err = s.Decode(-1).Fields()
	if err != nil {
		t.Fatal(err)
	}
	if f.Year != 1999 || f.Month != 12 || f.Day != 31 {
		t.Errorf("2000-01-01 - 1 day = %s; want 1999-12-31", f)
	}
}

func TestDecodeEncodeIdentity(t *testing.T) {
	specs := []struct {
		units string
		kind  calendar.Kind
	}{
		{"days since 2000-01-01", calendar.Standard},
		{"hours since 1800-06-15 06:00:00", calendar.Julian},
		{"seconds since 1970-01-01", calendar.ProlepticGregorian},
		{"milliseconds since 1970-01-01", calendar.NoLeap},
		{"minutes since 0000-01-01", calendar.AllLeap},
		{"days since 2000-02-30", calendar.Day360},
		{"microseconds since 1969-12-31 23:59:59.5", calendar.Standard},
	}
	rng := rand.New(rand.NewSource(0xc0dec))
	for _, c := range specs {
		s, err := ParseSpec(c.units, c.kind)
		if err != nil {
			t.Fatalf("%q: %v", c.units, err)
		}
		for i := 0; i < 1000; i++ {
			v := rng.Int63n(1<<40) - (1 << 39)
			got, err := s.Encode(s.Decode(v))
			if err != nil {
				t.Fatalf("%q value %d: %v", c.units, v, err)
			}
			if got != v {
				t.Fatalf("%q value %d came back as %d", c.units, v, got)
			}
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	days, err := ParseSpec("days since 2000-01-01", calendar.Standard)
	if err != nil {
		t.Fatal(err)
	}
	hours, err := ParseSpec("hours since 2000-01-01", calendar.Standard)
	if err != nil {
		t.Fatal(err)
	}
	// noon never encodes onto a daily axis by itself
	if _, err := days.Encode(hours.Decode(12)); !errors.Is(err, ErrInexact) {
		t.Errorf("expected ErrInexact, got %v", err)
	}
	// ...unless the caller rounds first
	x, err := Floor(hours.Decode(12), Day.D(1))
	if err != nil {
		t.Fatal(err)
	}
	v, err := days.Encode(x)
	if err != nil || v != 0 {
		t.Errorf("encode after floor = %d, %v; want 0", v, err)
	}
	julian, err := ParseSpec("days since 2000-01-01", calendar.Julian)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := days.Encode(julian.Decode(0)); !errors.Is(err, ErrCalendarMismatch) {
		t.Errorf("expected ErrCalendarMismatch, got %v", err)
	}
}

func TestDecodeFloat(t *testing.T) {
	s, err := ParseSpec("seconds since 1970-01-01", calendar.Standard)
	if err != nil {
		t.Fatal(err)
	}
	x, err := s.DecodeFloat(86400)
	if err != nil {
		t.Fatal(err)
	}
	sameInstant(t, x, s.Decode(86400))
	if _, err := s.DecodeFloat(1.5); !errors.Is(err, ErrInexact) {
		t.Errorf("expected ErrInexact, got %v", err)
	}
	if _, err := s.DecodeFloat(1e19); !errors.Is(err, ErrOverflow) {
		t.Errorf("expected ErrOverflow, got %v", err)
	}
	if _, err := s.DecodeFloat(-1e19); !errors.Is(err, ErrOverflow) {
		t.Errorf("expected ErrOverflow, got %v", err)
	}
}

func TestAxis(t *testing.T) {
	s, err := ParseSpec("hours since 2000-01-01", calendar.Standard)
	if err != nil {
		t.Fatal(err)
	}
	raw := []int64{0, 6, 12, 18, 24}
	a := s.Axis(raw)
	if a.Len() != len(raw) {
		t.Fatalf("Len = %d", a.Len())
	}
	for i, v := range raw {
		sameInstant(t, a.At(i), s.Decode(v))
	}
	// Each preserves order and honors early exit
	var seen []int
	a.Each(func(i int, x Instant) bool {
		seen = append(seen, i)
		return i < 2
	})
	if len(seen) != 3 || seen[0] != 0 || seen[2] != 2 {
		t.Errorf("Each visited %v", seen)
	}
	// iteration restarts from the top
	n := 0
	a.Each(func(i int, x Instant) bool { n++; return true })
	if n != len(raw) {
		t.Errorf("second Each visited %d elements", n)
	}
	back, err := s.EncodeAll(a.Instants())
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(back, raw) {
		t.Fatalf("EncodeAll = %v; want %v", back, raw)
	}
}

func BenchmarkDecodeFields(b *testing.B) {
	s, err := ParseSpec("seconds since 1970-01-01", calendar.Standard)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := s.Decode(int64(i)).Fields(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncode(b *testing.B) {
	s, err := ParseSpec("seconds since 1970-01-01", calendar.Standard)
	if err != nil {
		b.Fatal(err)
	}
	xs := make([]Instant, 1024)
	for i := range xs {
		xs[i] = s.Decode(int64(i * 3600))
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := s.Encode(xs[i%len(xs)]); err != nil {
			b.Fatal(err)
		}
	}
}
