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

// x+9s floors to x and ceils (and rounds) to x+10s: one day
// after the 2000-01-01 origin, in 10-second steps.
func TestRoundLiterals(t *testing.T) {
	spec, err := ParseSpec("seconds since 2000-01-01", calendar.Standard)
	if err != nil {
		t.Fatal(err)
	}
	x, err := spec.New(2000, 1, 2, 0, 0, 0, Duration{})
	if err != nil {
		t.Fatal(err)
	}
	step := Second.D(10)
	x9, err := x.Add(Second.D(9))
	if err != nil {
		t.Fatal(err)
	}
	x10, err := x.Add(step)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Floor(x9, step)
	if err != nil {
		t.Fatal(err)
	}
	sameInstant(t, got, x)
	got, err = Ceil(x9, step)
	if err != nil {
		t.Fatal(err)
	}
	sameInstant(t, got, x10)
	got, err = Round(x9, step)
	if err != nil {
		t.Fatal(err)
	}
	sameInstant(t, got, x10)
	// an aligned instant is its own floor, ceil and round
	for _, f := range []func(Instant, Duration) (Instant, error){Floor, Ceil, Round} {
		got, err := f(x, step)
		if err != nil {
			t.Fatal(err)
		}
		sameInstant(t, got, x)
	}
}

func TestRoundNegativeOffsets(t *testing.T) {
	spec, err := ParseSpec("seconds since 2000-01-01", calendar.Standard)
	if err != nil {
		t.Fatal(err)
	}
	step := Second.D(10)
	cases := []struct {
		v, floor, ceil, round int64
	}{
		{-5, -10, 0, 0},   // tie goes toward ceil, pre-origin too
		{-15, -20, -10, -10},
		{-9, -10, 0, -10}, // below the tie
		{-1, -10, 0, 0},
		{-10, -10, -10, -10},
		{5, 0, 10, 10},
		{4, 0, 10, 0},
	}
	for _, c := range cases {
		x := spec.Decode(c.v)
		got, err := Floor(x, step)
		if err != nil {
			t.Fatal(err)
		}
		sameInstant(t, got, spec.Decode(c.floor))
		got, err = Ceil(x, step)
		if err != nil {
			t.Fatal(err)
		}
		sameInstant(t, got, spec.Decode(c.ceil))
		got, err = Round(x, step)
		if err != nil {
			t.Fatal(err)
		}
		sameInstant(t, got, spec.Decode(c.round))
	}
}

func TestRoundEnvelope(t *testing.T) {
	spec, err := ParseSpec("milliseconds since 1970-01-01", calendar.ProlepticGregorian)
	if err != nil {
		t.Fatal(err)
	}
	steps := []Duration{
		Millisecond.D(7),
		Second.D(1),
		Minute.D(5),
		Hour.D(6),
		Day.D(1),
	}
	rng := rand.New(rand.NewSource(43))
	for _, step := range steps {
		for i := 0; i < 500; i++ {
			x := spec.Decode(rng.Int63n(1<<45) - (1 << 44))
			lo, err := Floor(x, step)
			if err != nil {
				t.Fatal(err)
			}
			hi, err := Ceil(x, step)
			if err != nil {
				t.Fatal(err)
			}
			if c, _ := lo.Compare(x); c > 0 {
				t.Fatalf("floor %s after %s", lo, x)
			}
			if c, _ := hi.Compare(x); c < 0 {
				t.Fatalf("ceil %s before %s", hi, x)
			}
			d, err := hi.Difference(lo)
			if err != nil {
				t.Fatal(err)
			}
			if aligned, _ := lo.Compare(x); aligned == 0 {
				if !d.IsZero() {
					t.Fatalf("aligned instant: ceil-floor = %s", d)
				}
			} else if c, _ := d.Compare(step); c != 0 {
				t.Fatalf("ceil-floor = %s; want %s", d, step)
			}
			mid, err := Round(x, step)
			if err != nil {
				t.Fatal(err)
			}
			if c1, _ := mid.Compare(lo); c1 != 0 {
				if c2, _ := mid.Compare(hi); c2 != 0 {
					t.Fatalf("round %s is neither floor nor ceil", mid)
				}
			}
		}
	}
}

func TestRoundErrors(t *testing.T) {
	x := mustNew(t, calendar.Standard, 2000, 1, 1, 0, 0, 0)
	if _, err := Floor(x, Second.D(0)); !errors.Is(err, ErrInvalidStep) {
		t.Errorf("expected ErrInvalidStep, got %v", err)
	}
	if _, err := Round(x, Second.D(-10)); !errors.Is(err, ErrInvalidStep) {
		t.Errorf("expected ErrInvalidStep, got %v", err)
	}
	// a day has no finite attosecond mantissa, so a step that
	// only aligns at attoseconds pushes the offset out of range
	spec, err := ParseSpec("days since 2000-01-01", calendar.Standard)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Floor(spec.Decode(1), Attosecond.D(7)); !errors.Is(err, ErrOverflow) {
		t.Errorf("expected ErrOverflow, got %v", err)
	}
}

func TestRoundOddStep(t *testing.T) {
	// a 7-second step against an hours axis reconciles at
	// plain seconds
	spec, err := ParseSpec("hours since 2000-01-01", calendar.Standard)
	if err != nil {
		t.Fatal(err)
	}
	step, err := NewDuration(1, 7, 0)
	if err != nil {
		t.Fatal(err)
	}
	lo, err := Floor(spec.Decode(1), step)
	if err != nil {
		t.Fatal(err)
	}
	d, err := spec.Decode(1).Difference(lo)
	if err != nil {
		t.Fatal(err)
	}
	// 3600 = 514*7 + 2
	if c, _ := d.Compare(Second.D(2)); c != 0 {
		t.Errorf("hour floored to 7s steps leaves %s; want 2 seconds", d)
	}
}
