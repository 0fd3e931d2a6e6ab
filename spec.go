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
	"strings"

	"github.com/SnellerInc/cftime/calendar"
)

// A Spec is the parsed form of a "<unit> since <origin>" axis
// declaration bound to one calendar kind. It is the unit of
// reproducibility: every Instant decoded through the same Spec
// shares one origin and one resolution, so axis values combine
// and compare without conversion.
type Spec struct {
	unit   Unit
	origin Origin
}

// NewSpec binds a unit to an origin.
func NewSpec(unit Unit, origin Origin) *Spec {
	return &Spec{unit: unit, origin: origin}
}

// ParseSpec parses an axis declaration of the form
//
//	<unit> since <YYYY-MM-DD>[ <HH:MM:SS[.fraction]>]
//
// under the given calendar kind. The unit is the singular or
// plural name of one of the ten supported units; the year may
// be negative and wider than four digits; the fraction may be
// up to 18 digits (attoseconds). Anything else, including
// timezone suffixes, fails with ErrMalformedSpec; a
// well-formed origin date that does not exist under kind
// fails with ErrInvalidDate.
func ParseSpec(s string, kind calendar.Kind) (*Spec, error) {
	parts := strings.Split(s, " ")
	if len(parts) < 3 || len(parts) > 4 || parts[1] != "since" {
		return nil, fmt.Errorf("%q: %w", s, ErrMalformedSpec)
	}
	unit, ok := ParseUnit(parts[0])
	if !ok {
		return nil, fmt.Errorf("unit %q: %w", parts[0], ErrMalformedSpec)
	}
	year, month, day, ok := parseDate(parts[2])
	if !ok {
		return nil, fmt.Errorf("origin date %q: %w", parts[2], ErrMalformedSpec)
	}
	var hour, min, sec int
	var atto int64
	if len(parts) == 4 {
		hour, min, sec, atto, ok = parseClock(parts[3])
		if !ok {
			return nil, fmt.Errorf("origin time %q: %w", parts[3], ErrMalformedSpec)
		}
	}
	origin, err := newOrigin(kind, year, month, day, hour, min, sec, atto)
	if err != nil {
		return nil, err
	}
	return &Spec{unit: unit, origin: origin}, nil
}

// parseInt parses an unsigned decimal with 1 to width digits.
func parseInt(s string, width int) (int, bool) {
	if len(s) == 0 || len(s) > width {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func parseDate(s string) (year, month, day int, ok bool) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	f := strings.Split(s, "-")
	if len(f) != 3 {
		return 0, 0, 0, false
	}
	year, ok = parseInt(f[0], 16)
	if !ok {
		return 0, 0, 0, false
	}
	if neg {
		year = -year
	}
	month, ok = parseInt(f[1], 2)
	if !ok {
		return 0, 0, 0, false
	}
	day, ok = parseInt(f[2], 2)
	return year, month, day, ok
}

func parseClock(s string) (hour, min, sec int, atto int64, ok bool) {
	f := strings.Split(s, ":")
	if len(f) != 3 {
		return 0, 0, 0, 0, false
	}
	hour, ok = parseInt(f[0], 2)
	if !ok {
		return 0, 0, 0, 0, false
	}
	min, ok = parseInt(f[1], 2)
	if !ok {
		return 0, 0, 0, 0, false
	}
	last := f[2]
	if i := strings.IndexByte(last, '.'); i >= 0 {
		frac := last[i+1:]
		last = last[:i]
		if len(frac) == 0 || len(frac) > 18 {
			return 0, 0, 0, 0, false
		}
		for j := 0; j < len(frac); j++ {
			if frac[j] < '0' || frac[j] > '9' {
				return 0, 0, 0, 0, false
			}
			atto = atto*10 + int64(frac[j]-'0')
		}
		for j := len(frac); j < 18; j++ {
			atto *= 10
		}
	}
	sec, ok = parseInt(last, 2)
	return hour, min, sec, atto, ok
}

// Unit returns the axis unit.
func (s *Spec) Unit() Unit { return s.unit }

// Origin returns the axis origin.
func (s *Spec) Origin() Origin { return s.origin }

// Kind returns the calendar kind the axis is declared under.
func (s *Spec) Kind() calendar.Kind { return s.origin.kind }

// New constructs an Instant from calendar fields, pinned to
// the spec's unit and origin; see NewAt.
func (s *Spec) New(year, month, day, hour, min, sec int, sub Duration) (Instant, error) {
	return NewAt(s.Kind(), year, month, day, hour, min, sec, sub, s.unit, s.origin)
}

// String reprints the spec in canonical form.
func (s *Spec) String() string {
	f := s.origin.Date()
	out := fmt.Sprintf("%ss since %04d-%02d-%02d", s.unit, f.Year, f.Month, f.Day)
	if f.Hour != 0 || f.Minute != 0 || f.Second != 0 || !f.Sub.IsZero() {
		rest := f.String()
		out += rest[strings.IndexByte(rest, ' '):]
	}
	return out
}
