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

// Package calendar implements the year/month/day rules of the
// calendar variants used by numeric time axes: the mixed
// Julian/Gregorian calendar of recorded history, its proleptic
// Gregorian and Julian extensions, and the idealized 365-, 366-
// and 360-day model calendars.
//
// Every variant maps a (year, month, day) triple to a signed day
// number and back; the two directions are exact inverses. The
// variants with a leap rule count days as Julian Day Numbers, so
// the mixed calendar can switch rules at JDN 2299161 (1582-10-15)
// with no discontinuity beyond the ten days the reform removed.
package calendar

import "fmt"

// A Kind selects one calendar variant. The zero value is the
// mixed (Standard) calendar.
type Kind uint8

const (
	// Standard is the mixed Julian/Gregorian calendar:
	// Julian rules through 1582-10-04, Gregorian rules from
	// 1582-10-15 on; the ten days in between do not exist.
	Standard Kind = iota
	// ProlepticGregorian applies the Gregorian rules to all
	// years, before and after the 1582 reform.
	ProlepticGregorian
	// Julian applies the Julian rules to all years.
	Julian
	// NoLeap has a fixed 365-day year; February 29 never exists.
	NoLeap
	// AllLeap has a fixed 366-day year; February always has 29 days.
	AllLeap
	// Day360 has twelve 30-day months in every year.
	Day360

	maxKind
)

var kindNames = [maxKind]string{
	Standard:           "standard",
	ProlepticGregorian: "proleptic_gregorian",
	Julian:             "julian",
	NoLeap:             "noleap",
	AllLeap:            "all_leap",
	Day360:             "360_day",
}

// String returns the canonical name of k.
func (k Kind) String() string {
	if k >= maxKind {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind converts a calendar name into a Kind.
// The canonical names and their common aliases are
// accepted: "standard" or "gregorian", "proleptic_gregorian",
// "julian", "noleap" or "365_day", "all_leap" or "366_day",
// and "360_day".
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "standard", "gregorian":
		return Standard, true
	case "proleptic_gregorian":
		return ProlepticGregorian, true
	case "julian":
		return Julian, true
	case "noleap", "365_day":
		return NoLeap, true
	case "all_leap", "366_day":
		return AllLeap, true
	case "360_day":
		return Day360, true
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k >= maxKind {
		return nil, fmt.Errorf("calendar: cannot marshal Kind(%d)", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	kn, ok := ParseKind(string(b))
	if !ok {
		return fmt.Errorf("calendar: unknown calendar %q", b)
	}
	*k = kn
	return nil
}

var monthdays = [12]int{
	31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31,
}

func isleapGregorian(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// IsLeap returns whether year is a leap year under k.
// Years are astronomical: year 0 exists and precedes year 1.
func (k Kind) IsLeap(year int) bool {
	switch k {
	case Julian:
		return year%4 == 0
	case ProlepticGregorian:
		return isleapGregorian(year)
	case Standard:
		// the Julian rule applied up to and including
		// February 1582; the reform changed October
		if year <= 1582 {
			return year%4 == 0
		}
		return isleapGregorian(year)
	case AllLeap:
		return true
	}
	// NoLeap, Day360
	return false
}

// DaysIn returns the number of days in the given month of the
// given year, or 0 if month is not in [1, 12].
func (k Kind) DaysIn(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if k == Day360 {
		return 30
	}
	d := monthdays[month-1]
	if month == 2 && k.IsLeap(year) {
		d++
	}
	return d
}

// MaxYear bounds the years accepted by Valid and DayNumber so
// that every day number fits in an int64 with room to spare.
// Years in [-MaxYear, MaxYear] are accepted.
const MaxYear = 1 << 54

// Valid reports whether the (year, month, day) triple denotes an
// existing date under k. For Standard this excludes the removed
// days 1582-10-05 through 1582-10-14.
func (k Kind) Valid(year, month, day int) bool {
	if year > MaxYear || year < -MaxYear {
		return false
	}
	if day < 1 || day > k.DaysIn(year, month) {
		return false
	}
	if k == Standard && year == 1582 && month == 10 && day > 4 && day < 15 {
		return false
	}
	return true
}

// DayNumber converts a date to its signed day number under k,
// or returns false if the date does not exist under k. Day
// numbers are consecutive and ordered but their epoch is an
// implementation detail of each kind; only differences between
// day numbers of the same kind are meaningful.
func (k Kind) DayNumber(year, month, day int) (int64, bool) {
	if !k.Valid(year, month, day) {
		return 0, false
	}
	switch k {
	case Standard:
		if afterReform(year, month, day) {
			return gregorianDayNumber(year, month, day), true
		}
		return julianDayNumber(year, month, day), true
	case ProlepticGregorian:
		return gregorianDayNumber(year, month, day), true
	case Julian:
		return julianDayNumber(year, month, day), true
	case NoLeap:
		return fixedDayNumber(year, month, day, &daysBefore365, 365), true
	case AllLeap:
		return fixedDayNumber(year, month, day, &daysBefore366, 366), true
	case Day360:
		return int64(year)*360 + int64(month-1)*30 + int64(day-1), true
	}
	return 0, false
}

// Date converts a day number back into a date.
// It is the exact inverse of DayNumber for every day number
// produced from a year within the supported range.
func (k Kind) Date(n int64) (year, month, day int) {
	switch k {
	case Standard:
		if n >= jdnFirstGregorian {
			return gregorianDate(n)
		}
		return julianDate(n)
	case ProlepticGregorian:
		return gregorianDate(n)
	case Julian:
		return julianDate(n)
	case NoLeap:
		return fixedDate(n, &daysBefore365, 365)
	case AllLeap:
		return fixedDate(n, &daysBefore366, 366)
	case Day360:
		y, doy := splitYear(n, 360)
		return y, int(doy/30) + 1, int(doy%30) + 1
	}
	return 0, 0, 0
}

// DayOfYear returns the 1-based ordinal day of the year, or 0
// if the date is not valid under k. For Standard the ordinal
// accounts for the ten days removed in October 1582.
func (k Kind) DayOfYear(year, month, day int) int {
	n, ok := k.DayNumber(year, month, day)
	if !ok {
		return 0
	}
	jan1, _ := k.DayNumber(year, 1, 1)
	return int(n-jan1) + 1
}
