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

package calendar

// Date composition and decomposition is based on the following article,
// extended with a 4-year-era variant for the Julian calendar:
//
//   https://howardhinnant.github.io/date_algorithms.html

import "github.com/SnellerInc/cftime/ints"

const (
	daysPer400YearCycle = 146097 // Gregorian era
	daysPer4YearCycle   = 1461   // Julian era

	// Julian Day Numbers of the (March-shifted) year 0 used to
	// anchor the era formulas below.
	jdnGregorianYear0 = 1721120 // proleptic-Gregorian 0000-03-01
	jdnJulianYear0    = 1721118 // proleptic-Julian 0000-03-01

	// jdnFirstGregorian is 1582-10-15, the first day of the
	// reformed calendar; 1582-10-04 (Julian) is JDN 2299160.
	jdnFirstGregorian = 2299161
)

// shiftMonth maps a civil month to the March-based month
// index [0, 11] used by the era formulas.
func shiftMonth(month int) int64 {
	if month > 2 {
		return int64(month - 3)
	}
	return int64(month + 9)
}

// unshiftMonth is the inverse of shiftMonth.
func unshiftMonth(mp int64) int {
	if mp < 10 {
		return int(mp + 3)
	}
	return int(mp - 9)
}

func gregorianDayNumber(year, month, day int) int64 {
	y := int64(year)
	if month <= 2 {
		y--
	}
	era := ints.FloorDiv(y, 400)
	yoe := y - era*400                                 // [0, 399]
	doy := (153*shiftMonth(month)+2)/5 + int64(day-1)  // [0, 365]
	doe := yoe*365 + yoe/4 - yoe/100 + doy             // [0, 146096]
	return era*daysPer400YearCycle + doe + jdnGregorianYear0
}

func gregorianDate(n int64) (year, month, day int) {
	z := n - jdnGregorianYear0
	era := ints.FloorDiv(z, daysPer400YearCycle)
	doe := z - era*daysPer400YearCycle // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day = int(doy - (153*mp+2)/5 + 1)
	month = unshiftMonth(mp)
	if month <= 2 {
		y++
	}
	return int(y), month, day
}

func julianDayNumber(year, month, day int) int64 {
	y := int64(year)
	if month <= 2 {
		y--
	}
	era := ints.FloorDiv(y, 4)
	yoe := y - era*4                                  // [0, 3]
	doy := (153*shiftMonth(month)+2)/5 + int64(day-1) // [0, 365]
	doe := yoe*365 + doy                              // [0, 1460]
	return era*daysPer4YearCycle + doe + jdnJulianYear0
}

func julianDate(n int64) (year, month, day int) {
	z := n - jdnJulianYear0
	era := ints.FloorDiv(z, daysPer4YearCycle)
	doe := z - era*daysPer4YearCycle // [0, 1460]
	yoe := doe / 365
	if yoe == 4 {
		// the leap day ends the 4-year era
		yoe = 3
	}
	y := yoe + era*4
	doy := doe - 365*yoe
	mp := (5*doy + 2) / 153
	day = int(doy - (153*mp+2)/5 + 1)
	month = unshiftMonth(mp)
	if month <= 2 {
		y++
	}
	return int(y), month, day
}

func afterReform(year, month, day int) bool {
	return year > 1582 ||
		(year == 1582 && (month > 10 || (month == 10 && day >= 15)))
}

// daysBefore365[m] counts the days before month m+1 begins in a
// 365-day year; daysBefore366 is the 366-day equivalent.
var daysBefore365 = [13]int64{
	0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365,
}

var daysBefore366 = [13]int64{
	0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366,
}

func fixedDayNumber(year, month, day int, before *[13]int64, perYear int64) int64 {
	return int64(year)*perYear + before[month-1] + int64(day-1)
}

func fixedDate(n int64, before *[13]int64, perYear int64) (year, month, day int) {
	y, doy := splitYear(n, perYear)
	m := 1
	for doy >= before[m] {
		m++
	}
	return y, m, int(doy-before[m-1]) + 1
}

// splitYear splits a linear day count into a year and the
// day-of-year remainder [0, perYear).
func splitYear(n, perYear int64) (year int, doy int64) {
	y := ints.FloorDiv(n, perYear)
	return int(y), n - y*perYear
}
