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

// Package cftime converts the numeric time axes of scientific
// datasets ("hours since 2000-01-01", and so on) to and from
// calendar dates under the calendar variants those datasets
// declare, without going through floating point.
//
// The package is built from three value types: calendar.Kind
// selects one of the six supported calendar rule sets, Duration
// is an exact scaled-integer span of seconds, and Instant is a
// point in time stored as an origin date plus a Duration offset
// under one Kind. A Spec binds a parsed "<unit> since <origin>"
// string to a Kind and decodes raw axis values into Instants
// (and encodes them back, exactly or not at all).
//
// All types are immutable and every operation is a pure
// function of its inputs; operations that could lose precision
// or overflow return an error instead of guessing. Calendars
// are timezone- and leap-second-naive: every day is exactly
// 86400 seconds long.
package cftime
