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

import "errors"

// Every failure in this package wraps one of the sentinel
// errors below; callers should test with errors.Is. None of
// the operations in this package degrade to a best-effort
// result: a caller that wants lossy behavior has to ask for
// it explicitly (see Floor, Ceil, Round).
var (
	// ErrInvalidDate indicates a (year, month, day, ...) field
	// combination that does not exist under the calendar in use,
	// including the ten days removed by the 1582 reform.
	ErrInvalidDate = errors.New("invalid calendar date")
	// ErrMalformedSpec indicates a unit/origin string that does
	// not match the "<unit> since <origin>" grammar.
	ErrMalformedSpec = errors.New("malformed unit spec")
	// ErrCalendarMismatch indicates an operation mixing two
	// different calendar kinds where one common kind is required.
	ErrCalendarMismatch = errors.New("calendar mismatch")
	// ErrInexact indicates a conversion that would have to drop
	// information to produce an answer.
	ErrInexact = errors.New("inexact conversion")
	// ErrOverflow indicates integer arithmetic that would exceed
	// the representable range.
	ErrOverflow = errors.New("arithmetic overflow")
	// ErrInvalidStep indicates a zero (or, where an orientation
	// is implied, wrongly-signed) range step.
	ErrInvalidStep = errors.New("invalid step")
	// ErrOutOfRange indicates an index beyond a range's length.
	ErrOutOfRange = errors.New("index out of range")
	// ErrPrecisionLoss indicates a conversion target that cannot
	// represent the source resolution exactly.
	ErrPrecisionLoss = errors.New("precision loss")
)
