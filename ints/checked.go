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

package ints

import "math"

// AddCheck returns x+y and whether the sum
// fits in an int64 without wrapping.
func AddCheck(x, y int64) (int64, bool) {
	sum := x + y
	// overflow iff x and y share a sign
	// and the sum does not
	return sum, (x^sum)&(y^sum) >= 0
}

// SubCheck returns x-y and whether the difference
// fits in an int64 without wrapping.
func SubCheck(x, y int64) (int64, bool) {
	diff := x - y
	return diff, (x^y)&(x^diff) >= 0
}

// MulCheck returns x*y and whether the product
// fits in an int64 without wrapping.
func MulCheck(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	z := x * y
	if x == math.MinInt64 || y == math.MinInt64 {
		// z/y cannot detect -1 * MinInt64
		return z, x == 1 || y == 1
	}
	return z, z/y == x
}

var pow10tab = [...]int64{
	1,
	10,
	100,
	1000,
	10000,
	100000,
	1000000,
	10000000,
	100000000,
	1000000000,
	10000000000,
	100000000000,
	1000000000000,
	10000000000000,
	100000000000000,
	1000000000000000,
	10000000000000000,
	100000000000000000,
	1000000000000000000,
}

// Pow10 returns 10^n and whether the result
// fits in an int64 (0 <= n <= 18).
func Pow10(n int) (int64, bool) {
	if n < 0 || n >= len(pow10tab) {
		return 0, false
	}
	return pow10tab[n], true
}
