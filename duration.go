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

	"github.com/SnellerInc/cftime/ints"
)

// A Unit is one of the time units a numeric axis can count.
type Unit uint8

const (
	Day Unit = iota
	Hour
	Minute
	Second
	Millisecond
	Microsecond
	Nanosecond
	Picosecond
	Femtosecond
	Attosecond

	maxUnit
)

// unitScales[u] is the length of one u expressed as
// factor seconds times 10^exp.
var unitScales = [maxUnit]struct {
	factor int64
	exp    int32
	name   string
}{
	Day:         {86400, 0, "day"},
	Hour:        {3600, 0, "hour"},
	Minute:      {60, 0, "minute"},
	Second:      {1, 0, "second"},
	Millisecond: {1, -3, "millisecond"},
	Microsecond: {1, -6, "microsecond"},
	Nanosecond:  {1, -9, "nanosecond"},
	Picosecond:  {1, -12, "picosecond"},
	Femtosecond: {1, -15, "femtosecond"},
	Attosecond:  {1, -18, "attosecond"},
}

// ParseUnit converts a unit name into a Unit.
// The singular and plural forms are both accepted.
func ParseUnit(name string) (Unit, bool) {
	for u := Unit(0); u < maxUnit; u++ {
		n := unitScales[u].name
		if name == n || (len(name) == len(n)+1 &&
			name[:len(n)] == n && name[len(n)] == 's') {
			return u, true
		}
	}
	return 0, false
}

// String returns the singular name of u.
func (u Unit) String() string {
	if u >= maxUnit {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitScales[u].name
}

// Scale returns the scale of u: one u is
// factor seconds times 10^exp.
func (u Unit) Scale() (factor int64, exp int) {
	return unitScales[u].factor, int(unitScales[u].exp)
}

// D returns a Duration of n units of u.
func (u Unit) D(n int64) Duration {
	return Duration{mant: n, factor: unitScales[u].factor, exp: unitScales[u].exp}
}

// maxExp bounds the decimal exponent of a Duration.
// 10^18 is the largest power of ten that fits in an
// int64, and -18 (attoseconds) is the finest supported
// resolution.
const maxExp = 18

// A Duration is an exact span of time: mant * factor * 10^exp
// seconds, with factor positive and exp in [-18, 18]. Two
// Durations sharing the same (factor, exp) scale are
// commensurable and combine without conversion; all other
// combinations go through Rescale, which either produces an
// exact answer or fails. There is no floating-point path:
// every operation is integer-exact or returns an error.
//
// The zero value is zero seconds at the (1, 0) scale.
type Duration struct {
	mant   int64
	factor int64
	exp    int32
}

// NewDuration constructs the Duration mant * factor * 10^exp
// seconds. It errors unless factor is positive and exp is in
// [-18, 18].
func NewDuration(mant, factor int64, exp int) (Duration, error) {
	if factor <= 0 {
		return Duration{}, fmt.Errorf("duration scale factor %d must be positive", factor)
	}
	if exp < -maxExp || exp > maxExp {
		return Duration{}, fmt.Errorf("duration exponent %d outside [-%d, %d]", exp, maxExp, maxExp)
	}
	return Duration{mant: mant, factor: factor, exp: int32(exp)}, nil
}

// fac returns the scale factor, mapping the zero
// value's 0 to 1.
func (d Duration) fac() int64 {
	if d.factor == 0 {
		return 1
	}
	return d.factor
}

// Mantissa returns the number of scale units in d.
func (d Duration) Mantissa() int64 { return d.mant }

// Scale returns d's scale: d is Mantissa() times
// factor seconds times 10^exp.
func (d Duration) Scale() (factor int64, exp int) {
	return d.fac(), int(d.exp)
}

// Commensurable reports whether d and e share the same scale,
// so that they combine without any conversion.
func (d Duration) Commensurable(e Duration) bool {
	return d.fac() == e.fac() && d.exp == e.exp
}

// Sign returns -1, 0, or 1 according to the sign of d.
func (d Duration) Sign() int {
	switch {
	case d.mant < 0:
		return -1
	case d.mant > 0:
		return 1
	}
	return 0
}

// IsZero reports whether d is zero seconds.
func (d Duration) IsZero() bool { return d.mant == 0 }

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Rescale converts d to the (factor, exp) scale.
// It fails with ErrInexact if the conversion is not an exact
// integer, and with ErrOverflow if the converted mantissa does
// not fit in an int64; d is unchanged either way.
func (d Duration) Rescale(factor int64, exp int) (Duration, error) {
	if factor <= 0 || exp < -maxExp || exp > maxExp {
		return Duration{}, fmt.Errorf("rescale to invalid scale %d*10^%d", factor, exp)
	}
	// the result mantissa is mant * f0 * 10^de / f1;
	// cancel what we can, then require the leftover
	// denominator to divide the mantissa
	m := d.mant
	f0, f1 := d.fac(), factor
	g := gcd(f0, f1)
	f0, f1 = f0/g, f1/g
	de := int(d.exp) - exp
	var p10 int64 = 1
	if de >= 0 {
		p, ok := ints.Pow10(de)
		if !ok {
			return Duration{}, fmt.Errorf("rescale by 10^%d: %w", de, ErrOverflow)
		}
		g = gcd(p, f1)
		p10, f1 = p/g, f1/g
	} else {
		q, ok := ints.Pow10(-de)
		if !ok {
			return Duration{}, fmt.Errorf("rescale by 10^%d: %w", de, ErrOverflow)
		}
		g = gcd(f0, q)
		f0, q = f0/g, q/g
		if m%q != 0 {
			return Duration{}, fmt.Errorf("%s to %d*10^%d: %w", d, factor, exp, ErrInexact)
		}
		m /= q
	}
	// gcd(f0*p10, f1) == 1 now, so exactness
	// means f1 divides the mantissa directly
	if m%f1 != 0 {
		return Duration{}, fmt.Errorf("%s to %d*10^%d: %w", d, factor, exp, ErrInexact)
	}
	m /= f1
	m, ok := ints.MulCheck(m, f0)
	if !ok {
		return Duration{}, fmt.Errorf("rescale %s: %w", d, ErrOverflow)
	}
	m, ok = ints.MulCheck(m, p10)
	if !ok {
		return Duration{}, fmt.Errorf("rescale %s: %w", d, ErrOverflow)
	}
	return Duration{mant: m, factor: factor, exp: int32(exp)}, nil
}

// In converts d to units of u; see Rescale.
func (d Duration) In(u Unit) (Duration, error) {
	return d.Rescale(unitScales[u].factor, int(unitScales[u].exp))
}

// common brings d and e to one shared scale, preferring d's,
// then e's, then plain seconds at the finer of the two decimal
// exponents (which is always exact but may overflow).
func (d Duration) common(e Duration) (Duration, Duration, error) {
	if d.Commensurable(e) {
		return d, e, nil
	}
	if r, err := e.Rescale(d.Scale()); err == nil {
		return d, r, nil
	}
	if r, err := d.Rescale(e.Scale()); err == nil {
		return r, e, nil
	}
	exp := ints.Min(int(d.exp), int(e.exp))
	rd, err := d.Rescale(1, exp)
	if err != nil {
		return Duration{}, Duration{}, err
	}
	re, err := e.Rescale(1, exp)
	if err != nil {
		return Duration{}, Duration{}, err
	}
	return rd, re, nil
}

// Add returns d+e. If d and e are not commensurable, one is
// rescaled to the scale of the other; Add fails with ErrInexact
// when neither direction converts exactly, and with ErrOverflow
// when the sum does not fit.
func (d Duration) Add(e Duration) (Duration, error) {
	d, e, err := d.common(e)
	if err != nil {
		return Duration{}, err
	}
	m, ok := ints.AddCheck(d.mant, e.mant)
	if !ok {
		return Duration{}, fmt.Errorf("add %s: %w", e, ErrOverflow)
	}
	return Duration{mant: m, factor: d.fac(), exp: d.exp}, nil
}

// Sub returns d-e under the same rules as Add.
func (d Duration) Sub(e Duration) (Duration, error) {
	d, e, err := d.common(e)
	if err != nil {
		return Duration{}, err
	}
	m, ok := ints.SubCheck(d.mant, e.mant)
	if !ok {
		return Duration{}, fmt.Errorf("subtract %s: %w", e, ErrOverflow)
	}
	return Duration{mant: m, factor: d.fac(), exp: d.exp}, nil
}

// Neg returns -d.
func (d Duration) Neg() (Duration, error) {
	m, ok := ints.SubCheck(0, d.mant)
	if !ok {
		return Duration{}, fmt.Errorf("negate %s: %w", d, ErrOverflow)
	}
	return Duration{mant: m, factor: d.fac(), exp: d.exp}, nil
}

// Mul returns d scaled by the integer n.
func (d Duration) Mul(n int64) (Duration, error) {
	m, ok := ints.MulCheck(d.mant, n)
	if !ok {
		return Duration{}, fmt.Errorf("scale %s by %d: %w", d, n, ErrOverflow)
	}
	return Duration{mant: m, factor: d.fac(), exp: d.exp}, nil
}

// Compare returns -1, 0, or 1 according to whether d is
// shorter than, equal to, or longer than e. Durations of any
// scales compare, but Compare fails with ErrOverflow when an
// intermediate product exceeds the int64 range.
func (d Duration) Compare(e Duration) (int, error) {
	sd, se := d.Sign(), e.Sign()
	if sd != se {
		if sd < se {
			return -1, nil
		}
		return 1, nil
	}
	if sd == 0 {
		return 0, nil
	}
	if d.Commensurable(e) {
		return cmp64(d.mant, e.mant), nil
	}
	// same nonzero sign: compare the full products at the
	// finer of the two decimal exponents
	a, ok := ints.MulCheck(d.mant, d.fac())
	if !ok {
		return 0, fmt.Errorf("compare %s: %w", d, ErrOverflow)
	}
	b, ok := ints.MulCheck(e.mant, e.fac())
	if !ok {
		return 0, fmt.Errorf("compare %s: %w", e, ErrOverflow)
	}
	de := int(d.exp) - int(e.exp)
	if de >= 0 {
		p, ok := ints.Pow10(de)
		if !ok {
			return 0, fmt.Errorf("compare %s: %w", d, ErrOverflow)
		}
		a, ok = ints.MulCheck(a, p)
		if !ok {
			return 0, fmt.Errorf("compare %s: %w", d, ErrOverflow)
		}
	} else {
		p, ok := ints.Pow10(-de)
		if !ok {
			return 0, fmt.Errorf("compare %s: %w", e, ErrOverflow)
		}
		b, ok = ints.MulCheck(b, p)
		if !ok {
			return 0, fmt.Errorf("compare %s: %w", e, ErrOverflow)
		}
	}
	return cmp64(a, b), nil
}

func cmp64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// attosPerSec is one second in attoseconds,
// the finest supported resolution.
const attosPerSec = 1_000_000_000_000_000_000

// split decomposes d into whole seconds (rounded toward
// negative infinity) and a nonnegative attosecond remainder.
// It fails with ErrOverflow when the whole-second count does
// not fit in an int64.
func (d Duration) split() (secs, atto int64, err error) {
	n, ok := ints.MulCheck(d.mant, d.fac())
	if !ok {
		return 0, 0, fmt.Errorf("decompose %s: %w", d, ErrOverflow)
	}
	if d.exp >= 0 {
		p, ok := ints.Pow10(int(d.exp))
		if ok {
			n, ok = ints.MulCheck(n, p)
		}
		if !ok {
			return 0, 0, fmt.Errorf("decompose %s: %w", d, ErrOverflow)
		}
		return n, 0, nil
	}
	// n counts ticks of 10^exp seconds
	q, _ := ints.Pow10(int(-d.exp))
	secs = ints.FloorDiv(n, q)
	rem := n - secs*q
	// rem < 10^-exp <= 10^18, so the remainder
	// always fits in attoseconds
	atto = rem * (attosPerSec / q)
	return secs, atto, nil
}

// String formats d for debugging, using a unit name when the
// scale matches one ("9 seconds") and the raw scale otherwise.
func (d Duration) String() string {
	for u := Unit(0); u < maxUnit; u++ {
		if d.fac() == unitScales[u].factor && d.exp == unitScales[u].exp {
			s := fmt.Sprintf("%d %s", d.mant, unitScales[u].name)
			if d.mant != 1 && d.mant != -1 {
				s += "s"
			}
			return s
		}
	}
	return fmt.Sprintf("%d*%d*10^%d seconds", d.mant, d.fac(), d.exp)
}
