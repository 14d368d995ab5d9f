package bignum

import (
	"fmt"
	"math"
)

// top64 returns the leading 64 bits of x, with the lowest bit ORed with
// every discarded bit, and the binary exponent to scale it by.
func (x Nat) top64() (mant uint64, exp int) {
	n := x.BitLen()
	if n <= 64 {
		u, _ := x.Uint64()
		return u, 0
	}
	exp = n - 64
	hi := x.Rsh(exp)
	mant, _ = hi.Uint64()
	if x.TrailingZeros() < exp {
		mant |= 1
	}
	return mant, exp
}

// Float64 returns the nearest float64 to x, rounding half to even. Values
// beyond the largest finite float64 give +Inf.
func (x Nat) Float64() float64 {
	mant, exp := x.top64()
	// The sticky bit sits below the rounding position, so the single
	// rounding in the conversion is exact.
	return math.Ldexp(float64(mant), exp)
}

// Float32 returns the nearest float32 to x, rounding half to even.
func (x Nat) Float32() float32 {
	mant, exp := x.top64()
	f := math.Ldexp(float64(float32(mant)), exp)
	if f > math.MaxFloat32 {
		return float32(math.Inf(1))
	}
	return float32(f)
}

// decomposeFloat splits a finite non-zero |f| into an integer mantissa and
// binary exponent.
func decomposeFloat(f float64) (mant uint64, exp int) {
	frac, e := math.Frexp(math.Abs(f))
	// frac is in [0.5, 1); scale to a 53-bit integer.
	return uint64(math.Ldexp(frac, 53)), e - 53
}

// natFromAbsFloat truncates |f| toward zero and reports whether the
// conversion was exact.
func natFromAbsFloat(f float64) (Nat, bool, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Nat{}, false, fmt.Errorf("%w: %v", ErrNotFinite, f)
	}
	if f == 0 {
		return Nat{}, true, nil
	}
	mant, exp := decomposeFloat(f)
	m := NatFromUint64(mant)
	if exp >= 0 {
		return m.Lsh(exp), true, nil
	}
	if -exp >= 64 {
		return Nat{}, false, nil
	}
	exact := mant&(uint64(1)<<uint(-exp)-1) == 0
	return m.Rsh(-exp), exact, nil
}

// NatFromFloat64 truncates f toward zero. Values at or below -1, NaN and
// infinities are rejected.
func NatFromFloat64(f float64) (Nat, error) {
	n, _, err := natFromAbsFloat(f)
	if err != nil {
		return Nat{}, err
	}
	if f < 0 && !n.IsZero() {
		return Nat{}, fmt.Errorf("%w: %v", ErrNegative, f)
	}
	return n, nil
}

// NatFromFloat64Exact converts f only when it is a non-negative integer.
func NatFromFloat64Exact(f float64) (Nat, bool) {
	n, exact, err := natFromAbsFloat(f)
	if err != nil || !exact || (f < 0 && !n.IsZero()) {
		return Nat{}, false
	}
	return n, true
}
