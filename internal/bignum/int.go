package bignum

import (
	"math"

	"fortio.org/safecast"
)

// Sign is the sign of an Int. Zero is always Plus.
type Sign bool

const (
	Plus  Sign = false
	Minus Sign = true
)

func (s Sign) String() string {
	if s == Minus {
		return "-"
	}
	return "+"
}

// Int is an arbitrary-precision signed integer held as a sign and a Nat
// magnitude. The zero value is 0. Int values are immutable.
type Int struct {
	neg bool
	mag Nat
}

// IntFromNat returns the value with the given sign and magnitude. A zero
// magnitude always yields +0.
func IntFromNat(sign Sign, mag Nat) Int {
	return Int{neg: sign == Minus && !mag.IsZero(), mag: mag}
}

// IntFromInt64 returns v.
func IntFromInt64(v int64) Int {
	if v >= 0 {
		return Int{mag: NatFromUint64(uint64(v))}
	}
	return Int{neg: true, mag: NatFromUint64(uint64(-(v + 1)) + 1)} //nolint:gosec // G115: -(v+1) is non-negative.
}

// IntFromWords interprets words as a little-endian two's-complement value:
// the top bit of the last word is the sign.
func IntFromWords(words []Word) Int {
	if len(words) == 0 || words[len(words)-1]>>(WordBits-1) == 0 {
		return Int{mag: NatFromWords(words)}
	}
	w := cloneWords(words)
	FlipTwosComplement(w)
	return IntFromNat(Minus, natFromVec(w))
}

// Sign returns the sign of x.
func (x Int) Sign() Sign {
	if x.neg {
		return Minus
	}
	return Plus
}

// Magnitude returns |x| as a Nat.
func (x Int) Magnitude() Nat { return x.mag }

// Signum returns -1, 0 or +1.
func (x Int) Signum() int {
	switch {
	case x.neg:
		return -1
	case x.mag.IsZero():
		return 0
	}
	return 1
}

// IsZero reports whether x == 0.
func (x Int) IsZero() bool { return x.mag.IsZero() }

// Neg returns -x.
func (x Int) Neg() Int {
	return IntFromNat(!x.Sign(), x.mag)
}

// Abs returns |x|.
func (x Int) Abs() Int {
	return IntFromNat(Plus, x.mag)
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x Int) Cmp(y Int) int {
	switch {
	case x.neg && !y.neg:
		return -1
	case !x.neg && y.neg:
		return 1
	case x.neg:
		return y.mag.Cmp(x.mag)
	}
	return x.mag.Cmp(y.mag)
}

// Equal reports whether x == y.
func (x Int) Equal(y Int) bool { return x.Cmp(y) == 0 }

// Hash returns a hash consistent with Equal.
func (x Int) Hash() uint64 {
	h := x.mag.Hash()
	if x.neg {
		h = ^h*0x100000001b3 + 1
	}
	return h
}

// BitLen returns the magnitude's bit length plus one for the sign; 0 for zero.
func (x Int) BitLen() int {
	if x.IsZero() {
		return 0
	}
	return x.mag.BitLen() + 1
}

// TrailingZeros returns the number of trailing zero bits of the magnitude,
// which equals that of the two's-complement form.
func (x Int) TrailingZeros() int {
	return x.mag.TrailingZeros()
}

// Int64 returns x as an int64 and whether it fits.
func (x Int) Int64() (int64, bool) {
	u, ok := x.mag.Uint64()
	if !ok {
		return 0, false
	}
	if x.neg {
		if u == 1<<63 {
			return math.MinInt64, true
		}
		v, err := safecast.Conv[int64](u)
		return -v, err == nil
	}
	v, err := safecast.Conv[int64](u)
	return v, err == nil
}

// ClampInt64 returns x limited to the int64 range.
func (x Int) ClampInt64() int64 {
	if v, ok := x.Int64(); ok {
		return v
	}
	if x.neg {
		return math.MinInt64
	}
	return math.MaxInt64
}

// TruncInt64 returns the low 64 bits of x's two's-complement form.
func (x Int) TruncInt64() int64 {
	var u uint64
	for i := 0; i*WordBits < 64; i++ {
		u |= uint64(x.mag.Word(i)) << (uint(i) * WordBits)
	}
	if x.neg {
		u = -u
	}
	return int64(u) //nolint:gosec // G115: two's-complement reinterpretation.
}

// Float64 returns the nearest float64 to x.
func (x Int) Float64() float64 {
	f := x.mag.Float64()
	if x.neg {
		return -f
	}
	return f
}

// Float32 returns the nearest float32 to x.
func (x Int) Float32() float32 {
	f := x.mag.Float32()
	if x.neg {
		return -f
	}
	return f
}

// IntFromFloat64 truncates f toward zero. NaN and infinities are rejected.
func IntFromFloat64(f float64) (Int, error) {
	n, _, err := natFromAbsFloat(f)
	if err != nil {
		return Int{}, err
	}
	return IntFromNat(Sign(f < 0), n), nil
}

// IntFromFloat64Exact converts f only when it is an integer.
func IntFromFloat64Exact(f float64) (Int, bool) {
	n, exact, err := natFromAbsFloat(f)
	if err != nil || !exact {
		return Int{}, false
	}
	return IntFromNat(Sign(f < 0), n), true
}
