package bignum

import "math/bits"

// Word is one base-2^W digit of a magnitude, W being the platform word width.
type Word uint

const (
	// WordBits is the width of a Word in bits.
	WordBits = bits.UintSize

	wordMax  = ^Word(0)
	halfBits = WordBits / 2
	halfMask = Word(1)<<halfBits - 1
	halfBase = Word(1) << halfBits
)

// FullMultiply returns the double-width product of x and y.
func FullMultiply(x, y Word) (hi, lo Word) {
	h, l := bits.Mul(uint(x), uint(y))
	return Word(h), Word(l)
}

// FullWidthDivide divides the double word hi:lo by v and returns the quotient
// and remainder. It panics with ErrDivisionByZero when v is zero and with
// ErrDivisionOverflow when hi >= v, since the quotient would not fit a word.
func FullWidthDivide(hi, lo, v Word) (q, r Word) {
	if v == 0 {
		panic(ErrDivisionByZero)
	}
	if hi >= v {
		panic(ErrDivisionOverflow)
	}
	return divWW(hi, lo, v, reciprocalWord(v))
}

// SplitWord returns the high and low half-words of w.
func SplitWord(w Word) (hi, lo Word) {
	return w >> halfBits, w & halfMask
}

// JoinHalves is the inverse of SplitWord.
func JoinHalves(hi, lo Word) Word {
	return hi<<halfBits | lo&halfMask
}

// SubWithBorrow returns x-y-borrow and the outgoing borrow.
func SubWithBorrow(x, y, borrow Word) (diff, borrowOut Word) {
	d, b := bits.Sub(uint(x), uint(y), uint(borrow))
	return Word(d), Word(b)
}

// AddWithCarry returns x+y+carry and the outgoing carry.
func AddWithCarry(x, y, carry Word) (sum, carryOut Word) {
	s, c := bits.Add(uint(x), uint(y), uint(carry))
	return Word(s), Word(c)
}

// FlipTwosComplement negates w in place modulo 2^(len(w)*WordBits).
func FlipTwosComplement(w []Word) {
	carry := Word(1)
	for i := range w {
		w[i] = ^w[i] + carry
		if w[i] != 0 {
			carry = 0
		}
	}
}

func nlz(x Word) uint {
	return uint(bits.LeadingZeros(uint(x)))
}

// reciprocalWord returns floor((B^2-1)/u) - B where u is d normalized so its
// top bit is set.
func reciprocalWord(d Word) Word {
	u := d << nlz(d)
	rec, _ := divWWPortable(^u, wordMax, u)
	return rec
}

// divWW divides x1:x0 by y using the precomputed reciprocal m of y.
// It requires x1 < y.
func divWW(x1, x0, y, m Word) (q, r Word) {
	s := nlz(y)
	if s != 0 {
		x1 = x1<<s | x0>>(WordBits-s)
		x0 <<= s
		y <<= s
	}
	d := uint(y)
	t1, t0 := bits.Mul(uint(m), uint(x1))
	_, c := bits.Add(t0, uint(x0), 0)
	t1, _ = bits.Add(t1, uint(x1), c)
	// t1 undershoots the quotient by at most two.
	qq := t1
	dq1, dq0 := bits.Mul(d, qq)
	r0, b := bits.Sub(uint(x0), dq0, 0)
	r1, _ := bits.Sub(uint(x1), dq1, b)
	if r1 != 0 {
		qq++
		r0 -= d
	}
	if r0 >= d {
		qq++
		r0 -= d
	}
	return Word(qq), Word(r0 >> s)
}

// divWWPortable divides u1:u0 by v using half-word long division.
// It requires u1 < v.
func divWWPortable(u1, u0, v Word) (q, r Word) {
	s := nlz(v)
	v <<= s

	vn1 := v >> halfBits
	vn0 := v & halfMask
	un32 := u1 << s
	if s != 0 {
		un32 |= u0 >> (WordBits - s)
	}
	un10 := u0 << s
	un1 := un10 >> halfBits
	un0 := un10 & halfMask

	q1 := un32 / vn1
	rhat := un32 - q1*vn1
	for q1 >= halfBase || q1*vn0 > halfBase*rhat+un1 {
		q1--
		rhat += vn1
		if rhat >= halfBase {
			break
		}
	}

	un21 := un32*halfBase + un1 - q1*v
	q0 := un21 / vn1
	rhat = un21 - q0*vn1
	for q0 >= halfBase || q0*vn0 > halfBase*rhat+un0 {
		q0--
		rhat += vn1
		if rhat >= halfBase {
			break
		}
	}

	return q1*halfBase + q0, (un21*halfBase + un0 - q0*v) >> s
}
