package bignum

import "math/bits"

// Vector kernels over little-endian word slices. Unless stated otherwise z
// may alias x or y exactly, and all slices have the lengths the caller
// promises.

// trim drops high zero words.
func trim(w []Word) []Word {
	i := len(w)
	for i > 0 && w[i-1] == 0 {
		i--
	}
	return w[:i]
}

func cloneWords(w []Word) []Word {
	if len(w) == 0 {
		return nil
	}
	out := make([]Word, len(w))
	copy(out, w)
	return out
}

// cmpVec compares two trimmed vectors.
func cmpVec(x, y []Word) int {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// addVV sets z = x + y for equal lengths and returns the carry.
func addVV(z, x, y []Word) (c Word) {
	for i := range z {
		s, cc := bits.Add(uint(x[i]), uint(y[i]), uint(c))
		z[i] = Word(s)
		c = Word(cc)
	}
	return c
}

// subVV sets z = x - y for equal lengths and returns the borrow.
func subVV(z, x, y []Word) (b Word) {
	for i := range z {
		d, bb := bits.Sub(uint(x[i]), uint(y[i]), uint(b))
		z[i] = Word(d)
		b = Word(bb)
	}
	return b
}

// addVW sets z = x + y and returns the carry.
func addVW(z, x []Word, y Word) (c Word) {
	c = y
	for i := range z {
		s, cc := bits.Add(uint(x[i]), uint(c), 0)
		z[i] = Word(s)
		c = Word(cc)
	}
	return c
}

// subVW sets z = x - y and returns the borrow.
func subVW(z, x []Word, y Word) (b Word) {
	b = y
	for i := range z {
		d, bb := bits.Sub(uint(x[i]), uint(b), 0)
		z[i] = Word(d)
		b = Word(bb)
	}
	return b
}

// shlVU sets z = x << s for 0 <= s < WordBits and returns the bits shifted out.
// z may alias x only when &z[0] == &x[0].
func shlVU(z, x []Word, s uint) (c Word) {
	if s == 0 {
		copy(z, x)
		return 0
	}
	if len(z) == 0 {
		return 0
	}
	rs := WordBits - s
	w1 := x[len(z)-1]
	c = w1 >> rs
	for i := len(z) - 1; i > 0; i-- {
		w := w1
		w1 = x[i-1]
		z[i] = w<<s | w1>>rs
	}
	z[0] = w1 << s
	return c
}

// shrVU sets z = x >> s for 0 <= s < WordBits and returns the bits shifted out
// in the high end of c.
func shrVU(z, x []Word, s uint) (c Word) {
	if s == 0 {
		copy(z, x)
		return 0
	}
	if len(z) == 0 {
		return 0
	}
	rs := WordBits - s
	w1 := x[0]
	c = w1 << rs
	for i := 0; i < len(z)-1; i++ {
		w := w1
		w1 = x[i+1]
		z[i] = w>>s | w1<<rs
	}
	z[len(z)-1] = w1 >> s
	return c
}

// mulAddVWW sets z = x*y + r and returns the high word.
func mulAddVWW(z, x []Word, y, r Word) (c Word) {
	c = r
	for i := range z {
		hi, lo := bits.Mul(uint(x[i]), uint(y))
		lo, cc := bits.Add(lo, uint(c), 0)
		z[i] = Word(lo)
		c = Word(hi + cc)
	}
	return c
}

// addMulVVW sets z += x*y and returns the carry out of z.
func addMulVVW(z, x []Word, y Word) (c Word) {
	for i := range z {
		hi, lo := bits.Mul(uint(x[i]), uint(y))
		lo, cc := bits.Add(lo, uint(z[i]), 0)
		hi += cc
		lo, cc = bits.Add(lo, uint(c), 0)
		z[i] = Word(lo)
		c = Word(hi + cc)
	}
	return c
}

// divWVW sets z = (xn:x) / y and returns the remainder. xn must be < y.
func divWVW(z []Word, xn Word, x []Word, y Word) (r Word) {
	r = xn
	if len(z) == 0 {
		return r
	}
	rec := reciprocalWord(y)
	for i := len(z) - 1; i >= 0; i-- {
		z[i], r = divWW(r, x[i], y, rec)
	}
	return r
}

// addAt adds x into z starting at word index i. z must be large enough to
// absorb the final carry.
func addAt(z, x []Word, i int) {
	n := len(x)
	if n == 0 {
		return
	}
	c := addVV(z[i:i+n], z[i:i+n], x)
	for j := i + n; c != 0 && j < len(z); j++ {
		z[j]++
		if z[j] != 0 {
			c = 0
		}
	}
}

// addVec returns the trimmed sum of x and y in a fresh slice.
func addVec(x, y []Word) []Word {
	if len(x) < len(y) {
		x, y = y, x
	}
	if len(x) == 0 {
		return nil
	}
	z := make([]Word, len(x)+1)
	c := addVV(z[:len(y)], x[:len(y)], y)
	c = addVW(z[len(y):len(x)], x[len(y):], c)
	z[len(x)] = c
	return trim(z)
}

// subVec returns x - y in a fresh trimmed slice. It requires x >= y.
func subVec(x, y []Word) []Word {
	z := make([]Word, len(x))
	b := subVV(z[:len(y)], x[:len(y)], y)
	b = subVW(z[len(y):], x[len(y):], b)
	if b != 0 {
		panic(ErrArithmeticUnderflow)
	}
	return trim(z)
}

// subInPlace sets x -= y and returns the trimmed x. It requires x >= y.
func subInPlace(x, y []Word) []Word {
	b := subVV(x[:len(y)], x[:len(y)], y)
	b = subVW(x[len(y):], x[len(y):], b)
	if b != 0 {
		panic(ErrArithmeticUnderflow)
	}
	return trim(x)
}

// shlVec returns x << s in a fresh trimmed slice.
func shlVec(x []Word, s uint) []Word {
	if len(x) == 0 {
		return nil
	}
	ws := int(s / WordBits)
	bs := s % WordBits
	z := make([]Word, len(x)+ws+1)
	z[len(x)+ws] = shlVU(z[ws:ws+len(x)], x, bs)
	return trim(z)
}

// shrVec returns x >> s in a fresh trimmed slice.
func shrVec(x []Word, s uint) []Word {
	ws := int(s / WordBits)
	if ws >= len(x) {
		return nil
	}
	z := make([]Word, len(x)-ws)
	shrVU(z, x[ws:], s%WordBits)
	return trim(z)
}

func bitLenVec(x []Word) int {
	x = trim(x)
	if len(x) == 0 {
		return 0
	}
	return (len(x)-1)*WordBits + bits.Len(uint(x[len(x)-1]))
}

func trailingZerosVec(x []Word) int {
	for i, w := range x {
		if w != 0 {
			return i*WordBits + bits.TrailingZeros(uint(w))
		}
	}
	return 0
}
