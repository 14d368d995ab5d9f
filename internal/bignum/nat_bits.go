package bignum

import "math/bits"

// BitLen returns the number of bits needed to represent x; 0 for zero.
func (x Nat) BitLen() int {
	return bitLenVec(x.limbs())
}

// LeadingZeros returns the number of zero bits above the top set bit within
// the top significant word; 0 for zero.
func (x Nat) LeadingZeros() int {
	c := x.Count()
	if c == 0 {
		return 0
	}
	return bits.LeadingZeros(uint(x.Word(c - 1)))
}

// TrailingZeros returns the number of zero bits below the lowest set bit;
// 0 for zero.
func (x Nat) TrailingZeros() int {
	return trailingZerosVec(x.limbs())
}

// Bit reports whether bit i is set.
func (x Nat) Bit(i int) bool {
	if i < 0 {
		return false
	}
	return x.Word(i/WordBits)>>(uint(i)%WordBits)&1 == 1
}

// SetBit sets bit i in place, growing storage as needed.
func (n *Nat) SetBit(i int) {
	if i < 0 {
		panic("bignum: negative bit index")
	}
	k := i / WordBits
	n.SetWord(k, n.Word(k)|Word(1)<<(uint(i)%WordBits))
}

// ClearBit clears bit i in place. Clearing beyond the bit width is a no-op.
func (n *Nat) ClearBit(i int) {
	if i < 0 {
		return
	}
	k := i / WordBits
	if k >= n.Count() {
		return
	}
	n.SetWord(k, n.Word(k)&^(Word(1)<<(uint(i)%WordBits)))
}

// And returns x & y.
func (x Nat) And(y Nat) Nat {
	xs, ys := x.limbs(), y.limbs()
	n := min(len(xs), len(ys))
	z := make([]Word, n)
	for i := range z {
		z[i] = xs[i] & ys[i]
	}
	return natFromVec(z)
}

// AndNot returns x &^ y.
func (x Nat) AndNot(y Nat) Nat {
	xs, ys := x.limbs(), y.limbs()
	z := cloneWords(xs)
	for i := range min(len(z), len(ys)) {
		z[i] &^= ys[i]
	}
	return natFromVec(z)
}

// Or returns x | y.
func (x Nat) Or(y Nat) Nat {
	xs, ys := x.limbs(), y.limbs()
	if len(xs) < len(ys) {
		xs, ys = ys, xs
	}
	z := cloneWords(xs)
	for i, w := range ys {
		z[i] |= w
	}
	return natFromVec(z)
}

// Xor returns x ^ y.
func (x Nat) Xor(y Nat) Nat {
	xs, ys := x.limbs(), y.limbs()
	if len(xs) < len(ys) {
		xs, ys = ys, xs
	}
	z := cloneWords(xs)
	for i, w := range ys {
		z[i] ^= w
	}
	return natFromVec(z)
}

// Not complements every significant word of x and trims the result.
func (x Nat) Not() Nat {
	z := cloneWords(x.limbs())
	for i := range z {
		z[i] = ^z[i]
	}
	return natFromVec(z)
}

// Lsh returns x << s. A negative count shifts right.
func (x Nat) Lsh(s int) Nat {
	if s < 0 {
		if s == -s {
			return Nat{}
		}
		return x.Rsh(-s)
	}
	return natFromVec(shlVec(x.limbs(), uint(s)))
}

// Rsh returns x >> s. A negative count shifts left.
func (x Nat) Rsh(s int) Nat {
	if s < 0 {
		if s == -s && !x.IsZero() {
			panic(ErrShiftTooLarge)
		}
		return x.Lsh(-s)
	}
	return natFromVec(shrVec(x.limbs(), uint(s)))
}
