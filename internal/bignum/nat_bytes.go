package bignum

const wordBytes = WordBits / 8

// NatFromBytes interprets b as a big-endian unsigned integer. Leading zero
// bytes are ignored.
func NatFromBytes(b []byte) Nat {
	n := (len(b) + wordBytes - 1) / wordBytes
	z := make([]Word, n)
	for i := 0; i < len(b); i++ {
		k := i / wordBytes
		z[k] |= Word(b[len(b)-1-i]) << (8 * uint(i%wordBytes))
	}
	return natFromVec(z)
}

// Bytes returns the minimal big-endian encoding of x; empty for zero.
func (x Nat) Bytes() []byte {
	n := (x.BitLen() + 7) / 8
	if n == 0 {
		return []byte{}
	}
	return x.FillBytes(make([]byte, n))
}

// FillBytes writes x big-endian into buf, zero-padding on the left, and
// returns buf. It panics if x does not fit.
func (x Nat) FillBytes(buf []byte) []byte {
	clear(buf)
	xs := x.limbs()
	i := len(buf)
	for _, w := range xs {
		for j := 0; j < wordBytes; j++ {
			if i == 0 {
				if w != 0 {
					panic("bignum: buffer too small to fit value")
				}
				break
			}
			i--
			buf[i] = byte(w)
			w >>= 8
		}
	}
	return buf
}
