package bignum

// Pow returns x**e. Negative exponents follow integer reciprocal rules:
// 1 stays 1, any larger base gives 0, and zero panics with
// ErrDivisionByZero.
func (x Nat) Pow(e int) Nat {
	return x.PowWithConfig(e, DefaultMulConfig())
}

// PowWithConfig is Pow with explicit multiplication tuning.
func (x Nat) PowWithConfig(e int, cfg MulConfig) Nat {
	switch {
	case e == 0:
		return natOne
	case e == 1:
		return x
	case e < 0:
		if x.IsZero() {
			panic(ErrDivisionByZero)
		}
		if x.Equal(natOne) {
			return natOne
		}
		return Nat{}
	}
	result := natOne
	b := x
	for {
		if e&1 == 1 {
			result = result.MulWithConfig(b, cfg)
		}
		e >>= 1
		if e == 0 {
			return result
		}
		b = b.MulWithConfig(b, cfg)
	}
}

// PowNat returns x**e for an arbitrary-precision exponent. Only bases 0 and
// 1 can be raised to exponents that do not fit an int.
func (x Nat) PowNat(e Nat) Nat {
	if u, ok := e.Uint64(); ok && u <= uint64(maxInt) {
		return x.Pow(int(u))
	}
	switch {
	case x.IsZero():
		return Nat{}
	case x.Equal(natOne):
		return natOne
	}
	panic(ErrShiftTooLarge)
}

// ExpMod returns x**e mod m. It panics with ErrDivisionByZero when m is zero.
func (x Nat) ExpMod(e, m Nat) Nat {
	return x.ExpModWithConfig(e, m, DefaultMulConfig())
}

// ExpModWithConfig is ExpMod with explicit multiplication tuning.
func (x Nat) ExpModWithConfig(e, m Nat, cfg MulConfig) Nat {
	if m.IsZero() {
		panic(ErrDivisionByZero)
	}
	if m.Equal(natOne) {
		return Nat{}
	}
	shift := m.LeadingZeros()
	norm := m.Lsh(shift)

	result := natOne
	b := x.Clone()
	b.FormRemainder(norm, shift)
	n := e.BitLen()
	for i := range n {
		if e.Bit(i) {
			result = result.MulWithConfig(b, cfg)
			result.FormRemainder(norm, shift)
		}
		if i+1 < n {
			b = b.MulWithConfig(b, cfg)
			b.FormRemainder(norm, shift)
		}
	}
	return result
}

// Sqrt returns floor(sqrt(x)).
func (x Nat) Sqrt() Nat {
	if x.Cmp(natOne) <= 0 {
		return x.Clone()
	}
	// Newton's iteration from a start above the root decreases monotonically.
	z1 := natOne.Lsh(x.BitLen()/2 + 1)
	for {
		z2 := x.Quo(z1).Add(z1).Rsh(1)
		if z2.Cmp(z1) >= 0 {
			return z1
		}
		z1 = z2
	}
}

// Fibonacci returns the n-th Fibonacci number with F(0) = 0.
func Fibonacci(n int) Nat {
	if n < 0 {
		panic("bignum: negative Fibonacci index")
	}
	// Fast doubling: F(2k) = F(k)(2F(k+1) - F(k)), F(2k+1) = F(k)^2 + F(k+1)^2.
	a, b := Nat{}, natOne
	for i := bitLenInt(n) - 1; i >= 0; i-- {
		c := a.Mul(b.Lsh(1).Sub(a))
		d := a.Mul(a).Add(b.Mul(b))
		if n>>uint(i)&1 == 0 {
			a, b = c, d
		} else {
			a, b = d, c.Add(d)
		}
	}
	return a
}

// Factorial returns n! computed by a balanced product tree.
func Factorial(n int) Nat {
	if n < 0 {
		panic("bignum: negative factorial")
	}
	if n < 2 {
		return natOne
	}
	return productRange(2, n)
}

func productRange(lo, hi int) Nat {
	if hi-lo < 8 {
		p := NatFromUint64(uint64(lo)) //nolint:gosec // G115: lo is a positive int.
		for i := lo + 1; i <= hi; i++ {
			p = p.MulWord(Word(i)) //nolint:gosec // G115: i is a positive int.
		}
		return p
	}
	mid := lo + (hi-lo)/2
	return productRange(lo, mid).Mul(productRange(mid+1, hi))
}
