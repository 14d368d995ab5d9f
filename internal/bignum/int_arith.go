package bignum

// Add returns x + y.
func (x Int) Add(y Int) Int {
	if x.neg == y.neg {
		return IntFromNat(x.Sign(), x.mag.Add(y.mag))
	}
	if x.mag.Cmp(y.mag) >= 0 {
		return IntFromNat(x.Sign(), x.mag.Sub(y.mag))
	}
	return IntFromNat(y.Sign(), y.mag.Sub(x.mag))
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	return x.Add(y.Neg())
}

// Mul returns x * y.
func (x Int) Mul(y Int) Int {
	return x.MulWithConfig(y, DefaultMulConfig())
}

// MulWithConfig is Mul with explicit multiplication tuning.
func (x Int) MulWithConfig(y Int, cfg MulConfig) Int {
	return IntFromNat(Sign(x.neg != y.neg), x.mag.MulWithConfig(y.mag, cfg))
}

// QuoRem returns the truncated quotient and the remainder, which takes the
// sign of x. It panics with ErrDivisionByZero when y is zero.
func (x Int) QuoRem(y Int) (q, r Int) {
	qm, rm := x.mag.QuoRem(y.mag)
	return IntFromNat(Sign(x.neg != y.neg), qm), IntFromNat(x.Sign(), rm)
}

// Quo returns x / y truncated toward zero.
func (x Int) Quo(y Int) Int {
	q, _ := x.QuoRem(y)
	return q
}

// Rem returns the remainder of truncated division; it has the sign of x.
func (x Int) Rem(y Int) Int {
	_, r := x.QuoRem(y)
	return r
}

// Mod returns x modulo |m|, always in [0, |m|).
func (x Int) Mod(m Int) Int {
	r := x.mag.Rem(m.mag)
	if x.neg && !r.IsZero() {
		r = m.mag.Sub(r)
	}
	return IntFromNat(Plus, r)
}

// Pow returns x**e. For negative e, only ±1 yield a non-zero result, and a
// zero base panics with ErrDivisionByZero.
func (x Int) Pow(e int) Int {
	return x.PowWithConfig(e, DefaultMulConfig())
}

// PowWithConfig is Pow with explicit multiplication tuning.
func (x Int) PowWithConfig(e int, cfg MulConfig) Int {
	return IntFromNat(Sign(x.neg && e&1 != 0), x.mag.PowWithConfig(e, cfg))
}

// ExpMod returns x**e modulo |m| in [0, |m|). It panics with
// ErrDivisionByZero when m is zero or when x is zero and e negative.
func (x Int) ExpMod(e, m Int) Int {
	return x.ExpModWithConfig(e, m, DefaultMulConfig())
}

// ExpModWithConfig is ExpMod with explicit multiplication tuning.
func (x Int) ExpModWithConfig(e, m Int, cfg MulConfig) Int {
	switch {
	case m.IsZero():
		panic(ErrDivisionByZero)
	case m.mag.Equal(natOne):
		return Int{}
	case e.IsZero():
		return IntFromInt64(1)
	case !e.neg && e.mag.Equal(natOne):
		return x.Mod(m)
	case e.neg:
		if x.IsZero() {
			panic(ErrDivisionByZero)
		}
		if !x.mag.Equal(natOne) {
			return Int{}
		}
		if !x.neg || !e.mag.IsOdd() {
			return IntFromInt64(1)
		}
		return IntFromNat(Plus, m.mag.Sub(natOne))
	}
	p := x.mag.ExpModWithConfig(e.mag, m.mag, cfg)
	if !x.neg || !e.mag.IsOdd() || p.IsZero() {
		return IntFromNat(Plus, p)
	}
	return IntFromNat(Plus, m.mag.Sub(p))
}

// GCD returns the non-negative greatest common divisor of x and y.
func (x Int) GCD(y Int) Int {
	return IntFromNat(Plus, x.mag.GCD(y.mag))
}

// Inverse returns the inverse of x modulo |m| in [0, |m|), or false when
// none exists.
func (x Int) Inverse(m Int) (Int, bool) {
	inv, ok := x.mag.Inverse(m.mag)
	if !ok {
		return Int{}, false
	}
	if x.neg && !inv.IsZero() {
		inv = m.mag.Sub(inv)
	}
	return IntFromNat(Plus, inv), true
}

// Sqrt returns floor(sqrt(x)). It panics with ErrNegative for x < 0.
func (x Int) Sqrt() Int {
	if x.neg {
		panic(ErrNegative)
	}
	return IntFromNat(Plus, x.mag.Sqrt())
}

// IsPrime reports whether x is a positive prime.
func (x Int) IsPrime() bool {
	return !x.neg && x.mag.IsPrime()
}

// IsStrongProbablePrime runs one Miller-Rabin round on a positive x.
func (x Int) IsStrongProbablePrime(base Int) bool {
	return !x.neg && x.mag.IsStrongProbablePrime(base.mag)
}

// Advanced returns x + d.
func (x Int) Advanced(d Int) Int { return x.Add(d) }

// Distance returns y - x.
func (x Int) Distance(y Int) Int { return y.Sub(x) }
