package bignum

// MulWord returns x * w.
func (x Nat) MulWord(w Word) Nat {
	xs := x.limbs()
	if len(xs) == 0 || w == 0 {
		return Nat{}
	}
	z := make([]Word, len(xs)+1)
	z[len(xs)] = mulAddVWW(z[:len(xs)], xs, w, 0)
	return natFromVec(z)
}

// Mul returns x * y using the default multiplication tiers.
func (x Nat) Mul(y Nat) Nat {
	return x.MulWithConfig(y, DefaultMulConfig())
}

// MulWithConfig returns x * y using cfg to pick between the schoolbook and
// Karatsuba algorithms.
func (x Nat) MulWithConfig(y Nat, cfg MulConfig) Nat {
	return natFromVec(mulVec(x.limbs(), y.limbs(), cfg.limit()))
}

// Square returns x * x.
func (x Nat) Square() Nat {
	return x.Mul(x)
}

// mulVec returns the trimmed product of trimmed x and y in a fresh slice.
func mulVec(x, y []Word, limit int) []Word {
	if len(x) < len(y) {
		x, y = y, x
	}
	switch {
	case len(y) == 0:
		return nil
	case len(y) == 1:
		z := make([]Word, len(x)+1)
		z[len(x)] = mulAddVWW(z[:len(x)], x, y[0], 0)
		return trim(z)
	case len(y) <= limit:
		return basicMul(x, y)
	}
	return karatsuba(x, y, limit)
}

// basicMul is schoolbook multiplication.
func basicMul(x, y []Word) []Word {
	z := make([]Word, len(x)+len(y))
	for i, d := range y {
		if d != 0 {
			z[len(x)+i] = addMulVVW(z[i:i+len(x)], x, d)
		}
	}
	return trim(z)
}

// karatsuba multiplies len(x) >= len(y) >= 2 by splitting x at half its
// length. When y fits below the split the product is assembled from two
// half products instead.
func karatsuba(x, y []Word, limit int) []Word {
	s := (len(x) + 1) / 2
	x0, x1 := trim(x[:s]), x[s:]
	z := make([]Word, len(x)+len(y)+1)
	if len(y) <= s {
		addAt(z, mulVec(x0, y, limit), 0)
		addAt(z, mulVec(x1, y, limit), s)
		return trim(z)
	}
	y0, y1 := trim(y[:s]), y[s:]

	z0 := mulVec(x0, y0, limit)
	z2 := mulVec(x1, y1, limit)
	z1 := mulVec(addVec(x0, x1), addVec(y0, y1), limit)
	z1 = subInPlace(z1, z0)
	z1 = subInPlace(z1, z2)

	addAt(z, z0, 0)
	addAt(z, z1, s)
	addAt(z, z2, 2*s)
	return trim(z)
}
