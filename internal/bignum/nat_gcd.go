package bignum

var natOne = NatFromWord(1)

// GCD returns the greatest common divisor of x and y. GCD(0, 0) is 0.
func (x Nat) GCD(y Nat) Nat {
	a, b := x.Clone(), y.Clone()
	for !b.IsZero() {
		shift := b.LeadingZeros()
		a.FormRemainder(b.Lsh(shift), shift)
		a, b = b, a
	}
	return a
}

// Inverse returns the multiplicative inverse of x modulo m in [0, m).
// It reports false when x and m are not coprime or m <= 1.
func (x Nat) Inverse(m Nat) (Nat, bool) {
	if m.Cmp(natOne) <= 0 {
		return Nat{}, false
	}
	t1, t2 := Int{}, IntFromInt64(1)
	r1, r2 := m, x
	for !r2.IsZero() {
		q, r := r1.QuoRem(r2)
		t1, t2 = t2, t1.Sub(IntFromNat(Plus, q).Mul(t2))
		r1, r2 = r2, r
	}
	if r1.Cmp(natOne) != 0 {
		return Nat{}, false
	}
	inv := t1.mag.Rem(m)
	if t1.neg && !inv.IsZero() {
		inv = m.Sub(inv)
	}
	return inv, true
}
