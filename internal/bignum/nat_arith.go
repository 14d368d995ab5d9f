package bignum

// Add returns x + y.
func (x Nat) Add(y Nat) Nat {
	return natFromVec(addVec(x.limbs(), y.limbs()))
}

// AddWord returns x + w.
func (x Nat) AddWord(w Word) Nat {
	xs := x.limbs()
	z := make([]Word, len(xs)+1)
	if len(xs) == 0 {
		z[0] = w
		return natFromVec(z)
	}
	z[len(xs)] = addVW(z[:len(xs)], xs, w)
	return natFromVec(z)
}

// Sub returns x - y. It panics with ErrArithmeticUnderflow when y > x.
func (x Nat) Sub(y Nat) Nat {
	xs, ys := x.limbs(), y.limbs()
	if cmpVec(xs, ys) < 0 {
		panic(ErrArithmeticUnderflow)
	}
	return natFromVec(subVec(xs, ys))
}

// SubWord returns x - w. It panics with ErrArithmeticUnderflow when w > x.
func (x Nat) SubWord(w Word) Nat {
	return x.Sub(NatFromWord(w))
}

// SubReportingOverflow returns x - y wrapped modulo 2^(W*max(count)) and
// whether the subtraction borrowed out of the top word.
func (x Nat) SubReportingOverflow(y Nat) (Nat, bool) {
	xs, ys := x.limbs(), y.limbs()
	n := max(len(xs), len(ys))
	z := make([]Word, n)
	var b Word
	for i := range n {
		var xi, yi Word
		if i < len(xs) {
			xi = xs[i]
		}
		if i < len(ys) {
			yi = ys[i]
		}
		z[i], b = SubWithBorrow(xi, yi, b)
	}
	return natFromVec(z), b != 0
}

// AddShifted adds x*2^(shift*W) to n in place.
func (n *Nat) AddShifted(x Nat, shift int) {
	if shift < 0 {
		panic("bignum: negative word shift")
	}
	xs := x.limbs()
	if len(xs) == 0 {
		return
	}
	w := n.fresh(max(n.Count(), shift+len(xs)) + 1)
	addAt(w, xs, shift)
	n.store(w)
}

// Increment adds one in place.
func (n *Nat) Increment() { n.AddShifted(NatFromWord(1), 0) }

// Decrement subtracts one in place. It panics with ErrArithmeticUnderflow on zero.
func (n *Nat) Decrement() {
	if n.IsZero() {
		panic(ErrArithmeticUnderflow)
	}
	n.SubtractWordShifted(1, 0)
}

// SubtractWordShifted subtracts w*2^(shift*W) in place, wrapping within the
// current word count, and reports whether a borrow escaped the top word.
func (n *Nat) SubtractWordShifted(w Word, shift int) (overflow bool) {
	return n.SubtractShifted(NatFromWord(w), shift)
}

// SubtractShifted subtracts x*2^(shift*W) in place, wrapping within the
// current word count, and reports whether a borrow escaped the top word.
func (n *Nat) SubtractShifted(x Nat, shift int) (overflow bool) {
	if shift < 0 {
		panic("bignum: negative word shift")
	}
	xs := x.limbs()
	if len(xs) == 0 {
		return false
	}
	c := n.Count()
	w := n.fresh(c)
	var b Word
	for i := 0; i < len(xs) || b != 0; i++ {
		j := shift + i
		if j >= c {
			overflow = true
			break
		}
		var xi Word
		if i < len(xs) {
			xi = xs[i]
		}
		w[j], b = SubWithBorrow(w[j], xi, b)
	}
	n.store(w)
	return overflow
}

// Advanced returns x + d. It panics with ErrArithmeticUnderflow when the
// result would be negative.
func (x Nat) Advanced(d Int) Nat {
	if d.neg {
		return x.Sub(d.mag)
	}
	return x.Add(d.mag)
}

// Distance returns y - x as a signed value.
func (x Nat) Distance(y Nat) Int {
	return IntFromNat(Plus, y).Sub(IntFromNat(Plus, x))
}
