package bignum

// QuoRem returns the quotient and remainder of x / y. It panics with
// ErrDivisionByZero when y is zero.
func (x Nat) QuoRem(y Nat) (q, r Nat) {
	qs, rs := divVec(x.limbs(), y.limbs())
	return natFromVec(qs), natFromVec(rs)
}

// Quo returns x / y rounded toward zero.
func (x Nat) Quo(y Nat) Nat {
	q, _ := x.QuoRem(y)
	return q
}

// Rem returns x mod y.
func (x Nat) Rem(y Nat) Nat {
	_, r := x.QuoRem(y)
	return r
}

// QuoRemWord divides x by a single word.
func (x Nat) QuoRemWord(w Word) (Nat, Word) {
	if w == 0 {
		panic(ErrDivisionByZero)
	}
	xs := x.limbs()
	q := make([]Word, len(xs))
	r := divWVW(q, 0, xs, w)
	return natFromVec(q), r
}

// RemWord returns x mod w without materializing the quotient.
func (x Nat) RemWord(w Word) Word {
	if w == 0 {
		panic(ErrDivisionByZero)
	}
	xs := x.limbs()
	rec := reciprocalWord(w)
	var r Word
	for i := len(xs) - 1; i >= 0; i-- {
		_, r = divWW(r, xs[i], w, rec)
	}
	return r
}

// FormRemainder replaces n with n mod (divisor >> shift). The divisor must
// already be normalized: shifted left by shift bits so its top bit is set.
// Callers dividing repeatedly by the same modulus normalize it once.
func (n *Nat) FormRemainder(divisor Nat, shift int) {
	v := divisor.limbs()
	if len(v) == 0 {
		panic(ErrDivisionByZero)
	}
	if v[len(v)-1]>>(WordBits-1) == 0 || shift < 0 || shift >= WordBits {
		panic("bignum: FormRemainder divisor is not normalized")
	}
	x := n.limbs()
	s := uint(shift)
	if len(v) == 1 {
		d := v[0] >> s
		q := make([]Word, len(x))
		n.store([]Word{divWVW(q, 0, x, d)})
		return
	}
	u := make([]Word, max(len(x), len(v))+1)
	u[len(x)] = shlVU(u[:len(x)], x, s)
	if cmpVec(trim(u), v) < 0 {
		return
	}
	q := make([]Word, len(u)-len(v))
	divKnuth(q, u, v)
	r := make([]Word, len(v))
	shrVU(r, u[:len(v)], s)
	n.store(r)
}

// divVec returns fresh trimmed q and r with x = q*y + r.
func divVec(x, y []Word) (q, r []Word) {
	if len(y) == 0 {
		panic(ErrDivisionByZero)
	}
	if cmpVec(x, y) < 0 {
		return nil, cloneWords(x)
	}
	if len(y) == 1 {
		q = make([]Word, len(x))
		rw := divWVW(q, 0, x, y[0])
		return trim(q), trim([]Word{rw})
	}
	s := nlz(y[len(y)-1])
	v := make([]Word, len(y))
	shlVU(v, y, s)
	u := make([]Word, len(x)+1)
	u[len(x)] = shlVU(u[:len(x)], x, s)
	q = make([]Word, len(u)-len(v))
	divKnuth(q, u, v)
	r = make([]Word, len(v))
	shrVU(r, u[:len(v)], s)
	return trim(q), trim(r)
}

// divKnuth is Knuth's algorithm D. v is normalized with at least two
// words; u has at least len(v)+1 words and its top len(v) words are less
// than v. On return q holds the quotient and u[:len(v)] the normalized
// remainder.
func divKnuth(q, u, v []Word) {
	n := len(v)
	m := len(u) - n - 1
	vtop, vnext := v[n-1], v[n-2]
	rec := reciprocalWord(vtop)
	qv := make([]Word, n+1)

	for j := m; j >= 0; j-- {
		qhat := wordMax
		if ujn := u[j+n]; ujn != vtop {
			var rhat Word
			qhat, rhat = divWW(ujn, u[j+n-1], vtop, rec)
			x1, x2 := FullMultiply(qhat, vnext)
			ujn2 := u[j+n-2]
			for x1 > rhat || x1 == rhat && x2 > ujn2 {
				qhat--
				prev := rhat
				rhat += vtop
				if rhat < prev {
					break
				}
				x1, x2 = FullMultiply(qhat, vnext)
			}
		}

		qv[n] = mulAddVWW(qv[:n], v, qhat, 0)
		window := u[j : j+n+1]
		borrow := subVV(window, window, qv)
		for borrow != 0 {
			qhat--
			c := addVV(window[:n], window[:n], v)
			top := window[n] + c
			if top < window[n] {
				borrow = 0
			}
			window[n] = top
		}
		q[j] = qhat
	}
}
