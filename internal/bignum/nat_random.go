package bignum

import "math/rand/v2"

// randomWord draws from r, or from the shared generator when r is nil.
func randomWord(r *rand.Rand) Word {
	if r == nil {
		return Word(rand.Uint64()) //nolint:gosec // G115: truncation to the word width is intended.
	}
	return Word(r.Uint64()) //nolint:gosec // G115: truncation to the word width is intended.
}

// RandomNatMaxWidth returns a uniformly distributed value in [0, 2^width).
// A nil r uses the package-level generator.
func RandomNatMaxWidth(r *rand.Rand, width int) Nat {
	if width <= 0 {
		return Nat{}
	}
	n := (width + WordBits - 1) / WordBits
	w := make([]Word, n)
	for i := range w {
		w[i] = randomWord(r)
	}
	if extra := n*WordBits - width; extra > 0 {
		w[n-1] &= wordMax >> uint(extra)
	}
	return natFromVec(w)
}

// RandomNatExactWidth returns a uniformly distributed value whose bit
// length is exactly width.
func RandomNatExactWidth(r *rand.Rand, width int) Nat {
	if width <= 0 {
		return Nat{}
	}
	x := RandomNatMaxWidth(r, width-1)
	x.SetBit(width - 1)
	return x
}

// RandomNatLessThan returns a uniformly distributed value in [0, limit).
// It panics with ErrDivisionByZero when limit is zero.
func RandomNatLessThan(r *rand.Rand, limit Nat) Nat {
	if limit.IsZero() {
		panic(ErrDivisionByZero)
	}
	width := limit.BitLen()
	for {
		x := RandomNatMaxWidth(r, width)
		if x.Cmp(limit) < 0 {
			return x
		}
	}
}
