package bignum

import (
	"math/big"
	"math/rand/v2"
	"testing"
)

// math/big serves as the reference implementation in randomized tests.

func toBig(x Nat) *big.Int {
	return new(big.Int).SetBytes(x.Bytes())
}

func toBigInt(x Int) *big.Int {
	b := toBig(x.mag)
	if x.neg {
		b.Neg(b)
	}
	return b
}

func fromBig(b *big.Int) Nat {
	return NatFromBytes(b.Bytes())
}

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randomOperand returns a value of up to words words with a bias toward
// all-ones and sparse words, which exercise carry and borrow chains.
func randomOperand(r *rand.Rand, words int) Nat {
	if words == 0 {
		return Nat{}
	}
	w := make([]Word, r.IntN(words)+1)
	for i := range w {
		switch r.IntN(4) {
		case 0:
			w[i] = wordMax
		case 1:
			w[i] = 0
		default:
			w[i] = randomWord(r)
		}
	}
	return NatFromWords(w)
}

func randomSigned(r *rand.Rand, words int) Int {
	return IntFromNat(Sign(r.IntN(2) == 0), randomOperand(r, words))
}

func checkNat(t *testing.T, what string, got Nat, want *big.Int) {
	t.Helper()
	if toBig(got).Cmp(want) != 0 {
		t.Fatalf("%s = %s, want %s", what, got.Text(16), want.Text(16))
	}
}

func checkInt(t *testing.T, what string, got Int, want *big.Int) {
	t.Helper()
	if toBigInt(got).Cmp(want) != 0 {
		t.Fatalf("%s = %s, want %s", what, got.Text(16), want.Text(16))
	}
}
