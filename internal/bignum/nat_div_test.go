package bignum

import (
	"math/big"
	"testing"
)

func TestNatQuoRemMatchesBig(t *testing.T) {
	r := newTestRand(4)
	for range 1000 {
		x, y := randomOperand(r, 12), randomOperand(r, 6)
		if y.IsZero() {
			continue
		}
		bq, br := new(big.Int).QuoRem(toBig(x), toBig(y), new(big.Int))
		q, rem := x.QuoRem(y)
		checkNat(t, "quo", q, bq)
		checkNat(t, "rem", rem, br)

		shift := y.LeadingZeros()
		f := x.Clone()
		f.FormRemainder(y.Lsh(shift), shift)
		checkNat(t, "formremainder", f, br)
	}
}

// Divisors whose top words force the add-back step of the long division.
func TestNatQuoRemAddBack(t *testing.T) {
	tests := []struct{ x, y []Word }{
		{[]Word{0, 0, 1 << (WordBits - 1), 0x7fff_ffff}, []Word{1, 0, 1 << (WordBits - 1)}},
		{[]Word{0, 0, 0, 1 << (WordBits - 2)}, []Word{1, 0, 1 << (WordBits - 1)}},
		{[]Word{3, 0, 1 << (WordBits - 1)}, []Word{1, 0, 1 << (WordBits - 1)}},
		{[]Word{0, wordMax, wordMax - 1}, []Word{wordMax, wordMax}},
		{[]Word{wordMax, wordMax, wordMax, wordMax}, []Word{1, wordMax}},
		{[]Word{0, 0, 0, 0, 1}, []Word{wordMax, wordMax, wordMax}},
	}
	for _, tt := range tests {
		x, y := NatFromWords(tt.x), NatFromWords(tt.y)
		bq, br := new(big.Int).QuoRem(toBig(x), toBig(y), new(big.Int))
		q, r := x.QuoRem(y)
		checkNat(t, "quo", q, bq)
		checkNat(t, "rem", r, br)
	}
}

func TestNatQuoRemWord(t *testing.T) {
	x := mustNat(t, "123456789012345678901234567890")
	q, r := x.QuoRemWord(1000)
	if q.String() != "123456789012345678901234567" || r != 890 {
		t.Fatalf("quorem word = %s r %d", q, r)
	}
	if x.RemWord(7) != Word(new(big.Int).Mod(toBig(x), big.NewInt(7)).Uint64()) {
		t.Fatalf("remword mismatch")
	}
}

func TestNatDivideByZeroPanics(t *testing.T) {
	x := NatFromWord(5)
	expectPanic(t, ErrDivisionByZero, func() { x.QuoRem(Nat{}) })
	expectPanic(t, ErrDivisionByZero, func() { x.QuoRemWord(0) })
	expectPanic(t, ErrDivisionByZero, func() { x.RemWord(0) })
	expectPanic(t, ErrDivisionByZero, func() { x.FormRemainder(Nat{}, 0) })
}

func TestNatQuoRemSmallDividend(t *testing.T) {
	x := NatFromWord(3)
	y := NatFromWords([]Word{1, 1, 1})
	q, r := x.QuoRem(y)
	if !q.IsZero() || !r.Equal(x) {
		t.Fatalf("3 / big = %s r %s", q, r)
	}
}
