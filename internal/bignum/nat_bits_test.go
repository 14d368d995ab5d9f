package bignum

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNatBitwiseMatchesBig(t *testing.T) {
	r := newTestRand(5)
	for range 300 {
		x, y := randomOperand(r, 5), randomOperand(r, 5)
		bx, by := toBig(x), toBig(y)
		checkNat(t, "and", x.And(y), new(big.Int).And(bx, by))
		checkNat(t, "andnot", x.AndNot(y), new(big.Int).AndNot(bx, by))
		checkNat(t, "or", x.Or(y), new(big.Int).Or(bx, by))
		checkNat(t, "xor", x.Xor(y), new(big.Int).Xor(bx, by))
	}
}

func TestNatNot(t *testing.T) {
	tests := []struct {
		in, want []Word
	}{
		{nil, nil},
		{[]Word{0, 1}, []Word{wordMax}},
		{[]Word{wordMax, wordMax}, nil},
		{[]Word{1, 2, 3}, []Word{^Word(1), ^Word(2), ^Word(3)}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, NatFromWords(tt.in).Not().Words()); diff != "" {
			t.Fatalf("not(%v) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestNatShiftsMatchBig(t *testing.T) {
	r := newTestRand(6)
	for range 300 {
		x := randomOperand(r, 5)
		s := r.IntN(5 * WordBits)
		bx := toBig(x)
		checkNat(t, "lsh", x.Lsh(s), new(big.Int).Lsh(bx, uint(s)))
		checkNat(t, "rsh", x.Rsh(s), new(big.Int).Rsh(bx, uint(s)))
		checkNat(t, "negative lsh", x.Lsh(-s), new(big.Int).Rsh(bx, uint(s)))
		checkNat(t, "negative rsh", x.Rsh(-s), new(big.Int).Lsh(bx, uint(s)))
	}
}

func TestNatShiftExtremes(t *testing.T) {
	x := NatFromWord(5)
	if !x.Lsh(-maxInt - 1).IsZero() {
		t.Fatalf("shift by min int should clear the value")
	}
	if !x.Rsh(maxInt).IsZero() {
		t.Fatalf("shift right by max int should clear the value")
	}
	expectPanic(t, ErrShiftTooLarge, func() { x.Rsh(-maxInt - 1) })
}

func TestNatBitQueries(t *testing.T) {
	x := NatFromWords([]Word{0, 0b1011 << 4})
	if got := x.BitLen(); got != WordBits+8 {
		t.Fatalf("bitlen = %d", got)
	}
	if got := x.TrailingZeros(); got != WordBits+4 {
		t.Fatalf("trailing zeros = %d", got)
	}
	if got := x.LeadingZeros(); got != WordBits-8 {
		t.Fatalf("leading zeros = %d", got)
	}
	var zero Nat
	if zero.BitLen() != 0 || zero.TrailingZeros() != 0 || zero.LeadingZeros() != 0 {
		t.Fatalf("zero bit queries are not zero")
	}
	for i, want := range map[int]bool{WordBits + 4: true, WordBits + 5: true, WordBits + 6: false, 0: false, -1: false, 1000: false} {
		if x.Bit(i) != want {
			t.Fatalf("bit(%d) = %v", i, !want)
		}
	}
}

func TestNatSetClearBit(t *testing.T) {
	var n Nat
	n.SetBit(3 * WordBits)
	if n.BitLen() != 3*WordBits+1 || n.Count() != 4 {
		t.Fatalf("set high bit: bitlen %d count %d", n.BitLen(), n.Count())
	}
	n.SetBit(0)
	n.ClearBit(3 * WordBits)
	if diff := cmp.Diff([]Word{1}, n.Words()); diff != "" {
		t.Fatalf("clear bit mismatch (-want +got):\n%s", diff)
	}
	n.ClearBit(10 * WordBits)
	n.ClearBit(-1)
	if !n.Equal(NatFromWord(1)) {
		t.Fatalf("out of range clear changed value to %s", n)
	}
}
