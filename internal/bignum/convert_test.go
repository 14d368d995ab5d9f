package bignum

import (
	"bytes"
	"errors"
	"math"
	"math/big"
	"testing"
)

func TestNatBytes(t *testing.T) {
	tests := []struct {
		in   []byte
		want []byte
	}{
		{nil, []byte{}},
		{[]byte{0, 0, 0}, []byte{}},
		{[]byte{1}, []byte{1}},
		{[]byte{0, 0, 1, 2}, []byte{1, 2}},
		{[]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
	}
	for _, tt := range tests {
		got := NatFromBytes(tt.in).Bytes()
		if !bytes.Equal(got, tt.want) {
			t.Fatalf("bytes(%x) = %x, want %x", tt.in, got, tt.want)
		}
	}
	r := newTestRand(18)
	for range 100 {
		x := randomOperand(r, 5)
		if got, want := x.Bytes(), toBig(x).Bytes(); !bytes.Equal(got, want) {
			t.Fatalf("bytes(%s) = %x, want %x", x, got, want)
		}
	}
}

func TestNatFillBytes(t *testing.T) {
	x := NatFromWord(0x0102)
	buf := []byte{9, 9, 9, 9}
	if got := x.FillBytes(buf); !bytes.Equal(got, []byte{0, 0, 1, 2}) {
		t.Fatalf("fill = %x", got)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for short buffer")
		}
	}()
	x.FillBytes(make([]byte, 1))
}

func TestNatUint64Int(t *testing.T) {
	if u, ok := NatFromUint64(math.MaxUint64).Uint64(); !ok || u != math.MaxUint64 {
		t.Fatalf("uint64 = %d %v", u, ok)
	}
	if _, ok := natOne.Lsh(64).Uint64(); ok {
		t.Fatalf("2**64 fits uint64")
	}
	if _, ok := NatFromUint64(math.MaxUint64).Int(); ok {
		t.Fatalf("max uint64 fits int")
	}
	if v, ok := NatFromWord(42).Int(); !ok || v != 42 {
		t.Fatalf("int = %d %v", v, ok)
	}
}

func TestNatFromInt64(t *testing.T) {
	if _, ok := NatFromInt64Exact(-1); ok {
		t.Fatalf("-1 converted exactly")
	}
	if n, ok := NatFromInt64Exact(math.MaxInt64); !ok || n.String() != "9223372036854775807" {
		t.Fatalf("max int64 = %s %v", n, ok)
	}
	if !NatClampingInt64(-5).IsZero() {
		t.Fatalf("clamping negative is not zero")
	}
	if got := NatTruncatingInt64(-1).String(); got != "18446744073709551615" {
		t.Fatalf("truncating -1 = %s", got)
	}
}

func TestNatFloat64(t *testing.T) {
	tests := []struct {
		x    Nat
		want float64
	}{
		{Nat{}, 0},
		{NatFromWord(1), 1},
		{NatFromUint64(1 << 53), 1 << 53},
		{NatFromUint64(1<<53 + 1), 1 << 53},
		{NatFromUint64(1<<53 + 3), 1<<53 + 4},
		{NatFromUint64(math.MaxUint64), 1 << 64},
		{natOne.Lsh(1024), math.Inf(1)},
		{natOne.Lsh(1023), math.Ldexp(1, 1023)},
	}
	for _, tt := range tests {
		if got := tt.x.Float64(); got != tt.want {
			t.Fatalf("float64(%s) = %v, want %v", tt.x, got, tt.want)
		}
	}
	r := newTestRand(19)
	for range 300 {
		x := randomOperand(r, 20)
		want, _ := new(big.Float).SetInt(toBig(x)).Float64()
		if got := x.Float64(); got != want {
			t.Fatalf("float64(%s) = %v, want %v", x, got, want)
		}
		want32, _ := new(big.Float).SetInt(toBig(x)).Float32()
		if got := x.Float32(); got != want32 && !(math.IsInf(float64(got), 1) && math.IsInf(float64(want32), 1)) {
			t.Fatalf("float32(%s) = %v, want %v", x, got, want32)
		}
	}
}

func TestNatFromFloat64(t *testing.T) {
	tests := []struct {
		f     float64
		want  string
		exact bool
	}{
		{0, "0", true},
		{-0.0, "0", true},
		{0.5, "0", false},
		{-0.5, "0", false},
		{-0.999, "0", false},
		{1, "1", true},
		{1.5, "1", false},
		{1e20, "100000000000000000000", true},
		{math.Ldexp(1, 100), "1267650600228229401496703205376", true},
		{math.MaxFloat64, new(big.Int).Lsh(big.NewInt(1<<53-1), 971).String(), true},
	}
	for _, tt := range tests {
		n, err := NatFromFloat64(tt.f)
		if err != nil || n.String() != tt.want {
			t.Fatalf("from float %v = %s, %v", tt.f, n, err)
		}
		e, ok := NatFromFloat64Exact(tt.f)
		if ok != tt.exact || (ok && e.String() != tt.want) {
			t.Fatalf("exact from float %v = %s, %v", tt.f, e, ok)
		}
	}
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := NatFromFloat64(f); !errors.Is(err, ErrNotFinite) {
			t.Fatalf("from %v error = %v", f, err)
		}
	}
	if _, err := NatFromFloat64(-1); !errors.Is(err, ErrNegative) {
		t.Fatalf("from -1 error = %v", err)
	}
	if _, ok := NatFromFloat64Exact(-2); ok {
		t.Fatalf("-2 converted exactly")
	}
}
