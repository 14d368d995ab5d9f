package hexquant

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"bigcalc/internal/bignum"
)

func hexNat(t *testing.T, s string) bignum.Nat {
	t.Helper()
	x, err := bignum.ParseNat(s, 16)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return x
}

func TestEncodeQuantity(t *testing.T) {
	tests := []struct {
		x    bignum.Nat
		want string
	}{
		{bignum.Nat{}, "0x0"},
		{bignum.NatFromWord(1), "0x1"},
		{bignum.NatFromWord(0x2f2), "0x2f2"},
		{hexNat(t, "112233445566778899aabbccddeeff"), "0x112233445566778899aabbccddeeff"},
	}
	for _, tt := range tests {
		if got := EncodeQuantity(tt.x); got != tt.want {
			t.Errorf("encode %s = %q, want %q", tt.x, got, tt.want)
		}
	}
}

func TestDecodeQuantity(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "", wantErr: ErrEmptyString},
		{in: "0", wantErr: ErrMissingPrefix},
		{in: "0x", wantErr: ErrEmptyNumber},
		{in: "0x01", wantErr: ErrLeadingZero},
		{in: "0xx", wantErr: ErrSyntax},
		{in: "0x1zz01", wantErr: ErrSyntax},
		{in: "0x" + "1" + strings.Repeat("0", 64), wantErr: ErrBig256Range},
		{in: "0x0", want: "0"},
		{in: "0x2", want: "2"},
		{in: "0x2F2", want: "2f2"},
		{in: "0X2F2", want: "2f2"},
		{in: "0xbBb", want: "bbb"},
		{in: "0x112233445566778899aabbccddeeff", want: "112233445566778899aabbccddeeff"},
		{in: "0x" + strings.Repeat("f", 64), want: strings.Repeat("f", 64)},
	}
	for _, tt := range tests {
		got, err := DecodeQuantity(tt.in)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("decode %q error = %v, want %v", tt.in, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("decode %q: %v", tt.in, err)
			continue
		}
		if got.Text(16) != tt.want {
			t.Errorf("decode %q = %s, want %s", tt.in, got.Text(16), tt.want)
		}
	}
}

func TestBytesHex(t *testing.T) {
	if got := EncodeBytes([]byte{0, 0xff, 2}); got != "0x00ff02" {
		t.Fatalf("encode bytes = %q", got)
	}
	if got := EncodeBytes(nil); got != "0x" {
		t.Fatalf("encode empty = %q", got)
	}
	errTests := []struct {
		in   string
		want error
	}{
		{"", ErrEmptyString},
		{"02", ErrMissingPrefix},
		{"0x0", ErrOddLength},
		{"0xxx", ErrSyntax},
		{"0x01zz01", ErrSyntax},
	}
	for _, tt := range errTests {
		if _, err := DecodeBytes(tt.in); !errors.Is(err, tt.want) {
			t.Errorf("decode bytes %q error = %v, want %v", tt.in, err, tt.want)
		}
	}
	b, err := DecodeBytes("0X00ff02")
	if err != nil || !bytes.Equal(b, []byte{0, 0xff, 2}) {
		t.Fatalf("decode bytes = %x, %v", b, err)
	}
}

func TestParseHexOrDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", "0", true},
		{"0", "0", true},
		{"0x0", "0", true},
		{"12345678", "12345678", true},
		{"0x12345678", "305419896", true},
		{"0X12345678", "305419896", true},
		{"0123456789", "123456789", true},
		{"0x00000000000000000000000000000000000000000000000000000000000000ff", "255", true},
		{"0x", "", false},
		{"x12", "", false},
		{"0xg", "", false},
		{"12a", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseHexOrDecimal(tt.in)
		if ok != tt.ok || (ok && got.String() != tt.want) {
			t.Errorf("parse %q = %s, %v; want %s, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	max256 := "115792089237316195423570985008687907853269984665640564039457584007913129639935"
	if got, ok := ParseHexOrDecimal256(max256); !ok || got.String() != max256 {
		t.Fatalf("max 256 = %s, %v", got, ok)
	}
	if _, ok := ParseHexOrDecimal256("115792089237316195423570985008687907853269984665640564039457584007913129639936"); ok {
		t.Fatalf("2**256 accepted")
	}
	if _, ok := ParseHexOrDecimal("115792089237316195423570985008687907853269984665640564039457584007913129639936"); !ok {
		t.Fatalf("unbounded parse rejected 2**256")
	}
}

func TestPaddedBytes(t *testing.T) {
	tests := []struct {
		x    bignum.Nat
		n    int
		want []byte
	}{
		{bignum.Nat{}, 0, []byte{}},
		{bignum.Nat{}, 3, []byte{0, 0, 0}},
		{bignum.NatFromWord(0x0102), 4, []byte{0, 0, 1, 2}},
		{bignum.NatFromWord(0x0102), 2, []byte{1, 2}},
		{bignum.NatFromWord(0x010203), 2, []byte{1, 2, 3}},
	}
	for _, tt := range tests {
		if got := PaddedBytes(tt.x, tt.n); !bytes.Equal(got, tt.want) {
			t.Errorf("padded(%s, %d) = %x, want %x", tt.x, tt.n, got, tt.want)
		}
	}
}

func TestU256S256(t *testing.T) {
	max256 := tt256m1
	minus1 := bignum.IntFromInt64(-1)
	tests := []struct {
		x    bignum.Int
		want bignum.Nat
	}{
		{bignum.Int{}, bignum.Nat{}},
		{bignum.IntFromInt64(1), bignum.NatFromWord(1)},
		{minus1, max256},
		{bignum.IntFromInt64(-2), max256.SubWord(1)},
		{bignum.IntFromNat(bignum.Plus, tt256), bignum.Nat{}},
		{bignum.IntFromNat(bignum.Plus, tt256.AddWord(5)), bignum.NatFromWord(5)},
		{bignum.IntFromNat(bignum.Minus, tt255), tt255},
	}
	for _, tt := range tests {
		if got := U256(tt.x); !got.Equal(tt.want) {
			t.Errorf("U256(%s) = %s, want %s", tt.x, got, tt.want)
		}
	}
	s256 := []struct {
		x    bignum.Nat
		want bignum.Int
	}{
		{bignum.Nat{}, bignum.Int{}},
		{bignum.NatFromWord(1), bignum.IntFromInt64(1)},
		{max256, minus1},
		{tt255, bignum.IntFromNat(bignum.Minus, tt255)},
		{tt255.SubWord(1), bignum.IntFromNat(bignum.Plus, tt255.SubWord(1))},
	}
	for _, tt := range s256 {
		if got := S256(tt.x); !got.Equal(tt.want) {
			t.Errorf("S256(%s) = %s, want %s", tt.x, got, tt.want)
		}
		if back := U256(S256(tt.x)); !back.Equal(tt.x) {
			t.Errorf("U256(S256(%s)) = %s", tt.x, back)
		}
	}
}

func TestTwosComplementBytes(t *testing.T) {
	tests := []struct {
		x    int64
		size int
		want []byte
	}{
		{0, 0, []byte{}},
		{0, 2, []byte{0, 0}},
		{1, 1, []byte{1}},
		{127, 1, []byte{0x7f}},
		{-1, 1, []byte{0xff}},
		{-128, 1, []byte{0x80}},
		{-1, 4, []byte{0xff, 0xff, 0xff, 0xff}},
		{-2, 3, []byte{0xff, 0xff, 0xfe}},
		{0x0102, 3, []byte{0, 1, 2}},
		{-0x0102, 3, []byte{0xff, 0xfe, 0xfe}},
		{-0x7fffffffffffffff, 12, []byte{0xff, 0xff, 0xff, 0xff, 0x80, 0, 0, 0, 0, 0, 0, 1}},
	}
	for _, tt := range tests {
		x := bignum.IntFromInt64(tt.x)
		got, err := TwosComplementBytes(x, tt.size)
		if err != nil {
			t.Errorf("field(%d, %d): %v", tt.x, tt.size, err)
			continue
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("field(%d, %d) = %x, want %x", tt.x, tt.size, got, tt.want)
		}
		if back := IntFromTwosComplement(got); tt.size > 0 && !back.Equal(x) {
			t.Errorf("read back %x = %s, want %d", got, back, tt.x)
		}
	}
	overflow := []struct {
		x    int64
		size int
	}{
		{128, 1},
		{-129, 1},
		{1, 0},
		{1 << 40, 5},
		{0, -1},
	}
	for _, tt := range overflow {
		if _, err := TwosComplementBytes(bignum.IntFromInt64(tt.x), tt.size); !errors.Is(err, ErrOverflow) {
			t.Errorf("field(%d, %d) error = %v", tt.x, tt.size, err)
		}
	}
}

func TestTwosComplementWideField(t *testing.T) {
	x := bignum.IntFromNat(bignum.Minus, tt255)
	b, err := TwosComplementBytes(x, 32)
	if err != nil {
		t.Fatal(err)
	}
	want := make([]byte, 32)
	want[0] = 0x80
	if !bytes.Equal(b, want) {
		t.Fatalf("min int256 = %x", b)
	}
	if !S256(bignum.NatFromBytes(b)).Equal(x) {
		t.Fatalf("S256 disagrees with field encoding")
	}
	if _, err := TwosComplementBytes(bignum.IntFromNat(bignum.Plus, tt255), 32); !errors.Is(err, ErrOverflow) {
		t.Fatalf("2**255 fit in int256: %v", err)
	}
}

func TestQuantityJSON(t *testing.T) {
	type payload struct {
		Gas Quantity `json:"gas"`
	}
	b, err := json.Marshal(payload{Gas: Quantity{bignum.NatFromWord(0x5208)}})
	if err != nil || string(b) != `{"gas":"0x5208"}` {
		t.Fatalf("marshal = %s, %v", b, err)
	}
	var p payload
	if err := json.Unmarshal([]byte(`{"gas":"0x2f2"}`), &p); err != nil || p.Gas.Text(16) != "2f2" {
		t.Fatalf("unmarshal = %s, %v", p.Gas, err)
	}
	if err := json.Unmarshal([]byte(`{"gas":""}`), &p); err != nil || !p.Gas.IsZero() {
		t.Fatalf("empty = %s, %v", p.Gas, err)
	}
	bad := []struct {
		in   string
		want error
	}{
		{`{"gas":10}`, ErrNonString},
		{`{"gas":"0"}`, ErrMissingPrefix},
		{`{"gas":"0x01"}`, ErrLeadingZero},
	}
	for _, tt := range bad {
		if err := json.Unmarshal([]byte(tt.in), &p); !errors.Is(err, tt.want) {
			t.Errorf("unmarshal %s error = %v, want %v", tt.in, err, tt.want)
		}
	}
}

func TestHexOrDecimalFlag(t *testing.T) {
	var h HexOrDecimal
	if err := h.Set("0xff"); err != nil || h.String() != "255" {
		t.Fatalf("set hex = %s, %v", h.String(), err)
	}
	if err := h.Set("1000"); err != nil || h.String() != "1000" {
		t.Fatalf("set decimal = %s, %v", h.String(), err)
	}
	if err := h.Set("0xzz"); err == nil {
		t.Fatalf("accepted bad hex")
	}
	if h.Type() != "integer" {
		t.Fatalf("type = %q", h.Type())
	}
	text, err := h.MarshalText()
	if err != nil || string(text) != "0x3e8" {
		t.Fatalf("marshal = %s, %v", text, err)
	}
}
