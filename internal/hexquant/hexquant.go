// Package hexquant converts bignum values to and from the text and
// fixed-width binary forms used by JSON-RPC style collaborators: 0x
// quantities, hex-or-decimal strings and two's-complement ABI fields.
package hexquant

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/bits"

	"bigcalc/internal/bignum"
)

var (
	ErrEmptyString   = errors.New("empty hex string")
	ErrSyntax        = errors.New("invalid hex string")
	ErrMissingPrefix = errors.New("hex string without 0x prefix")
	ErrOddLength     = errors.New("hex string of odd length")
	ErrEmptyNumber   = errors.New("hex string \"0x\"")
	ErrLeadingZero   = errors.New("hex number with leading zero digits")
	ErrBig256Range   = errors.New("hex number > 256 bits")
	ErrNonString     = errors.New("quantity must be a JSON string")
	// ErrOverflow reports a value that does not fit a fixed-size field.
	ErrOverflow = errors.New("value does not fit in the field")
)

const wordBytes = bits.UintSize / 8

var (
	one     = bignum.NatFromWord(1)
	tt255   = one.Lsh(255)
	tt256   = one.Lsh(256)
	tt256m1 = tt256.SubWord(1)
)

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// EncodeQuantity renders x as a 0x-prefixed hex number without leading
// zeros. Zero is "0x0".
func EncodeQuantity(x bignum.Nat) string {
	return "0x" + x.Text(16)
}

func checkNumber(s string) (string, error) {
	if s == "" {
		return "", ErrEmptyString
	}
	if !has0xPrefix(s) {
		return "", ErrMissingPrefix
	}
	raw := s[2:]
	if raw == "" {
		return "", ErrEmptyNumber
	}
	if len(raw) > 1 && raw[0] == '0' {
		return "", ErrLeadingZero
	}
	return raw, nil
}

// DecodeQuantity parses a 0x quantity of at most 256 bits.
func DecodeQuantity(s string) (bignum.Nat, error) {
	raw, err := checkNumber(s)
	if err != nil {
		return bignum.Nat{}, err
	}
	if len(raw) > 64 {
		return bignum.Nat{}, ErrBig256Range
	}
	x, err := bignum.ParseNat(raw, 16)
	if err != nil {
		return bignum.Nat{}, ErrSyntax
	}
	return x, nil
}

// EncodeBytes renders b as 0x-prefixed hex.
func EncodeBytes(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// DecodeBytes parses 0x-prefixed hex data of even length.
func DecodeBytes(s string) ([]byte, error) {
	if s == "" {
		return nil, ErrEmptyString
	}
	if !has0xPrefix(s) {
		return nil, ErrMissingPrefix
	}
	raw := s[2:]
	if len(raw)%2 != 0 {
		return nil, ErrOddLength
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return nil, ErrSyntax
	}
	return b, nil
}

// ParseHexOrDecimal parses s as hex when it carries a 0x prefix and as
// decimal otherwise. Leading zeros are accepted and the empty string is
// zero.
func ParseHexOrDecimal(s string) (bignum.Nat, bool) {
	if s == "" {
		return bignum.Nat{}, true
	}
	var (
		x   bignum.Nat
		err error
	)
	if has0xPrefix(s) {
		x, err = bignum.ParseNat(s[2:], 16)
	} else {
		x, err = bignum.ParseNat(s, 10)
	}
	return x, err == nil
}

// ParseHexOrDecimal256 is ParseHexOrDecimal limited to 256 bits.
func ParseHexOrDecimal256(s string) (bignum.Nat, bool) {
	x, ok := ParseHexOrDecimal(s)
	if !ok || x.BitLen() > 256 {
		return bignum.Nat{}, false
	}
	return x, true
}

// PaddedBytes returns x big-endian, left-padded with zeros to at least n
// bytes.
func PaddedBytes(x bignum.Nat, n int) []byte {
	if x.BitLen()/8 >= n {
		return x.Bytes()
	}
	return x.FillBytes(make([]byte, n))
}

// U256 reduces x to its 256-bit two's-complement encoding.
func U256(x bignum.Int) bignum.Nat {
	return x.And(bignum.IntFromNat(bignum.Plus, tt256m1)).Magnitude()
}

// S256 interprets x, assumed below 2**256, as a signed 256-bit value.
func S256(x bignum.Nat) bignum.Int {
	v := bignum.IntFromNat(bignum.Plus, x)
	if x.Cmp(tt255) < 0 {
		return v
	}
	return v.Sub(bignum.IntFromNat(bignum.Plus, tt256))
}

// TwosComplementBytes writes x as a big-endian two's-complement field of
// exactly size bytes.
func TwosComplementBytes(x bignum.Int, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative field size %d", ErrOverflow, size)
	}
	if size == 0 {
		if !x.IsZero() {
			return nil, fmt.Errorf("%w: %s in 0 bytes", ErrOverflow, x)
		}
		return []byte{}, nil
	}
	if top := x.Rsh(8*size - 1); !top.IsZero() && !top.Equal(bignum.IntFromInt64(-1)) {
		return nil, fmt.Errorf("%w: %s in %d bytes", ErrOverflow, x, size)
	}
	words := x.Words()
	buf := make([]byte, size)
	for i := range size {
		w := words.WordAt(i / wordBytes)
		buf[size-1-i] = byte(w >> (8 * uint(i%wordBytes)))
	}
	return buf, nil
}

// IntFromTwosComplement reads b as a big-endian two's-complement value.
func IntFromTwosComplement(b []byte) bignum.Int {
	v := bignum.IntFromNat(bignum.Plus, bignum.NatFromBytes(b))
	if len(b) == 0 || b[0]&0x80 == 0 {
		return v
	}
	return v.Sub(bignum.IntFromNat(bignum.Plus, one.Lsh(8*len(b))))
}
