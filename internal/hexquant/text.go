package hexquant

import (
	"fmt"

	"bigcalc/internal/bignum"
)

// Quantity is a Nat that marshals as a 0x quantity. An empty JSON string
// decodes as zero.
type Quantity struct {
	bignum.Nat
}

// MarshalText implements encoding.TextMarshaler.
func (q Quantity) MarshalText() ([]byte, error) {
	return []byte(EncodeQuantity(q.Nat)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(input []byte) error {
	if len(input) < 2 || input[0] != '"' || input[len(input)-1] != '"' {
		return ErrNonString
	}
	return q.UnmarshalText(input[1 : len(input)-1])
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quantity) UnmarshalText(input []byte) error {
	if len(input) == 0 {
		q.Nat = bignum.Nat{}
		return nil
	}
	x, err := DecodeQuantity(string(input))
	if err != nil {
		return err
	}
	q.Nat = x
	return nil
}

// HexOrDecimal is a Nat read from either a 0x hex or a decimal string. It
// implements encoding.TextUnmarshaler for configuration files and the
// pflag.Value interface for command-line flags.
type HexOrDecimal struct {
	bignum.Nat
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HexOrDecimal) UnmarshalText(input []byte) error {
	x, ok := ParseHexOrDecimal(string(input))
	if !ok {
		return fmt.Errorf("invalid hex or decimal integer %q", input)
	}
	h.Nat = x
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (h HexOrDecimal) MarshalText() ([]byte, error) {
	return []byte(EncodeQuantity(h.Nat)), nil
}

// Set implements pflag.Value.
func (h *HexOrDecimal) Set(s string) error { return h.UnmarshalText([]byte(s)) }

// Type implements pflag.Value.
func (h *HexOrDecimal) Type() string { return "integer" }
