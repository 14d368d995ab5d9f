// Package numcodec persists bignum values as a two-element
// [sign-marker, big-endian magnitude] pair, in msgpack or JSON.
package numcodec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"bigcalc/internal/bignum"
)

var (
	// ErrInvalidSign reports a sign marker other than "+" or "-".
	ErrInvalidSign = errors.New("invalid big integer sign")
	// ErrNegativeUnsigned reports a "-" marker decoded into a Nat.
	ErrNegativeUnsigned = errors.New("unsigned type cannot hold a negative value")
	// ErrShape reports a payload that is not a two-element array.
	ErrShape = errors.New("big integer payload must be a [sign, bytes] pair")
)

const (
	signPlus  = "+"
	signMinus = "-"
)

// Nat wraps bignum.Nat with msgpack and JSON encodings. It is always
// written with the "+" marker.
type Nat struct {
	bignum.Nat
}

// Int wraps bignum.Int with msgpack and JSON encodings.
type Int struct {
	bignum.Int
}

func parseSign(s string) (bignum.Sign, error) {
	switch s {
	case signPlus:
		return bignum.Plus, nil
	case signMinus:
		return bignum.Minus, nil
	default:
		return bignum.Plus, fmt.Errorf("%w %q", ErrInvalidSign, s)
	}
}

// checkSign parses marker and rejects "-" for unsigned targets before
// the magnitude is looked at.
func checkSign(marker string, unsigned bool) (bignum.Sign, error) {
	sign, err := parseSign(marker)
	if err != nil {
		return sign, err
	}
	if unsigned && sign == bignum.Minus {
		return sign, ErrNegativeUnsigned
	}
	return sign, nil
}

func encodePair(enc *msgpack.Encoder, sign bignum.Sign, mag bignum.Nat) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeString(sign.String()); err != nil {
		return err
	}
	return enc.EncodeBytes(mag.Bytes())
}

func decodePair(dec *msgpack.Decoder, unsigned bool) (bignum.Sign, bignum.Nat, error) {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return bignum.Plus, bignum.Nat{}, err
	}
	if n != 2 {
		return bignum.Plus, bignum.Nat{}, fmt.Errorf("%w: got %d elements", ErrShape, n)
	}
	marker, err := dec.DecodeString()
	if err != nil {
		return bignum.Plus, bignum.Nat{}, err
	}
	sign, err := checkSign(marker, unsigned)
	if err != nil {
		return bignum.Plus, bignum.Nat{}, err
	}
	b, err := dec.DecodeBytes()
	if err != nil {
		return bignum.Plus, bignum.Nat{}, err
	}
	return sign, bignum.NatFromBytes(b), nil
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (n Nat) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodePair(enc, bignum.Plus, n.Nat)
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (n *Nat) DecodeMsgpack(dec *msgpack.Decoder) error {
	_, mag, err := decodePair(dec, true)
	if err != nil {
		return err
	}
	n.Nat = mag
	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (x Int) EncodeMsgpack(enc *msgpack.Encoder) error {
	return encodePair(enc, x.Sign(), x.Magnitude())
}

// DecodeMsgpack implements msgpack.CustomDecoder. A "-" marker with an
// empty magnitude decodes as zero.
func (x *Int) DecodeMsgpack(dec *msgpack.Decoder) error {
	sign, mag, err := decodePair(dec, false)
	if err != nil {
		return err
	}
	x.Int = bignum.IntFromNat(sign, mag)
	return nil
}

// MarshalJSON encodes n as ["+", "<base64 magnitude>"].
func (n Nat) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{signPlus, n.Bytes()})
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Nat) UnmarshalJSON(data []byte) error {
	_, mag, err := unmarshalPair(data, true)
	if err != nil {
		return err
	}
	n.Nat = mag
	return nil
}

// MarshalJSON encodes x as ["<sign>", "<base64 magnitude>"].
func (x Int) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{x.Sign().String(), x.Magnitude().Bytes()})
}

// UnmarshalJSON implements json.Unmarshaler.
func (x *Int) UnmarshalJSON(data []byte) error {
	sign, mag, err := unmarshalPair(data, false)
	if err != nil {
		return err
	}
	x.Int = bignum.IntFromNat(sign, mag)
	return nil
}

// The marker is checked before the payload so a bad marker wins over a
// malformed buffer.
func unmarshalPair(data []byte, unsigned bool) (bignum.Sign, bignum.Nat, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return bignum.Plus, bignum.Nat{}, fmt.Errorf("%w: %w", ErrShape, err)
	}
	if len(raw) != 2 {
		return bignum.Plus, bignum.Nat{}, fmt.Errorf("%w: got %d elements", ErrShape, len(raw))
	}
	var marker string
	if err := json.Unmarshal(raw[0], &marker); err != nil {
		return bignum.Plus, bignum.Nat{}, fmt.Errorf("%w: %s", ErrInvalidSign, raw[0])
	}
	sign, err := checkSign(marker, unsigned)
	if err != nil {
		return bignum.Plus, bignum.Nat{}, err
	}
	var b []byte
	if err := json.Unmarshal(raw[1], &b); err != nil {
		return bignum.Plus, bignum.Nat{}, fmt.Errorf("%w: %w", bignum.ErrParse, err)
	}
	return sign, bignum.NatFromBytes(b), nil
}

// EncodeNat returns the msgpack form of x.
func EncodeNat(x bignum.Nat) ([]byte, error) {
	return msgpack.Marshal(Nat{x})
}

// DecodeNat parses the msgpack form produced by EncodeNat.
func DecodeNat(b []byte) (bignum.Nat, error) {
	var n Nat
	if err := msgpack.Unmarshal(b, &n); err != nil {
		return bignum.Nat{}, err
	}
	return n.Nat, nil
}

// EncodeInt returns the msgpack form of x.
func EncodeInt(x bignum.Int) ([]byte, error) {
	return msgpack.Marshal(Int{x})
}

// DecodeInt parses the msgpack form produced by EncodeInt.
func DecodeInt(b []byte) (bignum.Int, error) {
	var x Int
	if err := msgpack.Unmarshal(b, &x); err != nil {
		return bignum.Int{}, err
	}
	return x.Int, nil
}

// NatJSON returns the JSON form of x.
func NatJSON(x bignum.Nat) ([]byte, error) {
	return json.Marshal(Nat{x})
}

// NatFromJSON parses the JSON form produced by NatJSON.
func NatFromJSON(b []byte) (bignum.Nat, error) {
	var n Nat
	if err := json.Unmarshal(b, &n); err != nil {
		return bignum.Nat{}, err
	}
	return n.Nat, nil
}

// IntJSON returns the JSON form of x.
func IntJSON(x bignum.Int) ([]byte, error) {
	return json.Marshal(Int{x})
}

// IntFromJSON parses the JSON form produced by IntJSON.
func IntFromJSON(b []byte) (bignum.Int, error) {
	var x Int
	if err := json.Unmarshal(b, &x); err != nil {
		return bignum.Int{}, err
	}
	return x.Int, nil
}
