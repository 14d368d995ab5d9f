package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bigcalc/internal/bignum"
	"bigcalc/internal/hexquant"
	"bigcalc/internal/numcodec"
)

// Wire formats understood by encode and decode.
const (
	formatMsgpack  = "msgpack"
	formatJSON     = "json"
	formatQuantity = "quantity"
	formatABI      = "abi"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [flags] <number>",
	Short: "Encode an integer for storage or JSON-RPC",
	Long: `Encode an integer in one of the wire formats:

  msgpack   [sign, bytes] pair, printed as 0x hex
  json      ["+" or "-", base64 magnitude]
  quantity  JSON-RPC 0x quantity (non-negative, at most 256 bits)
  abi       fixed-size big-endian two's complement field (--size bytes)`,
	Example: `  bigcalc encode --format json -- -258
  bigcalc encode --format abi --size 32 -- -1`,
	Args: cobra.ExactArgs(1),
	RunE: run(runEncode),
}

var decodeCmd = &cobra.Command{
	Use:   "decode [flags] <payload>",
	Short: "Decode an integer from a wire format",
	Args:  cobra.ExactArgs(1),
	RunE:  run(runDecode),
}

func init() {
	for _, c := range []*cobra.Command{encodeCmd, decodeCmd} {
		c.Flags().String("format", formatJSON, "wire format (msgpack|json|quantity|abi)")
		c.Flags().Bool("unsigned", false, "use the unsigned form and reject negative values")
	}
	encodeCmd.Flags().Int("size", 32, "field size in bytes for --format abi")
}

func codecFlags(cmd *cobra.Command) (string, bool, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", false, fmt.Errorf("failed to get format flag: %w", err)
	}
	unsigned, err := cmd.Flags().GetBool("unsigned")
	if err != nil {
		return "", false, fmt.Errorf("failed to get unsigned flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case formatMsgpack, formatJSON, formatQuantity, formatABI:
	default:
		return "", false, fmt.Errorf("unsupported format %q (must be msgpack, json, quantity or abi)", format)
	}
	return format, unsigned, nil
}

func runEncode(s *session, args []string) error {
	format, unsigned, err := codecFlags(s.cmd)
	if err != nil {
		return err
	}
	size, err := s.cmd.Flags().GetInt("size")
	if err != nil {
		return fmt.Errorf("failed to get size flag: %w", err)
	}
	x, err := parseInt(args[0], 0)
	if err != nil {
		return err
	}
	if (unsigned || format == formatQuantity) && x.Signum() < 0 {
		return fmt.Errorf("%w: %s", numcodec.ErrNegativeUnsigned, x)
	}

	var out string
	err = s.step("encode", func() error {
		var err error
		out, err = encodeValue(x, format, unsigned, size)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out(), out)
	return nil
}

func encodeValue(x bignum.Int, format string, unsigned bool, size int) (string, error) {
	switch format {
	case formatMsgpack:
		var (
			b   []byte
			err error
		)
		if unsigned {
			b, err = numcodec.EncodeNat(x.Magnitude())
		} else {
			b, err = numcodec.EncodeInt(x)
		}
		if err != nil {
			return "", err
		}
		return hexquant.EncodeBytes(b), nil
	case formatJSON:
		var (
			b   []byte
			err error
		)
		if unsigned {
			b, err = numcodec.NatJSON(x.Magnitude())
		} else {
			b, err = numcodec.IntJSON(x)
		}
		return string(b), err
	case formatQuantity:
		if x.Magnitude().BitLen() > 256 {
			return "", fmt.Errorf("%w: %s", hexquant.ErrBig256Range, x)
		}
		return hexquant.EncodeQuantity(x.Magnitude()), nil
	default:
		if unsigned {
			if x.Magnitude().BitLen() > 8*size {
				return "", fmt.Errorf("%w: %s in %d bytes", hexquant.ErrOverflow, x, size)
			}
			return hexquant.EncodeBytes(hexquant.PaddedBytes(x.Magnitude(), size)), nil
		}
		b, err := hexquant.TwosComplementBytes(x, size)
		if err != nil {
			return "", err
		}
		return hexquant.EncodeBytes(b), nil
	}
}

func runDecode(s *session, args []string) error {
	format, unsigned, err := codecFlags(s.cmd)
	if err != nil {
		return err
	}
	var x bignum.Int
	err = s.step("decode", func() error {
		var err error
		x, err = decodeValue(strings.TrimSpace(args[0]), format, unsigned)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out(), formatInt(x, s.cfg.Format))
	return nil
}

func decodeValue(payload, format string, unsigned bool) (bignum.Int, error) {
	switch format {
	case formatMsgpack:
		b, err := hexquant.DecodeBytes(payload)
		if err != nil {
			return bignum.Int{}, err
		}
		if unsigned {
			n, err := numcodec.DecodeNat(b)
			return bignum.IntFromNat(bignum.Plus, n), err
		}
		return numcodec.DecodeInt(b)
	case formatJSON:
		if unsigned {
			n, err := numcodec.NatFromJSON([]byte(payload))
			return bignum.IntFromNat(bignum.Plus, n), err
		}
		return numcodec.IntFromJSON([]byte(payload))
	case formatQuantity:
		n, err := hexquant.DecodeQuantity(payload)
		return bignum.IntFromNat(bignum.Plus, n), err
	default:
		b, err := hexquant.DecodeBytes(payload)
		if err != nil {
			return bignum.Int{}, err
		}
		if unsigned {
			return bignum.IntFromNat(bignum.Plus, bignum.NatFromBytes(b)), nil
		}
		return hexquant.IntFromTwosComplement(b), nil
	}
}
