package main

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"bigcalc/internal/bignum"
	"bigcalc/internal/config"
	"bigcalc/internal/rpn"
)

// parseInt reads a command-line integer. Radix 0 accepts the 0x, 0o and
// 0b prefixes; any other radix reads bare digits. Input is NFKC-normalised
// and underscores are ignored.
func parseInt(s string, radix int) (bignum.Int, error) {
	if radix == 0 {
		return rpn.ParseNumber(s)
	}
	s = strings.ReplaceAll(norm.NFKC.String(strings.TrimSpace(s)), "_", "")
	return bignum.ParseInt(s, radix)
}

// parseNat is parseInt restricted to non-negative values.
func parseNat(s string) (bignum.Nat, error) {
	x, err := parseInt(s, 0)
	if err != nil {
		return bignum.Nat{}, err
	}
	if x.Signum() < 0 {
		return bignum.Nat{}, fmt.Errorf("%w: %s", bignum.ErrNegative, s)
	}
	return x.Magnitude(), nil
}

// formatInt renders x per the [format] settings.
func formatInt(x bignum.Int, f config.FormatConfig) string {
	radix := f.Radix
	if radix == 0 {
		radix = 10
	}
	var text string
	if f.Uppercase {
		text = x.TextUpper(radix)
	} else {
		text = x.Text(radix)
	}
	return groupDigits(text, f.Group)
}

// groupDigits inserts '_' between every size digits counting from the
// right. A leading sign is kept in front.
func groupDigits(s string, size int) string {
	if size <= 0 {
		return s
	}
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= size {
		return sign + s
	}
	var b strings.Builder
	b.WriteString(sign)
	head := len(s) % size
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += size {
		if b.Len() > len(sign) {
			b.WriteByte('_')
		}
		b.WriteString(s[i : i+size])
	}
	return b.String()
}
