package rpn

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"bigcalc/internal/bignum"
)

// ParseNumber parses an integer literal: an optional sign, an optional
// 0x, 0o or 0b prefix, and digits that may be separated by single
// underscores. Input is NFKC-normalised first, so full-width digits are
// accepted.
func ParseNumber(s string) (bignum.Int, error) {
	x, ok, err := parseNumber(s)
	if !ok {
		return bignum.Int{}, fmt.Errorf("%w: %q is not a number", bignum.ErrParse, s)
	}
	return x, err
}

// parseNumber reports ok=false when tok does not look like a literal at
// all, so operator tokens such as "-" fall through.
func parseNumber(tok string) (bignum.Int, bool, error) {
	s := norm.NFKC.String(tok)
	sign := bignum.Plus
	body := s
	if body != "" && (body[0] == '+' || body[0] == '-') {
		if body[0] == '-' {
			sign = bignum.Minus
		}
		body = body[1:]
	}
	if body == "" || body[0] < '0' || body[0] > '9' {
		return bignum.Int{}, false, nil
	}

	radix := 10
	if len(body) > 2 && body[0] == '0' {
		switch body[1] {
		case 'x', 'X':
			radix = 16
		case 'o', 'O':
			radix = 8
		case 'b', 'B':
			radix = 2
		}
		if radix != 10 {
			body = body[2:]
			// 0x_ff is allowed, as in Go literals
			body = strings.TrimPrefix(body, "_")
		}
	}

	digits, err := stripUnderscores(body)
	if err != nil {
		return bignum.Int{}, true, fmt.Errorf("%w: %q", err, tok)
	}
	n, err := bignum.ParseNat(digits, radix)
	if err != nil {
		return bignum.Int{}, true, err
	}
	return bignum.IntFromNat(sign, n), true, nil
}

func stripUnderscores(s string) (string, error) {
	if !strings.Contains(s, "_") {
		return s, nil
	}
	if s == "" || s[0] == '_' || s[len(s)-1] == '_' || strings.Contains(s, "__") {
		return "", fmt.Errorf("%w: misplaced underscore", bignum.ErrParse)
	}
	return strings.ReplaceAll(s, "_", ""), nil
}
