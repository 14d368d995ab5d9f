package bignum

import "fmt"

// Text returns x in the given radix with a leading '-' when negative.
func (x Int) Text(radix int) string {
	return string(x.appendText(nil, radix, false))
}

// TextUpper is Text with uppercase digits.
func (x Int) TextUpper(radix int) string {
	return string(x.appendText(nil, radix, true))
}

func (x Int) appendText(buf []byte, radix int, upper bool) []byte {
	if x.neg {
		buf = append(buf, '-')
	}
	return x.mag.appendText(buf, radix, upper)
}

// String returns the decimal representation of x.
func (x Int) String() string { return x.Text(10) }

// Format implements fmt.Formatter like Nat.Format, honouring the sign.
func (x Int) Format(s fmt.State, ch rune) {
	formatInteger(s, ch, x.neg, x.mag)
}

// ParseInt parses an optionally signed integer in the given radix.
func ParseInt(s string, radix int) (Int, error) {
	sign := Plus
	if s != "" {
		switch s[0] {
		case '-':
			sign = Minus
			s = s[1:]
		case '+':
			s = s[1:]
		}
	}
	n, err := ParseNat(s, radix)
	if err != nil {
		return Int{}, err
	}
	return IntFromNat(sign, n), nil
}
