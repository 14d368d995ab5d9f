package bignum

import (
	"fmt"
	"io"
	"math/bits"
	"strings"
)

const (
	lowerDigits = "0123456789abcdefghijklmnopqrstuvwxyz"
	upperDigits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

func checkRadix(radix int) error {
	if radix < 2 || radix > 36 {
		return fmt.Errorf("%w: %d", ErrInvalidRadix, radix)
	}
	return nil
}

// chunkBase returns radix^k for the largest k whose power fits in a word.
func chunkBase(radix int) (base Word, k int) {
	r := Word(radix) //nolint:gosec // G115: radix is validated to 2..36.
	base, k = r, 1
	for {
		hi, lo := bits.Mul(uint(base), uint(r))
		if hi != 0 {
			return base, k
		}
		base = Word(lo)
		k++
	}
}

// Text returns x in the given radix (2..36) using lowercase digits.
// It panics on an invalid radix.
func (x Nat) Text(radix int) string {
	return string(x.appendText(nil, radix, false))
}

// TextUpper is Text with uppercase digits.
func (x Nat) TextUpper(radix int) string {
	return string(x.appendText(nil, radix, true))
}

// String returns the decimal representation of x.
func (x Nat) String() string { return x.Text(10) }

func (x Nat) appendText(buf []byte, radix int, upper bool) []byte {
	if err := checkRadix(radix); err != nil {
		panic(err)
	}
	digits := lowerDigits
	if upper {
		digits = upperDigits
	}
	xs := x.limbs()
	if len(xs) == 0 {
		return append(buf, '0')
	}

	var out []byte
	if radix&(radix-1) == 0 {
		shift := bits.TrailingZeros(uint(radix))
		mask := Word(radix - 1) //nolint:gosec // G115: radix is a small power of two.
		n := bitLenVec(xs)
		for i := 0; i < n; i += shift {
			out = append(out, digits[bitsAt(xs, i, shift)&mask])
		}
	} else {
		base, k := chunkBase(radix)
		r := Word(radix) //nolint:gosec // G115: radix is validated to 2..36.
		q := cloneWords(xs)
		for len(q) > 0 {
			rem := divWVW(q, 0, q, base)
			q = trim(q)
			for j := 0; j < k; j++ {
				if len(q) == 0 && rem == 0 {
					break
				}
				out = append(out, digits[rem%r])
				rem /= r
			}
		}
	}
	for i := len(out) - 1; i >= 0; i-- {
		buf = append(buf, out[i])
	}
	return buf
}

// bitsAt returns n <= WordBits bits of x starting at bit i.
func bitsAt(x []Word, i, n int) Word {
	k := i / WordBits
	off := uint(i % WordBits)
	var w Word
	if k < len(x) {
		w = x[k] >> off
	}
	if off != 0 && k+1 < len(x) && int(off)+n > WordBits {
		w |= x[k+1] << (WordBits - off)
	}
	if n < WordBits {
		w &= Word(1)<<uint(n) - 1
	}
	return w
}

func digitValue(ch byte) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch && ch <= 'z':
		return int(ch-'a') + 10
	case 'A' <= ch && ch <= 'Z':
		return int(ch-'A') + 10
	}
	return 36
}

// ParseNat parses s as an unsigned integer in the given radix. Digits are
// case-insensitive; signs, whitespace, separators and an empty string are
// rejected with ErrParse.
func ParseNat(s string, radix int) (Nat, error) {
	if err := checkRadix(radix); err != nil {
		return Nat{}, err
	}
	if s == "" {
		return Nat{}, fmt.Errorf("%w: empty string", ErrParse)
	}
	base, k := chunkBase(radix)
	r := Word(radix) //nolint:gosec // G115: radix is validated to 2..36.
	z := make([]Word, 0, len(s)/k+1)
	var chunk Word
	var n int
	flush := func(mul Word) {
		if len(z) == 0 {
			if chunk != 0 {
				z = append(z, chunk)
			}
			return
		}
		if c := mulAddVWW(z, z, mul, chunk); c != 0 {
			z = append(z, c)
		}
	}
	for i := 0; i < len(s); i++ {
		d := digitValue(s[i])
		if d >= radix {
			return Nat{}, fmt.Errorf("%w: invalid digit %q in %q", ErrParse, s[i], s)
		}
		chunk = chunk*r + Word(d) //nolint:gosec // G115: d < radix.
		n++
		if n == k {
			flush(base)
			chunk, n = 0, 0
		}
	}
	if n > 0 {
		mul := Word(1)
		for range n {
			mul *= r
		}
		flush(mul)
	}
	return natFromVec(z), nil
}

// Format implements fmt.Formatter for the verbs b, o, O, d, x, X, s and v.
func (x Nat) Format(s fmt.State, ch rune) {
	formatInteger(s, ch, false, x)
}

func formatInteger(s fmt.State, ch rune, neg bool, mag Nat) {
	radix, prefix, upper := 10, "", false
	switch ch {
	case 'b':
		radix, prefix = 2, "0b"
	case 'o':
		radix, prefix = 8, "0"
	case 'O':
		radix, prefix = 8, "0o"
	case 'd', 's', 'v':
	case 'x':
		radix, prefix = 16, "0x"
	case 'X':
		radix, prefix, upper = 16, "0X", true
	default:
		fmt.Fprintf(s, "%%!%c(bignum=%s)", ch, mag.String())
		return
	}
	if !s.Flag('#') && ch != 'O' {
		prefix = ""
	}

	digits := string(mag.appendText(nil, radix, upper))
	if p, ok := s.Precision(); ok {
		switch {
		case p == 0 && mag.IsZero():
			digits = ""
		case len(digits) < p:
			digits = strings.Repeat("0", p-len(digits)) + digits
		}
	}

	sign := ""
	switch {
	case neg:
		sign = "-"
	case s.Flag('+'):
		sign = "+"
	case s.Flag(' '):
		sign = " "
	}

	body := sign + prefix + digits
	if w, ok := s.Width(); ok && len(body) < w {
		pad := w - len(body)
		_, precisionSet := s.Precision()
		switch {
		case s.Flag('-'):
			body += strings.Repeat(" ", pad)
		case s.Flag('0') && !precisionSet:
			body = sign + prefix + strings.Repeat("0", pad) + digits
		default:
			body = strings.Repeat(" ", pad) + body
		}
	}
	_, _ = io.WriteString(s, body)
}
