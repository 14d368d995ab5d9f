package bignum

import (
	"fmt"

	"fortio.org/safecast"
)

// maxMaskingShift bounds left shifts requested through an Int count.
const maxMaskingShift = 1 << 32

// twos returns the n-word two's-complement form of x.
func (x Int) twos(n int) []Word {
	w := make([]Word, n)
	copy(w, x.mag.limbs())
	if x.neg {
		FlipTwosComplement(w)
	}
	return w
}

func (x Int) bitwise(y Int, op func(a, b Word) Word) Int {
	n := max(x.mag.Count(), y.mag.Count()) + 1
	a, b := x.twos(n), y.twos(n)
	for i := range a {
		a[i] = op(a[i], b[i])
	}
	return IntFromWords(a)
}

// And returns x & y in two's-complement semantics.
func (x Int) And(y Int) Int {
	return x.bitwise(y, func(a, b Word) Word { return a & b })
}

// Or returns x | y in two's-complement semantics.
func (x Int) Or(y Int) Int {
	return x.bitwise(y, func(a, b Word) Word { return a | b })
}

// Xor returns x ^ y in two's-complement semantics.
func (x Int) Xor(y Int) Int {
	return x.bitwise(y, func(a, b Word) Word { return a ^ b })
}

// Not returns ^x, which is -x-1.
func (x Int) Not() Int {
	return x.Neg().Sub(IntFromInt64(1))
}

// floorShiftAll is the result of shifting x right by more bits than it has.
func (x Int) floorShiftAll() Int {
	if x.neg {
		return IntFromInt64(-1)
	}
	return Int{}
}

// Lsh returns x * 2^s. A negative count shifts right.
func (x Int) Lsh(s int) Int {
	if s < 0 {
		if s == -s {
			return x.floorShiftAll()
		}
		return x.Rsh(-s)
	}
	return IntFromNat(x.Sign(), x.mag.Lsh(s))
}

// Rsh returns floor(x / 2^s). Negative values round toward negative
// infinity, so -1 >> s is -1. A negative count shifts left.
func (x Int) Rsh(s int) Int {
	if s < 0 {
		if s == -s && !x.IsZero() {
			panic(ErrShiftTooLarge)
		}
		return x.Lsh(-s)
	}
	if !x.neg {
		return IntFromNat(Plus, x.mag.Rsh(s))
	}
	m := x.mag.Sub(natOne).Rsh(s)
	return IntFromNat(Minus, m.AddWord(1))
}

// MaskingLsh shifts by an arbitrary-precision count. Counts too large to
// represent give ErrShiftTooLarge for non-zero x instead of trapping.
func (x Int) MaskingLsh(count Int) (Int, error) {
	if s, ok := count.Int64(); ok && s <= maxMaskingShift {
		if si, err := safecast.Conv[int](s); err == nil {
			return x.Lsh(si), nil
		}
	}
	switch {
	case count.neg:
		return x.floorShiftAll(), nil
	case x.IsZero():
		return Int{}, nil
	}
	return Int{}, fmt.Errorf("%w: %s", ErrShiftTooLarge, count)
}

// MaskingRsh is MaskingLsh with the count negated.
func (x Int) MaskingRsh(count Int) (Int, error) {
	return x.MaskingLsh(count.Neg())
}

// IntWords is the two's-complement word view of an Int, least significant
// first. Reads past Len return the sign extension.
type IntWords struct {
	x   Int
	n   int
	low int
}

// Words returns the two's-complement view of x. Its length is the
// magnitude's word count, plus one when the top magnitude bit is set.
func (x Int) Words() IntWords {
	c := x.mag.Count()
	n := c
	if c > 0 && x.mag.Word(c-1)>>(WordBits-1) == 1 {
		n++
	}
	low := 0
	for low < c && x.mag.Word(low) == 0 {
		low++
	}
	return IntWords{x: x, n: n, low: low}
}

// Len returns the number of words in the view.
func (w IntWords) Len() int { return w.n }

// WordAt returns word i of the view.
func (w IntWords) WordAt(i int) Word {
	m := w.x.mag.Word(i)
	if !w.x.neg {
		return m
	}
	switch {
	case i >= w.x.mag.Count():
		return wordMax
	case i < w.low:
		return 0
	case i == w.low:
		return -m
	}
	return ^m
}

// Slice materializes the view.
func (w IntWords) Slice() []Word {
	out := make([]Word, w.n)
	for i := range out {
		out[i] = w.WordAt(i)
	}
	return out
}
