package bignum

import (
	"hash/fnv"
	"math"
	"math/bits"

	"fortio.org/safecast"
)

const maxInt = math.MaxInt

func bitLenInt(n int) int {
	return bits.Len(uint(n)) //nolint:gosec // G115: callers pass non-negative n.
}

// Uint64 returns x as a uint64 and whether it fits.
func (x Nat) Uint64() (uint64, bool) {
	switch {
	case x.Count() == 0:
		return 0, true
	case WordBits == 64 && x.Count() == 1:
		return uint64(x.Word(0)), true
	case WordBits == 32 && x.Count() <= 2:
		return uint64(x.Word(1))<<32 | uint64(x.Word(0)), true
	}
	return 0, false
}

// Int returns x as an int and whether it fits.
func (x Nat) Int() (int, bool) {
	u, ok := x.Uint64()
	if !ok {
		return 0, false
	}
	v, err := safecast.Conv[int](u)
	return v, err == nil
}

// NatFromInt64Exact converts v when it is non-negative.
func NatFromInt64Exact(v int64) (Nat, bool) {
	u, err := safecast.Conv[uint64](v)
	if err != nil {
		return Nat{}, false
	}
	return NatFromUint64(u), true
}

// NatClampingInt64 converts v, mapping negative values to zero.
func NatClampingInt64(v int64) Nat {
	n, ok := NatFromInt64Exact(v)
	if !ok {
		return Nat{}
	}
	return n
}

// NatTruncatingInt64 reinterprets the two's-complement bits of v as an
// unsigned value.
func NatTruncatingInt64(v int64) Nat {
	return NatFromUint64(uint64(v)) //nolint:gosec // G115: reinterpretation is the point.
}

// Hash returns a hash of x consistent with Equal.
func (x Nat) Hash() uint64 {
	h := fnv.New64a()
	var b [8]byte
	for _, w := range x.limbs() {
		u := uint64(w)
		for i := range b {
			b[i] = byte(u >> (8 * uint(i)))
		}
		_, _ = h.Write(b[:])
	}
	return h.Sum64()
}
