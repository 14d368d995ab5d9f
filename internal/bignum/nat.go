package bignum

type natKind uint8

const (
	kindInline natKind = iota // up to two words held in the value itself
	kindArray                 // heap buffer
	kindSlice                 // window into a heap buffer
)

// buffer is the heap storage behind array and slice forms. Its words are
// never written once the buffer is installed in a Nat, so any number of
// values and views may read it.
type buffer struct {
	w []Word
}

// Nat is an arbitrary-precision unsigned integer.
//
// The zero value is 0 and ready to use. Nat has value semantics: assigning
// or passing a Nat yields an independent value. Methods with pointer
// receivers update only the receiver; they write a fresh vector and never
// touch storage another value can read.
type Nat struct {
	kind   natKind
	lo, hi Word
	buf    *buffer
	from   int
	to     int
}

func newBuffer(w []Word) *buffer {
	return &buffer{w: w}
}

// natFromVec wraps a freshly computed vector. Small results are inline.
func natFromVec(w []Word) Nat {
	w = trim(w)
	switch len(w) {
	case 0:
		return Nat{}
	case 1:
		return Nat{lo: w[0]}
	case 2:
		return Nat{lo: w[0], hi: w[1]}
	}
	return Nat{kind: kindArray, buf: newBuffer(w)}
}

// NatFromWord returns the single-word value w.
func NatFromWord(w Word) Nat { return Nat{lo: w} }

// NatFromWordPair returns high*2^W + low.
func NatFromWordPair(low, high Word) Nat { return Nat{lo: low, hi: high} }

// NatFromUint64 returns v.
func NatFromUint64(v uint64) Nat {
	if WordBits == 64 {
		return Nat{lo: Word(v)}
	}
	return Nat{lo: Word(v), hi: Word(v >> 32)} //nolint:gosec // G115: splitting into 32-bit words.
}

// NatFromWords copies little-endian words into a heap-backed value.
func NatFromWords(words []Word) Nat {
	w := trim(words)
	out := make([]Word, len(w))
	copy(out, w)
	return Nat{kind: kindArray, buf: newBuffer(out)}
}

// NatFromWordRange returns the value of words[from:to], clamped to the
// input. Only the selected words are copied.
func NatFromWordRange(words []Word, from, to int) Nat {
	from = min(max(from, 0), len(words))
	to = min(max(to, from), len(words))
	return natFromVec(cloneWords(words[from:to]))
}

// limbs returns the significant words. The result aliases storage and must
// not be written.
func (n Nat) limbs() []Word {
	switch n.kind {
	case kindInline:
		switch {
		case n.hi != 0:
			return []Word{n.lo, n.hi}
		case n.lo != 0:
			return []Word{n.lo}
		}
		return nil
	case kindSlice:
		return n.buf.w[n.from:n.to:n.to]
	}
	if n.buf == nil {
		return nil
	}
	return n.buf.w[:len(n.buf.w):len(n.buf.w)]
}

// Count returns the number of significant words.
func (n Nat) Count() int {
	switch n.kind {
	case kindInline:
		switch {
		case n.hi != 0:
			return 2
		case n.lo != 0:
			return 1
		}
		return 0
	case kindSlice:
		return n.to - n.from
	}
	if n.buf == nil {
		return 0
	}
	return len(n.buf.w)
}

// IsZero reports whether n == 0.
func (n Nat) IsZero() bool { return n.Count() == 0 }

// Word returns the word at index i, or 0 beyond the significant words.
func (n Nat) Word(i int) Word {
	if i < 0 {
		return 0
	}
	switch n.kind {
	case kindInline:
		switch i {
		case 0:
			return n.lo
		case 1:
			return n.hi
		}
		return 0
	case kindSlice:
		if i < n.to-n.from {
			return n.buf.w[n.from+i]
		}
		return 0
	}
	if n.buf == nil || i >= len(n.buf.w) {
		return 0
	}
	return n.buf.w[i]
}

// Words returns a copy of the significant words, least significant first.
func (n Nat) Words() []Word {
	return cloneWords(n.limbs())
}

// Capacity reports how many words are reserved for n. Updates through
// pointer methods allocate at least this much. Inline values and views
// report 0.
func (n Nat) Capacity() int {
	if n.kind != kindArray || n.buf == nil {
		return 0
	}
	return cap(n.buf.w)
}

// Clone returns a value with private storage.
func (n Nat) Clone() Nat {
	if n.kind == kindInline {
		return n
	}
	return NatFromWords(n.limbs())
}

// fresh returns a new vector holding n's words, zero-extended or cut to
// size. Its capacity covers n's reservation; growth past it is geometric.
func (n *Nat) fresh(size int) []Word {
	c := n.Capacity()
	switch {
	case size <= c:
	case c > 0:
		c = max(size, 2*c)
	default:
		c = size
	}
	w := make([]Word, size, c)
	copy(w, n.limbs())
	return w
}

// install makes w, trimmed, n's heap storage. w must not be reachable from
// any other value.
func (n *Nat) install(w []Word) {
	*n = Nat{kind: kindArray, buf: newBuffer(trim(w))}
}

// store replaces n's value with the fresh vector w. Inline values stay
// inline while the result fits two words.
func (n *Nat) store(w []Word) {
	w = trim(w)
	if n.kind == kindInline && len(w) <= 2 {
		n.lo, n.hi = 0, 0
		if len(w) > 0 {
			n.lo = w[0]
		}
		if len(w) > 1 {
			n.hi = w[1]
		}
		return
	}
	n.install(w)
}

// EnsureOwned converts n to heap storage of its own.
func (n *Nat) EnsureOwned() {
	n.install(n.fresh(n.Count()))
}

// ReserveCapacity reserves room for at least c words.
func (n *Nat) ReserveCapacity(c int) {
	if n.kind == kindArray && n.Capacity() >= c {
		return
	}
	w := make([]Word, n.Count(), max(c, n.Count()))
	copy(w, n.limbs())
	n.install(w)
}

// Load sets n to x, keeping n's reservation.
func (n *Nat) Load(x Nat) {
	xs := x.limbs()
	if len(xs) <= 2 && n.kind == kindInline {
		*n = natFromVec(xs)
		return
	}
	w := make([]Word, len(xs), max(len(xs), n.Capacity()))
	copy(w, xs)
	n.install(w)
}

// Clear sets n to zero, keeping its reservation.
func (n *Nat) Clear() {
	if n.kind == kindArray && n.buf != nil {
		*n = Nat{kind: kindArray, buf: newBuffer(n.buf.w[:0])}
		return
	}
	*n = Nat{}
}

// SetWord sets the word at index i. Writing zero past the significant words
// is a no-op; writing a view turns it into an array.
func (n *Nat) SetWord(i int, w Word) {
	if i < 0 {
		panic("bignum: negative word index")
	}
	if n.kind == kindInline && i < 2 {
		if i == 0 {
			n.lo = w
		} else {
			n.hi = w
		}
		return
	}
	c := n.Count()
	if i >= c && w == 0 {
		return
	}
	v := n.fresh(max(c, i+1))
	v[i] = w
	n.store(v)
}

// Extract returns the value of words [from, to), clamped to the significant
// words. The result is a view sharing storage with n when it spans more than
// two words.
func (n Nat) Extract(from, to int) Nat {
	c := n.Count()
	from = min(max(from, 0), c)
	to = min(max(to, from), c)
	if n.kind == kindInline {
		w := [2]Word{n.lo, n.hi}
		return natFromVec(w[from:to])
	}
	base := 0
	if n.kind == kindSlice {
		base = n.from
	}
	w := trim(n.buf.w[base+from : base+to])
	to = from + len(w)
	switch {
	case len(w) <= 2:
		return natFromVec(w)
	case n.kind == kindArray && from == 0 && to == c:
		return n
	}
	return Nat{kind: kindSlice, buf: n.buf, from: base + from, to: base + to}
}

func (n Nat) middle() int { return (n.Count() + 1) / 2 }

// Low returns the lower half of the words, split at (Count()+1)/2.
func (n Nat) Low() Nat { return n.Extract(0, n.middle()) }

// High returns the upper half of the words, split at (Count()+1)/2.
func (n Nat) High() Nat { return n.Extract(n.middle(), n.Count()) }

// Split returns High() and Low().
func (n Nat) Split() (high, low Nat) { return n.High(), n.Low() }

// ShiftRightWords drops the k least significant words in place. Views stay
// views.
func (n *Nat) ShiftRightWords(k int) {
	c := n.Count()
	if k <= 0 || c == 0 {
		return
	}
	switch n.kind {
	case kindInline:
		if k >= 2 {
			n.lo, n.hi = 0, 0
		} else {
			n.lo, n.hi = n.hi, 0
		}
		return
	case kindSlice:
		*n = n.Extract(k, c)
		return
	}
	k = min(k, c)
	w := make([]Word, c-k, max(c-k, n.Capacity()))
	copy(w, n.limbs()[k:])
	n.install(w)
}

// ShiftLeftWords multiplies n by 2^(k*W) in place.
func (n *Nat) ShiftLeftWords(k int) {
	c := n.Count()
	if k <= 0 || c == 0 {
		return
	}
	if n.kind == kindInline && c+k <= 2 {
		n.lo, n.hi = 0, n.lo
		return
	}
	w := n.fresh(c + k)
	copy(w[k:], n.limbs())
	clear(w[:k])
	n.store(w)
}

// Cmp compares n and y and returns -1, 0 or +1.
func (n Nat) Cmp(y Nat) int {
	return cmpVec(n.limbs(), y.limbs())
}

// Equal reports whether n == y.
func (n Nat) Equal(y Nat) bool { return n.Cmp(y) == 0 }

// Signum returns 0 for zero and 1 otherwise.
func (n Nat) Signum() int {
	if n.IsZero() {
		return 0
	}
	return 1
}

// IsOdd reports whether the least significant bit is set.
func (n Nat) IsOdd() bool { return n.Word(0)&1 == 1 }
