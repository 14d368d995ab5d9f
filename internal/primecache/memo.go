package primecache

import (
	"sync"

	"bigcalc/internal/bignum"
)

// per-process record keyed by digest; value is kept to reject collisions
type cached struct {
	value   bignum.Nat
	verdict Verdict
}

// Memo is an in-memory verdict cache, optionally backed by a disk Cache.
// Reads fall through to the disk on a miss and populate memory; writes go
// to both.
type Memo struct {
	mu    sync.RWMutex
	byKey map[Key]cached
	disk  *Cache
}

// NewMemo creates a Memo with the given capacity hint. disk may be nil.
func NewMemo(capHint int, disk *Cache) *Memo {
	return &Memo{byKey: make(map[Key]cached, capHint), disk: disk}
}

// Get returns the verdict for x from memory or disk.
func (m *Memo) Get(x bignum.Nat) (Verdict, bool, error) {
	key := KeyOf(x)
	m.mu.RLock()
	rec, ok := m.byKey[key]
	m.mu.RUnlock()
	if ok && rec.value.Equal(x) {
		return rec.verdict, true, nil
	}
	v, ok, err := m.disk.Get(x)
	if err != nil || !ok {
		return Verdict{}, false, err
	}
	m.remember(key, x, v)
	return v, true, nil
}

// Put records v for x in memory and on disk.
func (m *Memo) Put(x bignum.Nat, v Verdict) error {
	m.remember(KeyOf(x), x, v)
	return m.disk.Put(x, v)
}

// Len returns the number of verdicts held in memory.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byKey)
}

func (m *Memo) remember(key Key, x bignum.Nat, v Verdict) {
	m.mu.Lock()
	m.byKey[key] = cached{value: x, verdict: v}
	m.mu.Unlock()
}
