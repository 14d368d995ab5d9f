// Package primecache stores primality verdicts on disk so repeated scans
// skip numbers that were already tested.
package primecache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"bigcalc/internal/bignum"
	"bigcalc/internal/numcodec"
)

// Current schema version - increment when payload format changes
const schemaVersion uint16 = 1

// AppName names the default cache directory under $XDG_CACHE_HOME.
const AppName = "bigcalc"

// Key is the sha256 digest of a number's big-endian bytes.
type Key [sha256.Size]byte

// KeyOf returns the cache key for x.
func KeyOf(x bignum.Nat) Key {
	return sha256.Sum256(x.Bytes())
}

// Verdict is the cached outcome of a primality test.
type Verdict struct {
	Prime bool
	// Factor is a non-trivial divisor when one is known, zero otherwise.
	Factor bignum.Nat
}

// payload is the on-disk record. Value guards against digest collisions.
type payload struct {
	Schema    uint16
	Value     numcodec.Nat
	Prime     bool
	Factor    numcodec.Nat
	CheckedAt int64
}

// Cache is a directory of msgpack verdict files.
// Thread-safe for concurrent access; a nil *Cache is a no-op cache.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir returns $XDG_CACHE_HOME/bigcalc, falling back to ~/.cache.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, AppName), nil
}

// Open creates dir if needed and returns a cache rooted there. An empty
// dir selects DefaultDir.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(key Key) string {
	hexKey := hex.EncodeToString(key[:])
	// fan out by the first byte so no directory grows unbounded
	return filepath.Join(c.dir, "verdicts", hexKey[:2], hexKey+".mp")
}

// Put records v for x, replacing any previous verdict atomically.
func (c *Cache) Put(x bignum.Nat, v Verdict) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(KeyOf(x))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	rec := payload{
		Schema:    schemaVersion,
		Value:     numcodec.Nat{Nat: x},
		Prime:     v.Prime,
		Factor:    numcodec.Nat{Nat: v.Factor},
		CheckedAt: time.Now().Unix(),
	}
	if err := msgpack.NewEncoder(f).Encode(&rec); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(f.Name(), p); err != nil {
		return err
	}
	committed = true
	return nil
}

// Get returns the verdict stored for x. Records from another schema
// version or for a different value are treated as misses.
func (c *Cache) Get(x bignum.Nat) (Verdict, bool, error) {
	if c == nil {
		return Verdict{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(KeyOf(x)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Verdict{}, false, nil
		}
		return Verdict{}, false, err
	}
	defer f.Close()

	var rec payload
	if err := msgpack.NewDecoder(f).Decode(&rec); err != nil {
		return Verdict{}, false, fmt.Errorf("primecache: decode %s: %w", f.Name(), err)
	}
	if rec.Schema != schemaVersion || !rec.Value.Equal(x) {
		return Verdict{}, false, nil
	}
	return Verdict{Prime: rec.Prime, Factor: rec.Factor.Nat}, true, nil
}

// DropAll removes every cached verdict. The cache stays usable.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.MkdirAll(c.dir, 0o755)
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
