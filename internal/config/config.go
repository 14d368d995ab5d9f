// Package config loads bigcalc.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"bigcalc/internal/bignum"
)

// FileName is the configuration file looked up from the working directory
// upwards.
const FileName = "bigcalc.toml"

// Config is the decoded configuration. Zero sections keep their defaults.
type Config struct {
	Format FormatConfig `toml:"format"`
	Mul    MulConfig    `toml:"mul"`
	Scan   ScanConfig   `toml:"scan"`
	Cache  CacheConfig  `toml:"cache"`
}

// FormatConfig controls how results are printed.
type FormatConfig struct {
	Radix     int  `toml:"radix"`
	Uppercase bool `toml:"uppercase"`
	Group     int  `toml:"group"`
}

// MulConfig tunes multiplication.
type MulConfig struct {
	DirectLimit int `toml:"direct_limit"`
}

// ScanConfig controls primality scans.
type ScanConfig struct {
	Jobs       int  `toml:"jobs"`
	Cache      bool `toml:"cache"`
	TrialLimit int  `toml:"trial_limit"`
}

// CacheConfig locates the verdict cache.
type CacheConfig struct {
	Dir string `toml:"dir"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Format: FormatConfig{Radix: 10},
		Mul:    MulConfig{DirectLimit: bignum.DefaultDirectMulLimit},
		Scan:   ScanConfig{Cache: true},
	}
}

// Engine returns the multiplication settings for the engine.
func (c Config) Engine() bignum.MulConfig {
	return bignum.MulConfig{DirectLimit: c.Mul.DirectLimit}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("format", "radix") && (cfg.Format.Radix < 2 || cfg.Format.Radix > 36) {
		return Config{}, fmt.Errorf("%s: [format].radix must be between 2 and 36, got %d", path, cfg.Format.Radix)
	}
	if meta.IsDefined("format", "group") && cfg.Format.Group < 0 {
		return Config{}, fmt.Errorf("%s: [format].group must not be negative", path)
	}
	if meta.IsDefined("mul", "direct_limit") && cfg.Mul.DirectLimit < 0 {
		return Config{}, fmt.Errorf("%s: [mul].direct_limit must not be negative", path)
	}
	if meta.IsDefined("scan", "jobs") && cfg.Scan.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [scan].jobs must not be negative", path)
	}
	return cfg, nil
}

// Discover finds and loads the nearest configuration file. It returns the
// defaults and an empty path when there is none.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}
