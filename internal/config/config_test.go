package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[format]
radix = 16
uppercase = true

[mul]
direct_limit = 0

[scan]
jobs = 3
cache = false

[cache]
dir = "/tmp/verdicts"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Format: FormatConfig{Radix: 16, Uppercase: true},
		Mul:    MulConfig{DirectLimit: 0},
		Scan:   ScanConfig{Jobs: 3, Cache: false},
		Cache:  CacheConfig{Dir: "/tmp/verdicts"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Engine().DirectLimit != 0 {
		t.Fatalf("engine config = %+v", cfg.Engine())
	}
}

func TestLoadKeepsUnsetDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[scan]\njobs = 2\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Scan.Jobs = 2
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"[format]\nradix = 37\n", "[format].radix"},
		{"[format]\nradix = 1\n", "[format].radix"},
		{"[format]\ngroup = -1\n", "[format].group"},
		{"[mul]\ndirect_limit = -4\n", "[mul].direct_limit"},
		{"[scan]\njobs = -1\n", "[scan].jobs"},
		{"[scan]\nthreads = 4\n", "unknown keys: scan.threads"},
		{"[format\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		path := writeConfig(t, t.TempDir(), tt.body)
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("load %q error = %v, want mention of %q", tt.body, err, tt.want)
		}
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "[format]\nradix = 2\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg, found, err := Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if found != path || cfg.Format.Radix != 2 {
		t.Fatalf("discover = %q radix %d", found, cfg.Format.Radix)
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	dir := t.TempDir()
	if _, ok, err := Find(dir); err != nil || ok {
		// a bigcalc.toml above the temp dir would make this test meaningless
		t.Skipf("found a configuration above %s", dir)
	}
	cfg, path, err := Discover(dir)
	if err != nil || path != "" {
		t.Fatalf("discover = %q, %v", path, err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}
