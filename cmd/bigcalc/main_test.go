package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"bigcalc/internal/bignum"
	"bigcalc/internal/hexquant"
	"bigcalc/internal/numcodec"
	"bigcalc/internal/rpn"
)

// resetCommands restores every flag and context so runs do not leak into
// each other.
func resetCommands(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	c.SetContext(context.Background())
	for _, sub := range c.Commands() {
		resetCommands(sub)
	}
}

// execute runs bigcalc with args against a throwaway config and cache.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bigcalc.toml")
	cfg := "[cache]\ndir = \"" + filepath.ToSlash(filepath.Join(dir, "cache")) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	resetCommands(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", cfgPath, "--color", "off", "--ui", "off", "--quiet"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestEvalCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		in   string
		want []string
	}{
		{"args", []string{"eval", "2", "64", "**"}, "", []string{"18446744073709551616"}},
		{"expr", []string{"eval", "-e", "-7 2 mod"}, "", []string{"1"}},
		{"dashdash", []string{"eval", "--", "-7", "2", "/"}, "", []string{"-3"}},
		{"radix", []string{"eval", "--radix", "16", "255", "1"}, "", []string{"ff", "1"}},
		{"stdin", []string{"eval"}, "1 2 +\n# comment\n\n3 dup *\n", []string{"3", "9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.in, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, lines(out)); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvalCommandErrors(t *testing.T) {
	if _, err := execute(t, "", "eval", "1", "0", "/"); err == nil || !strings.Contains(err.Error(), "division by zero") {
		t.Fatalf("error = %v", err)
	}
	if _, err := execute(t, "", "eval", "+"); !errors.Is(err, rpn.ErrStackUnderflow) {
		t.Fatalf("error = %v", err)
	}
	if _, err := execute(t, "", "eval", "--radix", "40", "1"); err == nil {
		t.Fatal("radix 40 accepted")
	}
}

func TestConvertCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"convert", "--to", "16", "255"}, "ff"},
		{[]string{"convert", "--to", "16", "--upper", "0b1111_1111"}, "FF"},
		{[]string{"convert", "--from", "2", "1010_1010"}, "170"},
		{[]string{"convert", "--to", "2", "--group", "4", "--", "-255"}, "-1111_1111"},
		{[]string{"convert", "--group", "3", "1234567"}, "1_234_567"},
		{[]string{"convert", "１２３"}, "123"},
	}
	for _, tt := range tests {
		out, err := execute(t, "", tt.args...)
		if err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if got := strings.TrimSpace(out); got != tt.want {
			t.Errorf("%v = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestIsPrimeCommand(t *testing.T) {
	out, err := execute(t, "", "isprime", "97", "91", "1", "170141183460469231731687303715884105727")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"97                                       prime",
		"91                                       composite (divisible by 7)",
		"1                                        not prime",
		"170141183460469231731687303715884105727  prime",
	}
	if diff := cmp.Diff(want, lines(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if _, err := execute(t, "", "isprime", "--", "-5"); err == nil {
		t.Fatal("negative input accepted")
	}
}

func TestFactorCommand(t *testing.T) {
	out, err := execute(t, "", "factor", "360", "1", "18446744073709551617")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"360: 2 2 2 3 3 5", "1:", "18446744073709551617: 274177 67280421310721"}
	if diff := cmp.Diff(want, lines(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestScanCommands(t *testing.T) {
	out, err := execute(t, "", "scan", "mersenne", "--to", "32")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"M2   prime", "M3   prime", "M5   prime", "M7   prime", "M13  prime", "M17  prime", "M19  prime", "M31  prime"}
	if diff := cmp.Diff(want, lines(out)); diff != "" {
		t.Fatalf("mersenne output mismatch (-want +got):\n%s", diff)
	}

	out, err = execute(t, "", "scan", "range", "--from", "0x5a", "--to", "100", "--jobs", "2")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"97  prime"}, lines(out)); diff != "" {
		t.Fatalf("range output mismatch (-want +got):\n%s", diff)
	}

	if _, err := execute(t, "", "scan", "range", "--from", "10", "--to", "10"); err == nil {
		t.Fatal("empty range accepted")
	}
}

func TestEncodeDecodeCommands(t *testing.T) {
	tests := []struct {
		format  string
		value   string
		encoded string
	}{
		{"json", "-258", `["-","AQI="]`},
		{"quantity", "255", "0xff"},
		{"abi", "-1", "0x" + strings.Repeat("ff", 32)},
		{"msgpack", "1", "0x92a12bc40101"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := execute(t, "", "encode", "--format", tt.format, "--", tt.value)
			if err != nil {
				t.Fatal(err)
			}
			if got := strings.TrimSpace(out); got != tt.encoded {
				t.Fatalf("encode = %q, want %q", got, tt.encoded)
			}
			out, err = execute(t, "", "decode", "--format", tt.format, tt.encoded)
			if err != nil {
				t.Fatal(err)
			}
			if got := strings.TrimSpace(out); got != tt.value {
				t.Fatalf("decode = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := execute(t, "", "encode", "--format", "quantity", "--", "-1"); !errors.Is(err, numcodec.ErrNegativeUnsigned) {
		t.Fatalf("negative quantity error = %v", err)
	}
	if _, err := execute(t, "", "encode", "--format", "abi", "--size", "1", "128"); !errors.Is(err, hexquant.ErrOverflow) {
		t.Fatalf("abi overflow error = %v", err)
	}
	if _, err := execute(t, "", "decode", "--format", "json", "--unsigned", `["-","AQ=="]`); !errors.Is(err, numcodec.ErrNegativeUnsigned) {
		t.Fatalf("unsigned decode error = %v", err)
	}
	if _, err := execute(t, "", "encode", "--format", "xml", "1"); err == nil {
		t.Fatal("unknown format accepted")
	}
}

func TestRandomCommand(t *testing.T) {
	first, err := execute(t, "", "random", "--bits", "128", "--count", "3", "--seed", "42")
	if err != nil {
		t.Fatal(err)
	}
	again, err := execute(t, "", "random", "--bits", "128", "--count", "3", "--seed", "42")
	if err != nil {
		t.Fatal(err)
	}
	if first != again || len(lines(first)) != 3 {
		t.Fatalf("seeded runs differ:\n%s\n%s", first, again)
	}

	out, err := execute(t, "", "random", "--below", "0x10", "--count", "20")
	if err != nil {
		t.Fatal(err)
	}
	for _, l := range lines(out) {
		x, err := parseNat(l)
		if err != nil {
			t.Fatal(err)
		}
		if x.Cmp(bignum.NatFromWord(16)) >= 0 {
			t.Fatalf("%s is not below 16", l)
		}
	}

	out, err = execute(t, "", "random", "--bits", "16", "--exact", "--prime", "--count", "5", "--seed", "1")
	if err != nil {
		t.Fatal(err)
	}
	for _, l := range lines(out) {
		x, err := parseNat(l)
		if err != nil {
			t.Fatal(err)
		}
		if x.BitLen() != 16 || !x.IsPrime() {
			t.Fatalf("%s is not a 16-bit prime", l)
		}
	}

	if _, err := execute(t, "", "random", "--bits", "1", "--prime"); err == nil {
		t.Fatal("impossible prime request accepted")
	}
}

func TestCacheCommands(t *testing.T) {
	out, err := execute(t, "", "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(strings.TrimSpace(out)) != "cache" {
		t.Fatalf("cache path = %q", out)
	}
	if _, err := execute(t, "", "cache", "clear"); err != nil {
		t.Fatal(err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version", "--format", "json", "--full")
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"tool": "bigcalc"`, `"word_bits"`, `"git_commit": "unknown"`} {
		if !strings.Contains(out, key) {
			t.Fatalf("version json lacks %s:\n%s", key, out)
		}
	}
	if _, err := execute(t, "", "version", "--format", "yaml"); err == nil {
		t.Fatal("unknown format accepted")
	}
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		in   string
		size int
		want string
	}{
		{"1234567", 3, "1_234_567"},
		{"123456", 3, "123_456"},
		{"-123456", 3, "-123_456"},
		{"12", 3, "12"},
		{"ffff", 0, "ffff"},
	}
	for _, tt := range tests {
		if got := groupDigits(tt.in, tt.size); got != tt.want {
			t.Errorf("groupDigits(%q, %d) = %q, want %q", tt.in, tt.size, got, tt.want)
		}
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatal("invalid mode accepted")
	}
}
