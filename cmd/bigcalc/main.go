package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bigcalc/internal/ui"
	"bigcalc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "bigcalc",
	Short: "Arbitrary-precision integer calculator",
	Long: `bigcalc evaluates integer expressions of any size, converts between
radixes, tests and factors primes, scans for Mersenne primes and encodes
values for storage and JSON-RPC.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(isprimeCmd)
	rootCmd.AddCommand(factorCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(randomCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	registerGlobalFlags(rootCmd)
}

// main executes the root command. Errors are printed once and exit with
// status 1; an interrupted progress view exits with 130.
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bigcalc: %v\n", err)
		if errors.Is(err, ui.ErrInterrupted) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

func registerGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.String("ui", "auto", "progress view for scans (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.String("config", "", "path to bigcalc.toml (default: search upwards from the working directory)")
	flags.String("trace", "", "write trace events to this file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace output format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.Duration("trace-heartbeat", 0, "interval for heartbeat events (0 disables)")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
