package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"bigcalc/internal/bignum"
	"bigcalc/internal/scan"
)

var (
	primeColor     = color.New(color.FgGreen, color.Bold)
	compositeColor = color.New(color.FgRed)
	cachedColor    = color.New(color.Faint)
)

var isprimeCmd = &cobra.Command{
	Use:   "isprime [flags] <number>...",
	Short: "Test numbers for primality",
	Long: `Test numbers for primality with trial division and Miller-Rabin.

Composites are reported with a small factor when one is found. Verdicts are
cached on disk unless [scan].cache is false or --no-cache is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: run(runIsPrime),
}

func init() {
	isprimeCmd.Flags().Int("jobs", 0, "max parallel workers (0 = [scan].jobs)")
	isprimeCmd.Flags().Bool("no-cache", false, "do not read or write the verdict cache")
}

func runIsPrime(s *session, args []string) error {
	jobs, err := s.cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs == 0 {
		jobs = s.cfg.Scan.Jobs
	}

	cands := make([]scan.Candidate, len(args))
	for i, arg := range args {
		x, err := parseNat(arg)
		if err != nil {
			return fmt.Errorf("%q: %w", arg, err)
		}
		cands[i] = scan.Candidate{Label: x.String(), Value: x}
	}

	store, err := openStore(s)
	if err != nil {
		return err
	}

	var results []scan.Result
	err = s.step("test", func() error {
		var err error
		results, err = scan.Run(s.ctx(), cands, scan.Request{
			Jobs:       jobs,
			TrialLimit: s.cfg.Scan.TrialLimit,
			Cache:      store,
		})
		return err
	})
	if err != nil {
		return err
	}
	printVerdicts(s.out(), results, false)
	return nil
}

// printVerdicts writes one aligned line per result. primesOnly skips
// composites.
func printVerdicts(out io.Writer, results []scan.Result, primesOnly bool) {
	width := 0
	for _, r := range results {
		width = max(width, runewidth.StringWidth(r.Label))
	}
	for _, r := range results {
		if primesOnly && !r.Prime {
			continue
		}
		label := runewidth.FillRight(r.Label, width)
		var verdict string
		switch {
		case r.Prime:
			verdict = primeColor.Sprint("prime")
		case r.Value.Cmp(bignum.NatFromWord(2)) < 0:
			verdict = compositeColor.Sprint("not prime")
		case !r.Factor.IsZero():
			verdict = compositeColor.Sprint("composite") + " (divisible by " + r.Factor.String() + ")"
		default:
			verdict = compositeColor.Sprint("composite")
		}
		if r.Cached {
			verdict += cachedColor.Sprint(" [cached]")
		}
		fmt.Fprintf(out, "%s  %s\n", label, verdict)
	}
}
