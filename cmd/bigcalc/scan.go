package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"bigcalc/internal/hexquant"
	"bigcalc/internal/scan"
	"bigcalc/internal/ui"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Search for primes in parallel",
}

var (
	scanFrom hexquant.HexOrDecimal
	scanTo   hexquant.HexOrDecimal
)

var scanMersenneCmd = &cobra.Command{
	Use:   "mersenne --to P [--from P]",
	Short: "Test 2**p - 1 for every exponent p in [from, to)",
	Example: `  bigcalc scan mersenne --to 1280
  bigcalc scan mersenne --from 2000 --to 2300 --jobs 8 --ui off`,
	Args: cobra.NoArgs,
	RunE: run(func(s *session, _ []string) error {
		from, okFrom := scanFrom.Int()
		to, okTo := scanTo.Int()
		if !okFrom || !okTo {
			return fmt.Errorf("%w: exponent exceeds %d", scan.ErrRangeTooLarge, scan.MaxMersenneExponent)
		}
		cands, err := scan.MersenneCandidates(from, to)
		if err != nil {
			return err
		}
		return runScan(s, fmt.Sprintf("mersenne [%d, %d)", from, to), cands)
	}),
}

var scanRangeCmd = &cobra.Command{
	Use:   "range --to N [--from N]",
	Short: "Test every integer in [from, to)",
	Example: `  bigcalc scan range --from 1000000 --to 1000100
  bigcalc scan range --from 0xffffffffffffff00 --to 0x10000000000000000 --all`,
	Args: cobra.NoArgs,
	RunE: run(func(s *session, _ []string) error {
		cands, err := scan.RangeCandidates(scanFrom.Nat, scanTo.Nat)
		if err != nil {
			return err
		}
		return runScan(s, fmt.Sprintf("range [%s, %s)", scanFrom.Nat, scanTo.Nat), cands)
	}),
}

func init() {
	scanCmd.PersistentFlags().Var(&scanFrom, "from", "first value, inclusive (decimal or 0x hex)")
	scanCmd.PersistentFlags().Var(&scanTo, "to", "end value, exclusive (decimal or 0x hex)")
	scanCmd.PersistentFlags().Int("jobs", 0, "max parallel workers (0 = [scan].jobs)")
	scanCmd.PersistentFlags().Bool("no-cache", false, "do not read or write the verdict cache")
	scanCmd.PersistentFlags().Bool("all", false, "list composites as well as primes")
	_ = scanCmd.MarkPersistentFlagRequired("to")
	scanCmd.AddCommand(scanMersenneCmd, scanRangeCmd)
}

func runScan(s *session, title string, cands []scan.Candidate) error {
	flags := s.cmd.Flags()
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs == 0 {
		jobs = s.cfg.Scan.Jobs
	}
	all, err := flags.GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}

	store, err := openStore(s)
	if err != nil {
		return err
	}
	req := scan.Request{Jobs: jobs, TrialLimit: s.cfg.Scan.TrialLimit, Cache: store}

	var results []scan.Result
	err = s.step("scan", func() error {
		var err error
		if shouldUseTUI(s.ui) {
			results, err = runScanWithUI(s.ctx(), s, title, cands, req)
		} else {
			results, err = scan.Run(s.ctx(), cands, req)
		}
		return err
	})
	if err != nil {
		return err
	}

	primes := 0
	for _, r := range results {
		if r.Prime {
			primes++
		}
	}
	printVerdicts(s.out(), results, !all)
	s.note("%s: %d of %d prime", title, primes, len(results))
	return nil
}

type scanOutcome struct {
	results []scan.Result
	err     error
}

// runScanWithUI runs the scan while a progress view consumes its events.
// Interrupting the view cancels the scan.
func runScanWithUI(ctx context.Context, s *session, title string, cands []scan.Candidate, req scan.Request) ([]scan.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan scan.Event, 256)
	outcomeCh := make(chan scanOutcome, 1)

	go func() {
		reqCopy := req
		reqCopy.Sink = scan.ChannelSink(events)
		res, err := scan.Run(ctx, cands, reqCopy)
		outcomeCh <- scanOutcome{results: res, err: err}
		close(events)
	}()

	uiErr := ui.RunProgress(title, len(cands), events, s.errOut(), cancel)
	outcome := <-outcomeCh
	if uiErr != nil {
		return nil, uiErr
	}
	return outcome.results, outcome.err
}
