package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bigcalc/internal/factor"
)

var factorCmd = &cobra.Command{
	Use:   "factor [flags] <number>...",
	Short: "Print the prime factors of numbers",
	Long: `Print the prime factors of each number in ascending order, like coreutils
factor. Small primes are removed by trial division; the rest are split with
Pollard's rho and checked with Miller-Rabin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: run(runFactor),
}

func init() {
	factorCmd.Flags().Int("trial-limit", 0, "largest trial divisor (0 = default)")
	factorCmd.Flags().Int("max-iterations", 0, "rho steps per attempt before giving up (0 = default)")
}

func runFactor(s *session, args []string) error {
	trialLimit, err := s.cmd.Flags().GetInt("trial-limit")
	if err != nil {
		return fmt.Errorf("failed to get trial-limit flag: %w", err)
	}
	maxIter, err := s.cmd.Flags().GetInt("max-iterations")
	if err != nil {
		return fmt.Errorf("failed to get max-iterations flag: %w", err)
	}
	opts := factor.Options{TrialLimit: trialLimit, MaxIterations: maxIter, Mul: s.cfg.Engine()}

	for _, arg := range args {
		n, err := parseNat(arg)
		if err != nil {
			return fmt.Errorf("%q: %w", arg, err)
		}
		var factors []string
		err = s.step("factor "+n.String(), func() error {
			found, err := factor.Factor(s.ctx(), n, opts)
			for _, f := range found {
				factors = append(factors, f.String())
			}
			return err
		})
		if errors.Is(err, factor.ErrGaveUp) {
			fmt.Fprintln(s.out(), factorLine(n.String(), append(factors, "?")))
			return err
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out(), factorLine(n.String(), factors))
	}
	return nil
}

func factorLine(n string, factors []string) string {
	if len(factors) == 0 {
		return n + ":"
	}
	return n + ": " + strings.Join(factors, " ")
}
