package main

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"bigcalc/internal/bignum"
	"bigcalc/internal/hexquant"
)

// maxRandomBits bounds --bits so a typo cannot exhaust memory.
const maxRandomBits = 1 << 26

var randomBelow hexquant.HexOrDecimal

var randomCmd = &cobra.Command{
	Use:   "random [flags]",
	Short: "Print uniformly distributed random integers",
	Example: `  bigcalc random --bits 256
  bigcalc random --bits 2048 --exact --prime
  bigcalc random --below 0xffffffff00000001 --count 4 --seed 7`,
	Args: cobra.NoArgs,
	RunE: run(runRandom),
}

func init() {
	randomCmd.Flags().Int("bits", 64, "values are below 2**bits")
	randomCmd.Flags().Bool("exact", false, "set the top bit so values have exactly --bits bits")
	randomCmd.Flags().Var(&randomBelow, "below", "draw from [0, below) instead of using --bits")
	randomCmd.Flags().Int("count", 1, "how many values to print")
	randomCmd.Flags().Int64("seed", -1, "seed for a reproducible sequence (-1 = random)")
	randomCmd.Flags().Bool("prime", false, "draw until the value is a probable prime")
}

func runRandom(s *session, _ []string) error {
	flags := s.cmd.Flags()
	bits, err := flags.GetInt("bits")
	if err != nil {
		return fmt.Errorf("failed to get bits flag: %w", err)
	}
	exact, err := flags.GetBool("exact")
	if err != nil {
		return fmt.Errorf("failed to get exact flag: %w", err)
	}
	count, err := flags.GetInt("count")
	if err != nil {
		return fmt.Errorf("failed to get count flag: %w", err)
	}
	seed, err := flags.GetInt64("seed")
	if err != nil {
		return fmt.Errorf("failed to get seed flag: %w", err)
	}
	wantPrime, err := flags.GetBool("prime")
	if err != nil {
		return fmt.Errorf("failed to get prime flag: %w", err)
	}

	if bits < 0 || bits > maxRandomBits {
		return fmt.Errorf("--bits must be between 0 and %d, got %d", maxRandomBits, bits)
	}
	useBelow := flags.Changed("below")
	if useBelow && randomBelow.IsZero() {
		return errors.New("--below must be positive")
	}

	if wantPrime {
		if useBelow && randomBelow.Cmp(bignum.NatFromWord(3)) < 0 || !useBelow && bits < 2 {
			return errors.New("--prime needs a range that contains a prime")
		}
	}

	var r *rand.Rand
	if seed != -1 {
		u, err := safecast.Conv[uint64](seed)
		if err != nil {
			return fmt.Errorf("--seed must be -1 or non-negative: %w", err)
		}
		r = rand.New(rand.NewPCG(u, u^0x9e3779b97f4a7c15))
	}

	draw := func() bignum.Nat {
		switch {
		case useBelow:
			return bignum.RandomNatLessThan(r, randomBelow.Nat)
		case exact:
			return bignum.RandomNatExactWidth(r, bits)
		default:
			return bignum.RandomNatMaxWidth(r, bits)
		}
	}

	return s.step("random", func() error {
		for range count {
			x := draw()
			for wantPrime && !x.IsPrime() {
				if err := s.ctx().Err(); err != nil {
					return err
				}
				x = draw()
			}
			fmt.Fprintln(s.out(), formatInt(bignum.IntFromNat(bignum.Plus, x), s.cfg.Format))
		}
		return nil
	})
}
