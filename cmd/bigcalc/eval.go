package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bigcalc/internal/rpn"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] [--] <token>...",
	Short: "Evaluate a reverse-Polish expression",
	Long: `Evaluate a reverse-Polish expression and print the final stack, bottom first.

Operators: + - * / % mod ** ^ & | xor << >> gcd inv powmod
           neg abs not sqrt isprime fib ! dup swap drop

Tokens that start with '-' must follow "--" or be passed through --expr.
Without tokens, each line of standard input is evaluated on its own.`,
	Example: `  bigcalc eval 2 127 '**' 1 -
  bigcalc eval -e "-7 2 mod"
  echo "4 13 497 powmod" | bigcalc eval`,
	RunE: run(runEval),
}

func init() {
	evalCmd.Flags().StringP("expr", "e", "", "expression as a single string")
	evalCmd.Flags().Int("radix", 0, "output radix (default from [format].radix)")
	evalCmd.Flags().Int("max-bits", 0, "refuse results estimated above this many bits (0 = default)")
}

func runEval(s *session, args []string) error {
	flags := s.cmd.Flags()
	expr, err := flags.GetString("expr")
	if err != nil {
		return fmt.Errorf("failed to get expr flag: %w", err)
	}
	radix, err := flags.GetInt("radix")
	if err != nil {
		return fmt.Errorf("failed to get radix flag: %w", err)
	}
	maxBits, err := flags.GetInt("max-bits")
	if err != nil {
		return fmt.Errorf("failed to get max-bits flag: %w", err)
	}

	format := s.cfg.Format
	if radix != 0 {
		if radix < 2 || radix > 36 {
			return fmt.Errorf("--radix must be between 2 and 36, got %d", radix)
		}
		format.Radix = radix
	}
	opts := rpn.Options{Mul: s.cfg.Engine(), MaxBits: maxBits}

	evalLine := func(tokens []string) error {
		return s.step("eval", func() error {
			stack, err := rpn.Eval(s.ctx(), tokens, opts)
			if err != nil {
				return err
			}
			for _, x := range stack {
				fmt.Fprintln(s.out(), formatInt(x, format))
			}
			return nil
		})
	}

	tokens := append(strings.Fields(expr), args...)
	if len(tokens) > 0 {
		return evalLine(tokens)
	}

	sc := bufio.NewScanner(s.cmd.InOrStdin())
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := evalLine(strings.Fields(line)); err != nil {
			return err
		}
	}
	return sc.Err()
}
