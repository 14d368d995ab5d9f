package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <number>...",
	Short: "Convert integers between radixes",
	Long: `Convert integers between radixes 2 through 36.

With --from 0 (the default) numbers may carry a 0x, 0o or 0b prefix.
Underscores in the input are ignored.`,
	Example: `  bigcalc convert --to 16 255
  bigcalc convert --from 2 --to 10 1010_1010
  bigcalc convert --to 36 --upper --group 4 -- -123456789012345678901234567890`,
	Args: cobra.MinimumNArgs(1),
	RunE: run(runConvert),
}

func init() {
	convertCmd.Flags().Int("from", 0, "input radix (0 = detect prefix)")
	convertCmd.Flags().Int("to", 0, "output radix (default from [format].radix)")
	convertCmd.Flags().Bool("upper", false, "uppercase digits")
	convertCmd.Flags().Int("group", -1, "insert _ every N digits (default from [format].group)")
}

func runConvert(s *session, args []string) error {
	flags := s.cmd.Flags()
	from, err := flags.GetInt("from")
	if err != nil {
		return fmt.Errorf("failed to get from flag: %w", err)
	}
	to, err := flags.GetInt("to")
	if err != nil {
		return fmt.Errorf("failed to get to flag: %w", err)
	}
	upper, err := flags.GetBool("upper")
	if err != nil {
		return fmt.Errorf("failed to get upper flag: %w", err)
	}
	group, err := flags.GetInt("group")
	if err != nil {
		return fmt.Errorf("failed to get group flag: %w", err)
	}

	if from != 0 && (from < 2 || from > 36) {
		return fmt.Errorf("--from must be 0 or between 2 and 36, got %d", from)
	}
	format := s.cfg.Format
	if to != 0 {
		if to < 2 || to > 36 {
			return fmt.Errorf("--to must be between 2 and 36, got %d", to)
		}
		format.Radix = to
	}
	if flags.Changed("upper") {
		format.Uppercase = upper
	}
	if group >= 0 {
		format.Group = group
	}

	return s.step("convert", func() error {
		for _, arg := range args {
			x, err := parseInt(arg, from)
			if err != nil {
				return fmt.Errorf("%q: %w", arg, err)
			}
			fmt.Fprintln(s.out(), formatInt(x, format))
		}
		return nil
	})
}
