package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bigcalc/internal/primecache"
	"bigcalc/internal/scan"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the primality verdict cache",
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache directory",
	Args:  cobra.NoArgs,
	RunE: run(func(s *session, _ []string) error {
		c, err := primecache.Open(s.cfg.Cache.Dir)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out(), c.Dir())
		return nil
	}),
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached verdict",
	Args:  cobra.NoArgs,
	RunE: run(func(s *session, _ []string) error {
		c, err := primecache.Open(s.cfg.Cache.Dir)
		if err != nil {
			return err
		}
		if err := s.step("clear", c.DropAll); err != nil {
			return err
		}
		s.note("cleared %s", c.Dir())
		return nil
	}),
}

func init() {
	cacheCmd.AddCommand(cachePathCmd, cacheClearCmd)
}

// openStore returns the verdict store for this run, or nil when caching
// is disabled by configuration or --no-cache.
func openStore(s *session) (scan.Store, error) {
	enabled := s.cfg.Scan.Cache
	if s.cmd.Flags().Lookup("no-cache") != nil {
		noCache, err := s.cmd.Flags().GetBool("no-cache")
		if err != nil {
			return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
		}
		enabled = enabled && !noCache
	}
	if !enabled {
		return nil, nil
	}
	var disk *primecache.Cache
	err := s.step("cache-open", func() error {
		var err error
		disk, err = primecache.Open(s.cfg.Cache.Dir)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open verdict cache: %w", err)
	}
	return primecache.NewMemo(0, disk), nil
}
