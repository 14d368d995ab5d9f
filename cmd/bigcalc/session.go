package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"bigcalc/internal/config"
	"bigcalc/internal/observ"
	"bigcalc/internal/prof"
	"bigcalc/internal/trace"
)

// session carries what every command needs: configuration, output
// switches, the command span and the step timer.
type session struct {
	cmd     *cobra.Command
	cfg     config.Config
	cfgPath string
	quiet   bool
	ui      uiMode
	timer   *observ.Timer // nil unless --timings
	span    *trace.Span
	tracer  trace.Tracer
	prof    *prof.Profiler
	cleanup func()
}

// openSession reads the global flags, loads configuration and starts
// tracing. Callers must defer close.
func openSession(cmd *cobra.Command) (*session, error) {
	root := cmd.Root().PersistentFlags()

	colorMode, err := root.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	if err := applyColorMode(colorMode); err != nil {
		return nil, err
	}

	uiValue, err := root.GetString("ui")
	if err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return nil, err
	}

	quiet, err := root.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}

	showTimings, err := root.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	configPath, err := root.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	s := &session{cmd: cmd, quiet: quiet, ui: mode}
	if showTimings {
		s.timer = observ.NewTimer()
	}

	if err := s.step("config", func() error {
		return s.loadConfig(configPath)
	}); err != nil {
		return nil, err
	}

	if cmd.Context() == nil {
		cmd.SetContext(context.Background())
	}
	if s.prof, err = setupProfiling(cmd); err != nil {
		return nil, err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		_ = s.prof.Stop()
		return nil, err
	}
	s.cleanup = cleanup
	s.tracer = trace.FromContext(cmd.Context())
	s.span = trace.Begin(s.tracer, trace.ScopeCommand, cmd.CommandPath(), 0)
	if s.cfgPath != "" {
		s.span.WithExtra("config", s.cfgPath)
	}
	cmd.SetContext(trace.WithSpan(cmd.Context(), s.span))
	return s, nil
}

func (s *session) loadConfig(path string) error {
	if path != "" {
		cfg, err := config.Load(filepath.Clean(path))
		if err != nil {
			return err
		}
		s.cfg, s.cfgPath = cfg, path
		return nil
	}
	cfg, found, err := config.Discover(".")
	if err != nil {
		return err
	}
	s.cfg, s.cfgPath = cfg, found
	return nil
}

func (s *session) ctx() context.Context { return s.cmd.Context() }

func (s *session) out() io.Writer { return s.cmd.OutOrStdout() }

func (s *session) errOut() io.Writer { return s.cmd.ErrOrStderr() }

// step runs fn as a timed step when --timings is on.
func (s *session) step(name string, fn func() error) error {
	if s.timer == nil {
		return fn()
	}
	return s.timer.Track(name, fn)
}

// note prints a status line unless --quiet is set.
func (s *session) note(format string, args ...any) {
	if s.quiet {
		return
	}
	fmt.Fprintf(s.errOut(), format+"\n", args...)
}

// close ends the command span, prints timings and releases the tracer.
func (s *session) close(err error) {
	if err != nil {
		s.span.WithExtra("error", err.Error())
	}
	s.span.End("")
	if s.timer != nil {
		fmt.Fprint(s.errOut(), s.timer.Summary())
	}
	if s.cleanup != nil {
		s.cleanup()
	}
	if err := s.prof.Stop(); err != nil {
		fmt.Fprintf(s.errOut(), "profile: %v\n", err)
	}
}

// run wraps a command body with a session.
func run(fn func(s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer func() { s.close(err) }()
		defer dumpTraceOnPanic(s.tracer)
		return fn(s, args)
	}
}

// setupProfiling starts the profilers named by the persistent flags. It
// returns nil when none is requested.
func setupProfiling(cmd *cobra.Command) (*prof.Profiler, error) {
	root := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = root.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = root.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = root.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil, nil
	}
	return prof.Start(opts)
}
