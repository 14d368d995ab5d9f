package ui

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"bigcalc/internal/scan"
)

// ErrInterrupted reports that the user stopped the view with ctrl+c.
var ErrInterrupted = errors.New("interrupted")

// RunProgress renders events on out until the channel is closed. When the
// user interrupts the view, onInterrupt is called so the producer can stop;
// the remaining events are drained either way so senders never block.
func RunProgress(title string, total int, events <-chan scan.Event, out io.Writer, onInterrupt func()) error {
	p := tea.NewProgram(NewProgressModel(title, total, events), tea.WithOutput(out))
	final, err := p.Run()
	interrupted := false
	if m, ok := final.(*progressModel); ok {
		interrupted = m.interrupted
	}
	if interrupted && onInterrupt != nil {
		onInterrupt()
	}
	for range events {
	}
	if err != nil {
		return err
	}
	if interrupted {
		return ErrInterrupted
	}
	return nil
}
