// Package observ measures how long the steps of a command take, for the
// --timings flag.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Step records the duration and metadata of one step of a command.
type Step struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of the steps of a command.
// Safe for concurrent use.
type Timer struct {
	mu    sync.Mutex
	steps []Step
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{steps: make([]Step, 0, 8)} }

// Begin starts a new step and returns its index.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.steps = append(t.steps, Step{Name: name, Start: time.Now()})
	return len(t.steps) - 1
}

// End finishes a step by its index.
func (t *Timer) End(idx int, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.steps) {
		return
	}
	s := &t.steps[idx]
	s.Dur = time.Since(s.Start)
	s.Note = note
}

// Track runs fn as a step named name.
func (t *Timer) Track(name string, fn func() error) error {
	idx := t.Begin(name)
	err := fn()
	note := ""
	if err != nil {
		note = "failed"
	}
	t.End(idx, note)
	return err
}

// Summary returns a human-readable string summarizing all tracked steps.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, s := range report.Steps {
		fmt.Fprintf(&sb, "  %-20s %9.3f ms", s.Name, s.DurationMS)
		if s.Note != "" {
			sb.WriteString("  // " + s.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %-20s %9.3f ms\n", "total", report.TotalMS)
	return sb.String()
}

// StepReport is the serializable form of one step.
type StepReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report aggregates the timer for JSON output.
type Report struct {
	TotalMS float64      `json:"total_ms"`
	Steps   []StepReport `json:"steps"`
}

// Report returns the steps and their total duration in milliseconds.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.steps) == 0 {
		return Report{}
	}
	report := Report{
		Steps: make([]StepReport, len(t.steps)),
	}
	var total time.Duration
	for i, s := range t.steps {
		total += s.Dur
		report.Steps[i] = StepReport{
			Name:       s.Name,
			DurationMS: durationToMillis(s.Dur),
			Note:       s.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
