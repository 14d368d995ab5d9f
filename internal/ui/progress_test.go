package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"bigcalc/internal/scan"
)

func feed(m tea.Model, events ...scan.Event) tea.Model {
	for _, ev := range events {
		m, _ = m.Update(eventMsg(ev))
	}
	return m
}

func TestProgressCounts(t *testing.T) {
	m := NewProgressModel("scan", 3, nil)
	m = feed(m,
		scan.Event{Index: 0, Label: "M2", Status: scan.StatusQueued},
		scan.Event{Index: 1, Label: "M3", Status: scan.StatusQueued},
		scan.Event{Index: 2, Label: "M4", Status: scan.StatusQueued},
		scan.Event{Index: 0, Label: "M2", Status: scan.StatusWorking},
		scan.Event{Index: 0, Label: "M2", Status: scan.StatusPrime},
		scan.Event{Index: 2, Label: "M4", Status: scan.StatusComposite, Cached: true},
		scan.Event{Index: 7, Label: "bogus", Status: scan.StatusPrime},
	)
	pm := m.(*progressModel)
	if pm.settled != 2 || pm.primes != 1 || pm.cached != 1 {
		t.Fatalf("settled=%d primes=%d cached=%d", pm.settled, pm.primes, pm.cached)
	}
	view := m.View()
	for _, want := range []string{"scan  2/3  primes 1  cached 1", "prime", "*composite", "M4"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "bogus") {
		t.Errorf("out-of-range event rendered:\n%s", view)
	}
}

func TestProgressDoneAndInterrupt(t *testing.T) {
	m := NewProgressModel("range", 1, nil)
	m, cmd := m.Update(doneMsg{})
	if cmd == nil || !strings.HasPrefix(stripSpinner(m.View()), "done: range") {
		t.Fatalf("done view = %q", m.View())
	}
	m = NewProgressModel("range", 1, nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.(*progressModel).interrupted {
		t.Fatalf("ctrl+c not recorded")
	}
}

func TestRecentWindow(t *testing.T) {
	m := NewProgressModel("range", maxRows+5, nil).(*progressModel)
	for i := range maxRows + 5 {
		m.applyEvent(scan.Event{Index: i, Label: "n", Status: scan.StatusComposite})
	}
	m.applyEvent(scan.Event{Index: maxRows + 4, Label: "n", Status: scan.StatusComposite})
	if len(m.recent) != maxRows || m.recent[len(m.recent)-1] != maxRows+4 {
		t.Fatalf("recent = %v", m.recent)
	}
	if m.settled != maxRows+5 {
		t.Fatalf("settled = %d", m.settled)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"12345", 10, "12345"},
		{"123456789012", 8, "12345..."},
		{"12345", 2, "12"},
		{"１２３４５", 6, "１..."},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func stripSpinner(s string) string {
	// lipgloss may emit styling sequences around the header
	if i := strings.Index(s, "done:"); i >= 0 {
		return s[i:]
	}
	return s
}
