package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"bigcalc/internal/scan"
)

// maxRows bounds how many candidates are listed below the header.
const maxRows = 12

type progressModel struct {
	title   string
	events  <-chan scan.Event
	spinner spinner.Model
	prog    progress.Model
	items   []candidateItem
	recent  []int // indexes of the latest updated candidates, newest last
	primes  int
	cached  int
	settled int
	width   int
	done    bool
	// interrupted is set when the user pressed ctrl+c
	interrupted bool
}

type candidateItem struct {
	label  string
	status scan.Status
	cached bool
}

type eventMsg scan.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders scan progress
// for total candidates. It quits when events is closed.
func NewProgressModel(title string, total int, events <-chan scan.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   make([]candidateItem, total),
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(scan.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.interrupted = true
			return m, tea.Quit
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s  %d/%d  primes %d  cached %d", m.title, m.settled, len(m.items), m.primes, m.cached)
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 10
	nameWidth := max(m.width-statusWidth-4, 20)

	for _, idx := range m.recent {
		item := m.items[idx]
		status := item.status.String()
		if item.cached {
			status = "*" + status
		}
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%10s", status))
		b.WriteString(fmt.Sprintf("  %s %s\n", statusStyled, truncate(item.label, nameWidth)))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev scan.Event) tea.Cmd {
	if ev.Index < 0 || ev.Index >= len(m.items) {
		return nil
	}
	item := &m.items[ev.Index]
	item.label = ev.Label
	if ev.Status == scan.StatusQueued {
		item.status = ev.Status
		return nil
	}
	if !item.status.Done() && ev.Status.Done() {
		m.settled++
		if ev.Status == scan.StatusPrime {
			m.primes++
		}
		if ev.Cached {
			m.cached++
		}
	}
	item.status = ev.Status
	item.cached = ev.Cached
	m.touch(ev.Index)

	if len(m.items) == 0 {
		return nil
	}
	return m.prog.SetPercent(float64(m.settled) / float64(len(m.items)))
}

// touch moves idx to the end of the recent list.
func (m *progressModel) touch(idx int) {
	for i, r := range m.recent {
		if r == idx {
			m.recent = append(m.recent[:i], m.recent[i+1:]...)
			break
		}
	}
	m.recent = append(m.recent, idx)
	if len(m.recent) > maxRows {
		m.recent = m.recent[len(m.recent)-maxRows:]
	}
}

func styleStatus(status scan.Status) lipgloss.Style {
	switch status {
	case scan.StatusPrime:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case scan.StatusError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case scan.StatusWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
