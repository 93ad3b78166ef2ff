// internal/ui/generate.go
// Package: ui

// Package ui provides the terminal progress view used while fixture files
// are generated. It is never active during a timed run.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mwiater/searchbench/internal/fixture"
)

// ErrInterrupted is returned when the user quits before every file is written.
var ErrInterrupted = errors.New("generation interrupted")

const maxBarWidth = 60

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
)

// jobDoneMsg reports one finished fixture file.
type jobDoneMsg struct {
	job     fixture.Job
	written bool
	err     error
}

// GenerateModel writes fixture files one per command and renders the
// progress of the whole set.
type GenerateModel struct {
	jobs      []fixture.Job
	overwrite bool

	// index of the job in flight
	next  int
	stats fixture.GenerateStats
	err   error

	done     bool
	quitting bool

	progress progress.Model
	spinner  spinner.Model
	width    int
}

// NewGenerateModel returns a model that will write jobs in order.
func NewGenerateModel(jobs []fixture.Job, overwrite bool) *GenerateModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &GenerateModel{
		jobs:      jobs,
		overwrite: overwrite,
		progress:  progress.New(progress.WithDefaultGradient()),
		spinner:   s,
	}
}

// Init starts the spinner and the first job.
func (m *GenerateModel) Init() tea.Cmd {
	if len(m.jobs) == 0 {
		m.done = true
		return tea.Quit
	}
	return tea.Batch(m.spinner.Tick, m.generateCmd())
}

// generateCmd writes the job in flight off the update loop.
func (m *GenerateModel) generateCmd() tea.Cmd {
	if m.next >= len(m.jobs) {
		return nil
	}
	j, overwrite := m.jobs[m.next], m.overwrite
	return func() tea.Msg {
		written, err := j.Generate(overwrite)
		return jobDoneMsg{job: j, written: written, err: err}
	}
}

// Update handles key presses, resizes and finished jobs.
func (m *GenerateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-4, maxBarWidth)

	case jobDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		if msg.written {
			m.stats.Written++
		} else {
			m.stats.Skipped++
		}
		m.next++
		if m.next >= len(m.jobs) {
			m.done = true
			return m, tea.Quit
		}
		return m, m.generateCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Percent is the completed fraction of the set.
func (m *GenerateModel) Percent() float64 {
	if len(m.jobs) == 0 {
		return 1
	}
	return float64(m.next) / float64(len(m.jobs))
}

// View renders the bar, the counts and the file being written.
func (m *GenerateModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}
	if m.done {
		return fmt.Sprintf("\n  %s %s written, %s skipped\n\n",
			titleStyle.Render("Fixtures ready:"),
			humanize.Comma(int64(m.stats.Written)),
			humanize.Comma(int64(m.stats.Skipped)))
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Generating fixtures") + "\n\n")
	b.WriteString("  " + m.progress.ViewAs(m.Percent()) + "\n\n")
	fmt.Fprintf(&b, "  %s %s / %s", m.spinner.View(),
		humanize.Comma(int64(m.next)), humanize.Comma(int64(len(m.jobs))))
	if m.next < len(m.jobs) {
		b.WriteString("  " + pathStyle.Render(m.jobs[m.next].Path))
	}
	b.WriteString("\n\n  q: quit\n")
	return b.String()
}

// Result returns the counts so far and why generation stopped early, if it did.
func (m *GenerateModel) Result() (fixture.GenerateStats, error) {
	switch {
	case m.err != nil:
		return m.stats, m.err
	case !m.done:
		return m.stats, ErrInterrupted
	}
	return m.stats, nil
}

// RunGenerate writes jobs behind the interactive progress view and blocks
// until they are done, the user quits or ctx is canceled.
func RunGenerate(ctx context.Context, jobs []fixture.Job, overwrite bool, opts ...tea.ProgramOption) (fixture.GenerateStats, error) {
	m := NewGenerateModel(jobs, overwrite)
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)
	if _, err := p.Run(); err != nil {
		stats, _ := m.Result()
		return stats, fmt.Errorf("run progress view: %w", err)
	}
	return m.Result()
}
