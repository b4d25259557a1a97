// Package tui provides the Bubble Tea terminal UI for verifylinks,
// displaying live verification progress and a styled summary of results.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lukemcguire/verifylinks/crawler"
	"github.com/lukemcguire/verifylinks/result"
)

// Runner runs a verification pass. *crawler.Verifier implements it.
type Runner interface {
	Run(ctx context.Context) (*result.Report, error)
}

// Model is the Bubble Tea model for the verification TUI.
type Model struct {
	ctx        context.Context
	cancel     context.CancelFunc
	runner     Runner
	spinner    spinner.Model
	progressCh <-chan crawler.CrawlEvent

	checked  int
	total    int
	failing  int
	last     result.Outcome
	quitting bool
	done     bool
	report   *result.Report
	err      error
}

// NewModel creates a TUI model wired to the given runner and progress channel.
func NewModel(ctx context.Context, cancel context.CancelFunc, runner Runner, progressCh <-chan crawler.CrawlEvent) Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		ctx:        ctx,
		cancel:     cancel,
		runner:     runner,
		spinner:    spin,
		progressCh: progressCh,
	}
}

// Init starts the spinner, the run and the progress listener concurrently.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startRun(), waitForProgress(m.progressCh))
}

// startRun returns a tea.Cmd that runs the verifier and sends CrawlDoneMsg.
func (m Model) startRun() tea.Cmd {
	return func() tea.Msg {
		report, err := m.runner.Run(m.ctx)
		return CrawlDoneMsg{Report: report, Err: err}
	}
}

// Update handles messages from the Bubble Tea runtime.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, nil
		}

	case CrawlProgressMsg:
		m.checked = msg.Event.Checked
		m.total = msg.Event.Total
		m.failing = msg.Event.Broken
		m.last = msg.Event.Outcome
		return m, waitForProgress(m.progressCh)

	case progressClosedMsg:
		return m, nil

	case CrawlDoneMsg:
		m.done = true
		m.report = msg.Report
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the current TUI state.
func (m Model) View() string {
	if m.done {
		var seedErr *crawler.SeedError
		switch {
		case errors.As(m.err, &seedErr):
			return errorStyle.Render("FATAL: "+seedErr.Error()) + "\n" +
				dimStyle.Render("Make sure your dev server is running: npm run dev") + "\n"
		case m.report != nil && m.err != nil:
			return RenderSummary(m.report) + errorStyle.Render("Interrupted: "+m.err.Error()) + "\n"
		case m.report != nil:
			return RenderSummary(m.report)
		case m.err != nil:
			return errorStyle.Render("Error: "+m.err.Error()) + "\n"
		}
	}

	status := "Verifying"
	if m.quitting {
		status = "Stopping"
	}
	view := fmt.Sprintf("%s %s... checked %d/%d, failing %d\n",
		m.spinner.View(), status, m.checked, m.total, m.failing)
	if m.last.Link != "" {
		view += dimStyle.Render("  "+outcomeLabel(m.last)) + "\n"
	}
	return view
}

// HasFailures reports whether the run failed: the seed page was unreachable
// or at least one link was broken or unreachable.
func (m Model) HasFailures() bool {
	if m.err != nil {
		return true
	}
	return m.report == nil || m.report.HasFailures()
}

// Report returns the verification report, nil if the run did not complete.
func (m Model) Report() *result.Report {
	return m.report
}

// Err returns the error the run ended with, if any.
func (m Model) Err() error {
	return m.err
}
