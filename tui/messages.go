package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lukemcguire/verifylinks/crawler"
	"github.com/lukemcguire/verifylinks/result"
)

// CrawlProgressMsg reports progress for a single verified link.
type CrawlProgressMsg struct {
	Event crawler.CrawlEvent
}

// CrawlDoneMsg signals the run has completed.
type CrawlDoneMsg struct {
	Report *result.Report
	Err    error
}

// progressClosedMsg is sent when the progress channel closes.
type progressClosedMsg struct{}

// waitForProgress returns a tea.Cmd that reads one event from the progress
// channel.
func waitForProgress(ch <-chan crawler.CrawlEvent) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return progressClosedMsg{}
		}
		return CrawlProgressMsg{Event: evt}
	}
}
