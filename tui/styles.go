package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lukemcguire/verifylinks/result"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	successStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	categoryStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle         = lipgloss.NewStyle().Faint(true)
	urlStyle         = lipgloss.NewStyle()
	statusErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// categoryOrder defines the display order for error categories (most to least actionable).
var categoryOrder = []result.ErrorCategory{
	result.Category4xx,
	result.CategorySoft404,
	result.Category5xx,
	result.CategoryConnectionRefused,
	result.CategoryTimeout,
	result.CategoryDNSFailure,
	result.CategoryRedirectLoop,
	result.CategoryUnknown,
}

// outcomeLabel is the one-line description shown under the spinner.
func outcomeLabel(o result.Outcome) string {
	switch o.Kind {
	case result.Good:
		return fmt.Sprintf("✅ [%d] %s", o.Status, o.Link)
	case result.Broken:
		if o.Reason != "" {
			return fmt.Sprintf("❌ [%d] %s (%s)", o.Status, o.Link, o.Reason)
		}
		return fmt.Sprintf("❌ [%d] %s", o.Status, o.Link)
	default:
		return fmt.Sprintf("⚠️  [ERR] %s - %s", o.Link, o.Error)
	}
}

// RenderSummary produces a Lip Gloss styled summary of a verification report.
func RenderSummary(rep *result.Report) string {
	if rep == nil {
		return errorStyle.Render("No results available.")
	}

	var builder strings.Builder

	counts := fmt.Sprintf("%d working, %d broken, %d errors, %d checked in %s",
		len(rep.Good), len(rep.Broken), len(rep.Errors), rep.Checked(),
		rep.Stats.Duration.Round(time.Millisecond),
	)

	if !rep.HasFailures() {
		builder.WriteString(successStyle.Render("All links are working correctly!"))
		builder.WriteString("\n")
		builder.WriteString(dimStyle.Render(counts))
		builder.WriteString("\n")
		return builder.String()
	}

	// Group failures by error category
	grouped := make(map[result.ErrorCategory][]result.Outcome)
	for _, o := range append(append([]result.Outcome{}, rep.Broken...), rep.Errors...) {
		cat := o.Category
		if cat == "" {
			cat = result.CategoryUnknown
		}
		grouped[cat] = append(grouped[cat], o)
	}

	for _, cat := range categoryOrder {
		outcomes, exists := grouped[cat]
		if !exists || len(outcomes) == 0 {
			continue
		}

		builder.WriteString(categoryStyle.Render(fmt.Sprintf("## %s (%d)", result.FormatCategory(cat), len(outcomes))))
		builder.WriteString("\n")

		rows := make([][]string, 0, len(outcomes))
		for _, o := range outcomes {
			status := fmt.Sprintf("%d", o.Status)
			detail := o.Reason
			if o.Kind == result.TransportError {
				status = "ERR"
				detail = o.Error
			}
			rows = append(rows, []string{o.Link, status, detail})
		}

		catTable := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers("Link", "Status", "Detail").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				if col == 1 { // Status column
					return statusErrorStyle
				}
				return urlStyle
			}).
			Rows(rows...)

		builder.WriteString(catTable.Render())
		builder.WriteString("\n\n")
	}

	builder.WriteString(titleStyle.Render(fmt.Sprintf(
		"Found %d failing links out of %d checked",
		len(rep.Broken)+len(rep.Errors),
		rep.Checked(),
	)))
	builder.WriteString("\n")
	builder.WriteString(dimStyle.Render(counts))
	builder.WriteString("\n")

	return builder.String()
}
