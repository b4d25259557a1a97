package result

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var rule = strings.Repeat("=", 60)

// Printer writes the streaming progress lines and the final report to out,
// and fatal errors to errOut. Colors are only emitted when the destination is
// a terminal.
type Printer struct {
	w       io.Writer
	errW    io.Writer
	good    lipgloss.Style
	bad     lipgloss.Style
	warn    lipgloss.Style
	bold    lipgloss.Style
	dim     lipgloss.Style
	errBad  lipgloss.Style
	errWarn lipgloss.Style
}

// NewPrinter returns a Printer writing the report to out and fatal errors to
// errOut.
func NewPrinter(out, errOut io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	er := lipgloss.NewRenderer(errOut)
	return &Printer{
		w:       out,
		errW:    errOut,
		good:    r.NewStyle().Foreground(lipgloss.Color("10")),
		bad:     r.NewStyle().Foreground(lipgloss.Color("9")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("11")),
		bold:    r.NewStyle().Bold(true),
		dim:     r.NewStyle().Faint(true),
		errBad:  er.NewStyle().Foreground(lipgloss.Color("9")),
		errWarn: er.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

func (p *Printer) writef(format string, a ...any) {
	_, _ = fmt.Fprintf(p.w, format, a...)
}

func (p *Printer) errorf(format string, a ...any) {
	_, _ = fmt.Fprintf(p.errW, format, a...)
}

// Start prints the banner and announces the seed fetch.
func (p *Printer) Start(baseURL string) {
	p.writef("%s\n\n", p.bold.Render("🔍 Link Crawler Starting..."))
	p.writef("📍 Base URL: %s\n\n", baseURL)
	p.writef("%s\n\n", rule)
	p.writef("📥 Fetching homepage...\n\n")
}

// SeedOK confirms the seed page was fetched.
func (p *Printer) SeedOK(status int) {
	p.writef("%s\n\n", p.good.Render(fmt.Sprintf("✅ Homepage fetched successfully (Status: %d)", status)))
}

// SeedFailed prints the fatal seed failure. errMsg may be empty when the
// server answered with a non-2xx status.
func (p *Printer) SeedFailed(status int, errMsg string) {
	p.errorf("%s\n", p.errBad.Render("❌ FATAL: Could not fetch homepage!"))
	p.errorf("   Status: %d\n", status)
	if errMsg != "" {
		p.errorf("   Error: %s\n", errMsg)
	}
	p.errorf("\n%s\n\n", p.errWarn.Render("⚠️  Make sure your dev server is running: npm run dev"))
}

// Discovered prints what the seed page contained.
func (p *Printer) Discovered(s Stats) {
	p.writef("📝 Found %d total links on homepage\n\n", s.LinksFound)
	p.writef("🔗 Internal links to verify: %d\n", s.Internal)
	p.writef("🌐 External links (skipped): %d\n", s.ExternalTotal())
	if s.ExternalTotal() > 0 {
		p.writef("%s\n", p.dim.Render(fmt.Sprintf("   (%d denylisted, %d other hosts, %d non-page)",
			s.Denylisted, s.External, s.Skipped)))
	}
	p.writef("\n%s\n\n", rule)
}

// Outcome prints the progress line for a single verified link.
func (p *Printer) Outcome(o Outcome) {
	p.writef("%s\n", p.OutcomeLine(o))
}

// OutcomeLine formats the progress line for o without a trailing newline.
func (p *Printer) OutcomeLine(o Outcome) string {
	switch o.Kind {
	case Good:
		return p.good.Render(fmt.Sprintf("✅ [%d] %s", o.Status, o.Link))
	case Broken:
		if o.Reason != "" {
			return p.bad.Render(fmt.Sprintf("❌ [%d] %s (%s)", o.Status, o.Link, o.Reason))
		}
		return p.bad.Render(fmt.Sprintf("❌ [%d] %s (BROKEN LINK DETECTED)", o.Status, o.Link))
	default:
		return p.warn.Render(fmt.Sprintf("⚠️  [ERR] %s - %s", o.Link, o.Error))
	}
}

// Summary prints the aggregate counts followed by a detailed listing of every
// broken link and connection error.
func (p *Printer) Summary(r *Report) {
	p.writef("\n%s\n", rule)
	p.writef("\n%s\n\n", p.bold.Render("📊 SUMMARY REPORT"))
	p.writef("   ✅ Working links: %d\n", len(r.Good))
	p.writef("   ❌ Broken links:  %d\n", len(r.Broken))
	p.writef("   ⚠️  Errors:       %d\n", len(r.Errors))
	p.writef("   📝 Total checked: %d\n", r.Checked())
	if r.Stats.Duration > 0 {
		p.writef("%s\n", p.dim.Render(fmt.Sprintf("   ⏱️  Duration:     %s", r.Stats.Duration.Round(time.Millisecond))))
	}

	if len(r.Broken) > 0 {
		p.writef("\n%s\n", rule)
		p.writef("\n%s\n\n", p.bad.Render("🚨 BROKEN LINKS FOUND:"))
		for _, o := range r.Broken {
			p.writef("   ❌ %s\n", o.Link)
			if o.Reason != "" {
				p.writef("      Status: %d | Reason: %s\n", o.Status, o.Reason)
			} else {
				p.writef("      Status: %d\n", o.Status)
			}
		}
	}

	if len(r.Errors) > 0 {
		p.writef("\n%s\n", rule)
		p.writef("\n%s\n\n", p.warn.Render("⚠️  CONNECTION ERRORS:"))
		for _, o := range r.Errors {
			p.writef("   ⚠️  %s\n", o.Link)
			p.writef("      Error: %s\n", o.Error)
		}
	}

	if !r.HasFailures() {
		p.writef("\n%s\n\n", p.good.Render("🎉 All links are working correctly!"))
	}

	p.writef("%s\n\n", rule)
}
