// Package result holds verification outcomes, the aggregate report and the
// human-readable printer.
package result

import "time"

// OutcomeKind is the bucket an outcome lands in.
type OutcomeKind int

const (
	Good OutcomeKind = iota
	Broken
	TransportError
)

func (k OutcomeKind) String() string {
	switch k {
	case Good:
		return "good"
	case Broken:
		return "broken"
	case TransportError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the verdict for a single internal link. It is created once and
// never mutated after being added to a Report.
type Outcome struct {
	Kind     OutcomeKind
	Link     string        // normalized link as discovered
	URL      string        // fully-qualified URL that was fetched
	Status   int           // HTTP status code (0 for transport errors)
	Reason   string        // content heuristic that flagged a 2xx page
	Error    string        // transport error message
	Category ErrorCategory // empty for Good outcomes
}

// Stats describes what the seed page contained and how long the run took.
type Stats struct {
	LinksFound int // unique hrefs on the seed page
	Internal   int // unique internal links after normalization
	Denylisted int // hrefs to known external platforms
	External   int // hrefs to any other host
	Skipped    int // mailto:, tel:, javascript:, fragments, unparsable
	Duration   time.Duration
}

// ExternalTotal is the number of hrefs excluded from verification.
func (s Stats) ExternalTotal() int {
	return s.Denylisted + s.External + s.Skipped
}

// Report is the complete output of a verification run.
type Report struct {
	BaseURL    string
	SeedStatus int
	Good       []Outcome
	Broken     []Outcome
	Errors     []Outcome
	Stats      Stats
}

// Add appends o to the sequence matching its kind.
func (r *Report) Add(o Outcome) {
	switch o.Kind {
	case Good:
		r.Good = append(r.Good, o)
	case Broken:
		r.Broken = append(r.Broken, o)
	default:
		r.Errors = append(r.Errors, o)
	}
}

// Checked is the number of links verified so far.
func (r *Report) Checked() int {
	return len(r.Good) + len(r.Broken) + len(r.Errors)
}

// HasFailures reports whether any link was broken or unreachable.
func (r *Report) HasFailures() bool {
	return len(r.Broken)+len(r.Errors) > 0
}

// ExitCode is 1 if any link was broken or unreachable and 0 otherwise.
func (r *Report) ExitCode() int {
	if r.HasFailures() {
		return 1
	}
	return 0
}
