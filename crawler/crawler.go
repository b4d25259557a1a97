// Package crawler verifies the internal links of a storefront's homepage.
// It fetches the seed page once, extracts and classifies its anchors, then
// checks each internal link one at a time, in discovery order.
package crawler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/lukemcguire/verifylinks/config"
	"github.com/lukemcguire/verifylinks/result"
	"github.com/lukemcguire/verifylinks/urlutil"
)

// SeedError is returned by Run when the seed page cannot be fetched with a
// 2xx status. No links are checked in that case.
type SeedError struct {
	URL    string
	Status int
	Err    string
}

func (e *SeedError) Error() string {
	if e.Err != "" {
		return fmt.Sprintf("fetch seed page %s: %s", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch seed page %s: status %d", e.URL, e.Status)
}

// Observer receives progress as it happens. *result.Printer implements it.
type Observer interface {
	SeedOK(status int)
	Discovered(stats result.Stats)
	Outcome(o result.Outcome)
}

type nopObserver struct{}

func (nopObserver) SeedOK(int)              {}
func (nopObserver) Discovered(result.Stats) {}
func (nopObserver) Outcome(result.Outcome)  {}

// Option customizes a Verifier.
type Option func(*Verifier)

// WithFetcher replaces the default fetcher.
func WithFetcher(f *Fetcher) Option {
	return func(v *Verifier) { v.fetcher = f }
}

// WithContentCheck replaces the soft-failure heuristics applied to 2xx bodies.
func WithContentCheck(check ContentCheck) Option {
	return func(v *Verifier) { v.check = check }
}

// WithObserver streams progress to o.
func WithObserver(o Observer) Option {
	return func(v *Verifier) { v.observer = o }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Verifier) { v.logger = l }
}

// Verifier runs a single verification pass.
type Verifier struct {
	cfg        config.Config
	fetcher    *Fetcher
	classifier *urlutil.Classifier
	check      ContentCheck
	observer   Observer
	logger     *slog.Logger
	progressCh chan<- CrawlEvent
}

// New creates a Verifier with the given configuration.
// The progressCh parameter is optional; pass nil to disable progress events.
func New(cfg config.Config, progressCh chan<- CrawlEvent, opts ...Option) *Verifier {
	v := &Verifier{
		cfg:        cfg,
		observer:   nopObserver{},
		progressCh: progressCh,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if v.fetcher == nil {
		v.fetcher = NewFetcher(cfg, v.logger)
	}
	if v.check == nil {
		v.check = DefaultContentCheck(cfg.BaseURL)
	}

	localHosts := append([]string{cfg.BaseHost()}, cfg.LocalHosts...)
	v.classifier = urlutil.NewClassifier(localHosts, cfg.ExternalDomains)
	return v
}

// Run fetches the seed page and verifies every internal link on it.
// A *SeedError is returned if the seed page is unreachable or not 2xx.
// Per-link failures are never errors; they are recorded in the report.
// Cancelling ctx stops the run and returns the partial report with the
// context error. A link whose fetch was interrupted is left out of the report.
func (v *Verifier) Run(ctx context.Context) (*result.Report, error) {
	start := time.Now()

	seed := v.fetcher.FetchWithRetry(ctx, v.cfg.BaseURL)
	if !seed.OK {
		return nil, &SeedError{URL: v.cfg.BaseURL, Status: seed.Status, Err: seed.Err}
	}
	v.observer.SeedOK(seed.Status)

	links, stats := v.discover(seed.Body)
	v.observer.Discovered(stats)
	v.logger.Debug("discovered links", "found", stats.LinksFound, "internal", stats.Internal,
		"denylisted", stats.Denylisted, "external", stats.External, "skipped", stats.Skipped)

	report := &result.Report{
		BaseURL:    v.cfg.BaseURL,
		SeedStatus: seed.Status,
		Stats:      stats,
	}

	stopped := func(done int, err error) (*result.Report, error) {
		report.Stats.Duration = time.Since(start)
		return report, fmt.Errorf("verification stopped after %d of %d links: %w", done, len(links), err)
	}

	for i, link := range links {
		if err := ctx.Err(); err != nil {
			return stopped(i, err)
		}

		outcome := v.verify(ctx, link)
		// A fetch cut short by cancellation says nothing about the link.
		if err := ctx.Err(); err != nil {
			return stopped(i, err)
		}
		report.Add(outcome)
		v.observer.Outcome(outcome)

		if v.progressCh != nil {
			evt := CrawlEvent{
				Outcome: outcome,
				Checked: report.Checked(),
				Total:   len(links),
				Broken:  len(report.Broken) + len(report.Errors),
			}
			select {
			case v.progressCh <- evt:
			case <-ctx.Done():
			}
		}
	}

	report.Stats.Duration = time.Since(start)
	return report, nil
}

// discover extracts and classifies the seed page's anchors. It returns the
// unique normalized internal links in discovery order.
func (v *Verifier) discover(body string) ([]string, result.Stats) {
	hrefs := ExtractLinks(body)
	stats := result.Stats{LinksFound: len(hrefs)}

	seen := make(map[string]bool)
	var internal []string
	for _, href := range hrefs {
		link := v.classifier.Classify(href)
		switch link.Kind {
		case urlutil.Local:
			if !seen[link.Normalized] {
				seen[link.Normalized] = true
				internal = append(internal, link.Normalized)
			}
		case urlutil.Denylisted:
			stats.Denylisted++
		case urlutil.OtherExternal:
			stats.External++
		default:
			stats.Skipped++
		}
	}
	stats.Internal = len(internal)
	return internal, stats
}

// verify fetches a single normalized link and decides its outcome.
func (v *Verifier) verify(ctx context.Context, link string) result.Outcome {
	outcome := result.Outcome{Link: link}

	target, err := urlutil.ResolveReference(v.cfg.BaseURL, link)
	if err != nil {
		outcome.Kind = result.TransportError
		outcome.Error = err.Error()
		outcome.Category = result.CategoryUnknown
		return outcome
	}
	outcome.URL = target

	res := v.fetcher.FetchWithRetry(ctx, target)
	outcome.Status = res.Status

	switch {
	case res.Failed():
		outcome.Kind = result.TransportError
		outcome.Error = res.Err
		outcome.Category = res.Category
	case res.Status >= 400:
		outcome.Kind = result.Broken
		outcome.Category = result.StatusCategory(res.Status, false)
	default:
		if reason, broken := v.check(link, res.Body); broken {
			outcome.Kind = result.Broken
			outcome.Reason = reason
			outcome.Category = result.StatusCategory(res.Status, true)
		} else {
			outcome.Kind = result.Good
		}
	}
	return outcome
}
