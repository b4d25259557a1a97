package crawler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lukemcguire/verifylinks/config"
	"github.com/lukemcguire/verifylinks/result"
)

// FetchResult is the outcome of a single GET. Status 0 with a non-empty Err
// marks a transport failure, as opposed to an HTTP error status.
type FetchResult struct {
	Status   int
	Body     string
	OK       bool // Status in 200-299
	Err      string
	Category result.ErrorCategory // set for transport failures only
}

// Failed reports whether the request never produced an HTTP response.
func (r FetchResult) Failed() bool {
	return r.Err != ""
}

// Fetcher performs GET requests with a fixed User-Agent, following redirects.
type Fetcher struct {
	client    *http.Client
	userAgent string
	policy    RetryPolicy
	logger    *slog.Logger
}

// NewFetcher creates a Fetcher from cfg. A zero RequestTimeout leaves the
// client without a timeout. logger may be nil.
func NewFetcher(cfg config.Config, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	policy := DefaultRetryPolicy()
	policy.MaxRetries = cfg.Retries
	if cfg.RetryDelay > 0 {
		policy.BaseDelay = cfg.RetryDelay
	}
	return &Fetcher{
		client:    &http.Client{Timeout: cfg.RequestTimeout},
		userAgent: cfg.UserAgent,
		policy:    policy,
		logger:    logger,
	}
}

// Fetch performs a single GET against rawURL. It never returns an error:
// request construction, transport and body read failures are all reported
// in the FetchResult.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) FetchResult {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return transportFailure(fmt.Errorf("create request: %w", err))
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug("fetch failed", "url", rawURL, "error", err, "elapsed", time.Since(start))
		return transportFailure(err)
	}

	body, readErr := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()
	if readErr != nil {
		return transportFailure(fmt.Errorf("read body: %w", readErr))
	}
	if closeErr != nil {
		f.logger.Debug("close response body", "url", rawURL, "error", closeErr)
	}

	f.logger.Debug("fetched", "url", rawURL, "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(start))

	return FetchResult{
		Status: resp.StatusCode,
		Body:   string(body),
		OK:     resp.StatusCode >= 200 && resp.StatusCode <= 299,
	}
}

func transportFailure(err error) FetchResult {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "unknown transport error"
	}
	return FetchResult{
		Err:      msg,
		Category: result.TransportCategory(err),
	}
}
