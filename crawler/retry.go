package crawler

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// RetryPolicy configures retry behavior for failed requests.
type RetryPolicy struct {
	MaxRetries int           // Extra attempts after the first (0 = single attempt)
	BaseDelay  time.Duration // Initial backoff delay
	MaxDelay   time.Duration // Maximum backoff cap
}

// DefaultRetryPolicy returns a single-attempt policy with 1s base delay and
// 30s max delay for when retries are enabled.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 0,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// FetchWithRetry wraps Fetch with exponential backoff. It retries transport
// failures, 429 and 5xx responses; everything else returns immediately.
// Cancelling ctx during a backoff wait returns the last result.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) FetchResult {
	backoff := f.policy.BaseDelay
	var last FetchResult
	var attempts int

	for attempt := 0; attempt <= f.policy.MaxRetries; attempt++ {
		attempts = attempt + 1

		if attempt > 0 {
			select {
			case <-ctx.Done():
				return last
			case <-time.After(backoff):
				backoff = min(backoff*2, f.policy.MaxDelay)
			}
			f.logger.Debug("retrying", "url", rawURL, "attempt", attempts)
		}

		last = f.Fetch(ctx, rawURL)
		if !shouldRetry(last) {
			return last
		}
	}

	if last.Failed() && attempts > 1 {
		last.Err = fmt.Sprintf("%s (after %d attempts)", last.Err, attempts)
	}
	return last
}

// shouldRetry returns true for transport failures, 429 Too Many Requests and
// 5xx server errors.
func shouldRetry(res FetchResult) bool {
	if res.Failed() {
		return true
	}
	return res.Status == http.StatusTooManyRequests || res.Status >= 500
}
