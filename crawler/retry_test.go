package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lukemcguire/verifylinks/config"
)

func TestDefaultRetryPolicy(t *testing.T) {
	policy := DefaultRetryPolicy()

	assert.Equal(t, 0, policy.MaxRetries, "a single attempt unless configured")
	assert.Equal(t, time.Second, policy.BaseDelay)
	assert.Equal(t, 30*time.Second, policy.MaxDelay)
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name string
		res  FetchResult
		want bool
	}{
		{name: "transport failure", res: FetchResult{Err: "connection refused"}, want: true},
		{name: "429 rate limited", res: FetchResult{Status: 429}, want: true},
		{name: "500 server error", res: FetchResult{Status: 500}, want: true},
		{name: "503 unavailable", res: FetchResult{Status: 503}, want: true},
		{name: "404 not found", res: FetchResult{Status: 404}, want: false},
		{name: "403 forbidden", res: FetchResult{Status: 403}, want: false},
		{name: "200 ok", res: FetchResult{Status: 200, OK: true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldRetry(tt.res))
		})
	}
}

func TestFetchWithRetry_SingleAttemptByDefault(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	res := newTestFetcher(t, nil).FetchWithRetry(context.Background(), ts.URL)

	assert.Equal(t, 503, res.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchWithRetry_RecoversFromServerError(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer ts.Close()

	f := newTestFetcher(t, func(c *config.Config) { c.Retries = 2 })
	res := f.FetchWithRetry(context.Background(), ts.URL)

	assert.Equal(t, 200, res.Status)
	assert.Equal(t, "ok", res.Body)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchWithRetry_NoRetryOn404(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	f := newTestFetcher(t, func(c *config.Config) { c.Retries = 3 })
	res := f.FetchWithRetry(context.Background(), ts.URL)

	assert.Equal(t, 404, res.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchWithRetry_ExhaustedTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	f := newTestFetcher(t, func(c *config.Config) { c.Retries = 2 })
	res := f.FetchWithRetry(context.Background(), url)

	assert.True(t, res.Failed())
	assert.Contains(t, res.Err, "connection refused")
	assert.Contains(t, res.Err, "(after 3 attempts)")
}

func TestFetchWithRetry_CancelledDuringBackoff(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	f := newTestFetcher(t, func(c *config.Config) {
		c.Retries = 5
		c.RetryDelay = time.Hour
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	res := f.FetchWithRetry(ctx, ts.URL)

	assert.Equal(t, 502, res.Status)
	assert.Less(t, time.Since(start), 5*time.Second)
}
