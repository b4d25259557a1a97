package result

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
)

// ErrorCategory represents the classification of a failed link.
type ErrorCategory string

const (
	CategoryTimeout           ErrorCategory = "timeout"
	CategoryDNSFailure        ErrorCategory = "dns_failure"
	CategoryConnectionRefused ErrorCategory = "connection_refused"
	Category4xx               ErrorCategory = "4xx"
	Category5xx               ErrorCategory = "5xx"
	CategorySoft404           ErrorCategory = "soft_404"
	CategoryRedirectLoop      ErrorCategory = "redirect_loop"
	CategoryUnknown           ErrorCategory = "unknown"
)

// StatusCategory classifies a link that answered with an HTTP status. soft
// reports whether a content heuristic flagged an otherwise successful page.
func StatusCategory(status int, soft bool) ErrorCategory {
	switch {
	case soft:
		return CategorySoft404
	case status >= 400 && status <= 499:
		return Category4xx
	case status >= 500:
		return Category5xx
	default:
		return CategoryUnknown
	}
}

// TransportCategory classifies a request that produced no HTTP response.
func TransportCategory(err error) ErrorCategory {
	if err == nil {
		return CategoryUnknown
	}

	var (
		dnsErr *net.DNSError
		opErr  *net.OpError
		netErr net.Error
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return CategoryTimeout
	case errors.As(err, &dnsErr):
		return CategoryDNSFailure
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.As(err, &opErr) && opErr.Op == "dial" && strings.Contains(opErr.Error(), "connection refused"):
		return CategoryConnectionRefused
	case isRedirectLimit(err):
		return CategoryRedirectLoop
	case errors.As(err, &netErr) && netErr.Timeout():
		return CategoryTimeout
	default:
		return CategoryUnknown
	}
}

// isRedirectLimit matches the plain error net/http returns once a client
// gives up following redirects.
func isRedirectLimit(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "stopped after") && strings.Contains(msg, "redirects")
}

// FormatCategory returns a human-readable label for an error category.
func FormatCategory(cat ErrorCategory) string {
	switch cat {
	case CategoryTimeout:
		return "Timeouts"
	case CategoryDNSFailure:
		return "DNS Failures"
	case CategoryConnectionRefused:
		return "Connection Refused"
	case Category4xx:
		return "Client Errors (4xx)"
	case Category5xx:
		return "Server Errors (5xx)"
	case CategorySoft404:
		return "Not Found Content"
	case CategoryRedirectLoop:
		return "Redirect Loops"
	default:
		return "Other Errors"
	}
}
