package crawler

import (
	"strings"

	"github.com/lukemcguire/verifylinks/urlutil"
)

// ContentCheck inspects the body of a 2xx response and reports whether the
// page is actually broken, with a short reason.
type ContentCheck func(link, body string) (reason string, broken bool)

// Soft failure reasons reported by DefaultContentCheck.
const (
	ReasonEmptyBody        = "Empty body"
	ReasonPageNotFound     = "Page not found content"
	ReasonResourceNotFound = "Resource not found"
)

// notFoundPhrases mark a storefront "not found" page served with status 200.
var notFoundPhrases = []string{
	"page not found",
	"this page does not exist",
	"couldn't find",
}

// resourceWords name the commerce entities whose missing pages render with a
// generic "not found" message.
var resourceWords = []string{"collection", "product"}

// DefaultContentCheck returns the substring heuristics used against
// storefront pages. The site root (relative to baseURL) is always treated as
// valid, even when its body is empty.
func DefaultContentCheck(baseURL string) ContentCheck {
	return func(link, body string) (string, bool) {
		if urlutil.IsRoot(link, baseURL) {
			return "", false
		}

		if strings.TrimSpace(body) == "" {
			return ReasonEmptyBody, true
		}

		lower := strings.ToLower(body)
		if containsAny(lower, notFoundPhrases) {
			return ReasonPageNotFound, true
		}
		if containsAny(lower, resourceWords) && strings.Contains(lower, "not found") {
			return ReasonResourceNotFound, true
		}
		return "", false
	}
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
