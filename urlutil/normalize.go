package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// ResolveReference turns a normalized link into a fetchable URL. Absolute
// links are returned as-is; paths resolve against the root of base, so
// "about" and "/about" both land on base/about.
func ResolveReference(base string, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base URL %q: %w", base, err)
	}
	baseURL.Path = "/"
	baseURL.RawPath = ""
	baseURL.RawQuery = ""
	baseURL.Fragment = ""

	if !IsHTTPScheme(ref) && !strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "?") {
		ref = "/" + ref
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse ref URL %q: %w", ref, err)
	}

	return baseURL.ResolveReference(refURL).String(), nil
}

// IsRoot reports whether link is the site root: "/", the bare base URL or the
// base URL with a trailing slash.
func IsRoot(link, base string) bool {
	base = strings.TrimSuffix(base, "/")
	return link == "/" || link == base || link == base+"/"
}
