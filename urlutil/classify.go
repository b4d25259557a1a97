// Package urlutil decides which hrefs found on the seed page are worth
// verifying and rewrites local ones into a canonical path form.
package urlutil

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Kind tags the outcome of classifying an href.
type Kind int

const (
	// Local hrefs point at the configured dev server and get verified.
	Local Kind = iota
	// Denylisted hrefs point at a known external platform (social, messaging).
	Denylisted
	// OtherExternal hrefs point anywhere else outside the local server.
	OtherExternal
	// Skipped hrefs are not navigable pages: mailto:, tel:, javascript:,
	// in-page fragments and absolute URLs that fail to parse.
	Skipped
)

func (k Kind) String() string {
	switch k {
	case Local:
		return "local"
	case Denylisted:
		return "denylisted"
	case OtherExternal:
		return "external"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// ClassifiedLink is an href together with its classification.
type ClassifiedLink struct {
	Original   string // href exactly as it appeared in the markup
	Kind       Kind
	Normalized string // path+query for local absolute URLs, Original otherwise
}

// IsExternal reports whether the link is excluded from verification.
func (c ClassifiedLink) IsExternal() bool {
	return c.Kind != Local
}

// skipPrefixes are compared against the lower-cased href.
var skipPrefixes = []string{"mailto:", "tel:", "javascript:", "#"}

// Classifier maps hrefs to a Kind. Every href maps to exactly one Kind.
type Classifier struct {
	localHosts map[string]bool
	denylist   []string
}

// NewClassifier returns a Classifier that treats localHosts as the dev server
// and labels hosts under any denylist domain as Denylisted. The denylist only
// changes the label: any non-local host is external either way.
func NewClassifier(localHosts, denylist []string) *Classifier {
	hosts := make(map[string]bool, len(localHosts))
	for _, h := range localHosts {
		hosts[strings.ToLower(h)] = true
	}
	domains := make([]string, 0, len(denylist))
	for _, d := range denylist {
		domains = append(domains, strings.ToLower(strings.TrimPrefix(d, ".")))
	}
	return &Classifier{localHosts: hosts, denylist: domains}
}

// Classify classifies a literal href.
func (c *Classifier) Classify(href string) ClassifiedLink {
	link := ClassifiedLink{Original: href, Normalized: href}

	lower := strings.ToLower(href)
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(lower, prefix) {
			link.Kind = Skipped
			return link
		}
	}

	// Bare paths are local as written, even when they would not parse.
	if !hasScheme(href) && !strings.HasPrefix(href, "//") {
		link.Kind = Local
		return link
	}

	parsed, err := url.Parse(href)
	if err != nil {
		link.Kind = Skipped
		return link
	}

	switch {
	case parsed.Scheme == "" && parsed.Host == "":
		link.Kind = Local
	case parsed.Scheme != "" && !IsHTTPScheme(href):
		link.Kind = OtherExternal
	default:
		link.Kind = c.hostKind(parsed.Hostname())
		if link.Kind == Local {
			link.Normalized = pathAndQuery(parsed)
		}
	}
	return link
}

// hasScheme reports whether href starts with a URL scheme followed by ':'.
func hasScheme(href string) bool {
	for i, r := range href {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		case i > 0 && r == ':':
			return true
		default:
			return false
		}
	}
	return false
}

// Normalize returns the normalized form of href. Applying it twice yields the
// same result as applying it once.
func (c *Classifier) Normalize(href string) string {
	return c.Classify(href).Normalized
}

func (c *Classifier) hostKind(host string) Kind {
	host = strings.ToLower(host)
	if c.localHosts[host] {
		return Local
	}
	if c.isDenylisted(host) {
		return Denylisted
	}
	return OtherExternal
}

func (c *Classifier) isDenylisted(host string) bool {
	if host == "" {
		return false
	}
	hostRoot, hostErr := publicsuffix.EffectiveTLDPlusOne(host)
	for _, domain := range c.denylist {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
		if hostErr != nil {
			continue
		}
		if root, err := publicsuffix.EffectiveTLDPlusOne(domain); err == nil && root == hostRoot {
			return true
		}
	}
	return false
}

// pathAndQuery strips scheme, host, port and fragment. Repeated leading
// slashes collapse to one so the result never reads as a protocol-relative URL.
func pathAndQuery(u *url.URL) string {
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if strings.HasPrefix(path, "//") {
		path = "/" + strings.TrimLeft(path, "/")
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return path
}

// IsHTTPScheme returns true if the URL has an http or https scheme.
// Returns false for empty strings, non-HTTP schemes, or unparseable URLs.
func IsHTTPScheme(rawURL string) bool {
	if rawURL == "" {
		return false
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	scheme := strings.ToLower(parsed.Scheme)
	return scheme == "http" || scheme == "https"
}
