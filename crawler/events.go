package crawler

import "github.com/lukemcguire/verifylinks/result"

// CrawlEvent reports progress after each verified link.
type CrawlEvent struct {
	Outcome result.Outcome
	Checked int // links verified so far, including this one
	Total   int // internal links to verify
	Broken  int // broken links plus transport errors so far
}
