package crawler

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractLinks returns the href of every anchor in body, exactly as written,
// deduplicated in first-seen order. Tag and attribute names match
// case-insensitively and both quote styles are accepted. Markup inside
// <script> and <style> is text, and a tag left unfinished at the end of body
// is dropped. Malformed markup never causes a failure.
func ExtractLinks(body string) []string {
	tokenizer := html.NewTokenizer(strings.NewReader(body))
	seen := make(map[string]bool)
	links := []string{}

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return links
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "a" {
				continue
			}
			for _, attr := range token.Attr {
				if attr.Key != "href" {
					continue
				}
				// Only the first href on a tag counts.
				if attr.Val != "" && !seen[attr.Val] {
					seen[attr.Val] = true
					links = append(links, attr.Val)
				}
				break
			}
		}
	}
}
