// ABOUTME: HTML utilities for turning feed and page fragments into plain text
// ABOUTME: Parses fragments with goquery so entities and nested markup are handled

package html

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML removes markup from an HTML fragment and collapses whitespace
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return collapse(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapse(fragment)
	}
	doc.Find("script, style, noscript").Remove()

	return collapse(doc.Text())
}

// Truncate shortens s to at most n runes, ending with "..." when cut
func Truncate(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return strings.TrimSpace(string(runes[:n-3])) + "..."
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
