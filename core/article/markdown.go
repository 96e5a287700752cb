// ABOUTME: Markdown document assembly for extracted articles
// ABOUTME: Prepends the title and metadata line and tidies converted Markdown

package article

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// BuildMarkdown creates a markdown document with a title and a metadata line
func BuildMarkdown(title, author string, published time.Time, siteName, content string) string {
	var markdown strings.Builder

	if title != "" {
		markdown.WriteString("# ")
		markdown.WriteString(title)
		markdown.WriteString("\n\n")
	}

	var metadataItems []string
	if author != "" {
		metadataItems = append(metadataItems, fmt.Sprintf("**Author:** %s", author))
	}
	if !published.IsZero() {
		metadataItems = append(metadataItems, fmt.Sprintf("**Published:** %s", published.Format("January 2, 2006 at 3:04 PM")))
	}
	if siteName != "" {
		metadataItems = append(metadataItems, fmt.Sprintf("**Source:** %s", siteName))
	}

	if len(metadataItems) > 0 {
		markdown.WriteString(strings.Join(metadataItems, " | "))
		markdown.WriteString("\n\n---\n\n")
	}

	markdown.WriteString(cleanMarkdown(content))
	return markdown.String()
}

var (
	excessNewlines  = regexp.MustCompile(`\n{3,}`)
	trailingSpaces  = regexp.MustCompile(`[ \t]+\n`)
	headerSpacing   = regexp.MustCompile(`\n(#{1,6} )`)
	headerFollowing = regexp.MustCompile(`(#{1,6} [^\n]+)\n([^\n])`)
)

// cleanMarkdown removes excessive newlines and cleans up markdown formatting
func cleanMarkdown(markdown string) string {
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	markdown = strings.ReplaceAll(markdown, "\r", "\n")

	markdown = excessNewlines.ReplaceAllString(markdown, "\n\n")
	markdown = trailingSpaces.ReplaceAllString(markdown, "\n")

	// Ensure proper spacing around headers
	markdown = headerSpacing.ReplaceAllString(markdown, "\n\n$1")
	markdown = headerFollowing.ReplaceAllString(markdown, "$1\n\n$2")
	markdown = excessNewlines.ReplaceAllString(markdown, "\n\n")

	return strings.TrimSpace(markdown)
}
