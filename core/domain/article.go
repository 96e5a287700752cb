// ABOUTME: Article domain model holds the readable content of a source
// ABOUTME: Produced by the article service from a URL or an uploaded document

package domain

import "time"

// Article represents extracted article content
type Article struct {
	URL         string    `json:"url,omitempty"`
	Title       string    `json:"title"`
	Byline      string    `json:"byline,omitempty"`
	SiteName    string    `json:"siteName,omitempty"`
	Content     string    `json:"content"`     // HTML content
	TextContent string    `json:"textContent"` // Plain text content
	Markdown    string    `json:"markdown"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Image       string    `json:"image,omitempty"`
	PublishedAt time.Time `json:"publishedAt,omitempty"`
}
