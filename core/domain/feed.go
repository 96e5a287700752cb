// ABOUTME: Feed domain models describe the articles listed in an RSS/Atom feed
// ABOUTME: Used to pick article URLs for batch extraction

package domain

import "time"

// Feed is a parsed RSS or Atom feed
type Feed struct {
	Title    string     `json:"title"`
	URL      string     `json:"url"`
	Link     string     `json:"link,omitempty"`
	FeedType string     `json:"feedType,omitempty"`
	Items    []FeedItem `json:"items"`
}

// FeedItem is one article listed in a feed
type FeedItem struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description string    `json:"description,omitempty"`
	Author      string    `json:"author,omitempty"`
	Published   time.Time `json:"published,omitempty"`
}
