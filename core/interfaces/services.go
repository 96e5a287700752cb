// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for services used throughout the application

package interfaces

import (
	"context"
	"time"

	"newsnex-api/core/domain"
)

// ArticleService turns a source into readable article text
type ArticleService interface {
	FromURL(ctx context.Context, url string) (*domain.Article, error)
	FromDocument(ctx context.Context, data []byte, contentType, filename string) (*domain.Article, error)
}

// ProfileExtractor finds people mentioned in article text
type ProfileExtractor interface {
	Extract(text string, opts domain.ExtractionOptions) []domain.Profile
}

// ProfileEnricher attaches external data, such as LinkedIn URLs, to profiles
type ProfileEnricher interface {
	Enrich(ctx context.Context, profiles []domain.Profile) ([]domain.Profile, error)
}

// ExtractionService runs the extraction workflow and serves stored results
type ExtractionService interface {
	Extract(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error)
	Get(ctx context.Context, id string) (*domain.ExtractionResult, error)
	Recent(ctx context.Context, limit int) ([]domain.ExtractionSummary, error)
}

// PageRenderer returns the rendered HTML of a page, for sites that need a browser
type PageRenderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// MetadataResult contains extracted metadata from a webpage
type MetadataResult struct {
	Title        string
	Description  string
	SiteName     string
	Thumbnail    string // Primary image URL
	Author       string
	CanonicalURL string
	PublishedAt  time.Time
}

// MetadataService extracts metadata from web pages
type MetadataService interface {
	ExtractMetadata(ctx context.Context, url string) (*MetadataResult, error)
}
