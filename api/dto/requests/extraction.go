// ABOUTME: Request DTOs for extraction API endpoints
// ABOUTME: Provides default values and conversion to domain requests

package requests

import (
	"newsnex-api/core/domain"
)

const (
	// DefaultFeedLimit is the number of feed articles processed when no limit is given
	DefaultFeedLimit = 10

	// MaxFeedLimit caps the articles processed from one feed
	MaxFeedLimit = 50
)

// ExtractionOptions tunes how profiles are selected from an article
type ExtractionOptions struct {
	// MinConfidence drops profiles scoring below this value
	MinConfidence int `json:"minConfidence,omitempty" minimum:"0" maximum:"100" doc:"Drop profiles with a lower confidence score"`

	// MaxProfiles limits the number of profiles returned
	MaxProfiles int `json:"maxProfiles,omitempty" minimum:"0" doc:"Maximum number of profiles to return (0 means no limit)"`

	// Enrich looks up LinkedIn profiles for each person
	Enrich bool `json:"enrich,omitempty" doc:"Look up LinkedIn profile URLs for extracted people"`
}

// ToDomain converts the options to their domain form
func (o ExtractionOptions) ToDomain() domain.ExtractionOptions {
	return domain.ExtractionOptions{
		MinConfidence: o.MinConfidence,
		MaxProfiles:   o.MaxProfiles,
		Enrich:        o.Enrich,
	}
}

// ExtractionRequest represents the request body for extracting profiles from a URL
type ExtractionRequest struct {
	// URL is the article to extract from. Validated by the service so the
	// user sees a friendly message rather than a schema error.
	URL string `json:"url,omitempty" doc:"Article URL to extract profiles from"`

	ExtractionOptions
}

// ToDomain converts the request to a domain extraction request
func (r *ExtractionRequest) ToDomain() domain.ExtractionRequest {
	return domain.ExtractionRequest{
		URL:     r.URL,
		Options: r.ExtractionOptions.ToDomain(),
	}
}

// FeedExtractionRequest represents the request body for extracting profiles from a feed's articles
type FeedExtractionRequest struct {
	// FeedURL is the RSS or Atom feed to read article links from
	FeedURL string `json:"feedUrl,omitempty" doc:"RSS or Atom feed URL"`

	// Limit is the number of articles to process
	Limit int `json:"limit,omitempty" minimum:"0" maximum:"50" default:"10" doc:"Number of feed articles to process"`

	ExtractionOptions
}

// ApplyDefaults sets default values for optional fields
func (r *FeedExtractionRequest) ApplyDefaults() {
	if r.Limit <= 0 {
		r.Limit = DefaultFeedLimit
	}
	if r.Limit > MaxFeedLimit {
		r.Limit = MaxFeedLimit
	}
}

// DocumentRequest carries an uploaded document
type DocumentRequest struct {
	Body        []byte
	ContentType string
	Filename    string
	ExtractionOptions
}

// ToDomain converts the upload to a domain extraction request
func (r *DocumentRequest) ToDomain() domain.ExtractionRequest {
	return domain.ExtractionRequest{
		Document:    r.Body,
		ContentType: r.ContentType,
		Filename:    r.Filename,
		Options:     r.ExtractionOptions.ToDomain(),
	}
}
