// ABOUTME: Extraction request model describes the input to one extraction call
// ABOUTME: Validates that exactly one usable source is supplied

package domain

import (
	"net/url"
	"strings"

	coreerrors "newsnex-api/core/errors"
)

const (
	// MessageMissingURL is shown when no source was supplied
	MessageMissingURL = "Please enter a URL"

	// MessageInvalidURL is shown when the URL cannot be fetched as a web page
	MessageInvalidURL = "Please enter a valid URL"
)

// ExtractionOptions tunes a single extraction
type ExtractionOptions struct {
	// MinConfidence drops profiles scoring below this value
	MinConfidence int

	// MaxProfiles limits the number of profiles returned (0 means no limit)
	MaxProfiles int

	// Enrich looks up LinkedIn URLs for the extracted profiles
	Enrich bool
}

// ExtractionRequest carries either a URL or document bytes
type ExtractionRequest struct {
	URL         string
	Document    []byte
	ContentType string
	Filename    string
	Options     ExtractionOptions
}

// HasDocument reports whether document bytes were supplied
func (r ExtractionRequest) HasDocument() bool {
	return len(r.Document) > 0
}

// Validate checks the request, returning a ValidationError with a user message
func (r ExtractionRequest) Validate() error {
	rawURL := strings.TrimSpace(r.URL)

	if rawURL == "" && !r.HasDocument() {
		return &coreerrors.ValidationError{Field: "url", Message: MessageMissingURL}
	}
	if rawURL != "" && r.HasDocument() {
		return &coreerrors.ValidationError{Field: "source", Message: "Provide either a URL or a document, not both"}
	}
	if rawURL != "" && !IsValidURL(rawURL) {
		return &coreerrors.ValidationError{Field: "url", Message: MessageInvalidURL}
	}
	if r.Options.MinConfidence < MinConfidence || r.Options.MinConfidence > MaxConfidence {
		return &coreerrors.ValidationError{Field: "minConfidence", Message: "Minimum confidence must be between 0 and 100"}
	}
	if r.Options.MaxProfiles < 0 {
		return &coreerrors.ValidationError{Field: "maxProfiles", Message: "Maximum profiles cannot be negative"}
	}
	return nil
}

// Source describes the request's source without its payload
func (r ExtractionRequest) Source() Source {
	if r.HasDocument() {
		return Source{
			Kind:        SourceDocument,
			Filename:    r.Filename,
			ContentType: r.ContentType,
			Size:        len(r.Document),
		}
	}
	return Source{Kind: SourceURL, URL: strings.TrimSpace(r.URL)}
}

// IsValidURL reports whether raw is an absolute http(s) URL with a host
func IsValidURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}
