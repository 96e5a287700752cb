// ABOUTME: Public types for the NewsNex library API
// ABOUTME: Provides user-friendly types that wrap internal domain models

package newsnex

import (
	"time"

	"newsnex-api/core/domain"
)

// Request describes one extraction: either a URL or document bytes
type Request struct {
	URL         string
	Document    []byte
	ContentType string
	Filename    string
	Options     ExtractOptions
}

// Profile is a person mentioned in an article
type Profile struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Role            string   `json:"role"`
	Company         string   `json:"company"`
	Quote           string   `json:"quote"`
	Confidence      int      `json:"confidence"`
	ConfidenceLabel string   `json:"confidence_label"`
	ConfidenceLevel string   `json:"confidence_level"`
	LinkedInURL     string   `json:"linkedin_url,omitempty"`
	Alternatives    []string `json:"linkedin_alternatives,omitempty"`
	Mentions        int      `json:"mentions"`
}

// Extraction is the result of extracting profiles from one source
type Extraction struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"source_url,omitempty"`
	SourceFile  string    `json:"source_file,omitempty"`
	Title       string    `json:"title"`
	SiteName    string    `json:"site_name,omitempty"`
	Byline      string    `json:"byline,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
	Profiles    []Profile `json:"profiles"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary is an entry in the recent extractions list
type Summary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ProfileCount int       `json:"profile_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// extractionToPublic converts a domain result to the public API type
func extractionToPublic(r *domain.ExtractionResult) *Extraction {
	e := &Extraction{
		ID:          r.ID,
		SourceURL:   r.Source.URL,
		SourceFile:  r.Source.Filename,
		Title:       r.Title,
		SiteName:    r.SiteName,
		Byline:      r.Byline,
		PublishedAt: r.PublishedAt,
		Profiles:    make([]Profile, len(r.Profiles)),
		CreatedAt:   r.CreatedAt,
	}

	for i, p := range r.Profiles {
		e.Profiles[i] = Profile{
			ID:              p.ID,
			Name:            p.Name,
			Role:            p.Role,
			Company:         p.Company,
			Quote:           p.Quote,
			Confidence:      p.Confidence,
			ConfidenceLabel: p.ConfidenceLabel(),
			ConfidenceLevel: string(p.ConfidenceLevel()),
			LinkedInURL:     p.LinkedInURL,
			Alternatives:    p.PossibleLinkedInURLs,
			Mentions:        p.Mentions,
		}
	}

	return e
}
