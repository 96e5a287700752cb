// ABOUTME: Extraction domain models group the profiles produced from one source
// ABOUTME: Provides result construction, summaries for recent lists, and validation

package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SourceKind identifies how the source was supplied
type SourceKind string

const (
	// SourceURL is an article fetched from a URL
	SourceURL SourceKind = "url"

	// SourceDocument is an uploaded document
	SourceDocument SourceKind = "document"
)

// Source describes where an extraction's text came from
type Source struct {
	Kind        SourceKind `json:"kind" yaml:"kind"`
	URL         string     `json:"url,omitempty" yaml:"url,omitempty"`
	Filename    string     `json:"filename,omitempty" yaml:"filename,omitempty"`
	ContentType string     `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Size        int        `json:"size,omitempty" yaml:"size,omitempty"`
}

// Label returns a human readable name for the source
func (s Source) Label() string {
	if s.URL != "" {
		return s.URL
	}
	if s.Filename != "" {
		return s.Filename
	}
	return string(s.Kind)
}

// ExtractionResult groups the ordered profiles produced from one source
type ExtractionResult struct {
	ID          string    `json:"extractionId" yaml:"extractionId"`
	Source      Source    `json:"source" yaml:"source"`
	Title       string    `json:"title" yaml:"title"`
	SiteName    string    `json:"siteName,omitempty" yaml:"siteName,omitempty"`
	Byline      string    `json:"byline,omitempty" yaml:"byline,omitempty"`
	PublishedAt time.Time `json:"publishedAt,omitempty" yaml:"publishedAt,omitempty"`
	Profiles    []Profile `json:"profiles" yaml:"profiles"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

// ExtractionSummary is the compact form shown in recent extraction lists
type ExtractionSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ProfileCount int       `json:"profileCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewExtractionResult creates a result with a fresh ID and renumbered profiles
func NewExtractionResult(source Source, profiles []Profile) *ExtractionResult {
	ordered := make([]Profile, len(profiles))
	copy(ordered, profiles)
	for i := range ordered {
		ordered[i].ID = i + 1
	}

	return &ExtractionResult{
		ID:        uuid.New().String(),
		Source:    source,
		Profiles:  ordered,
		CreatedAt: time.Now(),
	}
}

// Summary returns the recent-list view of the result
func (r *ExtractionResult) Summary() ExtractionSummary {
	title := r.Title
	if title == "" {
		title = r.Source.Label()
	}
	return ExtractionSummary{
		ID:           r.ID,
		Title:        title,
		ProfileCount: len(r.Profiles),
		CreatedAt:    r.CreatedAt,
	}
}

// Profile looks up a profile by ID
func (r *ExtractionResult) Profile(id int) (Profile, bool) {
	for _, p := range r.Profiles {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}

// Validate checks that profile IDs are unique and every profile is valid
func (r *ExtractionResult) Validate() error {
	seen := make(map[int]bool, len(r.Profiles))
	for _, p := range r.Profiles {
		if seen[p.ID] {
			return fmt.Errorf("duplicate profile id %d", p.ID)
		}
		seen[p.ID] = true
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
