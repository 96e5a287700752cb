// ABOUTME: Profile domain model represents a person mentioned in a source article
// ABOUTME: Provides confidence clamping, level classification and validation

package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ConfidenceLevel buckets a confidence score for display
type ConfidenceLevel string

const (
	// ConfidenceHigh is used for scores above 90
	ConfidenceHigh ConfidenceLevel = "high"

	// ConfidenceMedium is used for scores above 60 and up to 90
	ConfidenceMedium ConfidenceLevel = "medium"

	// ConfidenceLow is used for scores of 60 and below
	ConfidenceLow ConfidenceLevel = "low"
)

const (
	// MinConfidence is the lowest valid confidence score
	MinConfidence = 0

	// MaxConfidence is the highest valid confidence score
	MaxConfidence = 100

	highConfidenceThreshold   = 90
	mediumConfidenceThreshold = 60
)

// Profile represents a person extracted from a source article
type Profile struct {
	// ID is unique within an extraction result (1-based, order of first appearance)
	ID int `json:"id" yaml:"id"`

	// Name is the person's full name
	Name string `json:"name" yaml:"name"`

	// Role is the person's job title, empty when unknown
	Role string `json:"role" yaml:"role"`

	// Company is the person's organisation, empty when unknown
	Company string `json:"company" yaml:"company"`

	// Quote is a statement attributed to the person
	Quote string `json:"quote" yaml:"quote"`

	// Confidence is the extraction certainty in [0,100]
	Confidence int `json:"confidence" yaml:"confidence"`

	// LinkedInURL is an optional enrichment
	LinkedInURL string `json:"linkedInUrl,omitempty" yaml:"linkedInUrl,omitempty"`

	// PossibleLinkedInURLs holds alternate enrichment candidates
	PossibleLinkedInURLs []string `json:"possibleLinkedInUrls,omitempty" yaml:"possibleLinkedInUrls,omitempty"`

	// Mentions counts the sentences that reference the person
	Mentions int `json:"mentions" yaml:"mentions"`
}

// ClampConfidence limits a score to [MinConfidence, MaxConfidence]
func ClampConfidence(v int) int {
	if v < MinConfidence {
		return MinConfidence
	}
	if v > MaxConfidence {
		return MaxConfidence
	}
	return v
}

// ConfidenceLevel classifies the profile's confidence score
func (p Profile) ConfidenceLevel() ConfidenceLevel {
	return LevelFor(p.Confidence)
}

// LevelFor classifies a raw confidence score
func LevelFor(confidence int) ConfidenceLevel {
	switch {
	case confidence > highConfidenceThreshold:
		return ConfidenceHigh
	case confidence > mediumConfidenceThreshold:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// ConfidenceLabel renders the confidence as an integer percentage
func (p Profile) ConfidenceLabel() string {
	return fmt.Sprintf("%d%%", ClampConfidence(p.Confidence))
}

// Validate checks the profile invariants
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("profile name cannot be empty")
	}
	if p.Confidence < MinConfidence || p.Confidence > MaxConfidence {
		return fmt.Errorf("profile confidence %d out of range", p.Confidence)
	}
	return nil
}
