// ABOUTME: Share domain model represents a shareable link to an extraction
// ABOUTME: Provides validation and expiration checking for shares

package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Share represents a shareable reference to an extraction result
type Share struct {
	// ID is the unique identifier (UUID) for the share
	ID string `json:"id"`

	// ExtractionID references the shared extraction
	ExtractionID string `json:"extractionId"`

	// CreatedAt is when the share was created
	CreatedAt time.Time `json:"createdAt"`

	// ExpiresAt is when the share expires (nil means no expiration)
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// NewShare creates a new Share for an extraction; a zero ttl never expires
func NewShare(extractionID string, ttl time.Duration) (*Share, error) {
	if extractionID == "" {
		return nil, errors.New("extraction ID cannot be empty")
	}

	now := time.Now()
	share := &Share{
		ID:           uuid.New().String(),
		ExtractionID: extractionID,
		CreatedAt:    now,
	}
	if ttl > 0 {
		expires := now.Add(ttl)
		share.ExpiresAt = &expires
	}

	return share, nil
}

// IsExpired checks if the share has expired
func (s *Share) IsExpired() bool {
	if s.ExpiresAt == nil {
		return false
	}

	return time.Now().After(*s.ExpiresAt)
}
