// ABOUTME: Storage interfaces for persisting domain entities
// ABOUTME: Defines contracts for data persistence operations

package interfaces

import (
	"context"

	"newsnex-api/core/domain"
)

// ExtractionStore holds extraction results for the session
type ExtractionStore interface {
	// Save stores a result, replacing any result with the same ID
	Save(ctx context.Context, result *domain.ExtractionResult) error

	// Get retrieves a result by ID, returning a NotFoundError when absent
	Get(ctx context.Context, id string) (*domain.ExtractionResult, error)

	// Recent returns summaries of the newest results first
	Recent(ctx context.Context, limit int) ([]domain.ExtractionSummary, error)
}

// ShareStorage defines the interface for share persistence
type ShareStorage interface {
	// Save persists a share
	Save(ctx context.Context, share *domain.Share) error

	// Get retrieves a share by ID; returns nil, nil when absent
	Get(ctx context.Context, id string) (*domain.Share, error)
}
