// ABOUTME: Share service handles the share button of an extraction
// ABOUTME: Creates expiring share links and resolves them back to extractions

package share

import (
	"context"
	"time"

	"github.com/google/uuid"

	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
	"newsnex-api/core/interfaces"
)

// ExtractionLookup finds stored extractions
type ExtractionLookup interface {
	Get(ctx context.Context, id string) (*domain.ExtractionResult, error)
}

// ShareService handles share operations
type ShareService struct {
	storage     interfaces.ShareStorage
	extractions ExtractionLookup
	ttl         time.Duration
}

// NewShareService creates a new share service instance. A zero ttl creates
// shares that never expire.
func NewShareService(storage interfaces.ShareStorage, extractions ExtractionLookup, ttl time.Duration) *ShareService {
	return &ShareService{
		storage:     storage,
		extractions: extractions,
		ttl:         ttl,
	}
}

// CreateShare creates a share for a stored extraction
func (s *ShareService) CreateShare(ctx context.Context, extractionID string) (*domain.Share, error) {
	if extractionID == "" {
		return nil, &coreerrors.ValidationError{Field: "extractionId", Message: "Extraction ID cannot be empty"}
	}

	// The extraction must exist in this session
	if _, err := s.extractions.Get(ctx, extractionID); err != nil {
		return nil, err
	}

	share, err := domain.NewShare(extractionID, s.ttl)
	if err != nil {
		return nil, &coreerrors.ValidationError{Field: "extractionId", Message: err.Error()}
	}

	if err := s.storage.Save(ctx, share); err != nil {
		return nil, err
	}

	return share, nil
}

// GetShare retrieves a share by ID
func (s *ShareService) GetShare(ctx context.Context, id string) (*domain.Share, error) {
	if id == "" {
		return nil, &coreerrors.ValidationError{Field: "id", Message: "Share ID cannot be empty"}
	}

	// Validate UUID format
	if _, err := uuid.Parse(id); err != nil {
		return nil, &coreerrors.ValidationError{Field: "id", Message: "Invalid share ID format"}
	}

	share, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if share == nil {
		return nil, &coreerrors.NotFoundError{Resource: "share", ID: id}
	}

	if share.IsExpired() {
		return nil, &coreerrors.ExpiredError{Resource: "share", ID: id}
	}

	return share, nil
}

// Resolve returns the extraction a share points to
func (s *ShareService) Resolve(ctx context.Context, id string) (*domain.Share, *domain.ExtractionResult, error) {
	share, err := s.GetShare(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.extractions.Get(ctx, share.ExtractionID)
	if err != nil {
		return nil, nil, err
	}
	return share, result, nil
}
