// ABOUTME: In-memory storage for extraction results and share links
// ABOUTME: Keeps everything for the lifetime of the process behind a RWMutex

package memory

import (
	"context"
	"sort"
	"sync"

	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
)

// ExtractionStore implements interfaces.ExtractionStore in memory
type ExtractionStore struct {
	mu      sync.RWMutex
	results map[string]*domain.ExtractionResult
}

// NewExtractionStore creates an empty store
func NewExtractionStore() *ExtractionStore {
	return &ExtractionStore{
		results: make(map[string]*domain.ExtractionResult),
	}
}

// Save stores a copy of the result, replacing any result with the same ID
func (s *ExtractionStore) Save(ctx context.Context, result *domain.ExtractionResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.ID] = cloneResult(result)
	return nil
}

// Get returns a copy of the stored result
func (s *ExtractionStore) Get(ctx context.Context, id string) (*domain.ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[id]
	if !ok {
		return nil, &coreerrors.NotFoundError{Resource: "extraction", ID: id}
	}
	return cloneResult(result), nil
}

// Recent returns summaries newest first; a limit of zero or less returns all
func (s *ExtractionStore) Recent(ctx context.Context, limit int) ([]domain.ExtractionSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	summaries := make([]domain.ExtractionSummary, 0, len(s.results))
	for _, r := range s.results {
		summaries = append(summaries, r.Summary())
	}
	s.mu.RUnlock()

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].ID < summaries[j].ID
		}
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})

	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// Len returns the number of stored results
func (s *ExtractionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

func cloneResult(r *domain.ExtractionResult) *domain.ExtractionResult {
	c := *r
	c.Profiles = make([]domain.Profile, len(r.Profiles))
	for i, p := range r.Profiles {
		if p.PossibleLinkedInURLs != nil {
			p.PossibleLinkedInURLs = append([]string(nil), p.PossibleLinkedInURLs...)
		}
		c.Profiles[i] = p
	}
	return &c
}

// ShareStore implements interfaces.ShareStorage in memory
type ShareStore struct {
	mu     sync.RWMutex
	shares map[string]domain.Share
}

// NewShareStore creates an empty share store
func NewShareStore() *ShareStore {
	return &ShareStore{shares: make(map[string]domain.Share)}
}

// Save persists a share
func (s *ShareStore) Save(ctx context.Context, share *domain.Share) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.shares[share.ID] = *share
	return nil
}

// Get retrieves a share by ID; returns nil, nil when absent
func (s *ShareStore) Get(ctx context.Context, id string) (*domain.Share, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	share, ok := s.shares[id]
	if !ok {
		return nil, nil
	}
	return &share, nil
}
