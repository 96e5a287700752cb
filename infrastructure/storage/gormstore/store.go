// ABOUTME: SQLite storage for extraction results and share links using gorm
// ABOUTME: Defaults to an in-memory database so results last for the session only

package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
)

// extractionRecord is the table row for an extraction result
type extractionRecord struct {
	ID           string `gorm:"primaryKey"`
	SourceKind   string
	SourceURL    string
	Filename     string
	ContentType  string
	Size         int
	Title        string
	SiteName     string
	Byline       string
	PublishedAt  time.Time
	ProfilesJSON string
	ProfileCount int
	CreatedAt    time.Time `gorm:"index"`
}

func (extractionRecord) TableName() string { return "extractions" }

// shareRecord is the table row for a share link
type shareRecord struct {
	ID           string `gorm:"primaryKey"`
	ExtractionID string `gorm:"index"`
	CreatedAt    time.Time
	ExpiresAt    *time.Time
}

func (shareRecord) TableName() string { return "shares" }

// Store owns the database connection shared by the extraction and share stores
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite database at dsn and migrates the schema
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get store connection: %w", err)
	}
	// A single connection keeps a shared in-memory database alive and
	// serializes writes
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&extractionRecord{}, &shareRecord{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}

	return &Store{db: db}, nil
}

// Extractions returns the extraction result store
func (s *Store) Extractions() *ExtractionStore {
	return &ExtractionStore{db: s.db}
}

// Shares returns the share link store
func (s *Store) Shares() *ShareStore {
	return &ShareStore{db: s.db}
}

// Close closes the underlying connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ExtractionStore implements interfaces.ExtractionStore
type ExtractionStore struct {
	db *gorm.DB
}

// Save upserts a result
func (s *ExtractionStore) Save(ctx context.Context, result *domain.ExtractionResult) error {
	rec, err := toRecord(result)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Save(rec).Error; err != nil {
		return fmt.Errorf("failed to save extraction %s: %w", result.ID, err)
	}
	return nil
}

// Get loads a result by ID
func (s *ExtractionStore) Get(ctx context.Context, id string) (*domain.ExtractionResult, error) {
	var rec extractionRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &coreerrors.NotFoundError{Resource: "extraction", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load extraction %s: %w", id, err)
	}
	return fromRecord(&rec)
}

// Recent returns summaries newest first; a limit of zero or less returns all
func (s *ExtractionStore) Recent(ctx context.Context, limit int) ([]domain.ExtractionSummary, error) {
	var recs []extractionRecord
	q := s.db.WithContext(ctx).
		Select("id", "title", "source_url", "filename", "source_kind", "profile_count", "created_at").
		Order("created_at DESC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list extractions: %w", err)
	}

	summaries := make([]domain.ExtractionSummary, 0, len(recs))
	for _, rec := range recs {
		title := rec.Title
		if title == "" {
			title = sourceOf(&rec).Label()
		}
		summaries = append(summaries, domain.ExtractionSummary{
			ID:           rec.ID,
			Title:        title,
			ProfileCount: rec.ProfileCount,
			CreatedAt:    rec.CreatedAt,
		})
	}
	return summaries, nil
}

func toRecord(r *domain.ExtractionResult) (*extractionRecord, error) {
	profiles := r.Profiles
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	data, err := json.Marshal(profiles)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profiles: %w", err)
	}
	return &extractionRecord{
		ID:           r.ID,
		SourceKind:   string(r.Source.Kind),
		SourceURL:    r.Source.URL,
		Filename:     r.Source.Filename,
		ContentType:  r.Source.ContentType,
		Size:         r.Source.Size,
		Title:        r.Title,
		SiteName:     r.SiteName,
		Byline:       r.Byline,
		PublishedAt:  r.PublishedAt,
		ProfilesJSON: string(data),
		ProfileCount: len(r.Profiles),
		CreatedAt:    r.CreatedAt,
	}, nil
}

func sourceOf(rec *extractionRecord) domain.Source {
	return domain.Source{
		Kind:        domain.SourceKind(rec.SourceKind),
		URL:         rec.SourceURL,
		Filename:    rec.Filename,
		ContentType: rec.ContentType,
		Size:        rec.Size,
	}
}

func fromRecord(rec *extractionRecord) (*domain.ExtractionResult, error) {
	var profiles []domain.Profile
	if err := json.Unmarshal([]byte(rec.ProfilesJSON), &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles for %s: %w", rec.ID, err)
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	return &domain.ExtractionResult{
		ID:          rec.ID,
		Source:      sourceOf(rec),
		Title:       rec.Title,
		SiteName:    rec.SiteName,
		Byline:      rec.Byline,
		PublishedAt: rec.PublishedAt,
		Profiles:    profiles,
		CreatedAt:   rec.CreatedAt,
	}, nil
}

// ShareStore implements interfaces.ShareStorage
type ShareStore struct {
	db *gorm.DB
}

// Save persists a share
func (s *ShareStore) Save(ctx context.Context, share *domain.Share) error {
	rec := shareRecord{
		ID:           share.ID,
		ExtractionID: share.ExtractionID,
		CreatedAt:    share.CreatedAt,
		ExpiresAt:    share.ExpiresAt,
	}
	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return fmt.Errorf("failed to save share %s: %w", share.ID, err)
	}
	return nil
}

// Get retrieves a share by ID; returns nil, nil when absent
func (s *ShareStore) Get(ctx context.Context, id string) (*domain.Share, error) {
	var rec shareRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load share %s: %w", id, err)
	}
	return &domain.Share{
		ID:           rec.ID,
		ExtractionID: rec.ExtractionID,
		CreatedAt:    rec.CreatedAt,
		ExpiresAt:    rec.ExpiresAt,
	}, nil
}
