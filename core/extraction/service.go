// ABOUTME: Extraction service runs the workflow from a source to a stored ExtractionResult
// ABOUTME: Acquires the article, extracts and enriches profiles, then keeps the result for the session

package extraction

import (
	"context"
	"errors"
	"time"

	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
	"newsnex-api/core/interfaces"
	"newsnex-api/pkg/featureflags"
)

const (
	// DefaultRecentLimit is used when Recent is called without a limit
	DefaultRecentLimit = 10

	// MaxRecentLimit caps the number of summaries returned by Recent
	MaxRecentLimit = 100
)

// Config wires the collaborators of the extraction service. Enricher and
// Metadata are optional.
type Config struct {
	Articles  interfaces.ArticleService
	Extractor interfaces.ProfileExtractor
	Enricher  interfaces.ProfileEnricher
	Metadata  interfaces.MetadataService
	Store     interfaces.ExtractionStore
	Logger    interfaces.Logger
}

// Service implements interfaces.ExtractionService
type Service struct {
	articles  interfaces.ArticleService
	extractor interfaces.ProfileExtractor
	enricher  interfaces.ProfileEnricher
	metadata  interfaces.MetadataService
	store     interfaces.ExtractionStore
	logger    interfaces.Logger
}

// NewService creates a new extraction service
func NewService(cfg Config) *Service {
	return &Service{
		articles:  cfg.Articles,
		extractor: cfg.Extractor,
		enricher:  cfg.Enricher,
		metadata:  cfg.Metadata,
		store:     cfg.Store,
		logger:    cfg.Logger,
	}
}

// Extract validates the request, derives profiles from its source and stores
// the result. Every failure is an *errors.ExtractionError carrying a message
// that can be shown to the user.
func (s *Service) Extract(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		var validationErr *coreerrors.ValidationError
		if errors.As(err, &validationErr) {
			return nil, &coreerrors.ExtractionError{
				Reason:  coreerrors.ReasonInvalidInput,
				Message: validationErr.Message,
				Cause:   err,
			}
		}
		return nil, coreerrors.NewExtractionError(coreerrors.ReasonInvalidInput, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, coreerrors.NewExtractionError(coreerrors.ReasonCanceled, err)
	}

	source := req.Source()
	art, err := s.acquire(ctx, req)
	if err != nil {
		s.logger.Warn("Failed to acquire article", map[string]interface{}{
			"source": source.Label(),
			"reason": string(coreerrors.ReasonOf(err)),
			"error":  err.Error(),
		})
		return nil, err
	}

	if source.Kind == domain.SourceURL && featureflags.IsEnabled(ctx, featureflags.MetadataFallback) {
		s.fillMetadata(ctx, source.URL, art)
	}

	profiles := s.extractor.Extract(art.TextContent, req.Options)

	enrich := req.Options.Enrich && s.enricher != nil && featureflags.IsEnabled(ctx, featureflags.LinkedInEnrichment)
	if enrich && len(profiles) > 0 {
		enriched, err := s.enricher.Enrich(ctx, profiles)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, coreerrors.NewExtractionError(coreerrors.ReasonCanceled, ctxErr)
		}
		if err != nil {
			s.logger.Warn("LinkedIn enrichment incomplete", map[string]interface{}{
				"source": source.Label(),
				"error":  err.Error(),
			})
		}
		if len(enriched) == len(profiles) {
			profiles = enriched
		}
	}

	result := domain.NewExtractionResult(source, profiles)
	result.Title = art.Title
	result.SiteName = art.SiteName
	result.Byline = art.Byline
	result.PublishedAt = art.PublishedAt

	if err := result.Validate(); err != nil {
		return nil, coreerrors.NewExtractionError(coreerrors.ReasonInternal, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, coreerrors.NewExtractionError(coreerrors.ReasonCanceled, err)
	}
	if err := s.store.Save(ctx, result); err != nil {
		return nil, coreerrors.NewExtractionError(coreerrors.ReasonInternal, err)
	}

	s.logger.Info("Extraction completed", map[string]interface{}{
		"extraction_id": result.ID,
		"source":        source.Label(),
		"profiles":      len(result.Profiles),
		"duration_ms":   time.Since(start).Milliseconds(),
	})

	return result, nil
}

func (s *Service) acquire(ctx context.Context, req domain.ExtractionRequest) (*domain.Article, error) {
	var (
		art *domain.Article
		err error
	)
	if req.HasDocument() {
		art, err = s.articles.FromDocument(ctx, req.Document, req.ContentType, req.Filename)
	} else {
		art, err = s.articles.FromURL(ctx, req.Source().URL)
	}

	if err != nil {
		if coreerrors.IsExtraction(err) {
			return nil, err
		}
		return nil, coreerrors.NewExtractionError(coreerrors.ReasonFetchFailed, err)
	}
	if art == nil {
		return nil, coreerrors.NewExtractionError(coreerrors.ReasonNoContent, errors.New("no article returned"))
	}
	return art, nil
}

// fillMetadata completes missing article fields from page metadata. Failures
// are logged and ignored.
func (s *Service) fillMetadata(ctx context.Context, url string, art *domain.Article) {
	if s.metadata == nil || (art.Title != "" && art.SiteName != "" && !art.PublishedAt.IsZero()) {
		return
	}

	meta, err := s.metadata.ExtractMetadata(ctx, url)
	if err != nil || meta == nil {
		s.logger.Debug("Metadata unavailable", map[string]interface{}{"url": url})
		return
	}

	if art.Title == "" {
		art.Title = meta.Title
	}
	if art.SiteName == "" {
		art.SiteName = meta.SiteName
	}
	if art.Byline == "" {
		art.Byline = meta.Author
	}
	if art.PublishedAt.IsZero() {
		art.PublishedAt = meta.PublishedAt
	}
	if art.Image == "" {
		art.Image = meta.Thumbnail
	}
}

// Get returns a stored extraction
func (s *Service) Get(ctx context.Context, id string) (*domain.ExtractionResult, error) {
	if id == "" {
		return nil, &coreerrors.ValidationError{Field: "id", Message: "Extraction ID cannot be empty"}
	}
	return s.store.Get(ctx, id)
}

// Recent returns the newest extraction summaries
func (s *Service) Recent(ctx context.Context, limit int) ([]domain.ExtractionSummary, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	return s.store.Recent(ctx, limit)
}
