package handlers

import (
	"context"

	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
	"newsnex-api/core/interfaces"
)

// mockExtractionService is a mock implementation of the extraction service
type mockExtractionService struct {
	extractFunc func(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error)
	results     map[string]*domain.ExtractionResult
	recent      []domain.ExtractionSummary
	lastLimit   int
}

func (m *mockExtractionService) Extract(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error) {
	if m.extractFunc != nil {
		return m.extractFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockExtractionService) Get(ctx context.Context, id string) (*domain.ExtractionResult, error) {
	if result, ok := m.results[id]; ok {
		return result, nil
	}
	return nil, &coreerrors.NotFoundError{Resource: "extraction", ID: id}
}

func (m *mockExtractionService) Recent(ctx context.Context, limit int) ([]domain.ExtractionSummary, error) {
	m.lastLimit = limit
	return m.recent, nil
}

// mockArticleService is a mock implementation of the article service
type mockArticleService struct {
	article *domain.Article
	err     error
}

func (m *mockArticleService) FromURL(ctx context.Context, url string) (*domain.Article, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.article, nil
}

func (m *mockArticleService) FromDocument(ctx context.Context, data []byte, contentType, filename string) (*domain.Article, error) {
	return m.article, m.err
}

// mockShareService is a mock implementation of the share service
type mockShareService struct {
	share  *domain.Share
	result *domain.ExtractionResult
	err    error
}

func (m *mockShareService) CreateShare(ctx context.Context, extractionID string) (*domain.Share, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.share, nil
}

func (m *mockShareService) Resolve(ctx context.Context, id string) (*domain.Share, *domain.ExtractionResult, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.share, m.result, nil
}

// mockBatchExtractor is a mock implementation of the batch extractor
type mockBatchExtractor struct {
	batchFunc func(ctx context.Context, feedURL string, limit int, opts domain.ExtractionOptions) (*domain.BatchResult, error)
}

func (m *mockBatchExtractor) BatchExtract(ctx context.Context, feedURL string, limit int, opts domain.ExtractionOptions) (*domain.BatchResult, error) {
	return m.batchFunc(ctx, feedURL, limit, opts)
}

// mockMetadataService is a mock implementation of the metadata service
type mockMetadataService struct {
	result *interfaces.MetadataResult
	err    error
}

func (m *mockMetadataService) ExtractMetadata(ctx context.Context, url string) (*interfaces.MetadataResult, error) {
	return m.result, m.err
}

func sampleExtraction() *domain.ExtractionResult {
	result := domain.NewExtractionResult(
		domain.Source{Kind: domain.SourceURL, URL: "https://news.example.com/story"},
		[]domain.Profile{
			{Name: "Sarah Chen", Role: "CEO", Company: "TechCorp", Quote: "We are expanding.", Confidence: 95},
			{Name: "Michael Rodriguez", Role: "CTO", Company: "TechCorp", Confidence: 88},
		},
	)
	result.Title = "TechCorp Expands"
	return result
}
