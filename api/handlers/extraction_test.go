package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsnex-api/api/dto/responses"
	"newsnex-api/core/article"
	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
	"newsnex-api/core/outreach"
)

func newExtractionAPI(t *testing.T, svc *mockExtractionService, articles *mockArticleService) humatest.TestAPI {
	t.Helper()
	if articles == nil {
		articles = &mockArticleService{}
	}
	handler := NewExtractionHandler(svc, articles, outreach.NewGenerator())
	_, api := humatest.New(t)
	handler.RegisterRoutes(api)
	return api
}

func TestExtractionHandler_RegisterRoutes(t *testing.T) {
	api := newExtractionAPI(t, &mockExtractionService{}, nil)
	openapi := api.OpenAPI()

	paths := []string{
		"/extractions",
		"/extractions/document",
		"/extractions/{id}",
		"/extractions/{id}/export",
		"/extractions/{id}/outreach",
		"/extractions/{id}/source",
	}
	for _, path := range paths {
		assert.NotNil(t, openapi.Paths[path], "missing %s", path)
	}
	assert.NotNil(t, openapi.Paths["/extractions"].Post)
	assert.NotNil(t, openapi.Paths["/extractions"].Get)
}

func TestCreateExtraction_Success(t *testing.T) {
	var got domain.ExtractionRequest
	svc := &mockExtractionService{
		extractFunc: func(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error) {
			got = req
			return sampleExtraction(), nil
		},
	}
	api := newExtractionAPI(t, svc, nil)

	resp := api.Post("/extractions", map[string]any{
		"url":           "https://news.example.com/story",
		"minConfidence": 50,
		"enrich":        true,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	assert.Equal(t, "https://news.example.com/story", got.URL)
	assert.Equal(t, 50, got.Options.MinConfidence)
	assert.True(t, got.Options.Enrich)

	var body responses.ExtractionResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 2, body.ProfileCount)
	assert.Equal(t, "Found 2 profiles!", body.Message)
	assert.Equal(t, "95%", body.Profiles[0].ConfidenceLabel)
	assert.Equal(t, "high", body.Profiles[0].ConfidenceLevel)
}

func TestCreateExtraction_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantInBody string
	}{
		{
			name:       "missing URL",
			err:        &coreerrors.ExtractionError{Reason: coreerrors.ReasonInvalidInput, Message: domain.MessageMissingURL, Cause: &coreerrors.ValidationError{Field: "url", Message: domain.MessageMissingURL}},
			wantStatus: http.StatusBadRequest,
			wantInBody: domain.MessageMissingURL,
		},
		{
			name:       "fetch failure",
			err:        coreerrors.NewExtractionError(coreerrors.ReasonFetchFailed, errors.New("connection refused")),
			wantStatus: http.StatusBadGateway,
			wantInBody: coreerrors.MessageExtractionFailed,
		},
		{
			name:       "timeout",
			err:        coreerrors.NewExtractionError(coreerrors.ReasonTimeout, nil),
			wantStatus: http.StatusGatewayTimeout,
			wantInBody: "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockExtractionService{
				extractFunc: func(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error) {
					return nil, tt.err
				},
			}
			api := newExtractionAPI(t, svc, nil)

			resp := api.Post("/extractions", map[string]any{"url": "https://news.example.com/story"})
			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantInBody)
			assert.NotContains(t, resp.Body.String(), "connection refused")
		})
	}
}

func TestCreateDocumentExtraction(t *testing.T) {
	var got domain.ExtractionRequest
	svc := &mockExtractionService{
		extractFunc: func(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error) {
			got = req
			return domain.NewExtractionResult(req.Source(), nil), nil
		},
	}
	api := newExtractionAPI(t, svc, nil)

	resp := api.Post("/extractions/document?filename=notes.txt&maxProfiles=3",
		"Content-Type: text/plain",
		strings.NewReader("Jane Doe, CEO of Acme, spoke today."))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	assert.True(t, got.HasDocument())
	assert.Equal(t, "notes.txt", got.Filename)
	assert.Equal(t, "text/plain", got.ContentType)
	assert.Equal(t, 3, got.Options.MaxProfiles)

	var body responses.ExtractionResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "document", body.Source.Kind)
	assert.Equal(t, "No profiles found in the article. Try another URL.", body.Message)
}

func TestCreateDocumentExtraction_BodyLimit(t *testing.T) {
	var gotBytes int
	svc := &mockExtractionService{
		extractFunc: func(ctx context.Context, req domain.ExtractionRequest) (*domain.ExtractionResult, error) {
			gotBytes = len(req.Document)
			if gotBytes > article.MaxBodySize {
				return nil, coreerrors.NewExtractionError(coreerrors.ReasonTooLarge, nil)
			}
			return domain.NewExtractionResult(req.Source(), nil), nil
		},
	}
	api := newExtractionAPI(t, svc, nil)

	// Larger than huma's 1 MiB default but within the article limit.
	resp := api.Post("/extractions/document", "Content-Type: text/plain",
		strings.NewReader(strings.Repeat("a", 2<<20)))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, 2<<20, gotBytes)

	resp = api.Post("/extractions/document", "Content-Type: text/plain",
		strings.NewReader(strings.Repeat("a", article.MaxBodySize+1)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
}

func TestListRecent(t *testing.T) {
	now := time.Now()
	svc := &mockExtractionService{
		recent: []domain.ExtractionSummary{
			{ID: "a", Title: "Newest", ProfileCount: 3, CreatedAt: now.Add(-2 * time.Hour)},
		},
	}
	api := newExtractionAPI(t, svc, nil)

	resp := api.Get("/extractions?limit=5")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, 5, svc.lastLimit)

	var body responses.RecentExtractionsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Extractions, 1)
	assert.Equal(t, "2 hours ago", body.Extractions[0].TimeAgo)

	resp = api.Get("/extractions")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 10, svc.lastLimit)
}

func TestGetExtraction(t *testing.T) {
	result := sampleExtraction()
	svc := &mockExtractionService{results: map[string]*domain.ExtractionResult{result.ID: result}}
	api := newExtractionAPI(t, svc, nil)

	resp := api.Get("/extractions/" + result.ID)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Sarah Chen")

	resp = api.Get("/extractions/missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestExportExtraction(t *testing.T) {
	result := sampleExtraction()
	svc := &mockExtractionService{results: map[string]*domain.ExtractionResult{result.ID: result}}
	api := newExtractionAPI(t, svc, nil)

	tests := []struct {
		query       string
		contentType string
		filename    string
		contains    string
	}{
		{"", "text/csv; charset=utf-8", "profiles.csv", "Sarah Chen,CEO,TechCorp"},
		{"?format=json", "application/json", "profiles.json", `"name": "Sarah Chen"`},
		{"?format=yaml", "application/yaml", "profiles.yaml", "name: Sarah Chen"},
		{"?format=md", "text/markdown; charset=utf-8", "profiles.md", "| Sarah Chen |"},
	}

	for _, tt := range tests {
		t.Run("format"+tt.query, func(t *testing.T) {
			resp := api.Get("/extractions/" + result.ID + "/export" + tt.query)
			require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
			assert.Equal(t, tt.contentType, resp.Header().Get("Content-Type"))
			assert.Contains(t, resp.Header().Get("Content-Disposition"), tt.filename)
			assert.Contains(t, resp.Body.String(), tt.contains)
		})
	}

	resp := api.Get("/extractions/" + result.ID + "/export?format=pdf")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetOutreach(t *testing.T) {
	result := sampleExtraction()
	svc := &mockExtractionService{results: map[string]*domain.ExtractionResult{result.ID: result}}
	api := newExtractionAPI(t, svc, nil)

	resp := api.Get("/extractions/" + result.ID + "/outreach")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body responses.OutreachResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Len(t, body.Drafts, 2)

	resp = api.Get("/extractions/" + result.ID + "/outreach?profileId=2")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Drafts, 1)
	assert.Equal(t, "Michael Rodriguez", body.Drafts[0].Name)

	resp = api.Get("/extractions/" + result.ID + "/outreach?profileId=9")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetSource(t *testing.T) {
	urlResult := sampleExtraction()
	docResult := domain.NewExtractionResult(domain.Source{Kind: domain.SourceDocument, Filename: "a.txt"}, nil)
	svc := &mockExtractionService{results: map[string]*domain.ExtractionResult{
		urlResult.ID: urlResult,
		docResult.ID: docResult,
	}}
	articles := &mockArticleService{article: &domain.Article{
		URL:      "https://news.example.com/story",
		Title:    "TechCorp Expands",
		Markdown: "# TechCorp Expands",
	}}
	api := newExtractionAPI(t, svc, articles)

	resp := api.Get("/extractions/" + urlResult.ID + "/source")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body responses.SourceViewResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "# TechCorp Expands", body.Markdown)
	assert.Equal(t, urlResult.ID, body.ExtractionID)

	resp = api.Get("/extractions/" + docResult.ID + "/source")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
