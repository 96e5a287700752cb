// ABOUTME: Metadata handler for the Huma API
// ABOUTME: Previews an article's title, site and author before running an extraction

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
	"newsnex-api/core/interfaces"
)

// MetadataHandler handles metadata preview requests
type MetadataHandler struct {
	metadata interfaces.MetadataService
}

// NewMetadataHandler creates a new metadata handler
func NewMetadataHandler(metadata interfaces.MetadataService) *MetadataHandler {
	return &MetadataHandler{metadata: metadata}
}

// RegisterRoutes registers the metadata route
func (h *MetadataHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "previewMetadata",
		Method:      http.MethodPost,
		Path:        "/metadata",
		Summary:     "Preview article metadata",
		Description: "Extracts Open Graph, JSON-LD and standard meta tags from an article URL",
		Tags:        []string{"Metadata"},
	}, h.PreviewMetadata)
}

// MetadataInput defines the input for the PreviewMetadata operation
type MetadataInput struct {
	Body struct {
		URL string `json:"url,omitempty" doc:"Article URL"`
	}
}

// MetadataItem is the previewed metadata of one page
type MetadataItem struct {
	URL          string     `json:"url"`
	Title        string     `json:"title,omitempty"`
	Description  string     `json:"description,omitempty"`
	SiteName     string     `json:"siteName,omitempty"`
	Author       string     `json:"author,omitempty"`
	Thumbnail    string     `json:"thumbnail,omitempty"`
	CanonicalURL string     `json:"canonicalUrl,omitempty"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
}

// MetadataOutput defines the output for the PreviewMetadata operation
type MetadataOutput struct {
	Body *MetadataItem
}

// PreviewMetadata returns the metadata of an article URL
func (h *MetadataHandler) PreviewMetadata(ctx context.Context, input *MetadataInput) (*MetadataOutput, error) {
	url := input.Body.URL
	if url == "" {
		return nil, toHumaError(&coreerrors.ValidationError{Field: "url", Message: domain.MessageMissingURL})
	}
	if !domain.IsValidURL(url) {
		return nil, toHumaError(&coreerrors.ValidationError{Field: "url", Message: domain.MessageInvalidURL})
	}

	meta, err := h.metadata.ExtractMetadata(ctx, url)
	if err != nil {
		return nil, toHumaError(coreerrors.NewExtractionError(coreerrors.ReasonFetchFailed, err))
	}
	if meta == nil {
		return nil, toHumaError(coreerrors.NewExtractionError(coreerrors.ReasonNoContent, nil))
	}

	item := &MetadataItem{
		URL:          url,
		Title:        meta.Title,
		Description:  meta.Description,
		SiteName:     meta.SiteName,
		Author:       meta.Author,
		Thumbnail:    meta.Thumbnail,
		CanonicalURL: meta.CanonicalURL,
	}
	if !meta.PublishedAt.IsZero() {
		published := meta.PublishedAt
		item.PublishedAt = &published
	}

	return &MetadataOutput{Body: item}, nil
}
