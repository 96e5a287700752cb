// ABOUTME: Feed handler for the Huma API
// ABOUTME: Extracts profiles from every article linked by an RSS or Atom feed

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"newsnex-api/api/dto/mappers"
	"newsnex-api/api/dto/requests"
	"newsnex-api/api/dto/responses"
	"newsnex-api/core/domain"
	"newsnex-api/pkg/featureflags"
)

// BatchExtractor runs extractions for the articles of a feed
type BatchExtractor interface {
	BatchExtract(ctx context.Context, feedURL string, limit int, opts domain.ExtractionOptions) (*domain.BatchResult, error)
}

// FeedHandler handles feed extraction requests
type FeedHandler struct {
	batch BatchExtractor
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(batch BatchExtractor) *FeedHandler {
	return &FeedHandler{batch: batch}
}

// RegisterRoutes registers all feed-related routes
func (h *FeedHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "createFeedExtraction",
		Method:      http.MethodPost,
		Path:        "/feeds/extractions",
		Summary:     "Extract profiles from a feed",
		Description: "Reads the newest article links from an RSS or Atom feed and extracts profiles from each article",
		Tags:        []string{"Feeds"},
	}, h.CreateFeedExtraction)
}

// FeedExtractionInput defines the input for the CreateFeedExtraction operation
type FeedExtractionInput struct {
	Body requests.FeedExtractionRequest
}

// FeedExtractionOutput defines the output for the CreateFeedExtraction operation
type FeedExtractionOutput struct {
	Body *responses.BatchResponse
}

// CreateFeedExtraction extracts profiles from a feed's articles
func (h *FeedHandler) CreateFeedExtraction(ctx context.Context, input *FeedExtractionInput) (*FeedExtractionOutput, error) {
	if !featureflags.IsEnabled(ctx, featureflags.FeedExtraction) {
		return nil, huma.Error403Forbidden("Feed extraction is disabled")
	}

	input.Body.ApplyDefaults()

	result, err := h.batch.BatchExtract(ctx, input.Body.FeedURL, input.Body.Limit, input.Body.ExtractionOptions.ToDomain())
	if err != nil {
		return nil, toHumaError(err)
	}

	return &FeedExtractionOutput{Body: mappers.ToBatchResponse(result)}, nil
}
