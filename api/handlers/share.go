// ABOUTME: Share handler for the Huma API
// ABOUTME: Creates share links for extractions and resolves them for viewers

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"newsnex-api/api/dto/mappers"
	"newsnex-api/api/dto/responses"
	"newsnex-api/core/domain"
	"newsnex-api/pkg/featureflags"
)

// ShareService creates and resolves share links
type ShareService interface {
	CreateShare(ctx context.Context, extractionID string) (*domain.Share, error)
	Resolve(ctx context.Context, id string) (*domain.Share, *domain.ExtractionResult, error)
}

// ShareHandler handles share requests
type ShareHandler struct {
	shares ShareService
}

// NewShareHandler creates a new share handler
func NewShareHandler(shares ShareService) *ShareHandler {
	return &ShareHandler{shares: shares}
}

// RegisterRoutes registers all share-related routes
func (h *ShareHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "createShare",
		Method:        http.MethodPost,
		Path:          "/extractions/{id}/share",
		Summary:       "Share an extraction",
		Description:   "Creates a link that resolves to the extraction until it expires",
		Tags:          []string{"Shares"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateShare)

	huma.Register(api, huma.Operation{
		OperationID: "getShare",
		Method:      http.MethodGet,
		Path:        "/shares/{id}",
		Summary:     "Resolve a share link",
		Tags:        []string{"Shares"},
	}, h.GetShare)
}

// CreateShareOutput defines the output for the CreateShare operation
type CreateShareOutput struct {
	Body *responses.ShareResponse
}

// CreateShare creates a share link for a stored extraction
func (h *ShareHandler) CreateShare(ctx context.Context, input *ExtractionIDInput) (*CreateShareOutput, error) {
	if !featureflags.IsEnabled(ctx, featureflags.ShareEnabled) {
		return nil, huma.Error403Forbidden("Sharing is disabled")
	}

	share, err := h.shares.CreateShare(ctx, input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &CreateShareOutput{Body: mappers.ToShareResponse(share)}, nil
}

// ShareIDInput identifies a share link
type ShareIDInput struct {
	ID string `path:"id" doc:"Share ID"`
}

// GetShareOutput defines the output for the GetShare operation
type GetShareOutput struct {
	Body *responses.SharedExtractionResponse
}

// GetShare resolves a share link to its extraction
func (h *ShareHandler) GetShare(ctx context.Context, input *ShareIDInput) (*GetShareOutput, error) {
	if !featureflags.IsEnabled(ctx, featureflags.ShareEnabled) {
		return nil, huma.Error403Forbidden("Sharing is disabled")
	}

	share, result, err := h.shares.Resolve(ctx, input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &GetShareOutput{Body: &responses.SharedExtractionResponse{
		Share:      *mappers.ToShareResponse(share),
		Extraction: *mappers.ToExtractionResponse(result),
	}}, nil
}
