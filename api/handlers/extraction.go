// ABOUTME: Extraction handler for the Huma API
// ABOUTME: Provides endpoints to extract profiles from URLs and documents and to read results back

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"newsnex-api/api/dto/mappers"
	"newsnex-api/api/dto/requests"
	"newsnex-api/api/dto/responses"
	"newsnex-api/core/article"
	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
	"newsnex-api/core/export"
	"newsnex-api/core/interfaces"
)

// OutreachGenerator drafts first-contact messages for extracted profiles
type OutreachGenerator interface {
	Generate(result *domain.ExtractionResult, profileID int) ([]domain.OutreachDraft, error)
}

// ExtractionHandler handles extraction requests
type ExtractionHandler struct {
	extractions interfaces.ExtractionService
	articles    interfaces.ArticleService
	outreach    OutreachGenerator
	now         func() time.Time
}

// NewExtractionHandler creates a new extraction handler
func NewExtractionHandler(extractions interfaces.ExtractionService, articles interfaces.ArticleService, outreach OutreachGenerator) *ExtractionHandler {
	return &ExtractionHandler{
		extractions: extractions,
		articles:    articles,
		outreach:    outreach,
		now:         time.Now,
	}
}

// RegisterRoutes registers all extraction-related routes
func (h *ExtractionHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "createExtraction",
		Method:      http.MethodPost,
		Path:        "/extractions",
		Summary:     "Extract profiles from an article URL",
		Description: "Fetches the article at the given URL and returns the people mentioned in it with their roles, companies and quotes",
		Tags:        []string{"Extractions"},
	}, h.CreateExtraction)

	huma.Register(api, huma.Operation{
		OperationID:  "createDocumentExtraction",
		Method:       http.MethodPost,
		Path:         "/extractions/document",
		Summary:      "Extract profiles from an uploaded document",
		Description:  "Accepts a raw HTML, Markdown or plain text document as the request body",
		Tags:         []string{"Extractions"},
		// huma rejects a body that reaches the limit
		MaxBodyBytes: article.MaxBodySize + 1,
	}, h.CreateDocumentExtraction)

	huma.Register(api, huma.Operation{
		OperationID: "listRecentExtractions",
		Method:      http.MethodGet,
		Path:        "/extractions",
		Summary:     "List recent extractions",
		Description: "Returns the most recent extractions, newest first",
		Tags:        []string{"Extractions"},
	}, h.ListRecent)

	huma.Register(api, huma.Operation{
		OperationID: "getExtraction",
		Method:      http.MethodGet,
		Path:        "/extractions/{id}",
		Summary:     "Get an extraction",
		Tags:        []string{"Extractions"},
	}, h.GetExtraction)

	huma.Register(api, huma.Operation{
		OperationID: "exportExtraction",
		Method:      http.MethodGet,
		Path:        "/extractions/{id}/export",
		Summary:     "Export extracted profiles",
		Description: "Downloads the profiles as CSV, JSON, YAML or Markdown",
		Tags:        []string{"Extractions"},
	}, h.ExportExtraction)

	huma.Register(api, huma.Operation{
		OperationID: "getOutreachDrafts",
		Method:      http.MethodGet,
		Path:        "/extractions/{id}/outreach",
		Summary:     "Draft outreach messages",
		Description: "Generates a suggested first-contact message for one or all profiles",
		Tags:        []string{"Extractions"},
	}, h.GetOutreach)

	huma.Register(api, huma.Operation{
		OperationID: "getExtractionSource",
		Method:      http.MethodGet,
		Path:        "/extractions/{id}/source",
		Summary:     "Reader view of the source article",
		Description: "Re-fetches the source URL and returns its readable content",
		Tags:        []string{"Extractions"},
	}, h.GetSource)
}

// CreateExtractionInput defines the input for the CreateExtraction operation
type CreateExtractionInput struct {
	Body requests.ExtractionRequest
}

// ExtractionOutput wraps a single extraction result
type ExtractionOutput struct {
	Body *responses.ExtractionResponse
}

// CreateExtraction handles profile extraction from a URL
func (h *ExtractionHandler) CreateExtraction(ctx context.Context, input *CreateExtractionInput) (*ExtractionOutput, error) {
	result, err := h.extractions.Extract(ctx, input.Body.ToDomain())
	if err != nil {
		return nil, toHumaError(err)
	}

	return &ExtractionOutput{Body: mappers.ToExtractionResponse(result)}, nil
}

// CreateDocumentExtractionInput defines the input for the CreateDocumentExtraction operation
type CreateDocumentExtractionInput struct {
	ContentType   string `header:"Content-Type" doc:"Document media type, e.g. text/html or text/plain"`
	Filename      string `query:"filename" doc:"Original filename, used for display and type detection"`
	MinConfidence int    `query:"minConfidence" minimum:"0" maximum:"100" doc:"Drop profiles with a lower confidence score"`
	MaxProfiles   int    `query:"maxProfiles" minimum:"0" doc:"Maximum number of profiles to return"`
	Enrich        bool   `query:"enrich" doc:"Look up LinkedIn profile URLs"`
	RawBody       []byte
}

// CreateDocumentExtraction handles profile extraction from an uploaded document
func (h *ExtractionHandler) CreateDocumentExtraction(ctx context.Context, input *CreateDocumentExtractionInput) (*ExtractionOutput, error) {
	req := requests.DocumentRequest{
		Body:        input.RawBody,
		ContentType: input.ContentType,
		Filename:    input.Filename,
		ExtractionOptions: requests.ExtractionOptions{
			MinConfidence: input.MinConfidence,
			MaxProfiles:   input.MaxProfiles,
			Enrich:        input.Enrich,
		},
	}

	result, err := h.extractions.Extract(ctx, req.ToDomain())
	if err != nil {
		return nil, toHumaError(err)
	}

	return &ExtractionOutput{Body: mappers.ToExtractionResponse(result)}, nil
}

// ListRecentInput defines the input for the ListRecent operation
type ListRecentInput struct {
	Limit int `query:"limit" minimum:"0" maximum:"100" default:"10" doc:"Number of extractions to return"`
}

// ListRecentOutput defines the output for the ListRecent operation
type ListRecentOutput struct {
	Body *responses.RecentExtractionsResponse
}

// ListRecent returns the most recent extractions
func (h *ExtractionHandler) ListRecent(ctx context.Context, input *ListRecentInput) (*ListRecentOutput, error) {
	summaries, err := h.extractions.Recent(ctx, input.Limit)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &ListRecentOutput{Body: mappers.ToRecentExtractionsResponse(summaries, h.now())}, nil
}

// ExtractionIDInput identifies a stored extraction
type ExtractionIDInput struct {
	ID string `path:"id" doc:"Extraction ID"`
}

// GetExtraction returns a stored extraction
func (h *ExtractionHandler) GetExtraction(ctx context.Context, input *ExtractionIDInput) (*ExtractionOutput, error) {
	result, err := h.extractions.Get(ctx, input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &ExtractionOutput{Body: mappers.ToExtractionResponse(result)}, nil
}

// ExportInput defines the input for the ExportExtraction operation
type ExportInput struct {
	ID     string `path:"id" doc:"Extraction ID"`
	Format string `query:"format" doc:"Export format, defaults to csv"`
}

// ExportOutput is a file download
type ExportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// ExportExtraction renders the extraction's profiles in the requested format
func (h *ExtractionHandler) ExportExtraction(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	format, err := export.ParseFormat(input.Format)
	if err != nil {
		return nil, toHumaError(err)
	}

	result, err := h.extractions.Get(ctx, input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}

	data, err := export.Render(result, format)
	if err != nil {
		return nil, toHumaError(coreerrors.NewExtractionError(coreerrors.ReasonInternal, err))
	}

	return &ExportOutput{
		ContentType:        format.ContentType(),
		ContentDisposition: `attachment; filename="` + format.Filename() + `"`,
		Body:               data,
	}, nil
}

// OutreachInput defines the input for the GetOutreach operation
type OutreachInput struct {
	ID        string `path:"id" doc:"Extraction ID"`
	ProfileID int    `query:"profileId" minimum:"0" doc:"Profile to draft for; omit for all profiles"`
}

// OutreachOutput defines the output for the GetOutreach operation
type OutreachOutput struct {
	Body *responses.OutreachResponse
}

// GetOutreach drafts outreach messages for an extraction's profiles
func (h *ExtractionHandler) GetOutreach(ctx context.Context, input *OutreachInput) (*OutreachOutput, error) {
	result, err := h.extractions.Get(ctx, input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}

	drafts, err := h.outreach.Generate(result, input.ProfileID)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &OutreachOutput{Body: mappers.ToOutreachResponse(result.ID, drafts)}, nil
}

// SourceOutput defines the output for the GetSource operation
type SourceOutput struct {
	Body *responses.SourceViewResponse
}

// GetSource returns the reader view of a URL extraction's source article
func (h *ExtractionHandler) GetSource(ctx context.Context, input *ExtractionIDInput) (*SourceOutput, error) {
	result, err := h.extractions.Get(ctx, input.ID)
	if err != nil {
		return nil, toHumaError(err)
	}

	if result.Source.Kind != domain.SourceURL {
		return nil, toHumaError(&coreerrors.ValidationError{
			Field:   "id",
			Message: "Reader view is only available for URL extractions",
		})
	}

	article, err := h.articles.FromURL(ctx, result.Source.URL)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &SourceOutput{Body: mappers.ToSourceViewResponse(result.ID, article)}, nil
}
