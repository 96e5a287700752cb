// ABOUTME: Health handler for the Huma API
// ABOUTME: Reports service status, version and feature flag states

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"newsnex-api/api/dto/responses"
	"newsnex-api/pkg/featureflags"
)

// HealthHandler handles health checks
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Service health",
		Tags:        []string{"Health"},
	}, h.Health)
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body *responses.HealthResponse
}

// Health reports that the service is up
func (h *HealthHandler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	manager := featureflags.FromContext(ctx)
	features := make(map[string]bool, len(featureflags.All()))
	for _, flag := range featureflags.All() {
		features[string(flag)] = manager.IsEnabled(ctx, flag)
	}

	return &HealthOutput{Body: &responses.HealthResponse{
		Status:    "ok",
		Version:   h.version,
		Timestamp: time.Now().UTC(),
		Features:  features,
	}}, nil
}
