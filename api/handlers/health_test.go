package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsnex-api/api/dto/responses"
	"newsnex-api/pkg/featureflags"
)

func TestHealthHandler(t *testing.T) {
	_, api := humatest.New(t)
	NewHealthHandler("1.2.3").RegisterRoutes(api)

	resp := api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var body responses.HealthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "1.2.3", body.Version)
	assert.Len(t, body.Features, len(featureflags.All()))
	assert.True(t, body.Features[string(featureflags.FeedExtraction)])
}
