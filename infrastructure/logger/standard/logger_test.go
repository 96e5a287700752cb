package standard

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStandardLogger(t *testing.T) {
	logger := NewStandardLogger()

	require.NotNil(t, logger)
	assert.Equal(t, "info", logger.entry.GetLevel().String())
}

func TestStandardLogger_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "debug")

	logger.Info("Extraction completed", map[string]interface{}{
		"url":      "https://example.com/a",
		"profiles": 3,
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Extraction completed", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "https://example.com/a", entry["url"])
	assert.Equal(t, float64(3), entry["profiles"])
}

func TestStandardLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")

	logger.Debug("hidden", nil)
	logger.Info("hidden", nil)
	logger.Warn("shown", nil)
	logger.Error("shown too", map[string]interface{}{"code": 500})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
}

func TestStandardLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	logger := NewWithOptions(Options{Level: "loud"})
	assert.Equal(t, "info", logger.entry.GetLevel().String())
}
