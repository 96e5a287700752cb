package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewExtractionError_UsesGenericMessage(t *testing.T) {
	err := NewExtractionError(ReasonFetchFailed, errors.New("dial tcp: refused"))

	assert.Equal(t, ReasonFetchFailed, err.Reason)
	assert.Equal(t, MessageExtractionFailed, err.Message)
	assert.Contains(t, err.Error(), "fetch_failed")
	assert.Contains(t, err.Error(), "dial tcp: refused")
}

func TestNewExtractionError_MapsContextErrors(t *testing.T) {
	timeout := NewExtractionError(ReasonFetchFailed, fmt.Errorf("get: %w", context.DeadlineExceeded))
	assert.Equal(t, ReasonTimeout, timeout.Reason)

	canceled := NewExtractionError(ReasonInternal, context.Canceled)
	assert.Equal(t, ReasonCanceled, canceled.Reason)
}

func TestReasonOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Reason
	}{
		{"nil", nil, ""},
		{"extraction", NewExtractionError(ReasonNoContent, nil), ReasonNoContent},
		{"wrapped extraction", fmt.Errorf("x: %w", NewExtractionError(ReasonUnsupportedContent, nil)), ReasonUnsupportedContent},
		{"validation", &ValidationError{Field: "url", Message: "Please enter a URL"}, ReasonInvalidInput},
		{"deadline", context.DeadlineExceeded, ReasonTimeout},
		{"plain", errors.New("boom"), ReasonInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReasonOf(tt.err))
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "Please enter a URL", UserMessage(&ValidationError{Field: "url", Message: "Please enter a URL"}))
	assert.Equal(t, MessageExtractionFailed, UserMessage(NewExtractionError(ReasonFetchFailed, nil)))
	assert.Equal(t, MessageExtractionFailed, UserMessage(errors.New("anything")))
	assert.True(t, IsExtraction(fmt.Errorf("wrap: %w", NewExtractionError(ReasonInternal, nil))))
}
