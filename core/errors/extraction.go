// ABOUTME: Typed failure reasons for the extraction workflow
// ABOUTME: Every failure carries a message that can be shown to the user as-is

package errors

import (
	"context"
	"errors"
	"fmt"
)

// Reason classifies why an extraction failed
type Reason string

const (
	ReasonInvalidInput       Reason = "invalid_input"
	ReasonFetchFailed        Reason = "fetch_failed"
	ReasonUnsupportedContent Reason = "unsupported_content"
	ReasonNoContent          Reason = "no_content"
	ReasonTooLarge           Reason = "too_large"
	ReasonTimeout            Reason = "timeout"
	ReasonCanceled           Reason = "canceled"
	ReasonInternal           Reason = "internal"
)

// MessageExtractionFailed is the generic failure message shown to users
const MessageExtractionFailed = "Failed to extract profiles. Please try again."

// ExtractionError is returned by the extraction service for any failure
type ExtractionError struct {
	Reason  Reason
	Message string
	Cause   error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction %s: %s: %v", e.Reason, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction %s: %s", e.Reason, e.Message)
}

// Unwrap returns the underlying cause
func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// NewExtractionError builds a failure with the generic user message.
// Context errors in cause override the reason.
func NewExtractionError(reason Reason, cause error) *ExtractionError {
	switch {
	case errors.Is(cause, context.DeadlineExceeded):
		reason = ReasonTimeout
	case errors.Is(cause, context.Canceled):
		reason = ReasonCanceled
	}
	return &ExtractionError{
		Reason:  reason,
		Message: MessageExtractionFailed,
		Cause:   cause,
	}
}

// IsExtraction checks if an error is an ExtractionError
func IsExtraction(err error) bool {
	var extractionErr *ExtractionError
	return errors.As(err, &extractionErr)
}

// ReasonOf returns the failure reason for err, or "" for nil
func ReasonOf(err error) Reason {
	if err == nil {
		return ""
	}

	var extractionErr *ExtractionError
	if errors.As(err, &extractionErr) {
		return extractionErr.Reason
	}
	if IsValidation(err) {
		return ReasonInvalidInput
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	if errors.Is(err, context.Canceled) {
		return ReasonCanceled
	}
	return ReasonInternal
}

// UserMessage returns the message to display for err
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var extractionErr *ExtractionError
	if errors.As(err, &extractionErr) && extractionErr.Message != "" {
		return extractionErr.Message
	}

	return MessageExtractionFailed
}
