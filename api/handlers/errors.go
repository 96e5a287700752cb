// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to HTTP problem responses with user-facing messages

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	coreerrors "newsnex-api/core/errors"
)

// reasonDetail attaches the machine readable failure reason to a problem response
func reasonDetail(reason coreerrors.Reason) error {
	return &huma.ErrorDetail{
		Message:  "extraction failed",
		Location: "reason",
		Value:    string(reason),
	}
}

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if coreerrors.IsValidation(err) {
		return huma.Error400BadRequest(coreerrors.UserMessage(err), reasonDetail(coreerrors.ReasonInvalidInput))
	}

	if coreerrors.IsExpired(err) {
		return huma.Error410Gone(err.Error())
	}

	if coreerrors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if coreerrors.IsExtraction(err) {
		reason := coreerrors.ReasonOf(err)
		message := coreerrors.UserMessage(err)
		switch reason {
		case coreerrors.ReasonUnsupportedContent:
			return huma.Error415UnsupportedMediaType(message, reasonDetail(reason))
		case coreerrors.ReasonTooLarge:
			return huma.NewError(http.StatusRequestEntityTooLarge, message, reasonDetail(reason))
		case coreerrors.ReasonFetchFailed:
			return huma.Error502BadGateway(message, reasonDetail(reason))
		case coreerrors.ReasonTimeout:
			return huma.Error504GatewayTimeout(message, reasonDetail(reason))
		case coreerrors.ReasonNoContent:
			return huma.Error422UnprocessableEntity(message, reasonDetail(reason))
		case coreerrors.ReasonCanceled:
			return huma.Error400BadRequest(message, reasonDetail(reason))
		default:
			return huma.Error500InternalServerError(message, reasonDetail(reason))
		}
	}

	var apiErr *coreerrors.ExternalAPIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode >= 500:
			return huma.Error503ServiceUnavailable("External service error")
		case apiErr.StatusCode == 429:
			return huma.Error429TooManyRequests("Rate limited by external service")
		case apiErr.StatusCode >= 400:
			return huma.Error502BadGateway("External service request error")
		default:
			return huma.Error500InternalServerError("Unexpected external service response")
		}
	}

	return huma.Error500InternalServerError(coreerrors.MessageExtractionFailed)
}
