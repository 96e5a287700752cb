// ABOUTME: Error types and handling for the NewsNex library
// ABOUTME: Provides structured errors carrying a user-facing message and failure reason

package newsnex

import (
	"errors"
	"fmt"

	coreerrors "newsnex-api/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeValidation indicates invalid input, such as a missing URL
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "not_found"

	// ErrorTypeNetwork indicates the source could not be fetched
	ErrorTypeNetwork ErrorType = "network"

	// ErrorTypeParsing indicates the source had no usable content
	ErrorTypeParsing ErrorType = "parsing"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"

	// ErrorTypeConfiguration indicates a configuration error
	ErrorTypeConfiguration ErrorType = "configuration"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Reason  string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Common errors
var (
	// ErrClientClosed is returned when operations are attempted on a closed client
	ErrClientClosed = NewError(ErrorTypeInternal, "client is closed")

	// ErrNoCache is returned when the client is configured without a cache
	ErrNoCache = NewError(ErrorTypeConfiguration, "no cache configured")

	// ErrNoStorage is returned when the client is configured without an extraction store
	ErrNoStorage = NewError(ErrorTypeConfiguration, "no extraction store configured")
)

// wrapError converts core errors to library errors
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if coreerrors.IsNotFound(err) {
		return NewError(ErrorTypeNotFound, err.Error()).WithCause(err)
	}

	reason := coreerrors.ReasonOf(err)
	libErr := NewError(typeForReason(reason), coreerrors.UserMessage(err)).WithCause(err)
	libErr.Reason = string(reason)
	return libErr
}

func typeForReason(reason coreerrors.Reason) ErrorType {
	switch reason {
	case coreerrors.ReasonInvalidInput, coreerrors.ReasonUnsupportedContent, coreerrors.ReasonTooLarge:
		return ErrorTypeValidation
	case coreerrors.ReasonFetchFailed, coreerrors.ReasonTimeout:
		return ErrorTypeNetwork
	case coreerrors.ReasonNoContent:
		return ErrorTypeParsing
	default:
		return ErrorTypeInternal
	}
}

func isType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsNetworkError checks if an error is a network error
func IsNetworkError(err error) bool {
	return isType(err, ErrorTypeNetwork)
}

// IsParsingError checks if an error is a parsing error
func IsParsingError(err error) bool {
	return isType(err, ErrorTypeParsing)
}
