package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	apperrors "twi-speech/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindNotFound        ErrorKind = "not_found"
	KindForbidden       ErrorKind = "forbidden"
	KindInternal        ErrorKind = "internal"
	KindBadRequest      ErrorKind = "bad_request"
	KindPayloadTooLarge ErrorKind = "payload_too_large"
)

// NotConfirmedMessage is returned when a purge is requested without confirmation
const NotConfirmedMessage = "Deletion not confirmed. Add '?confirm=true' to the URL to proceed."

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) *APIError {
	return &APIError{
		Kind:    KindForbidden,
		Message: message,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewPayloadTooLargeError creates an error for bodies over the upload limit
func NewPayloadTooLargeError(limit int64) *APIError {
	return &APIError{
		Kind:    KindPayloadTooLarge,
		Message: fmt.Sprintf("Request body exceeds %d bytes", limit),
	}
}

// FromDomain maps a classified application error onto an API error.
// It returns nil for unclassified errors, which are left to the recovery middleware.
// Backend faults never expose their cause.
func FromDomain(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case stderrors.Is(err, apperrors.ErrPurgeNotConfirmed):
		return NewForbiddenError(NotConfirmedMessage)
	case stderrors.Is(err, apperrors.ErrInvalidIdentifier):
		return NewBadRequestError(err.Error())
	}

	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return &APIError{Kind: KindValidation, Message: err.Error()}
	case apperrors.KindNotFound:
		switch {
		case stderrors.Is(err, apperrors.ErrSpeakerNotFound):
			return NewNotFoundError("Speaker")
		case stderrors.Is(err, apperrors.ErrRecordingNotFound):
			return NewNotFoundError("Recording")
		}
		return NewNotFoundError("Resource")
	case apperrors.KindStorage:
		return NewInternalError("Object storage request failed")
	case apperrors.KindMetadata:
		return NewInternalError("Database request failed")
	}
	return nil
}
