package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies an error for the caller
type Kind string

const (
	KindValidation Kind = "validation"
	KindStorage    Kind = "storage"
	KindMetadata   Kind = "metadata"
	KindNotFound   Kind = "not_found"
	KindUnknown    Kind = ""
)

// Common error types
var (
	// Validation errors
	ErrInvalidParticipantCode = NewKind(KindValidation, "invalid participant code")
	ErrInvalidIdentifier      = NewKind(KindValidation, "invalid identifier")
	ErrEmptyUpload            = NewKind(KindValidation, "received empty file content")
	ErrPurgeNotConfirmed      = NewKind(KindValidation, "deletion not confirmed")

	// Not found
	ErrSpeakerNotFound   = NewKind(KindNotFound, "speaker not found")
	ErrRecordingNotFound = NewKind(KindNotFound, "recording not found")

	// Backend faults
	ErrStorageUnavailable = NewKind(KindStorage, "object storage request failed")
	ErrQueryFailed        = NewKind(KindMetadata, "query failed")
	ErrInsertFailed       = NewKind(KindMetadata, "insert failed")
	ErrUpdateFailed       = NewKind(KindMetadata, "update failed")
	ErrDeleteFailed       = NewKind(KindMetadata, "delete failed")
)

// Error represents a standardized error
type Error struct {
	kind    Kind
	message string
	cause   error
	// op is the sentinel for the failed operation, matched by errors.Is
	op      *Error
}

// NewKind creates a new classified error
func NewKind(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error, or the operation it failed, matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.op != nil && e.op.Is(t) {
		return true
	}
	return e.kind == t.kind && e.message == t.message
}

// Kind returns the classification set on this error, without looking at causes
func (e *Error) Kind() Kind {
	return e.kind
}

// Validation returns a client-input fault
func Validation(message string) error {
	return NewKind(KindValidation, message)
}

// Fail records err as a failure of op. The result carries op's kind and
// matches op under errors.Is.
func Fail(op *Error, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{kind: op.kind, message: message, cause: err, op: op}
}

// Storage classifies err as an object store fault
func Storage(err error, message string) error {
	return Fail(ErrStorageUnavailable, err, message)
}

// Metadata classifies err as a failed metadata store query
func Metadata(err error, message string) error {
	return Fail(ErrQueryFailed, err, message)
}

// KindOf returns the first classification found along the wrap chain.
// Unclassified errors report KindUnknown.
func KindOf(err error) Kind {
	for err != nil {
		var e *Error
		if !stderrors.As(err, &e) {
			return KindUnknown
		}
		if e.kind != KindUnknown {
			return e.kind
		}
		err = e.cause
	}
	return KindUnknown
}

// IsNotFound checks if an error is a not-found outcome
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
