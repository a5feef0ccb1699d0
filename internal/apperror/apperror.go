// Package apperror defines the application's error taxonomy.
//
// Services return these typed errors; the handler layer translates them
// to HTTP status codes in exactly one place (handler.writeError). The
// sentinel errors below are matched with errors.Is, so wrapping with
// fmt.Errorf("...: %w", err) anywhere in the chain is safe.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// FieldError reports a validation failure on a single request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError carries a sentinel category, a human-readable message, and an
// optional machine-readable label for clients that branch on error kind.
// Label defaults per category when empty (see handler.writeError).
type AppError struct {
	Err     error        // sentinel category
	Label   string       // optional stable label, e.g. "empty_file"
	Message string       // human-readable message, safe to show to callers
	Fields  []FieldError // per-field details for validation errors
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing resource. It is also used when a resource
// exists but belongs to another owner, so the response never reveals
// whether the resource exists at all.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Fields:  []FieldError{{Field: field, Message: message}},
	}
}

// Invalid wraps a list of field errors collected by a validation pass.
func Invalid(fields []FieldError) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// EmptyFile rejects a zero-length upload.
func EmptyFile() *AppError {
	return &AppError{
		Err:     ErrValidation,
		Label:   "empty_file",
		Message: "file cannot be empty",
	}
}

// UnsupportedType rejects an upload whose declared content type is
// missing or outside the allow-list for the target category.
func UnsupportedType(message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Label:   "unsupported_type",
		Message: message,
	}
}

// InvalidPath rejects a filename containing a traversal sequence, a path
// separator, or anything that would resolve outside the storage root.
func InvalidPath(message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Label:   "invalid_path",
		Message: message,
	}
}
