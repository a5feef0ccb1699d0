package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/apperror"
)

// ErrorResponse is the standard error shape returned by every endpoint:
// a stable machine-readable label, a human-readable message, and
// optional per-field details for validation failures. Internal details
// (stack traces, paths, SQL) never appear here.
type ErrorResponse struct {
	Error   string                `json:"error"`
	Message string                `json:"message"`
	Fields  []apperror.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError is the single place domain errors become HTTP status
// codes. Services stay protocol-agnostic; this mapping is a pure
// function of the error chain.
func writeError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
			Error:   "file_too_large",
			Message: "the uploaded file exceeds the maximum allowed size",
		})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		label := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			label = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			label = "not_found"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
			label = "unauthorized"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			label = "conflict"
		}

		// Specific labels (empty_file, unsupported_type, invalid_path)
		// take precedence over the category default.
		if appErr.Label != "" {
			label = appErr.Label
		}

		writeJSON(w, status, ErrorResponse{
			Error:   label,
			Message: appErr.Message,
			Fields:  appErr.Fields,
		})
		return
	}

	// Unknown error: generic 500, details stay in the logs.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "an internal error occurred",
	})
}
