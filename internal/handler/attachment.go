package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/auth"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/service"
)

// AttachmentHandler serves upload, listing, download, and deletion of
// note attachments. Ownership is enforced in the service layer; this
// handler only extracts identities and streams bytes.
type AttachmentHandler struct {
	attachments    *service.AttachmentService
	maxUploadBytes int64
	logger         *slog.Logger
}

func NewAttachmentHandler(attachments *service.AttachmentService, maxUploadBytes int64, logger *slog.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		attachments:    attachments,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// HandleUpload stores a file on an owned note.
//
// HTTP: POST /api/notes/{noteId}/attachments (multipart field "file")
func (h *AttachmentHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		h.logger.Warn("attachment upload: bad multipart request", slog.String("error", err.Error()))
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "missing or invalid multipart file field",
		})
		return
	}
	defer file.Close()

	att, err := h.attachments.Upload(
		r.Context(),
		userID,
		r.PathValue("noteId"),
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, att)
}

// HandleList returns an owned note's attachments.
//
// HTTP: GET /api/notes/{noteId}/attachments
func (h *AttachmentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	atts, err := h.attachments.List(r.Context(), userID, r.PathValue("noteId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, atts)
}

// HandleDownload streams an attachment back to its owner. The response
// carries the stored declared content type and the original filename in
// a Content-Disposition header.
//
// HTTP: GET /api/notes/{noteId}/attachments/{attachmentId}
func (h *AttachmentHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	att, f, err := h.attachments.Download(r.Context(), userID, r.PathValue("noteId"), r.PathValue("attachmentId"))
	if err != nil {
		writeError(w, err)
		return
	}
	defer f.Close()

	contentType := att.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", att.OriginalFilename))
	w.Header().Set("Content-Length", fmt.Sprint(att.FileSize))

	if _, err := io.Copy(w, f); err != nil {
		// Headers are gone; all we can do is log.
		h.logger.Error("attachment download: streaming failed",
			slog.String("attachmentID", att.ID),
			slog.String("error", err.Error()),
		)
	}
}

// HandleDelete removes an attachment from an owned note.
//
// HTTP: DELETE /api/notes/{noteId}/attachments/{attachmentId}
func (h *AttachmentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	if err := h.attachments.Delete(r.Context(), userID, r.PathValue("noteId"), r.PathValue("attachmentId")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
