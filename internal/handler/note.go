package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/auth"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/service"
)

// NoteHandler serves note CRUD plus the public per-user note listing.
type NoteHandler struct {
	notes  *service.NoteService
	logger *slog.Logger
}

func NewNoteHandler(notes *service.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{notes: notes, logger: logger}
}

type createNoteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsPublic bool   `json:"isPublic"`
}

type updateNoteRequest struct {
	Title    string  `json:"title"`
	Content  *string `json:"content"`
	IsPublic *bool   `json:"isPublic"`
}

// HandleCreate saves a new note for the authenticated user.
//
// HTTP: POST /api/notes
func (h *NoteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid note JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	note, err := h.notes.Create(r.Context(), userID, req.Title, req.Content, req.IsPublic)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

// HandleList returns the authenticated user's notes, most recently
// updated first.
//
// HTTP: GET /api/notes
func (h *NoteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	notes, err := h.notes.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

// HandleGetByID returns a single owned note.
//
// HTTP: GET /api/notes/{id}
func (h *NoteHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	note, err := h.notes.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// HandleUpdate applies a partial change to an owned note.
//
// HTTP: PUT /api/notes/{id}
func (h *NoteHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid note JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	note, err := h.notes.Update(r.Context(), userID, r.PathValue("id"), service.NoteUpdate{
		Title:    req.Title,
		Content:  req.Content,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// HandleDelete removes an owned note and its attachments.
//
// HTTP: DELETE /api/notes/{id}
func (h *NoteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	if err := h.notes.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandlePublicByUsername returns a user's public notes without
// authentication.
//
// HTTP: GET /api/public/users/{username}/notes
func (h *NoteHandler) HandlePublicByUsername(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.PublicByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notes)
}
