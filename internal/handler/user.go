package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/auth"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/service"
)

// UserHandler serves profile reads/updates and avatar upload.
type UserHandler struct {
	users          *service.UserService
	maxUploadBytes int64
	logger         *slog.Logger
}

func NewUserHandler(users *service.UserService, maxUploadBytes int64, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:          users,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// HandleProfile returns the authenticated user's profile.
//
// HTTP: GET /api/users/profile
func (h *UserHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	user, err := h.users.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Description *string `json:"description"`
	AvatarURL   *string `json:"avatarUrl"`
}

// HandleUpdateProfile applies a partial profile change. Fields absent
// from the body are left unchanged.
//
// HTTP: PUT /api/users/profile
func (h *UserHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "authentication required"})
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid profile JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, service.ProfileUpdate{
		Description: req.Description,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleList returns every user's public profile.
//
// HTTP: GET /api/users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// HandleGetByID returns one user's public profile.
//
// HTTP: GET /api/users/{id}
func (h *UserHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type avatarUploadResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// HandleUploadAvatar accepts a multipart image upload and returns the
// public URL of the stored avatar. The client records the URL on its
// profile with a follow-up PUT /api/users/profile.
//
// HTTP: POST /api/upload/avatar (multipart field "file")
func (h *UserHandler) HandleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		h.logger.Warn("avatar upload: bad multipart request", slog.String("error", err.Error()))
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

	url, err := h.users.UploadAvatar(
		r.Context(),
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, avatarUploadResponse{
		URL:     url,
		Message: "file uploaded successfully",
	})
}
