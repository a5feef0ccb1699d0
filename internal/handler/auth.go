// Package handler contains the HTTP layer: request parsing, auth
// extraction, and response writing. All business rules live in the
// service layer.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/service"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authResponse is the body returned by register and login.
type authResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// HandleRegister creates an account and returns its first token.
//
// HTTP: POST /api/auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid register JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	result, err := h.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Token:    result.Token,
		Username: result.User.Username,
		Message:  "user registered successfully",
	})
}

// HandleLogin verifies credentials and returns a fresh token.
//
// HTTP: POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	result, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Token:    result.Token,
		Username: result.User.Username,
		Message:  "login successful",
	})
}
