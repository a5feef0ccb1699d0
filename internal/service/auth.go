// Package service contains the business logic layer.
//
// Handlers parse HTTP and delegate here; services validate, enforce
// ownership, and orchestrate repositories and file storage. Services
// accept primitives plus context and return domain errors from
// internal/apperror — they know nothing about HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/apperror"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/auth"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/model"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/repository"
)

// Credential constraints. Username length matches the registration
// contract; the bcrypt input limit caps the password.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// AuthService handles registration and login.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the user record and the issued token so the
// handler can respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// validateCredentials collects field-level errors for a register
// request. Login skips this: existing accounts are matched as-is.
func validateCredentials(username, password string) []apperror.FieldError {
	var fields []apperror.FieldError

	switch {
	case username == "":
		fields = append(fields, apperror.FieldError{Field: "username", Message: "username is required"})
	case len(username) < MinUsernameLength || len(username) > MaxUsernameLength:
		fields = append(fields, apperror.FieldError{
			Field:   "username",
			Message: fmt.Sprintf("username must be between %d and %d characters", MinUsernameLength, MaxUsernameLength),
		})
	}

	switch {
	case password == "":
		fields = append(fields, apperror.FieldError{Field: "password", Message: "password is required"})
	case len(password) < MinPasswordLength || len(password) > MaxPasswordLength:
		fields = append(fields, apperror.FieldError{
			Field:   "password",
			Message: fmt.Sprintf("password must be between %d and %d characters", MinPasswordLength, MaxPasswordLength),
		})
	}

	return fields
}

// Register creates a new account and issues its first token. A taken
// username surfaces as a conflict error.
func (s *AuthService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)

	if fields := validateCredentials(username, password); len(fields) > 0 {
		return nil, apperror.Invalid(fields)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: creating user %s: %w", username, err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and issues a token. An unknown username
// and a wrong password both come back as the same unauthorized error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid username or password")
		}
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", username, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("invalid username or password")
	}

	s.logger.Info("user logged in",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	return &AuthResult{User: user, Token: token}, nil
}
