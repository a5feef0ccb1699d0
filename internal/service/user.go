package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/apperror"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/model"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/repository"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/storage"
)

const (
	MaxDescriptionLength = 1000
	MaxAvatarURLLength   = 500
)

// AvatarURLPrefix is the public path avatars are served under. The
// upload endpoint returns generated-name URLs with this prefix; the
// server maps the same prefix back onto the avatar storage root.
const AvatarURLPrefix = "/uploads/avatars/"

// UserService handles profile reads and updates plus avatar upload.
type UserService struct {
	users  repository.UserRepository
	files  *storage.Store
	logger *slog.Logger
}

func NewUserService(users repository.UserRepository, files *storage.Store, logger *slog.Logger) *UserService {
	return &UserService{
		users:  users,
		files:  files,
		logger: logger,
	}
}

// Profile returns the user record for the given internal ID.
func (s *UserService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/user: fetching user %s: %w", userID, err)
	}
	return user, nil
}

// ProfileUpdate carries the optional fields of a profile change. A nil
// pointer means "leave unchanged".
type ProfileUpdate struct {
	Description *string
	AvatarURL   *string
}

// UpdateProfile applies a partial profile change for the authenticated
// user and returns the updated record.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*model.User, error) {
	var fields []apperror.FieldError
	if upd.Description != nil && len(*upd.Description) > MaxDescriptionLength {
		fields = append(fields, apperror.FieldError{
			Field:   "description",
			Message: fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
		})
	}
	if upd.AvatarURL != nil && len(*upd.AvatarURL) > MaxAvatarURLLength {
		fields = append(fields, apperror.FieldError{
			Field:   "avatarUrl",
			Message: fmt.Sprintf("avatar URL must not exceed %d characters", MaxAvatarURLLength),
		})
	}
	if len(fields) > 0 {
		return nil, apperror.Invalid(fields)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/user: fetching user %s: %w", userID, err)
	}

	if upd.Description != nil {
		user.Description = *upd.Description
	}
	if upd.AvatarURL != nil {
		user.AvatarURL = *upd.AvatarURL
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("service/user: updating user %s: %w", userID, err)
	}

	s.logger.Info("profile updated", slog.String("userID", userID))

	return user, nil
}

// GetByID returns a user's public profile by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// List returns all users' public profiles.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/user: listing users: %w", err)
	}
	return users, nil
}

// UploadAvatar validates and stores an avatar image, returning its
// public URL. The caller records the URL on the profile in a separate
// update — storage and profile state are decoupled on purpose, so a
// client can preview an avatar before committing to it.
func (s *UserService) UploadAvatar(ctx context.Context, originalName, contentType string, size int64, r io.Reader) (string, error) {
	if err := storage.ValidateUpload(storage.CategoryAvatar, size, contentType); err != nil {
		return "", err
	}

	name, err := s.files.Save(storage.CategoryAvatar, originalName, r)
	if err != nil {
		return "", fmt.Errorf("service/user: storing avatar: %w", err)
	}

	s.logger.Info("avatar uploaded",
		slog.String("filename", name),
		slog.Int64("size", size),
	)

	return AvatarURLPrefix + name, nil
}
