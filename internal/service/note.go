package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/apperror"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/model"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/repository"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/storage"
)

const MaxTitleLength = 200

// NoteService handles note CRUD. Every read or write of a specific note
// goes through an owner-scoped lookup; nothing here dereferences a note
// the caller does not own.
type NoteService struct {
	notes       repository.NoteRepository
	attachments repository.AttachmentRepository
	users       repository.UserRepository
	files       *storage.Store
	logger      *slog.Logger
}

func NewNoteService(
	notes repository.NoteRepository,
	attachments repository.AttachmentRepository,
	users repository.UserRepository,
	files *storage.Store,
	logger *slog.Logger,
) *NoteService {
	return &NoteService{
		notes:       notes,
		attachments: attachments,
		users:       users,
		files:       files,
		logger:      logger,
	}
}

func validateTitle(title string) []apperror.FieldError {
	switch {
	case title == "":
		return []apperror.FieldError{{Field: "title", Message: "title is required"}}
	case len(title) > MaxTitleLength:
		return []apperror.FieldError{{
			Field:   "title",
			Message: fmt.Sprintf("title must be %d characters or less", MaxTitleLength),
		}}
	}
	return nil
}

// Create validates and saves a new note for the given owner.
func (s *NoteService) Create(ctx context.Context, userID, title, content string, isPublic bool) (*model.Note, error) {
	title = strings.TrimSpace(title)

	fields := validateTitle(title)
	if content == "" {
		fields = append(fields, apperror.FieldError{Field: "content", Message: "content is required"})
	}
	if len(fields) > 0 {
		return nil, apperror.Invalid(fields)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/note: fetching owner %s: %w", userID, err)
	}

	note := &model.Note{
		UserID:   user.ID,
		Username: user.Username,
		Title:    title,
		Content:  content,
		IsPublic: isPublic,
	}
	if err := s.notes.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("service/note: creating note: %w", err)
	}

	s.logger.Info("note created",
		slog.String("noteID", note.ID),
		slog.String("userID", userID),
	)

	return note, nil
}

// List returns the caller's notes, most recently updated first.
func (s *NoteService) List(ctx context.Context, userID string) ([]model.Note, error) {
	notes, err := s.notes.ListNotesByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/note: listing notes for %s: %w", userID, err)
	}
	return notes, nil
}

// Get returns a single note if the caller owns it.
func (s *NoteService) Get(ctx context.Context, userID, id string) (*model.Note, error) {
	note, err := s.notes.GetNoteByIDAndOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return note, nil
}

// NoteUpdate carries a partial note change. Title is replaced only when
// non-empty; a nil Content or IsPublic keeps the old value.
type NoteUpdate struct {
	Title    string
	Content  *string
	IsPublic *bool
}

// Update applies a partial change to an owned note. The updated
// timestamp is refreshed even when nothing else changed.
func (s *NoteService) Update(ctx context.Context, userID, id string, upd NoteUpdate) (*model.Note, error) {
	note, err := s.notes.GetNoteByIDAndOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(upd.Title); title != "" {
		if fields := validateTitle(title); len(fields) > 0 {
			return nil, apperror.Invalid(fields)
		}
		note.Title = title
	}
	if upd.Content != nil {
		if *upd.Content == "" {
			return nil, apperror.ValidationFailed("content", "content is required")
		}
		note.Content = *upd.Content
	}
	if upd.IsPublic != nil {
		note.IsPublic = *upd.IsPublic
	}

	if err := s.notes.UpdateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("service/note: updating note %s: %w", id, err)
	}

	s.logger.Info("note updated",
		slog.String("noteID", id),
		slog.String("userID", userID),
	)

	return note, nil
}

// Delete removes an owned note together with its attachments. Stored
// files are removed best-effort first, then attachment records, then
// the note row — a file that cannot be unlinked never blocks the
// user-visible delete.
func (s *NoteService) Delete(ctx context.Context, userID, id string) error {
	note, err := s.notes.GetNoteByIDAndOwner(ctx, id, userID)
	if err != nil {
		return err
	}

	atts, err := s.attachments.ListAttachmentsByNote(ctx, note.ID)
	if err != nil {
		return fmt.Errorf("service/note: listing attachments for note %s: %w", id, err)
	}
	for _, att := range atts {
		s.files.Remove(storage.CategoryAttachment, att.Filename)
	}
	if err := s.attachments.DeleteAttachmentsByNote(ctx, note.ID); err != nil {
		return fmt.Errorf("service/note: deleting attachment records for note %s: %w", id, err)
	}

	if err := s.notes.DeleteNote(ctx, note.ID); err != nil {
		return fmt.Errorf("service/note: deleting note %s: %w", id, err)
	}

	s.logger.Info("note deleted",
		slog.String("noteID", id),
		slog.String("userID", userID),
		slog.Int("attachments", len(atts)),
	)

	return nil
}

// PublicByUsername returns a user's public notes. No authentication is
// required; an unknown username simply yields an empty list.
func (s *NoteService) PublicByUsername(ctx context.Context, username string) ([]model.Note, error) {
	notes, err := s.notes.ListPublicNotesByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("service/note: listing public notes for %s: %w", username, err)
	}
	return notes, nil
}
