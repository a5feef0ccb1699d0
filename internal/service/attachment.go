package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/apperror"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/model"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/repository"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/storage"
)

// AttachmentService handles note attachments. Every operation funnels
// through AuthorizeAccess, which binds the (caller, note, attachment)
// triple before any file or record is touched.
type AttachmentService struct {
	notes       repository.NoteRepository
	attachments repository.AttachmentRepository
	files       *storage.Store
	logger      *slog.Logger
}

func NewAttachmentService(
	notes repository.NoteRepository,
	attachments repository.AttachmentRepository,
	files *storage.Store,
	logger *slog.Logger,
) *AttachmentService {
	return &AttachmentService{
		notes:       notes,
		attachments: attachments,
		files:       files,
		logger:      logger,
	}
}

// AuthorizeAccess resolves an attachment for a caller:
//
//  1. the note must exist and belong to the caller,
//  2. the attachment must exist,
//  3. the attachment's parent note must be the requested note.
//
// Every failing step returns the same not-found error. A note owned by
// someone else, a missing attachment, and an attachment hanging off a
// different note (even one the caller owns) are indistinguishable to
// the caller, so existence never leaks.
func (s *AttachmentService) AuthorizeAccess(ctx context.Context, userID, noteID, attachmentID string) (*model.Attachment, error) {
	if _, err := s.notes.GetNoteByIDAndOwner(ctx, noteID, userID); err != nil {
		return nil, err
	}

	att, err := s.attachments.GetAttachmentByID(ctx, attachmentID)
	if err != nil {
		return nil, err
	}

	if att.NoteID != noteID {
		return nil, apperror.NotFound("attachment", attachmentID)
	}

	return att, nil
}

// Upload stores a file for an owned note and records its metadata. The
// record is only written after the bytes are on disk, so metadata never
// points at a missing file; a crash in between leaves an orphaned file,
// which is harmless.
func (s *AttachmentService) Upload(ctx context.Context, userID, noteID, originalName, contentType string, size int64, r io.Reader) (*model.Attachment, error) {
	if _, err := s.notes.GetNoteByIDAndOwner(ctx, noteID, userID); err != nil {
		return nil, err
	}

	if err := storage.ValidateUpload(storage.CategoryAttachment, size, contentType); err != nil {
		return nil, err
	}

	name, err := s.files.Save(storage.CategoryAttachment, originalName, r)
	if err != nil {
		return nil, fmt.Errorf("service/attachment: storing file: %w", err)
	}

	att := &model.Attachment{
		NoteID:           noteID,
		Filename:         name,
		OriginalFilename: originalName,
		FileSize:         size,
		ContentType:      contentType,
	}
	if err := s.attachments.CreateAttachment(ctx, att); err != nil {
		s.files.Remove(storage.CategoryAttachment, name)
		return nil, fmt.Errorf("service/attachment: recording attachment: %w", err)
	}

	s.logger.Info("attachment uploaded",
		slog.String("attachmentID", att.ID),
		slog.String("noteID", noteID),
		slog.String("filename", name),
		slog.Int64("size", size),
	)

	return att, nil
}

// List returns an owned note's attachments.
func (s *AttachmentService) List(ctx context.Context, userID, noteID string) ([]model.Attachment, error) {
	if _, err := s.notes.GetNoteByIDAndOwner(ctx, noteID, userID); err != nil {
		return nil, err
	}

	atts, err := s.attachments.ListAttachmentsByNote(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("service/attachment: listing attachments for note %s: %w", noteID, err)
	}

	return atts, nil
}

// Download authorizes access and opens the stored file. The caller owns
// the returned file and must close it.
func (s *AttachmentService) Download(ctx context.Context, userID, noteID, attachmentID string) (*model.Attachment, *os.File, error) {
	att, err := s.AuthorizeAccess(ctx, userID, noteID, attachmentID)
	if err != nil {
		return nil, nil, err
	}

	f, err := s.files.Open(storage.CategoryAttachment, att.Filename)
	if err != nil {
		return nil, nil, err
	}

	return att, f, nil
}

// Delete authorizes access, removes the stored file best-effort, and
// then deletes the metadata record. File removal failure is logged
// inside the store and never blocks the record delete.
func (s *AttachmentService) Delete(ctx context.Context, userID, noteID, attachmentID string) error {
	att, err := s.AuthorizeAccess(ctx, userID, noteID, attachmentID)
	if err != nil {
		return err
	}

	s.files.Remove(storage.CategoryAttachment, att.Filename)

	if err := s.attachments.DeleteAttachment(ctx, att.ID); err != nil {
		return fmt.Errorf("service/attachment: deleting attachment %s: %w", attachmentID, err)
	}

	s.logger.Info("attachment deleted",
		slog.String("attachmentID", attachmentID),
		slog.String("noteID", noteID),
	)

	return nil
}
