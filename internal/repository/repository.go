// Package repository defines the persistence interfaces the service
// layer programs against. The sqlite subpackage provides the concrete
// implementation; tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	ListUsers(ctx context.Context) ([]model.User, error)
}

// NoteRepository scopes single-note reads to an owner: GetNoteByIDAndOwner
// returns not-found both when the note is missing and when it belongs to
// someone else, so callers can't probe for existence.
type NoteRepository interface {
	CreateNote(ctx context.Context, note *model.Note) error
	GetNoteByIDAndOwner(ctx context.Context, id, userID string) (*model.Note, error)
	ListNotesByOwner(ctx context.Context, userID string) ([]model.Note, error)
	ListPublicNotesByUsername(ctx context.Context, username string) ([]model.Note, error)
	UpdateNote(ctx context.Context, note *model.Note) error
	DeleteNote(ctx context.Context, id string) error
}

type AttachmentRepository interface {
	CreateAttachment(ctx context.Context, att *model.Attachment) error
	GetAttachmentByID(ctx context.Context, id string) (*model.Attachment, error)
	ListAttachmentsByNote(ctx context.Context, noteID string) ([]model.Attachment, error)
	DeleteAttachment(ctx context.Context, id string) error
	DeleteAttachmentsByNote(ctx context.Context, noteID string) error
}
