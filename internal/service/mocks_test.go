package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/xid"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/apperror"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/model"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/repository"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/storage"
)

// In-memory repository fakes. They mirror the sqlite layer's error
// contract: missing rows come back as apperror.ErrNotFound, duplicate
// usernames as apperror.ErrConflict.

type mockUserRepo struct {
	users map[string]*model.User // keyed by ID
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return apperror.Conflict("username already exists")
		}
	}
	user.ID = xid.New().String()
	user.CreatedAt = time.Now().UTC()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (m *mockUserRepo) UpdateUser(_ context.Context, user *model.User) error {
	stored, ok := m.users[user.ID]
	if !ok {
		return apperror.NotFound("user", user.ID)
	}
	stored.Description = user.Description
	stored.AvatarURL = user.AvatarURL
	return nil
}

func (m *mockUserRepo) ListUsers(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

type mockNoteRepo struct {
	notes map[string]*model.Note
	users *mockUserRepo
}

func newMockNoteRepo(users *mockUserRepo) *mockNoteRepo {
	return &mockNoteRepo{notes: make(map[string]*model.Note), users: users}
}

var _ repository.NoteRepository = (*mockNoteRepo)(nil)

func (m *mockNoteRepo) CreateNote(_ context.Context, note *model.Note) error {
	note.ID = xid.New().String()
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now
	m.notes[note.ID] = note
	return nil
}

func (m *mockNoteRepo) GetNoteByIDAndOwner(_ context.Context, id, userID string) (*model.Note, error) {
	n, ok := m.notes[id]
	if !ok || n.UserID != userID {
		return nil, apperror.NotFound("note", id)
	}
	copied := *n
	return &copied, nil
}

func (m *mockNoteRepo) ListNotesByOwner(_ context.Context, userID string) ([]model.Note, error) {
	out := []model.Note{}
	for _, n := range m.notes {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *mockNoteRepo) ListPublicNotesByUsername(_ context.Context, username string) ([]model.Note, error) {
	out := []model.Note{}
	for _, n := range m.notes {
		if n.IsPublic && n.Username == username {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *mockNoteRepo) UpdateNote(_ context.Context, note *model.Note) error {
	stored, ok := m.notes[note.ID]
	if !ok {
		return apperror.NotFound("note", note.ID)
	}
	stored.Title = note.Title
	stored.Content = note.Content
	stored.IsPublic = note.IsPublic
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockNoteRepo) DeleteNote(_ context.Context, id string) error {
	if _, ok := m.notes[id]; !ok {
		return apperror.NotFound("note", id)
	}
	delete(m.notes, id)
	return nil
}

type mockAttachmentRepo struct {
	attachments map[string]*model.Attachment
}

func newMockAttachmentRepo() *mockAttachmentRepo {
	return &mockAttachmentRepo{attachments: make(map[string]*model.Attachment)}
}

var _ repository.AttachmentRepository = (*mockAttachmentRepo)(nil)

func (m *mockAttachmentRepo) CreateAttachment(_ context.Context, att *model.Attachment) error {
	att.ID = xid.New().String()
	att.UploadedAt = time.Now().UTC()
	m.attachments[att.ID] = att
	return nil
}

func (m *mockAttachmentRepo) GetAttachmentByID(_ context.Context, id string) (*model.Attachment, error) {
	a, ok := m.attachments[id]
	if !ok {
		return nil, apperror.NotFound("attachment", id)
	}
	copied := *a
	return &copied, nil
}

func (m *mockAttachmentRepo) ListAttachmentsByNote(_ context.Context, noteID string) ([]model.Attachment, error) {
	out := []model.Attachment{}
	for _, a := range m.attachments {
		if a.NoteID == noteID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockAttachmentRepo) DeleteAttachment(_ context.Context, id string) error {
	if _, ok := m.attachments[id]; !ok {
		return apperror.NotFound("attachment", id)
	}
	delete(m.attachments, id)
	return nil
}

func (m *mockAttachmentRepo) DeleteAttachmentsByNote(_ context.Context, noteID string) error {
	for id, a := range m.attachments {
		if a.NoteID == noteID {
			delete(m.attachments, id)
		}
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	dir := t.TempDir()
	s, err := storage.New(filepath.Join(dir, "avatars"), filepath.Join(dir, "attachments"), testLogger())
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	return s
}

// seedUser registers a user directly through the repo fake.
func seedUser(t *testing.T, users *mockUserRepo, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, PasswordHash: "x"}
	if err := users.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seeding user %s: %v", username, err)
	}
	return u
}

// seedNote creates a note owned by userID.
func seedNote(t *testing.T, notes *mockNoteRepo, userID, username, title string, public bool) *model.Note {
	t.Helper()
	n := &model.Note{UserID: userID, Username: username, Title: title, Content: "content", IsPublic: public}
	if err := notes.CreateNote(context.Background(), n); err != nil {
		t.Fatalf("seeding note %s: %v", title, err)
	}
	return n
}
