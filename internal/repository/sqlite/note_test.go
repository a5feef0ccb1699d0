package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/apperror"
)

func TestCreateNote(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db, "alice")

	n := createTestNote(t, db, u.ID, "first", false)

	if n.ID == "" {
		t.Error("CreateNote() did not assign an ID")
	}
	if n.CreatedAt.IsZero() || n.UpdatedAt.IsZero() {
		t.Error("CreateNote() did not assign timestamps")
	}

	got, err := db.GetNoteByIDAndOwner(context.Background(), n.ID, u.ID)
	if err != nil {
		t.Fatalf("GetNoteByIDAndOwner() error = %v", err)
	}
	if got.Title != "first" || got.Content != "content" {
		t.Errorf("GetNoteByIDAndOwner() = %+v, want stored values", got)
	}
	if got.Username != "alice" {
		t.Errorf("Username = %q, want joined owner username", got.Username)
	}
}

func TestGetNoteByIDAndOwner_Scoping(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	n := createTestNote(t, db, alice.ID, "private", false)

	if _, err := db.GetNoteByIDAndOwner(context.Background(), n.ID, bob.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("other owner's lookup error = %v, want not-found", err)
	}
	if _, err := db.GetNoteByIDAndOwner(context.Background(), "missing", alice.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("missing note lookup error = %v, want not-found", err)
	}
}

func TestListNotesByOwner(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createTestNote(t, db, alice.ID, "a1", false)
	createTestNote(t, db, alice.ID, "a2", true)
	createTestNote(t, db, bob.ID, "b1", false)

	notes, err := db.ListNotesByOwner(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListNotesByOwner() error = %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("ListNotesByOwner() returned %d notes, want 2", len(notes))
	}
	for _, n := range notes {
		if n.UserID != alice.ID {
			t.Errorf("note %s owned by %s leaked into alice's list", n.ID, n.UserID)
		}
	}

	empty, err := db.ListNotesByOwner(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListNotesByOwner(nobody) error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("ListNotesByOwner(nobody) = %v, want empty non-nil slice", empty)
	}
}

func TestListPublicNotesByUsername(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	createTestNote(t, db, alice.ID, "visible", true)
	createTestNote(t, db, alice.ID, "hidden", false)

	notes, err := db.ListPublicNotesByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListPublicNotesByUsername() error = %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "visible" {
		t.Errorf("ListPublicNotesByUsername() = %+v, want only the public note", notes)
	}

	empty, err := db.ListPublicNotesByUsername(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("ListPublicNotesByUsername(ghost) error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("ListPublicNotesByUsername(ghost) returned %d notes, want 0", len(empty))
	}
}

func TestUpdateNote(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db, "alice")
	n := createTestNote(t, db, u.ID, "before", false)
	createdAt := n.UpdatedAt

	n.Title = "after"
	n.Content = "new content"
	n.IsPublic = true
	if err := db.UpdateNote(context.Background(), n); err != nil {
		t.Fatalf("UpdateNote() error = %v", err)
	}

	got, err := db.GetNoteByIDAndOwner(context.Background(), n.ID, u.ID)
	if err != nil {
		t.Fatalf("GetNoteByIDAndOwner() error = %v", err)
	}
	if got.Title != "after" || got.Content != "new content" || !got.IsPublic {
		t.Errorf("updated fields not persisted: %+v", got)
	}
	if got.UpdatedAt.Before(createdAt) {
		t.Error("UpdatedAt went backwards on update")
	}
}

func TestUpdateNote_Missing(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db, "alice")
	n := createTestNote(t, db, u.ID, "n", false)

	n.ID = "missing"
	if err := db.UpdateNote(context.Background(), n); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateNote() for missing row error = %v, want not-found", err)
	}
}

func TestDeleteNote(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db, "alice")
	n := createTestNote(t, db, u.ID, "doomed", false)
	a := createTestAttachment(t, db, n.ID, "f.txt")

	if err := db.DeleteNote(context.Background(), n.ID); err != nil {
		t.Fatalf("DeleteNote() error = %v", err)
	}

	if _, err := db.GetNoteByIDAndOwner(context.Background(), n.ID, u.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("note still present after delete: %v", err)
	}

	// The foreign key cascade takes the attachment rows with the note.
	if _, err := db.GetAttachmentByID(context.Background(), a.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("attachment survived note delete: %v", err)
	}

	if err := db.DeleteNote(context.Background(), n.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second DeleteNote() error = %v, want not-found", err)
	}
}
