package sqlite

import (
	"context"
	"testing"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/model"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(:memory:) error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, PasswordHash: "hash"}
	if err := db.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser(%s) error = %v", username, err)
	}
	return u
}

func createTestNote(t *testing.T, db *DB, userID, title string, public bool) *model.Note {
	t.Helper()
	n := &model.Note{UserID: userID, Title: title, Content: "content", IsPublic: public}
	if err := db.CreateNote(context.Background(), n); err != nil {
		t.Fatalf("CreateNote(%s) error = %v", title, err)
	}
	return n
}

func createTestAttachment(t *testing.T, db *DB, noteID, filename string) *model.Attachment {
	t.Helper()
	a := &model.Attachment{
		NoteID:           noteID,
		Filename:         filename,
		OriginalFilename: "original-" + filename,
		FileSize:         42,
		ContentType:      "text/plain",
	}
	if err := db.CreateAttachment(context.Background(), a); err != nil {
		t.Fatalf("CreateAttachment(%s) error = %v", filename, err)
	}
	return a
}
