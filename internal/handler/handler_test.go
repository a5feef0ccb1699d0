package handler_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/auth"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/handler"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/model"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/repository/sqlite"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/service"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/storage"
)

// testEnv wires handlers against an in-memory database and a temp-dir
// file store, so handler tests cover the full request path below HTTP.
type testEnv struct {
	auth        *handler.AuthHandler
	users       *handler.UserHandler
	notes       *handler.NoteHandler
	attachments *handler.AttachmentHandler

	authSvc *service.AuthService
	noteSvc *service.NoteService
	files   *storage.Store
}

const testMaxUpload = 1 << 20 // 1 MiB keeps oversize tests cheap

func testLoggerDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := testLoggerDiscard()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("sqlite.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	dir := t.TempDir()
	files, err := storage.New(filepath.Join(dir, "avatars"), filepath.Join(dir, "attachments"), logger)
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}

	tokens, err := auth.NewTokenService("handler-test-secret-123456", time.Hour)
	if err != nil {
		t.Fatalf("auth.NewTokenService() error = %v", err)
	}
	passwords := auth.NewPasswordServiceForTest(bcrypt.MinCost)

	authSvc := service.NewAuthService(db, tokens, passwords, logger)
	userSvc := service.NewUserService(db, files, logger)
	noteSvc := service.NewNoteService(db, db, db, files, logger)
	attSvc := service.NewAttachmentService(db, db, files, logger)

	return &testEnv{
		auth:        handler.NewAuthHandler(authSvc, logger),
		users:       handler.NewUserHandler(userSvc, testMaxUpload, logger),
		notes:       handler.NewNoteHandler(noteSvc, logger),
		attachments: handler.NewAttachmentHandler(attSvc, testMaxUpload, logger),
		authSvc:     authSvc,
		noteSvc:     noteSvc,
		files:       files,
	}
}

// registerUser creates an account through the service layer and returns
// the user record.
func (e *testEnv) registerUser(t *testing.T, username string) *model.User {
	t.Helper()
	res, err := e.authSvc.Register(context.Background(), username, "password1")
	if err != nil {
		t.Fatalf("registering %s: %v", username, err)
	}
	return res.User
}

func (e *testEnv) createNote(t *testing.T, userID, title string, public bool) *model.Note {
	t.Helper()
	n, err := e.noteSvc.Create(context.Background(), userID, title, "note content", public)
	if err != nil {
		t.Fatalf("creating note %s: %v", title, err)
	}
	return n
}

// authedCtx returns a context as the auth middleware would leave it.
func authedCtx(userID string) context.Context {
	return auth.WithUserID(context.Background(), userID)
}

// multipartFile builds a multipart body with a single "file" part that
// declares the given content type.
func multipartFile(t *testing.T, filename, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("creating multipart part: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("writing multipart part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	return &buf, w.FormDataContentType()
}
