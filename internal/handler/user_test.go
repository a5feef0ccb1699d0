package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/model"
)

func TestUserHandler_HandleProfile(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")

	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	req = req.WithContext(authedCtx(alice.ID))
	rr := httptest.NewRecorder()

	env.users.HandleProfile(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var user model.User
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&user))
	assert.Equal(t, "alice", user.Username)
	// The password hash never leaves the server.
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestUserHandler_HandleUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")

	body := `{"description":"gopher"}`
	req := httptest.NewRequest(http.MethodPut, "/api/users/profile", bytes.NewBufferString(body))
	req = req.WithContext(authedCtx(alice.ID))
	rr := httptest.NewRecorder()

	env.users.HandleUpdateProfile(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var user model.User
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&user))
	assert.Equal(t, "gopher", user.Description)
}

func TestUserHandler_HandleGetByID(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")

	req := httptest.NewRequest(http.MethodGet, "/api/users/"+alice.ID, nil)
	req = req.WithContext(authedCtx(alice.ID))
	req.SetPathValue("id", alice.ID)
	rr := httptest.NewRecorder()

	env.users.HandleGetByID(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/users/missing", nil)
	req = req.WithContext(authedCtx(alice.ID))
	req.SetPathValue("id", "missing")
	rr = httptest.NewRecorder()

	env.users.HandleGetByID(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUserHandler_HandleUploadAvatar(t *testing.T) {
	t.Run("valid image", func(t *testing.T) {
		env := newTestEnv(t)
		alice := env.registerUser(t, "alice")

		body, contentType := multipartFile(t, "me.png", "image/png", "png-bytes")
		req := httptest.NewRequest(http.MethodPost, "/api/upload/avatar", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(authedCtx(alice.ID))
		rr := httptest.NewRecorder()

		env.users.HandleUploadAvatar(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res struct {
			URL string `json:"url"`
		}
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.True(t, strings.HasPrefix(res.URL, "/uploads/avatars/"))
		assert.NotContains(t, res.URL, "me.png")
	})

	t.Run("non-image rejected", func(t *testing.T) {
		env := newTestEnv(t)
		alice := env.registerUser(t, "alice")

		body, contentType := multipartFile(t, "doc.pdf", "application/pdf", "pdf-bytes")
		req := httptest.NewRequest(http.MethodPost, "/api/upload/avatar", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(authedCtx(alice.ID))
		rr := httptest.NewRecorder()

		env.users.HandleUploadAvatar(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var res struct {
			Error string `json:"error"`
		}
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Equal(t, "unsupported_type", res.Error)
	})

	t.Run("missing file field", func(t *testing.T) {
		env := newTestEnv(t)
		alice := env.registerUser(t, "alice")

		req := httptest.NewRequest(http.MethodPost, "/api/upload/avatar", strings.NewReader("not multipart"))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
		req = req.WithContext(authedCtx(alice.ID))
		rr := httptest.NewRecorder()

		env.users.HandleUploadAvatar(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUserHandler_HandleList(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	env.registerUser(t, "bob")

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req = req.WithContext(authedCtx(alice.ID))
	rr := httptest.NewRecorder()

	env.users.HandleList(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var users []model.User
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&users))
	assert.Len(t, users, 2)
}
