package handler

import (
	"log/slog"
	"net/http"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/storage"
)

// AvatarHandler serves stored avatar images under a public read-only
// URL prefix. Avatars are public by design, so there is no ownership
// check — but the filename still goes through the store's path
// resolver, so traversal sequences are rejected exactly like everywhere
// else instead of being handed to the filesystem.
type AvatarHandler struct {
	files  *storage.Store
	logger *slog.Logger
}

func NewAvatarHandler(files *storage.Store, logger *slog.Logger) *AvatarHandler {
	return &AvatarHandler{files: files, logger: logger}
}

// HandleServe streams one avatar file.
//
// HTTP: GET /uploads/avatars/{filename}
func (h *AvatarHandler) HandleServe(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")

	f, err := h.files.Open(storage.CategoryAvatar, name)
	if err != nil {
		writeError(w, err)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		h.logger.Error("avatar serve: stat failed",
			slog.String("filename", name),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	// ServeContent picks the content type from the extension and
	// handles range and conditional requests.
	http.ServeContent(w, r, name, fi.ModTime(), f)
}
