package storage

import (
	"strings"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/apperror"
)

// Allow-lists keyed by declared MIME type. The declared type is what the
// client sent in the multipart part header — it is trusted as-is, with
// no content sniffing. That trust boundary is deliberate: the stored
// content type is only ever echoed back on download, never executed.
var (
	avatarTypes = map[string]struct{}{
		"image/jpeg": {},
		"image/jpg":  {},
		"image/png":  {},
		"image/gif":  {},
		"image/webp": {},
	}

	attachmentTypes = map[string]struct{}{
		"application/pdf":    {},
		"application/msword": {},
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
		"text/plain": {},
		"text/csv":   {},
		"image/jpeg": {},
		"image/jpg":  {},
		"image/png":  {},
		"image/gif":  {},
		"image/webp": {},
	}
)

// ValidateUpload checks an upload's size and declared content type
// against the category's allow-list before any bytes touch disk.
// Zero-length files are rejected outright.
func ValidateUpload(cat Category, size int64, contentType string) error {
	if size == 0 {
		return apperror.EmptyFile()
	}

	ct := strings.ToLower(strings.TrimSpace(contentType))
	// Drop media-type parameters like "; charset=utf-8".
	if base, _, found := strings.Cut(ct, ";"); found {
		ct = strings.TrimSpace(base)
	}

	switch cat {
	case CategoryAvatar:
		if _, ok := avatarTypes[ct]; !ok {
			return apperror.UnsupportedType("only image files (JPEG, PNG, GIF, WebP) are allowed")
		}
	case CategoryAttachment:
		if _, ok := attachmentTypes[ct]; !ok {
			return apperror.UnsupportedType("file type not allowed; allowed types: PDF, DOC, DOCX, TXT, CSV, and images")
		}
	}

	return nil
}
