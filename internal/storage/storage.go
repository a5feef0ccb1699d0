// Package storage persists uploaded files on the local filesystem.
//
// Files are grouped into categories (avatars, note attachments), each
// with its own root directory and content-type allow-list. Every file is
// stored under a generated name that is never derived from user input,
// and every path is resolved through a single chokepoint that rejects
// traversal sequences and anything that would land outside the category
// root. The original filename survives only as display metadata on the
// attachment record.
//
// The store holds no mutable state after construction: the resolved
// roots are fixed at startup, and generated names are unique per write,
// so concurrent requests never contend on the same path.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/apperror"
)

// Category selects a storage sub-root and its allow-list.
type Category string

const (
	CategoryAvatar     Category = "avatar"
	CategoryAttachment Category = "attachment"
)

// Store writes, reads, and deletes files under per-category roots.
type Store struct {
	roots  map[Category]string // absolute, cleaned at construction
	logger *slog.Logger
}

// New resolves and creates the storage roots. Directory creation failure
// is returned as an error; main treats it as fatal.
func New(avatarDir, attachmentDir string, logger *slog.Logger) (*Store, error) {
	roots := make(map[Category]string, 2)
	for cat, dir := range map[Category]string{
		CategoryAvatar:     avatarDir,
		CategoryAttachment: attachmentDir,
	} {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("storage: resolving %s root %q: %w", cat, dir, err)
		}
		abs = filepath.Clean(abs)
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return nil, fmt.Errorf("storage: creating %s root %q: %w", cat, abs, err)
		}
		roots[cat] = abs
	}

	return &Store{roots: roots, logger: logger}, nil
}

// Resolve turns a bare filename into an absolute path under the
// category's root. It fails with an invalid-path error when the name is
// empty, contains a parent-directory sequence or a path separator, or
// when the cleaned result does not sit strictly inside the root.
//
// Names passed here are expected to be exactly the opaque generated name
// returned by Save; anything else is an attack or a bug, and both get
// the same rejection.
func (s *Store) Resolve(cat Category, name string) (string, error) {
	root, ok := s.roots[cat]
	if !ok {
		return "", fmt.Errorf("storage: unknown category %q", cat)
	}

	if name == "" {
		return "", apperror.InvalidPath("filename is required")
	}
	if strings.Contains(name, "..") {
		return "", apperror.InvalidPath("filename contains invalid path sequence")
	}
	if strings.ContainsAny(name, `/\`) {
		return "", apperror.InvalidPath("filename must not contain path separators")
	}

	path := filepath.Clean(filepath.Join(root, name))
	if !strings.HasPrefix(path, root+string(os.PathSeparator)) {
		return "", apperror.InvalidPath("invalid file path")
	}

	return path, nil
}

// Save writes the file to disk under a freshly generated name and
// returns that name. The extension (if any) is carried over from
// originalName; the rest of the generated name is a random UUID, so
// collisions are not checked for and an existing file with the same
// name would simply be overwritten.
func (s *Store) Save(cat Category, originalName string, r io.Reader) (string, error) {
	if strings.Contains(originalName, "..") {
		return "", apperror.InvalidPath("filename contains invalid path sequence")
	}

	ext := filepath.Ext(filepath.Base(originalName))
	name := uuid.NewString() + ext

	path, err := s.Resolve(cat, name)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("storage: creating %s file: %w", cat, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("storage: writing %s file: %w", cat, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("storage: closing %s file: %w", cat, err)
	}

	return name, nil
}

// Open returns a reader over a stored file. The name goes through
// Resolve, so traversal attempts surface as invalid-path errors rather
// than filesystem probes. A missing or unreadable file maps to the same
// not-found error the callers use for missing records.
//
// The caller owns the returned file and must close it.
func (s *Store) Open(cat Category, name string) (*os.File, error) {
	path, err := s.Resolve(cat, name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, apperror.NotFound("file", name)
		}
		return nil, fmt.Errorf("storage: opening %s file %s: %w", cat, name, err)
	}

	return f, nil
}

// Remove deletes a stored file, best effort. Failures are logged and
// swallowed: a stuck file must never abort the caller's operation (a
// note delete still succeeds even if one attachment can't be unlinked).
// Removing a name that no longer exists is a no-op.
func (s *Store) Remove(cat Category, name string) {
	path, err := s.Resolve(cat, name)
	if err != nil {
		s.logger.Warn("skipping file removal",
			slog.String("category", string(cat)),
			slog.String("filename", name),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("failed to remove file",
			slog.String("category", string(cat)),
			slog.String("filename", name),
			slog.String("error", err.Error()),
		)
	}
}

// Root returns the resolved root directory for a category. Used by the
// server wiring for logging at startup.
func (s *Store) Root(cat Category) string {
	return s.roots[cat]
}
