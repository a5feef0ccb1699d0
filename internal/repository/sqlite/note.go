package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/jfmario/CSCIA591-VibeNotes2/internal/apperror"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/model"
	"github.com/jfmario/CSCIA591-VibeNotes2/internal/repository"
)

var _ repository.NoteRepository = (*DB)(nil)

// Note queries join users so responses can carry the owner's username
// without a second lookup.
const noteColumns = `n.id, n.user_id, u.username, n.title, n.content, n.is_public, n.created_at, n.updated_at`

// CreateNote inserts a new note, assigning ID and timestamps.
func (db *DB) CreateNote(ctx context.Context, note *model.Note) error {
	note.ID = xid.New().String()
	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO notes (id, user_id, title, content, is_public, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		note.ID,
		note.UserID,
		note.Title,
		note.Content,
		note.IsPublic,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating note: %w", err)
	}

	return nil
}

// GetNoteByIDAndOwner fetches a note only when it belongs to userID.
// A missing note and a note owned by someone else return the same
// not-found error.
func (db *DB) GetNoteByIDAndOwner(ctx context.Context, id, userID string) (*model.Note, error) {
	var note model.Note
	err := db.conn.QueryRowContext(ctx,
		`SELECT `+noteColumns+`
		 FROM notes n JOIN users u ON u.id = n.user_id
		 WHERE n.id = ? AND n.user_id = ?`,
		id, userID,
	).Scan(
		&note.ID, &note.UserID, &note.Username, &note.Title, &note.Content,
		&note.IsPublic, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("note", id)
		}
		return nil, fmt.Errorf("sqlite: getting note %s: %w", id, err)
	}

	return &note, nil
}

// ListNotesByOwner returns all of a user's notes, most recently updated
// first.
func (db *DB) ListNotesByOwner(ctx context.Context, userID string) ([]model.Note, error) {
	return db.listNotes(ctx,
		`SELECT `+noteColumns+`
		 FROM notes n JOIN users u ON u.id = n.user_id
		 WHERE n.user_id = ?
		 ORDER BY n.updated_at DESC`,
		userID,
	)
}

// ListPublicNotesByUsername returns a user's public notes. An unknown
// username yields an empty list, not an error.
func (db *DB) ListPublicNotesByUsername(ctx context.Context, username string) ([]model.Note, error) {
	return db.listNotes(ctx,
		`SELECT `+noteColumns+`
		 FROM notes n JOIN users u ON u.id = n.user_id
		 WHERE u.username = ? AND n.is_public = 1
		 ORDER BY n.updated_at DESC`,
		username,
	)
}

func (db *DB) listNotes(ctx context.Context, query string, arg any) ([]model.Note, error) {
	rows, err := db.conn.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing notes: %w", err)
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Username, &n.Title, &n.Content,
			&n.IsPublic, &n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning note row: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating notes: %w", err)
	}

	return notes, nil
}

// UpdateNote persists title, content, and visibility, refreshing the
// updated timestamp.
func (db *DB) UpdateNote(ctx context.Context, note *model.Note) error {
	note.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE notes
		 SET title = ?, content = ?, is_public = ?, updated_at = ?
		 WHERE id = ?`,
		note.Title,
		note.Content,
		note.IsPublic,
		note.UpdatedAt,
		note.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating note %s: %w", note.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("note", note.ID)
	}

	return nil
}

// DeleteNote removes a note row. Attachment rows fall with it via the
// foreign key cascade; the service removes attachment files (and rows)
// explicitly beforehand so the cascade is only a backstop.
func (db *DB) DeleteNote(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting note %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("note", id)
	}

	return nil
}
