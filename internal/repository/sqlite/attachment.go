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

var _ repository.AttachmentRepository = (*DB)(nil)

// CreateAttachment inserts a new attachment record, assigning ID and
// upload timestamp. Callers only create the record after the file bytes
// are safely on disk, so a stored record never points at a missing file.
func (db *DB) CreateAttachment(ctx context.Context, att *model.Attachment) error {
	att.ID = xid.New().String()
	att.UploadedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO attachments (id, note_id, filename, original_filename, file_size, content_type, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		att.ID,
		att.NoteID,
		att.Filename,
		att.OriginalFilename,
		att.FileSize,
		att.ContentType,
		att.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating attachment: %w", err)
	}

	return nil
}

func (db *DB) GetAttachmentByID(ctx context.Context, id string) (*model.Attachment, error) {
	var att model.Attachment
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, note_id, filename, original_filename, file_size, content_type, uploaded_at
		 FROM attachments
		 WHERE id = ?`,
		id,
	).Scan(
		&att.ID, &att.NoteID, &att.Filename, &att.OriginalFilename,
		&att.FileSize, &att.ContentType, &att.UploadedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("attachment", id)
		}
		return nil, fmt.Errorf("sqlite: getting attachment %s: %w", id, err)
	}

	return &att, nil
}

// ListAttachmentsByNote returns a note's attachments, oldest first.
func (db *DB) ListAttachmentsByNote(ctx context.Context, noteID string) ([]model.Attachment, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, note_id, filename, original_filename, file_size, content_type, uploaded_at
		 FROM attachments
		 WHERE note_id = ?
		 ORDER BY uploaded_at ASC`,
		noteID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing attachments for note %s: %w", noteID, err)
	}
	defer rows.Close()

	atts := []model.Attachment{}
	for rows.Next() {
		var a model.Attachment
		if err := rows.Scan(
			&a.ID, &a.NoteID, &a.Filename, &a.OriginalFilename,
			&a.FileSize, &a.ContentType, &a.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning attachment row: %w", err)
		}
		atts = append(atts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating attachments: %w", err)
	}

	return atts, nil
}

func (db *DB) DeleteAttachment(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM attachments WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting attachment %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("attachment", id)
	}

	return nil
}

// DeleteAttachmentsByNote removes all attachment records for a note.
// Deleting zero rows is fine — a note without attachments is normal.
func (db *DB) DeleteAttachmentsByNote(ctx context.Context, noteID string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM attachments WHERE note_id = ?`,
		noteID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting attachments for note %s: %w", noteID, err)
	}

	return nil
}
