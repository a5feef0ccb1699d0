// Package sqlite implements the repository interfaces on SQLite.
//
// The driver is modernc.org/sqlite — a pure Go translation of SQLite,
// so no CGo and no C toolchain is needed for builds. Use ":memory:" as
// the path for throwaway databases in tests.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the repository
// interfaces. The server owns it and closes it on shutdown.
type DB struct {
	conn *sql.DB
}

// New opens the database, applies pragmas, and runs migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in progress, which
	// matters once multiple requests hit the DB at once.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			description   TEXT NOT NULL DEFAULT '',
			avatar_url    TEXT NOT NULL DEFAULT '',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS notes (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title      TEXT NOT NULL,
			content    TEXT NOT NULL,
			is_public  INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_notes_user_id ON notes(user_id);
		CREATE INDEX IF NOT EXISTS idx_notes_updated_at ON notes(updated_at);
	`)
	if err != nil {
		return fmt.Errorf("creating notes table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS attachments (
			id                TEXT PRIMARY KEY,
			note_id           TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
			filename          TEXT NOT NULL,
			original_filename TEXT NOT NULL,
			file_size         INTEGER NOT NULL DEFAULT 0,
			content_type      TEXT NOT NULL DEFAULT '',
			uploaded_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_attachments_note_id ON attachments(note_id);
	`)
	if err != nil {
		return fmt.Errorf("creating attachments table: %w", err)
	}

	return nil
}
