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

// Compile-time check that *DB satisfies the interface.
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new user. The ID and creation timestamp are
// assigned here. A taken username surfaces as a conflict error; the
// UNIQUE constraint backs the check against races.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ?`,
		user.Username,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("sqlite: checking username %s: %w", user.Username, err)
	}
	if count > 0 {
		return apperror.Conflict("username already exists")
	}

	user.ID = xid.New().String()
	user.CreatedAt = time.Now()

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, description, avatar_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Description,
		user.AvatarURL,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating user: %w", err)
	}

	return nil
}

func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return db.getUser(ctx, `WHERE id = ?`, id)
}

func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return db.getUser(ctx, `WHERE username = ?`, username)
}

func (db *DB) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	var user model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, description, avatar_url, created_at
		 FROM users `+where,
		arg,
	).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Description,
		&user.AvatarURL,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", fmt.Sprint(arg))
		}
		return nil, fmt.Errorf("sqlite: getting user %v: %w", arg, err)
	}

	return &user, nil
}

// UpdateUser persists the mutable profile fields (description, avatar
// URL). Username and password hash are immutable through this path.
func (db *DB) UpdateUser(ctx context.Context, user *model.User) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE users SET description = ?, avatar_url = ? WHERE id = ?`,
		user.Description,
		user.AvatarURL,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating user %s: %w", user.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("user", user.ID)
	}

	return nil
}

// ListUsers returns all users, oldest first.
func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, username, password_hash, description, avatar_url, created_at
		 FROM users
		 ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.PasswordHash, &u.Description,
			&u.AvatarURL, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}

	return users, nil
}
