// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// The password hash is tagged `json:"-"` so it can never leak into an API
// response, no matter which handler serializes the struct. Username is
// immutable after registration and unique across the system (enforced by a
// UNIQUE constraint in the database).
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Description  string    `json:"description"`
	AvatarURL    string    `json:"avatarUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}
