package model

import "time"

// Note is a text note owned by exactly one user.
//
// UserID is a plain identifier, not an embedded User. Every cross-entity
// access goes through an explicit repository lookup, which keeps ownership
// checks auditable (see service.AttachmentService.AuthorizeAccess).
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Username  string    `json:"username,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
