package model

import "time"

// Attachment is a file attached to a note.
//
// Filename is the opaque generated storage name (never derived from user
// input, never contains path separators) and is excluded from JSON so the
// on-disk layout stays private. OriginalFilename is display-only and
// untrusted. Access to an attachment is always mediated through its
// parent note.
type Attachment struct {
	ID               string    `json:"id"`
	NoteID           string    `json:"-"`
	Filename         string    `json:"-"`
	OriginalFilename string    `json:"originalFilename"`
	FileSize         int64     `json:"fileSize"`
	ContentType      string    `json:"contentType"`
	UploadedAt       time.Time `json:"uploadedAt"`
}
