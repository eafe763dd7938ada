package models

import (
	"time"

	"github.com/google/uuid"
)

// Reaction defines the emoji reaction model based on the 'reactions' table.
// At most one reaction exists per (user, image) pair; the store enforces
// this with a unique index.
type Reaction struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ImageID   string    `json:"imageId" db:"image_id"`     // Opaque key into the external image catalog
	Emoji     string    `json:"emoji" db:"emoji"`          // One of AvailableEmojis
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Username  string    `json:"username" db:"username"`    // Actor snapshot at write time
	UserColor string    `json:"userColor" db:"user_color"`
	Timestamp time.Time `json:"timestamp" db:"created_at"`
}

// Comment defines the comment model based on the 'comments' table.
// Comments are immutable once created; there is no edit operation.
type Comment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ImageID   string    `json:"imageId" db:"image_id"`
	Text      string    `json:"text" db:"text"` // Trimmed, non-empty, at most CommentMaxLength
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Username  string    `json:"username" db:"username"`
	UserColor string    `json:"userColor" db:"user_color"`
	Timestamp time.Time `json:"timestamp" db:"created_at"`
}
