package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity is an append-only feed entry recording one user-visible
// interaction event. It is never the source of truth for reaction or
// comment existence; it is written as a side effect of the primary
// mutation and may be missing if that second step failed.
type Activity struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	Type        ActivityType `json:"type" db:"type"`
	ImageID     string       `json:"imageId" db:"image_id"`
	UserID      uuid.UUID    `json:"userId" db:"user_id"`
	Username    string       `json:"username" db:"username"`
	UserColor   string       `json:"userColor" db:"user_color"`
	Emoji       string       `json:"emoji,omitempty" db:"emoji"`              // Set for emoji_added
	CommentText string       `json:"commentText,omitempty" db:"comment_text"` // Set for comment_added
	Timestamp   time.Time    `json:"timestamp" db:"created_at"`
}
