package models

import (
	"time"

	"github.com/google/uuid"
)

// User defines the user profile model based on the 'users' table
type User struct {
	ID        uuid.UUID  `json:"id" db:"id"`                             // Unique identifier for the user
	Email     string     `json:"email" db:"email"`                       // User's email address
	Username  string     `json:"username" db:"username"`                 // Display name, mutable by the owner
	UserColor string     `json:"userColor" db:"user_color"`              // Display color drawn from the palette
	IsAdmin   bool       `json:"isAdmin" db:"is_admin"`                  // Whether the user may use moderation endpoints
	Banned    bool       `json:"banned" db:"banned"`                     // Whether the user is banned from writing
	BannedAt  *time.Time `json:"bannedAt,omitempty" db:"banned_at"`      // When the ban was applied (nullable)
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`              // When the profile was first created
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`              // When the profile was last updated
}

// Actor is the identity attributed to a mutation at the time it is issued
type Actor struct {
	UserID    uuid.UUID `json:"userId"`
	Username  string    `json:"username"`
	UserColor string    `json:"userColor"`
}

// AnonymousActor returns the fallback actor used when the profile for id
// has not loaded yet
func AnonymousActor(id uuid.UUID) Actor {
	return Actor{
		UserID:    id,
		Username:  "Anonymous",
		UserColor: DefaultUserColor,
	}
}

// Actor returns the write attribution for this profile
func (u *User) Actor() Actor {
	return Actor{
		UserID:    u.ID,
		Username:  u.Username,
		UserColor: u.UserColor,
	}
}
