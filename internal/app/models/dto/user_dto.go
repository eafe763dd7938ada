package dto

import (
	"time"

	"github.com/lumina-app/lumina/internal/app/models"
)

// UserResponse represents basic user information
type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	UserColor string     `json:"userColor"`
	IsAdmin   bool       `json:"isAdmin"`
	Banned    bool       `json:"banned"`
	BannedAt  *time.Time `json:"bannedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// UpdateUsernameRequest represents the owner-mutable profile edit
type UpdateUsernameRequest struct {
	Username string `json:"username" binding:"required,min=2,max=50"`
}

// ToUserResponse maps a user model to its API shape
func ToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Username:  user.Username,
		UserColor: user.UserColor,
		IsAdmin:   user.IsAdmin,
		Banned:    user.Banned,
		BannedAt:  user.BannedAt,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserResponses maps a user slice to its API shape
func ToUserResponses(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}
