package dto

import (
	"time"

	"github.com/lumina-app/lumina/internal/app/models"
)

// ToggleReactionRequest represents one tap on an emoji button
type ToggleReactionRequest struct {
	ImageID string `json:"imageId" binding:"required"`
	Emoji   string `json:"emoji" binding:"required,emoji"`
}

// AddCommentRequest represents a comment submission
type AddCommentRequest struct {
	ImageID string `json:"imageId" binding:"required"`
	Text    string `json:"text" binding:"required"`
}

// ReactionResponse represents one stored reaction
type ReactionResponse struct {
	ID        string    `json:"id"`
	ImageID   string    `json:"imageId"`
	Emoji     string    `json:"emoji"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	UserColor string    `json:"userColor"`
	Timestamp time.Time `json:"timestamp"`
}

// CommentResponse represents one stored comment
type CommentResponse struct {
	ID        string    `json:"id"`
	ImageID   string    `json:"imageId"`
	Text      string    `json:"text"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	UserColor string    `json:"userColor"`
	Timestamp time.Time `json:"timestamp"`
}

// EmojiGroupResponse is one reaction bucket in an image summary
type EmojiGroupResponse struct {
	Emoji     string             `json:"emoji"`
	Count     int                `json:"count"`
	Reactions []ReactionResponse `json:"reactions"`
}

// ToggleReactionResponse reports what a toggle did
type ToggleReactionResponse struct {
	Action   string            `json:"action" example:"added"`
	Reaction *ReactionResponse `json:"reaction,omitempty"`
}

// ImageInteractionsResponse bundles everything shown on an image detail view
type ImageInteractionsResponse struct {
	ImageID        string               `json:"imageId"`
	Reactions      []EmojiGroupResponse `json:"reactions"`
	TopEmojis      []EmojiGroupResponse `json:"topEmojis"`
	Comments       []CommentResponse    `json:"comments"`
	UserReaction   *ReactionResponse    `json:"userReaction,omitempty"`
	TotalReactions int                  `json:"totalReactions"`
	TotalComments  int                  `json:"totalComments"`
}

// ToReactionResponse maps a reaction model to its API shape
func ToReactionResponse(r *models.Reaction) ReactionResponse {
	return ReactionResponse{
		ID:        r.ID.String(),
		ImageID:   r.ImageID,
		Emoji:     r.Emoji,
		UserID:    r.UserID.String(),
		Username:  r.Username,
		UserColor: r.UserColor,
		Timestamp: r.Timestamp,
	}
}

// ToReactionResponses maps a reaction slice to its API shape
func ToReactionResponses(reactions []models.Reaction) []ReactionResponse {
	responses := make([]ReactionResponse, 0, len(reactions))
	for i := range reactions {
		responses = append(responses, ToReactionResponse(&reactions[i]))
	}
	return responses
}

// ToCommentResponse maps a comment model to its API shape
func ToCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID.String(),
		ImageID:   c.ImageID,
		Text:      c.Text,
		UserID:    c.UserID.String(),
		Username:  c.Username,
		UserColor: c.UserColor,
		Timestamp: c.Timestamp,
	}
}

// ToCommentResponses maps a comment slice to its API shape
func ToCommentResponses(comments []models.Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, ToCommentResponse(&comments[i]))
	}
	return responses
}
