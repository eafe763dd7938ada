package dto

import (
	"time"

	"github.com/lumina-app/lumina/internal/app/models"
)

// ActivityResponse represents one feed entry
type ActivityResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	ImageID     string    `json:"imageId"`
	UserID      string    `json:"userId"`
	Username    string    `json:"username"`
	UserColor   string    `json:"userColor"`
	Emoji       string    `json:"emoji,omitempty"`
	CommentText string    `json:"commentText,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// FeedResponse represents the activity feed, newest first
type FeedResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Total      int                `json:"total"`
}

// ToActivityResponse maps an activity model to its API shape
func ToActivityResponse(a *models.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID.String(),
		Type:        string(a.Type),
		ImageID:     a.ImageID,
		UserID:      a.UserID.String(),
		Username:    a.Username,
		UserColor:   a.UserColor,
		Emoji:       a.Emoji,
		CommentText: a.CommentText,
		Timestamp:   a.Timestamp,
	}
}

// ToFeedResponse maps an activity slice to the feed API shape
func ToFeedResponse(activities []models.Activity) FeedResponse {
	responses := make([]ActivityResponse, 0, len(activities))
	for i := range activities {
		responses = append(responses, ToActivityResponse(&activities[i]))
	}
	return FeedResponse{Activities: responses, Total: len(responses)}
}
