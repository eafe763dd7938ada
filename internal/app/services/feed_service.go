package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lumina-app/lumina/internal/app/models"
	"github.com/lumina-app/lumina/internal/app/repositories"
)

// FeedService serves the activity feed read model
type FeedService struct {
	activities ActivityStore
	logger     zerolog.Logger
}

// NewFeedService creates a new FeedService
func NewFeedService(activities ActivityStore, logger zerolog.Logger) *FeedService {
	return &FeedService{activities: activities, logger: logger}
}

// GetFeed returns activities newest first, optionally narrowed to one
// image or one activity type
func (s *FeedService) GetFeed(ctx context.Context, filter repositories.ActivityFilter) ([]models.Activity, error) {
	return s.activities.List(ctx, filter)
}
