package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lumina-app/lumina/internal/app/models"
	"github.com/lumina-app/lumina/internal/app/models/dto"
	"github.com/lumina-app/lumina/internal/app/repositories"
	"github.com/lumina-app/lumina/internal/app/services"
	"github.com/lumina-app/lumina/internal/middleware"
)

// FeedController serves the activity feed
type FeedController struct {
	feedService *services.FeedService
	logger      zerolog.Logger
}

// NewFeedController creates a new FeedController
func NewFeedController(feedService *services.FeedService, logger zerolog.Logger) *FeedController {
	return &FeedController{
		feedService: feedService,
		logger:      logger,
	}
}

// GetFeed returns activities newest first. Supports optional imageId,
// type and limit query parameters.
func (c *FeedController) GetFeed(ctx *gin.Context) {
	filter := repositories.ActivityFilter{
		ImageID: ctx.Query("imageId"),
		Type:    models.ActivityType(ctx.Query("type")),
	}
	if raw := ctx.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid limit").WithField("limit")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.Limit = limit
	}

	activities, err := c.feedService.GetFeed(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFeedResponse(activities))
}
