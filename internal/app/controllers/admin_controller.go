package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lumina-app/lumina/internal/app/models/dto"
	"github.com/lumina-app/lumina/internal/app/services"
	"github.com/lumina-app/lumina/internal/middleware"
)

// AdminController handles the moderation endpoints. Every route behind it
// requires the admin flag.
type AdminController struct {
	moderationService *services.ModerationService
	logger            zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(moderationService *services.ModerationService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		moderationService: moderationService,
		logger:            logger,
	}
}

// ListUsers returns every profile for the moderation panel
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.moderationService.ListUsers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// BanUser sets a user's ban flag
func (c *AdminController) BanUser(ctx *gin.Context) {
	c.setBanned(ctx, true)
}

// UnbanUser clears a user's ban flag
func (c *AdminController) UnbanUser(ctx *gin.Context) {
	c.setBanned(ctx, false)
}

func (c *AdminController) setBanned(ctx *gin.Context, banned bool) {
	id, ok := pathUUID(ctx, "userId")
	if !ok {
		return
	}

	user, err := c.moderationService.SetBanned(ctx.Request.Context(), id, banned)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteUser removes a profile and everything attributed to it
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	id, ok := pathUUID(ctx, "userId")
	if !ok {
		return
	}

	counts, err := c.moderationService.DeleteUser(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteUserResponse{
		UserID:     id.String(),
		Reactions:  counts.Reactions,
		Comments:   counts.Comments,
		Activities: counts.Activities,
	})
}

// DeleteReaction removes any reaction regardless of owner
func (c *AdminController) DeleteReaction(ctx *gin.Context) {
	id, ok := pathUUID(ctx, "reactionId")
	if !ok {
		return
	}

	if err := c.moderationService.DeleteReaction(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Reaction deleted"})
}

// DeleteComment removes any comment regardless of owner
func (c *AdminController) DeleteComment(ctx *gin.Context) {
	id, ok := pathUUID(ctx, "commentId")
	if !ok {
		return
	}

	if err := c.moderationService.DeleteComment(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Comment deleted"})
}

// DeleteActivity removes one feed entry
func (c *AdminController) DeleteActivity(ctx *gin.Context) {
	id, ok := pathUUID(ctx, "activityId")
	if !ok {
		return
	}

	if err := c.moderationService.DeleteActivity(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Activity deleted"})
}

// PurgeImageReactions removes every reaction on one image
func (c *AdminController) PurgeImageReactions(ctx *gin.Context) {
	imageID, ok := requireImageID(ctx)
	if !ok {
		return
	}

	deleted, err := c.moderationService.PurgeImageReactions(ctx.Request.Context(), imageID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.BulkDeleteResponse{Deleted: deleted})
}

// PurgeImageComments removes every comment on one image
func (c *AdminController) PurgeImageComments(ctx *gin.Context) {
	imageID, ok := requireImageID(ctx)
	if !ok {
		return
	}

	deleted, err := c.moderationService.PurgeImageComments(ctx.Request.Context(), imageID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.BulkDeleteResponse{Deleted: deleted})
}

// PurgeImage removes every reaction and comment on one image
func (c *AdminController) PurgeImage(ctx *gin.Context) {
	imageID, ok := requireImageID(ctx)
	if !ok {
		return
	}

	counts, err := c.moderationService.PurgeImage(ctx.Request.Context(), imageID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BulkDeleteResponse{Deleted: counts.Reactions + counts.Comments})
}

func requireImageID(ctx *gin.Context) (string, bool) {
	imageID := ctx.Param("imageId")
	if imageID == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Image id is required").WithField("imageId")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return "", false
	}
	return imageID, true
}

// ClearActivities wipes the whole activity log
func (c *AdminController) ClearActivities(ctx *gin.Context) {
	deleted, err := c.moderationService.ClearActivities(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.BulkDeleteResponse{Deleted: deleted})
}
