package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lumina-app/lumina/internal/app/models/dto"
	"github.com/lumina-app/lumina/internal/app/services"
	"github.com/lumina-app/lumina/internal/middleware"
)

// InteractionController handles reaction and comment endpoints
type InteractionController struct {
	interactionService *services.InteractionService
	logger             zerolog.Logger
}

// NewInteractionController creates a new InteractionController
func NewInteractionController(interactionService *services.InteractionService, logger zerolog.Logger) *InteractionController {
	return &InteractionController{
		interactionService: interactionService,
		logger:             logger,
	}
}

// ToggleReaction applies one tap on an emoji button
func (c *InteractionController) ToggleReaction(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.ToggleReactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	result, err := c.interactionService.ToggleReaction(ctx.Request.Context(), userID, req.ImageID, req.Emoji)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.ToggleReactionResponse{Action: string(result.Action)}
	if result.Reaction != nil {
		mapped := dto.ToReactionResponse(result.Reaction)
		resp.Reaction = &mapped
	}
	ctx.JSON(http.StatusOK, resp)
}

// AddComment stores a comment on an image
func (c *InteractionController) AddComment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	result, err := c.interactionService.AddComment(ctx.Request.Context(), userID, req.ImageID, req.Text)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCommentResponse(result.Comment))
}

// DeleteComment removes the caller's own comment
func (c *InteractionController) DeleteComment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	commentID, ok := pathUUID(ctx, "commentId")
	if !ok {
		return
	}

	if _, err := c.interactionService.DeleteComment(ctx.Request.Context(), userID, commentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Comment deleted"})
}

// GetImageInteractions returns the image detail read model
func (c *InteractionController) GetImageInteractions(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	imageID := ctx.Param("imageId")
	if imageID == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Image id is required").WithField("imageId")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	view, err := c.interactionService.GetImageInteractions(ctx.Request.Context(), userID, imageID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.ImageInteractionsResponse{
		ImageID:       view.ImageID,
		Reactions:     make([]dto.EmojiGroupResponse, 0, len(view.Grouped)),
		TopEmojis:     make([]dto.EmojiGroupResponse, 0, len(view.TopEmojis)),
		Comments:      dto.ToCommentResponses(view.Comments),
		TotalComments: len(view.Comments),
	}
	for emoji, reactions := range view.Grouped {
		resp.Reactions = append(resp.Reactions, dto.EmojiGroupResponse{
			Emoji:     emoji,
			Count:     len(reactions),
			Reactions: dto.ToReactionResponses(reactions),
		})
		resp.TotalReactions += len(reactions)
	}
	for _, group := range view.TopEmojis {
		resp.TopEmojis = append(resp.TopEmojis, dto.EmojiGroupResponse{
			Emoji:     group.Emoji,
			Count:     len(group.Reactions),
			Reactions: dto.ToReactionResponses(group.Reactions),
		})
	}
	if view.UserReaction != nil {
		mapped := dto.ToReactionResponse(view.UserReaction)
		resp.UserReaction = &mapped
	}

	ctx.JSON(http.StatusOK, resp)
}
