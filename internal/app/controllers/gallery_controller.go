package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lumina-app/lumina/internal/app/models/dto"
	"github.com/lumina-app/lumina/internal/app/services"
	"github.com/lumina-app/lumina/internal/middleware"
)

// GalleryController proxies the external image catalog
type GalleryController struct {
	galleryService *services.GalleryService
	logger         zerolog.Logger
}

// NewGalleryController creates a new GalleryController
func NewGalleryController(galleryService *services.GalleryService, logger zerolog.Logger) *GalleryController {
	return &GalleryController{
		galleryService: galleryService,
		logger:         logger,
	}
}

// GetPage returns one page of catalog images
func (c *GalleryController) GetPage(ctx *gin.Context) {
	page := 1
	if raw := ctx.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid page").WithField("page")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		page = parsed
	}

	images, err := c.galleryService.GetPage(ctx.Request.Context(), page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGalleryPageResponse(page, images))
}
