package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lumina-app/lumina/internal/app/models/dto"
	"github.com/lumina-app/lumina/internal/middleware"
)

// currentUserID pulls the authenticated caller's id set by the JWT
// middleware. A missing id aborts with 401.
func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	value, ok := ctx.Get(middleware.ContextUserID)
	if !ok {
		unauthorized(ctx)
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		unauthorized(ctx)
		return uuid.Nil, false
	}
	return id, true
}

func unauthorized(ctx *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// pathUUID parses a uuid path parameter, answering 400 on garbage
func pathUUID(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid identifier").WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return id, true
}
