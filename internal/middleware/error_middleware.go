package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumina-app/lumina/internal/app/models/dto"
	"github.com/lumina-app/lumina/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto the standard error envelope
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrReactionNotFound),
		errors.Is(err, apperrors.ErrCommentNotFound),
		errors.Is(err, apperrors.ErrActivityNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found", err)

	case errors.Is(err, apperrors.ErrAccountBanned):
		respond(c, http.StatusForbidden, dto.ErrorCodeAccountBanned, "Account is banned", err)

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied", err)

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials", err)

	case errors.Is(err, apperrors.ErrInvalidLoginCode):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidLoginCode, "Invalid or expired sign-in code", err)

	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired", err)

	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrTokenRevoked):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token", err)

	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found", err)

	case errors.Is(err, apperrors.ErrInvalidEmail):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidEmail, "Invalid email address", err)

	case errors.Is(err, apperrors.ErrEmojiNotAllowed):
		respond(c, http.StatusBadRequest, dto.ErrorCodeEmojiNotAllowed, "Emoji is not in the allowed set", err)

	case errors.Is(err, apperrors.ErrEmptyComment):
		respond(c, http.StatusBadRequest, dto.ErrorCodeCommentInvalid, "Comment text is empty", err)

	case errors.Is(err, apperrors.ErrCommentTooLong):
		respond(c, http.StatusBadRequest, dto.ErrorCodeCommentInvalid, "Comment text exceeds the maximum length", err)

	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed", err)

	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists", err)

	case errors.Is(err, apperrors.ErrCatalogUnavailable):
		respond(c, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "Image catalog unavailable", err)

	default:
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "An internal error occurred", nil)
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string, err error) {
	detail := dto.NewErrorDetail(code, message)

	// Custom errors carry a caller-facing message
	var custom *apperrors.CustomError
	if err != nil && errors.As(err, &custom) && custom.Message != "" {
		detail = detail.WithDetails(custom.Message)
	}

	c.JSON(status, dto.NewErrorResponse(detail))
}
