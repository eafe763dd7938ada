package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/lumina-app/lumina/internal/app/models"
	"github.com/lumina-app/lumina/internal/app/models/dto"
)

// RegisterValidators installs the custom binding rules into gin's
// validator engine. Call once at startup, before any request binds.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("emoji", func(fl validator.FieldLevel) bool {
		return models.IsAllowedEmoji(fl.Field().String())
	})
}

// HandleBindingError maps a ShouldBindJSON failure to the API error shape,
// with a per-field message when the validator produced one.
func HandleBindingError(c *gin.Context, err error) {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		first := fieldErrors[0]
		code := dto.ErrorCodeValidationFailed
		if first.Tag() == "emoji" {
			code = dto.ErrorCodeEmojiNotAllowed
		}
		errorDetail := dto.NewErrorDetail(code, formatFieldError(first)).WithField(first.Field())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body")
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

// formatFieldError creates a human-readable validation error message
func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return e.Field() + " must be a valid email address"
	case "len":
		return e.Field() + " must be exactly " + e.Param() + " characters"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "numeric":
		return e.Field() + " must contain digits only"
	case "emoji":
		return e.Field() + " is not an allowed reaction emoji"
	default:
		return e.Field() + " failed " + e.Tag() + " validation"
	}
}
