package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lumina-app/lumina/internal/app/models"
	"github.com/lumina-app/lumina/internal/pkg/apperrors"
	"github.com/lumina-app/lumina/internal/pkg/validation"
)

// UserService handles profile reads and owner-mutable edits
type UserService struct {
	users  UserStore
	logger zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(users UserStore, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// GetProfile retrieves a profile by id
func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateUsername changes the caller's display name
func (s *UserService) UpdateUsername(ctx context.Context, id uuid.UUID, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if !validation.ValidUsername(username) {
		return nil, apperrors.ErrValidationFailed
	}

	user, err := s.users.UpdateUsername(ctx, id, username)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", id.String()).Str("username", username).Msg("Username updated")
	return user, nil
}
