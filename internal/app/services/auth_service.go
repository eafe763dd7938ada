package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lumina-app/lumina/internal/app/models"
	"github.com/lumina-app/lumina/internal/pkg/apperrors"
	"github.com/lumina-app/lumina/internal/pkg/auth"
	"github.com/lumina-app/lumina/internal/pkg/email"
	"github.com/lumina-app/lumina/internal/pkg/helpers"
	"github.com/lumina-app/lumina/internal/pkg/validation"
)

// TokenPair carries a freshly issued access and refresh token
type TokenPair struct {
	AccessToken           string
	RefreshToken          string
	ExpiresIn             int64
	RefreshTokenExpiresIn int64
}

// AuthService implements passwordless email-code sign-in
type AuthService struct {
	users          UserStore
	codes          LoginCodeStore
	tokens         TokenStore
	jwtService     *auth.JWTService
	emailService   email.Service
	codeExpiration time.Duration
	adminEmails    map[string]bool
	logger         zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users UserStore,
	codes LoginCodeStore,
	tokens TokenStore,
	jwtService *auth.JWTService,
	emailService email.Service,
	codeExpiration time.Duration,
	adminEmails []string,
	logger zerolog.Logger,
) *AuthService {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = true
	}
	return &AuthService{
		users:          users,
		codes:          codes,
		tokens:         tokens,
		jwtService:     jwtService,
		emailService:   emailService,
		codeExpiration: codeExpiration,
		adminEmails:    admins,
		logger:         logger,
	}
}

// RequestCode generates a six-digit sign-in code for the address and emails
// it. Any earlier pending code for the same address is replaced.
func (s *AuthService) RequestCode(ctx context.Context, emailAddr string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if !validation.ValidEmail(emailAddr) {
		return apperrors.ErrInvalidEmail
	}

	code, err := auth.GenerateLoginCode()
	if err != nil {
		return fmt.Errorf("failed to generate login code: %w", err)
	}

	codeHash, err := auth.HashLoginCode(code)
	if err != nil {
		return fmt.Errorf("failed to hash login code: %w", err)
	}

	expiresAt := time.Now().Add(s.codeExpiration)
	if err := s.codes.Replace(ctx, emailAddr, codeHash, expiresAt); err != nil {
		return err
	}

	if err := s.emailService.SendLoginCode(emailAddr, code); err != nil {
		return err
	}

	s.logger.Info().Str("email", emailAddr).Msg("Sign-in code issued")
	return nil
}

// VerifyCode exchanges an emailed code for a token pair, creating the
// profile on first sign-in. The code is single use.
func (s *AuthService) VerifyCode(ctx context.Context, emailAddr, code string) (*models.User, *TokenPair, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if !validation.ValidEmail(emailAddr) {
		return nil, nil, apperrors.ErrInvalidEmail
	}
	if !validation.ValidLoginCode(code) {
		return nil, nil, apperrors.ErrInvalidLoginCode
	}

	pending, err := s.codes.FindByEmail(ctx, emailAddr)
	if err != nil {
		return nil, nil, err
	}
	if time.Now().After(pending.ExpiresAt) {
		_ = s.codes.Delete(ctx, emailAddr)
		return nil, nil, apperrors.ErrInvalidLoginCode
	}
	if !auth.CheckLoginCode(pending.CodeHash, code) {
		return nil, nil, apperrors.ErrInvalidLoginCode
	}

	if err := s.codes.Delete(ctx, emailAddr); err != nil {
		s.logger.Warn().Err(err).Str("email", emailAddr).Msg("Failed to consume login code")
	}

	user := &models.User{
		ID:        uuid.New(),
		Email:     emailAddr,
		Username:  helpers.UsernameFromEmail(emailAddr),
		UserColor: helpers.RandomUserColor(),
		IsAdmin:   s.adminEmails[emailAddr],
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Str("email", emailAddr).Str("userID", user.ID.String()).Msg("User signed in")
	return user, pair, nil
}

// RefreshToken rotates a refresh token into a fresh pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*models.User, *TokenPair, error) {
	stored, err := s.tokens.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, nil, err
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.tokens.DeleteRefreshToken(ctx, refreshToken)
		return nil, nil, apperrors.ErrTokenExpired
	}

	user, err := s.users.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, nil, err
	}

	// Rotation: the presented token is revoked before a new pair is issued
	if err := s.tokens.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.DeleteRefreshToken(ctx, refreshToken)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.CreateRefreshToken(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		ExpiresIn:             int64(expiresIn),
		RefreshTokenExpiresIn: int64(refreshExpiresIn),
	}, nil
}
