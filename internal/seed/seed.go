// Package seed applies startup data fixes that migrations cannot express
package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/lumina-app/lumina/internal/app/repositories"
	"github.com/lumina-app/lumina/internal/config"
	"github.com/lumina-app/lumina/internal/pkg/apperrors"
)

// PromoteAdmins grants the admin flag to every configured allow-list
// address that already has a profile. Addresses without a profile become
// admins on their first sign-in instead.
func PromoteAdmins(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if len(cfg.Auth.AdminEmails) == 0 {
		return nil
	}

	userRepo := repositories.NewUserRepository(dbPool)
	var finalErr error

	for _, raw := range cfg.Auth.AdminEmails {
		email := strings.ToLower(strings.TrimSpace(raw))
		if email == "" {
			continue
		}

		user, err := userRepo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				continue
			}
			lgr.Error().Err(err).Str("email", email).Msg("Failed to look up admin candidate")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if user.IsAdmin {
			continue
		}

		user.IsAdmin = true
		if err := userRepo.Upsert(ctx, user); err != nil {
			lgr.Error().Err(err).Str("email", email).Msg("Failed to promote admin")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Str("email", email).Msg("Profile promoted to admin")
	}

	return finalErr
}
