package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lumina-app/lumina/internal/pkg/apperrors"
)

func TestGetProfileMissingUser(t *testing.T) {
	service := NewUserService(newFakeUserStore(), zerolog.Nop())

	if _, err := service.GetProfile(context.Background(), uuid.New()); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateUsernameValidatesBounds(t *testing.T) {
	user := testUser()
	service := NewUserService(newFakeUserStore(user), zerolog.Nop())
	ctx := context.Background()

	if _, err := service.UpdateUsername(ctx, user.ID, " a "); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v, want ErrValidationFailed for a one-rune name", err)
	}

	updated, err := service.UpdateUsername(ctx, user.ID, "  grace  ")
	if err != nil {
		t.Fatalf("UpdateUsername: %v", err)
	}
	if updated.Username != "grace" {
		t.Errorf("username = %q, want trimmed", updated.Username)
	}
}
