package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lumina-app/lumina/internal/pkg/apperrors"
	"github.com/lumina-app/lumina/internal/pkg/auth"
)

type authFixture struct {
	service *AuthService
	users   *fakeUserStore
	codes   *fakeLoginCodeStore
	tokens  *fakeTokenStore
	email   *fakeEmailService
}

func newAuthFixture(adminEmails ...string) *authFixture {
	users := newFakeUserStore()
	codes := newFakeLoginCodeStore()
	tokens := newFakeTokenStore()
	emailSvc := &fakeEmailService{}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "lumina.test",
	})

	return &authFixture{
		service: NewAuthService(
			users, codes, tokens, jwtService, emailSvc,
			10*time.Minute, adminEmails, zerolog.Nop(),
		),
		users:  users,
		codes:  codes,
		tokens: tokens,
		email:  emailSvc,
	}
}

func TestRequestCodeRejectsInvalidEmail(t *testing.T) {
	f := newAuthFixture()
	err := f.service.RequestCode(context.Background(), "not-an-email")
	if !errors.Is(err, apperrors.ErrInvalidEmail) {
		t.Fatalf("err = %v, want ErrInvalidEmail", err)
	}
	if f.email.sent != 0 {
		t.Error("no email should be sent for an invalid address")
	}
}

func TestRequestCodeEmailsSixDigits(t *testing.T) {
	f := newAuthFixture()
	if err := f.service.RequestCode(context.Background(), "Ada@Example.com"); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}
	if f.email.lastTo != "ada@example.com" {
		t.Errorf("recipient = %q, want normalized address", f.email.lastTo)
	}
	if len(f.email.lastCode) != auth.LoginCodeLength {
		t.Errorf("code length = %d, want %d", len(f.email.lastCode), auth.LoginCodeLength)
	}
	for _, r := range f.email.lastCode {
		if r < '0' || r > '9' {
			t.Fatalf("code %q contains a non-digit", f.email.lastCode)
		}
	}
}

func TestVerifyCodeCreatesProfileAndIssuesTokens(t *testing.T) {
	f := newAuthFixture("ada@example.com")
	ctx := context.Background()

	if err := f.service.RequestCode(ctx, "ada@example.com"); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}

	user, pair, err := f.service.VerifyCode(ctx, "ada@example.com", f.email.lastCode)
	if err != nil {
		t.Fatalf("VerifyCode: %v", err)
	}
	if user.Username != "ada" {
		t.Errorf("username = %q, want derived from email", user.Username)
	}
	if !user.IsAdmin {
		t.Error("allow-listed address should become admin")
	}
	if user.UserColor == "" {
		t.Error("profile should get a palette color")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("token pair should be issued")
	}
	if _, err := f.tokens.GetRefreshToken(ctx, pair.RefreshToken); err != nil {
		t.Error("refresh token should be stored")
	}

	// Codes are single use
	if _, _, err := f.service.VerifyCode(ctx, "ada@example.com", f.email.lastCode); !errors.Is(err, apperrors.ErrInvalidLoginCode) {
		t.Fatalf("second verify err = %v, want ErrInvalidLoginCode", err)
	}
}

func TestVerifyCodeRejectsWrongCode(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	if err := f.service.RequestCode(ctx, "ada@example.com"); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}

	wrong := "000000"
	if wrong == f.email.lastCode {
		wrong = "000001"
	}
	_, _, err := f.service.VerifyCode(ctx, "ada@example.com", wrong)
	if !errors.Is(err, apperrors.ErrInvalidLoginCode) {
		t.Fatalf("err = %v, want ErrInvalidLoginCode", err)
	}
}

func TestVerifyCodeRejectsExpiredCode(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	if err := f.service.RequestCode(ctx, "ada@example.com"); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}

	// Backdate the pending code past its expiry
	f.codes.mu.Lock()
	lc := f.codes.codes["ada@example.com"]
	lc.ExpiresAt = time.Now().Add(-time.Minute)
	f.codes.codes["ada@example.com"] = lc
	f.codes.mu.Unlock()

	_, _, err := f.service.VerifyCode(ctx, "ada@example.com", f.email.lastCode)
	if !errors.Is(err, apperrors.ErrInvalidLoginCode) {
		t.Fatalf("err = %v, want ErrInvalidLoginCode", err)
	}
}

func TestVerifyCodeKeepsProfileOnSecondSignIn(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	if err := f.service.RequestCode(ctx, "ada@example.com"); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}
	first, _, err := f.service.VerifyCode(ctx, "ada@example.com", f.email.lastCode)
	if err != nil {
		t.Fatalf("first VerifyCode: %v", err)
	}

	// The owner renames themselves between sign-ins
	if _, err := f.users.UpdateUsername(ctx, first.ID, "countess"); err != nil {
		t.Fatalf("UpdateUsername: %v", err)
	}

	if err := f.service.RequestCode(ctx, "ada@example.com"); err != nil {
		t.Fatalf("second RequestCode: %v", err)
	}
	second, _, err := f.service.VerifyCode(ctx, "ada@example.com", f.email.lastCode)
	if err != nil {
		t.Fatalf("second VerifyCode: %v", err)
	}
	if second.ID != first.ID {
		t.Error("second sign-in should reuse the existing profile")
	}
	if second.Username != "countess" {
		t.Errorf("username = %q, owner edit should stick across sign-ins", second.Username)
	}
}

func TestRefreshTokenRotates(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	if err := f.service.RequestCode(ctx, "ada@example.com"); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}
	user, pair, err := f.service.VerifyCode(ctx, "ada@example.com", f.email.lastCode)
	if err != nil {
		t.Fatalf("VerifyCode: %v", err)
	}

	refreshed, newPair, err := f.service.RefreshToken(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if refreshed.ID != user.ID {
		t.Error("refresh should resolve to the same user")
	}
	if newPair.RefreshToken == pair.RefreshToken {
		t.Error("refresh token should rotate")
	}

	// The old token is revoked by the rotation
	if _, _, err := f.service.RefreshToken(ctx, pair.RefreshToken); !errors.Is(err, apperrors.ErrTokenNotFound) {
		t.Fatalf("reused token err = %v, want ErrTokenNotFound", err)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	if err := f.service.RequestCode(ctx, "ada@example.com"); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}
	_, pair, err := f.service.VerifyCode(ctx, "ada@example.com", f.email.lastCode)
	if err != nil {
		t.Fatalf("VerifyCode: %v", err)
	}

	if err := f.service.Logout(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, _, err := f.service.RefreshToken(ctx, pair.RefreshToken); !errors.Is(err, apperrors.ErrTokenNotFound) {
		t.Fatalf("err = %v, want ErrTokenNotFound after logout", err)
	}
}
