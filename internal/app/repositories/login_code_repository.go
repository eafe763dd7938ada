package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumina-app/lumina/internal/pkg/apperrors"
)

// LoginCode is a pending passwordless sign-in code. Only the bcrypt hash
// of the code is stored.
type LoginCode struct {
	ID        int64
	Email     string
	CodeHash  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// LoginCodeRepository handles database operations for sign-in codes
type LoginCodeRepository struct {
	db *pgxpool.Pool
}

// NewLoginCodeRepository creates a new LoginCodeRepository
func NewLoginCodeRepository(db *pgxpool.Pool) *LoginCodeRepository {
	return &LoginCodeRepository{db: db}
}

// Replace stores a fresh code hash for the email, discarding any earlier
// pending code. One pending code per address at a time.
func (r *LoginCodeRepository) Replace(ctx context.Context, email, codeHash string, expiresAt time.Time) error {
	query := `
		INSERT INTO login_codes (email, code_hash, expires_at, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (email) DO UPDATE
		SET code_hash = EXCLUDED.code_hash, expires_at = EXCLUDED.expires_at, created_at = now()`

	_, err := r.db.Exec(ctx, query, email, codeHash, expiresAt)
	if err != nil {
		return fmt.Errorf("error storing login code: %w", err)
	}
	return nil
}

// FindByEmail retrieves the pending code for an address
func (r *LoginCodeRepository) FindByEmail(ctx context.Context, email string) (*LoginCode, error) {
	query := `SELECT id, email, code_hash, expires_at, created_at FROM login_codes WHERE email = $1`

	var lc LoginCode
	err := r.db.QueryRow(ctx, query, email).Scan(&lc.ID, &lc.Email, &lc.CodeHash, &lc.ExpiresAt, &lc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidLoginCode
		}
		return nil, fmt.Errorf("error finding login code: %w", err)
	}
	return &lc, nil
}

// Delete consumes the pending code for an address
func (r *LoginCodeRepository) Delete(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM login_codes WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("error deleting login code: %w", err)
	}
	return nil
}

// DeleteTx consumes the pending code for an address within the supplied
// transaction
func (r *LoginCodeRepository) DeleteTx(ctx context.Context, q Querier, email string) error {
	_, err := q.Exec(ctx, `DELETE FROM login_codes WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("error deleting login code: %w", err)
	}
	return nil
}

// DeleteExpired drops codes past their expiry, returning the count
func (r *LoginCodeRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM login_codes WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("error purging expired login codes: %w", err)
	}
	return result.RowsAffected(), nil
}
