package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumina-app/lumina/internal/app/models"
	"github.com/lumina-app/lumina/internal/pkg/apperrors"
)

// UserRepository handles database operations for user profiles
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, username, user_color, is_admin, banned, banned_at, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.UserColor,
		&u.IsAdmin,
		&u.Banned,
		&u.BannedAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user row: %w", err)
	}
	return &u, nil
}

// FindByID retrieves a profile by its ID
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// FindByEmail retrieves a profile by email address
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// Upsert creates the profile on first sign-in or refreshes admin status on
// later ones. Username and color are only set on insert so owner edits stick.
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, username, user_color, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (email) DO UPDATE
		SET is_admin = EXCLUDED.is_admin, updated_at = now()
		RETURNING ` + userColumns

	stored, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.UserColor,
		user.IsAdmin,
	))
	if err != nil {
		return fmt.Errorf("error upserting user: %w", err)
	}
	*user = *stored
	return nil
}

// UpdateUsername changes the owner-mutable display name
func (r *UserRepository) UpdateUsername(ctx context.Context, id uuid.UUID, username string) (*models.User, error) {
	query := `
		UPDATE users SET username = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	return scanUser(r.db.QueryRow(ctx, query, id, username))
}

// SetBanned sets or clears the ban flag together with its timestamp
func (r *UserRepository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) (*models.User, error) {
	var bannedAt *time.Time
	if banned {
		now := time.Now()
		bannedAt = &now
	}

	query := `
		UPDATE users SET banned = $2, banned_at = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	return scanUser(r.db.QueryRow(ctx, query, id, banned, bannedAt))
}

// ListAll returns every profile for the moderation panel
func (r *UserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// DeleteTx removes a profile within the supplied transaction
func (r *UserRepository) DeleteTx(ctx context.Context, q Querier, id uuid.UUID) error {
	result, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
