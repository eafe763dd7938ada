package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumina-app/lumina/internal/app/models"
	"github.com/lumina-app/lumina/internal/pkg/apperrors"
)

// ReactionRepository handles database operations for emoji reactions
type ReactionRepository struct {
	db *pgxpool.Pool
}

// NewReactionRepository creates a new ReactionRepository
func NewReactionRepository(db *pgxpool.Pool) *ReactionRepository {
	return &ReactionRepository{db: db}
}

const reactionColumns = `id, image_id, emoji, user_id, username, user_color, created_at`

func scanReaction(row pgx.Row) (*models.Reaction, error) {
	var r models.Reaction
	err := row.Scan(
		&r.ID,
		&r.ImageID,
		&r.Emoji,
		&r.UserID,
		&r.Username,
		&r.UserColor,
		&r.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReactionNotFound
		}
		return nil, fmt.Errorf("error scanning reaction row: %w", err)
	}
	return &r, nil
}

func (r *ReactionRepository) list(ctx context.Context, query string, args ...any) ([]models.Reaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing reactions: %w", err)
	}
	defer rows.Close()

	var reactions []models.Reaction
	for rows.Next() {
		reaction, err := scanReaction(rows)
		if err != nil {
			return nil, err
		}
		reactions = append(reactions, *reaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reaction rows: %w", err)
	}
	return reactions, nil
}

// GetByID retrieves one reaction
func (r *ReactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Reaction, error) {
	query := `SELECT ` + reactionColumns + ` FROM reactions WHERE id = $1`
	return scanReaction(r.db.QueryRow(ctx, query, id))
}

// ListByImage returns every reaction on one image in store order
func (r *ReactionRepository) ListByImage(ctx context.Context, imageID string) ([]models.Reaction, error) {
	query := `SELECT ` + reactionColumns + ` FROM reactions WHERE image_id = $1 ORDER BY created_at`
	return r.list(ctx, query, imageID)
}

// ListAll returns the full unfiltered reaction set
func (r *ReactionRepository) ListAll(ctx context.Context) ([]models.Reaction, error) {
	query := `SELECT ` + reactionColumns + ` FROM reactions ORDER BY created_at`
	return r.list(ctx, query)
}

// FindByUserAndImage returns the user's reaction on an image, or
// apperrors.ErrReactionNotFound when they have none
func (r *ReactionRepository) FindByUserAndImage(ctx context.Context, userID uuid.UUID, imageID string) (*models.Reaction, error) {
	query := `SELECT ` + reactionColumns + ` FROM reactions WHERE user_id = $1 AND image_id = $2`
	return scanReaction(r.db.QueryRow(ctx, query, userID, imageID))
}

// Upsert inserts the reaction or, when the (user, image) pair already has
// one, replaces its emoji in the same statement. The unique index makes
// "at most one reaction per user per image" hold with no transient window.
func (r *ReactionRepository) Upsert(ctx context.Context, reaction *models.Reaction) error {
	query := `
		INSERT INTO reactions (id, image_id, emoji, user_id, username, user_color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, image_id) DO UPDATE
		SET emoji = EXCLUDED.emoji, username = EXCLUDED.username,
		    user_color = EXCLUDED.user_color, created_at = EXCLUDED.created_at
		RETURNING ` + reactionColumns

	stored, err := scanReaction(r.db.QueryRow(ctx, query,
		reaction.ID,
		reaction.ImageID,
		reaction.Emoji,
		reaction.UserID,
		reaction.Username,
		reaction.UserColor,
		reaction.Timestamp,
	))
	if err != nil {
		return fmt.Errorf("error upserting reaction: %w", err)
	}
	*reaction = *stored
	return nil
}

// Delete removes a reaction by id
func (r *ReactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM reactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting reaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrReactionNotFound
	}
	return nil
}

// DeleteByImage removes every reaction on one image, returning the count
func (r *ReactionRepository) DeleteByImage(ctx context.Context, imageID string) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM reactions WHERE image_id = $1`, imageID)
	if err != nil {
		return 0, fmt.Errorf("error deleting image reactions: %w", err)
	}
	return result.RowsAffected(), nil
}

// DeleteBatchTx removes the given reactions within the supplied transaction
func (r *ReactionRepository) DeleteBatchTx(ctx context.Context, q Querier, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := q.Exec(ctx, `DELETE FROM reactions WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("error batch-deleting reactions: %w", err)
	}
	return result.RowsAffected(), nil
}
