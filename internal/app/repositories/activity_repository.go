package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumina-app/lumina/internal/app/models"
	"github.com/lumina-app/lumina/internal/pkg/apperrors"
)

// ActivityRepository handles database operations for the activity log
type ActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// ActivityFilter narrows a feed query. Zero values mean "no filter".
type ActivityFilter struct {
	ImageID string
	Type    models.ActivityType
	Limit   int
}

func scanActivity(row pgx.Row) (*models.Activity, error) {
	var a models.Activity
	var emoji, commentText *string
	err := row.Scan(
		&a.ID,
		&a.Type,
		&a.ImageID,
		&a.UserID,
		&a.Username,
		&a.UserColor,
		&emoji,
		&commentText,
		&a.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrActivityNotFound
		}
		return nil, fmt.Errorf("error scanning activity row: %w", err)
	}
	if emoji != nil {
		a.Emoji = *emoji
	}
	if commentText != nil {
		a.CommentText = *commentText
	}
	return &a, nil
}

// Insert appends one activity record
func (r *ActivityRepository) Insert(ctx context.Context, activity *models.Activity) error {
	query := `
		INSERT INTO activities (id, type, image_id, user_id, username, user_color, emoji, comment_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9)`

	_, err := r.db.Exec(ctx, query,
		activity.ID,
		activity.Type,
		activity.ImageID,
		activity.UserID,
		activity.Username,
		activity.UserColor,
		activity.Emoji,
		activity.CommentText,
		activity.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("error appending activity: %w", err)
	}
	return nil
}

// List returns activities newest first, optionally filtered
func (r *ActivityRepository) List(ctx context.Context, filter ActivityFilter) ([]models.Activity, error) {
	builder := squirrel.Select(
		"id", "type", "image_id", "user_id", "username", "user_color", "emoji", "comment_text", "created_at",
	).
		From("activities").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.ImageID != "" {
		builder = builder.Where("image_id = ?", filter.ImageID)
	}
	if filter.Type != "" {
		builder = builder.Where("type = ?", string(filter.Type))
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return activities, nil
}

// ListAll returns the full unfiltered activity log
func (r *ActivityRepository) ListAll(ctx context.Context) ([]models.Activity, error) {
	return r.List(ctx, ActivityFilter{})
}

// Delete removes one activity by id
func (r *ActivityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting activity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrActivityNotFound
	}
	return nil
}

// DeleteAll clears the whole activity log, returning the count
func (r *ActivityRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM activities`)
	if err != nil {
		return 0, fmt.Errorf("error clearing activities: %w", err)
	}
	return result.RowsAffected(), nil
}

// DeleteBatchTx removes the given activities within the supplied transaction
func (r *ActivityRepository) DeleteBatchTx(ctx context.Context, q Querier, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := q.Exec(ctx, `DELETE FROM activities WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("error batch-deleting activities: %w", err)
	}
	return result.RowsAffected(), nil
}
