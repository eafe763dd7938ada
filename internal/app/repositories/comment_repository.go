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

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = `id, image_id, text, user_id, username, user_color, created_at`

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(
		&c.ID,
		&c.ImageID,
		&c.Text,
		&c.UserID,
		&c.Username,
		&c.UserColor,
		&c.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error scanning comment row: %w", err)
	}
	return &c, nil
}

func (r *CommentRepository) list(ctx context.Context, query string, args ...any) ([]models.Comment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}

// GetByID retrieves one comment
func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	return scanComment(r.db.QueryRow(ctx, query, id))
}

// ListByImage returns an image's comments oldest first
func (r *CommentRepository) ListByImage(ctx context.Context, imageID string) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE image_id = $1 ORDER BY created_at`
	return r.list(ctx, query, imageID)
}

// ListAll returns the full unfiltered comment set
func (r *CommentRepository) ListAll(ctx context.Context) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments ORDER BY created_at`
	return r.list(ctx, query)
}

// Insert creates a comment record
func (r *CommentRepository) Insert(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, image_id, text, user_id, username, user_color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.ImageID,
		comment.Text,
		comment.UserID,
		comment.Username,
		comment.UserColor,
		comment.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("error creating comment: %w", err)
	}
	return nil
}

// Delete removes a comment by id
func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

// DeleteByImage removes every comment on one image, returning the count
func (r *CommentRepository) DeleteByImage(ctx context.Context, imageID string) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM comments WHERE image_id = $1`, imageID)
	if err != nil {
		return 0, fmt.Errorf("error deleting image comments: %w", err)
	}
	return result.RowsAffected(), nil
}

// DeleteBatchTx removes the given comments within the supplied transaction
func (r *CommentRepository) DeleteBatchTx(ctx context.Context, q Querier, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := q.Exec(ctx, `DELETE FROM comments WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("error batch-deleting comments: %w", err)
	}
	return result.RowsAffected(), nil
}
