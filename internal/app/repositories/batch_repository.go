package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lumina-app/lumina/internal/db"
)

// CascadeCounts reports how many records of each kind a cascade removed
type CascadeCounts struct {
	Reactions  int64 `json:"reactions"`
	Comments   int64 `json:"comments"`
	Activities int64 `json:"activities"`
}

// BatchRepository runs multi-table deletes inside one transaction,
// composing the per-collection repositories' transactional helpers.
type BatchRepository struct {
	database   *db.PostgresDB
	users      *UserRepository
	reactions  *ReactionRepository
	comments   *CommentRepository
	activities *ActivityRepository
	tokens     *TokenRepository
	codes      *LoginCodeRepository
}

// NewBatchRepository creates a new BatchRepository
func NewBatchRepository(
	database *db.PostgresDB,
	users *UserRepository,
	reactions *ReactionRepository,
	comments *CommentRepository,
	activities *ActivityRepository,
	tokens *TokenRepository,
	codes *LoginCodeRepository,
) *BatchRepository {
	return &BatchRepository{
		database:   database,
		users:      users,
		reactions:  reactions,
		comments:   comments,
		activities: activities,
		tokens:     tokens,
		codes:      codes,
	}
}

// DeleteUserCascade removes the user's profile together with the given
// interaction records, their refresh tokens and pending login code. All
// statements commit together or not at all.
func (r *BatchRepository) DeleteUserCascade(ctx context.Context, userID uuid.UUID, email string, reactionIDs, commentIDs, activityIDs []uuid.UUID) (CascadeCounts, error) {
	var counts CascadeCounts

	err := r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		if counts.Reactions, err = r.reactions.DeleteBatchTx(ctx, tx, reactionIDs); err != nil {
			return err
		}
		if counts.Comments, err = r.comments.DeleteBatchTx(ctx, tx, commentIDs); err != nil {
			return err
		}
		if counts.Activities, err = r.activities.DeleteBatchTx(ctx, tx, activityIDs); err != nil {
			return err
		}
		if err = r.tokens.DeleteUserTokensTx(ctx, tx, userID); err != nil {
			return err
		}
		if err = r.codes.DeleteTx(ctx, tx, email); err != nil {
			return err
		}
		return r.users.DeleteTx(ctx, tx, userID)
	})
	if err != nil {
		return CascadeCounts{}, err
	}
	return counts, nil
}

// DeleteActivities removes the given activities atomically, returning
// the count. Used by the retention pruner so a partial prune never lands.
func (r *BatchRepository) DeleteActivities(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var deleted int64
	err := r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		deleted, err = r.activities.DeleteBatchTx(ctx, tx, ids)
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
