package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lumina-app/lumina/internal/db"
)

// Querier is the subset of pgx operations shared by *pgxpool.Pool and
// pgx.Tx. Cascade paths pass a transaction here so a whole batch applies
// atomically or not at all.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository      *UserRepository
	ReactionRepository  *ReactionRepository
	CommentRepository   *CommentRepository
	ActivityRepository  *ActivityRepository
	LoginCodeRepository *LoginCodeRepository
	TokenRepository     *TokenRepository
	BatchRepository     *BatchRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool *pgxpool.Pool, database *db.PostgresDB) *Repositories {
	repos := &Repositories{
		UserRepository:      NewUserRepository(pool),
		ReactionRepository:  NewReactionRepository(pool),
		CommentRepository:   NewCommentRepository(pool),
		ActivityRepository:  NewActivityRepository(pool),
		LoginCodeRepository: NewLoginCodeRepository(pool),
		TokenRepository:     NewTokenRepository(pool),
	}
	repos.BatchRepository = NewBatchRepository(
		database,
		repos.UserRepository,
		repos.ReactionRepository,
		repos.CommentRepository,
		repos.ActivityRepository,
		repos.TokenRepository,
		repos.LoginCodeRepository,
	)
	return repos
}
