package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lumina-app/lumina/internal/app/models"
	"github.com/lumina-app/lumina/internal/app/repositories"
	"github.com/lumina-app/lumina/internal/config"
	"github.com/lumina-app/lumina/internal/pkg/auth"
	"github.com/lumina-app/lumina/internal/pkg/email"
	"github.com/lumina-app/lumina/internal/pkg/helpers"
	"github.com/lumina-app/lumina/internal/pkg/unsplash"
	"github.com/lumina-app/lumina/internal/pkg/websocket"
)

// Store interfaces narrow the repositories to what each service needs so
// tests can substitute in-memory fakes.

// UserStore persists user profiles
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
	UpdateUsername(ctx context.Context, id uuid.UUID, username string) (*models.User, error)
	SetBanned(ctx context.Context, id uuid.UUID, banned bool) (*models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
}

// ReactionStore persists emoji reactions
type ReactionStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reaction, error)
	ListByImage(ctx context.Context, imageID string) ([]models.Reaction, error)
	ListAll(ctx context.Context) ([]models.Reaction, error)
	FindByUserAndImage(ctx context.Context, userID uuid.UUID, imageID string) (*models.Reaction, error)
	Upsert(ctx context.Context, reaction *models.Reaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByImage(ctx context.Context, imageID string) (int64, error)
}

// CommentStore persists comments
type CommentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListByImage(ctx context.Context, imageID string) ([]models.Comment, error)
	ListAll(ctx context.Context) ([]models.Comment, error)
	Insert(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByImage(ctx context.Context, imageID string) (int64, error)
}

// ActivityStore persists the activity log
type ActivityStore interface {
	Insert(ctx context.Context, activity *models.Activity) error
	List(ctx context.Context, filter repositories.ActivityFilter) ([]models.Activity, error)
	ListAll(ctx context.Context) ([]models.Activity, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
}

// LoginCodeStore persists pending sign-in codes
type LoginCodeStore interface {
	Replace(ctx context.Context, email, codeHash string, expiresAt time.Time) error
	FindByEmail(ctx context.Context, email string) (*repositories.LoginCode, error)
	Delete(ctx context.Context, email string) error
}

// TokenStore persists refresh tokens
type TokenStore interface {
	CreateRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (*repositories.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
}

// CascadeStore runs the transactional multi-table deletes
type CascadeStore interface {
	DeleteUserCascade(ctx context.Context, userID uuid.UUID, email string, reactionIDs, commentIDs, activityIDs []uuid.UUID) (repositories.CascadeCounts, error)
	DeleteActivities(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// Publisher pushes live events to subscribers
type Publisher interface {
	Publish(event *websocket.Event)
}

// Catalog fetches pages from the external image catalog
type Catalog interface {
	FetchPage(ctx context.Context, page int) ([]unsplash.Image, error)
}

// Services holds all the service instances
type Services struct {
	AuthService        *AuthService
	UserService        *UserService
	InteractionService *InteractionService
	FeedService        *FeedService
	ModerationService  *ModerationService
	GalleryService     *GalleryService
}

// NewServices initializes all services
func NewServices(
	repos *repositories.Repositories,
	hub *websocket.Hub,
	jwtService *auth.JWTService,
	emailService email.Service,
	catalog *unsplash.Client,
	cfg *config.Config,
	logger zerolog.Logger,
) *Services {
	codeExpiration := helpers.ParseDuration(cfg.Auth.CodeExpiration, 10*time.Minute)

	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.LoginCodeRepository,
			repos.TokenRepository,
			jwtService,
			emailService,
			codeExpiration,
			cfg.Auth.AdminEmails,
			logger,
		),
		UserService: NewUserService(repos.UserRepository, logger),
		InteractionService: NewInteractionService(
			repos.UserRepository,
			repos.ReactionRepository,
			repos.CommentRepository,
			repos.ActivityRepository,
			repos.BatchRepository,
			hub,
			cfg.Feed.RetentionLimit,
			logger,
		),
		FeedService: NewFeedService(repos.ActivityRepository, logger),
		ModerationService: NewModerationService(
			repos.UserRepository,
			repos.ReactionRepository,
			repos.CommentRepository,
			repos.ActivityRepository,
			repos.BatchRepository,
			hub,
			logger,
		),
		GalleryService: NewGalleryService(catalog, logger),
	}
}
