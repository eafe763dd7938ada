// Package bootstrap wires configuration, storage, services, and routes
// into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/lumina-app/lumina/internal/app/controllers"
	appMigrations "github.com/lumina-app/lumina/internal/app/migrations"
	appRepos "github.com/lumina-app/lumina/internal/app/repositories"
	appRoutes "github.com/lumina-app/lumina/internal/app/routes"
	appServices "github.com/lumina-app/lumina/internal/app/services"
	"github.com/lumina-app/lumina/internal/config"
	"github.com/lumina-app/lumina/internal/db"
	appMiddleware "github.com/lumina-app/lumina/internal/middleware"
	pkgAuth "github.com/lumina-app/lumina/internal/pkg/auth"
	"github.com/lumina-app/lumina/internal/pkg/email"
	"github.com/lumina-app/lumina/internal/pkg/helpers"
	"github.com/lumina-app/lumina/internal/pkg/logger"
	"github.com/lumina-app/lumina/internal/pkg/unsplash"
	"github.com/lumina-app/lumina/internal/pkg/websocket"
	"github.com/lumina-app/lumina/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                 *appRepos.Repositories
	Services              *appServices.Services
	Hub                   *websocket.Hub
	JWTService            *pkgAuth.JWTService
	AuthController        *appControllers.AuthController
	UserController        *appControllers.UserController
	GalleryController     *appControllers.GalleryController
	InteractionController *appControllers.InteractionController
	FeedController        *appControllers.FeedController
	AdminController       *appControllers.AdminController
	WSHandler             *websocket.Handler
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if fromEnv := os.Getenv("LUMINA_CONFIG"); fromEnv != "" {
		configPath = fromEnv
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations, and
// applies startup seeds.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.PromoteAdmins(context.Background(), database.Pool, cfg, lgr); err != nil {
		// Promotion failures are not fatal; first sign-in promotes too
		lgr.Error().Err(err).Msg("Admin promotion incomplete, proceeding anyway")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services, and controllers
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool, database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	emailService := email.NewService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	catalog := unsplash.NewClient(unsplash.Config{
		BaseURL:   cfg.Unsplash.BaseURL,
		AccessKey: cfg.Unsplash.AccessKey,
		PerPage:   cfg.Unsplash.PerPage,
	}, lgr)

	deps.Hub = websocket.NewHub(lgr)

	deps.Services = appServices.NewServices(deps.Repos, deps.Hub, deps.JWTService, emailService, catalog, cfg, lgr)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService, lgr)
	deps.UserController = appControllers.NewUserController(deps.Services.UserService, lgr)
	deps.GalleryController = appControllers.NewGalleryController(deps.Services.GalleryService, lgr)
	deps.InteractionController = appControllers.NewInteractionController(deps.Services.InteractionService, lgr)
	deps.FeedController = appControllers.NewFeedController(deps.Services.FeedService, lgr)
	deps.AdminController = appControllers.NewAdminController(deps.Services.ModerationService, lgr)
	deps.WSHandler = websocket.NewHandler(deps.Hub, lgr)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	return deps, nil
}

// SetupRouter builds the gin engine with all routes attached
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	appMiddleware.RegisterValidators()

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.UserController,
		deps.GalleryController,
		deps.InteractionController,
		deps.FeedController,
		deps.AdminController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	return router
}
