package router

import (
	"firebase.google.com/go/v4/messaging"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/zikrhub/backend/internal/handlers"
	"github.com/zikrhub/backend/internal/middleware"
	"github.com/zikrhub/backend/internal/models"
	"github.com/zikrhub/backend/internal/repositories"
	"github.com/zikrhub/backend/internal/services"
	"github.com/zikrhub/backend/pkg/azkar"
	"github.com/zikrhub/backend/pkg/clock"
	"github.com/zikrhub/backend/pkg/config"
	"github.com/zikrhub/backend/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	pgdb *gorm.DB,
	mgClient *mongo.Client,
	messagingClient *messaging.Client,
	catalog *azkar.Catalog,
	log *logger.Logger,
) error {
	// AutoMigrate the score ledger
	if err := pgdb.AutoMigrate(&models.ScoreEntry{}); err != nil {
		return err
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	mongoDB := mgClient.Database(cfg.MongoDatabase)
	userRepo := repositories.NewMongoUserRepository(mongoDB)
	friendshipRepo := repositories.NewMongoFriendshipRepository(mongoDB)
	groupRepo := repositories.NewMongoGroupRepository(mongoDB)
	challengeRepo := repositories.NewMongoChallengeRepository(mongoDB)
	ledgerRepo := repositories.NewPostgresScoreLedgerRepository(pgdb)

	var progressRepo repositories.ProgressRepository
	if cfg.ChallengeProgressMode == repositories.ProgressModeShared {
		progressRepo = repositories.NewSharedProgressRepository(challengeRepo)
	} else {
		progressRepo = repositories.NewMongoProgressRepository(mongoDB)
	}
	log.WithField("mode", cfg.ChallengeProgressMode).Info("challenge progress mode configured")

	// --- Initialize Services ---
	notifier := services.NewFCMNotificationSink(messagingClient, log)
	binder := services.NewFriendshipGroupBinder(userRepo, groupRepo)
	friendshipService := services.NewFriendshipService(userRepo, friendshipRepo, binder, notifier)
	challengeService := services.NewChallengeService(
		userRepo, groupRepo, challengeRepo, progressRepo, ledgerRepo,
		catalog, notifier, clock.SystemClock{}, log,
	)
	leaderboardService := services.NewLeaderboardService(userRepo, friendshipRepo, ledgerRepo)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	friendshipHandler := handlers.NewFriendshipHandler(friendshipService, leaderboardService)
	friendshipHandler.RegisterFriendshipRoutes(api)

	challengeHandler := handlers.NewChallengeHandler(challengeService)
	challengeHandler.RegisterChallengeRoutes(api)

	azkarHandler := handlers.NewAzkarHandler(catalog)
	azkarHandler.RegisterAzkarRoutes(api)

	log.Info("all routes configured")
	return nil
}
