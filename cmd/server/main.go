package main

import (
	"context"

	"firebase.google.com/go/v4/messaging"
	"github.com/labstack/echo/v4"
	"github.com/zikrhub/backend/internal/router"
	"github.com/zikrhub/backend/pkg/azkar"
	"github.com/zikrhub/backend/pkg/config"
	"github.com/zikrhub/backend/pkg/firebase"
	"github.com/zikrhub/backend/pkg/logger"
	"github.com/zikrhub/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.NewLogger("zikrhub-backend")

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase messaging; push delivery is optional in development
	var messagingClient *messaging.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		messagingClient = firebaseApp.MessagingClient
	} else {
		log.Warn("FIREBASE_CREDENTIALS_PATH not set, push notifications disabled")
	}

	// Load the static zekr catalogue
	catalog, err := azkar.LoadFromCSV(cfg.AzkarCSVPath)
	if err != nil {
		log.Fatalf("Failed to load azkar catalogue: %v", err)
	}
	log.WithField("azkar", len(catalog.All())).Info("azkar catalogue loaded")

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, messagingClient, catalog, log); err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
