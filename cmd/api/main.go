package main

import (
	"fmt"
	"os"

	"finmentor/internal/config"
	"finmentor/internal/database"
	"finmentor/internal/events"
	"finmentor/internal/logger"
	"finmentor/internal/router"
	"finmentor/internal/validator"
)

// @title           finmentor API
// @version         1.0
// @description     Personal finance backend: budgets, savings goals, transactions, a planner dashboard, tax estimates and a mentor chat.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	profile, err := config.LoadProfile(appConfig.ProfilePath)
	if err != nil {
		return fmt.Errorf("failed to load default profile: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	publisher, err := events.New(appConfig.AMQPURL, appConfig.AMQPExchange)
	if err != nil {
		return fmt.Errorf("failed to connect event publisher: %w", err)
	}
	defer publisher.Close()
	if appConfig.AMQPURL == "" {
		log.Info("AMQP_URL not set, domain events are disabled")
	}
	if appConfig.PipelineAPIKey == "" {
		log.Warn("PIPELINE_API_KEY not set, pipeline routes will answer 503")
	}

	validator.Register()

	r := router.New(router.Options{
		DB:             dbManager.DB(),
		Publisher:      publisher,
		DefaultProfile: profile,
		PipelineAPIKey: appConfig.PipelineAPIKey,
	})

	log.Infof("Starting finmentor server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return r.Run(":" + appConfig.Port)
}
