package main

import (
	"context"
	"log"

	"beauty-orders/cmd"
	"beauty-orders/internal/data/repository"
	"beauty-orders/internal/data/seed"
	"beauty-orders/internal/wire"
	"beauty-orders/pkg/database"
	"beauty-orders/pkg/metrics"
	"beauty-orders/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx := context.Background()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		if err := database.Migrate(config.Database, logger); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	metrics.RegisterPoolStats(db.Stat)

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	if config.App.SeedData {
		if err := seed.Run(ctx, repos, logger); err != nil {
			logger.Fatal("Failed to seed database", zap.Error(err))
		}
	}

	// Wire all dependencies
	app := wire.Wiring(db, repos, config, logger)
	defer app.Close()

	if err := cmd.APIServer(app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
	}
}
