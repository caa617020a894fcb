package main

import (
	"os"

	"github.com/CreativeZee/local-hub-replicator/internal/config"
	"github.com/CreativeZee/local-hub-replicator/internal/database"
	"github.com/CreativeZee/local-hub-replicator/internal/logger"
	"github.com/CreativeZee/local-hub-replicator/internal/seed"
)

func main() {
	cfg := config.Load()

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		os.Exit(1)
	}
	defer logger.Close()

	if err := database.Initialize(cfg); err != nil {
		logger.FatalWithFields("database initialization failed", err)
	}
	defer database.Close()

	if err := seed.Run(database.Get(), seed.DefaultOptions()); err != nil {
		logger.FatalWithFields("seeding failed", err)
	}
	logger.Log.Info("seeding complete")
}
