package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/CreativeZee/local-hub-replicator/internal/config"
	"github.com/CreativeZee/local-hub-replicator/internal/logger"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
)

var db *gorm.DB

// Initialize opens the Postgres connection, configures the pool, and
// runs migrations.
func Initialize(cfg *config.Config) error {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
	}

	gormLogLevel := gormlogger.Warn
	if cfg.Environment == "development" {
		gormLogLevel = gormlogger.Info
	}

	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Log.Info("database initialized",
		zap.String("host", cfg.DBHost),
		zap.String("database", cfg.DBName))
	return nil
}

// Migrate creates or updates the schema for every model. It is also
// called by the test suites against their in-memory databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.PostLike{},
		&models.Comment{},
		&models.MarketplaceItem{},
		&models.Event{},
		&models.EventInterest{},
		&models.EventAttendee{},
		&models.Group{},
		&models.GroupMember{},
		&models.Service{},
		&models.Activity{},
		&models.Review{},
		&models.Conversation{},
		&models.Message{},
		&models.Favorite{},
	)
}

// Get returns the initialized connection.
func Get() *gorm.DB {
	return db
}

// Close shuts the underlying pool down.
func Close() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
