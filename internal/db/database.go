package db

import (
	"fmt"
	"os"

	"storefront/pkg/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase creates a new database connection
func NewDatabase() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		getEnvOrDefault("DB_PORT", "5432"),
		getEnvOrDefault("DB_SSLMODE", "disable"),
		getEnvOrDefault("DB_TIMEZONE", "UTC"),
	)

	level := logger.Error
	if os.Getenv("DB_LOG_QUERIES") == "true" {
		level = logger.Info
	}

	config := &gorm.Config{
		Logger:                                   logger.Default.LogMode(level),
		DisableForeignKeyConstraintWhenMigrating: false,
	}

	db, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// AutoMigrate runs database migrations using GORM
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("Running GORM AutoMigrate...")

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Warn().Err(err).Msg("Could not create uuid-ossp extension")
	}

	if err := db.AutoMigrate(models.GetAllModels()...); err != nil {
		return fmt.Errorf("failed to run GORM AutoMigrate: %w", err)
	}

	createCustomIndexes(db)

	log.Info().Msg("GORM AutoMigrate completed successfully")
	return nil
}

// createCustomIndexes creates the indexes GORM tags cannot express
func createCustomIndexes(db *gorm.DB) {
	indexes := []string{
		// Startup scan of the reopen monitor
		`CREATE INDEX IF NOT EXISTS idx_shops_active_closure ON shops ((temporary_closure->>'isClosed')) WHERE temporary_closure->>'isClosed' = 'true'`,

		`CREATE INDEX IF NOT EXISTS idx_special_holidays_shop_range ON special_holidays (shop_id, start_date, end_date)`,

		`CREATE INDEX IF NOT EXISTS idx_delivery_zones_active ON delivery_zones (is_active) WHERE deleted_at IS NULL`,
	}

	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			log.Warn().Err(err).Str("sql", idx).Msg("Failed to create index")
		}
	}
}

// RunMigrations is the main migration function called from main.go
func RunMigrations(db *gorm.DB) error {
	log.Info().Msg("Starting database migrations...")

	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	log.Info().Msg("All migrations completed successfully")
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
