package config

import (
	"fmt"
	"os"

	"ecotaste-backend/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// LoadEnv reads .env if present. Missing file is fine in production where the
// environment is set by the runtime.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		Logger.Debug().Msg("no .env file found, using process environment")
	}
}

// InitDB opens the Postgres connection and migrates the schema. The returned
// handle is injected into services; there is no package-level DB.
func InitDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}
	return db, nil
}

// Migrate runs the schema migration. Split out so tests can run it against
// their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.MealRecord{},
		&models.FoodSnapshot{},
		&models.UserStats{},
		&models.ActivityRecord{},
		&models.PopularityRecord{},
		&models.WasteRecord{},
		&models.UserDevice{},
	)
}
