package database

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jobbyhq/jobby-api/internal/config"
	"github.com/jobbyhq/jobby-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the database named by DATABASE_URL. A postgres DSN
// ("postgres://..." or "host=...") selects postgres; anything else is
// treated as a sqlite file path.
func Connect(cfg *config.Config) *gorm.DB {
	var dialector gorm.Dialector
	url := cfg.DatabaseURL
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") || strings.Contains(url, "host=") {
		dialector = postgres.Open(url)
	} else {
		if dir := filepath.Dir(url); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.Fatal("Failed to create database directory:", err)
			}
		}
		dialector = sqlite.Open(url)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")

	// Migration: This creates the tables automatically
	log.Println("Running Migrations...")
	if err := DB.AutoMigrate(&models.JobApplication{}, &models.ApplicationEvent{}); err != nil {
		log.Fatal("Migration failed:", err)
	}
	return DB
}
