// Load envs from .env
// Provide default values

package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName     string
	DatabaseURL string
	Port        string
	CORSOrigins []string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppName:     getenv("APP_NAME", "Jobby"),
		DatabaseURL: getenv("DATABASE_URL", "data/jobby.db"),
		Port:        getenv("PORT", "8080"),
	}

	origins := getenv("CORS_ORIGINS", "http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
