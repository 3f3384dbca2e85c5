package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	DatabaseDriver string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
}

// Load reads configuration from the environment, pulling in a .env file
// first if one exists.
func Load() Config {
	_ = godotenv.Load()

	ttl := 720 * time.Hour
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil {
			ttl = time.Duration(hours) * time.Hour
		}
	}

	return Config{
		Addr:           envOr("ADDR", ":8080"),
		DatabaseDriver: envOr("DATABASE_DRIVER", "sqlite3"),
		DatabaseURL:    envOr("DATABASE_URL", "huddle.db"),
		JWTSecret:      envOr("JWT_SECRET", "super-secret-key-change-me-in-production"),
		TokenTTL:       ttl,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
