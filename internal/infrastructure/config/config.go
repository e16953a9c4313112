package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (ignores error if not found)
	godotenv.Load()
}

// ErrMissingSecret is returned when SESSION_SECRET is not set. There is no
// fallback: starting without a secret would make every session forgeable.
var ErrMissingSecret = errors.New("SESSION_SECRET is required")

type Config struct {
	Port          string
	DatabasePath  string
	SessionSecret string
	TokenExpiry   int // hours
	BcryptCost    int
	Env           string
	FrontendURL   string
}

// IsProduction reports whether the server runs in production mode.
// It controls the Secure attribute on the session cookie.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8010"),
		DatabasePath:  getEnv("DATABASE_PATH", "./data/casepanel.db"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		TokenExpiry:   int(getEnvAsInt64("TOKEN_EXPIRY_HOURS", 24)),
		BcryptCost:    int(getEnvAsInt64("BCRYPT_COST", 12)),
		Env:           getEnv("APP_ENV", "development"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),
	}

	if cfg.SessionSecret == "" {
		return nil, ErrMissingSecret
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}
