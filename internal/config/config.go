// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything the server needs at startup.
type Config struct {
	Addr            string
	DBPath          string
	JWTSecret       string
	TokenTTL        time.Duration
	BalanceCacheTTL time.Duration
	RateLimit       int
	RateLimitWindow time.Duration
}

// Load reads configuration from environment variables, applying
// defaults for everything except JWT_SECRET, which is required.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	cfg := &Config{
		Addr:            getEnv("ADDR", ":8080"),
		DBPath:          getEnv("DB_PATH", "./data/smartsplit.db"),
		JWTSecret:       secret,
		TokenTTL:        getEnvDuration("TOKEN_TTL", 24*time.Hour),
		BalanceCacheTTL: getEnvDuration("BALANCE_CACHE_TTL", 30*time.Second),
		RateLimit:       getEnvInt("RATE_LIMIT", 100),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
