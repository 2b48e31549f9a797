package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the runtime settings read from the environment
type Config struct {
	Env                 string
	Port                string
	RedisURL            string
	JWTSecret           string
	JWTAccessDuration   time.Duration
	ReopenCheckInterval time.Duration
	StatusCacheTTL      time.Duration
	HealthCheckInterval time.Duration
	DefaultLocation     *time.Location
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() (*Config, error) {
	interval, err := time.ParseDuration(getEnvOrDefault("REOPEN_CHECK_INTERVAL", "30s"))
	if err != nil || interval <= 0 {
		return nil, fmt.Errorf("invalid REOPEN_CHECK_INTERVAL: %q", os.Getenv("REOPEN_CHECK_INTERVAL"))
	}

	ttl, err := time.ParseDuration(getEnvOrDefault("STATUS_CACHE_TTL", "30s"))
	if err != nil || ttl < 0 {
		return nil, fmt.Errorf("invalid STATUS_CACHE_TTL: %q", os.Getenv("STATUS_CACHE_TTL"))
	}

	health, err := time.ParseDuration(getEnvOrDefault("HEALTH_CHECK_INTERVAL", "5m"))
	if err != nil || health < 0 {
		return nil, fmt.Errorf("invalid HEALTH_CHECK_INTERVAL: %q", os.Getenv("HEALTH_CHECK_INTERVAL"))
	}

	access, err := time.ParseDuration(getEnvOrDefault("JWT_ACCESS_DURATION", "15m"))
	if err != nil {
		access = 15 * time.Minute
	}

	tz := getEnvOrDefault("DEFAULT_TIMEZONE", "America/Sao_Paulo")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_TIMEZONE %q: %w", tz, err)
	}

	return &Config{
		Env:                 os.Getenv("ENV"),
		Port:                getEnvOrDefault("PORT", "8080"),
		RedisURL:            os.Getenv("REDIS_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTAccessDuration:   access,
		ReopenCheckInterval: interval,
		StatusCacheTTL:      ttl,
		HealthCheckInterval: health,
		DefaultLocation:     loc,
	}, nil
}

// IsDevelopment reports whether ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
