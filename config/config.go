package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultTokenLifetime = 24 * time.Hour
	minSecretLength      = 32
)

type Config struct {
	ServerPort     string
	DatabaseDriver string
	DatabaseDSN    string
	JWTSecret      string
	TokenLifetime  time.Duration
}

// Load reads configuration from environment variables and fails fast on
// anything missing or malformed.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:     os.Getenv("SERVER_PORT"),
		DatabaseDriver: os.Getenv("DATABASE_DRIVER"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenLifetime:  defaultTokenLifetime,
	}

	if cfg.ServerPort == "" {
		return nil, fmt.Errorf("environment variable SERVER_PORT must be set")
	}
	if len(cfg.JWTSecret) < minSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength)
	}
	if cfg.DatabaseDriver == "" {
		cfg.DatabaseDriver = "postgres"
	}

	dsn, err := databaseDSN(cfg.DatabaseDriver)
	if err != nil {
		return nil, err
	}
	cfg.DatabaseDSN = dsn

	if lifetime := os.Getenv("JWT_LIFETIME"); lifetime != "" {
		d, err := time.ParseDuration(lifetime)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_LIFETIME %q: %w", lifetime, err)
		}
		cfg.TokenLifetime = d
	}

	return cfg, nil
}

func databaseDSN(driver string) (string, error) {
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		return dsn, nil
	}
	if driver != "postgres" {
		return "", fmt.Errorf("environment variable DATABASE_DSN must be set for driver %q", driver)
	}

	requiredEnvVars := []string{
		"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"POSTGRES_HOST", "POSTGRES_PORT",
	}
	for _, env := range requiredEnvVars {
		if os.Getenv(env) == "" {
			return "", fmt.Errorf("environment variable %s must be set", env)
		}
	}

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("POSTGRES_HOST"), os.Getenv("POSTGRES_USER"), os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_DB"), os.Getenv("POSTGRES_PORT")), nil
}
