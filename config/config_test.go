package config

import (
	"strings"
	"testing"
	"time"
)

func setPostgresEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("JWT_SECRET", "super_secret_key_for_tests_0123456789")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("JWT_LIFETIME", "")
	t.Setenv("POSTGRES_USER", "app")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "taskman")
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("POSTGRES_PORT", "5432")
}

func TestLoad(t *testing.T) {
	setPostgresEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.DatabaseDriver != "postgres" {
		t.Errorf("DatabaseDriver = %q, want postgres default", cfg.DatabaseDriver)
	}
	if !strings.Contains(cfg.DatabaseDSN, "dbname=taskman") || !strings.Contains(cfg.DatabaseDSN, "host=localhost") {
		t.Errorf("DatabaseDSN = %q", cfg.DatabaseDSN)
	}
	if cfg.TokenLifetime != 24*time.Hour {
		t.Errorf("TokenLifetime = %v, want default 24h", cfg.TokenLifetime)
	}
}

func TestLoad_MissingServerPort(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("SERVER_PORT", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing SERVER_PORT, got nil")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("JWT_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for short JWT_SECRET, got nil")
	}
}

func TestLoad_MissingPostgresVar(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("POSTGRES_HOST", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing POSTGRES_HOST, got nil")
	}
}

func TestLoad_ExplicitDSN(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("DATABASE_DRIVER", "sqlite3")
	t.Setenv("DATABASE_DSN", "file:taskman.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DatabaseDriver != "sqlite3" || cfg.DatabaseDSN != "file:taskman.db" {
		t.Errorf("driver=%q dsn=%q", cfg.DatabaseDriver, cfg.DatabaseDSN)
	}
}

func TestLoad_SqliteWithoutDSN(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("DATABASE_DRIVER", "sqlite3")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for sqlite3 driver without DATABASE_DSN, got nil")
	}
}

func TestLoad_TokenLifetime(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("JWT_LIFETIME", "45m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TokenLifetime != 45*time.Minute {
		t.Errorf("TokenLifetime = %v, want 45m", cfg.TokenLifetime)
	}
}

func TestLoad_InvalidTokenLifetime(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("JWT_LIFETIME", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid JWT_LIFETIME, got nil")
	}
}
