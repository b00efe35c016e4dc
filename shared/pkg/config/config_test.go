package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 5000 {
		t.Fatalf("expected port 5000, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.Addr() != ":5000" {
		t.Fatalf("expected addr :5000, got %q", cfg.HTTP.Addr())
	}
	if cfg.Store.Backend != BackendFile || cfg.Store.DataFile != "data.json" {
		t.Fatalf("unexpected store config: %+v", cfg.Store)
	}
	if cfg.Calculator.Timeout != 30*time.Second {
		t.Fatalf("expected 30s calculator timeout, got %v", cfg.Calculator.Timeout)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins: %v", cfg.HTTP.CORSOrigins)
	}
}

func TestLoadPortFromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr() != ":8081" {
		t.Fatalf("expected :8081, got %q", cfg.HTTP.Addr())
	}
}

func TestLoadPostgresRequiresDSN(t *testing.T) {
	t.Setenv("STORE_BACKEND", BackendPostgres)
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without dsn")
	}

	t.Setenv("PG_DSN", "postgres://localhost/shop")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Postgres.DSN != "postgres://localhost/shop" {
		t.Fatalf("legacy dsn not applied: %q", cfg.Postgres.DSN)
	}
}

func TestLoadUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "sqlite")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
