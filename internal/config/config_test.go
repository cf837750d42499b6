package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("default addr = %q", cfg.Server.Addr)
	}
	if cfg.Telegram.AuthTTL != 24*time.Hour {
		t.Fatalf("default auth ttl = %v", cfg.Telegram.AuthTTL)
	}
	if !cfg.Seed.DemoData {
		t.Fatalf("demo seed should default on")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/foodcourt")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Database.DSN != "postgres://localhost/foodcourt" {
		t.Fatalf("dsn = %q", cfg.Database.DSN)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q", cfg.Logging.Level)
	}
}

func TestAllowedOrigins(t *testing.T) {
	var cfg Config
	if got := cfg.AllowedOrigins(); got != nil {
		t.Fatalf("empty origins should be nil, got %v", got)
	}

	cfg.CORS.AllowedOrigins = "https://a.example, https://b.example ,"
	got := cfg.AllowedOrigins()
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("origins = %v", got)
	}
}
