// Package config loads runtime configuration from the environment, with a
// .env file as a development convenience.
package config

import (
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration of the server.
type Config struct {
	Server struct {
		Addr            string        `env:"HTTP_ADDR,default=:8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT,default=10s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT,default=15s"`
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	}

	Database struct {
		// DSN selects PostgreSQL. Empty falls back to the in-memory
		// store, which is only suitable for development.
		DSN string `env:"DATABASE_URL,default="`
	}

	Telegram struct {
		BotToken string        `env:"TELEGRAM_BOT_TOKEN,default="`
		AuthTTL  time.Duration `env:"INIT_DATA_TTL,default=24h"`
		// SkipAuthCheck disables init data signature verification.
		// Never enable in production.
		SkipAuthCheck bool `env:"TELEGRAM_SKIP_AUTH_CHECK,default=false"`
	}

	CORS struct {
		// AllowedOrigins is comma-separated. Empty disables CORS.
		AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS,default="`
	}

	Logging struct {
		Level  string `env:"LOG_LEVEL,default=info"`
		Format string `env:"LOG_FORMAT,default=json"`
	}

	Seed struct {
		DemoData bool `env:"SEED_DEMO_DATA,default=true"`
	}
}

// Load reads .env if present, then decodes the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// AllowedOrigins splits the configured CORS origins.
func (c Config) AllowedOrigins() []string {
	raw := strings.TrimSpace(c.CORS.AllowedOrigins)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
