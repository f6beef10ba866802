package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath          string        `env:"DB_PATH" envDefault:"data/settlers.db"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	RedisURL        string        `env:"REDIS_URL"`
	LogLevel        slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir          string        `env:"SPA_DIR" envDefault:"../web/dist"`
	SSEPingInterval time.Duration `env:"SSE_PING_INTERVAL" envDefault:"15s"`
	StoreRetries    int           `env:"STORE_RETRIES" envDefault:"5"`
}

// Load reads the optional dotenv file named by ENV_FILE (default .env) and
// then parses the environment. Variables already set win over the file.
func Load() (*Config, error) {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.StoreRetries < 0 {
		return nil, fmt.Errorf("STORE_RETRIES must not be negative")
	}
	if cfg.SSEPingInterval <= 0 {
		return nil, fmt.Errorf("SSE_PING_INTERVAL must be positive")
	}
	return &cfg, nil
}
