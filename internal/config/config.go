package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the application configuration. It is loaded once in main and
// handed to constructors; nothing below the composition root reads the
// process environment.
type Config struct {
	ServerPort   int           `env:"PORT" envDefault:"8080"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	DatabasePath string        `env:"DATABASE_PATH" envDefault:"./shortener.db"`
	JWTSecret    string        `env:"JWT_SECRET,required"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
}

// Load reads configuration from the environment, preceded by a best-effort
// .env load for local development.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
