// Package config loads server settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime settings for the campaign server.
type Config struct {
	// Addr is the HTTP/WebSocket listen address.
	Addr string `env:"CM_ADDR" envDefault:":8080"`

	// DBPath is the SQLite database file location.
	DBPath string `env:"CM_DB_PATH" envDefault:"campaign.db"`

	// Seed fixes the game's random streams when non-zero; zero draws a
	// fresh crypto seed at startup.
	Seed int64 `env:"CM_SEED" envDefault:"0"`

	// GameID identifies the singleton game in storage.
	GameID string `env:"CM_GAME_ID" envDefault:"GAME_1"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
