// Package config loads application settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrMissingCredentials is returned when the Trello API key or token is not set.
var ErrMissingCredentials = errors.New(
	"missing Trello credentials: set TRELLO_API_KEY and TRELLO_TOKEN")

// Config holds everything cardtrail reads from the environment.
type Config struct {
	APIKey  string `env:"TRELLO_API_KEY"`
	Token   string `env:"TRELLO_TOKEN"`
	BaseURL string `env:"TRELLO_BASE_URL" envDefault:"https://api.trello.com/1"`

	HTTPTimeout time.Duration `env:"CARDTRAIL_HTTP_TIMEOUT" envDefault:"30s"`

	// LayoutPath points to an optional pipeline layout YAML file.
	LayoutPath string `env:"CARDTRAIL_LAYOUT"`

	// RedisURL enables the board snapshot cache when set.
	RedisURL string        `env:"CARDTRAIL_REDIS_URL"`
	CacheTTL time.Duration `env:"CARDTRAIL_CACHE_TTL" envDefault:"15m"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ValidateCredentials fails fast before any network call is made.
func (c Config) ValidateCredentials() error {
	if c.APIKey == "" || c.Token == "" {
		return ErrMissingCredentials
	}
	return nil
}
