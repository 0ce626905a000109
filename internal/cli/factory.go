// Package cli implements the command logic behind the cardtrail binary.
package cli

import (
	"fmt"
	"log/slog"

	"cardtrail"
	"cardtrail/internal/cache"
	"cardtrail/internal/config"
	"cardtrail/internal/logging"
	"cardtrail/internal/pipeline"
	"cardtrail/internal/trello"
	backend "github.com/redis/go-redis/v9"
)

// Options carries the flag values shared by the cardtrail commands.
type Options struct {
	BoardID    string
	LayoutPath string
	Normalize  bool
	Summary    bool
	Debug      bool
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to keep Stdout clean for the payload).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// NewGenerator wires the generator from environment config and flags:
// credentials check, Trello client, optional Redis snapshot cache and the
// pipeline layout.
func NewGenerator(cfg config.Config, opts Options, logger *slog.Logger) (*cardtrail.Generator, error) {
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, err
	}

	layoutPath := opts.LayoutPath
	if layoutPath == "" {
		layoutPath = cfg.LayoutPath
	}
	layout, err := pipeline.Load(layoutPath)
	if err != nil {
		return nil, err
	}

	var fetcher cardtrail.Fetcher = trello.NewClient(cfg.APIKey, cfg.Token,
		trello.WithBaseURL(cfg.BaseURL),
		trello.WithTimeout(cfg.HTTPTimeout),
		trello.WithLogger(logger),
	)

	if cfg.RedisURL != "" {
		redisOpts, err := backend.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		store := cache.NewSnapshotStore(backend.NewClient(redisOpts), cfg.CacheTTL)
		fetcher = cache.NewCachingFetcher(fetcher, store, logger)
		logger.Debug("Snapshot cache enabled", "ttl", cfg.CacheTTL)
	}

	return cardtrail.New(fetcher,
		cardtrail.WithLayout(layout),
		cardtrail.WithLogger(logger),
		cardtrail.WithNormalization(opts.Normalize),
	)
}
