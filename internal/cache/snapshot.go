// Package cache provides an optional Redis-backed cache for fetched board
// snapshots, so repeated runs against the same board stay off the API.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cardtrail/internal/logging"
	"cardtrail/internal/trello"
	backend "github.com/redis/go-redis/v9"
)

const keyPrefix = "cardtrail:snapshot:"

// SnapshotStore caches board snapshots in Redis with a TTL.
type SnapshotStore struct {
	client *backend.Client
	ttl    time.Duration
}

// NewSnapshotStore creates a store on an existing Redis client.
func NewSnapshotStore(client *backend.Client, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{client: client, ttl: ttl}
}

// Get returns the cached snapshot for a board, or ok=false on a miss.
func (s *SnapshotStore) Get(ctx context.Context, boardID string) (*trello.Snapshot, bool, error) {
	raw, err := s.client.Get(ctx, keyPrefix+boardID).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get snapshot: %w", err)
	}

	var snap trello.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached snapshot: %w", err)
	}
	return &snap, true, nil
}

// Put stores a snapshot under the board id.
func (s *SnapshotStore) Put(ctx context.Context, boardID string, snap *trello.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+boardID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set snapshot: %w", err)
	}
	return nil
}

// Fetcher is the upstream source the cache sits in front of.
type Fetcher interface {
	Snapshot(ctx context.Context, boardID string) (*trello.Snapshot, error)
}

// CachingFetcher decorates a Fetcher with read-through snapshot caching.
// Cache failures degrade to a direct fetch instead of failing the run.
type CachingFetcher struct {
	inner  Fetcher
	store  *SnapshotStore
	logger *slog.Logger
}

// NewCachingFetcher wraps a fetcher with the store.
func NewCachingFetcher(inner Fetcher, store *SnapshotStore, logger *slog.Logger) *CachingFetcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &CachingFetcher{inner: inner, store: store, logger: logger}
}

// Snapshot returns the cached snapshot when present, otherwise fetches and
// stores it.
func (f *CachingFetcher) Snapshot(ctx context.Context, boardID string) (*trello.Snapshot, error) {
	snap, ok, err := f.store.Get(ctx, boardID)
	if err != nil {
		f.logger.Warn("Snapshot cache read failed", "board_id", boardID, "err", err)
	} else if ok {
		f.logger.Debug("Snapshot cache hit", "board_id", boardID)
		return snap, nil
	}

	snap, err = f.inner.Snapshot(ctx, boardID)
	if err != nil {
		return nil, err
	}

	if err := f.store.Put(ctx, boardID, snap); err != nil {
		f.logger.Warn("Snapshot cache write failed", "board_id", boardID, "err", err)
	}
	return snap, nil
}
