package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.PathStore using Redis.
// Each run is a hash of key -> JSON path; a sorted set indexes the runs by
// expiry so Runs can prune entries whose hash already expired.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for runs.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for runs.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store from a redis:// URL.
func New(url string, opts ...Option) (*Store, error) {
	o, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewFromClient(backend.NewClient(o), opts...), nil
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "waypoint:run:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(runID string) string {
	return s.prefix + runID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save writes the path into the run hash and refreshes the run expiry.
func (s *Store) Save(ctx context.Context, runID, key string, path *domain.Path) error {
	data, err := json.Marshal(path)
	if err != nil {
		return fmt.Errorf("failed to marshal path: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.key(runID), key, data)

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key(runID), s.ttl)
	} else {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: runID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves a path from the run hash.
func (s *Store) Load(ctx context.Context, runID, key string) (*domain.Path, error) {
	val, err := s.client.HGet(ctx, s.key(runID), key).Result()
	if err == backend.Nil {
		if err := s.ensureRun(ctx, runID); err != nil {
			return nil, err
		}
		return nil, domain.ErrStoredPathNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var path domain.Path
	if err := json.Unmarshal([]byte(val), &path); err != nil {
		return nil, fmt.Errorf("failed to unmarshal path: %w", err)
	}
	return &path, nil
}

// List returns the keys of a run.
func (s *Store) List(ctx context.Context, runID string) ([]string, error) {
	keys, err := s.client.HKeys(ctx, s.key(runID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list paths: %w", err)
	}
	if len(keys) == 0 {
		return nil, domain.ErrRunNotFound
	}
	slices.Sort(keys)
	return keys, nil
}

// Runs prunes expired runs from the index and returns the rest.
func (s *Store) Runs(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired runs: %w", err)
	}

	runs, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Delete removes the run hash and its index entry.
func (s *Store) Delete(ctx context.Context, runID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(runID))
	pipe.ZRem(ctx, s.indexKey(), runID)

	_, err := pipe.Exec(ctx)
	return err
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) ensureRun(ctx context.Context, runID string) error {
	n, err := s.client.Exists(ctx, s.key(runID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check run: %w", err)
	}
	if n == 0 {
		return domain.ErrRunNotFound
	}
	return nil
}
