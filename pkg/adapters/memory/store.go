package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/aretw0/waypoint/pkg/domain"
)

// Store implements ports.PathStore in memory.
// Safe for concurrent use.
type Store struct {
	runs map[string]map[string]*domain.Path
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		runs: make(map[string]map[string]*domain.Path),
	}
}

// Save persists a copy of the path in memory.
func (s *Store) Save(ctx context.Context, runID, key string, path *domain.Path) error {
	copied := path.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[runID]
	if !ok {
		run = make(map[string]*domain.Path)
		s.runs[runID] = run
	}
	run[key] = copied
	return nil
}

// Load returns a copy so callers can't mutate stored paths.
func (s *Store) Load(ctx context.Context, runID, key string) (*domain.Path, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[runID]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	path, ok := run[key]
	if !ok {
		return nil, domain.ErrStoredPathNotFound
	}
	return path.Clone(), nil
}

// List returns the keys of a run.
func (s *Store) List(ctx context.Context, runID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[runID]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return slices.Sorted(maps.Keys(run)), nil
}

// Runs returns the stored run IDs.
func (s *Store) Runs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.runs)), nil
}

// Delete removes a run.
func (s *Store) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, runID)
	return nil
}
