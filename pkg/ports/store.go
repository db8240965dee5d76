package ports

import (
	"context"

	"github.com/aretw0/waypoint/pkg/domain"
)

// PathStore persists the paths generated by an export run.
// Paths are grouped by run ID and addressed by parameter key, such as
// "<layer-id>/origin" or "<layer-id>/origin@transform".
type PathStore interface {
	// Save stores path under key for the run, replacing any previous value.
	Save(ctx context.Context, runID, key string, path *domain.Path) error

	// Load retrieves a stored path.
	// Returns domain.ErrRunNotFound when the run is unknown and
	// domain.ErrStoredPathNotFound when the run has no such key.
	Load(ctx context.Context, runID, key string) (*domain.Path, error)

	// List returns the keys of a run in sorted order.
	// Returns domain.ErrRunNotFound when the run is unknown.
	List(ctx context.Context, runID string) ([]string, error)

	// Runs returns the IDs of the runs still held by the store.
	Runs(ctx context.Context) ([]string, error)

	// Delete removes every path of a run. Deleting an unknown run is not an error.
	Delete(ctx context.Context, runID string) error
}
