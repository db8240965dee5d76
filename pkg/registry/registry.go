package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/track"
)

// Registry manages the available track generators.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]track.Generator
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]track.Generator),
	}
}

// NewDefault creates a registry holding the built-in scalar and
// multi-dimensional generators for the given frame rate and units.
func NewDefault(fps float64, units track.Units) *Registry {
	r := NewRegistry()
	r.Register(track.NameScalar, track.NewScalar(fps))
	r.Register(track.NameMulti, track.NewMultiDimensional(fps, units))
	return r
}

// Register adds a generator to the registry.
// If a generator with the same name exists, it is overwritten.
func (r *Registry) Register(name string, g track.Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[name] = g
}

// Get looks up a generator by name.
// Returns domain.ErrGeneratorNotFound if the name is not registered.
func (r *Registry) Get(name string) (track.Generator, error) {
	r.mu.RLock()
	g, ok := r.generators[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrGeneratorNotFound, name)
	}
	return g, nil
}

// Names returns the registered generator names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
