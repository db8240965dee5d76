package registry_test

import (
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/registry"
	"github.com/aretw0/waypoint/pkg/track"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Default(t *testing.T) {
	r := registry.NewDefault(24, track.DefaultUnits())
	assert.Equal(t, []string{track.NameMulti, track.NameScalar}, r.Names())

	g, err := r.Get(track.NameScalar)
	require.NoError(t, err)
	assert.IsType(t, &track.Scalar{}, g)
}

func TestRegistry_Override(t *testing.T) {
	r := registry.NewDefault(24, track.DefaultUnits())
	custom := track.GeneratorFunc(func(dst *domain.Path, node *etree.Element, idx int) error {
		dst.Generator = "custom"
		return nil
	})
	r.Register(track.NameScalar, custom)

	g, err := r.Get(track.NameScalar)
	require.NoError(t, err)

	path := domain.NewPath()
	require.NoError(t, g.Generate(path, nil, 0))
	assert.Equal(t, "custom", path.Generator)
}

func TestRegistry_NotFound(t *testing.T) {
	_, err := registry.NewRegistry().Get("bezier")
	assert.ErrorIs(t, err, domain.ErrGeneratorNotFound)
}
