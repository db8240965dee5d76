package config_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/waypoint/pkg/config"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "waypoint.yaml", `
frame_rate: 30
units:
  scale: 100
  origin_x: 10
transform_params: [origin]
store:
  backend: redis
  redis_url: redis://cache:6379/1
  ttl: 90m
log:
  level: debug
`)

	s, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	assert.Equal(t, 30.0, s.FrameRate)
	assert.Equal(t, &track.Units{Scale: 100, OriginX: 10}, s.Units)
	assert.Equal(t, []string{"origin"}, s.TransformParams)
	assert.Equal(t, config.BackendRedis, s.Store.Backend)
	assert.Equal(t, "redis://cache:6379/1", s.Store.RedisURL)
	assert.Equal(t, 90*time.Minute, s.Store.TTL)
	assert.Equal(t, "debug", s.Log.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, "text", s.Log.Format)
	assert.Equal(t, ":8080", s.HTTP.Addr)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "waypoint.json", `{"frame_rate": "12", "http": {"addr": ":9090"}}`)

	s, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12.0, s.FrameRate)
	assert.Equal(t, ":9090", s.HTTP.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), s)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeFile(t, "bad.yaml", "frame_rate: [1, 2")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestFromMap_DoesNotAliasBase(t *testing.T) {
	base := config.Default()
	s, err := config.FromMap(base, map[string]any{"transform_params": "offset,origin"})
	require.NoError(t, err)

	assert.Equal(t, []string{"offset", "origin"}, s.TransformParams)
	assert.Equal(t, []string{"origin", "offset"}, base.TransformParams)
	assert.True(t, s.IsTransformParam("offset"))
	assert.False(t, s.IsTransformParam("radius"))
}

func TestFromMap_DottedKeys(t *testing.T) {
	base := config.Default()
	base.Units = &track.Units{Scale: 60, OriginX: 5, OriginY: 7}

	raw := map[string]any{"units.scale": "10", "store.ttl": "1h", "log": map[string]any{"level": "warn"}}
	s, err := config.FromMap(base, raw)
	require.NoError(t, err)

	assert.Equal(t, &track.Units{Scale: 10, OriginX: 5, OriginY: 7}, s.Units, "unset unit fields keep the base")
	assert.Equal(t, time.Hour, s.Store.TTL)
	assert.Equal(t, config.BackendMemory, s.Store.Backend)
	assert.Equal(t, "warn", s.Log.Level)
	assert.Equal(t, "text", s.Log.Format)
	assert.Equal(t, 60.0, base.Units.Scale)
	assert.Contains(t, raw, "units.scale", "the input map is not rewritten")

	s, err = config.FromMap(config.Default(), map[string]any{"units.origin_x": 3})
	require.NoError(t, err)
	assert.Equal(t, &track.Units{Scale: track.DefaultScale, OriginX: 3}, s.Units)
}

func TestFromMap_UnknownKeys(t *testing.T) {
	for _, raw := range []map[string]any{
		{"units.scael": 10},
		{"frame_rat": 12},
		{"store.backend.kind": "redis"},
		{"frame_rate": 12, "frame_rate.x": 1},
	} {
		_, err := config.FromMap(config.Default(), raw)
		assert.ErrorIs(t, err, config.ErrInvalidSettings, "%v", raw)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Settings)
		target error
	}{
		{"negative frame rate", func(s *config.Settings) { s.FrameRate = -1 }, domain.ErrInvalidFrameRate},
		{"NaN frame rate", func(s *config.Settings) { s.FrameRate = math.NaN() }, domain.ErrInvalidFrameRate},
		{"zero scale", func(s *config.Settings) { s.Units = &track.Units{} }, config.ErrInvalidSettings},
		{"unknown backend", func(s *config.Settings) { s.Store.Backend = "etcd" }, config.ErrInvalidSettings},
		{"redis without url", func(s *config.Settings) {
			s.Store.Backend = config.BackendRedis
			s.Store.RedisURL = ""
		}, config.ErrInvalidSettings},
		{"file without dir", func(s *config.Settings) {
			s.Store.Backend = config.BackendFile
			s.Store.Dir = ""
		}, config.ErrInvalidSettings},
		{"bad level", func(s *config.Settings) { s.Log.Level = "loud" }, config.ErrInvalidSettings},
		{"bad format", func(s *config.Settings) { s.Log.Format = "xml" }, config.ErrInvalidSettings},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := config.Default()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), tt.target)
		})
	}
	assert.NoError(t, config.Default().Validate())
}
