package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/adapters/file"
	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/internal/testutils"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scene = `<canvas width="480" height="270" view-box="-4 2.25 4 -2.25" fps="24">
  <layer type="circle" desc="ball">
    <param name="amount"><real value="5.0"/></param>
    <param name="origin"><vector><x>0</x><y>0</y></vector></param>
  </layer>
</canvas>`

func writeScene(t *testing.T) string {
	t.Helper()
	return testutils.WriteDocument(t, "scene.sif", scene)
}

func TestLoadSettings(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "waypoint.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("frame_rate: 30\nlog:\n  format: json\n"), 0o644))

	s, err := LoadSettings(Options{ConfigPath: cfg, Store: "none", Debug: true})
	require.NoError(t, err)
	assert.Equal(t, 30.0, s.FrameRate)
	assert.Equal(t, config.BackendNone, s.Store.Backend)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "json", s.Log.Format)

	s, err = LoadSettings(Options{ConfigPath: cfg, FrameRate: 60})
	require.NoError(t, err)
	assert.Equal(t, 60.0, s.FrameRate)

	_, err = LoadSettings(Options{Store: "etcd"})
	assert.ErrorIs(t, err, config.ErrInvalidSettings)
}

func TestNewStore(t *testing.T) {
	s := config.Default()
	store, closer, err := NewStore(s)
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, store)
	assert.NoError(t, closer.Close())

	s.Store.Backend = config.BackendNone
	store, closer, err = NewStore(s)
	require.NoError(t, err)
	assert.Nil(t, store)
	assert.NoError(t, closer.Close())

	s.Store.Backend = config.BackendFile
	s.Store.Dir = t.TempDir()
	store, _, err = NewStore(s)
	require.NoError(t, err)
	assert.IsType(t, &file.Store{}, store)

	s.Store.Backend = config.BackendRedis
	s.Store.RedisURL = "not a url"
	_, _, err = NewStore(s)
	assert.Error(t, err)
}

func TestConvert_JSON(t *testing.T) {
	conv, err := NewConverter(config.Default(), nil, logging.NewNop(), true)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Convert(context.Background(), conv, []string{writeScene(t), writeScene(t)}, FormatJSON, &out))

	dec := json.NewDecoder(&out)
	for range 2 {
		var res waypoint.Result
		require.NoError(t, dec.Decode(&res))
		require.Len(t, res.Layers, 1)
		require.Len(t, res.Layers[0].Params, 2)
		assert.Equal(t, "0.041666666666666664s", res.Layers[0].Params[0].Path.Samples[1].Time)
		assert.NotNil(t, res.Layers[0].Params[1].TransformPath)
	}
}

func TestConvert_Errors(t *testing.T) {
	conv, err := NewConverter(config.Default(), nil, logging.NewNop(), false)
	require.NoError(t, err)

	var out bytes.Buffer
	assert.Error(t, Convert(context.Background(), conv, []string{"missing.sif"}, FormatJSON, &out))
	assert.Error(t, Convert(context.Background(), conv, []string{writeScene(t)}, "yaml", &out))
}

func TestInspect_Report(t *testing.T) {
	conv, err := NewConverter(config.Default(), nil, logging.NewNop(), false)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Inspect(context.Background(), conv, writeScene(t), FormatReport, false, 0, &out))
	assert.Contains(t, out.String(), "| amount | real | static | - |  |")

	out.Reset()
	require.NoError(t, Inspect(context.Background(), conv, writeScene(t), FormatReport, true, 80, &out))
	assert.Contains(t, out.String(), "amount")
}

func TestInspect_Mermaid(t *testing.T) {
	conv, err := NewConverter(config.Default(), nil, logging.NewNop(), false)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Inspect(context.Background(), conv, writeScene(t), FormatMermaid, false, 0, &out))
	assert.Contains(t, out.String(), "graph TD")
	assert.Contains(t, out.String(), "layer0_amount[\"amount <br/> real\"]")
}
