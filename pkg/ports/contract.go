package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractPath(v float64) *domain.Path {
	p := domain.NewPath()
	p.Generator = "scalar"
	p.Type = domain.TypeReal
	p.Add(domain.Sample{Time: "0s", Value: []float64{v}, Before: "constant", After: "constant"})
	p.Add(domain.Sample{Time: "1s", Seconds: 1, Frame: 24, Value: []float64{v + 1}, Before: "linear", After: "linear"})
	return p
}

// RunPathStoreContract runs a suite of tests to verify that a PathStore
// implementation adheres to the defined interface contract.
func RunPathStoreContract(t *testing.T, store PathStore) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		path := contractPath(5)
		require.NoError(t, store.Save(ctx, runID, "layer/amount", path))

		loaded, err := store.Load(ctx, runID, "layer/amount")
		require.NoError(t, err)
		assert.Equal(t, path, loaded)

		// Stored paths are isolated from the caller's value.
		loaded.Samples[0].Value[0] = 99
		again, err := store.Load(ctx, runID, "layer/amount")
		require.NoError(t, err)
		assert.Equal(t, 5.0, again.Samples[0].Value[0])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID, "layer/amount")
		assert.ErrorIs(t, err, domain.ErrRunNotFound)

		_, err = store.Load(ctx, runID, "layer/missing")
		assert.ErrorIs(t, err, domain.ErrStoredPathNotFound)

		_, err = store.List(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, runID, "layer/origin", contractPath(1)))
		require.NoError(t, store.Save(ctx, runID, "layer/origin@transform", contractPath(2)))

		keys, err := store.List(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, []string{"layer/amount", "layer/origin", "layer/origin@transform"}, keys)

		runs, err := store.Runs(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, runID)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, runID))

		_, err := store.Load(ctx, runID, "layer/amount")
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")

		runs, err := store.Runs(ctx)
		require.NoError(t, err)
		assert.NotContains(t, runs, runID)

		assert.NoError(t, store.Delete(ctx, runID), "deleting twice is not an error")
	})
}
