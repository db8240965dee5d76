package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/waypoint/internal/adapters/file"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunPathStoreContract(t, store)
}

func TestFileStore_Layout(t *testing.T) {
	base := t.TempDir()
	store := file.New(base)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "run-1", "layer/origin@transform", domain.NewPath()))

	entries, err := os.ReadDir(filepath.Join(base, "run-1"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files are cleaned up")
	assert.Equal(t, "layer%2Forigin@transform.json", entries[0].Name())
}

func TestFileStore_RejectsEscapingRunIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "..", "a/b", "."} {
		assert.Error(t, store.Save(ctx, id, "key", domain.NewPath()), "run ID %q", id)
	}
}

func TestFileStore_RunsWithoutBase(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "missing"))
	runs, err := store.Runs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}
