package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteDocument writes a Synfig document into a temporary directory and
// returns its absolute path. It fails the test immediately on error.
func WriteDocument(t *testing.T, name, content string) string {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join(t.TempDir(), name))
	require.NoError(t, err, "Failed to get absolute path for temp dir")
	require.NoError(t, os.WriteFile(absPath, []byte(content), 0o644), "Failed to write document")

	return absPath
}
