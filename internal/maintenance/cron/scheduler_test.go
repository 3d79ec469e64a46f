package cronjob

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeAged(t *testing.T, dir, name string, age time.Duration) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
}

func TestRunCleanupRemovesOnlyAgedExports(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, dir, "old.gexf", 48*time.Hour)
	writeAged(t, dir, "old.gexf.gz", 48*time.Hour)
	writeAged(t, dir, "fresh.gexf", time.Hour)
	writeAged(t, dir, "notes.txt", 48*time.Hour)

	s := NewScheduler(dir, 1, zap.NewNop())
	assert.Equal(t, 2, s.RunCleanup())

	assert.NoFileExists(t, filepath.Join(dir, "old.gexf"))
	assert.NoFileExists(t, filepath.Join(dir, "old.gexf.gz"))
	assert.FileExists(t, filepath.Join(dir, "fresh.gexf"))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestRunCleanupMissingDir(t *testing.T) {
	s := NewScheduler(filepath.Join(t.TempDir(), "absent"), 1, zap.NewNop())
	assert.Zero(t, s.RunCleanup())
}

func TestRunCleanupDisabledRetention(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, dir, "old.gexf", 48*time.Hour)

	s := NewScheduler(dir, 0, zap.NewNop())
	assert.Zero(t, s.RunCleanup())
	assert.FileExists(t, filepath.Join(dir, "old.gexf"))
}
