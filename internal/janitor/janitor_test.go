package janitor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/slidelens/slidelens/internal/core/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "tmp")
	old := time.Now().Add(-2 * time.Hour)

	for _, name := range []string{runner.TEMP_DIR_PREFIX + "old", runner.TEMP_DIR_PREFIX + "fresh", "foreign"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, name), 0700))
	}
	require.NoError(t, os.Chtimes(filepath.Join(root, runner.TEMP_DIR_PREFIX+"old"), old, old))
	require.NoError(t, os.Chtimes(filepath.Join(root, "foreign"), old, old))

	j, err := New(base, "@every 1h", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 1, j.Sweep())
	assert.NoDirExists(t, filepath.Join(root, runner.TEMP_DIR_PREFIX+"old"))
	assert.DirExists(t, filepath.Join(root, runner.TEMP_DIR_PREFIX+"fresh"))
	assert.DirExists(t, filepath.Join(root, "foreign"))
}

func TestSweepMissingRoot(t *testing.T) {
	j, err := New(t.TempDir(), "@every 1h", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, j.Sweep())
}

func TestInvalidSchedule(t *testing.T) {
	_, err := New(t.TempDir(), "not a schedule", time.Hour)
	assert.Error(t, err)
}

func TestStartStop(t *testing.T) {
	j, err := New(t.TempDir(), "@every 1h", time.Hour)
	require.NoError(t, err)
	j.Start()
	j.Stop()
}
