package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the duration of the test, restoring the previous
// working directory on cleanup. Equivalent to t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/Game", cfg.Scan.Scope)
	assert.True(t, cfg.Scan.Recursive)
	assert.Equal(t, 50, cfg.Scan.ConcurrencyPercent)
	assert.Equal(t, "/Game/_ARCHIVE", cfg.Archive.Root)
	assert.Equal(t, "name", cfg.Unify.GroupBy)
	assert.Empty(t, cfg.Prefix.Rules)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
scan:
  scope: /Game/Props
  concurrency: 4
archive:
  root: /Game/Attic
unify:
  group_by: name_type
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".curator.yaml"), content, 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/Game/Props", cfg.Scan.Scope)
	assert.Equal(t, 4, cfg.Scan.Concurrency)
	assert.Equal(t, "/Game/Attic", cfg.Archive.Root)
	assert.Equal(t, "name_type", cfg.Unify.GroupBy)
	// Untouched keys keep their defaults.
	assert.True(t, cfg.Scan.Recursive)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".curator.yaml"), []byte("scan:\n  scope: /Game/FromFile\n"), 0o644))
	chdir(t, dir)
	t.Setenv("CURATOR_SCAN_SCOPE", "/Game/FromEnv")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/Game/FromEnv", cfg.Scan.Scope)
}
