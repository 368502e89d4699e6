package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "data/mixing/catalog.db", cfg.DBPath)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, 4, cfg.Search.MaxMixers)
	assert.Equal(t, 5, cfg.Search.Limit)
	assert.Equal(t, 1<<16, cfg.Search.CacheSize)
	assert.Zero(t, cfg.Search.Workers)
	assert.Zero(t, cfg.Search.MaxEvaluations)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
db_path: /tmp/test.db
verbose: true
search:
  max_mixers: 8
  limit: 10
  workers: 4
  max_evaluations: 500000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 8, cfg.Search.MaxMixers)
	assert.Equal(t, 10, cfg.Search.Limit)
	assert.Equal(t, 4, cfg.Search.Workers)
	assert.EqualValues(t, 500000, cfg.Search.MaxEvaluations)
	// Untouched fields keep their defaults.
	assert.Equal(t, 1<<16, cfg.Search.CacheSize)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "search: ["))
		assert.Error(t, err)
	})

	t.Run("non-positive max_mixers", func(t *testing.T) {
		_, err := Load(writeConfig(t, "search:\n  max_mixers: -1\n"))
		assert.Error(t, err)
	})

	t.Run("non-positive limit", func(t *testing.T) {
		_, err := Load(writeConfig(t, "search:\n  limit: -2\n"))
		assert.Error(t, err)
	})
}
