package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
tmdb:
  api_key: abc123
  language: de-DE
  timeout: 10s
cache:
  size: 32
  stale_time: 1m
ui:
  default_category: tv
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.TMDB.APIKey)
	assert.Equal(t, "de-DE", cfg.TMDB.Language)
	assert.Equal(t, 10*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL, "unset keys keep defaults")
	assert.Equal(t, 32, cfg.Cache.Size)
	assert.Equal(t, time.Minute, cfg.Cache.StaleTime)
	assert.Equal(t, "tv", cfg.UI.DefaultCategory)
	assert.Equal(t, "popular", cfg.UI.DefaultList)
	assert.True(t, cfg.IsConfigured())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tmdb:\n  api_key: from-file\n"), 0644))
	t.Setenv("FLICK_TMDB_API_KEY", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TMDB.APIKey)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.TMDB.APIKey = "saved-key"
	cfg.Cache.StaleTime = 90 * time.Second
	cfg.Storage.Dir = ""
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "saved-key", loaded.TMDB.APIKey)
	assert.Equal(t, 90*time.Second, loaded.Cache.StaleTime)
	assert.Equal(t, "", loaded.Storage.Dir)
}

func TestDefaultConfigNotConfigured(t *testing.T) {
	assert.False(t, DefaultConfig().IsConfigured())
}

func TestSaveAPIKeyKeepsOtherSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SaveAPIKey(path, "first"))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.TMDB.APIKey)

	cfg.UI.DefaultCategory = "tv"
	require.NoError(t, SaveConfig(cfg, path))

	require.NoError(t, SaveAPIKey(path, "second"))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "second", cfg.TMDB.APIKey)
	assert.Equal(t, "tv", cfg.UI.DefaultCategory)
}
