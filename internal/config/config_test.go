package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/tvshelf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "bolt", cfg.Storage.Driver)
	assert.Equal(t, "en-US", cfg.TMDB.Language)
	assert.Equal(t, 15*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, uint(3), cfg.TMDB.Retries)
	assert.Equal(t, -1, cfg.Preferences.CurrShowSeason)
	assert.Equal(t, "drop", cfg.Preferences.RecentFailurePolicy)
	assert.Equal(t, 5, cfg.UI.TrendingThreshold)
	assert.False(t, cfg.IsConfigured())
	assert.False(t, cfg.ToPreferences().IsSet())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tmdb:
  api_key: abc123
  timeout: 5s
storage:
  driver: sqlite
preferences:
  curr_show: 1399
  curr_show_season: 0
  recent_failure_policy: placeholder
ui:
  trending_threshold: 8
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsConfigured())
	assert.Equal(t, 5*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "placeholder", cfg.Preferences.RecentFailurePolicy)
	assert.Equal(t, 8, cfg.UI.TrendingThreshold)
	assert.Equal(t, domain.Preferences{CurrShow: 1399, CurrShowSeason: 0}, cfg.ToPreferences())
	assert.True(t, cfg.ToPreferences().IsSet())
	// untouched keys keep defaults
	assert.Equal(t, "en-US", cfg.TMDB.Language)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TVSHELF_TMDB_API_KEY", "from-env")
	t.Setenv("TVSHELF_STORAGE_DRIVER", "memory")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TMDB.APIKey)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tmdb: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.TMDB.APIKey = "saved-key"
	cfg.Preferences.CurrShow = 42
	cfg.Preferences.CurrShowSeason = 3

	require.NoError(t, SaveConfig(cfg))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "saved-key", reloaded.TMDB.APIKey)
	assert.Equal(t, 15*time.Second, reloaded.TMDB.Timeout)
	assert.Equal(t, domain.Preferences{CurrShow: 42, CurrShowSeason: 3}, reloaded.ToPreferences())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/logs/tvshelf.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "tvshelf.log"), got)

	got, err = ExpandPath("/var/log/x.log")
	require.NoError(t, err)
	assert.Equal(t, "/var/log/x.log", got)
}
