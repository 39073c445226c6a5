package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/tvshelf/internal/domain"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	TMDB        TMDBConfig        `mapstructure:"tmdb"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
	UI          UIConfig          `mapstructure:"ui"`
	Logging     LoggingConfig     `mapstructure:"logging"`

	path string // File the config was read from or will be written to
}

// TMDBConfig holds metadata service configuration
type TMDBConfig struct {
	APIKey   string        `mapstructure:"api_key"` // v3 key or v4 read access token
	BaseURL  string        `mapstructure:"base_url"`
	Language string        `mapstructure:"language"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Retries  uint          `mapstructure:"retries"`
}

// StorageConfig holds local persistence configuration
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // "bolt", "sqlite" or "memory"
	Path   string `mapstructure:"path"`   // Directory holding the database file
}

// PreferencesConfig holds user preferences
type PreferencesConfig struct {
	CurrShow            int    `mapstructure:"curr_show"`             // Preferred show id, 0 = unset
	CurrShowSeason      int    `mapstructure:"curr_show_season"`      // Preferred season number, -1 = unset
	RecentFailurePolicy string `mapstructure:"recent_failure_policy"` // "drop" or "placeholder"
}

// UIConfig holds UI configuration
type UIConfig struct {
	TrendingThreshold int `mapstructure:"trending_threshold"` // Show trending when recent count <= this
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:  "https://api.themoviedb.org/3",
			Language: "en-US",
			Timeout:  15 * time.Second,
			Retries:  3,
		},
		Storage: StorageConfig{
			Driver: "bolt",
			Path:   defaultDataPath(),
		},
		Preferences: PreferencesConfig{
			CurrShowSeason:      -1,
			RecentFailurePolicy: "drop",
		},
		UI: UIConfig{
			TrendingThreshold: 5,
		},
		Logging: LoggingConfig{
			File:       filepath.Join(defaultDataPath(), "tvshelf.log"),
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		path: filepath.Join(defaultConfigPath(), "config.yaml"),
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tvshelf")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tvshelf")
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "tvshelf")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "tvshelf")
	}
}

// Load reads configuration from configFile (or the default location when
// empty) and the environment. A missing file is not an error.
func Load(configFile string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if configFile != "" {
		v.SetConfigFile(configFile)
		cfg.path = configFile
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// newViper returns a viper instance seeded with cfg as defaults and
// TVSHELF_* environment overrides (TVSHELF_TMDB_API_KEY -> tmdb.api_key)
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	for key, value := range cfg.values() {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix("TVSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// values flattens the config into viper keys. Keys are set one by one so
// the written file uses snake_case names.
func (c *Config) values() map[string]any {
	return map[string]any{
		"tmdb.api_key":                      c.TMDB.APIKey,
		"tmdb.base_url":                     c.TMDB.BaseURL,
		"tmdb.language":                     c.TMDB.Language,
		"tmdb.timeout":                      c.TMDB.Timeout,
		"tmdb.retries":                      c.TMDB.Retries,
		"storage.driver":                    c.Storage.Driver,
		"storage.path":                      c.Storage.Path,
		"preferences.curr_show":             c.Preferences.CurrShow,
		"preferences.curr_show_season":      c.Preferences.CurrShowSeason,
		"preferences.recent_failure_policy": c.Preferences.RecentFailurePolicy,
		"ui.trending_threshold":             c.UI.TrendingThreshold,
		"logging.file":                      c.Logging.File,
		"logging.level":                     c.Logging.Level,
		"logging.max_size_mb":               c.Logging.MaxSizeMB,
		"logging.max_backups":               c.Logging.MaxBackups,
	}
}

// SaveConfig writes the configuration back to the file it was loaded from
func SaveConfig(cfg *Config) error {
	configFile := cfg.Path()
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	for key, value := range cfg.values() {
		v.Set(key, value)
	}
	v.Set("tmdb.timeout", cfg.TMDB.Timeout.String())

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Path returns the config file location
func (c *Config) Path() string {
	if c.path == "" {
		return filepath.Join(defaultConfigPath(), "config.yaml")
	}
	return c.path
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.TMDB.APIKey) != ""
}

// ToPreferences returns the preferred show and season
func (c *Config) ToPreferences() domain.Preferences {
	return domain.Preferences{
		CurrShow:       c.Preferences.CurrShow,
		CurrShowSeason: c.Preferences.CurrShowSeason,
	}
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
