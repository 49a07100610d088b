package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Storage StorageConfig `mapstructure:"storage"`
	Player  PlayerConfig  `mapstructure:"player"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds metadata service configuration
type TMDBConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Language string        `mapstructure:"language"` // e.g., "en-US"
	Timeout  time.Duration `mapstructure:"timeout"`  // 0 = transport default
}

// CacheConfig holds query cache configuration
type CacheConfig struct {
	Size      int           `mapstructure:"size"`       // Max cached queries
	StaleTime time.Duration `mapstructure:"stale_time"` // Age after which a query refetches
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultCategory string `mapstructure:"default_category"` // "movie" or "tv"
	DefaultList     string `mapstructure:"default_list"`     // e.g., "popular"
	CellWidthPx     int    `mapstructure:"cell_width_px"`    // Logical pixels per terminal column
}

// StorageConfig holds preference storage configuration
type StorageConfig struct {
	Dir string `mapstructure:"dir"` // Empty = memory only
}

// PlayerConfig holds trailer player configuration
type PlayerConfig struct {
	Command string   `mapstructure:"command"` // Empty = auto-detect
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:  "https://api.themoviedb.org/3",
			Language: "en-US",
		},
		Cache: CacheConfig{
			Size:      128,
			StaleTime: 5 * time.Minute,
		},
		UI: UIConfig{
			DefaultCategory: "movie",
			DefaultList:     "popular",
			CellWidthPx:     8,
		},
		Storage: StorageConfig{
			Dir: defaultDataPath(),
		},
		Logging: LoggingConfig{
			File:  DefaultLogFile(),
			Level: "INFO",
		},
	}
}

// DefaultLogFile returns where logs go when no file is configured
func DefaultLogFile() string {
	return filepath.Join(defaultDataPath(), "flick.log")
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "flick")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "flick")
	}
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "flick")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "flick")
	}
}

func newViper(cfg *Config) *viper.Viper {
	v := viper.New()

	// Defaults double as the key registry AutomaticEnv needs for Unmarshal
	v.SetDefault("tmdb.api_key", cfg.TMDB.APIKey)
	v.SetDefault("tmdb.base_url", cfg.TMDB.BaseURL)
	v.SetDefault("tmdb.language", cfg.TMDB.Language)
	v.SetDefault("tmdb.timeout", cfg.TMDB.Timeout)
	v.SetDefault("cache.size", cfg.Cache.Size)
	v.SetDefault("cache.stale_time", cfg.Cache.StaleTime)
	v.SetDefault("ui.default_category", cfg.UI.DefaultCategory)
	v.SetDefault("ui.default_list", cfg.UI.DefaultList)
	v.SetDefault("ui.cell_width_px", cfg.UI.CellWidthPx)
	v.SetDefault("storage.dir", cfg.Storage.Dir)
	v.SetDefault("player.command", cfg.Player.Command)
	v.SetDefault("player.args", cfg.Player.Args)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	// Environment variable overrides (FLICK_TMDB_API_KEY, ...)
	v.SetEnvPrefix("FLICK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig loads configuration from file and environment.
// An empty path searches the default config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to path, or to the default config file when path is empty
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(DefaultConfigPath(), "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("tmdb.api_key", cfg.TMDB.APIKey)
	v.Set("tmdb.base_url", cfg.TMDB.BaseURL)
	v.Set("tmdb.language", cfg.TMDB.Language)
	v.Set("tmdb.timeout", cfg.TMDB.Timeout.String())
	v.Set("cache.size", cfg.Cache.Size)
	v.Set("cache.stale_time", cfg.Cache.StaleTime.String())
	v.Set("ui.default_category", cfg.UI.DefaultCategory)
	v.Set("ui.default_list", cfg.UI.DefaultList)
	v.Set("ui.cell_width_px", cfg.UI.CellWidthPx)
	v.Set("storage.dir", cfg.Storage.Dir)
	v.Set("player.command", cfg.Player.Command)
	v.Set("player.args", cfg.Player.Args)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return c.TMDB.APIKey != ""
}

// SaveAPIKey stores key in the config file at path, keeping every other
// setting already there
func SaveAPIKey(path, key string) error {
	if path == "" {
		path = filepath.Join(DefaultConfigPath(), "config.yaml")
	}

	cfg := DefaultConfig()
	if _, err := os.Stat(path); err == nil {
		loaded, err := LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.TMDB.APIKey = key
	return SaveConfig(cfg, path)
}
