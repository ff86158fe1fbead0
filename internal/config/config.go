package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BackendConfig holds catalog backend configuration
type BackendConfig struct {
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"` // saved session token, may be empty
}

// TMDBConfig holds the third-party metadata API configuration
type TMDBConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// CatalogConfig holds browsing preferences
type CatalogConfig struct {
	PageSize   int `mapstructure:"page_size"`
	DebounceMs int `mapstructure:"debounce_ms"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{},
		TMDB: TMDBConfig{
			BaseURL: "https://api.themoviedb.org/3",
		},
		Catalog: CatalogConfig{
			PageSize:   20,
			DebounceMs: 500,
		},
		UI: UIConfig{
			Theme: "default",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee", "marquee.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee", "marquee.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// DefaultCachePath returns the cache directory for the current OS
func DefaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "marquee", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee", "cache")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("MARQUEE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("backend.url", cfg.Backend.URL)
	viper.Set("backend.token", cfg.Backend.Token)
	viper.Set("tmdb.api_key", cfg.TMDB.APIKey)
	viper.Set("tmdb.base_url", cfg.TMDB.BaseURL)
	viper.Set("catalog.page_size", cfg.Catalog.PageSize)
	viper.Set("catalog.debounce_ms", cfg.Catalog.DebounceMs)
	viper.Set("ui.theme", cfg.UI.Theme)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveToken updates just the saved session token
func SaveToken(token string) error {
	viper.Set("backend.token", token)

	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the backend URL is set
func (c *Config) IsConfigured() bool {
	return c.Backend.URL != ""
}
