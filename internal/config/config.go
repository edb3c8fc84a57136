// Package config loads and saves the application configuration from
// ~/.config/adlens/config.yaml with ADLENS_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Search   SearchConfig   `mapstructure:"search"`
	Activity ActivityConfig `mapstructure:"activity"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds backend connection configuration
type ServerConfig struct {
	URL string `mapstructure:"url"`
}

// SearchConfig holds search session configuration
type SearchConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// ActivityConfig holds notification panel configuration
type ActivityConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "",
		},
		Search: SearchConfig{
			PageSize: 20,
		},
		Activity: ActivityConfig{
			PollInterval: 60 * time.Second,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	cfg := Default()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(ConfigDir())
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("ADLENS")
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

// Save writes the configuration to the config file
func Save(cfg *Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("server.url", cfg.Server.URL)
	viper.Set("search.page_size", cfg.Search.PageSize)
	viper.Set("activity.poll_interval", cfg.Activity.PollInterval.String())
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the backend URL is set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != ""
}

// ConfigDir returns the config directory path for the current OS
func ConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "adlens")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "adlens")
	}
}

// CredentialsPath returns the token file path
func CredentialsPath() string {
	return filepath.Join(ConfigDir(), "credentials.json")
}

// CacheDir returns the cache directory path for the current OS
func CacheDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "adlens", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "adlens", "cache")
	}
}

func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "adlens", "adlens.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "adlens", "adlens.log")
	}
}
