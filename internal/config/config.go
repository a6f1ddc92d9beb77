// Package config loads the service configuration from an optional YAML
// file, applying defaults for anything unset.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"static_dir"`
}

// RemoteConfig holds spreadsheet API settings. When Enabled is false or
// BaseURL is empty the local-fallback store is used instead.
type RemoteConfig struct {
	Enabled        bool   `yaml:"enabled"`
	BaseURL        string `yaml:"base_url"`
	Token          string `yaml:"token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SyncConfig holds fetch and refresh settings.
type SyncConfig struct {
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
	AutoRefreshMinutes  int `yaml:"auto_refresh_minutes"`
}

// Config is the root configuration.
type Config struct {
	Server  ServerConfig `yaml:"server"`
	DataDir string       `yaml:"data_dir"`
	Remote  RemoteConfig `yaml:"remote"`
	Sync    SyncConfig   `yaml:"sync"`
}

// Default returns the configuration used when no file is provided.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:      ":8099",
			StaticDir: "./static",
		},
		DataDir: "/data",
		Remote: RemoteConfig{
			TimeoutSeconds: 30,
		},
		Sync: SyncConfig{
			FetchTimeoutSeconds: 15,
			AutoRefreshMinutes:  5,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Sync.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("sync.fetch_timeout_seconds must be positive")
	}
	if c.Remote.Enabled && c.Remote.BaseURL == "" {
		return fmt.Errorf("remote.base_url is required when remote is enabled")
	}
	return nil
}

// FetchTimeout returns the fetch ceiling as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Sync.FetchTimeoutSeconds) * time.Second
}

// RemoteTimeout returns the spreadsheet client timeout as a duration.
func (c *Config) RemoteTimeout() time.Duration {
	return time.Duration(c.Remote.TimeoutSeconds) * time.Second
}
