// Package config handles TOML-based configuration loading and validation.
// Values are read from the config file, then overridden by REELHUB_*
// environment variables, then by command line flags.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const appName = "reelhub"

// Storage backends for the watch history.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds all application configuration.
type Config struct {
	APIBaseURL  string `toml:"api_base_url" env:"REELHUB_API_BASE_URL"`
	Platform    string `toml:"platform" env:"REELHUB_PLATFORM"`
	ComicType   string `toml:"comic_type"`
	Player      string `toml:"player"`
	Storage     string `toml:"storage" env:"REELHUB_STORAGE"`
	History     bool   `toml:"history"`
	DownloadDir string `toml:"download_dir"`
	Listen      string `toml:"listen" env:"REELHUB_LISTEN"`
	Timeout     int    `toml:"timeout"` // HTTP timeout in seconds
	Debug       bool   `toml:"debug" env:"REELHUB_DEBUG"`
}

// Default returns the default configuration. The API base URL has no
// default and must be configured before anything is fetched.
func Default() *Config {
	return &Config{
		Platform:    "dramabox",
		ComicType:   "manga",
		Player:      "mpv",
		Storage:     StorageFile,
		History:     true,
		DownloadDir: "~/Videos/reelhub",
		Listen:      "127.0.0.1:8080",
		Timeout:     30,
		Debug:       false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file, merges it over the defaults and applies the
// environment overlay. A missing file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	validPlayers := map[string]bool{
		"mpv": true, "vlc": true, "iina": true, "celluloid": true,
	}
	if !validPlayers[strings.ToLower(c.Player)] {
		return fmt.Errorf("unsupported player %q (valid: mpv, vlc, iina, celluloid)", c.Player)
	}

	validStorage := map[string]bool{
		StorageFile: true, StorageSQLite: true, StorageMemory: true,
	}
	if !validStorage[strings.ToLower(c.Storage)] {
		return fmt.Errorf("unsupported storage %q (valid: file, sqlite, memory)", c.Storage)
	}

	if c.APIBaseURL != "" {
		u, err := url.Parse(c.APIBaseURL)
		if err != nil {
			return fmt.Errorf("malformed api_base_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("api_base_url must be http or https, got %q", c.APIBaseURL)
		}
		if u.Host == "" {
			return fmt.Errorf("api_base_url has no host")
		}
	}

	if c.Platform == "" {
		return fmt.Errorf("platform cannot be empty")
	}

	if c.Timeout < 1 || c.Timeout > 300 {
		return fmt.Errorf("timeout %d out of range (1-300 seconds)", c.Timeout)
	}

	return nil
}

// RequireAPI reports an error when no API base URL is configured.
func (c *Config) RequireAPI() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is not set (config file or REELHUB_API_BASE_URL)")
	}
	return nil
}

// ExpandDownloadDir resolves ~ in the download directory path.
func (c *Config) ExpandDownloadDir() (string, error) {
	dir := c.DownloadDir
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}

// DataDir returns the directory the watch history is stored in.
func DataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, appName), nil
}
