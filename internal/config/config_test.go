package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Player != "mpv" {
		t.Errorf("default player = %q, want mpv", cfg.Player)
	}
	if cfg.Platform != "dramabox" {
		t.Errorf("default platform = %q, want dramabox", cfg.Platform)
	}
	if cfg.Storage != StorageFile {
		t.Errorf("default storage = %q, want file", cfg.Storage)
	}
	if cfg.ComicType != "manga" {
		t.Errorf("default comic type = %q, want manga", cfg.ComicType)
	}
	if !cfg.History {
		t.Error("default history should be true")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"invalid player", func(c *Config) { c.Player = "notepad" }, true},
		{"invalid storage", func(c *Config) { c.Storage = "redis" }, true},
		{"ftp base url", func(c *Config) { c.APIBaseURL = "ftp://api.example.com" }, true},
		{"base url without host", func(c *Config) { c.APIBaseURL = "https://" }, true},
		{"empty platform", func(c *Config) { c.Platform = "" }, true},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, true},
		{"huge timeout", func(c *Config) { c.Timeout = 3600 }, true},
		{"valid vlc", func(c *Config) { c.Player = "vlc" }, false},
		{"valid sqlite", func(c *Config) { c.Storage = "sqlite" }, false},
		{"valid http base url", func(c *Config) { c.APIBaseURL = "http://localhost:3000/api" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func writeConfig(t *testing.T, content string) {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	dir := filepath.Join(tmpDir, "reelhub")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFromTOML(t *testing.T) {
	writeConfig(t, `
api_base_url = "https://api.example.com/api"
platform = "komik"
comic_type = "manhwa"
player = "vlc"
storage = "sqlite"
history = false
timeout = 10
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.APIBaseURL != "https://api.example.com/api" {
		t.Errorf("api_base_url = %q", cfg.APIBaseURL)
	}
	if cfg.Platform != "komik" {
		t.Errorf("platform = %q, want komik", cfg.Platform)
	}
	if cfg.ComicType != "manhwa" {
		t.Errorf("comic_type = %q, want manhwa", cfg.ComicType)
	}
	if cfg.Player != "vlc" {
		t.Errorf("player = %q, want vlc", cfg.Player)
	}
	if cfg.Storage != StorageSQLite {
		t.Errorf("storage = %q, want sqlite", cfg.Storage)
	}
	if cfg.Timeout != 10 {
		t.Errorf("timeout = %d, want 10", cfg.Timeout)
	}
	if cfg.History {
		t.Error("history should be false")
	}
	if cfg.Listen != "127.0.0.1:8080" {
		t.Errorf("unset keys should keep defaults, got listen = %q", cfg.Listen)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	writeConfig(t, `
api_base_url = "https://file.example.com"
platform = "komik"
`)
	t.Setenv("REELHUB_API_BASE_URL", "http://env.example.com")
	t.Setenv("REELHUB_STORAGE", "memory")
	t.Setenv("REELHUB_DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.APIBaseURL != "http://env.example.com" {
		t.Errorf("api_base_url = %q, want env value", cfg.APIBaseURL)
	}
	if cfg.Platform != "komik" {
		t.Errorf("platform = %q, file value should survive", cfg.Platform)
	}
	if cfg.Storage != StorageMemory {
		t.Errorf("storage = %q, want memory", cfg.Storage)
	}
	if !cfg.Debug {
		t.Error("debug should be true")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	writeConfig(t, `player = "notepad"`)

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject an invalid player")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}
	if cfg.Player != "mpv" {
		t.Errorf("missing file should return defaults, got player = %q", cfg.Player)
	}
}

func TestRequireAPI(t *testing.T) {
	cfg := Default()
	if err := cfg.RequireAPI(); err == nil {
		t.Error("RequireAPI() should fail without a base URL")
	}
	cfg.APIBaseURL = "https://api.example.com"
	if err := cfg.RequireAPI(); err != nil {
		t.Errorf("RequireAPI() error: %v", err)
	}
}

func TestExpandDownloadDir(t *testing.T) {
	cfg := Default()
	cfg.DownloadDir = "/tmp/test-downloads"

	dir, err := cfg.ExpandDownloadDir()
	if err != nil {
		t.Fatalf("ExpandDownloadDir() error: %v", err)
	}
	if dir != "/tmp/test-downloads" {
		t.Errorf("got %q, want /tmp/test-downloads", dir)
	}
}

func TestDataDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir() error: %v", err)
	}
	if want := filepath.Join(tmp, "reelhub"); dir != want {
		t.Errorf("got %q, want %q", dir, want)
	}
}
