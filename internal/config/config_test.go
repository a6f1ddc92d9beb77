package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8099" {
		t.Fatalf("unexpected default addr: %q", cfg.Server.Addr)
	}
	if cfg.FetchTimeout() != 15*time.Second {
		t.Fatalf("unexpected default fetch timeout: %s", cfg.FetchTimeout())
	}
	if cfg.Remote.Enabled {
		t.Fatal("remote should default to disabled")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9000"
data_dir: "/tmp/hk"
remote:
  enabled: true
  base_url: "https://script.example.com/exec"
  token: "secret"
sync:
  fetch_timeout_seconds: 30
  auto_refresh_minutes: 10
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9000" || cfg.DataDir != "/tmp/hk" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if !cfg.Remote.Enabled || cfg.Remote.BaseURL != "https://script.example.com/exec" {
		t.Fatalf("remote config not applied: %+v", cfg.Remote)
	}
	if cfg.FetchTimeout() != 30*time.Second || cfg.Sync.AutoRefreshMinutes != 10 {
		t.Fatalf("sync config not applied: %+v", cfg.Sync)
	}
	// Unset keys keep their defaults.
	if cfg.Server.StaticDir != "./static" {
		t.Fatalf("default static dir lost: %q", cfg.Server.StaticDir)
	}
}

func TestLoadRejectsEnabledRemoteWithoutURL(t *testing.T) {
	path := writeConfig(t, `
remote:
  enabled: true
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
