package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != "8000" {
		t.Errorf("port = %s, want 8000", cfg.Server.Port)
	}
	if cfg.Assistant.URL != "" {
		t.Errorf("assistant url should default empty, got %s", cfg.Assistant.URL)
	}
	if cfg.Assistant.ContextNodes != 20 {
		t.Errorf("context nodes = %d, want 20", cfg.Assistant.ContextNodes)
	}
	if cfg.Storage.Path != "./data" {
		t.Errorf("storage path = %s, want ./data", cfg.Storage.Path)
	}
	if !cfg.RateLimit.Enabled {
		t.Error("rate limit should default enabled")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("ASSISTANT_URL", "http://assistant.internal/interpret")
	t.Setenv("ASSISTANT_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9001" {
		t.Errorf("port = %s, want 9001", cfg.Server.Port)
	}
	if cfg.Assistant.URL != "http://assistant.internal/interpret" {
		t.Errorf("assistant url = %s", cfg.Assistant.URL)
	}
	if cfg.Assistant.Timeout != 3*time.Second {
		t.Errorf("timeout = %s, want 3s", cfg.Assistant.Timeout)
	}
}

func TestLoadFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	body := `
[server]
port = "7777"

[assistant]
app_name = "Bakery Builder"
industry = "food"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if cfg.Server.Port != "7777" {
		t.Errorf("port = %s, want 7777", cfg.Server.Port)
	}
	if cfg.Assistant.AppName != "Bakery Builder" {
		t.Errorf("app name = %s", cfg.Assistant.AppName)
	}
	// Values the file omits keep their defaults.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host = %s, want default", cfg.Server.Host)
	}
	if cfg.RateLimit.Burst != 200 {
		t.Errorf("burst = %d, want default 200", cfg.RateLimit.Burst)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/engine.toml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestAddr(t *testing.T) {
	cfg := Default()
	if got := cfg.Server.Addr(); got != "0.0.0.0:8000" {
		t.Errorf("addr = %s", got)
	}
}
