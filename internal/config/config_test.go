package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != "localhost:5001" {
		t.Errorf("Addr = %q, want localhost:5001", cfg.Server.Addr)
	}
	if cfg.Market.USDTWDRate != 32.5 {
		t.Errorf("USDTWDRate = %v, want 32.5", cfg.Market.USDTWDRate)
	}
	if cfg.Scheduler.Schedule != "5 0 * * *" || !cfg.Scheduler.Enabled {
		t.Errorf("unexpected scheduler defaults: %+v", cfg.Scheduler)
	}
	if cfg.Session.TTL.Duration != 12*time.Hour {
		t.Errorf("Session TTL = %v, want 12h", cfg.Session.TTL)
	}
}

// WHY: Environment variables override the TOML file, which overrides the defaults.
func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "nexus.toml")
	content := `
[server]
port = "8080"

[market]
usd_twd_rate = 30.0

[yahoo]
timeout = "3s"
rate_limit = 5.0
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("USD_TWD_RATE", "31.25")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SNAPSHOT_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != "localhost:8080" {
		t.Errorf("Addr = %q, want localhost:8080", cfg.Server.Addr)
	}
	if cfg.Market.USDTWDRate != 31.25 {
		t.Errorf("USDTWDRate = %v, want 31.25", cfg.Market.USDTWDRate)
	}
	if cfg.Yahoo.Timeout.Duration != 3*time.Second || cfg.Yahoo.RateLimit != 5 {
		t.Errorf("unexpected yahoo config: %+v", cfg.Yahoo)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Scheduler.Enabled {
		t.Error("scheduler should be disabled")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		key, value string
	}{
		{"USD_TWD_RATE", "abc"},
		{"SESSION_TTL", "forever"},
		{"SNAPSHOT_ENABLED", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
