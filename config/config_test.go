package config

import (
	"log/slog"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range GetEnvVars() {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with defaults failed: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("expected default address 127.0.0.1, got %s", cfg.Address)
	}
	if cfg.Env != "dev" {
		t.Errorf("expected default env dev, got %s", cfg.Env)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.LogRetentionWeeks != 4 {
		t.Errorf("expected default retention 4 weeks, got %d", cfg.LogRetentionWeeks)
	}
	if cfg.ReleaseDir != "rrf" {
		t.Errorf("expected default release dir rrf, got %s", cfg.ReleaseDir)
	}
	if cfg.EnrichWorkers < 1 {
		t.Errorf("expected at least 1 enrichment worker, got %d", cfg.EnrichWorkers)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "prod")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RRF_DIR", "/data/rrf")
	t.Setenv("ENRICH_WORKERS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.Env != "prod" {
		t.Errorf("expected env prod, got %s", cfg.Env)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.ReleaseDir != "/data/rrf" {
		t.Errorf("expected release dir /data/rrf, got %s", cfg.ReleaseDir)
	}
	if cfg.EnrichWorkers != 8 {
		t.Errorf("expected 8 enrichment workers, got %d", cfg.EnrichWorkers)
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric port", "PORT", "abc"},
		{"privileged port", "PORT", "80"},
		{"port out of range", "PORT", "70000"},
		{"invalid address", "ADDRESS", "not-an-ip"},
		{"public address", "ADDRESS", "8.8.8.8"},
		{"unknown env", "ENV", "production"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
		{"negative retention", "LOG_RETENTION_WEEKS", "-1"},
		{"retention too large", "LOG_RETENTION_WEEKS", "100"},
		{"log file too small", "MAX_LOG_FILE_SIZE", "1024"},
		{"request body too large", "MAX_REQUEST_BODY", "209715200"},
		{"release dir whitespace", "RRF_DIR", "   "},
		{"zero workers", "ENRICH_WORKERS", "0"},
		{"too many workers", "ENRICH_WORKERS", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("expected validation error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		if got := cfg.SlogLevel(); got != tt.expected {
			t.Errorf("SlogLevel(%q) = %v, expected %v", tt.level, got, tt.expected)
		}
	}
}

func TestGetEnvVars(t *testing.T) {
	vars := GetEnvVars()
	if len(vars) != 10 {
		t.Errorf("expected 10 environment variables, got %d", len(vars))
	}
}
