package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "PAGES_ROOT_URL", "FETCH_TIMEOUT", "WORKER_COUNT", "INCLUDE_MAX_DEPTH", "RESOLVE_INCLUDES", "MAX_UPLOAD_BYTES"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected port %q, got %q", "8090", cfg.Port)
	}
	if cfg.FetchTimeout != 15*time.Second {
		t.Errorf("expected fetch timeout 15s, got %s", cfg.FetchTimeout)
	}
	if cfg.WorkerCount != 2 || cfg.IncludeMaxDepth != 4 || !cfg.ResolveIncludes {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Errorf("expected 10MB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.PagesEnabled() {
		t.Error("expected pages disabled without PAGES_ROOT_URL")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PAGES_ROOT_URL", "https://pages.example.org/pages")
	t.Setenv("FETCH_TIMEOUT", "2s")
	t.Setenv("WORKER_COUNT", "-3")
	t.Setenv("RESOLVE_INCLUDES", "false")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("INCLUDE_MAX_DEPTH", "not-a-number")

	cfg := Load()
	if cfg.FetchTimeout != 2*time.Second {
		t.Errorf("expected 2s, got %s", cfg.FetchTimeout)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("expected non-positive worker count to fall back to 2, got %d", cfg.WorkerCount)
	}
	if cfg.ResolveIncludes {
		t.Error("expected includes disabled")
	}
	if cfg.IncludeMaxDepth != 4 {
		t.Errorf("expected unparsable depth to fall back to 4, got %d", cfg.IncludeMaxDepth)
	}
	if !cfg.PagesEnabled() {
		t.Error("expected pages enabled")
	}
	level, err := cfg.Level()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("expected debug level, got %v (%v)", level, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"minimal", Config{LogLevel: "info"}, false},
		{"bad url", Config{LogLevel: "info", PagesRootURL: "ftp://x"}, true},
		{"relative url", Config{LogLevel: "info", PagesRootURL: "/pages"}, true},
		{"bad level", Config{LogLevel: "loud"}, true},
		{"warn level", Config{LogLevel: "WARN", PagesRootURL: "http://localhost:8080"}, false},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: expected error=%v, got %v", tt.name, tt.wantErr, err)
		}
	}
}
