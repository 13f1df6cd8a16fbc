package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port     string
	LogLevel string

	// Page server connection. Empty URL disables inclusion and page jobs.
	PagesRootURL string
	PagesAPIKey  string
	FetchTimeout time.Duration
	FetchRetries int

	// Inclusion
	ResolveIncludes bool
	IncludeMaxDepth int

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port:     envOr("PORT", "8090"),
		LogLevel: envOr("LOG_LEVEL", "info"),

		PagesRootURL: os.Getenv("PAGES_ROOT_URL"),
		PagesAPIKey:  os.Getenv("PAGES_API_KEY"),
		FetchTimeout: envDuration("FETCH_TIMEOUT", 15*time.Second),
		FetchRetries: envInt("FETCH_RETRIES", 3),

		ResolveIncludes: envBool("RESOLVE_INCLUDES", true),
		IncludeMaxDepth: envInt("INCLUDE_MAX_DEPTH", 4),

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 50),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 15 * time.Second
	}
	if cfg.FetchRetries <= 0 {
		cfg.FetchRetries = 1
	}
	if cfg.IncludeMaxDepth < 0 {
		cfg.IncludeMaxDepth = 4
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.PagesRootURL != "" {
		u, err := url.Parse(c.PagesRootURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("PAGES_ROOT_URL must be an http(s) URL, got %q", c.PagesRootURL)
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// PagesEnabled reports whether a page server is configured.
func (c Config) PagesEnabled() bool {
	return c.PagesRootURL != ""
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
