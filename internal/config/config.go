// Package config provides environment-driven configuration for hostgraph.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	DatabaseURL Secret
	DBMaxConns  int
	Port        string
	MetricsPort string
	ListenHost  string
	CORSOrigins []string
	LogLevel    string

	APIKeys      []Secret
	AuthDisabled bool

	MaxTraversalDepth   int
	DefaultDepth        int
	TraversalPathBudget int
	TraversalTimeout    time.Duration
	TraversalWorkers    int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:  Secret(envOrDefault("DATABASE_URL", "")),
		Port:         envOrDefault("PORT", "3030"),
		MetricsPort:  envOrDefault("METRICS_PORT", "9091"),
		ListenHost:   envOrDefault("LISTEN_HOST", "127.0.0.1"),
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
		AuthDisabled: envOrDefault("AUTH_DISABLED", "false") == "true",
	}

	var err error

	ints := []struct {
		dst      *int
		key, def string
		min, max int
	}{
		{&cfg.DBMaxConns, "DB_MAX_CONNS", "10", 1, 200},
		{&cfg.MaxTraversalDepth, "MAX_TRAVERSAL_DEPTH", "6", 1, 12},
		{&cfg.DefaultDepth, "DEFAULT_TRAVERSAL_DEPTH", "3", 1, 12},
		{&cfg.TraversalPathBudget, "TRAVERSAL_PATH_BUDGET", "200000", 1, 50_000_000},
		{&cfg.TraversalWorkers, "TRAVERSAL_WORKERS", "4", 1, 64},
	}

	for _, v := range ints {
		if *v.dst, err = envInt(v.key, v.def, v.min, v.max); err != nil {
			return nil, err
		}
	}

	cfg.TraversalTimeout, err = time.ParseDuration(envOrDefault("TRAVERSAL_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("TRAVERSAL_TIMEOUT must be a duration: %w", err)
	}

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:3000")
	cfg.CORSOrigins = splitList(origins)

	for _, k := range splitList(os.Getenv("API_KEYS")) {
		cfg.APIKeys = append(cfg.APIKeys, Secret(k))
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// MetricsAddr returns the metrics listen address in host:port format.
func (c *Config) MetricsAddr() string {
	return c.ListenHost + ":" + c.MetricsPort
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envInt(key, fallback string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(envOrDefault(key, fallback))
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("%s must be an integer between %d and %d", key, lo, hi)
	}

	return n, nil
}

func splitList(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}

	return out
}
