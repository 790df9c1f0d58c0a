package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

func (c *Config) validate() error {
	for _, check := range []func() error{
		c.validateDatabase,
		c.validateNetwork,
		c.validateCORS,
		c.validateAuth,
		c.validateTraversal,
	} {
		if err := check(); err != nil {
			return err
		}
	}

	return nil
}

func (c *Config) validateDatabase() error {
	if c.DatabaseURL.Value() == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	dbURL, err := url.Parse(c.DatabaseURL.Value())
	if err != nil {
		return fmt.Errorf("DATABASE_URL is not a valid URL: %w", err)
	}

	if dbURL.Scheme != "postgres" && dbURL.Scheme != "postgresql" {
		return fmt.Errorf("DATABASE_URL scheme must be postgres:// or postgresql://")
	}

	if dbURL.Hostname() == "" {
		return fmt.Errorf("DATABASE_URL must include a host")
	}

	dbHost := dbURL.Hostname()
	if !isLoopback(dbHost) && dbURL.Query().Get("sslmode") == "disable" {
		return fmt.Errorf("DATABASE_URL sslmode=disable is not allowed for non-local host %q", dbHost)
	}

	return nil
}

// listenHosts are the accepted LISTEN_HOST values: loopback for local
// deployments, unspecified addresses for containers.
var listenHosts = map[string]bool{
	"127.0.0.1": true,
	"::1":       true,
	"localhost": true,
	"0.0.0.0":   true,
	"::":        true,
}

func parsePort(name, value string) (int, error) {
	port, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", name, err)
	}

	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("%s must be between 1 and 65535, got %d", name, port)
	}

	return port, nil
}

func (c *Config) validateNetwork() error {
	apiPort, err := parsePort("PORT", c.Port)
	if err != nil {
		return err
	}

	metricsPort, err := parsePort("METRICS_PORT", c.MetricsPort)
	if err != nil {
		return err
	}

	if apiPort == metricsPort {
		return fmt.Errorf("METRICS_PORT must differ from PORT (both %d)", apiPort)
	}

	if !listenHosts[c.ListenHost] {
		return fmt.Errorf("LISTEN_HOST must be a loopback address or 0.0.0.0/:: (got %q)", c.ListenHost)
	}

	return nil
}

func (c *Config) validateCORS() error {
	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS must not contain wildcard '*'")
		}
		if strings.ContainsAny(origin, "*?[]") {
			return fmt.Errorf("CORS_ORIGINS must not contain glob characters (*?[]), got %q", origin)
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("CORS_ORIGINS contains invalid origin %q (must have scheme and host)", origin)
		}
	}

	return nil
}

func (c *Config) validateAuth() error {
	if len(c.APIKeys) == 0 && !c.AuthDisabled {
		return fmt.Errorf("API_KEYS is required unless AUTH_DISABLED=true")
	}

	for i, k := range c.APIKeys {
		if len(k.Value()) < 16 {
			return fmt.Errorf("API_KEYS entry %d must be at least 16 characters", i)
		}
	}

	return nil
}

func (c *Config) validateTraversal() error {
	if c.DefaultDepth > c.MaxTraversalDepth {
		return fmt.Errorf("DEFAULT_TRAVERSAL_DEPTH (%d) must not exceed MAX_TRAVERSAL_DEPTH (%d)", c.DefaultDepth, c.MaxTraversalDepth)
	}

	if c.TraversalTimeout < 100*time.Millisecond || c.TraversalTimeout > 5*time.Minute {
		return fmt.Errorf("TRAVERSAL_TIMEOUT must be between 100ms and 5m, got %s", c.TraversalTimeout)
	}

	return nil
}

func isLoopback(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}
