package api

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds tutor backend connection settings.
type Config struct {
	// BaseURL is the root of the tutor backend API.
	BaseURL string

	// Timeout is the maximum duration for a single request.
	// Default: 60s — hint and solution generation are LLM-backed and slow.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8000",
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling
// back to defaults for unset values.
//
//	GEOTUTOR_SERVER          base URL of the backend
//	GEOTUTOR_TIMEOUT_SECONDS per-request timeout
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if u := os.Getenv("GEOTUTOR_SERVER"); u != "" {
		cfg.BaseURL = u
	}
	if t := os.Getenv("GEOTUTOR_TIMEOUT_SECONDS"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}

	return cfg
}

// Validate checks that the base URL is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid GEOTUTOR_SERVER %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("GEOTUTOR_SERVER must be http or https, got %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
