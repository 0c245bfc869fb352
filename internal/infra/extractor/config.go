package extractor

import (
	"fmt"
	"os"
	"strconv"
	"time"

	pkgconfig "medverify/pkg/config"
)

// Config holds the configuration for article extraction.
//
// Security settings:
//   - DenyPrivateIPs: blocks URLs resolving to private addresses (SSRF prevention)
//   - MaxBodySize: rejects oversized responses before they exhaust memory
//   - MaxRedirects: bounds redirect chains
//   - Timeout: bounds a single fetch
type Config struct {
	// Timeout is the maximum duration for a single HTTP request.
	// Default: 10s
	Timeout time.Duration

	// MaxBodySize is the maximum HTTP response body size in bytes.
	// Enforced while reading, not from the Content-Length header.
	// Default: 10485760 (10MB)
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Each redirect target is re-validated.
	// Default: 5
	MaxRedirects int

	// DenyPrivateIPs controls whether URLs resolving to private, loopback
	// or link-local addresses are rejected. Should always be true in
	// production.
	// Default: true
	DenyPrivateIPs bool
}

// DefaultConfig returns production-ready defaults for article extraction.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		MaxBodySize:    10 * 1024 * 1024,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
	}
}

// Validate checks that configuration values are valid and safe.
func (c *Config) Validate() error {
	if err := pkgconfig.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	minBodySize := int64(1024)
	maxBodySize := int64(100 * 1024 * 1024)
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	return nil
}

// LoadConfigFromEnv loads extraction configuration from environment variables,
// falling back to defaults for anything unset.
//
// Environment variables:
//   - ARTICLE_FETCH_TIMEOUT: duration string, e.g. "10s" (default: 10s)
//   - ARTICLE_FETCH_MAX_BODY_SIZE: integer in bytes (default: 10485760)
//   - ARTICLE_FETCH_MAX_REDIRECTS: integer (default: 5)
//   - ARTICLE_FETCH_DENY_PRIVATE_IPS: "true" or "false" (default: true)
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if val := os.Getenv("ARTICLE_FETCH_TIMEOUT"); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid ARTICLE_FETCH_TIMEOUT: %v (expected format: '10s', '1m')", err)
		}
		cfg.Timeout = parsed
	}

	if val := os.Getenv("ARTICLE_FETCH_MAX_BODY_SIZE"); val != "" {
		parsed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid ARTICLE_FETCH_MAX_BODY_SIZE: %v", err)
		}
		cfg.MaxBodySize = parsed
	}

	if val := os.Getenv("ARTICLE_FETCH_MAX_REDIRECTS"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid ARTICLE_FETCH_MAX_REDIRECTS: %v", err)
		}
		cfg.MaxRedirects = parsed
	}

	if val := os.Getenv("ARTICLE_FETCH_DENY_PRIVATE_IPS"); val != "" {
		cfg.DenyPrivateIPs = val == "true"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
