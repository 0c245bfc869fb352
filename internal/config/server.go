// Package config holds the application configuration, loaded from
// environment variables with sensible defaults. Provider credentials
// are optional: a missing key disables that provider and the pipeline
// falls back, it never prevents startup.
package config

import (
	"fmt"
	"time"

	pkgconfig "medverify/pkg/config"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port the API listens on. Default: 8080
	Port int

	// Debug enables sanitized error details in 500 responses.
	// Default: false
	Debug bool

	// Version reported by the health endpoint. Default: "dev"
	Version string

	// RequestTimeout is the per-request deadline. Verification waits on
	// several external APIs in sequence, so this is generous.
	// Default: 60s
	RequestTimeout time.Duration

	// RateLimitPerMinute is the per-IP request budget. Default: 60
	RateLimitPerMinute int

	// NewsWarmInterval is how often the news cache warmer runs.
	// Zero disables warming. Default: 5m
	NewsWarmInterval time.Duration
}

// LoadServerConfigFromEnv loads server settings from environment variables.
func LoadServerConfigFromEnv() ServerConfig {
	return ServerConfig{
		Port:               pkgconfig.GetEnvInt("PORT", 8080),
		Debug:              pkgconfig.GetEnvBool("DEBUG", false),
		Version:            pkgconfig.GetEnvString("APP_VERSION", "dev"),
		RequestTimeout:     pkgconfig.GetEnvDuration("REQUEST_TIMEOUT", 60*time.Second),
		RateLimitPerMinute: pkgconfig.GetEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		NewsWarmInterval:   pkgconfig.GetEnvDuration("NEWS_WARM_INTERVAL", 5*time.Minute),
	}
}

// Validate checks the configuration for invalid values.
func (c ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if err := pkgconfig.ValidateDurationRange(c.RequestTimeout, time.Second, 10*time.Minute); err != nil {
		return fmt.Errorf("invalid request timeout: %w", err)
	}
	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("rate limit must be at least 1 request per minute, got %d", c.RateLimitPerMinute)
	}
	if err := pkgconfig.ValidateNonNegativeDuration(c.NewsWarmInterval); err != nil {
		return fmt.Errorf("invalid news warm interval: %w", err)
	}
	return nil
}
