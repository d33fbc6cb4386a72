package config

import (
	"fmt"
	"time"
)

// RateLimitConfig holds per-client request rate limiting configuration.
type RateLimitConfig struct {
	// Enabled turns the limiter on.
	Enabled bool
	// RPS is the sustained number of requests per second per client IP.
	RPS float64
	// Burst is the bucket size per client IP.
	Burst int
	// TTL is how long an idle client bucket is kept.
	TTL time.Duration
}

// LoadRateLimitConfigFromEnv loads rate limit configuration from environment variables.
func LoadRateLimitConfigFromEnv() RateLimitConfig {
	return RateLimitConfig{
		Enabled: GetEnvBool("RATE_LIMIT_ENABLED", true),
		RPS:     GetEnvFloat("RATE_LIMIT_RPS", 20),
		Burst:   GetEnvInt("RATE_LIMIT_BURST", 40),
		TTL:     GetEnvDuration("RATE_LIMIT_TTL", 5*time.Minute),
	}
}

// Validate validates rate limit configuration. A disabled limiter is
// always valid.
func (c RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.RPS <= 0 {
		return fmt.Errorf("RPS must be greater than 0")
	}
	if c.Burst < 1 {
		return fmt.Errorf("Burst must be at least 1")
	}
	if c.TTL <= 0 {
		return fmt.Errorf("TTL must be greater than 0")
	}
	return nil
}
