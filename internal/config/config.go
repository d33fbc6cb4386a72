package config

import "fmt"

// Config holds application configuration.
type Config struct {
	// Server holds HTTP server configuration.
	Server ServerConfig
	// Logger holds logger configuration.
	Logger LoggerConfig
	// RateLimit holds per-client rate limiting configuration.
	RateLimit RateLimitConfig
	// CORSAllowedOrigins lists origins allowed for cross-origin requests.
	CORSAllowedOrigins []string
	// SeedData loads demo rosters into an empty store on startup.
	SeedData bool
	// GinMode is the Gin framework mode (debug, release, test).
	GinMode string
}

// LoadFromEnv loads all configuration from environment variables.
func LoadFromEnv() Config {
	return Config{
		Server:             LoadServerConfigFromEnv(),
		Logger:             LoadLoggerConfigFromEnv(),
		RateLimit:          LoadRateLimitConfigFromEnv(),
		CORSAllowedOrigins: GetEnvList("CORS_ALLOWED_ORIGINS", nil),
		SeedData:           GetEnvBool("SEED_DATA", false),
		GinMode:            GetEnv("GIN_MODE", "release"),
	}
}

// Validate validates all configuration.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger config validation failed: %w", err)
	}

	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("rate limit config validation failed: %w", err)
	}

	validGinModes := map[string]bool{
		"debug":   true,
		"release": true,
		"test":    true,
	}
	if !validGinModes[c.GinMode] {
		return fmt.Errorf("invalid GIN_MODE: %s (must be: debug, release, test)", c.GinMode)
	}

	return nil
}
