package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "console"}
)

// LoggerConfig selects the zap level, encoder and sink.
type LoggerConfig struct {
	Level  string
	Format string
	// Output is stdout, stderr or a file path.
	Output string
}

// LoadLoggerConfigFromEnv reads LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT.
// Level and format are lower-cased.
func LoadLoggerConfigFromEnv() LoggerConfig {
	return LoggerConfig{
		Level:  strings.ToLower(GetEnv("LOG_LEVEL", "info")),
		Format: strings.ToLower(GetEnv("LOG_FORMAT", "json")),
		Output: GetEnv("LOG_OUTPUT", "stdout"),
	}
}

// Validate validates logger configuration.
func (c LoggerConfig) Validate() error {
	if !slices.Contains(logLevels, c.Level) {
		return fmt.Errorf("invalid log level: %q (must be one of %s)", c.Level, strings.Join(logLevels, ", "))
	}
	if !slices.Contains(logFormats, c.Format) {
		return fmt.Errorf("invalid log format: %q (must be one of %s)", c.Format, strings.Join(logFormats, ", "))
	}
	if c.Output == "" {
		return fmt.Errorf("log output must not be empty")
	}
	return nil
}

// IsProduction reports whether the json encoder is used above debug level.
func (c LoggerConfig) IsProduction() bool {
	return c.Format == "json" && c.Level != "debug"
}
