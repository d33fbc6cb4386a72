// Package config provides database configuration management.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	appConfig "github.com/festy23/roster/internal/config"
	"github.com/festy23/roster/pkg/retry"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Config holds database connection configuration.
type Config struct {
	Driver   string
	Host     string
	User     string
	Password string
	DBName   string
	Port     string
	SSLMode  string
	TimeZone string
	// SQLitePath is a file path or ":memory:". Used only by the sqlite driver.
	SQLitePath string
}

// LoadConfigFromEnv loads database configuration from environment variables.
// The default port follows the driver.
func LoadConfigFromEnv() Config {
	driver := strings.ToLower(appConfig.GetEnv("DB_DRIVER", DriverPostgres))
	return Config{
		Driver:     driver,
		Host:       appConfig.GetEnv("DB_HOST", "localhost"),
		User:       appConfig.GetEnv("DB_USER", "roster"),
		Password:   appConfig.GetEnv("DB_PASSWORD", "roster"),
		DBName:     appConfig.GetEnv("DB_NAME", "roster"),
		Port:       appConfig.GetEnv("DB_PORT", defaultPort(driver)),
		SSLMode:    appConfig.GetEnv("DB_SSLMODE", "disable"),
		TimeZone:   appConfig.GetEnv("DB_TIMEZONE", "UTC"),
		SQLitePath: appConfig.GetEnv("DB_SQLITE_PATH", "roster.db"),
	}
}

func defaultPort(driver string) string {
	if driver == DriverMySQL {
		return "3306"
	}
	return "5432"
}

// Validate validates database configuration.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverMySQL:
		if c.Host == "" {
			return fmt.Errorf("DB_HOST is required for %s", c.Driver)
		}
		if c.DBName == "" {
			return fmt.Errorf("DB_NAME is required for %s", c.Driver)
		}
		if c.User == "" {
			return fmt.Errorf("DB_USER is required for %s", c.Driver)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("DB_SQLITE_PATH is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %q (must be: postgres, mysql, sqlite)", c.Driver)
	}
	return nil
}

// BuildDSN constructs the driver specific DSN from configuration.
func BuildDSN(cfg Config) string {
	switch cfg.Driver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=%s",
			cfg.User, cfg.Password, net.JoinHostPort(cfg.Host, cfg.Port), cfg.DBName,
			url.QueryEscape(cfg.TimeZone))
	case DriverSQLite:
		if cfg.SQLitePath == ":memory:" {
			return "file::memory:?_foreign_keys=on"
		}
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", cfg.SQLitePath)
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode, cfg.TimeZone)
	}
}

// SanitizeError removes the password from a connection error.
func SanitizeError(err error, cfg Config) error {
	if err == nil {
		return nil
	}
	errMsg := err.Error()
	if cfg.Password != "" {
		errMsg = strings.ReplaceAll(errMsg, cfg.Password, "***")
	}
	return fmt.Errorf("failed to connect to %s database: %s", cfg.Driver, errMsg)
}

// LoadRetryConfigFromEnv loads the connect retry strategy for driver.
func LoadRetryConfigFromEnv(driver string) retry.Config {
	var cfg retry.Config
	switch driver {
	case DriverMySQL:
		cfg = retry.MySQLConfig()
	case DriverSQLite:
		cfg = retry.DefaultConfig()
		cfg.MaxAttempts = 1
	default:
		cfg = retry.PostgresConfig()
	}
	cfg.MaxAttempts = appConfig.GetEnvInt("DB_RETRY_MAX_ATTEMPTS", cfg.MaxAttempts)
	cfg.InitialDelay = appConfig.GetEnvDuration("DB_RETRY_INITIAL_DELAY", cfg.InitialDelay)
	cfg.MaxDelay = appConfig.GetEnvDuration("DB_RETRY_MAX_DELAY", cfg.MaxDelay)
	cfg.Multiplier = appConfig.GetEnvFloat("DB_RETRY_MULTIPLIER", cfg.Multiplier)
	return cfg
}
