// Package database opens and manages the GORM connection for the
// configured driver.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/roster/internal/database/config"
	"github.com/festy23/roster/internal/database/pool"
	"github.com/festy23/roster/pkg/logger"
	"github.com/festy23/roster/pkg/retry"
)

const connectTimeout = 2 * time.Minute

// New opens a connection configured from environment variables.
func New(ctx context.Context, log *zap.SugaredLogger) (*gorm.DB, error) {
	cfg := config.LoadConfigFromEnv()
	return NewWithConfig(ctx, cfg, pool.LoadPoolConfigFromEnv(defaultPool(cfg.Driver)), log)
}

// NewWithConfig opens a connection, retrying transient failures, and
// applies poolCfg. Constraint violations surface as gorm.ErrDuplicatedKey
// and friends.
func NewWithConfig(ctx context.Context, cfg config.Config, poolCfg pool.Config, log *zap.SugaredLogger) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	retryCfg := config.LoadRetryConfigFromEnv(cfg.Driver)
	retryCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		log.Warnw("database connection failed, retrying",
			"driver", cfg.Driver,
			"attempt", attempt,
			"delay", delay,
			"error", config.SanitizeError(err, cfg),
		)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	gormCfg := &gorm.Config{
		Logger:         logger.NewGormLogger(log, logger.DefaultGormConfig()),
		TranslateError: true,
	}
	db, err := retry.DoWithResult(ctx, retryCfg, func() (*gorm.DB, error) {
		db, err := gorm.Open(dialector, gormCfg)
		if err != nil {
			return nil, err
		}
		if err := HealthCheck(ctx, db); err != nil {
			_ = Close(db)
			return nil, err
		}
		return db, nil
	})
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	if err := pool.SetupConnectionPool(db, poolCfg); err != nil {
		_ = Close(db)
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	log.Infow("database connected", "driver", cfg.Driver, "max_open_conns", poolCfg.MaxOpenConns)
	return db, nil
}

// Dialector returns the GORM dialector for cfg.Driver.
func Dialector(cfg config.Config) (gorm.Dialector, error) {
	dsn := config.BuildDSN(cfg)
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

func defaultPool(driver string) pool.Config {
	if driver == config.DriverSQLite {
		return pool.SQLitePoolConfig()
	}
	return pool.DefaultPoolConfig()
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close gracefully closes database connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetStats returns database connection pool statistics.
func GetStats(db *gorm.DB) (*sql.DBStats, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return &stats, nil
}
