// Package migrate brings the database schema up to date.
package migrate

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/roster/internal/database/config"
	"github.com/festy23/roster/internal/database/migrations"
	teamModel "github.com/festy23/roster/internal/team/model"
)

// Migrate applies the schema for driver. PostgreSQL runs the embedded
// versioned migrations; MySQL and SQLite are migrated from the models.
func Migrate(db *gorm.DB, driver string, logger *zap.SugaredLogger) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	switch driver {
	case config.DriverPostgres:
		return migratePostgres(db, logger)
	case config.DriverMySQL:
		if err := AutoMigrate(db); err != nil {
			return err
		}
		// Team names compare case-sensitively; the default collation does not.
		if err := db.Exec(
			"ALTER TABLE teams MODIFY team_name VARCHAR(50) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
		).Error; err != nil {
			return fmt.Errorf("failed to set team_name collation: %w", err)
		}
		logger.Infow("schema migrated", "driver", driver)
		return nil
	case config.DriverSQLite:
		if err := AutoMigrate(db); err != nil {
			return err
		}
		logger.Infow("schema migrated", "driver", driver)
		return nil
	default:
		return fmt.Errorf("unsupported database driver: %q", driver)
	}
}

// AutoMigrate creates or updates the teams and players tables from the
// GORM models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&teamModel.Team{}, &teamModel.Player{}); err != nil {
		return fmt.Errorf("failed to auto-migrate schema: %w", err)
	}
	return nil
}

func migratePostgres(db *gorm.DB, logger *zap.SugaredLogger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	logger.Infow("schema migrated", "driver", config.DriverPostgres, "version", version, "dirty", dirty)
	return nil
}
