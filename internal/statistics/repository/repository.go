// Package repository provides aggregate queries over teams and players.
package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/roster/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// GetTeamStatistics returns the player count of every team, largest first.
	GetTeamStatistics(ctx context.Context) ([]model.TeamStatistics, error)

	// GetPositionCounts returns player counts grouped by position code.
	GetPositionCounts(ctx context.Context) ([]model.PositionCount, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetTeamStatistics returns the player count of every team, largest first.
func (r *repository) GetTeamStatistics(ctx context.Context) ([]model.TeamStatistics, error) {
	var rows []struct {
		TeamID      uint   `gorm:"column:team_id"`
		TeamName    string `gorm:"column:team_name"`
		PlayerCount int64  `gorm:"column:player_count"`
	}

	err := r.db.WithContext(ctx).
		Table("teams").
		Select("teams.id AS team_id, teams.team_name, COUNT(players.id) AS player_count").
		Joins("LEFT JOIN players ON players.team_id = teams.id").
		Group("teams.id, teams.team_name").
		Order("player_count DESC, teams.id ASC").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("team statistics query failed", "error", err)
		return nil, errors.Wrap(err, "query team statistics")
	}

	stats := make([]model.TeamStatistics, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, model.TeamStatistics{
			TeamID:      row.TeamID,
			TeamName:    row.TeamName,
			PlayerCount: int(row.PlayerCount),
		})
	}
	return stats, nil
}

// GetPositionCounts returns player counts grouped by position code.
func (r *repository) GetPositionCounts(ctx context.Context) ([]model.PositionCount, error) {
	var counts []model.PositionCount

	err := r.db.WithContext(ctx).
		Table("players").
		Select("position, COUNT(*) AS player_count").
		Group("position").
		Scan(&counts).Error
	if err != nil {
		r.logger.Errorw("position statistics query failed", "error", err)
		return nil, errors.Wrap(err, "query position counts")
	}

	if counts == nil {
		counts = []model.PositionCount{}
	}
	return counts, nil
}
