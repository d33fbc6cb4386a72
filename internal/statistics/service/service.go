// Package service provides roster statistics.
package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/festy23/roster/internal/statistics/model"
	"github.com/festy23/roster/internal/statistics/repository"
	teamModel "github.com/festy23/roster/internal/team/model"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetTeamStatistics returns roster sizes and league totals.
	GetTeamStatistics(ctx context.Context) (*model.TeamsStatisticsResponse, error)

	// GetPositionStatistics returns player counts for every position.
	GetPositionStatistics(ctx context.Context) (*model.PositionsStatisticsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// GetTeamStatistics returns roster sizes and league totals.
func (s *service) GetTeamStatistics(ctx context.Context) (*model.TeamsStatisticsResponse, error) {
	teams, err := s.repo.GetTeamStatistics(ctx)
	if err != nil {
		return nil, teamModel.Internal(err)
	}

	resp := &model.TeamsStatisticsResponse{
		Teams:      make([]model.TeamStatistics, 0, len(teams)),
		TotalTeams: len(teams),
	}
	for _, t := range teams {
		t.OpenSlots = teamModel.MaxPlayers - t.PlayerCount
		if t.OpenSlots < 0 {
			t.OpenSlots = 0
		}
		resp.TotalPlayers += t.PlayerCount
		switch t.PlayerCount {
		case 0:
			resp.EmptyTeams++
		case teamModel.MaxPlayers:
			resp.FullTeams++
		}
		resp.Teams = append(resp.Teams, t)
	}
	if resp.TotalTeams > 0 {
		avg := float64(resp.TotalPlayers) / float64(resp.TotalTeams)
		resp.AveragePlayersPerTeam = math.Round(avg*100) / 100
	}

	s.logger.Debugw("team statistics computed", "teams", resp.TotalTeams, "players", resp.TotalPlayers)
	return resp, nil
}

// GetPositionStatistics returns player counts for every supported position,
// including positions nobody plays.
func (s *service) GetPositionStatistics(ctx context.Context) (*model.PositionsStatisticsResponse, error) {
	counts, err := s.repo.GetPositionCounts(ctx)
	if err != nil {
		return nil, teamModel.Internal(err)
	}

	byPosition := make(map[string]int, len(counts))
	for _, c := range counts {
		byPosition[c.Position] += c.Count
	}

	resp := &model.PositionsStatisticsResponse{}
	for _, p := range teamModel.Positions() {
		n := byPosition[string(p)]
		resp.Positions = append(resp.Positions, model.PositionStatistics{
			Position: string(p),
			Label:    p.Label(),
			Count:    n,
		})
		resp.TotalPlayers += n
	}

	s.logger.Debugw("position statistics computed", "players", resp.TotalPlayers)
	return resp, nil
}
