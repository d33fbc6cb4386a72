// Package service provides business logic layer for team module.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	teamModel "github.com/festy23/roster/internal/team/model"
	"github.com/festy23/roster/internal/team/repository"
)

// Service defines the roster operations. Every returned error is a
// *teamModel.Error carrying one of the stable codes.
type Service interface {
	// ListTeams returns all teams with their players.
	ListTeams(ctx context.Context) ([]teamModel.TeamResponse, error)

	// GetTeam returns a team by id.
	GetTeam(ctx context.Context, id uint) (*teamModel.TeamResponse, error)

	// CreateTeam validates the request and creates a team with its roster.
	CreateTeam(ctx context.Context, req *teamModel.TeamRequest) (*teamModel.TeamResponse, error)

	// UpdateTeam renames a team and replaces its whole roster.
	UpdateTeam(ctx context.Context, id uint, req *teamModel.TeamRequest) (*teamModel.TeamResponse, error)

	// DeleteTeam deletes a team and its players.
	DeleteTeam(ctx context.Context, id uint) error
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new team service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// ListTeams returns all teams with their players.
func (s *service) ListTeams(ctx context.Context) ([]teamModel.TeamResponse, error) {
	teams, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.fail("list teams", err)
	}

	resp := make([]teamModel.TeamResponse, 0, len(teams))
	for i := range teams {
		resp = append(resp, *teamModel.NewTeamResponse(&teams[i]))
	}
	return resp, nil
}

// GetTeam returns a team by id.
func (s *service) GetTeam(ctx context.Context, id uint) (*teamModel.TeamResponse, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail("get team", err)
	}
	return teamModel.NewTeamResponse(team), nil
}

// CreateTeam validates the request and creates a team with its roster.
// The existence check gives a clean error; the store's unique constraint
// covers concurrent creates that both pass it.
func (s *service) CreateTeam(ctx context.Context, req *teamModel.TeamRequest) (*teamModel.TeamResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, s.fail("create team", err)
	}

	exists, err := s.repo.ExistsByName(ctx, req.TeamName)
	if err != nil {
		return nil, s.fail("create team", err)
	}
	if exists {
		return nil, teamModel.ErrDuplicateTeamName
	}

	team := &teamModel.Team{
		TeamName: req.TeamName,
		Players:  req.ToPlayers(),
	}
	if err := checkRosterSize(team); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, team)
	if err != nil {
		return nil, s.fail("create team", err)
	}

	s.logger.Infow("team created", "team_id", saved.ID, "team_name", saved.TeamName, "players", len(saved.Players))
	return teamModel.NewTeamResponse(saved), nil
}

// UpdateTeam renames a team and replaces its whole roster. Old players are
// discarded and new ones created; there is no merge by player identity.
func (s *service) UpdateTeam(
	ctx context.Context,
	id uint,
	req *teamModel.TeamRequest,
) (*teamModel.TeamResponse, error) {
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail("update team", err)
	}

	if err := req.Validate(); err != nil {
		return nil, s.fail("update team", err)
	}

	// Keeping the current name is always allowed.
	if req.TeamName != team.TeamName {
		exists, err := s.repo.ExistsByName(ctx, req.TeamName)
		if err != nil {
			return nil, s.fail("update team", err)
		}
		if exists {
			return nil, teamModel.ErrDuplicateTeamName
		}
	}

	team.TeamName = req.TeamName
	team.Players = req.ToPlayers()
	if err := checkRosterSize(team); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, team)
	if err != nil {
		return nil, s.fail("update team", err)
	}

	s.logger.Infow("team updated", "team_id", saved.ID, "team_name", saved.TeamName, "players", len(saved.Players))
	return teamModel.NewTeamResponse(saved), nil
}

// DeleteTeam deletes a team and its players.
func (s *service) DeleteTeam(ctx context.Context, id uint) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return s.fail("delete team", err)
	}
	if !exists {
		return teamModel.ErrTeamNotFound
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return s.fail("delete team", err)
	}

	s.logger.Infow("team deleted", "team_id", id)
	return nil
}

// checkRosterSize is a second gate behind request validation.
func checkRosterSize(team *teamModel.Team) error {
	if len(team.Players) > teamModel.MaxPlayers {
		return teamModel.NewValidationError(
			fmt.Sprintf("players: a team can have at most %d players", teamModel.MaxPlayers),
		)
	}
	return nil
}

// fail classifies err. Unclassified errors are logged with their cause and
// surface as INTERNAL_ERROR without it.
func (s *service) fail(op string, err error) error {
	e := teamModel.AsError(err)
	if e.Code == teamModel.CodeInternal {
		s.logger.Errorw("team operation failed", "operation", op, "error", err)
	}
	return e
}
