package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	teamModel "github.com/festy23/roster/internal/team/model"
	"github.com/festy23/roster/internal/team/repository"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) FindAll(ctx context.Context) ([]teamModel.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]teamModel.Team), args.Error(1)
}

func (m *mockRepository) FindByID(ctx context.Context, id uint) (*teamModel.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.Team), args.Error(1)
}

func (m *mockRepository) FindByName(ctx context.Context, teamName string) (*teamModel.Team, error) {
	args := m.Called(ctx, teamName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.Team), args.Error(1)
}

func (m *mockRepository) ExistsByName(ctx context.Context, teamName string) (bool, error) {
	args := m.Called(ctx, teamName)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) Save(ctx context.Context, team *teamModel.Team) (*teamModel.Team, error) {
	args := m.Called(ctx, team)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.Team), args.Error(1)
}

func (m *mockRepository) DeleteByID(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repository.Repository = (*mockRepository)(nil)

var errConnection = errors.New("dial tcp 127.0.0.1:5432: connection refused")

func karasunoRequest() *teamModel.TeamRequest {
	return &teamModel.TeamRequest{
		TeamName: "Karasuno High",
		Players: []teamModel.PlayerRequest{
			{FirstName: "Shoyo", LastName: "Hinata", Position: "MB"},
		},
	}
}

func rosterRequest(name string, n int) *teamModel.TeamRequest {
	req := &teamModel.TeamRequest{TeamName: name}
	for i := 0; i < n; i++ {
		req.Players = append(req.Players, teamModel.PlayerRequest{FirstName: "Bench", LastName: "Player", Position: "WS"})
	}
	return req
}

func newMemoryService() Service {
	return New(repository.NewMemory(), zap.NewNop().Sugar())
}

func requireCode(t *testing.T, err error, code teamModel.Code) *teamModel.Error {
	t.Helper()
	require.Error(t, err)
	var e *teamModel.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, code, e.Code)
	return e
}

func TestService_ListTeams(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		svc := newMemoryService()

		teams, err := svc.ListTeams(ctx)

		require.NoError(t, err)
		assert.NotNil(t, teams)
		assert.Empty(t, teams)
	})

	t.Run("teams with players", func(t *testing.T) {
		svc := newMemoryService()
		_, err := svc.CreateTeam(ctx, karasunoRequest())
		require.NoError(t, err)
		_, err = svc.CreateTeam(ctx, rosterRequest("Nekoma High", 3))
		require.NoError(t, err)

		teams, err := svc.ListTeams(ctx)

		require.NoError(t, err)
		require.Len(t, teams, 2)
		assert.Len(t, teams[0].Players, 1)
		assert.Len(t, teams[1].Players, 3)
	})

	t.Run("store failure is internal", func(t *testing.T) {
		mockRepo := new(mockRepository)
		mockRepo.On("FindAll", ctx).Return(nil, errConnection)
		svc := New(mockRepo, zap.NewNop().Sugar())

		teams, err := svc.ListTeams(ctx)

		assert.Nil(t, teams)
		e := requireCode(t, err, teamModel.CodeInternal)
		assert.NotContains(t, e.Message, "127.0.0.1")
		assert.ErrorIs(t, err, errConnection)
		mockRepo.AssertExpectations(t)
	})
}

func TestService_GetTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc := newMemoryService()
		created, err := svc.CreateTeam(ctx, karasunoRequest())
		require.NoError(t, err)

		team, err := svc.GetTeam(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, created, team)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newMemoryService()

		team, err := svc.GetTeam(ctx, 999)

		assert.Nil(t, team)
		requireCode(t, err, teamModel.CodeTeamNotFound)
		assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)
	})
}

func TestService_CreateTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc := newMemoryService()

		resp, err := svc.CreateTeam(ctx, karasunoRequest())

		require.NoError(t, err)
		assert.NotZero(t, resp.ID)
		assert.Equal(t, "Karasuno High", resp.TeamName)
		require.Len(t, resp.Players, 1)
		assert.NotZero(t, resp.Players[0].ID)
		assert.Equal(t, "MB", resp.Players[0].Position)
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc := newMemoryService()
		_, err := svc.CreateTeam(ctx, karasunoRequest())
		require.NoError(t, err)

		resp, err := svc.CreateTeam(ctx, karasunoRequest())

		assert.Nil(t, resp)
		e := requireCode(t, err, teamModel.CodeDuplicateTeamName)
		assert.Empty(t, e.Details)
	})

	t.Run("fifteen players", func(t *testing.T) {
		svc := newMemoryService()

		resp, err := svc.CreateTeam(ctx, rosterRequest("Too Many", teamModel.MaxPlayers+1))

		assert.Nil(t, resp)
		e := requireCode(t, err, teamModel.CodeInvalidRequest)
		require.Len(t, e.Details, 1)
		assert.Contains(t, e.Details[0], "at most 14 players")
	})

	t.Run("fourteen players", func(t *testing.T) {
		svc := newMemoryService()

		resp, err := svc.CreateTeam(ctx, rosterRequest("Full Bench", teamModel.MaxPlayers))

		require.NoError(t, err)
		assert.Len(t, resp.Players, teamModel.MaxPlayers)
	})

	t.Run("invalid fields are reported together", func(t *testing.T) {
		svc := newMemoryService()
		req := &teamModel.TeamRequest{
			TeamName: strings.Repeat("x", 51),
			Players: []teamModel.PlayerRequest{
				{FirstName: "", LastName: strings.Repeat("y", 31), Position: "GK"},
			},
		}

		resp, err := svc.CreateTeam(ctx, req)

		assert.Nil(t, resp)
		e := requireCode(t, err, teamModel.CodeInvalidRequest)
		assert.Len(t, e.Details, 4)
		joined := strings.Join(e.Details, "\n")
		assert.Contains(t, joined, "teamName")
		assert.Contains(t, joined, "players[0].firstName")
		assert.Contains(t, joined, "players[0].lastName")
		assert.Contains(t, joined, "players[0].position")
	})

	t.Run("validation happens before store access", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, zap.NewNop().Sugar())

		_, err := svc.CreateTeam(ctx, &teamModel.TeamRequest{TeamName: ""})

		requireCode(t, err, teamModel.CodeInvalidRequest)
		mockRepo.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("store unique constraint is reported as duplicate", func(t *testing.T) {
		mockRepo := new(mockRepository)
		mockRepo.On("ExistsByName", ctx, "Karasuno High").Return(false, nil)
		mockRepo.On("Save", ctx, mock.AnythingOfType("*model.Team")).Return(nil, teamModel.ErrDuplicateTeamName)
		svc := New(mockRepo, zap.NewNop().Sugar())

		resp, err := svc.CreateTeam(ctx, karasunoRequest())

		assert.Nil(t, resp)
		requireCode(t, err, teamModel.CodeDuplicateTeamName)
		mockRepo.AssertExpectations(t)
	})

	t.Run("fresh players are passed to the store", func(t *testing.T) {
		mockRepo := new(mockRepository)
		mockRepo.On("ExistsByName", ctx, "Karasuno High").Return(false, nil)
		mockRepo.On("Save", ctx, mock.MatchedBy(func(team *teamModel.Team) bool {
			return team.ID == 0 &&
				team.TeamName == "Karasuno High" &&
				len(team.Players) == 1 &&
				team.Players[0].ID == 0 &&
				team.Players[0].Position == teamModel.PositionMiddleBlocker
		})).Return(&teamModel.Team{
			ID:       1,
			TeamName: "Karasuno High",
			Players:  []teamModel.Player{{ID: 1, TeamID: 1, FirstName: "Shoyo", LastName: "Hinata", Position: "MB"}},
		}, nil)
		svc := New(mockRepo, zap.NewNop().Sugar())

		resp, err := svc.CreateTeam(ctx, karasunoRequest())

		require.NoError(t, err)
		assert.Equal(t, uint(1), resp.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("exists check failure is internal", func(t *testing.T) {
		mockRepo := new(mockRepository)
		mockRepo.On("ExistsByName", ctx, "Karasuno High").Return(false, errConnection)
		svc := New(mockRepo, zap.NewNop().Sugar())

		resp, err := svc.CreateTeam(ctx, karasunoRequest())

		assert.Nil(t, resp)
		requireCode(t, err, teamModel.CodeInternal)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestService_UpdateTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the whole roster", func(t *testing.T) {
		svc := newMemoryService()
		created, err := svc.CreateTeam(ctx, rosterRequest("Karasuno High", 9))
		require.NoError(t, err)

		req := &teamModel.TeamRequest{
			TeamName: "Karasuno High",
			Players:  []teamModel.PlayerRequest{{FirstName: "Kei", LastName: "Tsukishima", Position: "MB"}},
		}
		updated, err := svc.UpdateTeam(ctx, created.ID, req)
		require.NoError(t, err)
		require.Len(t, updated.Players, 1)

		got, err := svc.GetTeam(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, got.Players, 1)
		assert.Equal(t, "Kei", got.Players[0].FirstName)
		assert.Equal(t, "Tsukishima", got.Players[0].LastName)
		assert.Equal(t, "MB", got.Players[0].Position)
		for _, old := range created.Players {
			assert.NotEqual(t, old.ID, got.Players[0].ID)
		}
	})

	t.Run("empty roster clears players", func(t *testing.T) {
		svc := newMemoryService()
		created, err := svc.CreateTeam(ctx, karasunoRequest())
		require.NoError(t, err)

		updated, err := svc.UpdateTeam(ctx, created.ID, &teamModel.TeamRequest{TeamName: "Karasuno High"})

		require.NoError(t, err)
		assert.Empty(t, updated.Players)
	})

	t.Run("rename to own name", func(t *testing.T) {
		svc := newMemoryService()
		created, err := svc.CreateTeam(ctx, karasunoRequest())
		require.NoError(t, err)

		updated, err := svc.UpdateTeam(ctx, created.ID, karasunoRequest())

		require.NoError(t, err)
		assert.Equal(t, "Karasuno High", updated.TeamName)
	})

	t.Run("rename to new name", func(t *testing.T) {
		svc := newMemoryService()
		created, err := svc.CreateTeam(ctx, karasunoRequest())
		require.NoError(t, err)

		updated, err := svc.UpdateTeam(ctx, created.ID, rosterRequest("Karasuno", 2))

		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Karasuno", updated.TeamName)

		_, err = svc.CreateTeam(ctx, rosterRequest("Karasuno High", 0))
		assert.NoError(t, err, "old name must be free after rename")
	})

	t.Run("rename to name held by another team", func(t *testing.T) {
		svc := newMemoryService()
		_, err := svc.CreateTeam(ctx, karasunoRequest())
		require.NoError(t, err)
		nekoma, err := svc.CreateTeam(ctx, rosterRequest("Nekoma High", 1))
		require.NoError(t, err)

		updated, err := svc.UpdateTeam(ctx, nekoma.ID, rosterRequest("Karasuno High", 1))

		assert.Nil(t, updated)
		requireCode(t, err, teamModel.CodeDuplicateTeamName)

		got, err := svc.GetTeam(ctx, nekoma.ID)
		require.NoError(t, err)
		assert.Equal(t, "Nekoma High", got.TeamName)
	})

	t.Run("not found before validation", func(t *testing.T) {
		svc := newMemoryService()

		updated, err := svc.UpdateTeam(ctx, 404, &teamModel.TeamRequest{TeamName: ""})

		assert.Nil(t, updated)
		requireCode(t, err, teamModel.CodeTeamNotFound)
	})

	t.Run("fifteen players", func(t *testing.T) {
		svc := newMemoryService()
		created, err := svc.CreateTeam(ctx, karasunoRequest())
		require.NoError(t, err)

		updated, err := svc.UpdateTeam(ctx, created.ID, rosterRequest("Karasuno High", teamModel.MaxPlayers+1))

		assert.Nil(t, updated)
		requireCode(t, err, teamModel.CodeInvalidRequest)

		got, err := svc.GetTeam(ctx, created.ID)
		require.NoError(t, err)
		assert.Len(t, got.Players, 1)
	})

	t.Run("unchanged name skips uniqueness check", func(t *testing.T) {
		mockRepo := new(mockRepository)
		current := &teamModel.Team{ID: 7, TeamName: "Karasuno High"}
		mockRepo.On("FindByID", ctx, uint(7)).Return(current, nil)
		mockRepo.On("Save", ctx, mock.AnythingOfType("*model.Team")).Return(&teamModel.Team{ID: 7, TeamName: "Karasuno High"}, nil)
		svc := New(mockRepo, zap.NewNop().Sugar())

		_, err := svc.UpdateTeam(ctx, 7, karasunoRequest())

		require.NoError(t, err)
		mockRepo.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})
}

func TestService_DeleteTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc := newMemoryService()
		created, err := svc.CreateTeam(ctx, karasunoRequest())
		require.NoError(t, err)

		require.NoError(t, svc.DeleteTeam(ctx, created.ID))

		_, err = svc.GetTeam(ctx, created.ID)
		requireCode(t, err, teamModel.CodeTeamNotFound)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newMemoryService()

		err := svc.DeleteTeam(ctx, 1)

		requireCode(t, err, teamModel.CodeTeamNotFound)
	})

	t.Run("delete twice", func(t *testing.T) {
		svc := newMemoryService()
		created, err := svc.CreateTeam(ctx, karasunoRequest())
		require.NoError(t, err)
		require.NoError(t, svc.DeleteTeam(ctx, created.ID))

		err = svc.DeleteTeam(ctx, created.ID)

		requireCode(t, err, teamModel.CodeTeamNotFound)
	})

	t.Run("cascade removes players", func(t *testing.T) {
		repo := repository.NewMemory()
		svc := New(repo, zap.NewNop().Sugar())
		created, err := svc.CreateTeam(ctx, rosterRequest("Karasuno High", 9))
		require.NoError(t, err)
		require.Equal(t, 9, repo.PlayerCount())

		require.NoError(t, svc.DeleteTeam(ctx, created.ID))

		assert.Equal(t, 0, repo.PlayerCount())
	})

	t.Run("store failure is internal", func(t *testing.T) {
		mockRepo := new(mockRepository)
		mockRepo.On("ExistsByID", ctx, uint(3)).Return(true, nil)
		mockRepo.On("DeleteByID", ctx, uint(3)).Return(errConnection)
		svc := New(mockRepo, zap.NewNop().Sugar())

		err := svc.DeleteTeam(ctx, 3)

		requireCode(t, err, teamModel.CodeInternal)
		mockRepo.AssertExpectations(t)
	})
}

func TestCheckRosterSize(t *testing.T) {
	t.Run("within limit", func(t *testing.T) {
		team := &teamModel.Team{Players: make([]teamModel.Player, teamModel.MaxPlayers)}
		assert.NoError(t, checkRosterSize(team))
	})

	t.Run("over limit", func(t *testing.T) {
		team := &teamModel.Team{Players: make([]teamModel.Player, teamModel.MaxPlayers+1)}
		err := checkRosterSize(team)
		e := requireCode(t, err, teamModel.CodeInvalidRequest)
		assert.Equal(t, []string{"players: a team can have at most 14 players"}, e.Details)
	})
}
