package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeam_TableName(t *testing.T) {
	assert.Equal(t, "teams", Team{}.TableName())
	assert.Equal(t, "players", Player{}.TableName())
}

func TestTeam_Clone(t *testing.T) {
	t.Run("nil team", func(t *testing.T) {
		var team *Team
		assert.Nil(t, team.Clone())
	})

	t.Run("players are not shared", func(t *testing.T) {
		team := &Team{
			ID:       1,
			TeamName: "Karasuno High",
			Players:  []Player{{ID: 1, TeamID: 1, FirstName: "Shoyo", LastName: "Hinata", Position: PositionMiddleBlocker}},
		}

		clone := team.Clone()
		clone.Players[0].FirstName = "Changed"
		clone.TeamName = "Other"

		assert.Equal(t, "Shoyo", team.Players[0].FirstName)
		assert.Equal(t, "Karasuno High", team.TeamName)
	})
}

func TestPosition(t *testing.T) {
	t.Run("valid codes", func(t *testing.T) {
		for _, p := range Positions() {
			assert.True(t, p.Valid(), p)
			assert.NotEmpty(t, p.Label(), p)
		}
	})

	t.Run("invalid codes", func(t *testing.T) {
		for _, p := range []Position{"", "li", "LI", "ws", "GK", "S "} {
			assert.False(t, p.Valid(), p)
			assert.Empty(t, p.Label(), p)
		}
	})

	t.Run("labels", func(t *testing.T) {
		assert.Equal(t, "setter", PositionSetter.Label())
		assert.Equal(t, "libero", PositionLibero.Label())
	})
}

func TestTeamRequest_ToPlayers(t *testing.T) {
	req := &TeamRequest{
		TeamName: "Karasuno High",
		Players: []PlayerRequest{
			{FirstName: "Shoyo", LastName: "Hinata", Position: "MB"},
			{FirstName: "Yu", LastName: "Nishinoya", Position: "Li"},
		},
	}

	players := req.ToPlayers()

	require.Len(t, players, 2)
	assert.Zero(t, players[0].ID)
	assert.Zero(t, players[0].TeamID)
	assert.Equal(t, PositionMiddleBlocker, players[0].Position)
	assert.Equal(t, "Nishinoya", players[1].LastName)
	assert.NotNil(t, (&TeamRequest{}).ToPlayers())
}

func TestNewTeamResponse(t *testing.T) {
	team := &Team{
		ID:       3,
		TeamName: "Nekoma High",
		Players: []Player{
			{ID: 10, TeamID: 3, FirstName: "Kenma", LastName: "Kozume", Position: PositionSetter},
		},
	}

	resp := NewTeamResponse(team)

	assert.Equal(t, uint(3), resp.ID)
	assert.Equal(t, "Nekoma High", resp.TeamName)
	require.Len(t, resp.Players, 1)
	assert.Equal(t, PlayerResponse{ID: 10, FirstName: "Kenma", LastName: "Kozume", Position: "S"}, resp.Players[0])

	empty := NewTeamResponse(&Team{ID: 4, TeamName: "Empty"})
	assert.NotNil(t, empty.Players)
	assert.Empty(t, empty.Players)
}
