// Package seed loads demo rosters into an empty store.
package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	teamModel "github.com/festy23/roster/internal/team/model"
	"github.com/festy23/roster/internal/team/service"
)

// Teams returns the demo rosters. Each call builds fresh requests.
func Teams() []*teamModel.TeamRequest {
	return []*teamModel.TeamRequest{
		{
			TeamName: "Karasuno High",
			Players: []teamModel.PlayerRequest{
				{FirstName: "Shoyo", LastName: "Hinata", Position: "MB"},
				{FirstName: "Tobio", LastName: "Kageyama", Position: "S"},
				{FirstName: "Daichi", LastName: "Sawamura", Position: "WS"},
				{FirstName: "Koshi", LastName: "Sugawara", Position: "S"},
				{FirstName: "Ryunosuke", LastName: "Tanaka", Position: "WS"},
				{FirstName: "Asahi", LastName: "Azumane", Position: "WS"},
				{FirstName: "Yu", LastName: "Nishinoya", Position: "Li"},
				{FirstName: "Kei", LastName: "Tsukishima", Position: "MB"},
				{FirstName: "Tadashi", LastName: "Yamaguchi", Position: "MB"},
			},
		},
		{
			TeamName: "Nekoma High",
			Players: []teamModel.PlayerRequest{
				{FirstName: "Tetsuro", LastName: "Kuroo", Position: "MB"},
				{FirstName: "Kenma", LastName: "Kozume", Position: "S"},
				{FirstName: "Morisuke", LastName: "Yaku", Position: "Li"},
				{FirstName: "Taketora", LastName: "Yamamoto", Position: "WS"},
				{FirstName: "Shohei", LastName: "Fukunaga", Position: "WS"},
				{FirstName: "So", LastName: "Inuoka", Position: "MB"},
				{FirstName: "Lev", LastName: "Haiba", Position: "MB"},
				{FirstName: "Yuki", LastName: "Shibayama", Position: "Li"},
			},
		},
	}
}

// Run creates the demo rosters through svc unless at least one team
// already exists. It returns the number of teams created.
func Run(ctx context.Context, svc service.Service, logger *zap.SugaredLogger) (int, error) {
	existing, err := svc.ListTeams(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list teams: %w", err)
	}
	if len(existing) > 0 {
		logger.Infow("seed skipped, teams already present", "teams", len(existing))
		return 0, nil
	}

	created := 0
	for _, req := range Teams() {
		if _, err := svc.CreateTeam(ctx, req); err != nil {
			return created, fmt.Errorf("failed to seed team %q: %w", req.TeamName, err)
		}
		created++
	}

	logger.Infow("seed data loaded", "teams", created)
	return created, nil
}
