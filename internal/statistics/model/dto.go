// Package model provides data transfer objects for roster statistics.
package model

// TeamStatistics is the roster size of one team.
type TeamStatistics struct {
	TeamID      uint   `json:"teamId"`
	TeamName    string `json:"teamName"`
	PlayerCount int    `json:"playerCount"`
	OpenSlots   int    `json:"openSlots"`
}

// TeamsStatisticsResponse summarizes roster sizes across all teams.
type TeamsStatisticsResponse struct {
	Teams                 []TeamStatistics `json:"teams"`
	TotalTeams            int              `json:"totalTeams"`
	TotalPlayers          int              `json:"totalPlayers"`
	AveragePlayersPerTeam float64          `json:"averagePlayersPerTeam"`
	FullTeams             int              `json:"fullTeams"`
	EmptyTeams            int              `json:"emptyTeams"`
}

// PositionCount is the number of players registered at a position code.
type PositionCount struct {
	Position string `gorm:"column:position"`
	Count    int    `gorm:"column:player_count"`
}

// PositionStatistics is the league-wide count for one position.
type PositionStatistics struct {
	Position string `json:"position"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
}

// PositionsStatisticsResponse breaks all players down by position.
type PositionsStatisticsResponse struct {
	Positions    []PositionStatistics `json:"positions"`
	TotalPlayers int                  `json:"totalPlayers"`
}
