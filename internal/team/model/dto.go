// Package model provides domain models and DTOs for team module.
package model

// PlayerRequest is a single roster entry in a create or update request.
type PlayerRequest struct {
	FirstName string `json:"firstName" validate:"notblank,max=30"`
	LastName  string `json:"lastName" validate:"notblank,max=30"`
	Position  string `json:"position" validate:"notblank,position"`
}

// TeamRequest is the body of create and update requests. The player list
// replaces the whole roster; a missing list means an empty roster.
type TeamRequest struct {
	TeamName string          `json:"teamName" validate:"notblank,max=50"`
	Players  []PlayerRequest `json:"players" validate:"max=14,dive"`
}

// ToPlayers maps the requested roster 1:1 into fresh players without identity.
func (r *TeamRequest) ToPlayers() []Player {
	players := make([]Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, Player{
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Position:  Position(p.Position),
		})
	}
	return players
}

// PlayerResponse represents a persisted player in API responses.
type PlayerResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Position  string `json:"position"`
}

// TeamResponse represents a persisted team in API responses.
type TeamResponse struct {
	ID       uint             `json:"id"`
	TeamName string           `json:"teamName"`
	Players  []PlayerResponse `json:"players"`
}

// NewTeamResponse renders a team for the API. Players is never nil.
func NewTeamResponse(t *Team) *TeamResponse {
	players := make([]PlayerResponse, 0, len(t.Players))
	for _, p := range t.Players {
		players = append(players, PlayerResponse{
			ID:        p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Position:  string(p.Position),
		})
	}
	return &TeamResponse{
		ID:       t.ID,
		TeamName: t.TeamName,
		Players:  players,
	}
}
