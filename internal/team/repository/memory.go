package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	teamModel "github.com/festy23/roster/internal/team/model"
)

// MemoryRepository is an in-process roster store. Teams are stored as whole
// aggregates behind one lock, so every method is atomic. Like the SQL schema
// it rejects a second team with the same name.
type MemoryRepository struct {
	mu           sync.RWMutex
	teams        map[uint]*teamModel.Team
	idsByName    map[string]uint
	nextTeamID   uint
	nextPlayerID uint
}

// NewMemory creates an empty in-process repository.
func NewMemory() *MemoryRepository {
	return &MemoryRepository{
		teams:     make(map[uint]*teamModel.Team),
		idsByName: make(map[string]uint),
	}
}

// FindAll returns every team ordered by id.
func (r *MemoryRepository) FindAll(_ context.Context) ([]teamModel.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]teamModel.Team, 0, len(r.teams))
	for _, team := range r.teams {
		out = append(out, *team.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindByID returns a copy of the team or ErrTeamNotFound.
func (r *MemoryRepository) FindByID(_ context.Context, id uint) (*teamModel.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	team, ok := r.teams[id]
	if !ok {
		return nil, teamModel.ErrTeamNotFound
	}
	return team.Clone(), nil
}

// FindByName returns a copy of the team or ErrTeamNotFound.
func (r *MemoryRepository) FindByName(_ context.Context, teamName string) (*teamModel.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idsByName[teamName]
	if !ok {
		return nil, teamModel.ErrTeamNotFound
	}
	return r.teams[id].Clone(), nil
}

// ExistsByName reports whether a team uses the exact name.
func (r *MemoryRepository) ExistsByName(_ context.Context, teamName string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.idsByName[teamName]
	return ok, nil
}

// ExistsByID reports whether a team with the id exists.
func (r *MemoryRepository) ExistsByID(_ context.Context, id uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.teams[id]
	return ok, nil
}

// Save inserts or replaces the aggregate. New players always get new ids.
func (r *MemoryRepository) Save(_ context.Context, team *teamModel.Team) (*teamModel.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if holder, taken := r.idsByName[team.TeamName]; taken && holder != team.ID {
		return nil, teamModel.ErrDuplicateTeamName
	}

	now := time.Now()
	stored := team.Clone()
	if stored.ID == 0 {
		r.nextTeamID++
		stored.ID = r.nextTeamID
		stored.CreatedAt = now
	} else {
		current, ok := r.teams[stored.ID]
		if !ok {
			return nil, teamModel.ErrTeamNotFound
		}
		stored.CreatedAt = current.CreatedAt
		delete(r.idsByName, current.TeamName)
	}
	stored.UpdatedAt = now

	if stored.Players == nil {
		stored.Players = []teamModel.Player{}
	}
	for i := range stored.Players {
		r.nextPlayerID++
		stored.Players[i].ID = r.nextPlayerID
		stored.Players[i].TeamID = stored.ID
	}

	r.teams[stored.ID] = stored
	r.idsByName[stored.TeamName] = stored.ID

	return stored.Clone(), nil
}

// DeleteByID removes the team together with its players.
func (r *MemoryRepository) DeleteByID(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	team, ok := r.teams[id]
	if !ok {
		return teamModel.ErrTeamNotFound
	}
	delete(r.idsByName, team.TeamName)
	delete(r.teams, id)
	return nil
}

// PlayerCount returns the number of stored players across all teams.
func (r *MemoryRepository) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, team := range r.teams {
		n += len(team.Players)
	}
	return n
}

var _ Repository = (*MemoryRepository)(nil)
