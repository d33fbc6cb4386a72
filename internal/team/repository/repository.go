// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	teamModel "github.com/festy23/roster/internal/team/model"
)

// Repository is the roster store. Every method is atomic with respect to a
// single team aggregate. It does not enforce roster size; name uniqueness is
// only enforced as a storage constraint and reported as ErrDuplicateTeamName.
type Repository interface {
	// FindAll returns every team with its players populated.
	FindAll(ctx context.Context) ([]teamModel.Team, error)

	// FindByID returns the team with its players or ErrTeamNotFound.
	FindByID(ctx context.Context, id uint) (*teamModel.Team, error)

	// FindByName returns the team with the exact name or ErrTeamNotFound.
	FindByName(ctx context.Context, teamName string) (*teamModel.Team, error)

	// ExistsByName reports whether a team uses the exact (case-sensitive) name.
	ExistsByName(ctx context.Context, teamName string) (bool, error)

	// ExistsByID reports whether a team with the id exists.
	ExistsByID(ctx context.Context, id uint) (bool, error)

	// Save inserts the team when ID is zero, otherwise replaces its name and
	// its whole player set. It returns the persisted aggregate with identities.
	Save(ctx context.Context, team *teamModel.Team) (*teamModel.Team, error)

	// DeleteByID removes the team and all of its players.
	DeleteByID(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new team repository instance backed by gorm.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

func playersInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("players.id ASC")
}

// FindAll returns every team with its players populated.
func (r *repository) FindAll(ctx context.Context) ([]teamModel.Team, error) {
	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Preload("Players", playersInOrder).
		Order("teams.id ASC").
		Find(&teams).Error
	if err != nil {
		return nil, errors.Wrap(err, "find all teams")
	}
	if teams == nil {
		return []teamModel.Team{}, nil
	}
	return teams, nil
}

// FindByID returns the team with its players or ErrTeamNotFound.
func (r *repository) FindByID(ctx context.Context, id uint) (*teamModel.Team, error) {
	return findOne(r.db.WithContext(ctx).Where("teams.id = ?", id))
}

// FindByName returns the team with the exact name or ErrTeamNotFound.
func (r *repository) FindByName(ctx context.Context, teamName string) (*teamModel.Team, error) {
	return findOne(r.db.WithContext(ctx).Where("teams.team_name = ?", teamName))
}

func findOne(q *gorm.DB) (*teamModel.Team, error) {
	var team teamModel.Team
	err := q.Preload("Players", playersInOrder).First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, errors.Wrap(err, "find team")
	}
	return &team, nil
}

// ExistsByName reports whether a team uses the exact name.
func (r *repository) ExistsByName(ctx context.Context, teamName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("team_name = ?", teamName).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrapf(err, "check team name %q", teamName)
	}
	return count > 0, nil
}

// ExistsByID reports whether a team with the id exists.
func (r *repository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrapf(err, "check team %d", id)
	}
	return count > 0, nil
}

// Save persists the aggregate in one transaction. On update the old player
// rows are deleted and the new ones inserted; there is no diffing by identity.
func (r *repository) Save(ctx context.Context, team *teamModel.Team) (*teamModel.Team, error) {
	var saved *teamModel.Team
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if team.ID == 0 {
			err = insertTeam(tx, team)
		} else {
			err = replaceTeam(tx, team)
		}
		if err != nil {
			return err
		}

		saved, err = findOne(tx.Where("teams.id = ?", team.ID))
		return err
	})
	if err != nil {
		if isDuplicateError(err) {
			return nil, teamModel.ErrDuplicateTeamName
		}
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, errors.Wrapf(err, "save team %q", team.TeamName)
	}
	return saved, nil
}

func insertTeam(tx *gorm.DB, team *teamModel.Team) error {
	players := team.Players
	team.Players = nil
	if err := tx.Create(team).Error; err != nil {
		team.Players = players
		return err
	}
	team.Players = players
	return insertPlayers(tx, team)
}

func replaceTeam(tx *gorm.DB, team *teamModel.Team) error {
	res := tx.Model(&teamModel.Team{ID: team.ID}).
		Updates(map[string]interface{}{"team_name": team.TeamName})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return teamModel.ErrTeamNotFound
	}

	if err := tx.Where("team_id = ?", team.ID).Delete(&teamModel.Player{}).Error; err != nil {
		return err
	}
	return insertPlayers(tx, team)
}

func insertPlayers(tx *gorm.DB, team *teamModel.Team) error {
	if len(team.Players) == 0 {
		return nil
	}
	for i := range team.Players {
		team.Players[i].ID = 0
		team.Players[i].TeamID = team.ID
	}
	return tx.Create(&team.Players).Error
}

// DeleteByID removes the team and its players in one transaction. Players
// are deleted explicitly so stores without enforced foreign keys cascade too.
func (r *repository) DeleteByID(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&teamModel.Player{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&teamModel.Team{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return teamModel.ErrTeamNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			return teamModel.ErrTeamNotFound
		}
		return errors.Wrapf(err, "delete team %d", id)
	}
	return nil
}

// isDuplicateError checks if error is a unique constraint violation. The
// message checks cover connections opened without gorm's TranslateError.
func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "Duplicate entry")
}
