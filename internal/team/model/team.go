package model

import "time"

// MaxPlayers is the largest roster a team may carry.
const MaxPlayers = 14

// Team is the roster aggregate root. Players are owned by the team and are
// persisted and deleted together with it.
type Team struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	TeamName  string    `gorm:"column:team_name;type:varchar(50);not null;uniqueIndex:uq_teams_team_name"`
	Players   []Player  `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// Player is a roster entry. It never exists outside its owning Team.
type Player struct {
	ID        uint     `gorm:"primaryKey;column:id"`
	TeamID    uint     `gorm:"column:team_id;not null;index:idx_players_team_id"`
	FirstName string   `gorm:"column:first_name;type:varchar(30);not null"`
	LastName  string   `gorm:"column:last_name;type:varchar(30);not null"`
	Position  Position `gorm:"column:position;type:varchar(2);not null"`
}

// TableName specifies the table name for GORM.
func (Player) TableName() string {
	return "players"
}

// Clone returns a deep copy of the team so callers never share the player slice.
func (t *Team) Clone() *Team {
	if t == nil {
		return nil
	}
	out := *t
	if t.Players != nil {
		out.Players = make([]Player, len(t.Players))
		copy(out.Players, t.Players)
	}
	return &out
}
