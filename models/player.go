package models

import "time"

// PlayerRole mirrors the player_role ENUM in the database.
type PlayerRole string

const (
	RoleBatsman      PlayerRole = "Batsman"
	RoleBowler       PlayerRole = "Bowler"
	RoleAllRounder   PlayerRole = "All-rounder"
	RoleWicketKeeper PlayerRole = "Wicket-keeper"
)

// PlayerRoles lists all roles in a stable order for enumeration endpoints.
var PlayerRoles = []PlayerRole{RoleBatsman, RoleBowler, RoleAllRounder, RoleWicketKeeper}

func (r PlayerRole) Valid() bool {
	switch r {
	case RoleBatsman, RoleBowler, RoleAllRounder, RoleWicketKeeper:
		return true
	}
	return false
}

type Player struct {
	ID            int        `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Role          PlayerRole `json:"role" db:"role"`
	Country       string     `json:"country" db:"country"`
	MatchesPlayed int        `json:"matches_played" db:"matches_played"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`

	PhotoKey *string `json:"-" db:"photo_key"`
	PhotoURL *string `json:"photo_url,omitempty" db:"-"`

	// Statistics is populated by the service layer when requested.
	Statistics []PlayerStatistics `json:"statistics,omitempty" db:"-"`
}
