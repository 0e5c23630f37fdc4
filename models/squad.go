package models

import "time"

type Squad struct {
	ID             int       `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	UserID         int       `json:"user_id" db:"user_id"`
	CaptainID      *int      `json:"captain_id" db:"captain_id"`
	WicketKeeperID *int      `json:"wicket_keeper_id" db:"wicket_keeper_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	Players      []Player `json:"players,omitempty" db:"-"`
	Captain      *Player  `json:"captain,omitempty" db:"-"`
	WicketKeeper *Player  `json:"wicket_keeper,omitempty" db:"-"`
}

// SquadPlayer is the membership row. Unique per (squad_id, player_id).
type SquadPlayer struct {
	ID        int       `json:"id" db:"id"`
	SquadID   int       `json:"squad_id" db:"squad_id"`
	PlayerID  int       `json:"player_id" db:"player_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
