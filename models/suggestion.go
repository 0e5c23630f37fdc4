package models

import "time"

// SmartSuggestion is a derived artifact: one row per suggestion request,
// never mutated, so repeated requests build an append-only history.
type SmartSuggestion struct {
	ID                int       `json:"id" db:"id"`
	SquadID           int       `json:"squad_id" db:"squad_id"`
	MatchConditionsID int       `json:"match_conditions_id" db:"match_conditions_id"`
	Reasoning         string    `json:"reasoning" db:"reasoning"`
	Confidence        float64   `json:"confidence" db:"confidence"` // percentage in [0,100]
	CreatedAt         time.Time `json:"created_at" db:"created_at"`

	SuggestedPlayers []SuggestionPlayer `json:"suggested_players,omitempty" db:"-"`
}

// SuggestionPlayer carries the rank of one suggested player.
// Higher priority means more recommended.
type SuggestionPlayer struct {
	ID           int       `json:"id" db:"id"`
	SuggestionID int       `json:"suggestion_id" db:"suggestion_id"`
	PlayerID     int       `json:"player_id" db:"player_id"`
	Priority     int       `json:"priority" db:"priority"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Player *Player `json:"player,omitempty" db:"-"`
}
