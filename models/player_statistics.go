package models

import "time"

// MatchFormat mirrors the match_format ENUM in the database.
type MatchFormat string

const (
	FormatT20  MatchFormat = "T20"
	FormatODI  MatchFormat = "ODI"
	FormatTest MatchFormat = "Test"
)

var MatchFormats = []MatchFormat{FormatT20, FormatODI, FormatTest}

func (f MatchFormat) Valid() bool {
	switch f {
	case FormatT20, FormatODI, FormatTest:
		return true
	}
	return false
}

// PlayerStatistics holds one player's numbers for one format.
// Unique per (player_id, format). Nil means no data for that metric,
// which is different from zero.
type PlayerStatistics struct {
	ID             int         `json:"id" db:"id"`
	PlayerID       int         `json:"player_id" db:"player_id"`
	Format         MatchFormat `json:"format" db:"format"`
	BattingAverage *float64    `json:"batting_average" db:"batting_average"`
	BowlingAverage *float64    `json:"bowling_average" db:"bowling_average"`
	StrikeRate     *float64    `json:"strike_rate" db:"strike_rate"`
	EconomyRate    *float64    `json:"economy_rate" db:"economy_rate"`
	RecentForm     *float64    `json:"recent_form" db:"recent_form"` // last 5 matches average
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}
