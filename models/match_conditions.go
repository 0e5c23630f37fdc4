package models

import "time"

// PitchType mirrors the pitch_type ENUM in the database.
type PitchType string

const (
	PitchBatting      PitchType = "Batting"
	PitchBowling      PitchType = "Bowling"
	PitchBalanced     PitchType = "Balanced"
	PitchSpinFriendly PitchType = "Spin-friendly"
	PitchPaceFriendly PitchType = "Pace-friendly"
)

var PitchTypes = []PitchType{PitchBatting, PitchBowling, PitchBalanced, PitchSpinFriendly, PitchPaceFriendly}

func (p PitchType) Valid() bool {
	switch p {
	case PitchBatting, PitchBowling, PitchBalanced, PitchSpinFriendly, PitchPaceFriendly:
		return true
	}
	return false
}

// Weather mirrors the weather ENUM in the database.
type Weather string

const (
	WeatherSunny    Weather = "Sunny"
	WeatherOvercast Weather = "Overcast"
	WeatherRainy    Weather = "Rainy"
	WeatherHumid    Weather = "Humid"
)

var WeatherConditions = []Weather{WeatherSunny, WeatherOvercast, WeatherRainy, WeatherHumid}

func (w Weather) Valid() bool {
	switch w {
	case WeatherSunny, WeatherOvercast, WeatherRainy, WeatherHumid:
		return true
	}
	return false
}

// MatchConditions is an immutable snapshot created once per analysis
// request and never updated afterwards.
type MatchConditions struct {
	ID        int         `json:"id" db:"id"`
	Format    MatchFormat `json:"format" db:"format"`
	PitchType PitchType   `json:"pitch_type" db:"pitch_type"`
	Weather   Weather     `json:"weather" db:"weather"`
	Venue     string      `json:"venue" db:"venue"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}
