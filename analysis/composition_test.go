package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chathuri2/CrickInfo/models"
)

func member(role models.PlayerRole, batting, bowling *float64) Candidate {
	id := 1
	return Candidate{
		Player: models.Player{ID: id, Role: role},
		Stats:  &models.PlayerStatistics{BattingAverage: batting, BowlingAverage: bowling},
	}
}

func TestAnalyzeCompositionAverages(t *testing.T) {
	cond := conditions(models.FormatODI, models.PitchBalanced, models.WeatherSunny)

	members := []Candidate{
		member(models.RoleBatsman, f(40), nil),
		member(models.RoleBatsman, f(50), nil),
		// No batting average: excluded from the batting mean entirely.
		member(models.RoleBowler, nil, f(24)),
		{Player: models.Player{ID: 4, Role: models.RoleAllRounder}, Stats: nil},
	}

	c := AnalyzeComposition(members, cond)

	assert.Equal(t, 4, c.TotalPlayers)
	assert.InDelta(t, 45.0, c.AverageBatting, 1e-9)
	assert.InDelta(t, 24.0, c.AverageBowling, 1e-9)
	assert.Equal(t, map[string]int{
		"Batsman":     2,
		"Bowler":      1,
		"All-rounder": 1,
	}, c.RoleDistribution)
}

func TestAnalyzeCompositionStrengthsAndWeaknesses(t *testing.T) {
	cond := conditions(models.FormatODI, models.PitchBalanced, models.WeatherSunny)

	members := []Candidate{
		member(models.RoleBatsman, f(42), nil),
		member(models.RoleBatsman, f(38), nil),
		member(models.RoleBatsman, f(36), nil),
		member(models.RoleBowler, nil, f(22)),
		member(models.RoleBowler, nil, f(26)),
		member(models.RoleBowler, nil, f(28)),
		member(models.RoleWicketKeeper, f(30), nil),
	}

	c := AnalyzeComposition(members, cond)

	assert.Contains(t, c.Strengths, "Strong batting lineup")
	assert.Contains(t, c.Strengths, "Strong bowling attack")
	assert.Empty(t, c.Weaknesses)
}

func TestAnalyzeCompositionWeaknesses(t *testing.T) {
	cond := conditions(models.FormatODI, models.PitchBalanced, models.WeatherSunny)

	members := []Candidate{
		member(models.RoleBatsman, f(20), nil),
		member(models.RoleBowler, nil, f(40)),
		member(models.RoleAllRounder, f(25), f(35)),
	}

	c := AnalyzeComposition(members, cond)

	assert.Contains(t, c.Weaknesses, "Limited batting options")
	assert.Contains(t, c.Weaknesses, "Limited bowling options")
	assert.Contains(t, c.Weaknesses, "No wicket keeper")
}

func TestAnalyzeCompositionFormatRecommendations(t *testing.T) {
	weak := []Candidate{member(models.RoleBatsman, f(20), nil)}
	strong := []Candidate{member(models.RoleBatsman, f(45), nil)}

	t20 := conditions(models.FormatT20, models.PitchBalanced, models.WeatherSunny)
	test := conditions(models.FormatTest, models.PitchBalanced, models.WeatherSunny)
	odi := conditions(models.FormatODI, models.PitchBalanced, models.WeatherSunny)

	assert.Contains(t, AnalyzeComposition(weak, t20).Recommendations,
		"Consider adding more aggressive batsmen for T20")
	assert.Contains(t, AnalyzeComposition(weak, test).Recommendations,
		"Consider adding more defensive batsmen for Test cricket")
	assert.Empty(t, AnalyzeComposition(weak, odi).Recommendations)
	assert.Empty(t, AnalyzeComposition(strong, t20).Recommendations)
}

func TestAnalyzeCompositionEmptySquad(t *testing.T) {
	cond := conditions(models.FormatODI, models.PitchBalanced, models.WeatherSunny)

	c := AnalyzeComposition(nil, cond)

	assert.Equal(t, 0, c.TotalPlayers)
	assert.Zero(t, c.AverageBatting)
	assert.Zero(t, c.AverageBowling)
	assert.Empty(t, c.RoleDistribution)
}
