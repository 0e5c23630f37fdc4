package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chathuri2/CrickInfo/models"
)

func batsmanCandidate(id int, name string, form float64) Candidate {
	return Candidate{
		Player: models.Player{ID: id, Name: name, Role: models.RoleBatsman, Country: "Sri Lanka"},
		Stats:  &models.PlayerStatistics{PlayerID: id, Format: models.FormatODI, RecentForm: f(form)},
	}
}

func TestSuggestExcludesIneligiblePlayers(t *testing.T) {
	cond := conditions(models.FormatODI, models.PitchBalanced, models.WeatherSunny)

	candidates := []Candidate{
		batsmanCandidate(1, "In Squad", 50),
		{Player: models.Player{ID: 2, Name: "No Stats", Role: models.RoleBatsman}, Stats: nil},
		batsmanCandidate(3, "Zero Score", 0),
		batsmanCandidate(4, "Eligible", 40),
	}

	got := Suggest(cond, candidates, map[int]struct{}{1: {}})

	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].ID)
	assert.InDelta(t, 12.0, got[0].Score, 1e-9)
	require.NotNil(t, got[0].Statistics)
}

func TestSuggestOrdersAndTruncates(t *testing.T) {
	cond := conditions(models.FormatODI, models.PitchBalanced, models.WeatherSunny)

	candidates := make([]Candidate, 0, 14)
	for i := 1; i <= 14; i++ {
		candidates = append(candidates, batsmanCandidate(i, "Player", float64(i)))
	}

	got := Suggest(cond, candidates, nil)

	require.Len(t, got, MaxSuggestions)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
	// Highest form wins.
	assert.Equal(t, 14, got[0].ID)
}

func TestSuggestStableOnTies(t *testing.T) {
	cond := conditions(models.FormatODI, models.PitchBalanced, models.WeatherSunny)

	candidates := []Candidate{
		batsmanCandidate(7, "A", 30),
		batsmanCandidate(2, "B", 30),
		batsmanCandidate(9, "C", 30),
	}

	got := Suggest(cond, candidates, nil)

	require.Len(t, got, 3)
	assert.Equal(t, []int{7, 2, 9}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func TestReasoning(t *testing.T) {
	cond := models.MatchConditions{
		Format:    models.FormatT20,
		PitchType: models.PitchBatting,
		Weather:   models.WeatherSunny,
		Venue:     "R. Premadasa Stadium",
	}

	suggestions := []SuggestedPlayer{
		{Name: "Kusal", Role: models.RoleBatsman, Score: 51.55},
		{Name: "Pathum", Role: models.RoleBatsman, Score: 39.5},
	}

	got := Reasoning(cond, suggestions)
	lines := strings.Split(got, "\n")

	require.Len(t, lines, 6)
	assert.Equal(t, "Analysis for T20 match at R. Premadasa Stadium", lines[0])
	assert.Equal(t, "Pitch type: Batting", lines[1])
	assert.Equal(t, "Weather: Sunny", lines[2])
	assert.Equal(t, "Top 2 recommended players:", lines[3])
	assert.Equal(t, "1. Kusal (Batsman) - Score: 51.5", lines[4])
	assert.Equal(t, "2. Pathum (Batsman) - Score: 39.5", lines[5])
}

func TestReasoningNamesAtMostFivePlayers(t *testing.T) {
	cond := conditions(models.FormatODI, models.PitchBalanced, models.WeatherHumid)

	suggestions := make([]SuggestedPlayer, 8)
	for i := range suggestions {
		suggestions[i] = SuggestedPlayer{Name: "P", Role: models.RoleBowler, Score: float64(80 - i)}
	}

	lines := strings.Split(Reasoning(cond, suggestions), "\n")
	// 3 condition lines + header + 5 players.
	assert.Len(t, lines, 9)
	assert.Equal(t, "Top 8 recommended players:", lines[3])
}

func TestReasoningEmptySuggestions(t *testing.T) {
	cond := conditions(models.FormatTest, models.PitchBowling, models.WeatherOvercast)

	lines := strings.Split(Reasoning(cond, nil), "\n")
	assert.Len(t, lines, 3)
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{"empty list is zero", nil, 0},
		{"average scaled to percentage", []float64{60, 40}, 5},
		{"rounded to one decimal", []float64{51.5, 39.8}, 4.6},
		{"capped at 95", []float64{5000}, 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggestions := make([]SuggestedPlayer, 0, len(tt.scores))
			for _, s := range tt.scores {
				suggestions = append(suggestions, SuggestedPlayer{Score: s})
			}
			got := Confidence(suggestions)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 95.0)
		})
	}
}
