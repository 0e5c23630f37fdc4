package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/chathuri2/CrickInfo/models"
)

// MaxSuggestions caps how many players one suggestion may contain.
const MaxSuggestions = 10

// reasoningPlayerLimit is how many of the ranked players the reasoning
// text names explicitly.
const reasoningPlayerLimit = 5

// Candidate pairs a catalog player with their statistics for one
// format. Stats may be nil when the player has no record for that
// format.
type Candidate struct {
	Player models.Player
	Stats  *models.PlayerStatistics
}

// SuggestedPlayer is one ranked entry of a suggestion.
type SuggestedPlayer struct {
	ID         int                      `json:"id"`
	Name       string                   `json:"name"`
	Role       models.PlayerRole        `json:"role"`
	Country    string                   `json:"country"`
	Score      float64                  `json:"score"`
	Statistics *models.PlayerStatistics `json:"statistics"`
}

// Suggest ranks candidates by suitability for the given conditions and
// returns at most MaxSuggestions entries in strictly non-increasing
// score order. Excluded players (current squad members), players
// without statistics for the format, and players scoring zero are all
// left out. Ties keep the candidates' original order, which callers
// provide in catalog (ascending id) order.
func Suggest(cond models.MatchConditions, candidates []Candidate, excluded map[int]struct{}) []SuggestedPlayer {
	suggestions := make([]SuggestedPlayer, 0)

	for _, c := range candidates {
		if _, inSquad := excluded[c.Player.ID]; inSquad {
			continue
		}
		if c.Stats == nil {
			continue
		}

		score := Score(c.Player, c.Stats, cond)
		if score <= 0 {
			continue
		}

		suggestions = append(suggestions, SuggestedPlayer{
			ID:         c.Player.ID,
			Name:       c.Player.Name,
			Role:       c.Player.Role,
			Country:    c.Player.Country,
			Score:      score,
			Statistics: c.Stats,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions
}

// Reasoning builds the human-readable audit text for a suggestion:
// conditions summary plus up to five numbered players in rank order.
func Reasoning(cond models.MatchConditions, suggestions []SuggestedPlayer) string {
	lines := []string{
		fmt.Sprintf("Analysis for %s match at %s", cond.Format, cond.Venue),
		fmt.Sprintf("Pitch type: %s", cond.PitchType),
		fmt.Sprintf("Weather: %s", cond.Weather),
	}

	if len(suggestions) > 0 {
		lines = append(lines, fmt.Sprintf("Top %d recommended players:", len(suggestions)))
		for i, p := range suggestions {
			if i >= reasoningPlayerLimit {
				break
			}
			lines = append(lines, fmt.Sprintf("%d. %s (%s) - Score: %.1f", i+1, p.Name, p.Role, p.Score))
		}
	}

	return strings.Join(lines, "\n")
}

// Confidence derives the aggregate confidence percentage from the
// suggested players' scores: mean score scaled down and capped at 95,
// rounded to one decimal. An empty suggestion list has confidence 0.
func Confidence(suggestions []SuggestedPlayer) float64 {
	if len(suggestions) == 0 {
		return 0
	}

	total := 0.0
	for _, p := range suggestions {
		total += p.Score
	}
	avg := total / float64(len(suggestions))

	confidence := math.Min(95, avg/10)
	return math.Round(confidence*10) / 10
}
