package analysis

import "github.com/chathuri2/CrickInfo/models"

// Composition thresholds.
const (
	strongBattingAverage = 35.0
	strongBowlingAverage = 30.0 // lower bowling average is better

	t20BattingFloor  = 25.0
	testBattingFloor = 30.0
)

// Composition summarizes a squad's make-up under given conditions.
type Composition struct {
	TotalPlayers     int            `json:"total_players"`
	RoleDistribution map[string]int `json:"role_distribution"`
	AverageBatting   float64        `json:"average_batting"`
	AverageBowling   float64        `json:"average_bowling"`
	Strengths        []string       `json:"strengths"`
	Weaknesses       []string       `json:"weaknesses"`
	Recommendations  []string       `json:"recommendations"`
}

// AnalyzeComposition aggregates the members' averages and role mix and
// derives strengths, weaknesses and format-conditioned advice. Averages
// only count members that actually carry the metric; a squad where
// nobody has a batting average reports 0, not a divide-by-zero guess.
func AnalyzeComposition(members []Candidate, cond models.MatchConditions) Composition {
	c := Composition{
		TotalPlayers:     len(members),
		RoleDistribution: map[string]int{},
		Strengths:        []string{},
		Weaknesses:       []string{},
		Recommendations:  []string{},
	}

	battingSum, battingCount := 0.0, 0
	bowlingSum, bowlingCount := 0.0, 0

	for _, m := range members {
		c.RoleDistribution[string(m.Player.Role)]++

		if m.Stats == nil {
			continue
		}
		if m.Stats.BattingAverage != nil {
			battingSum += *m.Stats.BattingAverage
			battingCount++
		}
		if m.Stats.BowlingAverage != nil {
			bowlingSum += *m.Stats.BowlingAverage
			bowlingCount++
		}
	}

	if battingCount > 0 {
		c.AverageBatting = battingSum / float64(battingCount)
	}
	if bowlingCount > 0 {
		c.AverageBowling = bowlingSum / float64(bowlingCount)
	}

	if c.AverageBatting > strongBattingAverage {
		c.Strengths = append(c.Strengths, "Strong batting lineup")
	}
	if c.AverageBowling < strongBowlingAverage {
		c.Strengths = append(c.Strengths, "Strong bowling attack")
	}

	if c.RoleDistribution[string(models.RoleBatsman)] < minBatsmen {
		c.Weaknesses = append(c.Weaknesses, "Limited batting options")
	}
	if c.RoleDistribution[string(models.RoleBowler)] < minBowlers {
		c.Weaknesses = append(c.Weaknesses, "Limited bowling options")
	}
	if c.RoleDistribution[string(models.RoleWicketKeeper)] < minWicketKeeper {
		c.Weaknesses = append(c.Weaknesses, "No wicket keeper")
	}

	switch cond.Format {
	case models.FormatT20:
		if c.AverageBatting < t20BattingFloor {
			c.Recommendations = append(c.Recommendations, "Consider adding more aggressive batsmen for T20")
		}
	case models.FormatTest:
		if c.AverageBatting < testBattingFloor {
			c.Recommendations = append(c.Recommendations, "Consider adding more defensive batsmen for Test cricket")
		}
		// ODI carries no format-specific recommendation.
	}

	return c
}
