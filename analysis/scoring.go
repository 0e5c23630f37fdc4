package analysis

import "github.com/chathuri2/CrickInfo/models"

// Scoring weights. Each term maps to one cricketing heuristic so the
// total stays decomposable for the reasoning text.
const (
	recentFormWeight = 0.3

	t20StrikeRateWeight = 0.2
	t20EconomyWeight    = 0.1

	testBattingWeight = 0.4
	testBowlingWeight = 0.3

	pitchBattingWeight = 0.3
	pitchBowlingWeight = 0.3

	spinFriendlyBowlerBonus = 20.0
	rainyBowlerBonus        = 15.0

	// Reference value for "lower is better" bowling metrics: a bowler
	// with economy/average above this contributes a negative term.
	bowlingBaseline = 50.0
)

// Score returns a player's suitability score for the given match
// conditions. Pure and deterministic. Terms for absent statistics are
// skipped, and a negative raw total clamps to zero. A nil stats record
// scores zero; callers wanting eligibility must exclude such players
// themselves rather than treat zero as a ranked result.
func Score(player models.Player, stats *models.PlayerStatistics, cond models.MatchConditions) float64 {
	if stats == nil {
		return 0
	}

	score := 0.0

	if stats.RecentForm != nil {
		score += *stats.RecentForm * recentFormWeight
	}

	switch cond.Format {
	case models.FormatT20:
		if stats.StrikeRate != nil {
			score += *stats.StrikeRate * t20StrikeRateWeight
		}
		if stats.EconomyRate != nil {
			score += (bowlingBaseline - *stats.EconomyRate) * t20EconomyWeight
		}
	case models.FormatTest:
		if stats.BattingAverage != nil {
			score += *stats.BattingAverage * testBattingWeight
		}
		if stats.BowlingAverage != nil {
			score += (bowlingBaseline - *stats.BowlingAverage) * testBowlingWeight
		}
		// ODI has no format-specific term.
	}

	switch cond.PitchType {
	case models.PitchBatting:
		if player.Role == models.RoleBatsman && stats.BattingAverage != nil {
			score += *stats.BattingAverage * pitchBattingWeight
		}
	case models.PitchBowling:
		if player.Role == models.RoleBowler && stats.BowlingAverage != nil {
			score += (bowlingBaseline - *stats.BowlingAverage) * pitchBowlingWeight
		}
	case models.PitchSpinFriendly:
		if player.Role == models.RoleBowler {
			score += spinFriendlyBowlerBonus
		}
	}

	if cond.Weather == models.WeatherRainy && player.Role == models.RoleBowler {
		score += rainyBowlerBonus
	}

	if score < 0 {
		return 0
	}
	return score
}
