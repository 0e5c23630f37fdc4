package analysis

import "github.com/chathuri2/CrickInfo/models"

// Roster size bounds. Outside this range the squad is invalid; the
// role-mix checks below are advisory only.
const (
	MinSquadSize = 11
	MaxSquadSize = 15
)

const (
	minBatsmen      = 3
	minBowlers      = 3
	minWicketKeeper = 1
)

// SquadValidation is the composition report for one squad.
type SquadValidation struct {
	TotalPlayers    int        `json:"total_players"`
	Batsmen         int        `json:"batsmen"`
	Bowlers         int        `json:"bowlers"`
	AllRounders     int        `json:"all_rounders"`
	WicketKeepers   int        `json:"wicket_keepers"`
	HasCaptain      bool       `json:"has_captain"`
	HasWicketKeeper bool       `json:"has_wicket_keeper"`
	IsValid         bool       `json:"is_valid"`
	Issues          []string   `json:"issues"`
}

// ValidateSquad checks a squad's roster against selection rules. Size
// violations fail the squad outright; everything else is reported as an
// advisory issue without flipping IsValid. HasCaptain/HasWicketKeeper
// reflect the designation fields as stored, they are not re-checked
// against current membership here.
func ValidateSquad(squad models.Squad, members []models.Player) SquadValidation {
	v := SquadValidation{
		TotalPlayers:    len(members),
		HasCaptain:      squad.CaptainID != nil,
		HasWicketKeeper: squad.WicketKeeperID != nil,
		IsValid:         true,
		Issues:          []string{},
	}

	for _, p := range members {
		switch p.Role {
		case models.RoleBatsman:
			v.Batsmen++
		case models.RoleBowler:
			v.Bowlers++
		case models.RoleAllRounder:
			v.AllRounders++
		case models.RoleWicketKeeper:
			v.WicketKeepers++
		}
	}

	if v.TotalPlayers < MinSquadSize {
		v.IsValid = false
		v.Issues = append(v.Issues, "Squad must have at least 11 players")
	}
	if v.TotalPlayers > MaxSquadSize {
		v.IsValid = false
		v.Issues = append(v.Issues, "Squad cannot have more than 15 players")
	}

	if v.Batsmen < minBatsmen {
		v.Issues = append(v.Issues, "Recommended to have at least 3 batsmen")
	}
	if v.Bowlers < minBowlers {
		v.Issues = append(v.Issues, "Recommended to have at least 3 bowlers")
	}
	if v.WicketKeepers < minWicketKeeper {
		v.Issues = append(v.Issues, "Recommended to have at least 1 wicket keeper")
	}
	if !v.HasCaptain {
		v.Issues = append(v.Issues, "No captain selected")
	}
	if !v.HasWicketKeeper {
		v.Issues = append(v.Issues, "No wicket keeper selected")
	}

	return v
}
