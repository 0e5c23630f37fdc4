package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chathuri2/CrickInfo/models"
)

func roster(batsmen, bowlers, allRounders, keepers int) []models.Player {
	players := make([]models.Player, 0)
	add := func(n int, role models.PlayerRole) {
		for i := 0; i < n; i++ {
			players = append(players, models.Player{ID: len(players) + 1, Role: role})
		}
	}
	add(batsmen, models.RoleBatsman)
	add(bowlers, models.RoleBowler)
	add(allRounders, models.RoleAllRounder)
	add(keepers, models.RoleWicketKeeper)
	return players
}

func TestValidateSquadCountsRoles(t *testing.T) {
	captain := 1
	keeper := 11
	squad := models.Squad{CaptainID: &captain, WicketKeeperID: &keeper}

	v := ValidateSquad(squad, roster(5, 4, 1, 1))

	assert.Equal(t, 11, v.TotalPlayers)
	assert.Equal(t, 5, v.Batsmen)
	assert.Equal(t, 4, v.Bowlers)
	assert.Equal(t, 1, v.AllRounders)
	assert.Equal(t, 1, v.WicketKeepers)
	assert.True(t, v.HasCaptain)
	assert.True(t, v.HasWicketKeeper)
	assert.True(t, v.IsValid)
	assert.Empty(t, v.Issues)
}

func TestValidateSquadSizeBounds(t *testing.T) {
	tests := []struct {
		name    string
		members []models.Player
		valid   bool
		issue   string
	}{
		{"ten players is too few", roster(4, 4, 1, 1), false, "Squad must have at least 11 players"},
		{"eleven players is enough", roster(5, 4, 1, 1), true, ""},
		{"fifteen players is allowed", roster(6, 6, 2, 1), true, ""},
		{"sixteen players is too many", roster(7, 6, 2, 1), false, "Squad cannot have more than 15 players"},
	}

	captain := 1
	keeper := 2
	squad := models.Squad{CaptainID: &captain, WicketKeeperID: &keeper}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateSquad(squad, tt.members)
			assert.Equal(t, tt.valid, v.IsValid)
			if tt.issue != "" {
				assert.Contains(t, v.Issues, tt.issue)
			}
		})
	}
}

func TestValidateSquadAdvisoryIssuesDoNotInvalidate(t *testing.T) {
	// Eleven players but no keeper, thin bowling, no designations.
	v := ValidateSquad(models.Squad{}, roster(7, 2, 2, 0))

	assert.True(t, v.IsValid)
	assert.Contains(t, v.Issues, "Recommended to have at least 3 bowlers")
	assert.Contains(t, v.Issues, "Recommended to have at least 1 wicket keeper")
	assert.Contains(t, v.Issues, "No captain selected")
	assert.Contains(t, v.Issues, "No wicket keeper selected")
	assert.NotContains(t, v.Issues, "Recommended to have at least 3 batsmen")
}

func TestValidateSquadEmptyRoster(t *testing.T) {
	v := ValidateSquad(models.Squad{}, nil)

	assert.False(t, v.IsValid)
	assert.Equal(t, 0, v.TotalPlayers)
	assert.Contains(t, v.Issues, "Squad must have at least 11 players")
}
