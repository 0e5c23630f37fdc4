package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chathuri2/CrickInfo/models"
)

func newAdminFixture(t *testing.T) (AdminService, *fakeUserRepo, *fakePlayerRepo, *fakeStatsRepo) {
	t.Helper()
	users := newFakeUserRepo()
	players := newFakePlayerRepo()
	stats := newFakeStatsRepo()
	squads := newFakeSquadRepo(players)
	return NewAdminService(nil, users, players, stats, squads), users, players, stats
}

func TestAdminServiceUserManagement(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := newAdminFixture(t)

	admin := &models.User{Username: "admin", Email: "admin@example.com", Role: models.RoleAdmin}
	require.NoError(t, users.Create(ctx, admin))
	member := &models.User{Username: "member", Email: "member@example.com", Role: models.RoleUser}
	require.NoError(t, users.Create(ctx, member))

	t.Run("promote user", func(t *testing.T) {
		updated, err := svc.UpdateUserRole(ctx, member.ID, models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, updated.Role)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		_, err := svc.UpdateUserRole(ctx, member.ID, "superuser")
		assert.ErrorIs(t, err, ErrInvalidUserRole)
	})

	t.Run("cannot delete self", func(t *testing.T) {
		err := svc.DeleteUser(ctx, admin.ID, admin.ID)
		assert.ErrorIs(t, err, ErrCannotDeleteOwnUser)
	})

	t.Run("delete other user", func(t *testing.T) {
		require.NoError(t, svc.DeleteUser(ctx, admin.ID, member.ID))
		err := svc.DeleteUser(ctx, admin.ID, member.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAdminServiceSystemStatistics(t *testing.T) {
	ctx := context.Background()
	svc, users, players, _ := newAdminFixture(t)

	require.NoError(t, users.Create(ctx, &models.User{Username: "a", Email: "a@example.com", Role: models.RoleAdmin}))
	require.NoError(t, users.Create(ctx, &models.User{Username: "b", Email: "b@example.com", Role: models.RoleUser}))
	players.add("One", models.RoleBatsman)
	players.add("Two", models.RoleBatsman)
	players.add("Three", models.RoleBowler)

	stats, err := svc.SystemStatistics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Users.Total)
	assert.Equal(t, 1, stats.Users.Admins)
	assert.Equal(t, 1, stats.Users.Regular)
	assert.Equal(t, 3, stats.Players.Total)
	assert.Equal(t, 2, stats.Players.ByRole[models.RoleBatsman])
	assert.Equal(t, 1, stats.Players.ByRole[models.RoleBowler])
}

func TestAdminServiceBulkImportPlayers(t *testing.T) {
	ctx := context.Background()
	svc, _, players, _ := newAdminFixture(t)

	players.add("Existing Player", models.RoleBatsman)

	result, err := svc.BulkImportPlayers(ctx, []BulkPlayerRow{
		{Name: "Fresh Import", Role: models.RoleBowler, Country: "Sri Lanka"},
		{Name: "Existing Player", Role: models.RoleBatsman},
		{Name: "", Role: models.RoleBatsman},
		{Name: "Bad Role", Role: "Coach"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 3, result.Skipped)
	assert.Len(t, result.Errors, 3)

	_, err = players.GetByName(ctx, "Fresh Import")
	assert.NoError(t, err)
}

func TestAdminServiceBulkImportStatistics(t *testing.T) {
	ctx := context.Background()
	svc, _, players, stats := newAdminFixture(t)

	p := players.add("Stat Target", models.RoleBatsman)

	result, err := svc.BulkImportStatistics(ctx, []BulkStatisticsRow{
		{PlayerID: p.ID, Format: models.FormatT20, BattingAverage: fptr(42)},
		{PlayerID: 999, Format: models.FormatT20},
		{PlayerID: p.ID, Format: "T30"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Skipped)

	stored, err := stats.GetByPlayerAndFormat(ctx, p.ID, models.FormatT20)
	require.NoError(t, err)
	assert.InDelta(t, 42, *stored.BattingAverage, 1e-9)
}
