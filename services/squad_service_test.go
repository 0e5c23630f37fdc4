package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chathuri2/CrickInfo/models"
)

const ownerID = 1

func newSquadFixture(t *testing.T) (SquadService, *fakeSquadRepo, *fakePlayerRepo) {
	t.Helper()
	players := newFakePlayerRepo()
	squads := newFakeSquadRepo(players)
	return NewSquadService(squads, players), squads, players
}

func TestSquadServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSquadFixture(t)

	squad, err := svc.CreateSquad(ctx, ownerID, CreateSquadInput{Name: "Test XI"})
	require.NoError(t, err)
	assert.Equal(t, "Test XI", squad.Name)
	assert.Equal(t, ownerID, squad.UserID)
	assert.Empty(t, squad.Players)

	_, err = svc.CreateSquad(ctx, ownerID, CreateSquadInput{Name: "Test XI"})
	assert.ErrorIs(t, err, ErrSquadNameConflict)

	_, err = svc.CreateSquad(ctx, ownerID, CreateSquadInput{Name: "   "})
	assert.ErrorIs(t, err, ErrSquadNameRequired)
}

func TestSquadServiceOwnerScoping(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSquadFixture(t)

	squad, err := svc.CreateSquad(ctx, ownerID, CreateSquadInput{Name: "Mine"})
	require.NoError(t, err)

	_, err = svc.GetSquad(ctx, squad.ID, ownerID+1)
	assert.ErrorIs(t, err, ErrSquadNotFound)

	err = svc.DeleteSquad(ctx, squad.ID, ownerID+1)
	assert.ErrorIs(t, err, ErrSquadNotFound)

	_, err = svc.GetSquad(ctx, squad.ID, ownerID)
	assert.NoError(t, err)
}

func TestSquadServiceMembership(t *testing.T) {
	ctx := context.Background()
	svc, _, players := newSquadFixture(t)

	batsman := players.add("Batsman One", models.RoleBatsman)
	keeper := players.add("Keeper One", models.RoleWicketKeeper)

	squad, err := svc.CreateSquad(ctx, ownerID, CreateSquadInput{Name: "Members"})
	require.NoError(t, err)

	loaded, err := svc.AddPlayer(ctx, squad.ID, ownerID, batsman.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Players, 1)

	_, err = svc.AddPlayer(ctx, squad.ID, ownerID, batsman.ID)
	assert.ErrorIs(t, err, ErrPlayerAlreadyInSquad)

	_, err = svc.AddPlayer(ctx, squad.ID, ownerID, 9999)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	loaded, err = svc.AddPlayer(ctx, squad.ID, ownerID, keeper.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Players, 2)

	loaded, err = svc.RemovePlayer(ctx, squad.ID, ownerID, batsman.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Players, 1)

	_, err = svc.RemovePlayer(ctx, squad.ID, ownerID, batsman.ID)
	assert.ErrorIs(t, err, ErrPlayerNotInSquad)
}

func TestSquadServiceDesignations(t *testing.T) {
	ctx := context.Background()
	svc, _, players := newSquadFixture(t)

	batsman := players.add("Captain Candidate", models.RoleBatsman)
	keeper := players.add("Keeper Candidate", models.RoleWicketKeeper)
	outsider := players.add("Outsider", models.RoleBowler)

	squad, err := svc.CreateSquad(ctx, ownerID, CreateSquadInput{Name: "Leadership"})
	require.NoError(t, err)

	_, err = svc.AddPlayer(ctx, squad.ID, ownerID, batsman.ID)
	require.NoError(t, err)
	_, err = svc.AddPlayer(ctx, squad.ID, ownerID, keeper.ID)
	require.NoError(t, err)

	t.Run("captain must be a member", func(t *testing.T) {
		_, err := svc.SetCaptain(ctx, squad.ID, ownerID, &outsider.ID)
		assert.ErrorIs(t, err, ErrCaptainNotInSquad)

		loaded, err := svc.SetCaptain(ctx, squad.ID, ownerID, &batsman.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded.CaptainID)
		assert.Equal(t, batsman.ID, *loaded.CaptainID)
		require.NotNil(t, loaded.Captain)
		assert.Equal(t, batsman.Name, loaded.Captain.Name)
	})

	t.Run("keeper must be a member with the keeper role", func(t *testing.T) {
		_, err := svc.SetWicketKeeper(ctx, squad.ID, ownerID, &batsman.ID)
		assert.ErrorIs(t, err, ErrKeeperWrongRole)

		_, err = svc.SetWicketKeeper(ctx, squad.ID, ownerID, &outsider.ID)
		assert.ErrorIs(t, err, ErrKeeperNotInSquad)

		loaded, err := svc.SetWicketKeeper(ctx, squad.ID, ownerID, &keeper.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded.WicketKeeperID)
		assert.Equal(t, keeper.ID, *loaded.WicketKeeperID)
	})

	t.Run("nil clears the designation", func(t *testing.T) {
		loaded, err := svc.SetCaptain(ctx, squad.ID, ownerID, nil)
		require.NoError(t, err)
		assert.Nil(t, loaded.CaptainID)
		assert.Nil(t, loaded.Captain)
	})

	t.Run("removing a designated player clears the reference", func(t *testing.T) {
		_, err := svc.SetCaptain(ctx, squad.ID, ownerID, &batsman.ID)
		require.NoError(t, err)

		loaded, err := svc.RemovePlayer(ctx, squad.ID, ownerID, batsman.ID)
		require.NoError(t, err)
		assert.Nil(t, loaded.CaptainID)
	})
}

func TestSquadServiceValidate(t *testing.T) {
	ctx := context.Background()
	svc, _, players := newSquadFixture(t)

	squad, err := svc.CreateSquad(ctx, ownerID, CreateSquadInput{Name: "Thin Squad"})
	require.NoError(t, err)

	p := players.add("Solo", models.RoleBatsman)
	_, err = svc.AddPlayer(ctx, squad.ID, ownerID, p.ID)
	require.NoError(t, err)

	validation, err := svc.ValidateSquad(ctx, squad.ID, ownerID)
	require.NoError(t, err)

	assert.False(t, validation.IsValid)
	assert.Equal(t, 1, validation.TotalPlayers)
	assert.Contains(t, validation.Issues, "Squad must have at least 11 players")
}
