package services

import (
	"context"
	"sort"
	"time"

	"github.com/chathuri2/CrickInfo/models"
	"github.com/chathuri2/CrickInfo/repositories"
)

// In-memory repository fakes used by the service tests.

type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*models.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
		if u.Username == user.Username {
			return repositories.ErrUserUsernameConflict
		}
	}
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.nextID++
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetByPasswordResetToken(_ context.Context, token string) (*models.User, error) {
	for _, u := range f.users {
		if u.PasswordResetToken != nil && *u.PasswordResetToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, limit, offset int) ([]models.User, error) {
	ids := make([]int, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	var out []models.User
	for i, id := range ids {
		if i < offset || len(out) >= limit {
			continue
		}
		out = append(out, *f.users[id])
	}
	return out, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int, error) { return len(f.users), nil }

func (f *fakeUserRepo) CountByRole(_ context.Context, role models.UserRole) (int, error) {
	n := 0
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) CountCreatedSince(_ context.Context, since time.Time) (int, error) {
	n := 0
	for _, u := range f.users {
		if u.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

type fakePlayerRepo struct {
	players map[int]*models.Player
	nextID  int
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: map[int]*models.Player{}, nextID: 1}
}

func (f *fakePlayerRepo) add(name string, role models.PlayerRole) *models.Player {
	p := &models.Player{ID: f.nextID, Name: name, Role: role, Country: "India"}
	f.nextID++
	f.players[p.ID] = p
	return p
}

func (f *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	player.ID = f.nextID
	f.nextID++
	cp := *player
	f.players[player.ID] = &cp
	return nil
}

func (f *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlayerRepo) GetByName(_ context.Context, name string) (*models.Player, error) {
	for _, p := range f.players {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (f *fakePlayerRepo) Update(_ context.Context, player *models.Player) error {
	if _, ok := f.players[player.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	cp := *player
	f.players[player.ID] = &cp
	return nil
}

func (f *fakePlayerRepo) UpdatePhotoKey(_ context.Context, id int, key *string) error {
	p, ok := f.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.PhotoKey = key
	return nil
}

func (f *fakePlayerRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(f.players, id)
	return nil
}

func (f *fakePlayerRepo) List(ctx context.Context, filter repositories.PlayerFilter) ([]models.Player, int, error) {
	all, _ := f.ListAll(ctx)
	return all, len(all), nil
}

func (f *fakePlayerRepo) ListAll(_ context.Context) ([]models.Player, error) {
	ids := make([]int, 0, len(f.players))
	for id := range f.players {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]models.Player, 0, len(ids))
	for _, id := range ids {
		out = append(out, *f.players[id])
	}
	return out, nil
}

func (f *fakePlayerRepo) ListCountries(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, p := range f.players {
		if !seen[p.Country] {
			seen[p.Country] = true
			out = append(out, p.Country)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakePlayerRepo) Count(_ context.Context) (int, error) { return len(f.players), nil }

func (f *fakePlayerRepo) CountByRole(_ context.Context) (map[models.PlayerRole]int, error) {
	out := map[models.PlayerRole]int{}
	for _, p := range f.players {
		out[p.Role]++
	}
	return out, nil
}

type statsKey struct {
	playerID int
	format   models.MatchFormat
}

type fakeStatsRepo struct {
	stats  map[statsKey]*models.PlayerStatistics
	nextID int
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{stats: map[statsKey]*models.PlayerStatistics{}, nextID: 1}
}

func (f *fakeStatsRepo) Upsert(_ context.Context, stats *models.PlayerStatistics) error {
	key := statsKey{stats.PlayerID, stats.Format}
	if existing, ok := f.stats[key]; ok {
		stats.ID = existing.ID
	} else {
		stats.ID = f.nextID
		f.nextID++
	}
	cp := *stats
	f.stats[key] = &cp
	return nil
}

func (f *fakeStatsRepo) GetByPlayerAndFormat(_ context.Context, playerID int, format models.MatchFormat) (*models.PlayerStatistics, error) {
	st, ok := f.stats[statsKey{playerID, format}]
	if !ok {
		return nil, repositories.ErrStatisticsNotFound
	}
	cp := *st
	return &cp, nil
}

func (f *fakeStatsRepo) ListByPlayer(_ context.Context, playerID int) ([]models.PlayerStatistics, error) {
	var out []models.PlayerStatistics
	for _, st := range f.stats {
		if st.PlayerID == playerID {
			out = append(out, *st)
		}
	}
	return out, nil
}

func (f *fakeStatsRepo) ListByFormat(_ context.Context, format models.MatchFormat) ([]models.PlayerStatistics, error) {
	var out []models.PlayerStatistics
	for _, st := range f.stats {
		if st.Format == format {
			out = append(out, *st)
		}
	}
	return out, nil
}

func (f *fakeStatsRepo) TopPlayers(_ context.Context, _ models.MatchFormat, _ models.PlayerRole, _ int) ([]repositories.PlayerWithStatistics, error) {
	return nil, nil
}

func (f *fakeStatsRepo) Count(_ context.Context) (int, error) { return len(f.stats), nil }

type fakeSquadRepo struct {
	squads  map[int]*models.Squad
	members map[int][]int
	players *fakePlayerRepo
	nextID  int
}

func newFakeSquadRepo(players *fakePlayerRepo) *fakeSquadRepo {
	return &fakeSquadRepo{
		squads:  map[int]*models.Squad{},
		members: map[int][]int{},
		players: players,
		nextID:  1,
	}
}

func (f *fakeSquadRepo) Create(_ context.Context, squad *models.Squad) error {
	for _, s := range f.squads {
		if s.UserID == squad.UserID && s.Name == squad.Name {
			return repositories.ErrSquadNameConflict
		}
	}
	squad.ID = f.nextID
	squad.CreatedAt = time.Now()
	squad.UpdatedAt = squad.CreatedAt
	f.nextID++
	cp := *squad
	f.squads[squad.ID] = &cp
	return nil
}

func (f *fakeSquadRepo) GetByIDAndOwner(_ context.Context, id, userID int) (*models.Squad, error) {
	s, ok := f.squads[id]
	if !ok || s.UserID != userID {
		return nil, repositories.ErrSquadNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSquadRepo) ListByOwner(_ context.Context, userID int) ([]models.Squad, error) {
	var out []models.Squad
	for _, s := range f.squads {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSquadRepo) Update(_ context.Context, squad *models.Squad) error {
	if _, ok := f.squads[squad.ID]; !ok {
		return repositories.ErrSquadNotFound
	}
	cp := *squad
	f.squads[squad.ID] = &cp
	return nil
}

func (f *fakeSquadRepo) Delete(_ context.Context, id, userID int) error {
	s, ok := f.squads[id]
	if !ok || s.UserID != userID {
		return repositories.ErrSquadNotFound
	}
	delete(f.squads, id)
	delete(f.members, id)
	return nil
}

func (f *fakeSquadRepo) AddPlayer(_ context.Context, squadID, playerID int) error {
	if _, ok := f.squads[squadID]; !ok {
		return repositories.ErrSquadNotFound
	}
	if _, ok := f.players.players[playerID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	for _, id := range f.members[squadID] {
		if id == playerID {
			return repositories.ErrSquadPlayerConflict
		}
	}
	f.members[squadID] = append(f.members[squadID], playerID)
	return nil
}

func (f *fakeSquadRepo) RemovePlayer(_ context.Context, squadID, playerID int) error {
	ids := f.members[squadID]
	for i, id := range ids {
		if id == playerID {
			f.members[squadID] = append(ids[:i], ids[i+1:]...)
			s := f.squads[squadID]
			if s.CaptainID != nil && *s.CaptainID == playerID {
				s.CaptainID = nil
			}
			if s.WicketKeeperID != nil && *s.WicketKeeperID == playerID {
				s.WicketKeeperID = nil
			}
			return nil
		}
	}
	return repositories.ErrSquadPlayerNotFound
}

func (f *fakeSquadRepo) ListMembers(_ context.Context, squadID int) ([]models.Player, error) {
	ids := append([]int(nil), f.members[squadID]...)
	sort.Ints(ids)
	out := make([]models.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.players.players[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeSquadRepo) IsMember(_ context.Context, squadID, playerID int) (bool, error) {
	for _, id := range f.members[squadID] {
		if id == playerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSquadRepo) Count(_ context.Context) (int, error) { return len(f.squads), nil }

func (f *fakeSquadRepo) CountCreatedSince(_ context.Context, since time.Time) (int, error) {
	n := 0
	for _, s := range f.squads {
		if s.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

type fakeConditionsRepo struct {
	conditions map[int]*models.MatchConditions
	nextID     int
}

func newFakeConditionsRepo() *fakeConditionsRepo {
	return &fakeConditionsRepo{conditions: map[int]*models.MatchConditions{}, nextID: 1}
}

func (f *fakeConditionsRepo) Create(_ context.Context, conditions *models.MatchConditions) error {
	conditions.ID = f.nextID
	conditions.CreatedAt = time.Now()
	f.nextID++
	cp := *conditions
	f.conditions[conditions.ID] = &cp
	return nil
}

func (f *fakeConditionsRepo) GetByID(_ context.Context, id int) (*models.MatchConditions, error) {
	c, ok := f.conditions[id]
	if !ok {
		return nil, repositories.ErrMatchConditionsNotFound
	}
	cp := *c
	return &cp, nil
}

type fakeSuggestionRepo struct {
	suggestions map[int]*models.SmartSuggestion
	nextID      int
}

func newFakeSuggestionRepo() *fakeSuggestionRepo {
	return &fakeSuggestionRepo{suggestions: map[int]*models.SmartSuggestion{}, nextID: 1}
}

func (f *fakeSuggestionRepo) Create(_ context.Context, suggestion *models.SmartSuggestion, players []models.SuggestionPlayer) error {
	suggestion.ID = f.nextID
	suggestion.CreatedAt = time.Now()
	f.nextID++
	for i := range players {
		players[i].ID = i + 1
		players[i].SuggestionID = suggestion.ID
	}
	suggestion.SuggestedPlayers = players
	cp := *suggestion
	f.suggestions[suggestion.ID] = &cp
	return nil
}

func (f *fakeSuggestionRepo) GetByID(_ context.Context, id int) (*models.SmartSuggestion, error) {
	s, ok := f.suggestions[id]
	if !ok {
		return nil, repositories.ErrSuggestionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSuggestionRepo) ListBySquad(_ context.Context, squadID int) ([]models.SmartSuggestion, error) {
	var out []models.SmartSuggestion
	for _, s := range f.suggestions {
		if s.SquadID == squadID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
