package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chathuri2/CrickInfo/models"
	"github.com/chathuri2/CrickInfo/repositories"
	"github.com/chathuri2/CrickInfo/storage"
)

const (
	defaultPlayerPageSize = 20
	maxPlayerPageSize     = 100
	defaultTopPlayersN    = 10
	maxTopPlayersN        = 50
)

type CreatePlayerInput struct {
	Name          string            `json:"name"`
	Role          models.PlayerRole `json:"role"`
	Country       string            `json:"country"`
	MatchesPlayed int               `json:"matches_played"`
}

type UpdatePlayerInput struct {
	Name          *string            `json:"name"`
	Role          *models.PlayerRole `json:"role"`
	Country       *string            `json:"country"`
	MatchesPlayed *int               `json:"matches_played"`
}

type UpsertStatisticsInput struct {
	Format         models.MatchFormat `json:"format"`
	BattingAverage *float64           `json:"batting_average"`
	BowlingAverage *float64           `json:"bowling_average"`
	StrikeRate     *float64           `json:"strike_rate"`
	EconomyRate    *float64           `json:"economy_rate"`
	RecentForm     *float64           `json:"recent_form"`
}

type PlayerPage struct {
	Players []models.Player `json:"players"`
	Total   int             `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

type PlayerComparison struct {
	Format  models.MatchFormat `json:"format"`
	Players []models.Player    `json:"players"`
}

type TopPlayerEntry struct {
	Player     models.Player           `json:"player"`
	Statistics models.PlayerStatistics `json:"statistics"`
}

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayer(ctx context.Context, id int) (*models.Player, error)
	ListPlayers(ctx context.Context, filter repositories.PlayerFilter, format models.MatchFormat) (*PlayerPage, error)
	UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
	UpsertStatistics(ctx context.Context, playerID int, input UpsertStatisticsInput) (*models.PlayerStatistics, error)
	ComparePlayers(ctx context.Context, playerIDs []int, format models.MatchFormat) (*PlayerComparison, error)
	TopPlayers(ctx context.Context, format models.MatchFormat, role models.PlayerRole, limit int) ([]TopPlayerEntry, error)
	ListCountries(ctx context.Context) ([]string, error)
	UploadPhoto(ctx context.Context, playerID int, filename, contentType string, file io.Reader) (*models.Player, error)
	DeletePhoto(ctx context.Context, playerID int) error
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	statsRepo  repositories.PlayerStatisticsRepository
	uploader   storage.FileUploader
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	statsRepo repositories.PlayerStatisticsRepository,
	uploader storage.FileUploader,
) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		statsRepo:  statsRepo,
		uploader:   uploader,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidPlayerRole
	}

	player := &models.Player{
		Name:          name,
		Role:          input.Role,
		Country:       strings.TrimSpace(input.Country),
		MatchesPlayed: input.MatchesPlayed,
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("creating player: %w", err)
	}

	return player, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("fetching player: %w", err)
	}

	stats, err := s.statsRepo.ListByPlayer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching player statistics: %w", err)
	}
	player.Statistics = stats

	s.populatePhotoURL(player)
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context, filter repositories.PlayerFilter, format models.MatchFormat) (*PlayerPage, error) {
	if filter.Limit <= 0 || filter.Limit > maxPlayerPageSize {
		filter.Limit = defaultPlayerPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, ErrInvalidPlayerRole
	}
	if format != "" && !format.Valid() {
		return nil, ErrInvalidMatchFormat
	}

	players, total, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}

	var statsByPlayer map[int]*models.PlayerStatistics
	if format != "" {
		stats, err := s.statsRepo.ListByFormat(ctx, format)
		if err != nil {
			return nil, fmt.Errorf("listing statistics: %w", err)
		}
		statsByPlayer = make(map[int]*models.PlayerStatistics, len(stats))
		for i := range stats {
			statsByPlayer[stats[i].PlayerID] = &stats[i]
		}
	}

	for i := range players {
		s.populatePhotoURL(&players[i])
		if st := statsByPlayer[players[i].ID]; st != nil {
			players[i].Statistics = []models.PlayerStatistics{*st}
		}
	}

	return &PlayerPage{
		Players: players,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("fetching player: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrPlayerNameRequired
		}
		player.Name = name
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, ErrInvalidPlayerRole
		}
		player.Role = *input.Role
	}
	if input.Country != nil {
		player.Country = strings.TrimSpace(*input.Country)
	}
	if input.MatchesPlayed != nil {
		player.MatchesPlayed = *input.MatchesPlayed
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("updating player: %w", err)
	}

	s.populatePhotoURL(player)
	return player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("fetching player: %w", err)
	}

	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("deleting player: %w", err)
	}

	if player.PhotoKey != nil && s.uploader != nil {
		// Orphaned photos are acceptable, the delete already succeeded.
		_ = s.uploader.Delete(ctx, *player.PhotoKey)
	}

	return nil
}

func (s *playerService) UpsertStatistics(ctx context.Context, playerID int, input UpsertStatisticsInput) (*models.PlayerStatistics, error) {
	if !input.Format.Valid() {
		return nil, ErrInvalidMatchFormat
	}
	for _, v := range []*float64{input.BattingAverage, input.BowlingAverage, input.StrikeRate, input.EconomyRate, input.RecentForm} {
		if v != nil && *v < 0 {
			return nil, ErrNegativeStatistic
		}
	}

	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("fetching player: %w", err)
	}

	stats := &models.PlayerStatistics{
		PlayerID:       playerID,
		Format:         input.Format,
		BattingAverage: input.BattingAverage,
		BowlingAverage: input.BowlingAverage,
		StrikeRate:     input.StrikeRate,
		EconomyRate:    input.EconomyRate,
		RecentForm:     input.RecentForm,
	}

	if err := s.statsRepo.Upsert(ctx, stats); err != nil {
		return nil, fmt.Errorf("upserting statistics: %w", err)
	}

	return stats, nil
}

func (s *playerService) ComparePlayers(ctx context.Context, playerIDs []int, format models.MatchFormat) (*PlayerComparison, error) {
	if len(playerIDs) < 2 {
		return nil, fmt.Errorf("%w: at least two players are required for comparison", ErrValidationFailed)
	}
	if !format.Valid() {
		return nil, ErrInvalidMatchFormat
	}

	players := make([]models.Player, len(playerIDs))
	g, gctx := errgroup.WithContext(ctx)

	for i, id := range playerIDs {
		i, id := i, id
		g.Go(func() error {
			player, err := s.playerRepo.GetByID(gctx, id)
			if err != nil {
				if errors.Is(err, repositories.ErrPlayerNotFound) {
					return fmt.Errorf("%w: player %d", ErrPlayerNotFound, id)
				}
				return fmt.Errorf("fetching player %d: %w", id, err)
			}

			stats, err := s.statsRepo.GetByPlayerAndFormat(gctx, id, format)
			if err != nil && !errors.Is(err, repositories.ErrStatisticsNotFound) {
				return fmt.Errorf("fetching statistics for player %d: %w", id, err)
			}
			if stats != nil {
				player.Statistics = []models.PlayerStatistics{*stats}
			}

			s.populatePhotoURL(player)
			players[i] = *player
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	return &PlayerComparison{Format: format, Players: players}, nil
}

func (s *playerService) TopPlayers(ctx context.Context, format models.MatchFormat, role models.PlayerRole, limit int) ([]TopPlayerEntry, error) {
	if !format.Valid() {
		return nil, ErrInvalidMatchFormat
	}
	if role != "" && !role.Valid() {
		return nil, ErrInvalidPlayerRole
	}
	if limit <= 0 || limit > maxTopPlayersN {
		limit = defaultTopPlayersN
	}

	rows, err := s.statsRepo.TopPlayers(ctx, format, role, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching top players: %w", err)
	}

	entries := make([]TopPlayerEntry, 0, len(rows))
	for _, row := range rows {
		s.populatePhotoURL(&row.Player)
		entries = append(entries, TopPlayerEntry{Player: row.Player, Statistics: row.Statistics})
	}
	return entries, nil
}

func (s *playerService) ListCountries(ctx context.Context) ([]string, error) {
	countries, err := s.playerRepo.ListCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing countries: %w", err)
	}
	return countries, nil
}

func (s *playerService) UploadPhoto(ctx context.Context, playerID int, filename, contentType string, file io.Reader) (*models.Player, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("%w: photo storage is not configured", ErrValidationFailed)
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("fetching player: %w", err)
	}

	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("players/%d/photo_%d%s", playerID, time.Now().UnixNano(), ext)

	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("uploading photo: %w", err)
	}

	oldKey := player.PhotoKey
	if err := s.playerRepo.UpdatePhotoKey(ctx, playerID, &result.Key); err != nil {
		_ = s.uploader.Delete(ctx, result.Key)
		return nil, fmt.Errorf("storing photo key: %w", err)
	}

	if oldKey != nil && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	player.PhotoKey = &result.Key
	s.populatePhotoURL(player)
	return player, nil
}

func (s *playerService) DeletePhoto(ctx context.Context, playerID int) error {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("fetching player: %w", err)
	}

	if player.PhotoKey == nil {
		return nil
	}

	if err := s.playerRepo.UpdatePhotoKey(ctx, playerID, nil); err != nil {
		return fmt.Errorf("clearing photo key: %w", err)
	}

	if s.uploader != nil {
		_ = s.uploader.Delete(ctx, *player.PhotoKey)
	}

	return nil
}

func (s *playerService) populatePhotoURL(player *models.Player) {
	if player == nil || player.PhotoKey == nil || s.uploader == nil {
		return
	}
	url := s.uploader.GetPublicURL(*player.PhotoKey)
	if url != "" {
		player.PhotoURL = &url
	}
}
