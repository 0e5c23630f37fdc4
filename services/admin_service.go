package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chathuri2/CrickInfo/models"
	"github.com/chathuri2/CrickInfo/repositories"
)

const (
	defaultUserPageSize = 20
	maxUserPageSize     = 100
	recentWindow        = 7 * 24 * time.Hour
)

type UserPage struct {
	Users  []models.User `json:"users"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

type SystemStatistics struct {
	Users struct {
		Total   int `json:"total"`
		Admins  int `json:"admins"`
		Regular int `json:"regular"`
		Recent  int `json:"recent"`
	} `json:"users"`
	Players struct {
		Total  int                       `json:"total"`
		ByRole map[models.PlayerRole]int `json:"by_role"`
	} `json:"players"`
	Squads struct {
		Total  int `json:"total"`
		Recent int `json:"recent"`
	} `json:"squads"`
	StatisticsRows int `json:"statistics_rows"`
}

type BulkPlayerRow struct {
	Name          string            `json:"name"`
	Role          models.PlayerRole `json:"role"`
	Country       string            `json:"country"`
	MatchesPlayed int               `json:"matches_played"`
}

type BulkStatisticsRow struct {
	PlayerID       int                `json:"player_id"`
	Format         models.MatchFormat `json:"format"`
	BattingAverage *float64           `json:"batting_average"`
	BowlingAverage *float64           `json:"bowling_average"`
	StrikeRate     *float64           `json:"strike_rate"`
	EconomyRate    *float64           `json:"economy_rate"`
	RecentForm     *float64           `json:"recent_form"`
}

type BulkImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

type HealthStatus struct {
	Database string         `json:"database"`
	Tables   map[string]int `json:"tables"`
}

type AdminService interface {
	ListUsers(ctx context.Context, limit, offset int) (*UserPage, error)
	UpdateUserRole(ctx context.Context, userID int, role models.UserRole) (*models.User, error)
	DeleteUser(ctx context.Context, actorID, userID int) error
	SystemStatistics(ctx context.Context) (*SystemStatistics, error)
	BulkImportPlayers(ctx context.Context, rows []BulkPlayerRow) (*BulkImportResult, error)
	BulkImportStatistics(ctx context.Context, rows []BulkStatisticsRow) (*BulkImportResult, error)
	Health(ctx context.Context) (*HealthStatus, error)
}

type adminService struct {
	db         *sql.DB
	userRepo   repositories.UserRepository
	playerRepo repositories.PlayerRepository
	statsRepo  repositories.PlayerStatisticsRepository
	squadRepo  repositories.SquadRepository
}

func NewAdminService(
	db *sql.DB,
	userRepo repositories.UserRepository,
	playerRepo repositories.PlayerRepository,
	statsRepo repositories.PlayerStatisticsRepository,
	squadRepo repositories.SquadRepository,
) AdminService {
	return &adminService{
		db:         db,
		userRepo:   userRepo,
		playerRepo: playerRepo,
		statsRepo:  statsRepo,
		squadRepo:  squadRepo,
	}
}

func (s *adminService) ListUsers(ctx context.Context, limit, offset int) (*UserPage, error) {
	if limit <= 0 || limit > maxUserPageSize {
		limit = defaultUserPageSize
	}
	if offset < 0 {
		offset = 0
	}

	var (
		users []models.User
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.userRepo.List(gctx, limit, offset)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.userRepo.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return &UserPage{Users: users, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *adminService) UpdateUserRole(ctx context.Context, userID int, role models.UserRole) (*models.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidUserRole
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user role: %w", err)
	}

	return user, nil
}

func (s *adminService) DeleteUser(ctx context.Context, actorID, userID int) error {
	if actorID == userID {
		return ErrCannotDeleteOwnUser
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("deleting user: %w", err)
	}

	return nil
}

func (s *adminService) SystemStatistics(ctx context.Context) (*SystemStatistics, error) {
	stats := &SystemStatistics{}
	since := time.Now().Add(-recentWindow)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		stats.Users.Total, err = s.userRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Users.Admins, err = s.userRepo.CountByRole(gctx, models.RoleAdmin)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Users.Recent, err = s.userRepo.CountCreatedSince(gctx, since)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Players.Total, err = s.playerRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Players.ByRole, err = s.playerRepo.CountByRole(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Squads.Total, err = s.squadRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Squads.Recent, err = s.squadRepo.CountCreatedSince(gctx, since)
		return err
	})
	g.Go(func() error {
		var err error
		stats.StatisticsRows, err = s.statsRepo.Count(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collecting system statistics: %w", err)
	}

	stats.Users.Regular = stats.Users.Total - stats.Users.Admins
	return stats, nil
}

func (s *adminService) BulkImportPlayers(ctx context.Context, rows []BulkPlayerRow) (*BulkImportResult, error) {
	result := &BulkImportResult{Errors: []string{}}

	for i, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: name is required", i))
			continue
		}
		if !row.Role.Valid() {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid role %q", i, row.Role))
			continue
		}

		if _, err := s.playerRepo.GetByName(ctx, name); err == nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: player %q already exists", i, name))
			continue
		} else if !errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, fmt.Errorf("checking player %q: %w", name, err)
		}

		player := &models.Player{
			Name:          name,
			Role:          row.Role,
			Country:       strings.TrimSpace(row.Country),
			MatchesPlayed: row.MatchesPlayed,
		}
		if err := s.playerRepo.Create(ctx, player); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i, err))
			continue
		}
		result.Imported++
	}

	return result, nil
}

func (s *adminService) BulkImportStatistics(ctx context.Context, rows []BulkStatisticsRow) (*BulkImportResult, error) {
	result := &BulkImportResult{Errors: []string{}}

	for i, row := range rows {
		if !row.Format.Valid() {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid format %q", i, row.Format))
			continue
		}

		if _, err := s.playerRepo.GetByID(ctx, row.PlayerID); err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: player %d not found", i, row.PlayerID))
				continue
			}
			return nil, fmt.Errorf("checking player %d: %w", row.PlayerID, err)
		}

		stats := &models.PlayerStatistics{
			PlayerID:       row.PlayerID,
			Format:         row.Format,
			BattingAverage: row.BattingAverage,
			BowlingAverage: row.BowlingAverage,
			StrikeRate:     row.StrikeRate,
			EconomyRate:    row.EconomyRate,
			RecentForm:     row.RecentForm,
		}
		if err := s.statsRepo.Upsert(ctx, stats); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i, err))
			continue
		}
		result.Imported++
	}

	return result, nil
}

func (s *adminService) Health(ctx context.Context) (*HealthStatus, error) {
	status := &HealthStatus{Tables: map[string]int{}}

	if err := s.db.PingContext(ctx); err != nil {
		status.Database = "unreachable"
		return status, nil
	}
	status.Database = "ok"

	counts := []struct {
		name  string
		count func(context.Context) (int, error)
	}{
		{"users", s.userRepo.Count},
		{"players", s.playerRepo.Count},
		{"player_statistics", s.statsRepo.Count},
		{"squads", s.squadRepo.Count},
	}
	for _, c := range counts {
		n, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("counting %s: %w", c.name, err)
		}
		status.Tables[c.name] = n
	}

	return status, nil
}
