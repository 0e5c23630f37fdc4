package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chathuri2/CrickInfo/models"
)

var ErrStatisticsNotFound = errors.New("player statistics not found")

// PlayerWithStatistics is a join row used by leaderboard queries.
type PlayerWithStatistics struct {
	Player     models.Player           `json:"player"`
	Statistics models.PlayerStatistics `json:"statistics"`
}

type PlayerStatisticsRepository interface {
	Upsert(ctx context.Context, stats *models.PlayerStatistics) error
	GetByPlayerAndFormat(ctx context.Context, playerID int, format models.MatchFormat) (*models.PlayerStatistics, error)
	ListByPlayer(ctx context.Context, playerID int) ([]models.PlayerStatistics, error)
	ListByFormat(ctx context.Context, format models.MatchFormat) ([]models.PlayerStatistics, error)
	TopPlayers(ctx context.Context, format models.MatchFormat, role models.PlayerRole, limit int) ([]PlayerWithStatistics, error)
	Count(ctx context.Context) (int, error)
}

type postgresPlayerStatisticsRepository struct {
	db *sql.DB
}

func NewPostgresPlayerStatisticsRepository(db *sql.DB) PlayerStatisticsRepository {
	return &postgresPlayerStatisticsRepository{db: db}
}

const statisticsColumns = `id, player_id, format, batting_average, bowling_average, strike_rate, economy_rate, recent_form, created_at, updated_at`

// Upsert inserts or overwrites the (player, format) row; the unique
// constraint on that pair makes this a single statement.
func (r *postgresPlayerStatisticsRepository) Upsert(ctx context.Context, stats *models.PlayerStatistics) error {
	query := `
		INSERT INTO player_statistics
			(player_id, format, batting_average, bowling_average, strike_rate, economy_rate, recent_form)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (player_id, format) DO UPDATE SET
			batting_average = EXCLUDED.batting_average,
			bowling_average = EXCLUDED.bowling_average,
			strike_rate = EXCLUDED.strike_rate,
			economy_rate = EXCLUDED.economy_rate,
			recent_form = EXCLUDED.recent_form,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		stats.PlayerID,
		stats.Format,
		stats.BattingAverage,
		stats.BowlingAverage,
		stats.StrikeRate,
		stats.EconomyRate,
		stats.RecentForm,
	).Scan(&stats.ID, &stats.CreatedAt, &stats.UpdatedAt)
}

func (r *postgresPlayerStatisticsRepository) GetByPlayerAndFormat(ctx context.Context, playerID int, format models.MatchFormat) (*models.PlayerStatistics, error) {
	query := `SELECT ` + statisticsColumns + ` FROM player_statistics WHERE player_id = $1 AND format = $2`

	stats := &models.PlayerStatistics{}
	err := scanStatisticsRow(r.db.QueryRowContext(ctx, query, playerID, format), stats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStatisticsNotFound
		}
		return nil, fmt.Errorf("failed to scan player statistics: %w", err)
	}
	return stats, nil
}

func (r *postgresPlayerStatisticsRepository) ListByPlayer(ctx context.Context, playerID int) ([]models.PlayerStatistics, error) {
	query := `SELECT ` + statisticsColumns + ` FROM player_statistics WHERE player_id = $1 ORDER BY format ASC`
	return r.queryStatistics(ctx, query, playerID)
}

func (r *postgresPlayerStatisticsRepository) ListByFormat(ctx context.Context, format models.MatchFormat) ([]models.PlayerStatistics, error) {
	query := `SELECT ` + statisticsColumns + ` FROM player_statistics WHERE format = $1 ORDER BY player_id ASC`
	return r.queryStatistics(ctx, query, format)
}

// TopPlayers joins players with their statistics for one format,
// ordered by batting average by default and bowling average for
// bowlers, NULLs last in both cases.
func (r *postgresPlayerStatisticsRepository) TopPlayers(ctx context.Context, format models.MatchFormat, role models.PlayerRole, limit int) ([]PlayerWithStatistics, error) {
	query := `
		SELECT ` + prefixColumns("p", playerColumns) + `, ` + prefixColumns("s", statisticsColumns) + `
		FROM players p
		JOIN player_statistics s ON s.player_id = p.id
		WHERE s.format = $1`

	args := []interface{}{format}
	if role != "" {
		args = append(args, role)
		query += fmt.Sprintf(" AND p.role = $%d", len(args))
	}

	if role == models.RoleBowler {
		query += ` ORDER BY s.bowling_average DESC NULLS LAST`
	} else {
		query += ` ORDER BY s.batting_average DESC NULLS LAST`
	}

	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]PlayerWithStatistics, 0)
	for rows.Next() {
		var row PlayerWithStatistics
		err := rows.Scan(
			&row.Player.ID,
			&row.Player.Name,
			&row.Player.Role,
			&row.Player.Country,
			&row.Player.MatchesPlayed,
			&row.Player.PhotoKey,
			&row.Player.CreatedAt,
			&row.Player.UpdatedAt,
			&row.Statistics.ID,
			&row.Statistics.PlayerID,
			&row.Statistics.Format,
			&row.Statistics.BattingAverage,
			&row.Statistics.BowlingAverage,
			&row.Statistics.StrikeRate,
			&row.Statistics.EconomyRate,
			&row.Statistics.RecentForm,
			&row.Statistics.CreatedAt,
			&row.Statistics.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *postgresPlayerStatisticsRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM player_statistics`).Scan(&count)
	return count, err
}

func (r *postgresPlayerStatisticsRepository) queryStatistics(ctx context.Context, query string, args ...interface{}) ([]models.PlayerStatistics, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]models.PlayerStatistics, 0)
	for rows.Next() {
		var stats models.PlayerStatistics
		if err := scanStatisticsRow(rows, &stats); err != nil {
			return nil, err
		}
		list = append(list, stats)
	}
	return list, rows.Err()
}

func scanStatisticsRow(row rowScanner, stats *models.PlayerStatistics) error {
	return row.Scan(
		&stats.ID,
		&stats.PlayerID,
		&stats.Format,
		&stats.BattingAverage,
		&stats.BowlingAverage,
		&stats.StrikeRate,
		&stats.EconomyRate,
		&stats.RecentForm,
		&stats.CreatedAt,
		&stats.UpdatedAt,
	)
}
