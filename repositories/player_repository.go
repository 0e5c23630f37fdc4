package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chathuri2/CrickInfo/models"
)

var ErrPlayerNotFound = errors.New("player not found")

// PlayerFilter narrows List results. Zero values mean "no filter".
type PlayerFilter struct {
	Role    models.PlayerRole
	Country string
	Search  string
	Limit   int
	Offset  int
}

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	GetByName(ctx context.Context, name string) (*models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	UpdatePhotoKey(ctx context.Context, id int, key *string) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, filter PlayerFilter) ([]models.Player, int, error)
	ListAll(ctx context.Context) ([]models.Player, error)
	ListCountries(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context) (map[models.PlayerRole]int, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, name, role, country, matches_played, photo_key, created_at, updated_at`

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (name, role, country, matches_played)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		player.Name,
		player.Role,
		player.Country,
		player.MatchesPlayed,
	).Scan(&player.ID, &player.CreatedAt, &player.UpdatedAt)
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	return r.scanPlayer(ctx, query, id)
}

func (r *postgresPlayerRepository) GetByName(ctx context.Context, name string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE name = $1`
	return r.scanPlayer(ctx, query, name)
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players SET
			name = $1,
			role = $2,
			country = $3,
			matches_played = $4,
			updated_at = NOW()
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		player.Name,
		player.Role,
		player.Country,
		player.MatchesPlayed,
		player.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdatePhotoKey(ctx context.Context, id int, key *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE players SET photo_key = $1, updated_at = NOW() WHERE id = $2`, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	// player_statistics and squad_players rows cascade via FK.
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// List returns one page of players matching the filter plus the total
// number of matches before pagination.
func (r *postgresPlayerRepository) List(ctx context.Context, filter PlayerFilter) ([]models.Player, int, error) {
	where := ` WHERE 1=1`
	args := make([]interface{}, 0, 5)

	if filter.Role != "" {
		args = append(args, filter.Role)
		where += fmt.Sprintf(" AND role = $%d", len(args))
	}
	if filter.Country != "" {
		args = append(args, "%"+filter.Country+"%")
		where += fmt.Sprintf(" AND country ILIKE $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (name ILIKE $%d OR country ILIKE $%d)", len(args), len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, filter.Offset)
	offsetPos := len(args)

	query := `SELECT ` + playerColumns + ` FROM players` + where +
		fmt.Sprintf(` ORDER BY id ASC LIMIT $%d OFFSET $%d`, limitPos, offsetPos)

	players, err := r.queryPlayers(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return players, total, nil
}

// ListAll returns the whole catalog in ascending id order. The
// suggestion engine relies on this order for tie-breaking stability.
func (r *postgresPlayerRepository) ListAll(ctx context.Context) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY id ASC`
	return r.queryPlayers(ctx, query)
}

func (r *postgresPlayerRepository) ListCountries(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT country FROM players ORDER BY country ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	countries := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

func (r *postgresPlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count)
	return count, err
}

func (r *postgresPlayerRepository) CountByRole(ctx context.Context) (map[models.PlayerRole]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role, COUNT(*) FROM players GROUP BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.PlayerRole]int)
	for rows.Next() {
		var role models.PlayerRole
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, err
		}
		counts[role] = count
	}
	return counts, rows.Err()
}

func (r *postgresPlayerRepository) scanPlayer(ctx context.Context, query string, args ...interface{}) (*models.Player, error) {
	player := &models.Player{}
	err := scanPlayerRow(r.db.QueryRowContext(ctx, query, args...), player)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}
	return player, nil
}

func (r *postgresPlayerRepository) queryPlayers(ctx context.Context, query string, args ...interface{}) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var player models.Player
		if err := scanPlayerRow(rows, &player); err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

func scanPlayerRow(row rowScanner, player *models.Player) error {
	return row.Scan(
		&player.ID,
		&player.Name,
		&player.Role,
		&player.Country,
		&player.MatchesPlayed,
		&player.PhotoKey,
		&player.CreatedAt,
		&player.UpdatedAt,
	)
}
