package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chathuri2/CrickInfo/models"
)

var ErrMatchConditionsNotFound = errors.New("match conditions not found")

// MatchConditionsRepository stores immutable condition snapshots, so
// there is no update or delete.
type MatchConditionsRepository interface {
	Create(ctx context.Context, conditions *models.MatchConditions) error
	GetByID(ctx context.Context, id int) (*models.MatchConditions, error)
}

type postgresMatchConditionsRepository struct {
	db *sql.DB
}

func NewPostgresMatchConditionsRepository(db *sql.DB) MatchConditionsRepository {
	return &postgresMatchConditionsRepository{db: db}
}

func (r *postgresMatchConditionsRepository) Create(ctx context.Context, conditions *models.MatchConditions) error {
	query := `
		INSERT INTO match_conditions (format, pitch_type, weather, venue)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		conditions.Format,
		conditions.PitchType,
		conditions.Weather,
		conditions.Venue,
	).Scan(&conditions.ID, &conditions.CreatedAt)
}

func (r *postgresMatchConditionsRepository) GetByID(ctx context.Context, id int) (*models.MatchConditions, error) {
	query := `
		SELECT id, format, pitch_type, weather, venue, created_at
		FROM match_conditions
		WHERE id = $1`

	conditions := &models.MatchConditions{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&conditions.ID,
		&conditions.Format,
		&conditions.PitchType,
		&conditions.Weather,
		&conditions.Venue,
		&conditions.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchConditionsNotFound
		}
		return nil, fmt.Errorf("failed to scan match conditions: %w", err)
	}
	return conditions, nil
}
