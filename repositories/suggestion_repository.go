package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chathuri2/CrickInfo/models"
)

var ErrSuggestionNotFound = errors.New("smart suggestion not found")

// SuggestionRepository persists suggestion history. Suggestions are
// append-only: created with their ranked players in one transaction,
// read back in priority order, never updated.
type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *models.SmartSuggestion, players []models.SuggestionPlayer) error
	GetByID(ctx context.Context, id int) (*models.SmartSuggestion, error)
	ListBySquad(ctx context.Context, squadID int) ([]models.SmartSuggestion, error)
}

type postgresSuggestionRepository struct {
	db *sql.DB
}

func NewPostgresSuggestionRepository(db *sql.DB) SuggestionRepository {
	return &postgresSuggestionRepository{db: db}
}

func (r *postgresSuggestionRepository) Create(ctx context.Context, suggestion *models.SmartSuggestion, players []models.SuggestionPlayer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO smart_suggestions (squad_id, match_conditions_id, reasoning, confidence)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		suggestion.SquadID,
		suggestion.MatchConditionsID,
		suggestion.Reasoning,
		suggestion.Confidence,
	).Scan(&suggestion.ID, &suggestion.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert smart suggestion: %w", err)
	}

	for i := range players {
		players[i].SuggestionID = suggestion.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO suggestion_players (suggestion_id, player_id, priority)
			VALUES ($1, $2, $3)
			RETURNING id, created_at`,
			players[i].SuggestionID,
			players[i].PlayerID,
			players[i].Priority,
		).Scan(&players[i].ID, &players[i].CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert suggestion player: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	suggestion.SuggestedPlayers = players
	return nil
}

func (r *postgresSuggestionRepository) GetByID(ctx context.Context, id int) (*models.SmartSuggestion, error) {
	suggestion := &models.SmartSuggestion{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, squad_id, match_conditions_id, reasoning, confidence, created_at
		FROM smart_suggestions
		WHERE id = $1`, id,
	).Scan(
		&suggestion.ID,
		&suggestion.SquadID,
		&suggestion.MatchConditionsID,
		&suggestion.Reasoning,
		&suggestion.Confidence,
		&suggestion.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSuggestionNotFound
		}
		return nil, fmt.Errorf("failed to scan smart suggestion: %w", err)
	}

	players, err := r.listPlayers(ctx, suggestion.ID)
	if err != nil {
		return nil, err
	}
	suggestion.SuggestedPlayers = players
	return suggestion, nil
}

func (r *postgresSuggestionRepository) ListBySquad(ctx context.Context, squadID int) ([]models.SmartSuggestion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, squad_id, match_conditions_id, reasoning, confidence, created_at
		FROM smart_suggestions
		WHERE squad_id = $1
		ORDER BY created_at DESC, id DESC`, squadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suggestions := make([]models.SmartSuggestion, 0)
	for rows.Next() {
		var s models.SmartSuggestion
		err := rows.Scan(&s.ID, &s.SquadID, &s.MatchConditionsID, &s.Reasoning, &s.Confidence, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, rows.Err()
}

// listPlayers returns suggestion players with their catalog rows,
// highest priority first, which is the original rank order.
func (r *postgresSuggestionRepository) listPlayers(ctx context.Context, suggestionID int) ([]models.SuggestionPlayer, error) {
	query := `
		SELECT sp.id, sp.suggestion_id, sp.player_id, sp.priority, sp.created_at,
			` + prefixColumns("p", playerColumns) + `
		FROM suggestion_players sp
		JOIN players p ON p.id = sp.player_id
		WHERE sp.suggestion_id = $1
		ORDER BY sp.priority DESC`

	rows, err := r.db.QueryContext(ctx, query, suggestionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.SuggestionPlayer, 0)
	for rows.Next() {
		var sp models.SuggestionPlayer
		var player models.Player
		err := rows.Scan(
			&sp.ID,
			&sp.SuggestionID,
			&sp.PlayerID,
			&sp.Priority,
			&sp.CreatedAt,
			&player.ID,
			&player.Name,
			&player.Role,
			&player.Country,
			&player.MatchesPlayed,
			&player.PhotoKey,
			&player.CreatedAt,
			&player.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		sp.Player = &player
		players = append(players, sp)
	}
	return players, rows.Err()
}
