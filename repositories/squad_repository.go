package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/chathuri2/CrickInfo/models"
)

var (
	ErrSquadNotFound        = errors.New("squad not found")
	ErrSquadNameConflict    = errors.New("squad name conflict")
	ErrSquadPlayerConflict  = errors.New("player already in squad")
	ErrSquadPlayerNotFound  = errors.New("player not in squad")
	ErrSquadPlayerReference = errors.New("squad references unknown player")
)

type SquadRepository interface {
	Create(ctx context.Context, squad *models.Squad) error
	GetByIDAndOwner(ctx context.Context, id, userID int) (*models.Squad, error)
	ListByOwner(ctx context.Context, userID int) ([]models.Squad, error)
	Update(ctx context.Context, squad *models.Squad) error
	Delete(ctx context.Context, id, userID int) error
	AddPlayer(ctx context.Context, squadID, playerID int) error
	RemovePlayer(ctx context.Context, squadID, playerID int) error
	ListMembers(ctx context.Context, squadID int) ([]models.Player, error)
	IsMember(ctx context.Context, squadID, playerID int) (bool, error)
	Count(ctx context.Context) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}

type postgresSquadRepository struct {
	db *sql.DB
}

func NewPostgresSquadRepository(db *sql.DB) SquadRepository {
	return &postgresSquadRepository{db: db}
}

const squadColumns = `id, name, user_id, captain_id, wicket_keeper_id, created_at, updated_at`

func (r *postgresSquadRepository) Create(ctx context.Context, squad *models.Squad) error {
	query := `
		INSERT INTO squads (name, user_id, captain_id, wicket_keeper_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		squad.Name,
		squad.UserID,
		squad.CaptainID,
		squad.WicketKeeperID,
	).Scan(&squad.ID, &squad.CreatedAt, &squad.UpdatedAt)

	return mapSquadError(err)
}

func (r *postgresSquadRepository) GetByIDAndOwner(ctx context.Context, id, userID int) (*models.Squad, error) {
	query := `SELECT ` + squadColumns + ` FROM squads WHERE id = $1 AND user_id = $2`

	squad := &models.Squad{}
	err := scanSquadRow(r.db.QueryRowContext(ctx, query, id, userID), squad)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSquadNotFound
		}
		return nil, fmt.Errorf("failed to scan squad: %w", err)
	}
	return squad, nil
}

func (r *postgresSquadRepository) ListByOwner(ctx context.Context, userID int) ([]models.Squad, error) {
	query := `SELECT ` + squadColumns + ` FROM squads WHERE user_id = $1 ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	squads := make([]models.Squad, 0)
	for rows.Next() {
		var squad models.Squad
		if err := scanSquadRow(rows, &squad); err != nil {
			return nil, err
		}
		squads = append(squads, squad)
	}
	return squads, rows.Err()
}

func (r *postgresSquadRepository) Update(ctx context.Context, squad *models.Squad) error {
	query := `
		UPDATE squads SET
			name = $1,
			captain_id = $2,
			wicket_keeper_id = $3,
			updated_at = NOW()
		WHERE id = $4 AND user_id = $5`

	result, err := r.db.ExecContext(ctx, query,
		squad.Name,
		squad.CaptainID,
		squad.WicketKeeperID,
		squad.ID,
		squad.UserID,
	)
	if err != nil {
		return mapSquadError(err)
	}
	return checkAffectedRows(result, ErrSquadNotFound)
}

func (r *postgresSquadRepository) Delete(ctx context.Context, id, userID int) error {
	// squad_players rows cascade via FK.
	result, err := r.db.ExecContext(ctx, `DELETE FROM squads WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSquadNotFound)
}

func (r *postgresSquadRepository) AddPlayer(ctx context.Context, squadID, playerID int) error {
	query := `INSERT INTO squad_players (squad_id, player_id) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, squadID, playerID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrSquadPlayerConflict
			case "23503":
				if pqErr.Constraint == "squad_players_player_id_fkey" {
					return ErrPlayerNotFound
				}
				return ErrSquadNotFound
			}
		}
		return err
	}
	return nil
}

// RemovePlayer deletes the membership row and clears captain or
// wicket-keeper designations that pointed at the removed player.
func (r *postgresSquadRepository) RemovePlayer(ctx context.Context, squadID, playerID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM squad_players WHERE squad_id = $1 AND player_id = $2`, squadID, playerID)
	if err != nil {
		return err
	}
	if err := checkAffectedRows(result, ErrSquadPlayerNotFound); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE squads SET
			captain_id = CASE WHEN captain_id = $2 THEN NULL ELSE captain_id END,
			wicket_keeper_id = CASE WHEN wicket_keeper_id = $2 THEN NULL ELSE wicket_keeper_id END,
			updated_at = NOW()
		WHERE id = $1 AND (captain_id = $2 OR wicket_keeper_id = $2)`, squadID, playerID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresSquadRepository) ListMembers(ctx context.Context, squadID int) ([]models.Player, error) {
	query := `
		SELECT ` + prefixColumns("p", playerColumns) + `
		FROM players p
		JOIN squad_players sp ON sp.player_id = p.id
		WHERE sp.squad_id = $1
		ORDER BY p.id ASC`

	rows, err := r.db.QueryContext(ctx, query, squadID)
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

func (r *postgresSquadRepository) IsMember(ctx context.Context, squadID, playerID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM squad_players WHERE squad_id = $1 AND player_id = $2)`,
		squadID, playerID,
	).Scan(&exists)
	return exists, err
}

func (r *postgresSquadRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM squads`).Scan(&count)
	return count, err
}

func (r *postgresSquadRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM squads WHERE created_at >= $1`, since).Scan(&count)
	return count, err
}

func mapSquadError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "squads_user_id_name_key" {
				return ErrSquadNameConflict
			}
		case "23503":
			return ErrSquadPlayerReference
		}
	}
	return err
}

func scanSquadRow(row rowScanner, squad *models.Squad) error {
	return row.Scan(
		&squad.ID,
		&squad.Name,
		&squad.UserID,
		&squad.CaptainID,
		&squad.WicketKeeperID,
		&squad.CreatedAt,
		&squad.UpdatedAt,
	)
}
