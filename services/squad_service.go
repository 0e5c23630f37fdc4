package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chathuri2/CrickInfo/analysis"
	"github.com/chathuri2/CrickInfo/models"
	"github.com/chathuri2/CrickInfo/repositories"
)

type CreateSquadInput struct {
	Name           string `json:"name"`
	CaptainID      *int   `json:"captain_id"`
	WicketKeeperID *int   `json:"wicket_keeper_id"`
}

type UpdateSquadInput struct {
	Name           *string `json:"name"`
	CaptainID      *int    `json:"captain_id"`
	WicketKeeperID *int    `json:"wicket_keeper_id"`
}

type SquadService interface {
	CreateSquad(ctx context.Context, userID int, input CreateSquadInput) (*models.Squad, error)
	GetSquad(ctx context.Context, squadID, userID int) (*models.Squad, error)
	ListSquads(ctx context.Context, userID int) ([]models.Squad, error)
	UpdateSquad(ctx context.Context, squadID, userID int, input UpdateSquadInput) (*models.Squad, error)
	DeleteSquad(ctx context.Context, squadID, userID int) error
	AddPlayer(ctx context.Context, squadID, userID, playerID int) (*models.Squad, error)
	RemovePlayer(ctx context.Context, squadID, userID, playerID int) (*models.Squad, error)
	SetCaptain(ctx context.Context, squadID, userID int, playerID *int) (*models.Squad, error)
	SetWicketKeeper(ctx context.Context, squadID, userID int, playerID *int) (*models.Squad, error)
	ValidateSquad(ctx context.Context, squadID, userID int) (*analysis.SquadValidation, error)
}

type squadService struct {
	squadRepo  repositories.SquadRepository
	playerRepo repositories.PlayerRepository
}

func NewSquadService(squadRepo repositories.SquadRepository, playerRepo repositories.PlayerRepository) SquadService {
	return &squadService{
		squadRepo:  squadRepo,
		playerRepo: playerRepo,
	}
}

func (s *squadService) CreateSquad(ctx context.Context, userID int, input CreateSquadInput) (*models.Squad, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSquadNameRequired
	}

	squad := &models.Squad{
		Name:           name,
		UserID:         userID,
		CaptainID:      input.CaptainID,
		WicketKeeperID: input.WicketKeeperID,
	}

	if err := s.squadRepo.Create(ctx, squad); err != nil {
		switch {
		case errors.Is(err, repositories.ErrSquadNameConflict):
			return nil, ErrSquadNameConflict
		case errors.Is(err, repositories.ErrSquadPlayerReference):
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("creating squad: %w", err)
	}

	squad.Players = []models.Player{}
	return squad, nil
}

func (s *squadService) GetSquad(ctx context.Context, squadID, userID int) (*models.Squad, error) {
	return s.loadSquad(ctx, squadID, userID)
}

func (s *squadService) ListSquads(ctx context.Context, userID int) ([]models.Squad, error) {
	squads, err := s.squadRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing squads: %w", err)
	}

	for i := range squads {
		members, err := s.squadRepo.ListMembers(ctx, squads[i].ID)
		if err != nil {
			return nil, fmt.Errorf("listing squad members: %w", err)
		}
		squads[i].Players = members
		attachDesignations(&squads[i])
	}

	return squads, nil
}

func (s *squadService) UpdateSquad(ctx context.Context, squadID, userID int, input UpdateSquadInput) (*models.Squad, error) {
	squad, err := s.getOwnedSquad(ctx, squadID, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrSquadNameRequired
		}
		squad.Name = name
	}
	if input.CaptainID != nil {
		squad.CaptainID = input.CaptainID
	}
	if input.WicketKeeperID != nil {
		squad.WicketKeeperID = input.WicketKeeperID
	}

	if err := s.squadRepo.Update(ctx, squad); err != nil {
		switch {
		case errors.Is(err, repositories.ErrSquadNotFound):
			return nil, ErrSquadNotFound
		case errors.Is(err, repositories.ErrSquadNameConflict):
			return nil, ErrSquadNameConflict
		case errors.Is(err, repositories.ErrSquadPlayerReference):
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("updating squad: %w", err)
	}

	return s.loadSquad(ctx, squadID, userID)
}

func (s *squadService) DeleteSquad(ctx context.Context, squadID, userID int) error {
	if err := s.squadRepo.Delete(ctx, squadID, userID); err != nil {
		if errors.Is(err, repositories.ErrSquadNotFound) {
			return ErrSquadNotFound
		}
		return fmt.Errorf("deleting squad: %w", err)
	}
	return nil
}

func (s *squadService) AddPlayer(ctx context.Context, squadID, userID, playerID int) (*models.Squad, error) {
	if _, err := s.getOwnedSquad(ctx, squadID, userID); err != nil {
		return nil, err
	}

	if err := s.squadRepo.AddPlayer(ctx, squadID, playerID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrSquadPlayerConflict):
			return nil, ErrPlayerAlreadyInSquad
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrSquadNotFound):
			return nil, ErrSquadNotFound
		}
		return nil, fmt.Errorf("adding player to squad: %w", err)
	}

	return s.loadSquad(ctx, squadID, userID)
}

func (s *squadService) RemovePlayer(ctx context.Context, squadID, userID, playerID int) (*models.Squad, error) {
	if _, err := s.getOwnedSquad(ctx, squadID, userID); err != nil {
		return nil, err
	}

	if err := s.squadRepo.RemovePlayer(ctx, squadID, playerID); err != nil {
		if errors.Is(err, repositories.ErrSquadPlayerNotFound) {
			return nil, ErrPlayerNotInSquad
		}
		return nil, fmt.Errorf("removing player from squad: %w", err)
	}

	return s.loadSquad(ctx, squadID, userID)
}

func (s *squadService) SetCaptain(ctx context.Context, squadID, userID int, playerID *int) (*models.Squad, error) {
	squad, err := s.getOwnedSquad(ctx, squadID, userID)
	if err != nil {
		return nil, err
	}

	if playerID != nil {
		member, err := s.squadRepo.IsMember(ctx, squadID, *playerID)
		if err != nil {
			return nil, fmt.Errorf("checking squad membership: %w", err)
		}
		if !member {
			return nil, ErrCaptainNotInSquad
		}
	}

	squad.CaptainID = playerID
	if err := s.squadRepo.Update(ctx, squad); err != nil {
		return nil, fmt.Errorf("setting captain: %w", err)
	}

	return s.loadSquad(ctx, squadID, userID)
}

func (s *squadService) SetWicketKeeper(ctx context.Context, squadID, userID int, playerID *int) (*models.Squad, error) {
	squad, err := s.getOwnedSquad(ctx, squadID, userID)
	if err != nil {
		return nil, err
	}

	if playerID != nil {
		member, err := s.squadRepo.IsMember(ctx, squadID, *playerID)
		if err != nil {
			return nil, fmt.Errorf("checking squad membership: %w", err)
		}
		if !member {
			return nil, ErrKeeperNotInSquad
		}

		player, err := s.playerRepo.GetByID(ctx, *playerID)
		if err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				return nil, ErrPlayerNotFound
			}
			return nil, fmt.Errorf("fetching player: %w", err)
		}
		if player.Role != models.RoleWicketKeeper {
			return nil, ErrKeeperWrongRole
		}
	}

	squad.WicketKeeperID = playerID
	if err := s.squadRepo.Update(ctx, squad); err != nil {
		return nil, fmt.Errorf("setting wicket keeper: %w", err)
	}

	return s.loadSquad(ctx, squadID, userID)
}

func (s *squadService) ValidateSquad(ctx context.Context, squadID, userID int) (*analysis.SquadValidation, error) {
	squad, err := s.getOwnedSquad(ctx, squadID, userID)
	if err != nil {
		return nil, err
	}

	members, err := s.squadRepo.ListMembers(ctx, squadID)
	if err != nil {
		return nil, fmt.Errorf("listing squad members: %w", err)
	}

	validation := analysis.ValidateSquad(*squad, members)
	return &validation, nil
}

func (s *squadService) getOwnedSquad(ctx context.Context, squadID, userID int) (*models.Squad, error) {
	squad, err := s.squadRepo.GetByIDAndOwner(ctx, squadID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSquadNotFound) {
			return nil, ErrSquadNotFound
		}
		return nil, fmt.Errorf("fetching squad: %w", err)
	}
	return squad, nil
}

func (s *squadService) loadSquad(ctx context.Context, squadID, userID int) (*models.Squad, error) {
	squad, err := s.getOwnedSquad(ctx, squadID, userID)
	if err != nil {
		return nil, err
	}

	members, err := s.squadRepo.ListMembers(ctx, squadID)
	if err != nil {
		return nil, fmt.Errorf("listing squad members: %w", err)
	}
	squad.Players = members

	attachDesignations(squad)
	return squad, nil
}

// attachDesignations resolves captain and wicket keeper from the loaded
// member list. Designated players who left the squad are simply absent.
func attachDesignations(squad *models.Squad) {
	for i := range squad.Players {
		p := &squad.Players[i]
		if squad.CaptainID != nil && p.ID == *squad.CaptainID {
			squad.Captain = p
		}
		if squad.WicketKeeperID != nil && p.ID == *squad.WicketKeeperID {
			squad.WicketKeeper = p
		}
	}
}
