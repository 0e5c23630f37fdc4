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

type CreateMatchConditionsInput struct {
	Format    models.MatchFormat `json:"format"`
	PitchType models.PitchType   `json:"pitch_type"`
	Weather   models.Weather     `json:"weather"`
	Venue     string             `json:"venue"`
}

type SuggestionResult struct {
	Suggestion       *models.SmartSuggestion    `json:"suggestion"`
	SuggestedPlayers []analysis.SuggestedPlayer `json:"suggested_players"`
	MatchConditions  *models.MatchConditions    `json:"match_conditions"`
}

type SquadAnalysisResult struct {
	Squad           *models.Squad           `json:"squad"`
	MatchConditions *models.MatchConditions `json:"match_conditions"`
	Composition     analysis.Composition    `json:"composition"`
}

type AnalysisService interface {
	CreateMatchConditions(ctx context.Context, input CreateMatchConditionsInput) (*models.MatchConditions, error)
	GenerateSuggestion(ctx context.Context, userID, squadID, conditionsID int) (*SuggestionResult, error)
	GetSuggestion(ctx context.Context, id int) (*models.SmartSuggestion, error)
	ListSquadSuggestions(ctx context.Context, userID, squadID int) ([]models.SmartSuggestion, error)
	AnalyzeSquad(ctx context.Context, userID, squadID, conditionsID int) (*SquadAnalysisResult, error)
}

type analysisService struct {
	squadRepo      repositories.SquadRepository
	playerRepo     repositories.PlayerRepository
	statsRepo      repositories.PlayerStatisticsRepository
	conditionsRepo repositories.MatchConditionsRepository
	suggestionRepo repositories.SuggestionRepository
}

func NewAnalysisService(
	squadRepo repositories.SquadRepository,
	playerRepo repositories.PlayerRepository,
	statsRepo repositories.PlayerStatisticsRepository,
	conditionsRepo repositories.MatchConditionsRepository,
	suggestionRepo repositories.SuggestionRepository,
) AnalysisService {
	return &analysisService{
		squadRepo:      squadRepo,
		playerRepo:     playerRepo,
		statsRepo:      statsRepo,
		conditionsRepo: conditionsRepo,
		suggestionRepo: suggestionRepo,
	}
}

func (s *analysisService) CreateMatchConditions(ctx context.Context, input CreateMatchConditionsInput) (*models.MatchConditions, error) {
	if !input.Format.Valid() {
		return nil, ErrInvalidMatchFormat
	}
	if !input.PitchType.Valid() {
		return nil, ErrInvalidPitchType
	}
	if !input.Weather.Valid() {
		return nil, ErrInvalidWeather
	}
	venue := strings.TrimSpace(input.Venue)
	if venue == "" {
		return nil, ErrVenueRequired
	}

	conditions := &models.MatchConditions{
		Format:    input.Format,
		PitchType: input.PitchType,
		Weather:   input.Weather,
		Venue:     venue,
	}

	if err := s.conditionsRepo.Create(ctx, conditions); err != nil {
		return nil, fmt.Errorf("creating match conditions: %w", err)
	}

	return conditions, nil
}

func (s *analysisService) GenerateSuggestion(ctx context.Context, userID, squadID, conditionsID int) (*SuggestionResult, error) {
	_, conditions, members, err := s.loadAnalysisContext(ctx, userID, squadID, conditionsID)
	if err != nil {
		return nil, err
	}

	excluded := make(map[int]struct{}, len(members))
	for _, m := range members {
		excluded[m.ID] = struct{}{}
	}

	candidates, err := s.loadCandidates(ctx, conditions.Format)
	if err != nil {
		return nil, err
	}

	suggestions := analysis.Suggest(*conditions, candidates, excluded)
	reasoning := analysis.Reasoning(*conditions, suggestions)
	confidence := analysis.Confidence(suggestions)

	suggestion := &models.SmartSuggestion{
		SquadID:           squadID,
		MatchConditionsID: conditionsID,
		Reasoning:         reasoning,
		Confidence:        confidence,
	}

	rows := make([]models.SuggestionPlayer, len(suggestions))
	for i, sp := range suggestions {
		rows[i] = models.SuggestionPlayer{
			PlayerID: sp.ID,
			Priority: len(suggestions) - i,
		}
	}

	if err := s.suggestionRepo.Create(ctx, suggestion, rows); err != nil {
		return nil, fmt.Errorf("storing suggestion: %w", err)
	}

	return &SuggestionResult{
		Suggestion:       suggestion,
		SuggestedPlayers: suggestions,
		MatchConditions:  conditions,
	}, nil
}

func (s *analysisService) GetSuggestion(ctx context.Context, id int) (*models.SmartSuggestion, error) {
	suggestion, err := s.suggestionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSuggestionNotFound) {
			return nil, ErrSuggestionNotFound
		}
		return nil, fmt.Errorf("fetching suggestion: %w", err)
	}
	return suggestion, nil
}

func (s *analysisService) ListSquadSuggestions(ctx context.Context, userID, squadID int) ([]models.SmartSuggestion, error) {
	if _, err := s.squadRepo.GetByIDAndOwner(ctx, squadID, userID); err != nil {
		if errors.Is(err, repositories.ErrSquadNotFound) {
			return nil, ErrSquadNotFound
		}
		return nil, fmt.Errorf("fetching squad: %w", err)
	}

	suggestions, err := s.suggestionRepo.ListBySquad(ctx, squadID)
	if err != nil {
		return nil, fmt.Errorf("listing suggestions: %w", err)
	}
	return suggestions, nil
}

func (s *analysisService) AnalyzeSquad(ctx context.Context, userID, squadID, conditionsID int) (*SquadAnalysisResult, error) {
	squad, conditions, members, err := s.loadAnalysisContext(ctx, userID, squadID, conditionsID)
	if err != nil {
		return nil, err
	}

	statsByPlayer, err := s.statsMapForFormat(ctx, conditions.Format)
	if err != nil {
		return nil, err
	}

	memberCandidates := make([]analysis.Candidate, len(members))
	for i, m := range members {
		memberCandidates[i] = analysis.Candidate{
			Player: m,
			Stats:  statsByPlayer[m.ID],
		}
		if st := statsByPlayer[m.ID]; st != nil {
			members[i].Statistics = []models.PlayerStatistics{*st}
		}
	}
	squad.Players = members
	attachDesignations(squad)

	composition := analysis.AnalyzeComposition(memberCandidates, *conditions)

	return &SquadAnalysisResult{
		Squad:           squad,
		MatchConditions: conditions,
		Composition:     composition,
	}, nil
}

func (s *analysisService) loadAnalysisContext(ctx context.Context, userID, squadID, conditionsID int) (*models.Squad, *models.MatchConditions, []models.Player, error) {
	squad, err := s.squadRepo.GetByIDAndOwner(ctx, squadID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSquadNotFound) {
			return nil, nil, nil, ErrSquadNotFound
		}
		return nil, nil, nil, fmt.Errorf("fetching squad: %w", err)
	}

	conditions, err := s.conditionsRepo.GetByID(ctx, conditionsID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchConditionsNotFound) {
			return nil, nil, nil, ErrMatchConditionsNotFound
		}
		return nil, nil, nil, fmt.Errorf("fetching match conditions: %w", err)
	}

	members, err := s.squadRepo.ListMembers(ctx, squadID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("listing squad members: %w", err)
	}

	return squad, conditions, members, nil
}

// loadCandidates pairs the full player catalog with statistics for the
// given format. Catalog order (ascending id) decides ties in the ranking.
func (s *analysisService) loadCandidates(ctx context.Context, format models.MatchFormat) ([]analysis.Candidate, error) {
	players, err := s.playerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}

	statsByPlayer, err := s.statsMapForFormat(ctx, format)
	if err != nil {
		return nil, err
	}

	candidates := make([]analysis.Candidate, len(players))
	for i, p := range players {
		candidates[i] = analysis.Candidate{
			Player: p,
			Stats:  statsByPlayer[p.ID],
		}
	}
	return candidates, nil
}

func (s *analysisService) statsMapForFormat(ctx context.Context, format models.MatchFormat) (map[int]*models.PlayerStatistics, error) {
	stats, err := s.statsRepo.ListByFormat(ctx, format)
	if err != nil {
		return nil, fmt.Errorf("listing statistics: %w", err)
	}

	byPlayer := make(map[int]*models.PlayerStatistics, len(stats))
	for i := range stats {
		byPlayer[stats[i].PlayerID] = &stats[i]
	}
	return byPlayer, nil
}
