package handlers

import (
	"net/http"

	"github.com/chathuri2/CrickInfo/middleware"
	"github.com/chathuri2/CrickInfo/models"
	"github.com/chathuri2/CrickInfo/services"
)

type AnalysisHandler struct {
	analysisService services.AnalysisService
	playerService   services.PlayerService
}

func NewAnalysisHandler(analysisService services.AnalysisService, playerService services.PlayerService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		playerService:   playerService,
	}
}

func (h *AnalysisHandler) CreateMatchConditions(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMatchConditionsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	conditions, err := h.analysisService.CreateMatchConditions(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match_conditions": conditions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AnalysisHandler) SmartSuggestion(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input struct {
		SquadID           int `json:"squad_id"`
		MatchConditionsID int `json:"match_conditions_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.analysisService.GenerateSuggestion(r.Context(), userID, input.SquadID, input.MatchConditionsID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AnalysisHandler) GetSuggestion(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "suggestionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	suggestion, err := h.analysisService.GetSuggestion(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"suggestion": suggestion}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AnalysisHandler) ListSquadSuggestions(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	squadID, err := getIDFromURL(r, "squadID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	suggestions, err := h.analysisService.ListSquadSuggestions(r.Context(), userID, squadID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"suggestions": suggestions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AnalysisHandler) SquadAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input struct {
		SquadID           int `json:"squad_id"`
		MatchConditionsID int `json:"match_conditions_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.analysisService.AnalyzeSquad(r.Context(), userID, input.SquadID, input.MatchConditionsID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AnalysisHandler) TopPlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format := models.MatchFormat(q.Get("format"))
	role := models.PlayerRole(q.Get("role"))
	limit := queryInt(r, "limit", "", 10)

	entries, err := h.playerService.TopPlayers(r.Context(), format, role, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"format":  format,
		"players": entries,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AnalysisHandler) Formats(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"formats": models.MatchFormats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AnalysisHandler) PitchTypes(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"pitch_types": models.PitchTypes}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AnalysisHandler) WeatherConditions(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"weather_conditions": models.WeatherConditions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
