package handlers

import (
	"net/http"

	"github.com/chathuri2/CrickInfo/middleware"
	"github.com/chathuri2/CrickInfo/services"
)

type SquadHandler struct {
	squadService services.SquadService
}

func NewSquadHandler(squadService services.SquadService) *SquadHandler {
	return &SquadHandler{squadService: squadService}
}

func (h *SquadHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	squads, err := h.squadService.ListSquads(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"squads": squads}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SquadHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, squadID, ok := h.callerAndSquad(w, r)
	if !ok {
		return
	}

	squad, err := h.squadService.GetSquad(r.Context(), squadID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"squad": squad}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SquadHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.CreateSquadInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	squad, err := h.squadService.CreateSquad(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"squad": squad}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SquadHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, squadID, ok := h.callerAndSquad(w, r)
	if !ok {
		return
	}

	var input services.UpdateSquadInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	squad, err := h.squadService.UpdateSquad(r.Context(), squadID, userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"squad": squad}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SquadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, squadID, ok := h.callerAndSquad(w, r)
	if !ok {
		return
	}

	if err := h.squadService.DeleteSquad(r.Context(), squadID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SquadHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	userID, squadID, ok := h.callerAndSquad(w, r)
	if !ok {
		return
	}

	var input struct {
		PlayerID int `json:"player_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	squad, err := h.squadService.AddPlayer(r.Context(), squadID, userID, input.PlayerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"squad": squad}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SquadHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	userID, squadID, ok := h.callerAndSquad(w, r)
	if !ok {
		return
	}

	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	squad, err := h.squadService.RemovePlayer(r.Context(), squadID, userID, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"squad": squad}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SquadHandler) SetCaptain(w http.ResponseWriter, r *http.Request) {
	userID, squadID, ok := h.callerAndSquad(w, r)
	if !ok {
		return
	}

	var input struct {
		CaptainID *int `json:"captain_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	squad, err := h.squadService.SetCaptain(r.Context(), squadID, userID, input.CaptainID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"squad": squad}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SquadHandler) SetWicketKeeper(w http.ResponseWriter, r *http.Request) {
	userID, squadID, ok := h.callerAndSquad(w, r)
	if !ok {
		return
	}

	var input struct {
		WicketKeeperID *int `json:"wicket_keeper_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	squad, err := h.squadService.SetWicketKeeper(r.Context(), squadID, userID, input.WicketKeeperID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"squad": squad}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SquadHandler) Validate(w http.ResponseWriter, r *http.Request) {
	userID, squadID, ok := h.callerAndSquad(w, r)
	if !ok {
		return
	}

	validation, err := h.squadService.ValidateSquad(r.Context(), squadID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"validation": validation}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SquadHandler) callerAndSquad(w http.ResponseWriter, r *http.Request) (userID, squadID int, ok bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return 0, 0, false
	}

	squadID, err = getIDFromURL(r, "squadID")
	if err != nil {
		badRequestResponse(w, r, err)
		return 0, 0, false
	}

	return userID, squadID, true
}
