package handlers

import (
	"errors"
	"net/http"

	"github.com/chathuri2/CrickInfo/models"
	"github.com/chathuri2/CrickInfo/repositories"
	"github.com/chathuri2/CrickInfo/services"
)

const maxPhotoUploadBytes = 5 << 20 // 5MB

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(playerService services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := queryInt(r, "page", "", 1)
	if page < 1 {
		page = 1
	}
	perPage := queryInt(r, "per_page", "limit", 20)

	filter := repositories.PlayerFilter{
		Role:    models.PlayerRole(q.Get("role")),
		Country: q.Get("country"),
		Search:  q.Get("search"),
		Limit:   perPage,
		Offset:  (page - 1) * perPage,
	}

	pageResult, err := h.playerService.ListPlayers(r.Context(), filter, models.MatchFormat(q.Get("format")))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"players": pageResult.Players,
		"total":   pageResult.Total,
		"page":    page,
		"per_page": pageResult.Limit,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.GetPlayer(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePlayerInput

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.CreatePlayer(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.UpdatePlayer(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.playerService.DeletePlayer(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PlayerHandler) UpsertStatistics(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpsertStatisticsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stats, err := h.playerService.UpsertStatistics(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"statistics": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var input struct {
		PlayerIDs []int              `json:"player_ids"`
		Format    models.MatchFormat `json:"format"`
	}

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	comparison, err := h.playerService.ComparePlayers(r.Context(), input.PlayerIDs, input.Format)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"comparison": comparison}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) Roles(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"roles": models.PlayerRoles}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) Countries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.playerService.ListCountries(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"countries": countries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoUploadBytes)
	if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
		badRequestResponse(w, r, errors.New("invalid multipart form or file too large"))
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		badRequestResponse(w, r, errors.New("photo file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/webp" {
		badRequestResponse(w, r, errors.New("photo must be a jpeg, png or webp image"))
		return
	}

	player, err := h.playerService.UploadPhoto(r.Context(), id, header.Filename, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PlayerHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.playerService.DeletePhoto(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
