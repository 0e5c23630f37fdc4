package handlers

import (
	"net/http"

	"github.com/chathuri2/CrickInfo/middleware"
	"github.com/chathuri2/CrickInfo/models"
	"github.com/chathuri2/CrickInfo/services"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", "", 1)
	if page < 1 {
		page = 1
	}
	perPage := queryInt(r, "per_page", "limit", 20)

	users, err := h.adminService.ListUsers(r.Context(), perPage, (page-1)*perPage)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"users":    users.Users,
		"total":    users.Total,
		"page":     page,
		"per_page": users.Limit,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Role models.UserRole `json:"role"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.adminService.UpdateUserRole(r.Context(), id, input.Role)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actorID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	id, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.adminService.DeleteUser(r.Context(), actorID, id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) SystemStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.SystemStatistics(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"statistics": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) BulkImportPlayers(w http.ResponseWriter, r *http.Request) {
	var rows []services.BulkPlayerRow
	if err := readJSON(w, r, &rows); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.adminService.BulkImportPlayers(r.Context(), rows)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) BulkImportStatistics(w http.ResponseWriter, r *http.Request) {
	var rows []services.BulkStatisticsRow
	if err := readJSON(w, r, &rows); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.adminService.BulkImportStatistics(r.Context(), rows)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	health, err := h.adminService.Health(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	status := http.StatusOK
	if health.Database != "ok" {
		status = http.StatusServiceUnavailable
	}

	if err := writeJSON(w, status, jsonResponse{"health": health}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
