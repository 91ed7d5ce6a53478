package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ong-espoir/api-server-go/shared/utils"
	"github.com/ong-espoir/api-server-go/v1/models"
	"github.com/ong-espoir/api-server-go/v1/services"
)

// handleEnfilers handles donation-related routes
func (h *V1Handler) handleEnfilers(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/dons")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Collection endpoint: GET /api/v1/dons and POST /api/v1/dons
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.listEnfilers(w, r)
		case http.MethodPost:
			h.createEnfiler(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if parts[0] == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "L'identifiant du don est requis")
		return
	}
	enfilerID := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.getEnfiler(w, r, enfilerID)
		case http.MethodPut:
			h.updateEnfiler(w, r, enfilerID)
		case http.MethodDelete:
			h.deactivateEnfiler(w, r, enfilerID)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) == 2 && r.Method == http.MethodPatch {
		switch parts[1] {
		case "approve":
			h.approveEnfiler(w, r, enfilerID)
		case "reject":
			h.rejectEnfiler(w, r, enfilerID)
		case "activate":
			h.activateEnfiler(w, r, enfilerID)
		default:
			utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
		}
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) createEnfiler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEnfilerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}

	enfiler, err := h.enfilerService.CreateEnfiler(r.Context(), &req)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, "Don enregistré avec succès", enfiler)
}

func (h *V1Handler) listEnfilers(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePageParams(r)
	params := services.ListEnfilersParams{
		Page:    page,
		PerPage: perPage,
		Type:    r.URL.Query().Get("type"),
		Status:  r.URL.Query().Get("status"),
		Query:   r.URL.Query().Get("q"),
	}

	enfilers, pagination, err := h.enfilerService.ListEnfilers(params)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Dons récupérés avec succès",
		models.CollectionResponse{Items: enfilers, Pagination: pagination})
}

func (h *V1Handler) getEnfiler(w http.ResponseWriter, r *http.Request, enfilerID string) {
	enfiler, err := h.enfilerService.GetEnfiler(enfilerID)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Don récupéré avec succès", enfiler)
}

func (h *V1Handler) updateEnfiler(w http.ResponseWriter, r *http.Request, enfilerID string) {
	var req models.UpdateEnfilerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}

	enfiler, err := h.enfilerService.UpdateEnfiler(enfilerID, &req)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Don mis à jour avec succès", enfiler)
}

func (h *V1Handler) deactivateEnfiler(w http.ResponseWriter, r *http.Request, enfilerID string) {
	if err := h.enfilerService.SetEnfilerActive(enfilerID, false); err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Don désactivé avec succès", nil)
}

func (h *V1Handler) activateEnfiler(w http.ResponseWriter, r *http.Request, enfilerID string) {
	if err := h.enfilerService.SetEnfilerActive(enfilerID, true); err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Don activé avec succès", nil)
}

func (h *V1Handler) approveEnfiler(w http.ResponseWriter, r *http.Request, enfilerID string) {
	req := decodeModerationRequest(r)
	enfiler, err := h.enfilerService.ApproveEnfiler(r.Context(), enfilerID, req.CustomMessage)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Don approuvé avec succès", enfiler)
}

func (h *V1Handler) rejectEnfiler(w http.ResponseWriter, r *http.Request, enfilerID string) {
	req := decodeModerationRequest(r)
	enfiler, err := h.enfilerService.RejectEnfiler(r.Context(), enfilerID, req.RejectionReason, req.CustomMessage)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Don rejeté", enfiler)
}
