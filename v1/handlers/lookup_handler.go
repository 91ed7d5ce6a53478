package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ong-espoir/api-server-go/shared/utils"
	"github.com/ong-espoir/api-server-go/v1/models"
)

// handleBenevoleTypes handles volunteer-category routes
func (h *V1Handler) handleBenevoleTypes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/type-benevoles")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			types, err := h.lookupService.ListBenevoleTypes()
			if err != nil {
				utils.RespondWithServiceError(w, err)
				return
			}
			utils.RespondWithSuccess(w, http.StatusOK, "Types récupérés avec succès", types)
		case http.MethodPost:
			var req models.CreateTypeRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "Corps de requête invalide")
				return
			}
			created, err := h.lookupService.CreateBenevoleType(&req)
			if err != nil {
				utils.RespondWithServiceError(w, err)
				return
			}
			utils.RespondWithSuccess(w, http.StatusCreated, "Type créé avec succès", created)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) != 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
		return
	}
	typeID := parts[0]

	switch r.Method {
	case http.MethodGet:
		found, err := h.lookupService.GetBenevoleType(typeID)
		if err != nil {
			utils.RespondWithServiceError(w, err)
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, "Type récupéré avec succès", found)
	case http.MethodPut:
		var req models.UpdateTypeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Corps de requête invalide")
			return
		}
		updated, err := h.lookupService.UpdateBenevoleType(typeID, &req)
		if err != nil {
			utils.RespondWithServiceError(w, err)
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, "Type mis à jour avec succès", updated)
	case http.MethodDelete:
		if err := h.lookupService.DeactivateBenevoleType(typeID); err != nil {
			utils.RespondWithServiceError(w, err)
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, "Type désactivé avec succès", nil)
	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleEnfilerTypes handles donation-category routes
func (h *V1Handler) handleEnfilerTypes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/enfiler-types")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			types, err := h.lookupService.ListEnfilerTypes()
			if err != nil {
				utils.RespondWithServiceError(w, err)
				return
			}
			utils.RespondWithSuccess(w, http.StatusOK, "Types récupérés avec succès", types)
		case http.MethodPost:
			var req models.CreateTypeRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "Corps de requête invalide")
				return
			}
			created, err := h.lookupService.CreateEnfilerType(&req)
			if err != nil {
				utils.RespondWithServiceError(w, err)
				return
			}
			utils.RespondWithSuccess(w, http.StatusCreated, "Type créé avec succès", created)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) != 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
		return
	}
	typeID := parts[0]

	switch r.Method {
	case http.MethodGet:
		found, err := h.lookupService.GetEnfilerType(typeID)
		if err != nil {
			utils.RespondWithServiceError(w, err)
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, "Type récupéré avec succès", found)
	case http.MethodPut:
		var req models.UpdateTypeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Corps de requête invalide")
			return
		}
		updated, err := h.lookupService.UpdateEnfilerType(typeID, &req)
		if err != nil {
			utils.RespondWithServiceError(w, err)
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, "Type mis à jour avec succès", updated)
	case http.MethodDelete:
		if err := h.lookupService.DeactivateEnfilerType(typeID); err != nil {
			utils.RespondWithServiceError(w, err)
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, "Type désactivé avec succès", nil)
	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
