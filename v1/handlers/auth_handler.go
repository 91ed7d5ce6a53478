package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ong-espoir/api-server-go/shared/utils"
	"github.com/ong-espoir/api-server-go/v1/models"
	authutils "github.com/ong-espoir/api-server-go/v1/utils"
)

// handleAuth handles authentication routes
func (h *V1Handler) handleAuth(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/auth")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) != 1 {
		utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
		return
	}

	switch {
	case parts[0] == "login" && r.Method == http.MethodPost:
		h.login(w, r)
	case parts[0] == "me" && r.Method == http.MethodGet:
		h.me(w, r)
	default:
		utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
	}
}

func (h *V1Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Connexion réussie", response)
}

func (h *V1Handler) me(w http.ResponseWriter, r *http.Request) {
	user, err := authutils.GetAuthenticatedUser(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentification requise")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Utilisateur récupéré avec succès", user)
}

// handleUsers handles admin account routes
func (h *V1Handler) handleUsers(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/users")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			users, err := h.userService.ListUsers()
			if err != nil {
				utils.RespondWithServiceError(w, err)
				return
			}
			utils.RespondWithSuccess(w, http.StatusOK, "Utilisateurs récupérés avec succès", users)
		case http.MethodPost:
			var req models.CreateUserRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "Corps de requête invalide")
				return
			}
			user, err := h.userService.CreateUser(&req)
			if err != nil {
				utils.RespondWithServiceError(w, err)
				return
			}
			utils.RespondWithSuccess(w, http.StatusCreated, "Utilisateur créé avec succès", user)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) != 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
		return
	}
	userID := parts[0]

	switch r.Method {
	case http.MethodGet:
		user, err := h.userService.GetUser(userID)
		if err != nil {
			utils.RespondWithServiceError(w, err)
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, "Utilisateur récupéré avec succès", user)
	case http.MethodPut:
		var req models.UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Corps de requête invalide")
			return
		}
		user, err := h.userService.UpdateUser(userID, &req)
		if err != nil {
			utils.RespondWithServiceError(w, err)
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, "Utilisateur mis à jour avec succès", user)
	case http.MethodDelete:
		if err := h.userService.DeactivateUser(userID); err != nil {
			utils.RespondWithServiceError(w, err)
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, "Utilisateur désactivé avec succès", nil)
	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
