package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ong-espoir/api-server-go/shared/utils"
	"github.com/ong-espoir/api-server-go/v1/models"
)

// handleContacts handles contact-message routes
func (h *V1Handler) handleContacts(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/contacts")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.listContacts(w, r)
		case http.MethodPost:
			h.createContact(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) != 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
		return
	}
	contactID := parts[0]

	switch r.Method {
	case http.MethodGet:
		contact, err := h.contactService.GetContact(contactID)
		if err != nil {
			utils.RespondWithServiceError(w, err)
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, "Message récupéré avec succès", contact)
	case http.MethodDelete:
		if err := h.contactService.DeactivateContact(contactID); err != nil {
			utils.RespondWithServiceError(w, err)
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, "Message désactivé avec succès", nil)
	default:
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *V1Handler) createContact(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}

	contact, err := h.contactService.CreateContact(r.Context(), &req)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, "Message envoyé avec succès", contact)
}

func (h *V1Handler) listContacts(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePageParams(r)
	contacts, pagination, err := h.contactService.ListContacts(page, perPage)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Messages récupérés avec succès",
		models.CollectionResponse{Items: contacts, Pagination: pagination})
}

// handleNewsletters handles newsletter subscription routes
func (h *V1Handler) handleNewsletters(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/new-letters")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.listSubscriptions(w, r)
		case http.MethodPost:
			h.subscribe(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	// DELETE /api/v1/new-letters/:email unsubscribes
	if len(parts) == 1 && r.Method == http.MethodDelete {
		if err := h.contactService.Unsubscribe(parts[0]); err != nil {
			utils.RespondWithServiceError(w, err)
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, "Désabonnement effectué", nil)
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}

	subscription, err := h.contactService.Subscribe(&req)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, "Abonnement enregistré avec succès", subscription)
}

func (h *V1Handler) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePageParams(r)
	subscriptions, pagination, err := h.contactService.ListSubscriptions(page, perPage)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Abonnements récupérés avec succès",
		models.CollectionResponse{Items: subscriptions, Pagination: pagination})
}
