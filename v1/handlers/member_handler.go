package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ong-espoir/api-server-go/shared/utils"
	"github.com/ong-espoir/api-server-go/v1/models"
	"github.com/ong-espoir/api-server-go/v1/services"
)

// handleMembers handles member-related routes
func (h *V1Handler) handleMembers(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/membres")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Collection endpoint: GET /api/v1/membres and POST /api/v1/membres
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.listMembers(w, r)
		case http.MethodPost:
			h.createMember(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if parts[0] == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "L'identifiant du membre est requis")
		return
	}
	memberID := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.getMember(w, r, memberID)
		case http.MethodPut:
			h.updateMember(w, r, memberID)
		case http.MethodDelete:
			h.deactivateMember(w, r, memberID)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) == 2 && r.Method == http.MethodPatch {
		switch parts[1] {
		case "approve":
			h.approveMember(w, r, memberID)
		case "reject":
			h.rejectMember(w, r, memberID)
		case "activate":
			h.activateMember(w, r, memberID)
		case "toggle-volunteer":
			h.toggleMemberVolunteer(w, r, memberID)
		default:
			utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
		}
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) createMember(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}

	member, err := h.memberService.CreateMember(r.Context(), &req)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, "Demande d'adhésion enregistrée", member)
}

func (h *V1Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePageParams(r)
	params := services.ListMembersParams{
		Page:        page,
		PerPage:     perPage,
		Type:        r.URL.Query().Get("type"),
		IsVolunteer: parseBoolParam(r, "is_volunteer"),
		IsActive:    parseBoolParam(r, "is_active"),
		Query:       r.URL.Query().Get("q"),
	}

	members, pagination, err := h.memberService.ListMembers(params)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Membres récupérés avec succès",
		models.CollectionResponse{Items: members, Pagination: pagination})
}

func (h *V1Handler) getMember(w http.ResponseWriter, r *http.Request, memberID string) {
	member, err := h.memberService.GetMember(memberID)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Membre récupéré avec succès", member)
}

func (h *V1Handler) updateMember(w http.ResponseWriter, r *http.Request, memberID string) {
	var req models.UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}

	member, err := h.memberService.UpdateMember(memberID, &req)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Membre mis à jour avec succès", member)
}

func (h *V1Handler) deactivateMember(w http.ResponseWriter, r *http.Request, memberID string) {
	if err := h.memberService.SetMemberActive(memberID, false); err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Membre désactivé avec succès", nil)
}

func (h *V1Handler) activateMember(w http.ResponseWriter, r *http.Request, memberID string) {
	if err := h.memberService.SetMemberActive(memberID, true); err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Membre activé avec succès", nil)
}

func (h *V1Handler) toggleMemberVolunteer(w http.ResponseWriter, r *http.Request, memberID string) {
	member, err := h.memberService.ToggleVolunteer(memberID)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Statut bénévole mis à jour", member)
}

func (h *V1Handler) approveMember(w http.ResponseWriter, r *http.Request, memberID string) {
	req := decodeModerationRequest(r)
	member, err := h.memberService.ApproveMember(r.Context(), memberID, req.CustomMessage)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Membre approuvé avec succès", member)
}

func (h *V1Handler) rejectMember(w http.ResponseWriter, r *http.Request, memberID string) {
	req := decodeModerationRequest(r)
	member, err := h.memberService.RejectMember(r.Context(), memberID, req.RejectionReason, req.CustomMessage)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, "Membre rejeté", member)
}

// decodeModerationRequest tolerates an empty body: the reason requirement is
// enforced by the moderation policy, not the transport
func decodeModerationRequest(r *http.Request) models.ModerationRequest {
	var req models.ModerationRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	return req
}
