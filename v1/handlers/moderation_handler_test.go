package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ong-espoir/api-server-go/v1/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createDonation(t *testing.T, mux *http.ServeMux) models.Enfiler {
	recorder, env := doJSON(t, mux, http.MethodPost, "/api/v1/dons", models.CreateEnfilerRequest{
		Name:       "Moussa Sarr",
		Email:      "moussa@example.org",
		Type:       models.TypeIndividual,
		Motivation: "Soutenir la campagne",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, env.Message)

	var enfiler models.Enfiler
	require.NoError(t, json.Unmarshal(env.Data, &enfiler))
	return enfiler
}

func createMemberSubmission(t *testing.T, mux *http.ServeMux) models.Member {
	recorder, env := doJSON(t, mux, http.MethodPost, "/api/v1/membres", models.CreateMemberRequest{
		Name:  "Awa Diop",
		Email: "awa@example.org",
		Type:  models.TypeIndividual,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, env.Message)

	var member models.Member
	require.NoError(t, json.Unmarshal(env.Data, &member))
	return member
}

func TestDonationModerationEndpoints(t *testing.T) {
	t.Run("Approve then approve again conflicts with 400", func(t *testing.T) {
		mux := newTestMux(t)
		enfiler := createDonation(t, mux)

		recorder, env := doJSON(t, mux, http.MethodPatch,
			"/api/v1/dons/"+enfiler.EnfilerID+"/approve", models.ModerationRequest{})
		require.Equal(t, http.StatusOK, recorder.Code, env.Message)

		var approved models.Enfiler
		require.NoError(t, json.Unmarshal(env.Data, &approved))
		assert.True(t, approved.IsApproved)

		recorder, env = doJSON(t, mux, http.MethodPatch,
			"/api/v1/dons/"+enfiler.EnfilerID+"/approve", models.ModerationRequest{})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.False(t, env.Success)
	})

	t.Run("Reject requires a reason", func(t *testing.T) {
		mux := newTestMux(t)
		enfiler := createDonation(t, mux)

		recorder, env := doJSON(t, mux, http.MethodPatch,
			"/api/v1/dons/"+enfiler.EnfilerID+"/reject", models.ModerationRequest{})
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		assert.False(t, env.Success)

		// Still pending, so a proper rejection goes through
		recorder, env = doJSON(t, mux, http.MethodPatch,
			"/api/v1/dons/"+enfiler.EnfilerID+"/reject",
			models.ModerationRequest{RejectionReason: "Montant invalide"})
		require.Equal(t, http.StatusOK, recorder.Code, env.Message)

		var rejected models.Enfiler
		require.NoError(t, json.Unmarshal(env.Data, &rejected))
		assert.True(t, rejected.IsRejected)
		assert.True(t, rejected.IsActive)
	})

	t.Run("Unknown donation is 404", func(t *testing.T) {
		mux := newTestMux(t)

		recorder, _ := doJSON(t, mux, http.MethodPatch,
			"/api/v1/dons/enf_missing/approve", models.ModerationRequest{})
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestMemberModerationEndpoints(t *testing.T) {
	t.Run("Approve activates the member", func(t *testing.T) {
		mux := newTestMux(t)
		member := createMemberSubmission(t, mux)
		assert.False(t, member.IsActive)

		recorder, env := doJSON(t, mux, http.MethodPatch,
			"/api/v1/membres/"+member.MemberID+"/approve",
			models.ModerationRequest{CustomMessage: "Bienvenue !"})
		require.Equal(t, http.StatusOK, recorder.Code, env.Message)

		var approved models.Member
		require.NoError(t, json.Unmarshal(env.Data, &approved))
		assert.True(t, approved.IsApproved)
		assert.True(t, approved.IsActive)
	})

	t.Run("Reject deactivates the member", func(t *testing.T) {
		mux := newTestMux(t)
		member := createMemberSubmission(t, mux)

		recorder, env := doJSON(t, mux, http.MethodPatch,
			"/api/v1/membres/"+member.MemberID+"/reject",
			models.ModerationRequest{RejectionReason: "Dossier incomplet"})
		require.Equal(t, http.StatusOK, recorder.Code, env.Message)

		var rejected models.Member
		require.NoError(t, json.Unmarshal(env.Data, &rejected))
		assert.True(t, rejected.IsRejected)
		assert.False(t, rejected.IsActive)
	})
}

func TestNewsletterEndpoints(t *testing.T) {
	mux := newTestMux(t)

	recorder, env := doJSON(t, mux, http.MethodPost, "/api/v1/new-letters",
		models.SubscribeRequest{Email: "awa@example.org"})
	require.Equal(t, http.StatusCreated, recorder.Code, env.Message)

	// Duplicate subscription conflicts with 400
	recorder, env = doJSON(t, mux, http.MethodPost, "/api/v1/new-letters",
		models.SubscribeRequest{Email: "awa@example.org"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.False(t, env.Success)
}

func TestAuthEndpoints(t *testing.T) {
	t.Run("Login round-trip", func(t *testing.T) {
		mux := newTestMux(t)

		recorder, env := doJSON(t, mux, http.MethodPost, "/api/v1/users", models.CreateUserRequest{
			Name: "Admin", Email: "admin@example.org", Password: "motdepasse",
		})
		require.Equal(t, http.StatusCreated, recorder.Code, env.Message)

		recorder, env = doJSON(t, mux, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{
			Email: "admin@example.org", Password: "motdepasse",
		})
		require.Equal(t, http.StatusOK, recorder.Code, env.Message)

		var response models.LoginResponse
		require.NoError(t, json.Unmarshal(env.Data, &response))
		assert.NotEmpty(t, response.AccessToken)
		assert.Equal(t, "Bearer", response.TokenType)
	})

	t.Run("Bad credentials are 401", func(t *testing.T) {
		mux := newTestMux(t)

		recorder, env := doJSON(t, mux, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{
			Email: "inconnu@example.org", Password: "motdepasse",
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.False(t, env.Success)
	})
}
