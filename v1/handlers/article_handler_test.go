package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ong-espoir/api-server-go/v1/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createArticle(t *testing.T, mux *http.ServeMux, title string) models.Article {
	body, contentType := multipartBody(t, map[string]string{
		"title":    title,
		"content":  "Contenu de l'article",
		"category": "santé",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/articles", body)
	req.Header.Set("Content-Type", contentType)

	recorder, env := doRequest(t, mux, req)
	require.Equal(t, http.StatusCreated, recorder.Code, env.Message)
	require.True(t, env.Success)

	var article models.Article
	require.NoError(t, json.Unmarshal(env.Data, &article))
	return article
}

func TestArticleEndpoints(t *testing.T) {
	t.Run("Create then fetch by slug in the source locale", func(t *testing.T) {
		mux := newTestMux(t)
		article := createArticle(t, mux, "École d'été")
		assert.Equal(t, "ecole-d-ete", article.Slug)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/articles/"+article.Slug+"?locale=fr", nil)
		recorder, env := doRequest(t, mux, req)
		require.Equal(t, http.StatusOK, recorder.Code)

		var view models.ArticleView
		require.NoError(t, json.Unmarshal(env.Data, &view))
		assert.Equal(t, "École d'été", view.Title)
		assert.Equal(t, "santé", view.Category)
	})

	t.Run("Accept-Language negotiation picks a stored translation", func(t *testing.T) {
		mux := newTestMux(t)
		article := createArticle(t, mux, "Campagne de vaccination")

		req := httptest.NewRequest(http.MethodGet, "/api/v1/articles/"+article.Slug, nil)
		req.Header.Set("Accept-Language", "es-ES,es;q=0.9")
		recorder, env := doRequest(t, mux, req)
		require.Equal(t, http.StatusOK, recorder.Code)

		var view models.ArticleView
		require.NoError(t, json.Unmarshal(env.Data, &view))
		assert.Equal(t, "[es] Campagne de vaccination", view.Title)
	})

	t.Run("Explicit locale wins over the header", func(t *testing.T) {
		mux := newTestMux(t)
		article := createArticle(t, mux, "Rentrée scolaire")

		req := httptest.NewRequest(http.MethodGet, "/api/v1/articles/"+article.Slug+"?locale=en", nil)
		req.Header.Set("Accept-Language", "zh")
		recorder, env := doRequest(t, mux, req)
		require.Equal(t, http.StatusOK, recorder.Code)

		var view models.ArticleView
		require.NoError(t, json.Unmarshal(env.Data, &view))
		assert.Equal(t, "[en] Rentrée scolaire", view.Title)
	})

	t.Run("Missing required fields return 422 with an error envelope", func(t *testing.T) {
		mux := newTestMux(t)

		body, contentType := multipartBody(t, map[string]string{"title": "Sans contenu"}, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/articles", body)
		req.Header.Set("Content-Type", contentType)

		recorder, env := doRequest(t, mux, req)
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		assert.False(t, env.Success)
	})

	t.Run("Unknown slug returns 404", func(t *testing.T) {
		mux := newTestMux(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/articles/inconnu", nil)
		recorder, env := doRequest(t, mux, req)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.False(t, env.Success)
	})

	t.Run("List paginates and carries the envelope", func(t *testing.T) {
		mux := newTestMux(t)
		createArticle(t, mux, "Premier")
		createArticle(t, mux, "Deuxième")

		req := httptest.NewRequest(http.MethodGet, "/api/v1/articles?per_page=1&page=2&locale=fr", nil)
		recorder, env := doRequest(t, mux, req)
		require.Equal(t, http.StatusOK, recorder.Code)
		require.True(t, env.Success)

		var payload struct {
			Items      []models.ArticleView `json:"items"`
			Pagination models.Pagination    `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &payload))
		assert.Len(t, payload.Items, 1)
		assert.Equal(t, 2, payload.Pagination.CurrentPage)
		assert.EqualValues(t, 2, payload.Pagination.Total)
		assert.Equal(t, 2, payload.Pagination.LastPage)
	})

	t.Run("Gallery upload then replace and delete by image slug", func(t *testing.T) {
		mux := newTestMux(t)

		body, contentType := multipartBody(t, map[string]string{
			"title":      "Avec galerie",
			"content":    "Contenu",
			"category":   "santé",
			"captions[]": "Une légende",
		}, map[string][]byte{
			"gallery[]": []byte("image-bytes"),
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/articles", body)
		req.Header.Set("Content-Type", contentType)

		recorder, env := doRequest(t, mux, req)
		require.Equal(t, http.StatusCreated, recorder.Code, env.Message)

		var article models.Article
		require.NoError(t, json.Unmarshal(env.Data, &article))
		require.Len(t, article.Images, 1)
		imageSlug := article.Images[0].Slug
		require.NotNil(t, article.Images[0].Caption)
		assert.Equal(t, "Une légende", *article.Images[0].Caption)

		// Replace keeps the caption when none is supplied
		body, contentType = multipartBody(t, nil, map[string][]byte{"image": []byte("new-bytes")})
		req = httptest.NewRequest(http.MethodPut, "/api/v1/articles/images/"+imageSlug, body)
		req.Header.Set("Content-Type", contentType)

		recorder, env = doRequest(t, mux, req)
		require.Equal(t, http.StatusOK, recorder.Code, env.Message)

		var view models.GalleryImageView
		require.NoError(t, json.Unmarshal(env.Data, &view))
		require.NotNil(t, view.Caption)
		assert.Equal(t, "Une légende", *view.Caption)

		// Delete, then a second delete is 404
		req = httptest.NewRequest(http.MethodDelete, "/api/v1/articles/images/"+imageSlug, nil)
		recorder, _ = doRequest(t, mux, req)
		assert.Equal(t, http.StatusOK, recorder.Code)

		req = httptest.NewRequest(http.MethodDelete, "/api/v1/articles/images/"+imageSlug, nil)
		recorder, _ = doRequest(t, mux, req)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Soft delete hides the article from the public list", func(t *testing.T) {
		mux := newTestMux(t)
		article := createArticle(t, mux, "Bientôt caché")

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/articles/"+article.ArticleID, nil)
		recorder, _ := doRequest(t, mux, req)
		require.Equal(t, http.StatusOK, recorder.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/v1/articles/"+article.Slug, nil)
		recorder, _ = doRequest(t, mux, req)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
