package services

import (
	"context"
	"strings"
	"testing"

	apierrors "github.com/ong-espoir/api-server-go/pkg/errors"
	"github.com/ong-espoir/api-server-go/v1/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newArticleService(t *testing.T, db *gorm.DB) *ArticleService {
	store := newTestStore(t)
	engine := NewTranslationEngine(&MockTranslator{})
	gallery := NewGalleryService(db, store)
	return NewArticleService(db, engine, gallery, store, "http://localhost:8080")
}

func TestCreateArticle(t *testing.T) {
	t.Run("Creates article with full translation set", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		service := newArticleService(t, db)

		article, err := service.CreateArticle(context.Background(), CreateArticleInput{
			Title:    "École d'été",
			Content:  "Contenu de l'article",
			Category: "education",
		})
		require.NoError(t, err)

		assert.Equal(t, "ecole-d-ete", article.Slug)
		assert.True(t, article.IsActive)

		var translations []models.ArticleTranslation
		require.NoError(t, db.Where("article_id = ?", article.ArticleID).Find(&translations).Error)
		assert.Len(t, translations, len(models.SupportedLocales))
	})

	t.Run("Slug collisions probe sequentially", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		service := newArticleService(t, db)

		first, err := service.CreateArticle(context.Background(), CreateArticleInput{
			Title: "Même titre", Content: "a", Category: "santé",
		})
		require.NoError(t, err)
		second, err := service.CreateArticle(context.Background(), CreateArticleInput{
			Title: "Même titre", Content: "b", Category: "santé",
		})
		require.NoError(t, err)
		third, err := service.CreateArticle(context.Background(), CreateArticleInput{
			Title: "Même titre", Content: "c", Category: "santé",
		})
		require.NoError(t, err)

		assert.Equal(t, "meme-titre", first.Slug)
		assert.Equal(t, "meme-titre-1", second.Slug)
		assert.Equal(t, "meme-titre-2", third.Slug)
	})

	t.Run("Missing required fields fail with 422 and details", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		service := newArticleService(t, db)

		_, err := service.CreateArticle(context.Background(), CreateArticleInput{Title: "Titre"})
		require.Error(t, err)
		apiErr := apierrors.GetAPIError(err)
		require.NotNil(t, apiErr)
		assert.Equal(t, 422, apiErr.HTTPStatus)
		assert.Contains(t, apiErr.Details, "content")
		assert.Contains(t, apiErr.Details, "category")
	})

	t.Run("Unknown category fails validation", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		service := newArticleService(t, db)

		_, err := service.CreateArticle(context.Background(), CreateArticleInput{
			Title: "Titre", Content: "Contenu", Category: "inexistante",
		})
		require.Error(t, err)
		apiErr := apierrors.GetAPIError(err)
		require.NotNil(t, apiErr)
		assert.Equal(t, apierrors.ErrorTypeValidation, apiErr.Type)
	})

	t.Run("Gallery uploads land with positional captions", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		service := newArticleService(t, db)

		article, err := service.CreateArticle(context.Background(), CreateArticleInput{
			Title: "Avec galerie", Content: "Contenu", Category: "santé",
			Gallery: []ImageUpload{
				{File: strings.NewReader("one"), Filename: "1.jpg", Caption: strPtr("Une")},
				{File: strings.NewReader("two"), Filename: "2.jpg"},
			},
		})
		require.NoError(t, err)
		require.Len(t, article.Images, 2)
		require.NotNil(t, article.Images[0].Caption)
		assert.Equal(t, "Une", *article.Images[0].Caption)
		assert.Nil(t, article.Images[1].Caption)
	})
}

func TestUpdateArticle(t *testing.T) {
	t.Run("Title change regenerates the slug excluding own id", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		service := newArticleService(t, db)

		article, err := service.CreateArticle(context.Background(), CreateArticleInput{
			Title: "Premier titre", Content: "Contenu", Category: "santé",
		})
		require.NoError(t, err)

		newTitle := "Premier titre"
		updated, err := service.UpdateArticle(context.Background(), article.ArticleID, UpdateArticleInput{
			Title: &newTitle,
		})
		require.NoError(t, err)
		// Unchanged title keeps the same slug because the probe excludes own id
		assert.Equal(t, "premier-titre", updated.Slug)

		other := "Autre titre"
		updated, err = service.UpdateArticle(context.Background(), article.ArticleID, UpdateArticleInput{
			Title: &other,
		})
		require.NoError(t, err)
		assert.Equal(t, "autre-titre", updated.Slug)
	})

	t.Run("Partial update leaves other translation fields intact", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		service := newArticleService(t, db)

		article, err := service.CreateArticle(context.Background(), CreateArticleInput{
			Title: "Titre", Content: "Contenu original", Category: "santé",
		})
		require.NoError(t, err)

		content := "Contenu corrigé"
		_, err = service.UpdateArticle(context.Background(), article.ArticleID, UpdateArticleInput{
			Content: &content,
		})
		require.NoError(t, err)

		var fr models.ArticleTranslation
		require.NoError(t, db.Where("article_id = ? AND locale = ?", article.ArticleID, "fr").First(&fr).Error)
		assert.Equal(t, "Contenu corrigé", fr.Content)
		assert.Equal(t, "Titre", fr.Title)
	})

	t.Run("Unknown article is not found", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		service := newArticleService(t, db)

		_, err := service.UpdateArticle(context.Background(), "art_missing", UpdateArticleInput{})
		require.Error(t, err)
		apiErr := apierrors.GetAPIError(err)
		require.NotNil(t, apiErr)
		assert.Equal(t, apierrors.ErrorTypeNotFound, apiErr.Type)
	})

	t.Run("Cover replacement removes the old blob after the update lands", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		store := newTestStore(t)
		gallery := NewGalleryService(db, store)
		service := NewArticleService(db, NewTranslationEngine(&MockTranslator{}), gallery, store, "http://localhost:8080")

		article, err := service.CreateArticle(context.Background(), CreateArticleInput{
			Title: "Avec couverture", Content: "Contenu", Category: "santé",
			Cover: &ImageUpload{File: strings.NewReader("ancienne"), Filename: "ancienne.jpg"},
		})
		require.NoError(t, err)
		require.NotNil(t, article.CoverImage)
		oldPath := *article.CoverImage
		require.True(t, store.Exists(oldPath))

		updated, err := service.UpdateArticle(context.Background(), article.ArticleID, UpdateArticleInput{
			Cover: &ImageUpload{File: strings.NewReader("nouvelle"), Filename: "nouvelle.jpg"},
		})
		require.NoError(t, err)
		require.NotNil(t, updated.CoverImage)

		assert.NotEqual(t, oldPath, *updated.CoverImage)
		assert.True(t, store.Exists(*updated.CoverImage))
		assert.False(t, store.Exists(oldPath))
	})

	t.Run("Rejected update keeps the existing cover", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		store := newTestStore(t)
		gallery := NewGalleryService(db, store)
		service := NewArticleService(db, NewTranslationEngine(&MockTranslator{}), gallery, store, "http://localhost:8080")

		article, err := service.CreateArticle(context.Background(), CreateArticleInput{
			Title: "Avec couverture", Content: "Contenu", Category: "santé",
			Cover: &ImageUpload{File: strings.NewReader("ancienne"), Filename: "ancienne.jpg"},
		})
		require.NoError(t, err)

		badCategory := "inconnue"
		_, err = service.UpdateArticle(context.Background(), article.ArticleID, UpdateArticleInput{
			Category: &badCategory,
			Cover:    &ImageUpload{File: strings.NewReader("nouvelle"), Filename: "nouvelle.jpg"},
		})
		require.Error(t, err)

		assert.True(t, store.Exists(*article.CoverImage))
		var stored models.Article
		require.NoError(t, db.Where("article_id = ?", article.ArticleID).First(&stored).Error)
		require.NotNil(t, stored.CoverImage)
		assert.Equal(t, *article.CoverImage, *stored.CoverImage)
	})
}

func TestListArticles(t *testing.T) {
	seed := func(t *testing.T, db *gorm.DB, service *ArticleService) {
		_, err := service.CreateArticle(context.Background(), CreateArticleInput{
			Title: "Campagne santé", Content: "Vaccination", Category: "santé",
		})
		require.NoError(t, err)
		article, err := service.CreateArticle(context.Background(), CreateArticleInput{
			Title: "Rentrée scolaire", Content: "Fournitures", Category: "education",
		})
		require.NoError(t, err)
		require.NoError(t, service.DeactivateArticle(article.ArticleID))
	}

	t.Run("Defaults to activated articles only", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		service := newArticleService(t, db)
		seed(t, db, service)

		views, pagination, err := service.ListArticles(ListArticlesParams{Locale: "fr"})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Campagne santé", views[0].Title)
		assert.EqualValues(t, 1, pagination.Total)
	})

	t.Run("Status all returns everything", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		service := newArticleService(t, db)
		seed(t, db, service)

		views, _, err := service.ListArticles(ListArticlesParams{Status: models.StatusAll, Locale: "fr"})
		require.NoError(t, err)
		assert.Len(t, views, 2)
	})

	t.Run("Category filter matches the negotiated locale's rows", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		service := newArticleService(t, db)
		seed(t, db, service)

		views, _, err := service.ListArticles(ListArticlesParams{
			Status: models.StatusAll, Category: "education", Locale: "fr",
		})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Rentrée scolaire", views[0].Title)
	})

	t.Run("Search matches title or content", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		service := newArticleService(t, db)
		seed(t, db, service)

		views, _, err := service.ListArticles(ListArticlesParams{Search: "Vaccination", Locale: "fr"})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Campagne santé", views[0].Title)
	})

	t.Run("Unsupported locale falls back to the source locale", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		service := newArticleService(t, db)
		seed(t, db, service)

		views, _, err := service.ListArticles(ListArticlesParams{Locale: "de"})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Campagne santé", views[0].Title)
	})

	t.Run("Missing translation rows render the untranslated marker", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		service := newArticleService(t, db)

		article, err := service.CreateArticle(context.Background(), CreateArticleInput{
			Title: "Titre", Content: "Contenu", Category: "santé",
		})
		require.NoError(t, err)
		require.NoError(t, db.Where("article_id = ? AND locale = ?", article.ArticleID, "en").
			Delete(&models.ArticleTranslation{}).Error)

		views, _, err := service.ListArticles(ListArticlesParams{Locale: "en"})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, models.UntranslatedMarker, views[0].Title)
	})
}

func TestGetArticleBySlug(t *testing.T) {
	t.Run("Resolves by slug with the requested locale", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		service := newArticleService(t, db)

		created, err := service.CreateArticle(context.Background(), CreateArticleInput{
			Title: "Mon article", Content: "Contenu", Category: "santé",
		})
		require.NoError(t, err)

		view, err := service.GetArticleBySlug(created.Slug, "", "en")
		require.NoError(t, err)
		assert.Equal(t, "[en] Mon article", view.Title)
		assert.Equal(t, created.ArticleID, view.ID)
	})

	t.Run("Deactivated article is hidden from the default filter", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		service := newArticleService(t, db)

		created, err := service.CreateArticle(context.Background(), CreateArticleInput{
			Title: "Caché", Content: "Contenu", Category: "santé",
		})
		require.NoError(t, err)
		require.NoError(t, service.DeactivateArticle(created.ArticleID))

		_, err = service.GetArticleBySlug(created.Slug, "", "fr")
		require.Error(t, err)
		apiErr := apierrors.GetAPIError(err)
		require.NotNil(t, apiErr)
		assert.Equal(t, 404, apiErr.HTTPStatus)

		// Still reachable with status=all
		view, err := service.GetArticleBySlug(created.Slug, models.StatusAll, "fr")
		require.NoError(t, err)
		assert.False(t, view.IsActive)
	})
}
