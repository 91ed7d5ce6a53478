package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ong-espoir/api-server-go/v1/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockTranslator is a fake translation provider for testing
type MockTranslator struct {
	TranslateFunc func(ctx context.Context, text, source, target string) (string, error)
}

func (m *MockTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text, source, target)
	}
	return "[" + target + "] " + text, nil
}

func loadTranslations(t *testing.T, db *gorm.DB, articleID string) map[string]models.ArticleTranslation {
	var rows []models.ArticleTranslation
	require.NoError(t, db.Where("article_id = ?", articleID).Find(&rows).Error)
	byLocale := make(map[string]models.ArticleTranslation, len(rows))
	for _, row := range rows {
		byLocale[row.Locale] = row
	}
	return byLocale
}

func TestCreateTranslations(t *testing.T) {
	t.Run("Creates one row per supported locale", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		engine := NewTranslationEngine(&MockTranslator{})

		fields := SourceFields{Title: "Bonjour", Content: "Contenu", Description: "Desc"}
		err := engine.CreateTranslations(context.Background(), db, "art_1", fields, "santé")
		require.NoError(t, err)

		byLocale := loadTranslations(t, db, "art_1")
		assert.Len(t, byLocale, len(models.SupportedLocales))

		// Source locale keeps the text verbatim
		assert.Equal(t, "Bonjour", byLocale["fr"].Title)
		assert.Equal(t, "Contenu", byLocale["fr"].Content)

		// Other locales go through the provider
		assert.Equal(t, "[en] Bonjour", byLocale["en"].Title)
		assert.Equal(t, "[zh] Contenu", byLocale["zh"].Content)

		// Category is copied verbatim everywhere, never translated
		for locale, row := range byLocale {
			assert.Equal(t, "santé", row.Category, "category for %s", locale)
		}
	})

	t.Run("Provider failure degrades with the untranslated marker", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		engine := NewTranslationEngine(&MockTranslator{
			TranslateFunc: func(ctx context.Context, text, source, target string) (string, error) {
				return "", errors.New("provider down")
			},
		})

		fields := SourceFields{Title: "Bonjour", Content: "Contenu"}
		err := engine.CreateTranslations(context.Background(), db, "art_1", fields, "santé")
		require.NoError(t, err)

		byLocale := loadTranslations(t, db, "art_1")
		assert.Equal(t, "Bonjour", byLocale["fr"].Title)
		assert.Equal(t, "Bonjour "+models.UntranslatedMarker, byLocale["en"].Title)
		assert.Equal(t, "Contenu "+models.UntranslatedMarker, byLocale["es"].Content)
	})

	t.Run("Empty fields skip the provider", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		calls := 0
		engine := NewTranslationEngine(&MockTranslator{
			TranslateFunc: func(ctx context.Context, text, source, target string) (string, error) {
				calls++
				return text, nil
			},
		})

		fields := SourceFields{Title: "Bonjour"}
		err := engine.CreateTranslations(context.Background(), db, "art_1", fields, "santé")
		require.NoError(t, err)

		// Only the title is non-empty: 3 non-source locales, 1 field each
		assert.Equal(t, 3, calls)

		byLocale := loadTranslations(t, db, "art_1")
		assert.Empty(t, byLocale["en"].Content)
		assert.Empty(t, byLocale["en"].Description)
	})
}

func TestUpdateTranslations(t *testing.T) {
	t.Run("Rewrites only supplied fields on every locale", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		engine := NewTranslationEngine(&MockTranslator{})

		fields := SourceFields{Title: "Ancien titre", Content: "Ancien contenu", Description: "Desc"}
		require.NoError(t, engine.CreateTranslations(context.Background(), db, "art_1", fields, "santé"))

		newTitle := "Nouveau titre"
		err := engine.UpdateTranslations(context.Background(), db, "art_1", PartialFields{Title: &newTitle}, nil)
		require.NoError(t, err)

		byLocale := loadTranslations(t, db, "art_1")
		assert.Equal(t, "Nouveau titre", byLocale["fr"].Title)
		assert.Equal(t, "[en] Nouveau titre", byLocale["en"].Title)

		// Untouched fields keep their stored values
		assert.Equal(t, "Ancien contenu", byLocale["fr"].Content)
		assert.Equal(t, "[es] Ancien contenu", byLocale["es"].Content)
		assert.Equal(t, "santé", byLocale["zh"].Category)
	})

	t.Run("Category update propagates verbatim to every locale", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		engine := NewTranslationEngine(&MockTranslator{})

		fields := SourceFields{Title: "Titre"}
		require.NoError(t, engine.CreateTranslations(context.Background(), db, "art_1", fields, "santé"))

		category := "éducation"
		err := engine.UpdateTranslations(context.Background(), db, "art_1", PartialFields{}, &category)
		require.NoError(t, err)

		for locale, row := range loadTranslations(t, db, "art_1") {
			assert.Equal(t, "éducation", row.Category, "category for %s", locale)
		}
	})

	t.Run("Missing locale row is created blank then filled", func(t *testing.T) {
		db := SetupSQLiteTestDB(t)
		engine := NewTranslationEngine(&MockTranslator{})

		fields := SourceFields{Title: "Titre"}
		require.NoError(t, engine.CreateTranslations(context.Background(), db, "art_1", fields, "santé"))
		require.NoError(t, db.Where("article_id = ? AND locale = ?", "art_1", "zh").
			Delete(&models.ArticleTranslation{}).Error)

		newTitle := "Titre mis à jour"
		err := engine.UpdateTranslations(context.Background(), db, "art_1", PartialFields{Title: &newTitle}, nil)
		require.NoError(t, err)

		byLocale := loadTranslations(t, db, "art_1")
		require.Contains(t, byLocale, "zh")
		assert.Equal(t, fmt.Sprintf("[zh] %s", newTitle), byLocale["zh"].Title)
	})
}
