package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ong-espoir/api-server-go/translate"
	"github.com/ong-espoir/api-server-go/v1/models"
	"gorm.io/gorm"
)

// TranslationEngine fans a source-language submission out into one stored
// translation row per supported locale. Provider failures degrade field by
// field and never abort the fan-out.
type TranslationEngine struct {
	translator translate.Translator
}

// NewTranslationEngine creates a new translation engine
func NewTranslationEngine(translator translate.Translator) *TranslationEngine {
	return &TranslationEngine{translator: translator}
}

// SourceFields are the translatable fields as submitted in the source locale
type SourceFields struct {
	Title       string
	Content     string
	Description string
}

// PartialFields carry only the fields present in an update; nil fields keep
// their stored values across every locale
type PartialFields struct {
	Title       *string
	Content     *string
	Description *string
}

// CreateTranslations writes one translation row per supported locale on tx.
// The source locale's fields are copied verbatim; category is copied as-is to
// every locale, it is never translated.
func (e *TranslationEngine) CreateTranslations(ctx context.Context, tx *gorm.DB, articleID string, fields SourceFields, category string) error {
	for _, locale := range models.SupportedLocales {
		row := models.ArticleTranslation{
			TranslationID: "trl_" + uuid.New().String(),
			ArticleID:     articleID,
			Locale:        locale,
			Title:         e.translateField(ctx, fields.Title, locale),
			Content:       e.translateField(ctx, fields.Content, locale),
			Description:   e.translateField(ctx, fields.Description, locale),
			Category:      category,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to create %s translation for article %s: %w", locale, articleID, err)
		}
	}
	return nil
}

// UpdateTranslations rewrites only the supplied fields on every locale's row.
// A missing row is created blank first, which covers articles created before
// a locale joined the supported set.
func (e *TranslationEngine) UpdateTranslations(ctx context.Context, tx *gorm.DB, articleID string, fields PartialFields, category *string) error {
	for _, locale := range models.SupportedLocales {
		var row models.ArticleTranslation
		err := tx.Where("article_id = ? AND locale = ?", articleID, locale).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = models.ArticleTranslation{
				TranslationID: "trl_" + uuid.New().String(),
				ArticleID:     articleID,
				Locale:        locale,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create missing %s translation for article %s: %w", locale, articleID, err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to load %s translation for article %s: %w", locale, articleID, err)
		}

		if fields.Title != nil {
			row.Title = e.translateField(ctx, *fields.Title, locale)
		}
		if fields.Content != nil {
			row.Content = e.translateField(ctx, *fields.Content, locale)
		}
		if fields.Description != nil {
			row.Description = e.translateField(ctx, *fields.Description, locale)
		}
		if category != nil {
			row.Category = *category
		}

		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("failed to save %s translation for article %s: %w", locale, articleID, err)
		}
	}
	return nil
}

// translateField resolves one field for one locale. The source locale and
// empty fields skip the provider entirely; a provider failure keeps the
// source text with the untranslated marker appended.
func (e *TranslationEngine) translateField(ctx context.Context, text, locale string) string {
	if locale == models.SourceLocale || text == "" {
		return text
	}
	translated, err := e.translator.Translate(ctx, text, models.SourceLocale, locale)
	if err != nil {
		slog.Warn("Translation failed, keeping source text", "locale", locale, "error", err)
		return text + " " + models.UntranslatedMarker
	}
	return translated
}
