package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	apierrors "github.com/ong-espoir/api-server-go/pkg/errors"
	"github.com/ong-espoir/api-server-go/storage"
	"github.com/ong-espoir/api-server-go/v1/models"
	"gorm.io/gorm"
)

// ArticleService orchestrates the article lifecycle: slug allocation,
// translation fan-out, cover handling, and gallery appends. Create and update
// run inside one transaction so an article never ends up with a partial
// translation set.
type ArticleService struct {
	db           *gorm.DB
	engine       *TranslationEngine
	gallery      *GalleryService
	store        storage.BlobStore
	assetBaseURL string
}

// NewArticleService creates a new article service
func NewArticleService(db *gorm.DB, engine *TranslationEngine, gallery *GalleryService, store storage.BlobStore, assetBaseURL string) *ArticleService {
	return &ArticleService{
		db:           db,
		engine:       engine,
		gallery:      gallery,
		store:        store,
		assetBaseURL: strings.TrimSuffix(assetBaseURL, "/"),
	}
}

// CreateArticleInput is the parsed multipart create submission
type CreateArticleInput struct {
	Title       string
	Content     string
	Description string
	Category    string
	Cover       *ImageUpload
	Gallery     []ImageUpload
}

// UpdateArticleInput carries only the fields present in the update request
type UpdateArticleInput struct {
	Title       *string
	Content     *string
	Description *string
	Category    *string
	Cover       *ImageUpload
	Gallery     []ImageUpload
}

// ListArticlesParams are the list endpoint filters
type ListArticlesParams struct {
	Page     int
	PerPage  int
	Status   string
	Category string
	Search   string
	Locale   string
}

// CreateArticle allocates a unique slug, stores the cover, and writes the
// article with its full translation set and gallery in one transaction
func (s *ArticleService) CreateArticle(ctx context.Context, in CreateArticleInput) (*models.Article, error) {
	if err := validateCreateArticle(in); err != nil {
		return nil, err
	}

	slug, err := UniqueSlug(Slugify(in.Title, "article"), s.slugTaken(""))
	if err != nil {
		return nil, apierrors.InternalErrorWithCause("failed to allocate article slug", err)
	}

	var coverPath *string
	if in.Cover != nil {
		path, err := s.store.Store(in.Cover.File, in.Cover.Filename, models.NamespaceCovers)
		if err != nil {
			return nil, apierrors.InternalErrorWithCause("failed to store cover image", err)
		}
		coverPath = &path
	}

	article := models.Article{
		ArticleID:  "art_" + uuid.New().String(),
		Slug:       slug,
		CoverImage: coverPath,
		IsActive:   true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&article).Error; err != nil {
			return fmt.Errorf("failed to create article: %w", err)
		}

		fields := SourceFields{Title: in.Title, Content: in.Content, Description: in.Description}
		if err := s.engine.CreateTranslations(ctx, tx, article.ArticleID, fields, in.Category); err != nil {
			return err
		}

		images, err := s.gallery.AddImages(tx, article.ArticleID, in.Gallery)
		if err != nil {
			return err
		}
		article.Images = images
		return nil
	})
	if err != nil {
		if apiErr := apierrors.GetAPIError(err); apiErr != nil {
			return nil, apiErr
		}
		return nil, apierrors.InternalErrorWithCause("failed to create article", err)
	}

	slog.Info("Article created", "articleId", article.ArticleID, "slug", article.Slug)
	return &article, nil
}

// UpdateArticle re-runs slug allocation when the title changes, replaces the
// cover when one is supplied, updates only the submitted translation fields,
// and appends any new gallery images, all within one transaction
func (s *ArticleService) UpdateArticle(ctx context.Context, articleID string, in UpdateArticleInput) (*models.Article, error) {
	if in.Category != nil && !models.IsValidCategory(*in.Category) {
		return nil, apierrors.ValidationError("INVALID_CATEGORY", "Catégorie invalide")
	}

	var article models.Article
	if err := s.db.Where("article_id = ?", articleID).First(&article).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "article")
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apierrors.ValidationError("TITLE_REQUIRED", "Le titre ne peut pas être vide")
		}
		slug, err := UniqueSlug(Slugify(*in.Title, "article"), s.slugTaken(article.ArticleID))
		if err != nil {
			return nil, apierrors.InternalErrorWithCause("failed to allocate article slug", err)
		}
		article.Slug = slug
	}

	var replacedCover *string
	if in.Cover != nil {
		replacedCover = article.CoverImage
		path, err := s.store.Store(in.Cover.File, in.Cover.Filename, models.NamespaceCovers)
		if err != nil {
			return nil, apierrors.InternalErrorWithCause("failed to store cover image", err)
		}
		article.CoverImage = &path
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&article).Error; err != nil {
			return fmt.Errorf("failed to save article: %w", err)
		}

		if in.Title != nil || in.Content != nil || in.Description != nil || in.Category != nil {
			fields := PartialFields{Title: in.Title, Content: in.Content, Description: in.Description}
			if err := s.engine.UpdateTranslations(ctx, tx, article.ArticleID, fields, in.Category); err != nil {
				return err
			}
		}

		if _, err := s.gallery.AddImages(tx, article.ArticleID, in.Gallery); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if apiErr := apierrors.GetAPIError(err); apiErr != nil {
			return nil, apiErr
		}
		return nil, apierrors.InternalErrorWithCause("failed to update article", err)
	}

	// The replaced cover is removed only after the commit so a failed update
	// never leaves the article pointing at a deleted blob
	if replacedCover != nil && s.store.Exists(*replacedCover) {
		if err := s.store.Delete(*replacedCover); err != nil {
			slog.Warn("Failed to delete replaced cover", "path", *replacedCover, "error", err)
		}
	}

	slog.Info("Article updated", "articleId", article.ArticleID, "slug", article.Slug)
	return &article, nil
}

// ListArticles returns one page of articles flattened onto the requested
// locale, with `[non traduit]` placeholders when a translation row is missing
func (s *ArticleService) ListArticles(params ListArticlesParams) ([]models.ArticleView, models.Pagination, error) {
	page, perPage := normalizePage(params.Page, params.PerPage, 50)
	locale := params.Locale
	if !models.IsSupportedLocale(locale) {
		locale = models.SourceLocale
	}

	query := s.db.Model(&models.Article{})
	query = applyStatusFilter(query, params.Status)

	if params.Category != "" && params.Category != "all" {
		query = query.Where("article_id IN (?)",
			s.db.Model(&models.ArticleTranslation{}).Select("article_id").
				Where("locale = ? AND category = ?", locale, params.Category))
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("article_id IN (?)",
			s.db.Model(&models.ArticleTranslation{}).Select("article_id").
				Where("locale = ? AND (title LIKE ? OR content LIKE ?)", locale, like, like))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, models.Pagination{}, apierrors.HandleDatabaseError(err, "articles")
	}

	var articles []models.Article
	err := query.
		Preload("Translations", "locale = ?", locale).
		Preload("Images").
		Order("created_at").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&articles).Error
	if err != nil {
		return nil, models.Pagination{}, apierrors.HandleDatabaseError(err, "articles")
	}

	views := make([]models.ArticleView, len(articles))
	for i := range articles {
		views[i] = s.buildView(&articles[i])
	}
	return views, buildPagination(page, perPage, total), nil
}

// GetArticleBySlug returns one article flattened onto the requested locale,
// honoring the status filter
func (s *ArticleService) GetArticleBySlug(slug, status, locale string) (*models.ArticleView, error) {
	if !models.IsSupportedLocale(locale) {
		locale = models.SourceLocale
	}

	query := applyStatusFilter(s.db.Where("slug = ?", slug), status)

	var article models.Article
	err := query.
		Preload("Translations", "locale = ?", locale).
		Preload("Images").
		First(&article).Error
	if err != nil {
		return nil, apierrors.HandleDatabaseError(err, "article")
	}

	view := s.buildView(&article)
	return &view, nil
}

// DeactivateArticle soft-deletes: the article and its translations and
// images all stay in place
func (s *ArticleService) DeactivateArticle(articleID string) error {
	var article models.Article
	if err := s.db.Where("article_id = ?", articleID).First(&article).Error; err != nil {
		return apierrors.HandleDatabaseError(err, "article")
	}
	if err := s.db.Model(&article).Update("is_active", false).Error; err != nil {
		return apierrors.HandleDatabaseError(err, "article")
	}
	slog.Info("Article deactivated", "articleId", articleID)
	return nil
}

// slugTaken builds the uniqueness lookup for the probe, excluding the
// entity's own id during updates
func (s *ArticleService) slugTaken(excludeID string) func(string) (bool, error) {
	return func(candidate string) (bool, error) {
		query := s.db.Model(&models.Article{}).Where("slug = ?", candidate)
		if excludeID != "" {
			query = query.Where("article_id != ?", excludeID)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}
}

// buildView flattens an article onto its (single, preloaded) translation
func (s *ArticleService) buildView(article *models.Article) models.ArticleView {
	view := models.ArticleView{
		ID:          article.ArticleID,
		Slug:        article.Slug,
		IsActive:    article.IsActive,
		Title:       models.UntranslatedMarker,
		Content:     models.UntranslatedMarker,
		Description: models.UntranslatedMarker,
		Category:    models.UntranslatedMarker,
		Gallery:     make([]models.GalleryImageView, 0, len(article.Images)),
		CreatedAt:   article.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   article.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if article.CoverImage != nil {
		url := s.assetURL(*article.CoverImage)
		view.CoverImage = &url
	}
	if len(article.Translations) > 0 {
		t := article.Translations[0]
		view.Title = t.Title
		view.Content = t.Content
		view.Description = t.Description
		view.Category = t.Category
	}
	for _, img := range article.Images {
		view.Gallery = append(view.Gallery, models.GalleryImageView{
			Slug:    img.Slug,
			URL:     s.assetURL(img.Path),
			Caption: img.Caption,
		})
	}
	return view
}

// assetURL turns a blob path into a public URL
func (s *ArticleService) assetURL(path string) string {
	return s.assetBaseURL + "/storage/" + path
}

// ImageView is the public shape of one replaced image
func (s *ArticleService) ImageView(image *models.ArticleImage) models.GalleryImageView {
	return models.GalleryImageView{
		Slug:    image.Slug,
		URL:     s.assetURL(image.Path),
		Caption: image.Caption,
	}
}

// applyStatusFilter narrows a query by the activated/desactivated/all filter;
// anything unrecognized defaults to activated-only like the public site
func applyStatusFilter(query *gorm.DB, status string) *gorm.DB {
	switch status {
	case models.StatusAll:
		return query
	case models.StatusDesactivated:
		return query.Where("is_active = ?", false)
	default:
		return query.Where("is_active = ?", true)
	}
}

// validateCreateArticle checks the required create fields
func validateCreateArticle(in CreateArticleInput) error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Content) == "" {
		missing = append(missing, "content")
	}
	if in.Category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return apierrors.ValidationErrorWithDetails("MISSING_FIELDS",
			"Champs obligatoires manquants", strings.Join(missing, ", "))
	}
	if !models.IsValidCategory(in.Category) {
		return apierrors.ValidationError("INVALID_CATEGORY", "Catégorie invalide")
	}
	return nil
}
