package services

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	apierrors "github.com/ong-espoir/api-server-go/pkg/errors"
	"github.com/ong-espoir/api-server-go/storage"
	"github.com/ong-espoir/api-server-go/v1/models"
	"gorm.io/gorm"
)

// GalleryService manages an article's ordered collection of captioned
// images: batch append, replace by slug, delete by slug. Gallery mutations
// never touch the owning article.
type GalleryService struct {
	db    *gorm.DB
	store storage.BlobStore
}

// NewGalleryService creates a new gallery service
func NewGalleryService(db *gorm.DB, store storage.BlobStore) *GalleryService {
	return &GalleryService{db: db, store: store}
}

// ImageUpload is one inbound image with its positionally matched caption
type ImageUpload struct {
	File     io.Reader
	Filename string
	Caption  *string
}

// AddImages stores each upload in the gallery namespace and appends a row per
// image on tx. Display order is insertion order.
func (s *GalleryService) AddImages(tx *gorm.DB, articleID string, uploads []ImageUpload) ([]models.ArticleImage, error) {
	images := make([]models.ArticleImage, 0, len(uploads))
	for _, upload := range uploads {
		path, err := s.store.Store(upload.File, upload.Filename, models.NamespaceGallery)
		if err != nil {
			return nil, apierrors.InternalErrorWithCause("failed to store gallery image", err)
		}

		image := models.ArticleImage{
			ImageID:   "img_" + uuid.New().String(),
			Slug:      "IMG-" + uuid.New().String(),
			ArticleID: articleID,
			Path:      path,
			Caption:   upload.Caption,
		}
		if err := tx.Create(&image).Error; err != nil {
			return nil, apierrors.InternalErrorWithCause(
				fmt.Sprintf("failed to persist gallery image %s", image.Slug), err)
		}
		images = append(images, image)
	}
	return images, nil
}

// ReplaceImage swaps the blob behind one gallery entry. The previous blob is
// deleted first when it still exists (a vanished blob is a no-op, not an
// error); the caption is only rewritten when a new one is supplied.
func (s *GalleryService) ReplaceImage(slug string, upload ImageUpload) (*models.ArticleImage, error) {
	var image models.ArticleImage
	if err := s.db.Where("slug = ?", slug).First(&image).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "image")
	}

	if image.Path != "" && s.store.Exists(image.Path) {
		if err := s.store.Delete(image.Path); err != nil {
			slog.Warn("Failed to delete replaced blob", "path", image.Path, "error", err)
		}
	}

	path, err := s.store.Store(upload.File, upload.Filename, models.NamespaceGallery)
	if err != nil {
		return nil, apierrors.InternalErrorWithCause("failed to store replacement image", err)
	}

	image.Path = path
	if upload.Caption != nil {
		image.Caption = upload.Caption
	}
	if err := s.db.Save(&image).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "image")
	}
	return &image, nil
}

// DeleteImage removes one gallery entry and its blob
func (s *GalleryService) DeleteImage(slug string) error {
	var image models.ArticleImage
	if err := s.db.Where("slug = ?", slug).First(&image).Error; err != nil {
		return apierrors.HandleDatabaseError(err, "image")
	}

	if image.Path != "" && s.store.Exists(image.Path) {
		if err := s.store.Delete(image.Path); err != nil {
			slog.Warn("Failed to delete blob", "path", image.Path, "error", err)
		}
	}

	if err := s.db.Delete(&image).Error; err != nil {
		return apierrors.HandleDatabaseError(err, "image")
	}
	return nil
}
