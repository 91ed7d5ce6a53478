package services

import (
	"strings"

	"github.com/google/uuid"
	apierrors "github.com/ong-espoir/api-server-go/pkg/errors"
	"github.com/ong-espoir/api-server-go/v1/models"
	"gorm.io/gorm"
)

// LookupService manages the volunteer- and donation-category lookup tables
type LookupService struct {
	db *gorm.DB
}

// NewLookupService creates a new lookup service
func NewLookupService(db *gorm.DB) *LookupService {
	return &LookupService{db: db}
}

// ListBenevoleTypes returns active volunteer categories ordered by label
func (s *LookupService) ListBenevoleTypes() ([]models.BenevoleType, error) {
	var types []models.BenevoleType
	if err := s.db.Where("is_active = ?", true).Order("label").Find(&types).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "types de bénévolat")
	}
	return types, nil
}

// GetBenevoleType retrieves a volunteer category by ID
func (s *LookupService) GetBenevoleType(typeID string) (*models.BenevoleType, error) {
	var benevoleType models.BenevoleType
	if err := s.db.Where("type_id = ?", typeID).First(&benevoleType).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "type de bénévolat")
	}
	return &benevoleType, nil
}

// CreateBenevoleType creates a volunteer category with a label-derived slug
func (s *LookupService) CreateBenevoleType(req *models.CreateTypeRequest) (*models.BenevoleType, error) {
	if err := validateTypeLabel(req.Label); err != nil {
		return nil, err
	}
	slug, err := UniqueSlug(Slugify(req.Label, "type"), func(candidate string) (bool, error) {
		var count int64
		err := s.db.Model(&models.BenevoleType{}).Where("slug = ?", candidate).Count(&count).Error
		return count > 0, err
	})
	if err != nil {
		return nil, apierrors.InternalErrorWithCause("failed to allocate type slug", err)
	}

	benevoleType := models.BenevoleType{
		TypeID:      "btp_" + uuid.New().String(),
		Slug:        slug,
		Label:       req.Label,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.db.Create(&benevoleType).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "type de bénévolat")
	}
	return &benevoleType, nil
}

// UpdateBenevoleType mutates only the supplied fields
func (s *LookupService) UpdateBenevoleType(typeID string, req *models.UpdateTypeRequest) (*models.BenevoleType, error) {
	benevoleType, err := s.GetBenevoleType(typeID)
	if err != nil {
		return nil, err
	}
	if req.Label != nil {
		if err := validateTypeLabel(*req.Label); err != nil {
			return nil, err
		}
		benevoleType.Label = *req.Label
	}
	if req.Description != nil {
		benevoleType.Description = *req.Description
	}
	if req.IsActive != nil {
		benevoleType.IsActive = *req.IsActive
	}
	if err := s.db.Save(benevoleType).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "type de bénévolat")
	}
	return benevoleType, nil
}

// DeactivateBenevoleType soft-deletes a volunteer category
func (s *LookupService) DeactivateBenevoleType(typeID string) error {
	result := s.db.Model(&models.BenevoleType{}).Where("type_id = ?", typeID).Update("is_active", false)
	if result.Error != nil {
		return apierrors.HandleDatabaseError(result.Error, "type de bénévolat")
	}
	if result.RowsAffected == 0 {
		return apierrors.NotFoundError("type de bénévolat")
	}
	return nil
}

// ListEnfilerTypes returns active donation categories ordered by label
func (s *LookupService) ListEnfilerTypes() ([]models.EnfilerType, error) {
	var types []models.EnfilerType
	if err := s.db.Where("is_active = ?", true).Order("label").Find(&types).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "types de don")
	}
	return types, nil
}

// GetEnfilerType retrieves a donation category by ID
func (s *LookupService) GetEnfilerType(typeID string) (*models.EnfilerType, error) {
	var enfilerType models.EnfilerType
	if err := s.db.Where("type_id = ?", typeID).First(&enfilerType).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "type de don")
	}
	return &enfilerType, nil
}

// CreateEnfilerType creates a donation category with a label-derived slug
func (s *LookupService) CreateEnfilerType(req *models.CreateTypeRequest) (*models.EnfilerType, error) {
	if err := validateTypeLabel(req.Label); err != nil {
		return nil, err
	}
	slug, err := UniqueSlug(Slugify(req.Label, "type"), func(candidate string) (bool, error) {
		var count int64
		err := s.db.Model(&models.EnfilerType{}).Where("slug = ?", candidate).Count(&count).Error
		return count > 0, err
	})
	if err != nil {
		return nil, apierrors.InternalErrorWithCause("failed to allocate type slug", err)
	}

	enfilerType := models.EnfilerType{
		TypeID:      "etp_" + uuid.New().String(),
		Slug:        slug,
		Label:       req.Label,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.db.Create(&enfilerType).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "type de don")
	}
	return &enfilerType, nil
}

// UpdateEnfilerType mutates only the supplied fields
func (s *LookupService) UpdateEnfilerType(typeID string, req *models.UpdateTypeRequest) (*models.EnfilerType, error) {
	enfilerType, err := s.GetEnfilerType(typeID)
	if err != nil {
		return nil, err
	}
	if req.Label != nil {
		if err := validateTypeLabel(*req.Label); err != nil {
			return nil, err
		}
		enfilerType.Label = *req.Label
	}
	if req.Description != nil {
		enfilerType.Description = *req.Description
	}
	if req.IsActive != nil {
		enfilerType.IsActive = *req.IsActive
	}
	if err := s.db.Save(enfilerType).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "type de don")
	}
	return enfilerType, nil
}

// DeactivateEnfilerType soft-deletes a donation category
func (s *LookupService) DeactivateEnfilerType(typeID string) error {
	result := s.db.Model(&models.EnfilerType{}).Where("type_id = ?", typeID).Update("is_active", false)
	if result.Error != nil {
		return apierrors.HandleDatabaseError(result.Error, "type de don")
	}
	if result.RowsAffected == 0 {
		return apierrors.NotFoundError("type de don")
	}
	return nil
}

func validateTypeLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return apierrors.ValidationError("LABEL_REQUIRED", "Le libellé est requis")
	}
	return nil
}
