package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ong-espoir/api-server-go/notify"
	apierrors "github.com/ong-espoir/api-server-go/pkg/errors"
	"github.com/ong-espoir/api-server-go/v1/models"
	"gorm.io/gorm"
)

// EnfilerService handles donation submissions ("dons") and their moderation
type EnfilerService struct {
	db         *gorm.DB
	notifier   notify.Notifier
	adminEmail string
	moderation *ModerationPolicy
}

// NewEnfilerService creates a new donation service. Unlike members, rejected
// donations keep their visibility flag untouched.
func NewEnfilerService(db *gorm.DB, notifier notify.Notifier, adminEmail string) *EnfilerService {
	policy := NewModerationPolicy(db, notifier, ModerationPolicyConfig{
		EntityLabel:        "don",
		PrimaryKey:         "enfiler_id",
		DeactivateOnReject: false,
		AdminEmail:         adminEmail,
		Templates: ModerationTemplates{
			Approved: notify.TemplateEnfilerApproved,
			Rejected: notify.TemplateEnfilerRejected,
		},
	})
	return &EnfilerService{db: db, notifier: notifier, adminEmail: adminEmail, moderation: policy}
}

// ListEnfilersParams are the donation list filters
type ListEnfilersParams struct {
	Page    int
	PerPage int
	Type    string
	Status  string
	Query   string
}

// CreateEnfiler stores a donation in the pending moderation state and fires
// a thank-you mail to the donor plus a notice to the admin address
func (s *EnfilerService) CreateEnfiler(ctx context.Context, req *models.CreateEnfilerRequest) (*models.Enfiler, error) {
	if err := validateSubmission(req.Name, req.Email, req.Type); err != nil {
		return nil, err
	}

	enfiler := models.Enfiler{
		EnfilerID:     "enf_" + uuid.New().String(),
		Slug:          "ENF-" + uuid.New().String(),
		Name:          req.Name,
		BossName:      req.BossName,
		Email:         req.Email,
		Phone:         req.Phone,
		Type:          req.Type,
		Motivation:    req.Motivation,
		EnfilerTypeID: req.EnfilerTypeID,
		IsActive:      true,
	}

	if err := s.db.Create(&enfiler).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "don")
	}

	s.notifyCreated(ctx, &enfiler)
	slog.Info("Donation created", "enfilerId", enfiler.EnfilerID)
	return &enfiler, nil
}

// GetEnfiler retrieves a donation by ID
func (s *EnfilerService) GetEnfiler(enfilerID string) (*models.Enfiler, error) {
	var enfiler models.Enfiler
	if err := s.db.Where("enfiler_id = ?", enfilerID).First(&enfiler).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "don")
	}
	return &enfiler, nil
}

// ListEnfilers returns one page of donations, newest first. Status follows
// the article convention: activated by default, "all" disables the filter.
func (s *EnfilerService) ListEnfilers(params ListEnfilersParams) ([]models.Enfiler, models.Pagination, error) {
	page, perPage := normalizePage(params.Page, params.PerPage, 10)

	query := s.db.Model(&models.Enfiler{})
	switch params.Status {
	case models.StatusAll:
	case models.StatusDesactivated:
		query = query.Where("is_active = ?", false)
	default:
		query = query.Where("is_active = ?", true)
	}
	if params.Type != "" {
		query = query.Where("type = ?", params.Type)
	}
	if params.Query != "" {
		like := "%" + params.Query + "%"
		query = query.Where(
			"name LIKE ? OR boss_name LIKE ? OR email LIKE ? OR phone LIKE ?",
			like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, models.Pagination{}, apierrors.HandleDatabaseError(err, "dons")
	}

	var enfilers []models.Enfiler
	err := query.Order("created_at DESC").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&enfilers).Error
	if err != nil {
		return nil, models.Pagination{}, apierrors.HandleDatabaseError(err, "dons")
	}
	return enfilers, buildPagination(page, perPage, total), nil
}

// UpdateEnfiler mutates only the supplied fields
func (s *EnfilerService) UpdateEnfiler(enfilerID string, req *models.UpdateEnfilerRequest) (*models.Enfiler, error) {
	enfiler, err := s.GetEnfiler(enfilerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		enfiler.Name = *req.Name
	}
	if req.BossName != nil {
		enfiler.BossName = req.BossName
	}
	if req.Phone != nil {
		enfiler.Phone = *req.Phone
	}
	if req.Motivation != nil {
		enfiler.Motivation = *req.Motivation
	}
	if req.EnfilerTypeID != nil {
		enfiler.EnfilerTypeID = req.EnfilerTypeID
	}

	if err := s.db.Save(enfiler).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "don")
	}
	return enfiler, nil
}

// SetEnfilerActive toggles the visibility flag, independent of moderation
func (s *EnfilerService) SetEnfilerActive(enfilerID string, active bool) error {
	result := s.db.Model(&models.Enfiler{}).Where("enfiler_id = ?", enfilerID).Update("is_active", active)
	if result.Error != nil {
		return apierrors.HandleDatabaseError(result.Error, "don")
	}
	if result.RowsAffected == 0 {
		return apierrors.NotFoundError("don")
	}
	return nil
}

// ApproveEnfiler transitions a pending donation to approved
func (s *EnfilerService) ApproveEnfiler(ctx context.Context, enfilerID, customMessage string) (*models.Enfiler, error) {
	enfiler, err := s.GetEnfiler(enfilerID)
	if err != nil {
		return nil, err
	}
	if err := s.moderation.Approve(ctx, enfiler, customMessage); err != nil {
		return nil, err
	}
	return enfiler, nil
}

// RejectEnfiler transitions a pending donation to rejected with a reason
func (s *EnfilerService) RejectEnfiler(ctx context.Context, enfilerID, reason, customMessage string) (*models.Enfiler, error) {
	enfiler, err := s.GetEnfiler(enfilerID)
	if err != nil {
		return nil, err
	}
	if err := s.moderation.Reject(ctx, enfiler, reason, customMessage); err != nil {
		return nil, err
	}
	return enfiler, nil
}

// notifyCreated thanks the donor and notifies the admin. Both sends are
// fire-and-forget.
func (s *EnfilerService) notifyCreated(ctx context.Context, enfiler *models.Enfiler) {
	recipients := []string{enfiler.Email, s.adminEmail}
	for _, recipient := range recipients {
		if recipient == "" {
			continue
		}
		msg := notify.Message{
			Template:  notify.TemplateEnfilerCreated,
			Recipient: recipient,
			Subject:   "Merci pour votre don !",
			Context:   map[string]string{"name": enfiler.Name, "motivation": enfiler.Motivation},
		}
		if err := s.notifier.Send(ctx, msg); err != nil {
			slog.Warn("Donation notification failed", "recipient", recipient, "error", err)
		}
	}
}
