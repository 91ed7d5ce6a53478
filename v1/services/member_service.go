package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/ong-espoir/api-server-go/notify"
	apierrors "github.com/ong-espoir/api-server-go/pkg/errors"
	"github.com/ong-espoir/api-server-go/v1/models"
	"gorm.io/gorm"
)

// MemberService handles membership submissions and their moderation
type MemberService struct {
	db         *gorm.DB
	notifier   notify.Notifier
	moderation *ModerationPolicy
}

// NewMemberService creates a new member service. Rejected members are
// deactivated, matching the behavior observed for this entity family.
func NewMemberService(db *gorm.DB, notifier notify.Notifier, adminEmail string) *MemberService {
	policy := NewModerationPolicy(db, notifier, ModerationPolicyConfig{
		EntityLabel:        "membre",
		PrimaryKey:         "member_id",
		DeactivateOnReject: true,
		AdminEmail:         adminEmail,
		Templates: ModerationTemplates{
			Approved: notify.TemplateMemberApproved,
			Rejected: notify.TemplateMemberRejected,
		},
	})
	return &MemberService{db: db, notifier: notifier, moderation: policy}
}

// ListMembersParams are the member list filters
type ListMembersParams struct {
	Page        int
	PerPage     int
	Type        string
	IsVolunteer *bool
	IsActive    *bool
	Query       string
}

// CreateMember stores a submission in the pending moderation state
func (s *MemberService) CreateMember(ctx context.Context, req *models.CreateMemberRequest) (*models.Member, error) {
	if err := validateSubmission(req.Name, req.Email, req.Type); err != nil {
		return nil, err
	}

	member := models.Member{
		MemberID:       "mbr_" + uuid.New().String(),
		Slug:           uuid.New().String(),
		Name:           req.Name,
		BossName:       req.BossName,
		Email:          req.Email,
		Phone:          req.Phone,
		Type:           req.Type,
		Residence:      req.Residence,
		Profession:     req.Profession,
		IsVolunteer:    req.IsVolunteer,
		BenevoleTypeID: req.BenevoleTypeID,
		IsActive:       false,
	}

	if err := s.db.Create(&member).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "membre")
	}

	s.fireAndForget(ctx, notify.TemplateMemberCreated, member.Email, member.Name)
	slog.Info("Member created", "memberId", member.MemberID)
	return &member, nil
}

// GetMember retrieves a member by ID
func (s *MemberService) GetMember(memberID string) (*models.Member, error) {
	var member models.Member
	if err := s.db.Where("member_id = ?", memberID).First(&member).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "membre")
	}
	return &member, nil
}

// ListMembers returns one page of members, newest first
func (s *MemberService) ListMembers(params ListMembersParams) ([]models.Member, models.Pagination, error) {
	page, perPage := normalizePage(params.Page, params.PerPage, 10)

	query := s.db.Model(&models.Member{})
	if params.Type != "" {
		query = query.Where("type = ?", params.Type)
	}
	if params.IsVolunteer != nil {
		query = query.Where("is_volunteer = ?", *params.IsVolunteer)
	}
	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}
	if params.Query != "" {
		like := "%" + params.Query + "%"
		query = query.Where(
			"name LIKE ? OR boss_name LIKE ? OR email LIKE ? OR phone LIKE ?",
			like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, models.Pagination{}, apierrors.HandleDatabaseError(err, "membres")
	}

	var members []models.Member
	err := query.Order("created_at DESC").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&members).Error
	if err != nil {
		return nil, models.Pagination{}, apierrors.HandleDatabaseError(err, "membres")
	}
	return members, buildPagination(page, perPage, total), nil
}

// UpdateMember mutates only the supplied fields
func (s *MemberService) UpdateMember(memberID string, req *models.UpdateMemberRequest) (*models.Member, error) {
	member, err := s.GetMember(memberID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.BossName != nil {
		member.BossName = req.BossName
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.Residence != nil {
		member.Residence = req.Residence
	}
	if req.Profession != nil {
		member.Profession = req.Profession
	}
	if req.BenevoleTypeID != nil {
		member.BenevoleTypeID = req.BenevoleTypeID
	}

	if err := s.db.Save(member).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "membre")
	}
	return member, nil
}

// SetMemberActive toggles the visibility flag, independent of moderation
func (s *MemberService) SetMemberActive(memberID string, active bool) error {
	return s.setFlag(memberID, "is_active", active)
}

// ToggleVolunteer flips the volunteer flag
func (s *MemberService) ToggleVolunteer(memberID string) (*models.Member, error) {
	member, err := s.GetMember(memberID)
	if err != nil {
		return nil, err
	}
	member.IsVolunteer = !member.IsVolunteer
	if err := s.db.Save(member).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "membre")
	}
	return member, nil
}

// ApproveMember transitions a pending member to approved
func (s *MemberService) ApproveMember(ctx context.Context, memberID, customMessage string) (*models.Member, error) {
	member, err := s.GetMember(memberID)
	if err != nil {
		return nil, err
	}
	if err := s.moderation.Approve(ctx, member, customMessage); err != nil {
		return nil, err
	}
	return member, nil
}

// RejectMember transitions a pending member to rejected with a reason
func (s *MemberService) RejectMember(ctx context.Context, memberID, reason, customMessage string) (*models.Member, error) {
	member, err := s.GetMember(memberID)
	if err != nil {
		return nil, err
	}
	if err := s.moderation.Reject(ctx, member, reason, customMessage); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *MemberService) setFlag(memberID, column string, value bool) error {
	result := s.db.Model(&models.Member{}).Where("member_id = ?", memberID).Update(column, value)
	if result.Error != nil {
		return apierrors.HandleDatabaseError(result.Error, "membre")
	}
	if result.RowsAffected == 0 {
		return apierrors.NotFoundError("membre")
	}
	return nil
}

func (s *MemberService) fireAndForget(ctx context.Context, template, recipient, name string) {
	msg := notify.Message{
		Template:  template,
		Recipient: recipient,
		Subject:   "Merci pour votre inscription !",
		Context:   map[string]string{"name": name},
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		slog.Warn("Submission notification failed", "template", template, "recipient", recipient, "error", err)
	}
}

// validateSubmission checks the fields shared by member and donation
// submissions
func validateSubmission(name, email, entityType string) error {
	var missing []string
	if strings.TrimSpace(name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return apierrors.ValidationErrorWithDetails("MISSING_FIELDS",
			"Champs obligatoires manquants", strings.Join(missing, ", "))
	}
	if entityType != models.TypeIndividual && entityType != models.TypeCompany {
		return apierrors.ValidationError("INVALID_TYPE", "Le type doit être individual ou company")
	}
	return nil
}
