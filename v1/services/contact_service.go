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

// ContactService handles contact messages and newsletter subscriptions
type ContactService struct {
	db         *gorm.DB
	notifier   notify.Notifier
	adminEmail string
}

// NewContactService creates a new contact service
func NewContactService(db *gorm.DB, notifier notify.Notifier, adminEmail string) *ContactService {
	return &ContactService{db: db, notifier: notifier, adminEmail: adminEmail}
}

// CreateContact stores a contact message and notifies the admin address.
// The notification is fire-and-forget.
func (s *ContactService) CreateContact(ctx context.Context, req *models.CreateContactRequest) (*models.Contact, error) {
	var missing []string
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(req.Message) == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return nil, apierrors.ValidationErrorWithDetails("MISSING_FIELDS",
			"Champs obligatoires manquants", strings.Join(missing, ", "))
	}

	contact := models.Contact{
		ContactID: "ctc_" + uuid.New().String(),
		Slug:      uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		IsActive:  true,
	}
	if err := s.db.Create(&contact).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "message")
	}

	if s.adminEmail != "" {
		msg := notify.Message{
			Template:  notify.TemplateContactReceived,
			Recipient: s.adminEmail,
			Subject:   "Nouveau message de contact: " + contact.Subject,
			Context:   map[string]string{"name": contact.Name, "email": contact.Email, "message": contact.Message},
		}
		if err := s.notifier.Send(ctx, msg); err != nil {
			slog.Warn("Contact notification failed", "contactId", contact.ContactID, "error", err)
		}
	}

	slog.Info("Contact message created", "contactId", contact.ContactID)
	return &contact, nil
}

// ListContacts returns one page of contact messages, newest first
func (s *ContactService) ListContacts(page, perPage int) ([]models.Contact, models.Pagination, error) {
	page, perPage = normalizePage(page, perPage, 10)

	query := s.db.Model(&models.Contact{}).Where("is_active = ?", true)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, models.Pagination{}, apierrors.HandleDatabaseError(err, "messages")
	}

	var contacts []models.Contact
	err := query.Order("created_at DESC").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&contacts).Error
	if err != nil {
		return nil, models.Pagination{}, apierrors.HandleDatabaseError(err, "messages")
	}
	return contacts, buildPagination(page, perPage, total), nil
}

// GetContact retrieves a contact message by ID
func (s *ContactService) GetContact(contactID string) (*models.Contact, error) {
	var contact models.Contact
	if err := s.db.Where("contact_id = ?", contactID).First(&contact).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "message")
	}
	return &contact, nil
}

// DeactivateContact soft-deletes a contact message
func (s *ContactService) DeactivateContact(contactID string) error {
	result := s.db.Model(&models.Contact{}).Where("contact_id = ?", contactID).Update("is_active", false)
	if result.Error != nil {
		return apierrors.HandleDatabaseError(result.Error, "message")
	}
	if result.RowsAffected == 0 {
		return apierrors.NotFoundError("message")
	}
	return nil
}

// Subscribe adds an email to the newsletter list. Subscribing twice with the
// same address is a conflict.
func (s *ContactService) Subscribe(req *models.SubscribeRequest) (*models.Newsletter, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, apierrors.ValidationError("EMAIL_REQUIRED", "L'adresse email est requise")
	}

	var count int64
	if err := s.db.Model(&models.Newsletter{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "abonnement")
	}
	if count > 0 {
		return nil, apierrors.ConflictError("Cette adresse est déjà abonnée à la newsletter")
	}

	subscription := models.Newsletter{
		NewsletterID: "nws_" + uuid.New().String(),
		Slug:         uuid.New().String(),
		Email:        email,
		IsActive:     true,
	}
	// The unique index on email backstops the pre-check under concurrency
	if err := s.db.Create(&subscription).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "abonnement")
	}

	slog.Info("Newsletter subscription created", "newsletterId", subscription.NewsletterID)
	return &subscription, nil
}

// ListSubscriptions returns one page of newsletter subscriptions
func (s *ContactService) ListSubscriptions(page, perPage int) ([]models.Newsletter, models.Pagination, error) {
	page, perPage = normalizePage(page, perPage, 10)

	query := s.db.Model(&models.Newsletter{}).Where("is_active = ?", true)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, models.Pagination{}, apierrors.HandleDatabaseError(err, "abonnements")
	}

	var subscriptions []models.Newsletter
	err := query.Order("created_at DESC").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&subscriptions).Error
	if err != nil {
		return nil, models.Pagination{}, apierrors.HandleDatabaseError(err, "abonnements")
	}
	return subscriptions, buildPagination(page, perPage, total), nil
}

// Unsubscribe deactivates a subscription by email
func (s *ContactService) Unsubscribe(email string) error {
	result := s.db.Model(&models.Newsletter{}).Where("email = ?", email).Update("is_active", false)
	if result.Error != nil {
		return apierrors.HandleDatabaseError(result.Error, "abonnement")
	}
	if result.RowsAffected == 0 {
		return apierrors.NotFoundError("abonnement")
	}
	return nil
}
