package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ong-espoir/api-server-go/notify"
	apierrors "github.com/ong-espoir/api-server-go/pkg/errors"
	"github.com/ong-espoir/api-server-go/v1/models"
	"gorm.io/gorm"
)

// Moderatable is a pending submission the policy can transition. Member and
// Enfiler satisfy it through their embedded ModerationFields.
type Moderatable interface {
	ModerationState() *models.ModerationFields
	ContactEmail() string
	DisplayName() string
	EntityID() string
	SetActive(active bool)
	TableName() string
}

// ModerationTemplates names the notification templates fired per transition
type ModerationTemplates struct {
	Approved string
	Rejected string
}

// ModerationPolicy implements the shared pending -> approved|rejected state
// machine. The pending-only precondition is enforced with a conditional
// UPDATE so two concurrent transitions cannot both pass the guard; zero rows
// affected surfaces as the Conflict error.
type ModerationPolicy struct {
	db                 *gorm.DB
	notifier           notify.Notifier
	adminEmail         string
	entityLabel        string
	primaryKey         string
	deactivateOnReject bool
	templates          ModerationTemplates
}

// ModerationPolicyConfig parameterizes the policy per entity family
type ModerationPolicyConfig struct {
	EntityLabel        string
	PrimaryKey         string
	DeactivateOnReject bool
	AdminEmail         string
	Templates          ModerationTemplates
}

// NewModerationPolicy creates a moderation policy for one entity family
func NewModerationPolicy(db *gorm.DB, notifier notify.Notifier, config ModerationPolicyConfig) *ModerationPolicy {
	return &ModerationPolicy{
		db:                 db,
		notifier:           notifier,
		adminEmail:         config.AdminEmail,
		entityLabel:        config.EntityLabel,
		primaryKey:         config.PrimaryKey,
		deactivateOnReject: config.DeactivateOnReject,
		templates:          config.Templates,
	}
}

// Approve transitions a pending entity to approved, activates it, and fires
// the approval notifications. Already-processed entities fail with Conflict
// and no field is mutated.
func (p *ModerationPolicy) Approve(ctx context.Context, entity Moderatable, customMessage string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"is_approved":      true,
		"is_rejected":      false,
		"is_active":        true,
		"approved_at":      now,
		"rejected_at":      nil,
		"rejection_reason": nil,
		"updated_at":       now,
	}

	if err := p.transition(entity, updates); err != nil {
		return err
	}

	state := entity.ModerationState()
	state.IsApproved = true
	state.IsRejected = false
	state.ApprovedAt = &now
	state.RejectedAt = nil
	state.RejectionReason = nil
	entity.SetActive(true)

	p.notifyBoth(ctx, entity, p.templates.Approved, customMessage, "")
	return nil
}

// Reject transitions a pending entity to rejected with a mandatory reason.
// Validation happens before any mutation. Whether rejection also deactivates
// the entity is a per-family policy choice.
func (p *ModerationPolicy) Reject(ctx context.Context, entity Moderatable, reason, customMessage string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return apierrors.ValidationError("REJECTION_REASON_REQUIRED", "La raison du rejet est requise")
	}
	if len(reason) > models.MaxRejectionReasonLength {
		return apierrors.ValidationError("REJECTION_REASON_TOO_LONG",
			fmt.Sprintf("La raison du rejet ne peut pas dépasser %d caractères", models.MaxRejectionReasonLength))
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_approved":      false,
		"is_rejected":      true,
		"approved_at":      nil,
		"rejected_at":      now,
		"rejection_reason": reason,
		"updated_at":       now,
	}
	if p.deactivateOnReject {
		updates["is_active"] = false
	}

	if err := p.transition(entity, updates); err != nil {
		return err
	}

	state := entity.ModerationState()
	state.IsApproved = false
	state.IsRejected = true
	state.ApprovedAt = nil
	state.RejectedAt = &now
	state.RejectionReason = &reason
	if p.deactivateOnReject {
		entity.SetActive(false)
	}

	p.notifyBoth(ctx, entity, p.templates.Rejected, customMessage, reason)
	return nil
}

// transition runs the conditional update that enforces the pending-only
// precondition atomically
func (p *ModerationPolicy) transition(entity Moderatable, updates map[string]interface{}) error {
	result := p.db.Table(entity.TableName()).
		Where(p.primaryKey+" = ? AND is_approved = ? AND is_rejected = ?", entity.EntityID(), false, false).
		Updates(updates)
	if result.Error != nil {
		return apierrors.InternalErrorWithCause(
			fmt.Sprintf("failed to transition %s %s", p.entityLabel, entity.EntityID()), result.Error)
	}
	if result.RowsAffected == 0 {
		return apierrors.ConflictError(
			fmt.Sprintf("Ce %s a déjà été traité (approuvé ou rejeté)", p.entityLabel))
	}
	return nil
}

// notifyBoth fires the submitter and admin notifications. Failures are
// logged individually and never roll back the transition.
func (p *ModerationPolicy) notifyBoth(ctx context.Context, entity Moderatable, template, customMessage, reason string) {
	msgContext := map[string]string{
		"name": entity.DisplayName(),
	}
	if customMessage != "" {
		msgContext["custom_message"] = customMessage
	}
	if reason != "" {
		msgContext["reason"] = reason
	}

	recipients := []string{entity.ContactEmail(), p.adminEmail}
	for _, recipient := range recipients {
		if recipient == "" {
			continue
		}
		msg := notify.Message{
			Template:  template,
			Recipient: recipient,
			Subject:   fmt.Sprintf("%s: %s", template, entity.DisplayName()),
			Context:   msgContext,
		}
		if err := p.notifier.Send(ctx, msg); err != nil {
			slog.Warn("Moderation notification failed",
				"template", template, "recipient", recipient, "error", err)
		}
	}
}
