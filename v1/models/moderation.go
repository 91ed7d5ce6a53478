package models

import "time"

// ModerationFields is the shared three-way moderation status: pending is the
// implicit state where both flags are false, and the two terminal states are
// mutually exclusive. Embedded by Member and Enfiler.
type ModerationFields struct {
	IsApproved      bool       `gorm:"column:is_approved;default:false" json:"isApproved"`
	IsRejected      bool       `gorm:"column:is_rejected;default:false" json:"isRejected"`
	ApprovedAt      *time.Time `gorm:"column:approved_at" json:"approvedAt"`
	RejectedAt      *time.Time `gorm:"column:rejected_at" json:"rejectedAt"`
	RejectionReason *string    `gorm:"column:rejection_reason" json:"rejectionReason"`
}

// IsPending reports whether the submission has not been processed yet
func (m *ModerationFields) IsPending() bool {
	return !m.IsApproved && !m.IsRejected
}
