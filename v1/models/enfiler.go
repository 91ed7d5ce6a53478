package models

// Enfiler is a donation submission ("don"). It shares the Member moderation
// lifecycle but keeps its visibility flag untouched on rejection.
type Enfiler struct {
	EnfilerID     string  `gorm:"primarykey;column:enfiler_id" json:"enfilerId"`
	Slug          string  `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Name          string  `gorm:"column:name;not null" json:"name"`
	BossName      *string `gorm:"column:boss_name" json:"bossName"`
	Email         string  `gorm:"column:email;not null" json:"email"`
	Phone         string  `gorm:"column:phone" json:"phone"`
	Type          string  `gorm:"column:type;not null;default:individual" json:"type"`
	Motivation    string  `gorm:"column:motivation;type:text" json:"motivation"`
	EnfilerTypeID *string `gorm:"column:enfiler_type_id" json:"enfilerTypeId"`
	IsActive      bool    `gorm:"column:is_active;default:true" json:"isActive"`
	ModerationFields
	BaseModel
}

// TableName sets the table name for GORM
func (Enfiler) TableName() string {
	return "enfilers"
}

// ModerationState exposes the embedded moderation flags
func (e *Enfiler) ModerationState() *ModerationFields {
	return &e.ModerationFields
}

// ContactEmail is the notification recipient for moderation transitions
func (e *Enfiler) ContactEmail() string { return e.Email }

// DisplayName is used in notification subjects and logs
func (e *Enfiler) DisplayName() string { return e.Name }

// EntityID returns the primary key value
func (e *Enfiler) EntityID() string { return e.EnfilerID }

// SetActive sets the visibility flag
func (e *Enfiler) SetActive(active bool) { e.IsActive = active }

// EnfilerType is a donation-category lookup entry
type EnfilerType struct {
	TypeID      string `gorm:"primarykey;column:type_id" json:"typeId"`
	Slug        string `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Label       string `gorm:"column:label;not null" json:"label"`
	Description string `gorm:"column:description" json:"description"`
	IsActive    bool   `gorm:"column:is_active;default:true" json:"isActive"`
	BaseModel
}

// TableName sets the table name for GORM
func (EnfilerType) TableName() string {
	return "enfiler_types"
}
