package models

// Member is a membership submission awaiting moderation. Type discriminates
// individual signups from company ones; BossName is only set for companies.
// IsActive is a visibility flag toggled independently of moderation, except
// that approval always activates and rejection deactivates a member.
type Member struct {
	MemberID       string  `gorm:"primarykey;column:member_id" json:"memberId"`
	Slug           string  `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Name           string  `gorm:"column:name;not null" json:"name"`
	BossName       *string `gorm:"column:boss_name" json:"bossName"`
	Email          string  `gorm:"column:email;not null" json:"email"`
	Phone          string  `gorm:"column:phone" json:"phone"`
	Type           string  `gorm:"column:type;not null;default:individual" json:"type"`
	Residence      *string `gorm:"column:residence" json:"residence"`
	Profession     *string `gorm:"column:profession" json:"profession"`
	IsVolunteer    bool    `gorm:"column:is_volunteer;default:false" json:"isVolunteer"`
	BenevoleTypeID *string `gorm:"column:benevole_type_id" json:"benevoleTypeId"`
	IsActive       bool    `gorm:"column:is_active;default:false" json:"isActive"`
	ModerationFields
	BaseModel
}

// TableName sets the table name for GORM
func (Member) TableName() string {
	return "members"
}

// ModerationState exposes the embedded moderation flags
func (m *Member) ModerationState() *ModerationFields {
	return &m.ModerationFields
}

// ContactEmail is the notification recipient for moderation transitions
func (m *Member) ContactEmail() string { return m.Email }

// DisplayName is used in notification subjects and logs
func (m *Member) DisplayName() string { return m.Name }

// EntityID returns the primary key value
func (m *Member) EntityID() string { return m.MemberID }

// SetActive sets the visibility flag
func (m *Member) SetActive(active bool) { m.IsActive = active }

// BenevoleType is a volunteer-category lookup entry
type BenevoleType struct {
	TypeID      string `gorm:"primarykey;column:type_id" json:"typeId"`
	Slug        string `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Label       string `gorm:"column:label;not null" json:"label"`
	Description string `gorm:"column:description" json:"description"`
	IsActive    bool   `gorm:"column:is_active;default:true" json:"isActive"`
	BaseModel
}

// TableName sets the table name for GORM
func (BenevoleType) TableName() string {
	return "benevole_types"
}
