package models

// Contact is an inbound message from the public contact form
type Contact struct {
	ContactID string `gorm:"primarykey;column:contact_id" json:"contactId"`
	Slug      string `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Name      string `gorm:"column:name;not null" json:"name"`
	Email     string `gorm:"column:email;not null" json:"email"`
	Subject   string `gorm:"column:subject" json:"subject"`
	Message   string `gorm:"column:message;type:text;not null" json:"message"`
	IsActive  bool   `gorm:"column:is_active;default:true" json:"isActive"`
	BaseModel
}

// TableName sets the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// Newsletter is a newsletter subscription; email is unique per subscriber
type Newsletter struct {
	NewsletterID string `gorm:"primarykey;column:newsletter_id" json:"newsletterId"`
	Slug         string `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Email        string `gorm:"column:email;uniqueIndex;not null" json:"email"`
	IsActive     bool   `gorm:"column:is_active;default:true" json:"isActive"`
	BaseModel
}

// TableName sets the table name for GORM
func (Newsletter) TableName() string {
	return "newsletters"
}
