package models

// User is an administrative account. Only the bcrypt hash is stored and it
// never serializes into responses.
type User struct {
	UserID       string `gorm:"primarykey;column:user_id" json:"userId"`
	Name         string `gorm:"column:name;not null" json:"name"`
	Email        string `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	IsActive     bool   `gorm:"column:is_active;default:true" json:"isActive"`
	BaseModel
}

// TableName sets the table name for GORM
func (User) TableName() string {
	return "users"
}
