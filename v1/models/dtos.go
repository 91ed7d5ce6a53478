package models

// Pagination describes the page window of a list response
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

// CollectionResponse wraps a paginated list
type CollectionResponse struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// GalleryImageView is the public shape of one gallery entry
type GalleryImageView struct {
	Slug    string  `json:"slug"`
	URL     string  `json:"url"`
	Caption *string `json:"caption"`
}

// ArticleView is an article flattened onto the requested locale
type ArticleView struct {
	ID          string             `json:"id"`
	Slug        string             `json:"slug"`
	CoverImage  *string            `json:"cover_image"`
	Title       string             `json:"title"`
	Content     string             `json:"content"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	IsActive    bool               `json:"is_active"`
	Gallery     []GalleryImageView `json:"gallery"`
	CreatedAt   string             `json:"created_at"`
	UpdatedAt   string             `json:"updated_at"`
}

// CreateMemberRequest is the public membership submission body
type CreateMemberRequest struct {
	Name           string  `json:"name"`
	BossName       *string `json:"boss_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Type           string  `json:"type"`
	Residence      *string `json:"residence"`
	Profession     *string `json:"profession"`
	IsVolunteer    bool    `json:"is_volunteer"`
	BenevoleTypeID *string `json:"benevole_type_id"`
}

// UpdateMemberRequest carries optional member mutations
type UpdateMemberRequest struct {
	Name           *string `json:"name"`
	BossName       *string `json:"boss_name"`
	Phone          *string `json:"phone"`
	Residence      *string `json:"residence"`
	Profession     *string `json:"profession"`
	BenevoleTypeID *string `json:"benevole_type_id"`
}

// CreateEnfilerRequest is the public donation submission body
type CreateEnfilerRequest struct {
	Name          string  `json:"name"`
	BossName      *string `json:"boss_name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Type          string  `json:"type"`
	Motivation    string  `json:"motivation"`
	EnfilerTypeID *string `json:"enfiler_type_id"`
}

// UpdateEnfilerRequest carries optional donation mutations
type UpdateEnfilerRequest struct {
	Name          *string `json:"name"`
	BossName      *string `json:"boss_name"`
	Phone         *string `json:"phone"`
	Motivation    *string `json:"motivation"`
	EnfilerTypeID *string `json:"enfiler_type_id"`
}

// ModerationRequest is the approve/reject body. RejectionReason is required
// on reject only; CustomMessage is forwarded to the notification on both.
type ModerationRequest struct {
	RejectionReason string `json:"rejection_reason"`
	CustomMessage   string `json:"custom_message"`
}

// CreateContactRequest is the public contact form body
type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubscribeRequest is the newsletter subscription body
type SubscribeRequest struct {
	Email string `json:"email"`
}

// CreateTypeRequest creates a lookup entry (enfiler or benevole type)
type CreateTypeRequest struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// UpdateTypeRequest carries optional lookup mutations
type UpdateTypeRequest struct {
	Label       *string `json:"label"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// LoginRequest is the admin credential body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the token payload returned on successful login
type LoginResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// CreateUserRequest creates an administrative account
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest carries optional account mutations
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}
