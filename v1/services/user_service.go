package services

import (
	"strings"

	"github.com/google/uuid"
	apierrors "github.com/ong-espoir/api-server-go/pkg/errors"
	"github.com/ong-espoir/api-server-go/v1/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService manages administrative accounts
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser creates an account with a bcrypt-hashed password. Reusing an
// email is a conflict.
func (s *UserService) CreateUser(req *models.CreateUserRequest) (*models.User, error) {
	var missing []string
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, apierrors.ValidationErrorWithDetails("MISSING_FIELDS",
			"Champs obligatoires manquants", strings.Join(missing, ", "))
	}
	if len(req.Password) < 8 {
		return nil, apierrors.ValidationError("PASSWORD_TOO_SHORT", "Le mot de passe doit contenir au moins 8 caractères")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "utilisateur")
	}
	if count > 0 {
		return nil, apierrors.ConflictError("Un utilisateur avec cet email existe déjà")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierrors.InternalErrorWithCause("failed to hash password", err)
	}

	user := models.User{
		UserID:       "usr_" + uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "utilisateur")
	}
	return &user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "utilisateur")
	}
	return &user, nil
}

// ListUsers returns all active accounts
func (s *UserService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Where("is_active = ?", true).Order("created_at").Find(&users).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "utilisateurs")
	}
	return users, nil
}

// UpdateUser mutates only the supplied fields. A new password is re-hashed.
func (s *UserService) UpdateUser(userID string, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, apierrors.ValidationError("PASSWORD_TOO_SHORT", "Le mot de passe doit contenir au moins 8 caractères")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apierrors.InternalErrorWithCause("failed to hash password", err)
		}
		user.PasswordHash = string(hash)
	}
	if err := s.db.Save(user).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "utilisateur")
	}
	return user, nil
}

// DeactivateUser disables an account without deleting it
func (s *UserService) DeactivateUser(userID string) error {
	result := s.db.Model(&models.User{}).Where("user_id = ?", userID).Update("is_active", false)
	if result.Error != nil {
		return apierrors.HandleDatabaseError(result.Error, "utilisateur")
	}
	if result.RowsAffected == 0 {
		return apierrors.NotFoundError("utilisateur")
	}
	return nil
}
