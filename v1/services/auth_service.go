package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apierrors "github.com/ong-espoir/api-server-go/pkg/errors"
	"github.com/ong-espoir/api-server-go/v1/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenLifetime = 24 * time.Hour

// AuthService issues and validates admin bearer tokens
type AuthService struct {
	db     *gorm.DB
	secret []byte
}

// NewAuthService creates a new auth service signing with the given secret
func NewAuthService(db *gorm.DB, secret string) *AuthService {
	return &AuthService{db: db, secret: []byte(secret)}
}

// Login verifies the credentials of an active user and issues an HS256 token
func (s *AuthService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, apierrors.ValidationError("MISSING_CREDENTIALS", "Email et mot de passe requis")
	}

	var user models.User
	err := s.db.Where("email = ? AND is_active = ?", email, true).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apierrors.UnauthorizedError("Identifiants invalides")
		}
		return nil, apierrors.HandleDatabaseError(err, "utilisateur")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apierrors.UnauthorizedError("Identifiants invalides")
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, apierrors.InternalErrorWithCause("failed to sign token", err)
	}

	return &models.LoginResponse{
		User:        &user,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(tokenLifetime.Seconds()),
	}, nil
}

// CurrentUser resolves the user behind a validated token subject
func (s *AuthService) CurrentUser(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).First(&user).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "utilisateur")
	}
	return &user, nil
}

// ValidateToken parses the signed token and returns its subject claims
func (s *AuthService) ValidateToken(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apierrors.UnauthorizedError("Token invalide ou expiré")
	}
	if !token.Valid {
		return nil, apierrors.UnauthorizedError("Token invalide ou expiré")
	}
	return claims, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.UserID,
		Issuer:    "ong-espoir-api",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
