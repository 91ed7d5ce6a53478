package handlers

import (
	"net/http"

	"github.com/ong-espoir/api-server-go/notify"
	"github.com/ong-espoir/api-server-go/shared/utils"
	"github.com/ong-espoir/api-server-go/storage"
	"github.com/ong-espoir/api-server-go/translate"
	"github.com/ong-espoir/api-server-go/v1/services"
	"gorm.io/gorm"
)

// V1Handler handles all V1 API routes
type V1Handler struct {
	articleService *services.ArticleService
	galleryService *services.GalleryService
	memberService  *services.MemberService
	enfilerService *services.EnfilerService
	lookupService  *services.LookupService
	contactService *services.ContactService
	authService    *services.AuthService
	userService    *services.UserService
}

// V1HandlerConfig wires the external collaborators into the handler
type V1HandlerConfig struct {
	Translator   translate.Translator
	Store        storage.BlobStore
	Notifier     notify.Notifier
	AdminEmail   string
	AssetBaseURL string
	JWTSecret    string
}

// NewV1Handler creates a new V1 handler with all domain services
func NewV1Handler(db *gorm.DB, config V1HandlerConfig) *V1Handler {
	engine := services.NewTranslationEngine(config.Translator)
	gallery := services.NewGalleryService(db, config.Store)
	return &V1Handler{
		articleService: services.NewArticleService(db, engine, gallery, config.Store, config.AssetBaseURL),
		galleryService: gallery,
		memberService:  services.NewMemberService(db, config.Notifier, config.AdminEmail),
		enfilerService: services.NewEnfilerService(db, config.Notifier, config.AdminEmail),
		lookupService:  services.NewLookupService(db),
		contactService: services.NewContactService(db, config.Notifier, config.AdminEmail),
		authService:    services.NewAuthService(db, config.JWTSecret),
		userService:    services.NewUserService(db),
	}
}

// AuthService exposes the auth service for the JWT middleware
func (h *V1Handler) AuthService() *services.AuthService {
	return h.authService
}

// SetupV1Routes configures all V1 API routes
func (h *V1Handler) SetupV1Routes(mux *http.ServeMux) {
	mux.Handle("/api/v1/articles", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleArticles)))
	mux.Handle("/api/v1/articles/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleArticles)))

	mux.Handle("/api/v1/membres", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleMembers)))
	mux.Handle("/api/v1/membres/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleMembers)))

	mux.Handle("/api/v1/dons", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleEnfilers)))
	mux.Handle("/api/v1/dons/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleEnfilers)))

	mux.Handle("/api/v1/type-benevoles", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleBenevoleTypes)))
	mux.Handle("/api/v1/type-benevoles/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleBenevoleTypes)))

	mux.Handle("/api/v1/enfiler-types", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleEnfilerTypes)))
	mux.Handle("/api/v1/enfiler-types/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleEnfilerTypes)))

	mux.Handle("/api/v1/contacts", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleContacts)))
	mux.Handle("/api/v1/contacts/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleContacts)))

	mux.Handle("/api/v1/new-letters", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleNewsletters)))
	mux.Handle("/api/v1/new-letters/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleNewsletters)))

	mux.Handle("/api/v1/auth/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleAuth)))

	mux.Handle("/api/v1/users", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleUsers)))
	mux.Handle("/api/v1/users/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleUsers)))
}
