package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	sharedutils "github.com/ong-espoir/api-server-go/shared/utils"
	"github.com/ong-espoir/api-server-go/v1/services"
	authutils "github.com/ong-espoir/api-server-go/v1/utils"
)

// publicRoute is one unauthenticated method+path-prefix pair
type publicRoute struct {
	method string
	prefix string
}

// publicRoutes lists the endpoints that stay open: public reads (including
// the blobs the article views link to), the public submission forms, and
// login. Everything else requires a bearer token.
var publicRoutes = []publicRoute{
	{http.MethodGet, "/health"},
	{http.MethodGet, "/api/v1/articles"},
	{http.MethodGet, "/storage/"},
	{http.MethodPost, "/api/v1/membres"},
	{http.MethodPost, "/api/v1/dons"},
	{http.MethodPost, "/api/v1/contacts"},
	{http.MethodPost, "/api/v1/new-letters"},
	{http.MethodPost, "/api/v1/auth/login"},
}

// JWTAuthMiddleware validates HS256 bearer tokens issued by the auth service
type JWTAuthMiddleware struct {
	authService *services.AuthService
}

// NewJWTAuthMiddleware creates a new JWT authentication middleware
func NewJWTAuthMiddleware(authService *services.AuthService) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{authService: authService}
}

// AuthenticateJWT returns a middleware function that validates bearer tokens
// and resolves the admin user into the request context
func (j *JWTAuthMiddleware) AuthenticateJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shouldSkipAuth(r.Method, r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, err := authutils.ExtractBearerToken(r)
		if err != nil {
			slog.Warn("Failed to extract bearer token", "error", err, "path", r.URL.Path, "method", r.Method)
			sharedutils.RespondWithError(w, http.StatusUnauthorized, "Authentification requise")
			return
		}

		claims, err := j.authService.ValidateToken(tokenString)
		if err != nil {
			slog.Warn("Token validation failed", "path", r.URL.Path, "method", r.Method)
			sharedutils.RespondWithError(w, http.StatusUnauthorized, "Token invalide ou expiré")
			return
		}

		user, err := j.authService.CurrentUser(claims.Subject)
		if err != nil {
			slog.Warn("Token subject not resolvable", "subject", claims.Subject)
			sharedutils.RespondWithError(w, http.StatusUnauthorized, "Token invalide ou expiré")
			return
		}

		ctx := authutils.SetAuthenticatedUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// shouldSkipAuth determines if authentication should be skipped for this
// method and path. OPTIONS always passes so CORS preflights work.
func shouldSkipAuth(method, path string) bool {
	if method == http.MethodOptions {
		return true
	}
	for _, route := range publicRoutes {
		if method == route.method && strings.HasPrefix(path, route.prefix) {
			return true
		}
	}
	return false
}
