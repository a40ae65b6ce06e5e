package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/redmonkez12/user-api/internal/httputil"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const (
	// IdentityContextKey holds the decoded *Identity in the request context
	IdentityContextKey ContextKey = "identity"
)

// Middleware is the authorization gate for protected routes
type Middleware struct {
	tokens *TokenService
}

func NewMiddleware(tokens *TokenService) *Middleware {
	return &Middleware{tokens: tokens}
}

// RequireAuth validates the bearer access token and attaches the decoded
// identity to the request context. A missing token is a client error (400),
// distinct from an invalid or expired one (401).
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			httputil.RespondError(w, "Access token required", http.StatusBadRequest)
			return
		}

		identity, err := m.tokens.ValidateAccessToken(token)
		if err != nil {
			// Expired and invalid both map to 401 here
			if !errors.Is(err, ErrTokenInvalid) && !errors.Is(err, ErrTokenExpired) {
				httputil.RespondInternalError(w)
				return
			}
			httputil.RespondError(w, "Invalid access token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), IdentityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractBearerToken reads a bearer-scheme token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// GetIdentityFromContext extracts the authenticated identity from the
// request context
func GetIdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(*Identity)
	return identity, ok
}
