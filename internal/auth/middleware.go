package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"Storefront/internal/store"
	"Storefront/pkg/kit"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	ID    int
	Email string
	Role  string
	Name  string
}

func (id Identity) IsAdmin() bool { return id.Role == store.RoleAdmin }

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// RequireAuth rejects requests without a valid bearer token. The four
// failure classes are reported distinctly: missing header, malformed
// header, expired token, and any other verification failure.
func RequireAuth(tm *TokenMaker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz == "" {
				kit.WriteError(w, r, http.StatusUnauthorized, "No token provided", "Please login to access this resource", nil)
				return
			}

			parts := strings.Split(authz, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				kit.WriteError(w, r, http.StatusUnauthorized, "Invalid token format", "Token should be: Bearer <token>", nil)
				return
			}

			claims, err := tm.Parse(parts[1])
			if err != nil {
				if errors.Is(err, ErrTokenExpired) {
					kit.WriteError(w, r, http.StatusUnauthorized, "Token expired", "Please login again", nil)
					return
				}
				kit.WriteError(w, r, http.StatusUnauthorized, "Invalid token", "Authentication failed", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims)))
		})
	}
}

// OptionalAuth attaches the identity when a valid token is present but
// never rejects; read endpoints use it.
func OptionalAuth(tm *TokenMaker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			parts := strings.Split(authz, " ")
			if authz == "" || len(parts) != 2 || parts[0] != "Bearer" {
				next.ServeHTTP(w, r)
				return
			}

			if claims, err := tm.Parse(parts[1]); err == nil {
				r = r.WithContext(withIdentity(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok || !id.IsAdmin() {
			kit.WriteError(w, r, http.StatusForbidden, "Access denied", "Admin privileges required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withIdentity(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, identityKey, Identity{
		ID:    c.UserID,
		Email: c.Email,
		Role:  c.Role,
		Name:  c.Name,
	})
}
