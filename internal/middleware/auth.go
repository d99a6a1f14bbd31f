package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/synergysphere/synergyboard/internal/domain"
	"github.com/synergysphere/synergyboard/internal/store"
)

type contextKey string

const (
	// ContextKeyMember is the key for storing the acting member in the
	// request context.
	ContextKeyMember contextKey = "member"
)

// AuthMiddleware handles Bearer token authentication against the
// member roster.
type AuthMiddleware struct {
	store *store.Store
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(st *store.Store) *AuthMiddleware {
	return &AuthMiddleware{store: st}
}

// Authenticate validates the Bearer token and adds the member to the
// request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
			return
		}

		token := parts[1]
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		member, err := m.store.GetMemberByToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidToken) {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyMember, member)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetMemberFromContext retrieves the authenticated member from the
// request context.
func GetMemberFromContext(ctx context.Context) (*domain.Member, error) {
	member, ok := ctx.Value(ContextKeyMember).(*domain.Member)
	if !ok || member == nil {
		return nil, domain.ErrMemberNotFound
	}
	return member, nil
}
