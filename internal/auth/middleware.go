package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"contactbook/infrastructure"
	"contactbook/internal/token"
	"contactbook/internal/user"
)

type contextKey struct{}

// UserFrom returns the authenticated user stored by the middleware.
func UserFrom(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(contextKey{}).(*user.User)
	return u, ok
}

// Middleware authenticates protected routes from the Authorization header.
// Every failure branch produces the same 401 so callers cannot tell which
// check rejected them.
type Middleware struct {
	codec *token.Codec
	users user.Repository
}

func NewMiddleware(codec *token.Codec, users user.Repository) *Middleware {
	return &Middleware{codec: codec, users: users}
}

func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := m.resolveUser(r)
		if !ok {
			unauthorized(w)
			return
		}
		ctx := context.WithValue(r.Context(), contextKey{}, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) resolveUser(r *http.Request) (*user.User, bool) {
	scheme, raw, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || scheme != "Bearer" || raw == "" {
		return nil, false
	}

	claims, err := m.codec.Decode(raw)
	if err != nil {
		return nil, false
	}
	if claims.Purpose != token.PurposeAccess {
		return nil, false
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, false
	}

	u, err := m.users.GetByID(r.Context(), id)
	if err != nil {
		return nil, false
	}
	return u, true
}

func unauthorized(w http.ResponseWriter) {
	infrastructure.WriteUnauthorized(w)
}
