package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMeRouter(current CurrentUser) *mux.Router {
	r := mux.NewRouter()
	SetupRoutes(r.PathPrefix("/api").Subrouter(), NewJSONHandler(current))
	return r
}

func TestMe_ReturnsUserWithoutPasswordHash(t *testing.T) {
	t.Parallel()

	u := &User{
		ID:           uuid.New(),
		Email:        "a@x.com",
		PasswordHash: "$2a$12$secret-bcrypt-material",
		Verified:     true,
		CreatedAt:    time.Now(),
	}
	r := newMeRouter(func(context.Context) (*User, bool) { return u, true })

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"email":"a@x.com"`)
	assert.Contains(t, body, u.ID.String())
	assert.NotContains(t, body, "secret-bcrypt-material")
	assert.NotContains(t, body, "password")
}

func TestMe_NoUserInContextIsUniform401(t *testing.T) {
	t.Parallel()

	r := newMeRouter(func(context.Context) (*User, bool) { return nil, false })

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	assert.JSONEq(t, `{"detail":"Could not validate credentials"}`, rec.Body.String())
}
