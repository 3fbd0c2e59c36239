package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactbook/internal/token"
	"contactbook/internal/user"
)

func newProtectedServer(t *testing.T, repo *memoryUserRepo) http.Handler {
	t.Helper()
	mw := NewMiddleware(token.NewCodec([]byte("test-secret")), repo)
	return mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFrom(r.Context())
		require.True(t, ok)
		_ = json.NewEncoder(w).Encode(map[string]string{"email": u.Email})
	}))
}

func seedUser(t *testing.T, repo *memoryUserRepo, verified bool) *user.User {
	t.Helper()
	u := &user.User{Email: "a@x.com", PasswordHash: "irrelevant", Verified: verified}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestMiddleware_AllowsValidAccessToken(t *testing.T) {
	t.Parallel()

	repo := newMemoryUserRepo()
	u := seedUser(t, repo, true)
	handler := newProtectedServer(t, repo)

	raw, err := token.NewCodec([]byte("test-secret")).Encode(u.ID, token.PurposeAccess, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@x.com")
}

func TestMiddleware_AllFailuresLookIdentical(t *testing.T) {
	t.Parallel()

	repo := newMemoryUserRepo()
	u := seedUser(t, repo, true)
	handler := newProtectedServer(t, repo)
	codec := token.NewCodec([]byte("test-secret"))

	expired, err := codec.Encode(u.ID, token.PurposeAccess, -time.Minute)
	require.NoError(t, err)
	refresh, err := codec.Encode(u.ID, token.PurposeRefresh, time.Hour)
	require.NoError(t, err)
	verification, err := codec.Encode(u.ID, token.PurposeVerification, time.Hour)
	require.NoError(t, err)
	foreign, err := token.NewCodec([]byte("other-secret")).Encode(u.ID, token.PurposeAccess, time.Hour)
	require.NoError(t, err)
	deleted, err := codec.Encode(uuid.New(), token.PurposeAccess, time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc123"},
		{"lowercase scheme", "bearer " + expired},
		{"empty token", "Bearer "},
		{"malformed token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
		{"wrong signature", "Bearer " + foreign},
		{"refresh token", "Bearer " + refresh},
		{"verification token", "Bearer " + verification},
		{"unknown user", "Bearer " + deleted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			assert.JSONEq(t, `{"detail":"Could not validate credentials"}`, rec.Body.String())
		})
	}
}
