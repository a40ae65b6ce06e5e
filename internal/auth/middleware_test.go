package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/user-api/internal/httputil"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()

	access, err := NewPasetoCodec(testSecret, time.Minute)
	require.NoError(t, err)
	refresh, err := NewPasetoCodec(testSecret, 0)
	require.NoError(t, err)

	return NewTokenService(access, refresh, newMemoryTokenStore())
}

func decodeErrorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Message
}

func TestRequireAuth(t *testing.T) {
	tokens := newTestTokenService(t)
	mw := NewMiddleware(tokens)

	identity := testIdentity()
	accessToken, err := tokens.IssueAccessToken(identity)
	require.NoError(t, err)

	var seen *Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetIdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token passes identity through", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		rec := httptest.NewRecorder()

		mw.RequireAuth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, identity.ID, seen.ID)
		assert.Equal(t, identity.Role, seen.Role)
	})

	t.Run("missing header is a client error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		rec := httptest.NewRecorder()

		mw.RequireAuth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Access token required", decodeErrorMessage(t, rec))
	})

	t.Run("malformed header is a client error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", accessToken) // no Bearer scheme
		rec := httptest.NewRecorder()

		mw.RequireAuth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer v4.local.bogus")
		rec := httptest.NewRecorder()

		mw.RequireAuth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid access token", decodeErrorMessage(t, rec))
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		shortLived, err := NewPasetoCodec(testSecret, time.Nanosecond)
		require.NoError(t, err)
		expired, err := shortLived.Encode(identity)
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)

		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer "+expired)
		rec := httptest.NewRecorder()

		mw.RequireAuth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", ""},
		{"bare token", "abc123", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"bearer", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, extractBearerToken(req))
		})
	}
}
