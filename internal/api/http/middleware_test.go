package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"libris-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	tm := security.NewTokenManager("0123456789abcdef0123456789abcdef", 60)
	mw := NewAuthMiddleware(tm)

	var seen *security.UserClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, err := tm.GenerateAccessToken(7, "jane@example.com", "member", true)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/loans/my", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.Authenticate(next).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, int32(7), seen.UserID)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mw.Authenticate(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/loans/my", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/loans/my", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		mw.Authenticate(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("DeactivatedAccount", func(t *testing.T) {
		token, err := tm.GenerateAccessToken(7, "jane@example.com", "member", false)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/loans/my", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		mw.Authenticate(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("AdminPasses", func(t *testing.T) {
		req := withClaims(httptest.NewRequest(http.MethodGet, "/api/stats/dashboard", nil),
			&security.UserClaims{UserID: 1, Role: "admin", IsActive: true})
		rec := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("MemberBlocked", func(t *testing.T) {
		req := withClaims(httptest.NewRequest(http.MethodGet, "/api/stats/dashboard", nil), memberClaims(7))
		rec := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("NoClaims", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats/dashboard", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequestID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	t.Run("Generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequestID(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("Preserved", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		rec := httptest.NewRecorder()
		RequestID(next).ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
	})
}
