package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoIdentity() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(Identity(r)))
	})
}

func signedToken(t *testing.T, secret []byte, method jwt.SigningMethod, subject string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func TestIdentityAuthenticatorDevMode(t *testing.T) {
	handler := NewIdentityAuthenticator(nil).Middleware(echoIdentity())

	t.Run("X-Identity header is the identity", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/requests", nil)
		req.Header.Set("X-Identity", "alice")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", rec.Body.String())
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/requests", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "X-Identity header missing", rec.Body.String())
	})
}

func TestIdentityAuthenticatorJWT(t *testing.T) {
	secret := []byte("governance-secret")
	handler := NewIdentityAuthenticator(secret).Middleware(echoIdentity())

	t.Run("valid token resolves to its subject", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/requests", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, secret, jwt.SigningMethodHS256, "alice"))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", rec.Body.String())
	})

	t.Run("missing authorization header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/requests", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Authorization missing", rec.Body.String())
	})

	t.Run("non bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/requests", nil)
		req.Header.Set("Authorization", "Basic YWxpY2U6cHc=")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Malformed authorization header", rec.Body.String())
	})

	t.Run("wrong signing key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/requests", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, []byte("other-secret"), jwt.SigningMethodHS256, "alice"))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid token", rec.Body.String())
	})

	t.Run("missing subject claim", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString(secret)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/requests", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Token subject missing", rec.Body.String())
	})
}

func TestIdentityWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest("GET", "/requests", nil)
	assert.Equal(t, "", Identity(req))
}
