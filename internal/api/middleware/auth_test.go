package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, string(pemKey)
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestAuthenticate(t *testing.T) {
	key, publicPEM := generateKeyPair(t)
	otherKey, _ := generateKeyPair(t)

	auth, err := NewAuthenticator(AuthConfig{JWTPublicKey: publicPEM, APIKeys: []string{"key-1", ""}})
	require.NoError(t, err)

	valid := signToken(t, key, jwt.RegisteredClaims{
		Subject:   "ACC1001",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	expired := signToken(t, key, jwt.RegisteredClaims{
		Subject:   "ACC1001",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	notYet := signToken(t, key, jwt.RegisteredClaims{
		NotBefore: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	foreign := signToken(t, otherKey, jwt.RegisteredClaims{Subject: "ACC1001"})
	hmac, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name        string
		header      string
		expectError bool
		authType    string
		subject     string
	}{
		{name: "valid jwt", header: "Bearer " + valid, authType: AUTH_TYPE_JWT, subject: "ACC1001"},
		{name: "lowercase scheme", header: "bearer " + valid, authType: AUTH_TYPE_JWT, subject: "ACC1001"},
		{name: "valid api key", header: "ApiKey key-1", authType: AUTH_TYPE_APIKEY},
		{name: "missing header", header: "", expectError: true},
		{name: "no credentials", header: "Bearer", expectError: true},
		{name: "unknown scheme", header: "Basic dXNlcjpwYXNz", expectError: true},
		{name: "wrong api key", header: "ApiKey key-2", expectError: true},
		{name: "empty api key is not accepted", header: "ApiKey ", expectError: true},
		{name: "expired jwt", header: "Bearer " + expired, expectError: true},
		{name: "jwt not yet valid", header: "Bearer " + notYet, expectError: true},
		{name: "jwt signed by another key", header: "Bearer " + foreign, expectError: true},
		{name: "hmac jwt rejected", header: "Bearer " + hmac, expectError: true},
		{name: "garbage jwt", header: "Bearer not.a.jwt", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := auth.Authenticate(tt.header)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.authType, result.AuthType)
			assert.Equal(t, tt.subject, result.AuthSubject)
		})
	}
}

func TestNewAuthenticator(t *testing.T) {
	_, err := NewAuthenticator(AuthConfig{JWTPublicKey: "not a pem"})
	assert.Error(t, err)

	auth, err := NewAuthenticator(AuthConfig{})
	require.NoError(t, err)

	_, err = auth.Authenticate("ApiKey anything")
	assert.ErrorContains(t, err, "no API keys configured")
	_, err = auth.Authenticate("Bearer abc")
	assert.ErrorContains(t, err, "JWT public key not configured")
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	auth, err := NewAuthenticator(AuthConfig{APIKeys: []string{"key-1"}})
	require.NoError(t, err)

	router := gin.New()
	router.GET("/protected", Auth(auth), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(AUTH_TYPE_KEY))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "ApiKey key-1")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, AUTH_TYPE_APIKEY, w.Body.String())
}

func TestAuthMiddleware_AccountScope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	key, publicPEM := generateKeyPair(t)
	auth, err := NewAuthenticator(AuthConfig{JWTPublicKey: publicPEM, APIKeys: []string{"key-1"}})
	require.NoError(t, err)

	router := gin.New()
	router.GET("/accounts/:account_number/user", Auth(auth), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(AUTH_SUBJECT_KEY))
	})

	own := signToken(t, key, jwt.RegisteredClaims{
		Subject:   "ACC1001",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	noSubject := signToken(t, key, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	tests := []struct {
		name       string
		path       string
		header     string
		expectCode int
	}{
		{name: "jwt own account", path: "/accounts/ACC1001/user", header: "Bearer " + own, expectCode: http.StatusOK},
		{name: "jwt other account", path: "/accounts/ACC2002/user", header: "Bearer " + own, expectCode: http.StatusForbidden},
		{name: "jwt without subject", path: "/accounts/ACC1001/user", header: "Bearer " + noSubject, expectCode: http.StatusForbidden},
		{name: "api key any account", path: "/accounts/ACC2002/user", header: "ApiKey key-1", expectCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Authorization", tt.header)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectCode, w.Code)
			if tt.expectCode == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), `"code":"forbidden"`)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Recovery(), Logger())
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":{"code":"internal_error","message":"Internal server error"}}`, w.Body.String())
}
