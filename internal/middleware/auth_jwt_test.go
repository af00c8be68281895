package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims(role string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":   "1",
		"email": "admin@example.com",
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(15 * time.Minute).Unix(),
	}
}

func runGuarded(t *testing.T, authz string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	cfg := config.Config{JWTSecret: testSecret}

	handler := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"email": c.Get(middleware.CtxUserEmailKey),
		})
	}
	wrapped := middleware.AuthJWT(cfg)(middleware.AdminRoleGuard()(handler))

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, wrapped(c))
	return rec
}

func TestAuthJWT_ValidAdminToken(t *testing.T) {
	token := signToken(t, testSecret, validClaims("ADMIN"))
	rec := runGuarded(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin@example.com")
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec := runGuarded(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token := signToken(t, "other_secret", validClaims("ADMIN"))
	rec := runGuarded(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	claims := validClaims("ADMIN")
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	token := signToken(t, testSecret, claims)
	rec := runGuarded(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MalformedHeader(t *testing.T) {
	rec := runGuarded(t, "Token abcdef")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoleGuard_NonAdminRole(t *testing.T) {
	token := signToken(t, testSecret, validClaims("VIEWER"))
	rec := runGuarded(t, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
