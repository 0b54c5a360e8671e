package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, method jwt.SigningMethod) string {
	t.Helper()

	token := jwt.NewWithClaims(method, jwt.MapClaims{
		"sub": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runAuth(t *testing.T, secret, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := AdminAuth(secret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c
}

func TestAdminAuth_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.SigningMethodHS256)

	rec, c := runAuth(t, testSecret, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", c.Get("admin_user"))
}

func TestAdminAuth_MissingOrMalformedHeader(t *testing.T) {
	rec, _ := runAuth(t, testSecret, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = runAuth(t, testSecret, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuth_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", jwt.SigningMethodHS256)

	rec, _ := runAuth(t, testSecret, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuth_NoSecretConfiguredFailsClosed(t *testing.T) {
	token := signToken(t, testSecret, jwt.SigningMethodHS256)

	rec, _ := runAuth(t, "", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
