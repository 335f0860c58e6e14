package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cricket-ticket-booking/internal/utils"
)

const testSecret = "unit-test-secret"

func runProtected(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(testSecret)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, h(c))
	return rec, c
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _ := runProtected(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMalformedToken(t *testing.T) {
	rec, _ := runProtected(t, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("other-secret", 7, "CUSTOMER", 5)
	require.NoError(t, err)
	rec, _ := runProtected(t, "Bearer "+at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidTokenInjectsClaims(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, "CUSTOMER", 5)
	require.NoError(t, err)

	rec, c := runProtected(t, "Bearer "+at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(7), c.Get("user_id"))
	assert.Equal(t, "CUSTOMER", c.Get("role"))
}
