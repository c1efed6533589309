package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-booking-api/internal/model"
	"github.com/iliyamo/cinema-booking-api/internal/utils"
)

func runJWT(t *testing.T, secret, authHeader string) (int, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := JWTAuth(secret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	return rec.Code, c
}

func TestJWTAuthAcceptsIssuedToken(t *testing.T) {
	tok, err := utils.NewAccessToken("secret", 9, model.RoleCustomer, 5)
	require.NoError(t, err)

	code, c := runJWT(t, "secret", "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 9, c.Get("user_id"))
	assert.Equal(t, model.RoleCustomer, c.Get("role"))
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	code, _ := runJWT(t, "secret", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other", 9, model.RoleCustomer, 5)
	require.NoError(t, err)

	code, _ := runJWT(t, "secret", "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	run := func(role any) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/admin/genres", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		err := RequireRole(model.RoleAdmin)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})(c)
		require.NoError(t, err)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, run(model.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, run(model.RoleCustomer))
	assert.Equal(t, http.StatusForbidden, run(nil))
	assert.Equal(t, http.StatusForbidden, run(42)) // wrong type, not a string
}
