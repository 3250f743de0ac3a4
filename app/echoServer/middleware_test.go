package echoServer

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/georgerossis/book-rental-system/app/echoServer/jwtx"
	"github.com/georgerossis/book-rental-system/model"
	jwtutil "github.com/georgerossis/book-rental-system/util/jwt"
)

const testSecret = "test-secret"

func newAuthContext(t *testing.T, header string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestJWTAuth_ExtractsIdentityFromBearerHeader(t *testing.T) {
	tok, err := jwtutil.Issue(testSecret, 7, "admin@example.com", "admin", 1)
	require.NoError(t, err)

	c, _ := newAuthContext(t, "Bearer "+tok)
	extract := JWTAuth(testSecret)[1]

	called := false
	h := extract(func(c echo.Context) error {
		called = true
		return nil
	})
	require.NoError(t, h(c))
	require.True(t, called)
	require.Equal(t, int64(7), jwtx.UserID(c))
	require.Equal(t, model.RoleAdmin, jwtx.Role(c))
}

func TestJWTAuth_RejectsBadToken(t *testing.T) {
	for _, header := range []string{"", "Bearer not-a-token"} {
		c, rec := newAuthContext(t, header)
		extract := JWTAuth(testSecret)[1]

		h := extract(func(c echo.Context) error {
			t.Fatal("handler must not run for an unverified caller")
			return nil
		})
		require.NoError(t, h(c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestJWTAuth_RejectsWrongSecret(t *testing.T) {
	tok, err := jwtutil.Issue("other-secret", 7, "a@b.com", "customer", 1)
	require.NoError(t, err)

	c, rec := newAuthContext(t, "Bearer "+tok)
	extract := JWTAuth(testSecret)[1]

	h := extract(func(c echo.Context) error { return nil })
	require.NoError(t, h(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	mw := RequireAdmin()

	c, rec := newAuthContext(t, "")
	c.Set(jwtx.KeyRole, model.RoleCustomer)
	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, h(c))
	require.Equal(t, http.StatusForbidden, rec.Code)

	c, rec = newAuthContext(t, "")
	c.Set(jwtx.KeyRole, model.RoleAdmin)
	require.NoError(t, h(c))
	require.Equal(t, http.StatusOK, rec.Code)
}
