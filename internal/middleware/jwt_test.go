package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-booking/internal/utils"
)

const secret = "mw-test-secret"

// newProtected wires the middleware in front of a handler that echoes the
// injected user id back to the test.
func newProtected(t *testing.T) (*echo.Echo, *uint64) {
	t.Helper()
	var seen uint64
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		uid, ok := c.Get("user_id").(uint64)
		require.True(t, ok, "user_id must be set as uint64")
		seen = uid
		return c.NoContent(http.StatusOK)
	}, JWTAuth(secret))
	return e, &seen
}

func TestJWTAuth_ValidToken(t *testing.T) {
	e, seen := newProtected(t)

	tok, err := utils.NewSessionToken(secret, 77, 60)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(77), *seen)
}

func TestJWTAuth_Rejections(t *testing.T) {
	e, _ := newProtected(t)

	expired, err := utils.NewSessionToken(secret, 77, -1)
	require.NoError(t, err)
	forged, err := utils.NewSessionToken("another-secret", 77, 60)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired.Token},
		{"wrong secret", "Bearer " + forged.Token},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "invalid token")
		})
	}
}
