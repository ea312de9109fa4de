package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/moviemetrics/movie-metrics/internal/utils"
)

const testSecret = "test-secret"

func protectedEcho(t *testing.T, authority string) *echo.Echo {
	t.Helper()
	e := echo.New()
	mws := []echo.MiddlewareFunc{JWTAuth(testSecret)}
	if authority != "" {
		mws = append(mws, RequireAuthority(authority))
	}
	e.GET("/api/ping", func(c echo.Context) error {
		id, ok := CallerIdentity(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, echo.Map{"email": id.Email})
	}, mws...)
	return e
}

func bearerFor(t *testing.T, userID uint64, email string, authorities []string) string {
	t.Helper()
	token, err := utils.NewAccessToken(testSecret, userID, email, authorities, 1)
	require.NoError(t, err)
	return "Bearer " + token.Token
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	e := protectedEcho(t, "")
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"missing bearer token"}`, rec.Body.String())
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	e := protectedEcho(t, "")
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"invalid token"}`, rec.Body.String())
}

func TestJWTAuthInjectsIdentity(t *testing.T) {
	e := protectedEcho(t, "")
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", bearerFor(t, 7, "dana@example.com", nil))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"email":"dana@example.com"}`, rec.Body.String())
}

func TestRequireAuthorityRejectsMissingPermission(t *testing.T) {
	e := protectedEcho(t, "DELETE_MOVIES")
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", bearerFor(t, 7, "dana@example.com", []string{"DISPLAY_MOVIES"}))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"error":"forbidden"}`, rec.Body.String())
}

func TestRequireAuthorityPassesMatchingPermission(t *testing.T) {
	e := protectedEcho(t, "DELETE_MOVIES")
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", bearerFor(t, 7, "dana@example.com", []string{"DISPLAY_MOVIES", "DELETE_MOVIES"}))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthorityWithoutGateIsForbidden(t *testing.T) {
	e := echo.New()
	e.GET("/open", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RequireAuthority("DISPLAY_MOVIES"))

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}
