package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIVersionMiddleware_Headers(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	version := APIVersion{Version: "1.0.0", LatestVersion: "1.1.0"}
	handler := APIVersionMiddleware(version)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(c))

	assert.Equal(t, "1.0.0", rec.Header().Get("X-API-Version"))
	assert.Equal(t, "1.1.0", rec.Header().Get("X-API-Latest-Version"))
	assert.Empty(t, rec.Header().Get("Deprecation"))
}

func TestAPIVersionMiddleware_Deprecated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	version := APIVersion{Version: "0.9.0", LatestVersion: "1.0.0", DeprecationDate: "2026-12-31"}
	handler := APIVersionMiddleware(version)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(c))

	assert.Equal(t, "true", rec.Header().Get("Deprecation"))
	assert.Equal(t, "2026-12-31", rec.Header().Get("X-API-Deprecation-Date"))
}

func TestVersionInfo(t *testing.T) {
	info := VersionInfo(APIVersion{Version: "1.0.0", LatestVersion: "1.0.0"})
	assert.Equal(t, "1.0.0", info["version"])
	_, deprecated := info["deprecated"]
	assert.False(t, deprecated)
}
