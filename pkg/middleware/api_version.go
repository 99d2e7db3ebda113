package middleware

import (
	"github.com/labstack/echo/v4"
)

// APIVersion is the version advertised on every /api/v1 response.
type APIVersion struct {
	Version         string
	LatestVersion   string
	DeprecationDate string
}

// CurrentAPIVersion holds the current API version info
var CurrentAPIVersion = APIVersion{
	Version:       "1.0.0",
	LatestVersion: "1.0.0",
}

// APIVersionMiddleware adds version headers to all responses. Deprecation
// headers appear once a deprecation date is set.
func APIVersionMiddleware(version APIVersion) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-API-Version", version.Version)
			c.Response().Header().Set("X-API-Latest-Version", version.LatestVersion)

			if version.DeprecationDate != "" {
				c.Response().Header().Set("Deprecation", "true")
				c.Response().Header().Set("X-API-Deprecation-Date", version.DeprecationDate)
			}

			return next(c)
		}
	}
}

// VersionInfo returns version information for the /version endpoint.
func VersionInfo(version APIVersion) map[string]any {
	info := map[string]any{
		"version":        version.Version,
		"latest_version": version.LatestVersion,
	}
	if version.DeprecationDate != "" {
		info["deprecated"] = true
		info["deprecation_date"] = version.DeprecationDate
	}
	return info
}
