package auth

import (
	"github.com/labstack/echo/v4"
)

// publicPaths lists infrastructure endpoints served without credentials.
// Load balancers probe these before any token exists.
var publicPaths = map[string]bool{
	"/health":    true,
	"/health/db": true,
}

// AuthSkipper reports whether the request path bypasses authentication.
// Both auth middlewares consult it, so public endpoints behave the same
// in development and production.
func AuthSkipper(c echo.Context) bool {
	return publicPaths[c.Path()]
}
