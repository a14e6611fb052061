package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	allowMethods = "GET, POST, PUT, OPTIONS"
	allowHeaders = "Content-Type, Authorization, X-Request-ID"
)

// CORS returns Echo middleware enforcing an explicit origin allow-list.
// Only listed origins receive credentialed CORS headers; preflight OPTIONS
// requests are answered with an empty body. An empty allow-list disables
// cross-origin access entirely.
func CORS(allowedOrigins []string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get("Origin")
			header := c.Response().Header()

			if _, ok := allowed[origin]; ok && origin != "" {
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Credentials", "true")
				header.Add("Vary", "Origin")
			}

			if c.Request().Method == http.MethodOptions {
				header.Set("Access-Control-Allow-Methods", allowMethods)
				header.Set("Access-Control-Allow-Headers", allowHeaders)
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}
