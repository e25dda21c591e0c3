package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ClaimsContextKey is the key for storing claims in the echo context
const ClaimsContextKey = "claims"

// RequireAuth is middleware that requires a valid bearer token
func RequireAuth(auth *Auth) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
			}

			claims, err := auth.ValidateAccessToken(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(ClaimsContextKey, claims)

			return next(c)
		}
	}
}

// GetClaims returns the claims stored by RequireAuth, if any
func GetClaims(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*Claims)
	return claims, ok
}
