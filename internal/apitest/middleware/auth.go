// Package middleware holds the bearer-token and role checks of the fake
// backend.
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by Auth.
const (
	KeyUserID = "user_id"
	KeyRole   = "role"
	KeyToken  = "token"
)

// Claims is the payload of tokens the fake backend issues. Subject carries
// the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth validates the bearer JWT and injects the caller's id, role and raw
// token into the context. revoked, when not nil, rejects tokens that were
// logged out.
func Auth(secret string, revoked func(token string) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated.")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated.")
			}

			var claims Claims
			tkn, err := jwt.ParseWithClaims(parts[1], &claims, func(token *jwt.Token) (any, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated.")
			}
			if revoked != nil && revoked(parts[1]) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated.")
			}

			id, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated.")
			}

			c.Set(KeyUserID, id)
			c.Set(KeyRole, claims.Role)
			c.Set(KeyToken, parts[1])

			return next(c)
		}
	}
}
