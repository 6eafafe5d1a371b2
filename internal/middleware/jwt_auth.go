package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shelvit/backend/internal/apperrors"
	"github.com/shelvit/backend/internal/auth"
	"github.com/shelvit/backend/internal/repositories"
)

// ClaimsKey is the echo context key the validated claims are stored under.
const ClaimsKey = "user"

// JWTAuth checks for a valid bearer token of the wanted type and rejects
// tokens the ledger marks revoked. The ledger check is what makes
// revocation meaningful: expiry alone would keep a logged-out access token
// valid for up to seven days.
func JWTAuth(tokens *auth.TokenService, ledger repositories.TokenRepository, tokenType string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			claims, err := tokens.Parse(parts[1])
			if err != nil {
				return err
			}
			if claims.TokenType != tokenType {
				return apperrors.BadToken
			}

			revoked, err := ledger.IsRevoked(c.Request().Context(), claims.ID)
			if err != nil {
				return err
			}
			if revoked {
				return apperrors.BadToken
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

// Claims pulls the validated token claims back out of the echo context.
func Claims(c echo.Context) *auth.TokenClaims {
	claims, _ := c.Get(ClaimsKey).(*auth.TokenClaims)
	return claims
}
