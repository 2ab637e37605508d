package auth

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "fossilario/internal/errors"
)

// Middleware returns the JWT gate for protected routes. Missing, malformed,
// invalid-signature and expired tokens all short-circuit with the same 401
// body; the protected handler never runs.
func Middleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "missing or invalid token",
				Code:  "UNAUTHENTICATED",
			})
		},
	})
}

// UserID extracts the authenticated caller's id attached by Middleware.
func UserID(c echo.Context) (uint, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, errors.New("no token in context")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == 0 {
		return 0, errors.New("invalid token claims")
	}
	return claims.UserID, nil
}
