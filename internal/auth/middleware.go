package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
)

const tokenCookieName = "token"

// Middleware verifies the identity token from the `token` cookie or the
// Authorization bearer header and attaches the claims to the request context.
// Requests without a valid token are rejected with 401.
func Middleware(tm *TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			token := extractToken((*c).Request())
			if token == "" {
				return (*c).JSON(http.StatusUnauthorized, map[string]string{
					"error": "Authentication required",
				})
			}

			claims, err := tm.Verify(token)
			if err != nil {
				return (*c).JSON(http.StatusUnauthorized, map[string]string{
					"error": "Invalid token",
				})
			}

			ctx := WithUser((*c).Request().Context(), &UserContext{
				UserID:      claims.UserID,
				Email:       claims.Email,
				AccountType: claims.AccountType,
				CanSell:     claims.CanSell,
			})
			(*c).SetRequest((*c).Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireAccountType gates a route group to one account type. It must run
// after Middleware.
func RequireAccountType(accountType string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			user := FromContext((*c).Request().Context())
			if user == nil {
				return (*c).JSON(http.StatusUnauthorized, map[string]string{
					"error": "Authentication required",
				})
			}
			if user.AccountType != accountType {
				return (*c).JSON(http.StatusForbidden, map[string]string{
					"error": "Insufficient permissions",
				})
			}
			return next(c)
		}
	}
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(tokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimPrefix(authz, "Bearer ")
	}
	return ""
}
