package middleware

import (
	"strings"

	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/authz"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/pkg/jwt"
	"go-shop-admin/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userLocalKey = "current_user"

// RequireAuth validates the bearer token and loads the live user with the
// role bundle attached. The token's permission claims are never trusted for
// authorization; every request re-reads the database so revocations take
// effect immediately.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Error(c, apperr.Unauthenticated("Missing authorization token"))
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Error(c, apperr.Unauthenticated("Invalid authorization header format"))
		}

		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			return response.Error(c, apperr.Unauthenticated("Invalid or expired token"))
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return response.Error(c, apperr.Unauthenticated("User no longer exists"))
		}
		if !user.IsActive {
			return response.Error(c, apperr.Unauthenticated("Account is deactivated"))
		}

		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// RequirePermission gates a route on a single permission token. Runs after
// RequireAuth; an authenticated user lacking the token gets 403.
func RequirePermission(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return response.Error(c, apperr.Unauthenticated("Authentication required"))
		}
		if !authz.HasPermission(user, token) {
			return response.Error(c, apperr.Forbidden("You don't have permission to perform this action"))
		}
		return c.Next()
	}
}

// RequireAnyPermission passes when the user holds at least one of the tokens.
func RequireAnyPermission(tokens ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return response.Error(c, apperr.Unauthenticated("Authentication required"))
		}
		if !authz.HasAnyPermission(user, tokens...) {
			return response.Error(c, apperr.Forbidden("You don't have permission to perform this action"))
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, ok := c.Locals(userLocalKey).(*model.User)
	if !ok {
		return nil
	}
	return user
}
