package handler

import (
	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/authz"
	"go-shop-admin/internal/middleware"
	"go-shop-admin/internal/service"
	"go-shop-admin/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	result, err := h.authService.Login(&req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"message":     "Login successful",
		"token":       result.Token,
		"user":        result.User,
		"permissions": result.Permissions,
	})
}

// Me returns the authenticated user with their live effective permissions,
// resolved fresh so clients see revocations without re-logging in.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Error(c, apperr.Unauthenticated("Authentication required"))
	}
	return response.OK(c, fiber.Map{
		"user":        user.ToResponse(),
		"permissions": authz.EffectivePermissions(user),
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req service.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	if err := h.authService.ResetPassword(&req); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, fiber.StatusOK, "Password reset successfully")
}
