package handler

import (
	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/middleware"
	"go-shop-admin/internal/repository"
	"go-shop-admin/internal/service"
	"go-shop-admin/pkg/pagination"
	"go-shop-admin/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	filter := repository.UserFilter{Search: c.Query("search")}
	if c.Query("role_id") != "" {
		roleID, err := uuid.Parse(c.Query("role_id"))
		if err != nil {
			return response.Error(c, apperr.Invalid("Invalid role ID"))
		}
		filter.RoleID = &roleID
	}
	if c.Query("is_active") != "" {
		isActive := c.QueryBool("is_active")
		filter.IsActive = &isActive
	}

	page := pagination.Parse(c)
	result, err := h.userService.List(filter, page)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"users":        result.Users,
		"total":        result.Total,
		"total_pages":  result.TotalPages,
		"current_page": result.CurrentPage,
	})
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid user ID"))
	}

	user, err := h.userService.Get(id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{"user": user})
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	user, err := h.userService.Create(&req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid user ID"))
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	user, err := h.userService.Update(id, &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

// UpdatePermissions replaces a user's custom permission override.
func (h *UserHandler) UpdatePermissions(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid user ID"))
	}

	var req service.UpdateUserPermissionsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	user, err := h.userService.UpdatePermissions(id, &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"message": "User permissions updated successfully",
		"user":    user,
	})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid user ID"))
	}

	actor := middleware.CurrentUser(c)
	if err := h.userService.Delete(id, actor.ID); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, fiber.StatusOK, "User deleted successfully")
}
