package handler

import (
	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/internal/service"
	"go-shop-admin/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PermissionHandler struct {
	permissionService service.PermissionService
}

func NewPermissionHandler(permissionService service.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// List returns all permissions, both flat and grouped by category.
func (h *PermissionHandler) List(c *fiber.Ctx) error {
	filter := repository.PermissionFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	if c.Query("is_active") != "" {
		isActive := c.QueryBool("is_active")
		filter.IsActive = &isActive
	}

	permissions, grouped, err := h.permissionService.List(filter)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"permissions": permissions,
		"grouped":     grouped,
		"total":       len(permissions),
	})
}

func (h *PermissionHandler) ListCategories(c *fiber.Ctx) error {
	return response.OK(c, fiber.Map{"categories": model.Categories})
}

func (h *PermissionHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid permission ID"))
	}

	permission, roleCount, err := h.permissionService.Get(id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"permission": permission,
		"role_count": roleCount,
	})
}

func (h *PermissionHandler) Create(c *fiber.Ctx) error {
	var req service.CreatePermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	permission, err := h.permissionService.Create(&req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, fiber.Map{
		"message":    "Permission created successfully",
		"permission": permission,
	})
}

func (h *PermissionHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid permission ID"))
	}

	var req service.UpdatePermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	permission, err := h.permissionService.Update(id, &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"message":    "Permission updated successfully",
		"permission": permission,
	})
}

func (h *PermissionHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid permission ID"))
	}

	if err := h.permissionService.Delete(id); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, fiber.StatusOK, "Permission deleted successfully")
}

func (h *PermissionHandler) Seed(c *fiber.Ctx) error {
	permissions, err := h.permissionService.SeedDefaults()
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, fiber.Map{
		"message":     "Default permissions seeded successfully",
		"permissions": permissions,
		"total":       len(permissions),
	})
}
