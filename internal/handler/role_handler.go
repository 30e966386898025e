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

type RoleHandler struct {
	roleService service.RoleService
}

func NewRoleHandler(roleService service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

func (h *RoleHandler) List(c *fiber.Ctx) error {
	filter := repository.RoleFilter{Search: c.Query("search")}
	if c.Query("is_active") != "" {
		isActive := c.QueryBool("is_active")
		filter.IsActive = &isActive
	}

	roles, err := h.roleService.List(filter)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"roles": roles,
		"total": len(roles),
	})
}

func (h *RoleHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid role ID"))
	}

	role, err := h.roleService.Get(id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{"role": role})
}

func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var req service.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	actor := middleware.CurrentUser(c)
	role, err := h.roleService.Create(&req, actor.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, fiber.Map{
		"message": "Role created successfully",
		"role":    role,
	})
}

func (h *RoleHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid role ID"))
	}

	var req service.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	actor := middleware.CurrentUser(c)
	role, err := h.roleService.Update(id, &req, actor.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"message": "Role updated successfully",
		"role":    role,
	})
}

func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid role ID"))
	}

	if err := h.roleService.Delete(id); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, fiber.StatusOK, "Role deleted successfully")
}

// ListUsers returns the users assigned to a role, paginated.
func (h *RoleHandler) ListUsers(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid role ID"))
	}

	page := pagination.Parse(c)
	result, err := h.roleService.ListUsers(id, page)
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

func (h *RoleHandler) Seed(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	roles, err := h.roleService.SeedDefaults(actor.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, fiber.Map{
		"message": "Default roles seeded successfully",
		"roles":   roles,
		"total":   len(roles),
	})
}
