package handler

import (
	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/authz"
	"go-shop-admin/internal/middleware"
	"go-shop-admin/internal/service"
	"go-shop-admin/pkg/pagination"
	"go-shop-admin/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type RegisterHandler struct {
	registerService service.RegisterService
}

func NewRegisterHandler(registerService service.RegisterService) *RegisterHandler {
	return &RegisterHandler{registerService: registerService}
}

func (h *RegisterHandler) Open(c *fiber.Ctx) error {
	var req service.OpenRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	user := middleware.CurrentUser(c)
	session, err := h.registerService.Open(user.ID, &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, fiber.Map{
		"message": "Register session opened",
		"session": session,
	})
}

func (h *RegisterHandler) Close(c *fiber.Ctx) error {
	var req service.CloseRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	user := middleware.CurrentUser(c)
	session, err := h.registerService.Close(user.ID, &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"message": "Register session closed",
		"session": session,
	})
}

func (h *RegisterHandler) Current(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	session, err := h.registerService.Current(user.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{"session": session})
}

// List shows the caller's own session history; users holding the cash
// register management permission can request everyone's with ?all=true.
func (h *RegisterHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	all := c.QueryBool("all")
	if all && !authz.HasPermission(user, "manage_cash_register") {
		return response.Error(c, apperr.Forbidden("You don't have permission to view all register sessions"))
	}

	page := pagination.Parse(c)
	result, err := h.registerService.List(user.ID, all, page)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"sessions":     result.Sessions,
		"total":        result.Total,
		"total_pages":  result.TotalPages,
		"current_page": result.CurrentPage,
	})
}
