package handler

import (
	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/service"
	"go-shop-admin/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	settingsService service.SettingsService
}

func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.settingsService.Get()
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{"settings": settings})
}

func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req service.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	settings, err := h.settingsService.Update(&req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"message":  "Settings updated successfully",
		"settings": settings,
	})
}
