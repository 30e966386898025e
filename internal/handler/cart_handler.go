package handler

import (
	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/middleware"
	"go-shop-admin/internal/service"
	"go-shop-admin/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) Get(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	cart, err := h.cartService.Get(user.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{"cart": cart})
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req service.AddCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	user := middleware.CurrentUser(c)
	cart, err := h.cartService.AddItem(user.ID, &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"message": "Item added to cart",
		"cart":    cart,
	})
}

func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid cart item ID"))
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	user := middleware.CurrentUser(c)
	cart, err := h.cartService.UpdateItem(user.ID, itemID, req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"message": "Cart item updated",
		"cart":    cart,
	})
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid cart item ID"))
	}

	user := middleware.CurrentUser(c)
	cart, err := h.cartService.RemoveItem(user.ID, itemID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"message": "Item removed from cart",
		"cart":    cart,
	})
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := h.cartService.Clear(user.ID); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, fiber.StatusOK, "Cart cleared")
}
