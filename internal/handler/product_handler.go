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

type ProductHandler struct {
	catalogService service.CatalogService
}

func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	if c.Query("is_active") != "" {
		isActive := c.QueryBool("is_active")
		filter.IsActive = &isActive
	}
	if c.Query("featured") != "" {
		featured := c.QueryBool("featured")
		filter.Featured = &featured
	}

	page := pagination.Parse(c)
	result, err := h.catalogService.List(filter, page)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"products":     result.Products,
		"total":        result.Total,
		"total_pages":  result.TotalPages,
		"current_page": result.CurrentPage,
	})
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid product ID"))
	}

	product, err := h.catalogService.Get(id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{"product": product})
}

func (h *ProductHandler) GetBySlug(c *fiber.Ctx) error {
	product, err := h.catalogService.GetBySlug(c.Params("slug"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{"product": product})
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	actor := middleware.CurrentUser(c)
	product, err := h.catalogService.Create(&req, actor.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, fiber.Map{
		"message": "Product created successfully",
		"product": product,
	})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid product ID"))
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	actor := middleware.CurrentUser(c)
	product, err := h.catalogService.Update(id, &req, actor.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"message": "Product updated successfully",
		"product": product,
	})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid product ID"))
	}

	if err := h.catalogService.Delete(id); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, fiber.StatusOK, "Product deleted successfully")
}
