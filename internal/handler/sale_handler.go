package handler

import (
	"time"

	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/middleware"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/internal/service"
	"go-shop-admin/pkg/pagination"
	"go-shop-admin/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SaleHandler struct {
	saleService service.SaleService
}

func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func (h *SaleHandler) Record(c *fiber.Ctx) error {
	var req service.RecordSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	actor := middleware.CurrentUser(c)
	sale, err := h.saleService.Record(&req, actor.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, fiber.Map{
		"message": "Transaction recorded successfully",
		"sale":    sale,
	})
}

func (h *SaleHandler) List(c *fiber.Ctx) error {
	filter := repository.SaleFilter{Type: model.SaleType(c.Query("type"))}
	if v := c.Query("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return response.Error(c, apperr.Invalid("Invalid 'from' date, expected RFC3339"))
		}
		filter.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return response.Error(c, apperr.Invalid("Invalid 'to' date, expected RFC3339"))
		}
		filter.To = &to
	}

	page := pagination.Parse(c)
	result, err := h.saleService.List(filter, page)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"sales":        result.Sales,
		"total":        result.Total,
		"total_pages":  result.TotalPages,
		"current_page": result.CurrentPage,
	})
}

func (h *SaleHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid sale ID"))
	}

	sale, err := h.saleService.Get(id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{"sale": sale})
}

// Summary aggregates sales and purchases over a trailing window keyed by the
// range query parameter.
func (h *SaleHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.saleService.Summary(c.Query("range"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{"summary": summary})
}
