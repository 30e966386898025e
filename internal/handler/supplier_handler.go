package handler

import (
	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/service"
	"go-shop-admin/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SupplierHandler struct {
	supplierService service.SupplierService
}

func NewSupplierHandler(supplierService service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

func (h *SupplierHandler) List(c *fiber.Ctx) error {
	var isActive *bool
	if c.Query("is_active") != "" {
		v := c.QueryBool("is_active")
		isActive = &v
	}

	suppliers, err := h.supplierService.List(c.Query("search"), isActive)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"suppliers": suppliers,
		"total":     len(suppliers),
	})
}

func (h *SupplierHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid supplier ID"))
	}

	supplier, err := h.supplierService.Get(id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{"supplier": supplier})
}

func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var req service.CreateSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	supplier, err := h.supplierService.Create(&req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, fiber.Map{
		"message":  "Supplier created successfully",
		"supplier": supplier,
	})
}

func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid supplier ID"))
	}

	var req service.UpdateSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperr.Invalid("Invalid request body"))
	}

	supplier, err := h.supplierService.Update(id, &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, fiber.Map{
		"message":  "Supplier updated successfully",
		"supplier": supplier,
	})
}

func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, apperr.Invalid("Invalid supplier ID"))
	}

	if err := h.supplierService.Delete(id); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, fiber.StatusOK, "Supplier deleted successfully")
}
