package service

import (
	"errors"

	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/pkg/pagination"
	"go-shop-admin/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CatalogService interface {
	List(filter repository.ProductFilter, page pagination.Params) (*ProductListResult, error)
	Get(id uuid.UUID) (*model.Product, error)
	GetBySlug(slug string) (*model.Product, error)
	Create(req *CreateProductRequest, actorID uuid.UUID) (*model.Product, error)
	Update(id uuid.UUID, req *UpdateProductRequest, actorID uuid.UUID) (*model.Product, error)
	Delete(id uuid.UUID) error
}

type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Unit        string          `json:"unit"`
	IsFeatured  bool            `json:"is_featured"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Slug        *string          `json:"slug"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	Stock       *int             `json:"stock"`
	Unit        *string          `json:"unit"`
	IsActive    *bool            `json:"is_active"`
	IsFeatured  *bool            `json:"is_featured"`
}

type ProductListResult struct {
	Products    []model.Product `json:"products"`
	Total       int64           `json:"total"`
	TotalPages  int             `json:"total_pages"`
	CurrentPage int             `json:"current_page"`
}

type catalogService struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

func (s *catalogService) List(filter repository.ProductFilter, page pagination.Params) (*ProductListResult, error) {
	products, total, err := s.productRepo.FindAll(filter, page.Offset, page.Limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &ProductListResult{
		Products:    products,
		Total:       total,
		TotalPages:  pagination.TotalPages(total, page.Limit),
		CurrentPage: page.Page,
	}, nil
}

func (s *catalogService) Get(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, apperr.Internal(err)
	}
	return product, nil
}

func (s *catalogService) GetBySlug(slug string) (*model.Product, error) {
	product, err := s.productRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, apperr.Internal(err)
	}
	return product, nil
}

func (s *catalogService) Create(req *CreateProductRequest, actorID uuid.UUID) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperr.Newf(apperr.KindInvalid, "Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	if req.Price.IsNegative() || req.SalePrice.IsNegative() {
		return nil, apperr.Invalid("Price cannot be negative")
	}

	if existing, _ := s.productRepo.FindBySKU(req.SKU); existing != nil {
		return nil, apperr.Conflict("Product with this SKU already exists")
	}

	slug := req.Slug
	if slug == "" {
		slug = model.Slugify(req.Name)
	}
	if existing, _ := s.productRepo.FindBySlug(slug); existing != nil {
		return nil, apperr.Conflict("Product with this slug already exists")
	}

	product := &model.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		Stock:       req.Stock,
		Unit:        req.Unit,
		IsActive:    true,
		IsFeatured:  req.IsFeatured,
		CreatedByID: &actorID,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, apperr.Internal(err)
	}
	return product, nil
}

func (s *catalogService) Update(id uuid.UUID, req *UpdateProductRequest, actorID uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, apperr.Internal(err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Slug != nil && *req.Slug != product.Slug {
		if existing, _ := s.productRepo.FindBySlug(*req.Slug); existing != nil {
			return nil, apperr.Conflict("Product with this slug already exists")
		}
		product.Slug = *req.Slug
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apperr.Invalid("Price cannot be negative")
		}
		product.Price = *req.Price
	}
	if req.SalePrice != nil {
		if req.SalePrice.IsNegative() {
			return nil, apperr.Invalid("Price cannot be negative")
		}
		product.SalePrice = *req.SalePrice
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apperr.Invalid("Stock cannot be negative")
		}
		product.Stock = *req.Stock
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	product.UpdatedByID = &actorID

	if err := s.productRepo.Save(product); err != nil {
		return nil, apperr.Internal(err)
	}
	return product, nil
}

func (s *catalogService) Delete(id uuid.UUID) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Product not found")
		}
		return apperr.Internal(err)
	}
	if err := s.productRepo.Delete(product.ID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
