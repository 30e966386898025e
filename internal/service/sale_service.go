package service

import (
	"errors"
	"time"

	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/internal/ws"
	"go-shop-admin/pkg/pagination"
	"go-shop-admin/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaleService interface {
	Record(req *RecordSaleRequest, actorID uuid.UUID) (*model.Sale, error)
	List(filter repository.SaleFilter, page pagination.Params) (*SaleListResult, error)
	Get(id uuid.UUID) (*model.Sale, error)
	Summary(rangeKey string) (*model.SalesSummary, error)
}

type RecordSaleRequest struct {
	ProductID     string          `json:"product_id" validate:"required,uuid_required"`
	Type          model.SaleType  `json:"type" validate:"required,oneof=SALE PURCHASE"`
	Quantity      int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	PaymentMethod string          `json:"payment_method"`
	Note          string          `json:"note"`
	SupplierID    string          `json:"supplier_id"`
}

type SaleListResult struct {
	Sales       []model.Sale `json:"sales"`
	Total       int64        `json:"total"`
	TotalPages  int          `json:"total_pages"`
	CurrentPage int          `json:"current_page"`
}

type saleService struct {
	db           *gorm.DB
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	registerRepo repository.RegisterRepository
	hub          *ws.Hub
}

func NewSaleService(
	db *gorm.DB,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	registerRepo repository.RegisterRepository,
	hub *ws.Hub,
) SaleService {
	return &saleService{
		db:           db,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		registerRepo: registerRepo,
		hub:          hub,
	}
}

// Record writes one stock movement. The product row is locked for the span
// of the transaction so concurrent sales cannot both pass the stock check.
func (s *saleService) Record(req *RecordSaleRequest, actorID uuid.UUID) (*model.Sale, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperr.Newf(apperr.KindInvalid, "Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperr.Invalid("Invalid product ID")
	}

	var supplierID *uuid.UUID
	if req.Type == model.SaleTypePurchase {
		if req.SupplierID == "" {
			return nil, apperr.Invalid("Supplier is required for purchases")
		}
		id, err := uuid.Parse(req.SupplierID)
		if err != nil {
			return nil, apperr.Invalid("Invalid supplier ID")
		}
		if _, err := s.supplierRepo.FindByID(id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Invalid("Supplier not found")
			}
			return nil, apperr.Internal(err)
		}
		supplierID = &id
	}

	// Cash sales attach to the cashier's open drawer when one exists.
	var sessionID *uuid.UUID
	if req.Type == model.SaleTypeSale {
		session, err := s.registerRepo.FindOpenByUser(actorID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Internal(err)
		}
		if session != nil {
			sessionID = &session.ID
		}
	}

	var sale *model.Sale
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Product not found")
			}
			return apperr.Internal(err)
		}

		var unitPrice decimal.Decimal
		var newStock int
		switch req.Type {
		case model.SaleTypeSale:
			if product.Stock < req.Quantity {
				return apperr.Newf(apperr.KindInvalid, "Insufficient stock. Only %d available.", product.Stock)
			}
			unitPrice = product.EffectivePrice()
			newStock = product.Stock - req.Quantity
		case model.SaleTypePurchase:
			unitPrice = req.UnitPrice
			if unitPrice.IsZero() {
				unitPrice = product.Price
			}
			newStock = product.Stock + req.Quantity
		}
		if unitPrice.IsNegative() {
			return apperr.Invalid("Unit price cannot be negative")
		}

		sale = &model.Sale{
			ProductID:         product.ID,
			Type:              req.Type,
			Quantity:          req.Quantity,
			UnitPrice:         unitPrice,
			TotalAmount:       unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
			PaymentMethod:     req.PaymentMethod,
			Note:              req.Note,
			SupplierID:        supplierID,
			RegisterSessionID: sessionID,
			CreatedByID:       &actorID,
		}
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return apperr.Internal(err)
		}
		if err := s.productRepo.UpdateStock(tx, product.ID, newStock); err != nil {
			return apperr.Internal(err)
		}

		sale.Product = &product
		sale.Product.Stock = newStock
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.hub.Publish("sale_recorded", sale)
	s.hub.Publish("stock_updated", map[string]interface{}{
		"product_id": sale.ProductID,
		"stock":      sale.Product.Stock,
	})
	return sale, nil
}

func (s *saleService) List(filter repository.SaleFilter, page pagination.Params) (*SaleListResult, error) {
	sales, total, err := s.saleRepo.FindAll(filter, page.Offset, page.Limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &SaleListResult{
		Sales:       sales,
		Total:       total,
		TotalPages:  pagination.TotalPages(total, page.Limit),
		CurrentPage: page.Page,
	}, nil
}

func (s *saleService) Get(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Sale not found")
		}
		return nil, apperr.Internal(err)
	}
	return sale, nil
}

// Summary aggregates totals over a named trailing window.
func (s *saleService) Summary(rangeKey string) (*model.SalesSummary, error) {
	now := time.Now()
	var from time.Time
	switch rangeKey {
	case "", "7d":
		from = now.AddDate(0, 0, -7)
	case "1m":
		from = now.AddDate(0, -1, 0)
	case "3m":
		from = now.AddDate(0, -3, 0)
	case "6m":
		from = now.AddDate(0, -6, 0)
	case "12m":
		from = now.AddDate(-1, 0, 0)
	default:
		return nil, apperr.Newf(apperr.KindInvalid, "Invalid range '%s'. Use 7d, 1m, 3m, 6m or 12m.", rangeKey)
	}

	summary, err := s.saleRepo.Summary(from, now)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return summary, nil
}
