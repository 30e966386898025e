package repository

import (
	"time"

	"go-shop-admin/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleFilter struct {
	Type model.SaleType
	From *time.Time
	To   *time.Time
}

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindAll(filter SaleFilter, offset, limit int) ([]model.Sale, int64, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	Summary(from, to time.Time) (*model.SalesSummary, error)
	CountBySupplier(supplierID uuid.UUID) (int64, error)
	CashTotalForSession(sessionID uuid.UUID) (decimal.Decimal, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db: db}
}

// Create inserts inside the caller's transaction, alongside the stock write
// it belongs with.
func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindAll(filter SaleFilter, offset, limit int) ([]model.Sale, int64, error) {
	q := r.db.Model(&model.Sale{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at <= ?", *filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sales []model.Sale
	err := q.Preload("Product").Preload("Supplier").
		Order("created_at desc").Offset(offset).Limit(limit).Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	if err := r.db.Preload("Product").Preload("Supplier").First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// Summary aggregates sale and purchase totals for the period.
func (r *saleRepo) Summary(from, to time.Time) (*model.SalesSummary, error) {
	type row struct {
		Type  model.SaleType
		Total decimal.Decimal
		Count int64
	}
	var rows []row
	err := r.db.Model(&model.Sale{}).
		Select("type, COALESCE(SUM(total_amount), 0) as total, COUNT(*) as count").
		Where("created_at BETWEEN ? AND ?", from, to).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &model.SalesSummary{
		TotalSales:     decimal.Zero,
		TotalPurchases: decimal.Zero,
	}
	for _, rw := range rows {
		switch rw.Type {
		case model.SaleTypeSale:
			summary.TotalSales = rw.Total
			summary.SaleCount = rw.Count
		case model.SaleTypePurchase:
			summary.TotalPurchases = rw.Total
			summary.PurchaseCount = rw.Count
		}
	}
	return summary, nil
}

func (r *saleRepo) CountBySupplier(supplierID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Sale{}).Where("supplier_id = ?", supplierID).Count(&count).Error
	return count, err
}

// CashTotalForSession sums cash sales rung up in a register session.
func (r *saleRepo) CashTotalForSession(sessionID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.Model(&model.Sale{}).
		Select("SUM(total_amount)").
		Where("register_session_id = ? AND type = ? AND payment_method = ?",
			sessionID, model.SaleTypeSale, "CASH").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
