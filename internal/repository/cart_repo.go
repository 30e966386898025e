package repository

import (
	"errors"

	"go-shop-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartRepository interface {
	FindOrCreateByUser(userID uuid.UUID) (*model.Cart, error)
	FindItem(cartID, productID uuid.UUID) (*model.CartItem, error)
	CreateItem(item *model.CartItem) error
	SaveItem(item *model.CartItem) error
	DeleteItem(id uuid.UUID) error
	ClearItems(cartID uuid.UUID) error
	Reload(cart *model.Cart) error
}

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepo(db *gorm.DB) CartRepository {
	return &cartRepo{db: db}
}

// FindOrCreateByUser returns the user's cart, creating an empty one on first
// access. The unique index on user_id keeps concurrent first accesses to a
// single row.
func (r *cartRepo) FindOrCreateByUser(userID uuid.UUID) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = model.Cart{UserID: userID}
	if err := r.db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepo) FindItem(cartID, productID uuid.UUID) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) CreateItem(item *model.CartItem) error {
	return r.db.Create(item).Error
}

func (r *cartRepo) SaveItem(item *model.CartItem) error {
	return r.db.Save(item).Error
}

func (r *cartRepo) DeleteItem(id uuid.UUID) error {
	return r.db.Unscoped().Delete(&model.CartItem{}, "id = ?", id).Error
}

func (r *cartRepo) ClearItems(cartID uuid.UUID) error {
	return r.db.Unscoped().Delete(&model.CartItem{}, "cart_id = ?", cartID).Error
}

// Reload refreshes the cart's items with products attached.
func (r *cartRepo) Reload(cart *model.Cart) error {
	return r.db.Preload("Items.Product").First(cart, "id = ?", cart.ID).Error
}
