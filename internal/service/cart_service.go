package service

import (
	"errors"

	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartService interface {
	Get(userID uuid.UUID) (*model.CartResponse, error)
	AddItem(userID uuid.UUID, req *AddCartItemRequest) (*model.CartResponse, error)
	UpdateItem(userID, itemID uuid.UUID, quantity int) (*model.CartResponse, error)
	RemoveItem(userID, itemID uuid.UUID) (*model.CartResponse, error)
	Clear(userID uuid.UUID) error
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid_required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

func (s *cartService) Get(userID uuid.UUID) (*model.CartResponse, error) {
	cart, err := s.cartRepo.FindOrCreateByUser(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	resp := cart.ToResponse()
	return &resp, nil
}

func (s *cartService) AddItem(userID uuid.UUID, req *AddCartItemRequest) (*model.CartResponse, error) {
	if req.Quantity <= 0 {
		return nil, apperr.Invalid("Quantity must be greater than zero")
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperr.Invalid("Invalid product ID")
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, apperr.Internal(err)
	}
	if !product.IsActive {
		return nil, apperr.Invalid("Product is not available")
	}

	cart, err := s.cartRepo.FindOrCreateByUser(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// Adding an already-carted product merges quantities; stock is checked
	// against the merged amount.
	quantity := req.Quantity
	existing, err := s.cartRepo.FindItem(cart.ID, product.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		quantity += existing.Quantity
	}
	if quantity > product.Stock {
		return nil, apperr.Newf(apperr.KindInvalid, "Insufficient stock. Only %d available.", product.Stock)
	}

	if existing != nil {
		existing.Quantity = quantity
		if err := s.cartRepo.SaveItem(existing); err != nil {
			return nil, apperr.Internal(err)
		}
	} else {
		item := &model.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  quantity,
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, apperr.Internal(err)
		}
	}

	if err := s.cartRepo.Reload(cart); err != nil {
		return nil, apperr.Internal(err)
	}
	resp := cart.ToResponse()
	return &resp, nil
}

func (s *cartService) UpdateItem(userID, itemID uuid.UUID, quantity int) (*model.CartResponse, error) {
	if quantity < 1 {
		return nil, apperr.Invalid("Quantity must be at least 1")
	}

	cart, err := s.cartRepo.FindOrCreateByUser(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	item := s.findOwnedItem(cart, itemID)
	if item == nil {
		return nil, apperr.NotFound("Cart item not found")
	}

	product, err := s.productRepo.FindByID(item.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, apperr.Internal(err)
	}
	if quantity > product.Stock {
		return nil, apperr.Newf(apperr.KindInvalid, "Insufficient stock. Only %d available.", product.Stock)
	}

	item.Quantity = quantity
	if err := s.cartRepo.SaveItem(item); err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.cartRepo.Reload(cart); err != nil {
		return nil, apperr.Internal(err)
	}
	resp := cart.ToResponse()
	return &resp, nil
}

func (s *cartService) RemoveItem(userID, itemID uuid.UUID) (*model.CartResponse, error) {
	cart, err := s.cartRepo.FindOrCreateByUser(userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	item := s.findOwnedItem(cart, itemID)
	if item == nil {
		return nil, apperr.NotFound("Cart item not found")
	}

	if err := s.cartRepo.DeleteItem(item.ID); err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.cartRepo.Reload(cart); err != nil {
		return nil, apperr.Internal(err)
	}
	resp := cart.ToResponse()
	return &resp, nil
}

func (s *cartService) Clear(userID uuid.UUID) error {
	cart, err := s.cartRepo.FindOrCreateByUser(userID)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.cartRepo.ClearItems(cart.ID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// findOwnedItem scopes item lookup to the caller's cart so one user cannot
// touch another's line items.
func (s *cartService) findOwnedItem(cart *model.Cart, itemID uuid.UUID) *model.CartItem {
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			return &cart.Items[i]
		}
	}
	return nil
}
