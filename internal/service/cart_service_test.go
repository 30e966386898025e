package service

import (
	"testing"

	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (f *fakeProductRepo) add(p model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.products[p.ID] = &p
	return &p
}

func (f *fakeProductRepo) FindAll(filter repository.ProductFilter, offset, limit int) ([]model.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) FindBySKU(sku string) (*model.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) FindBySlug(slug string) (*model.Product, error) {
	for _, p := range f.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) Create(p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Save(p *model.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(id uuid.UUID) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, stock int) error {
	if p, ok := f.products[id]; ok {
		p.Stock = stock
	}
	return nil
}

// fakeCartRepo keeps one cart per user with its items inline.
type fakeCartRepo struct {
	carts map[uuid.UUID]*model.Cart // by user
	repo  *fakeProductRepo
}

func newFakeCartRepo(products *fakeProductRepo) *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uuid.UUID]*model.Cart), repo: products}
}

func (f *fakeCartRepo) FindOrCreateByUser(userID uuid.UUID) (*model.Cart, error) {
	if cart, ok := f.carts[userID]; ok {
		f.attachProducts(cart)
		cp := *cart
		return &cp, nil
	}
	cart := &model.Cart{UserID: userID}
	cart.ID = uuid.New()
	f.carts[userID] = cart
	cp := *cart
	return &cp, nil
}

func (f *fakeCartRepo) attachProducts(cart *model.Cart) {
	for i := range cart.Items {
		if p, ok := f.repo.products[cart.Items[i].ProductID]; ok {
			cp := *p
			cart.Items[i].Product = &cp
		}
	}
}

func (f *fakeCartRepo) byCartID(cartID uuid.UUID) *model.Cart {
	for _, cart := range f.carts {
		if cart.ID == cartID {
			return cart
		}
	}
	return nil
}

func (f *fakeCartRepo) FindItem(cartID, productID uuid.UUID) (*model.CartItem, error) {
	if cart := f.byCartID(cartID); cart != nil {
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				cp := cart.Items[i]
				return &cp, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCartRepo) CreateItem(item *model.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if cart := f.byCartID(item.CartID); cart != nil {
		cart.Items = append(cart.Items, *item)
	}
	return nil
}

func (f *fakeCartRepo) SaveItem(item *model.CartItem) error {
	if cart := f.byCartID(item.CartID); cart != nil {
		for i := range cart.Items {
			if cart.Items[i].ID == item.ID {
				cart.Items[i] = *item
				return nil
			}
		}
	}
	return nil
}

func (f *fakeCartRepo) DeleteItem(id uuid.UUID) error {
	for _, cart := range f.carts {
		for i := range cart.Items {
			if cart.Items[i].ID == id {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (f *fakeCartRepo) ClearItems(cartID uuid.UUID) error {
	if cart := f.byCartID(cartID); cart != nil {
		cart.Items = nil
	}
	return nil
}

func (f *fakeCartRepo) Reload(cart *model.Cart) error {
	if stored := f.byCartID(cart.ID); stored != nil {
		f.attachProducts(stored)
		*cart = *stored
	}
	return nil
}

func newCartFixture() (*fakeProductRepo, CartService) {
	products := newFakeProductRepo()
	return products, NewCartService(newFakeCartRepo(products), products)
}

func TestCartAddItem_MergesQuantities(t *testing.T) {
	products, svc := newCartFixture()
	product := products.add(model.Product{Name: "Mouse", SKU: "M-1", Stock: 10, IsActive: true, Price: decimal.NewFromInt(25)})
	userID := uuid.New()

	_, err := svc.AddItem(userID, &AddCartItemRequest{ProductID: product.ID.String(), Quantity: 3})
	require.NoError(t, err)

	cart, err := svc.AddItem(userID, &AddCartItemRequest{ProductID: product.ID.String(), Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 5, cart.TotalItems)
	assert.True(t, cart.Subtotal.Equal(decimal.NewFromInt(125)))
}

func TestCartAddItem_StockCapCoversMergedQuantity(t *testing.T) {
	products, svc := newCartFixture()
	product := products.add(model.Product{Name: "Mouse", SKU: "M-1", Stock: 4, IsActive: true, Price: decimal.NewFromInt(25)})
	userID := uuid.New()

	_, err := svc.AddItem(userID, &AddCartItemRequest{ProductID: product.ID.String(), Quantity: 3})
	require.NoError(t, err)

	_, err = svc.AddItem(userID, &AddCartItemRequest{ProductID: product.ID.String(), Quantity: 2})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	assert.Contains(t, apperr.Message(err), "Only 4 available")
}

func TestCartAddItem_InactiveProduct(t *testing.T) {
	products, svc := newCartFixture()
	product := products.add(model.Product{Name: "Mouse", SKU: "M-1", Stock: 10, IsActive: false})

	_, err := svc.AddItem(uuid.New(), &AddCartItemRequest{ProductID: product.ID.String(), Quantity: 1})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestCartRemoveItem_OtherUsersItemInvisible(t *testing.T) {
	products, svc := newCartFixture()
	product := products.add(model.Product{Name: "Mouse", SKU: "M-1", Stock: 10, IsActive: true, Price: decimal.NewFromInt(25)})
	owner := uuid.New()

	cart, err := svc.AddItem(owner, &AddCartItemRequest{ProductID: product.ID.String(), Quantity: 1})
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	_, err = svc.RemoveItem(uuid.New(), itemID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCartClear(t *testing.T) {
	products, svc := newCartFixture()
	product := products.add(model.Product{Name: "Mouse", SKU: "M-1", Stock: 10, IsActive: true, Price: decimal.NewFromInt(25)})
	userID := uuid.New()

	_, err := svc.AddItem(userID, &AddCartItemRequest{ProductID: product.ID.String(), Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(userID))

	cart, err := svc.Get(userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Subtotal.IsZero())
}
