package service

import (
	"errors"

	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierService interface {
	List(search string, isActive *bool) ([]model.Supplier, error)
	Get(id uuid.UUID) (*model.Supplier, error)
	Create(req *CreateSupplierRequest) (*model.Supplier, error)
	Update(id uuid.UUID, req *UpdateSupplierRequest) (*model.Supplier, error)
	Delete(id uuid.UUID) error
}

type CreateSupplierRequest struct {
	Name          string `json:"name" validate:"required"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

type UpdateSupplierRequest struct {
	Name          *string `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	IsActive      *bool   `json:"is_active"`
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
	saleRepo     repository.SaleRepository
}

func NewSupplierService(supplierRepo repository.SupplierRepository, saleRepo repository.SaleRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo, saleRepo: saleRepo}
}

func (s *supplierService) List(search string, isActive *bool) ([]model.Supplier, error) {
	suppliers, err := s.supplierRepo.FindAll(search, isActive)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return suppliers, nil
}

func (s *supplierService) Get(id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Supplier not found")
		}
		return nil, apperr.Internal(err)
	}
	return supplier, nil
}

func (s *supplierService) Create(req *CreateSupplierRequest) (*model.Supplier, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperr.Newf(apperr.KindInvalid, "Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if existing, _ := s.supplierRepo.FindByName(req.Name); existing != nil {
		return nil, apperr.Conflict("Supplier with this name already exists")
	}

	supplier := &model.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		IsActive:      true,
	}
	if err := s.supplierRepo.Create(supplier); err != nil {
		return nil, apperr.Internal(err)
	}
	return supplier, nil
}

func (s *supplierService) Update(id uuid.UUID, req *UpdateSupplierRequest) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Supplier not found")
		}
		return nil, apperr.Internal(err)
	}

	if req.Name != nil && *req.Name != supplier.Name {
		if existing, _ := s.supplierRepo.FindByName(*req.Name); existing != nil {
			return nil, apperr.Conflict("Supplier with this name already exists")
		}
		supplier.Name = *req.Name
	}
	if req.ContactPerson != nil {
		supplier.ContactPerson = *req.ContactPerson
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}

	if err := s.supplierRepo.Save(supplier); err != nil {
		return nil, apperr.Internal(err)
	}
	return supplier, nil
}

func (s *supplierService) Delete(id uuid.UUID) error {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Supplier not found")
		}
		return apperr.Internal(err)
	}

	saleCount, err := s.saleRepo.CountBySupplier(supplier.ID)
	if err != nil {
		return apperr.Internal(err)
	}
	if saleCount > 0 {
		return apperr.Newf(apperr.KindConflict,
			"Cannot delete supplier. %d transaction(s) reference this supplier.", saleCount)
	}

	if err := s.supplierRepo.Delete(supplier.ID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
