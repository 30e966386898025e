package service

import (
	"errors"
	"fmt"

	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PermissionService interface {
	List(filter repository.PermissionFilter) ([]model.Permission, map[string][]model.Permission, error)
	Get(id uuid.UUID) (*model.Permission, int64, error)
	Create(req *CreatePermissionRequest) (*model.Permission, error)
	Update(id uuid.UUID, req *UpdatePermissionRequest) (*model.Permission, error)
	Delete(id uuid.UUID) error
	SeedDefaults() ([]model.Permission, error)
}

type CreatePermissionRequest struct {
	Name        string `json:"name" validate:"required"`
	DisplayName string `json:"display_name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
}

// UpdatePermissionRequest carries partial updates; nil fields keep their
// prior values.
type UpdatePermissionRequest struct {
	DisplayName *string `json:"display_name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	IsActive    *bool   `json:"is_active"`
}

type permissionService struct {
	permissionRepo repository.PermissionRepository
}

func NewPermissionService(permissionRepo repository.PermissionRepository) PermissionService {
	return &permissionService{permissionRepo: permissionRepo}
}

func (s *permissionService) List(filter repository.PermissionFilter) ([]model.Permission, map[string][]model.Permission, error) {
	permissions, err := s.permissionRepo.FindAll(filter)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	grouped := make(map[string][]model.Permission)
	for _, p := range permissions {
		grouped[p.Category] = append(grouped[p.Category], p)
	}
	return permissions, grouped, nil
}

func (s *permissionService) Get(id uuid.UUID) (*model.Permission, int64, error) {
	permission, err := s.permissionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperr.NotFound("Permission not found")
		}
		return nil, 0, apperr.Internal(err)
	}

	roleCount, err := s.permissionRepo.CountRoles(permission.ID)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return permission, roleCount, nil
}

func (s *permissionService) Create(req *CreatePermissionRequest) (*model.Permission, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperr.Newf(apperr.KindInvalid, "Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	if !model.IsValidCategory(req.Category) {
		return nil, apperr.Newf(apperr.KindInvalid, "Invalid category '%s'", req.Category)
	}

	name := model.NormalizePermissionName(req.Name)
	if existing, _ := s.permissionRepo.FindByName(name); existing != nil {
		return nil, apperr.Conflict("Permission with this name already exists")
	}

	// Admin-created permissions are never system-protected.
	permission := &model.Permission{
		Name:        name,
		DisplayName: req.DisplayName,
		Description: req.Description,
		Category:    req.Category,
		IsSystem:    false,
		IsActive:    true,
	}
	if err := s.permissionRepo.Create(permission); err != nil {
		return nil, apperr.Internal(err)
	}
	return permission, nil
}

func (s *permissionService) Update(id uuid.UUID, req *UpdatePermissionRequest) (*model.Permission, error) {
	permission, err := s.permissionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Permission not found")
		}
		return nil, apperr.Internal(err)
	}

	if permission.IsSystem {
		return nil, apperr.Forbidden("System permissions cannot be modified")
	}

	if req.DisplayName != nil {
		permission.DisplayName = *req.DisplayName
	}
	if req.Description != nil {
		permission.Description = *req.Description
	}
	if req.Category != nil {
		if !model.IsValidCategory(*req.Category) {
			return nil, apperr.Newf(apperr.KindInvalid, "Invalid category '%s'", *req.Category)
		}
		permission.Category = *req.Category
	}
	if req.IsActive != nil {
		permission.IsActive = *req.IsActive
	}

	if err := s.permissionRepo.Save(permission); err != nil {
		return nil, apperr.Internal(err)
	}
	return permission, nil
}

func (s *permissionService) Delete(id uuid.UUID) error {
	permission, err := s.permissionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Permission not found")
		}
		return apperr.Internal(err)
	}

	if permission.IsSystem {
		return apperr.Forbidden("System permissions cannot be deleted")
	}

	roleCount, err := s.permissionRepo.CountRoles(permission.ID)
	if err != nil {
		return apperr.Internal(err)
	}
	if roleCount > 0 {
		return apperr.Newf(apperr.KindConflict,
			"Cannot delete permission. %d role(s) use this permission.", roleCount)
	}

	if err := s.permissionRepo.Delete(permission.ID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// SeedDefaults bootstraps the fixed catalog exactly once. A non-empty
// registry always refuses; there is no merge path.
func (s *permissionService) SeedDefaults() ([]model.Permission, error) {
	count, err := s.permissionRepo.Count()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if count > 0 {
		return nil, apperr.Conflict("Permissions already exist. Cannot seed.")
	}

	permissions := make([]model.Permission, len(model.DefaultPermissions))
	copy(permissions, model.DefaultPermissions)
	if err := s.permissionRepo.BulkCreate(permissions); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, fmt.Sprintf("failed to seed %d permissions", len(permissions)), err)
	}
	return permissions, nil
}
