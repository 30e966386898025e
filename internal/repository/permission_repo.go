package repository

import (
	"go-shop-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PermissionFilter narrows listing. Search is a case-insensitive substring
// match over name, display name and description.
type PermissionFilter struct {
	Search   string
	Category string
	IsActive *bool
}

type PermissionRepository interface {
	FindAll(filter PermissionFilter) ([]model.Permission, error)
	FindAllActive() ([]model.Permission, error)
	FindByID(id uuid.UUID) (*model.Permission, error)
	FindByName(name string) (*model.Permission, error)
	FindByNames(names []string) ([]model.Permission, error)
	Create(permission *model.Permission) error
	Save(permission *model.Permission) error
	Delete(id uuid.UUID) error
	Count() (int64, error)
	CountRoles(permissionID uuid.UUID) (int64, error)
	BulkCreate(permissions []model.Permission) error
}

type permissionRepo struct {
	db *gorm.DB
}

func NewPermissionRepo(db *gorm.DB) PermissionRepository {
	return &permissionRepo{db: db}
}

func (r *permissionRepo) FindAll(filter PermissionFilter) ([]model.Permission, error) {
	q := r.db.Model(&model.Permission{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("name ILIKE ? OR display_name ILIKE ? OR description ILIKE ?", like, like, like)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}

	var permissions []model.Permission
	err := q.Order("category asc, name asc").Find(&permissions).Error
	return permissions, err
}

func (r *permissionRepo) FindAllActive() ([]model.Permission, error) {
	var permissions []model.Permission
	err := r.db.Where("is_active = ?", true).Order("name asc").Find(&permissions).Error
	return permissions, err
}

func (r *permissionRepo) FindByID(id uuid.UUID) (*model.Permission, error) {
	var permission model.Permission
	if err := r.db.First(&permission, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &permission, nil
}

func (r *permissionRepo) FindByName(name string) (*model.Permission, error) {
	var permission model.Permission
	if err := r.db.Where("name = ?", name).First(&permission).Error; err != nil {
		return nil, err
	}
	return &permission, nil
}

func (r *permissionRepo) FindByNames(names []string) ([]model.Permission, error) {
	var permissions []model.Permission
	if len(names) == 0 {
		return permissions, nil
	}
	err := r.db.Where("name IN ?", names).Find(&permissions).Error
	return permissions, err
}

func (r *permissionRepo) Create(permission *model.Permission) error {
	return r.db.Create(permission).Error
}

func (r *permissionRepo) Save(permission *model.Permission) error {
	return r.db.Save(permission).Error
}

// Delete removes the row for good; a soft-deleted permission would keep its
// unique name reserved.
func (r *permissionRepo) Delete(id uuid.UUID) error {
	return r.db.Unscoped().Delete(&model.Permission{}, "id = ?", id).Error
}

func (r *permissionRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Permission{}).Count(&count).Error
	return count, err
}

// CountRoles reports how many roles reference the permission through the
// join table.
func (r *permissionRepo) CountRoles(permissionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Table("role_permissions").Where("permission_id = ?", permissionID).Count(&count).Error
	return count, err
}

func (r *permissionRepo) BulkCreate(permissions []model.Permission) error {
	return r.db.Create(&permissions).Error
}
