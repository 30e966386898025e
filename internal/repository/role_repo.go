package repository

import (
	"go-shop-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoleFilter struct {
	Search   string
	IsSystem *bool
	IsActive *bool
}

type RoleRepository interface {
	FindAll(filter RoleFilter) ([]model.Role, error)
	FindByID(id uuid.UUID) (*model.Role, error)
	FindByName(name string) (*model.Role, error)
	Create(role *model.Role) error
	Save(role *model.Role) error
	ReplacePermissions(role *model.Role, permissions []model.Permission) error
	Delete(role *model.Role) error
	Count() (int64, error)
	CountUsers(roleID uuid.UUID) (int64, error)
	FindUsers(roleID uuid.UUID, offset, limit int) ([]model.User, int64, error)
}

type roleRepo struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) FindAll(filter RoleFilter) ([]model.Role, error) {
	q := r.db.Model(&model.Role{}).Preload("Permissions")
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("name ILIKE ? OR display_name ILIKE ? OR description ILIKE ?", like, like, like)
	}
	if filter.IsSystem != nil {
		q = q.Where("is_system = ?", *filter.IsSystem)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}

	var roles []model.Role
	err := q.Order("priority desc, name asc").Find(&roles).Error
	return roles, err
}

func (r *roleRepo) FindByID(id uuid.UUID) (*model.Role, error) {
	var role model.Role
	if err := r.db.Preload("Permissions").First(&role, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) FindByName(name string) (*model.Role, error) {
	var role model.Role
	if err := r.db.Preload("Permissions").Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) Create(role *model.Role) error {
	return r.db.Create(role).Error
}

func (r *roleRepo) Save(role *model.Role) error {
	return r.db.Omit("Permissions").Save(role).Error
}

func (r *roleRepo) ReplacePermissions(role *model.Role, permissions []model.Permission) error {
	return r.db.Model(role).Association("Permissions").Replace(permissions)
}

// Delete clears the permission association rows, then removes the role for
// good (the unique name must be reusable).
func (r *roleRepo) Delete(role *model.Role) error {
	if err := r.db.Model(role).Association("Permissions").Clear(); err != nil {
		return err
	}
	return r.db.Unscoped().Delete(role).Error
}

func (r *roleRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Role{}).Count(&count).Error
	return count, err
}

func (r *roleRepo) CountUsers(roleID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("role_id = ?", roleID).Count(&count).Error
	return count, err
}

// FindUsers pages the role's members, newest first. Password never leaves the
// repository layer here.
func (r *roleRepo) FindUsers(roleID uuid.UUID, offset, limit int) ([]model.User, int64, error) {
	var total int64
	if err := r.db.Model(&model.User{}).Where("role_id = ?", roleID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := r.db.Omit("password").
		Where("role_id = ?", roleID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}
