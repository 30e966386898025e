package service

import (
	"errors"
	"strings"

	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/pkg/pagination"
	"go-shop-admin/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoleService interface {
	List(filter repository.RoleFilter) ([]model.RoleResponse, error)
	Get(id uuid.UUID) (*model.RoleResponse, error)
	Create(req *CreateRoleRequest, actorID uuid.UUID) (*model.RoleResponse, error)
	Update(id uuid.UUID, req *UpdateRoleRequest, actorID uuid.UUID) (*model.RoleResponse, error)
	Delete(id uuid.UUID) error
	ListUsers(id uuid.UUID, page pagination.Params) (*RoleUsersResult, error)
	SeedDefaults(actorID uuid.UUID) ([]model.RoleResponse, error)
}

type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required"`
	DisplayName string   `json:"display_name" validate:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
	Color       string   `json:"color"`
	Priority    int      `json:"priority"`
}

type UpdateRoleRequest struct {
	DisplayName *string  `json:"display_name"`
	Description *string  `json:"description"`
	Permissions []string `json:"permissions"`
	Color       *string  `json:"color"`
	Priority    *int     `json:"priority"`
	IsActive    *bool    `json:"is_active"`
}

type RoleUsersResult struct {
	Users       []model.UserResponse `json:"users"`
	Total       int64                `json:"total"`
	TotalPages  int                  `json:"total_pages"`
	CurrentPage int                  `json:"current_page"`
}

type roleService struct {
	roleRepo       repository.RoleRepository
	permissionRepo repository.PermissionRepository
}

func NewRoleService(roleRepo repository.RoleRepository, permissionRepo repository.PermissionRepository) RoleService {
	return &roleService{roleRepo: roleRepo, permissionRepo: permissionRepo}
}

func (s *roleService) List(filter repository.RoleFilter) ([]model.RoleResponse, error) {
	roles, err := s.roleRepo.FindAll(filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	responses := make([]model.RoleResponse, 0, len(roles))
	for i := range roles {
		userCount, err := s.roleRepo.CountUsers(roles[i].ID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		responses = append(responses, roles[i].ToResponse(userCount))
	}
	return responses, nil
}

func (s *roleService) Get(id uuid.UUID) (*model.RoleResponse, error) {
	role, err := s.roleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Role not found")
		}
		return nil, apperr.Internal(err)
	}

	userCount, err := s.roleRepo.CountUsers(role.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	resp := role.ToResponse(userCount)
	return &resp, nil
}

// resolvePermissions turns a set of permission names into rows, rejecting
// the whole request when any name is unknown.
func (s *roleService) resolvePermissions(names []string) ([]model.Permission, error) {
	if len(names) == 0 {
		return []model.Permission{}, nil
	}

	permissions, err := s.permissionRepo.FindByNames(names)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(permissions) != len(names) {
		found := make(map[string]bool, len(permissions))
		for _, p := range permissions {
			found[p.Name] = true
		}
		var missing []string
		for _, name := range names {
			if !found[name] {
				missing = append(missing, name)
			}
		}
		return nil, apperr.Newf(apperr.KindInvalid, "Unknown permissions: %s", strings.Join(missing, ", "))
	}
	return permissions, nil
}

func (s *roleService) Create(req *CreateRoleRequest, actorID uuid.UUID) (*model.RoleResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperr.Newf(apperr.KindInvalid, "Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	name := model.NormalizeRoleName(req.Name)
	if existing, _ := s.roleRepo.FindByName(name); existing != nil {
		return nil, apperr.Conflict("Role with this name already exists")
	}

	permissions, err := s.resolvePermissions(req.Permissions)
	if err != nil {
		return nil, err
	}

	color := req.Color
	if color == "" {
		color = "#6B7280"
	}

	role := &model.Role{
		Name:        name,
		DisplayName: req.DisplayName,
		Description: req.Description,
		Permissions: permissions,
		IsSystem:    false,
		Color:       color,
		Priority:    req.Priority,
		IsActive:    true,
		CreatedByID: &actorID,
	}
	if err := s.roleRepo.Create(role); err != nil {
		return nil, apperr.Internal(err)
	}

	resp := role.ToResponse(0)
	return &resp, nil
}

func (s *roleService) Update(id uuid.UUID, req *UpdateRoleRequest, actorID uuid.UUID) (*model.RoleResponse, error) {
	role, err := s.roleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Role not found")
		}
		return nil, apperr.Internal(err)
	}

	if role.IsSystem {
		return nil, apperr.Forbidden("System roles cannot be modified")
	}

	if req.DisplayName != nil {
		role.DisplayName = *req.DisplayName
	}
	if req.Description != nil {
		role.Description = *req.Description
	}
	if req.Color != nil {
		role.Color = *req.Color
	}
	if req.Priority != nil {
		role.Priority = *req.Priority
	}
	if req.IsActive != nil {
		role.IsActive = *req.IsActive
	}
	role.UpdatedByID = &actorID

	if req.Permissions != nil {
		permissions, err := s.resolvePermissions(req.Permissions)
		if err != nil {
			return nil, err
		}
		if err := s.roleRepo.ReplacePermissions(role, permissions); err != nil {
			return nil, apperr.Internal(err)
		}
		role.Permissions = permissions
	}

	if err := s.roleRepo.Save(role); err != nil {
		return nil, apperr.Internal(err)
	}

	userCount, err := s.roleRepo.CountUsers(role.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	resp := role.ToResponse(userCount)
	return &resp, nil
}

func (s *roleService) Delete(id uuid.UUID) error {
	role, err := s.roleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Role not found")
		}
		return apperr.Internal(err)
	}

	if role.IsSystem {
		return apperr.Forbidden("System roles cannot be deleted")
	}

	userCount, err := s.roleRepo.CountUsers(role.ID)
	if err != nil {
		return apperr.Internal(err)
	}
	if userCount > 0 {
		return apperr.Newf(apperr.KindConflict,
			"Cannot delete role. %d user(s) are assigned to this role.", userCount)
	}

	if err := s.roleRepo.Delete(role); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *roleService) ListUsers(id uuid.UUID, page pagination.Params) (*RoleUsersResult, error) {
	if _, err := s.roleRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Role not found")
		}
		return nil, apperr.Internal(err)
	}

	users, total, err := s.roleRepo.FindUsers(id, page.Offset, page.Limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	responses := make([]model.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	return &RoleUsersResult{
		Users:       responses,
		Total:       total,
		TotalPages:  pagination.TotalPages(total, page.Limit),
		CurrentPage: page.Page,
	}, nil
}

// SeedDefaults creates the built-in role set from the active permission
// catalog. Like permission seeding it refuses to run twice.
func (s *roleService) SeedDefaults(actorID uuid.UUID) ([]model.RoleResponse, error) {
	count, err := s.roleRepo.Count()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if count > 0 {
		return nil, apperr.Conflict("Roles already exist. Cannot seed.")
	}

	activePermissions, err := s.permissionRepo.FindAllActive()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	byName := make(map[string]model.Permission, len(activePermissions))
	for _, p := range activePermissions {
		byName[p.Name] = p
	}

	// Boot seeding runs with no acting user.
	var createdBy *uuid.UUID
	if actorID != uuid.Nil {
		createdBy = &actorID
	}

	responses := make([]model.RoleResponse, 0, len(model.DefaultRoles))
	for _, spec := range model.DefaultRoles {
		var permissions []model.Permission
		switch {
		case spec.AllActive && spec.ExcludeSubstring != "":
			for _, p := range activePermissions {
				if !strings.Contains(p.Name, spec.ExcludeSubstring) {
					permissions = append(permissions, p)
				}
			}
		case spec.AllActive:
			permissions = activePermissions
		default:
			// Curated lists tolerate names missing from the catalog so a
			// trimmed permission seed still yields a usable role set.
			for _, name := range spec.Permissions {
				if p, ok := byName[name]; ok {
					permissions = append(permissions, p)
				}
			}
		}

		role := &model.Role{
			Name:        spec.Name,
			DisplayName: spec.DisplayName,
			Description: spec.Description,
			Permissions: permissions,
			IsSystem:    true,
			Color:       spec.Color,
			Priority:    spec.Priority,
			IsActive:    true,
			CreatedByID: createdBy,
		}
		if err := s.roleRepo.Create(role); err != nil {
			return nil, apperr.Internal(err)
		}
		responses = append(responses, role.ToResponse(0))
	}
	return responses, nil
}
