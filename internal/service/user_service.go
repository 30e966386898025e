package service

import (
	"errors"

	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/pkg/pagination"
	"go-shop-admin/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	List(filter repository.UserFilter, page pagination.Params) (*UserListResult, error)
	Get(id uuid.UUID) (*model.UserResponse, error)
	Create(req *CreateUserRequest) (*model.UserResponse, error)
	Update(id uuid.UUID, req *UpdateUserRequest) (*model.UserResponse, error)
	UpdatePermissions(id uuid.UUID, req *UpdateUserPermissionsRequest) (*model.UserResponse, error)
	Delete(id uuid.UUID, actorID uuid.UUID) error
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone"`
	RoleID   string `json:"role_id" validate:"required,uuid_required"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Phone    *string `json:"phone"`
	RoleID   *string `json:"role_id"`
	IsActive *bool   `json:"is_active"`
}

// UpdateUserPermissionsRequest replaces the user's custom override list.
// An empty Permissions slice with HasCustomPermissions true means the user
// can do nothing; HasCustomPermissions false clears the override and the
// role bundle applies again.
type UpdateUserPermissionsRequest struct {
	Permissions          []string `json:"permissions"`
	HasCustomPermissions bool     `json:"has_custom_permissions"`
}

type UserListResult struct {
	Users       []model.UserResponse `json:"users"`
	Total       int64                `json:"total"`
	TotalPages  int                  `json:"total_pages"`
	CurrentPage int                  `json:"current_page"`
}

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) UserService {
	return &userService{userRepo: userRepo, roleRepo: roleRepo}
}

func (s *userService) List(filter repository.UserFilter, page pagination.Params) (*UserListResult, error) {
	users, total, err := s.userRepo.FindAll(filter, page.Offset, page.Limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	responses := make([]model.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	return &UserListResult{
		Users:       responses,
		Total:       total,
		TotalPages:  pagination.TotalPages(total, page.Limit),
		CurrentPage: page.Page,
	}, nil
}

func (s *userService) Get(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err)
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) resolveRole(roleID string) (*model.Role, error) {
	id, err := uuid.Parse(roleID)
	if err != nil {
		return nil, apperr.Invalid("Invalid role ID")
	}
	role, err := s.roleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Invalid("Role not found")
		}
		return nil, apperr.Internal(err)
	}
	return role, nil
}

func (s *userService) Create(req *CreateUserRequest) (*model.UserResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperr.Newf(apperr.KindInvalid, "Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, apperr.Conflict("User with this email already exists")
	}

	role, err := s.resolveRole(req.RoleID)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		RoleID:   role.ID,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperr.Internal(err)
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperr.Internal(err)
	}

	user.Role = role
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) Update(id uuid.UUID, req *UpdateUserRequest) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err)
	}

	if req.Email != nil && *req.Email != user.Email {
		if existing, _ := s.userRepo.FindByEmail(*req.Email); existing != nil {
			return nil, apperr.Conflict("User with this email already exists")
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.RoleID != nil {
		role, err := s.resolveRole(*req.RoleID)
		if err != nil {
			return nil, err
		}
		user.RoleID = role.ID
		user.Role = role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 8 {
			return nil, apperr.Invalid("Password must be at least 8 characters")
		}
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, apperr.Internal(err)
		}
	}

	if err := s.userRepo.Save(user); err != nil {
		return nil, apperr.Internal(err)
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) UpdatePermissions(id uuid.UUID, req *UpdateUserPermissionsRequest) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err)
	}

	// The override list is stored as entered. Tokens that do not match any
	// registered permission simply never grant anything.
	if req.HasCustomPermissions {
		permissions := req.Permissions
		if permissions == nil {
			permissions = []string{}
		}
		user.CustomPermissions = permissions
		user.HasCustomPermissions = true
	} else {
		user.CustomPermissions = nil
		user.HasCustomPermissions = false
	}

	if err := s.userRepo.Save(user); err != nil {
		return nil, apperr.Internal(err)
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) Delete(id uuid.UUID, actorID uuid.UUID) error {
	if id == actorID {
		return apperr.Forbidden("You cannot delete your own account")
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Internal(err)
	}

	if err := s.userRepo.Delete(user.ID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
