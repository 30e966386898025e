package service

import (
	"errors"
	"time"

	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/authz"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/pkg/jwt"
	"go-shop-admin/pkg/validator"

	"gorm.io/gorm"
)

type AuthService interface {
	Login(req *LoginRequest) (*LoginResponse, error)
	ResetPassword(req *ResetPasswordRequest) error
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token       string             `json:"token"`
	User        model.UserResponse `json:"user"`
	Permissions []string           `json:"permissions"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(req *LoginRequest) (*LoginResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperr.Newf(apperr.KindInvalid, "Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthenticated("Invalid email or password")
		}
		return nil, apperr.Internal(err)
	}

	if !user.CheckPassword(req.Password) {
		return nil, apperr.Unauthenticated("Invalid email or password")
	}
	if !user.IsActive {
		return nil, apperr.Unauthenticated("Account is deactivated")
	}

	roleName := ""
	if user.Role != nil {
		roleName = user.Role.Name
	}
	permissions := authz.EffectivePermissions(user)

	token, err := jwt.GenerateToken(user.ID, user.Email, user.Name, roleName, permissions)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := time.Now()
	user.LastLogin = &now
	user.LoginCount++
	if err := s.userRepo.Save(user); err != nil {
		return nil, apperr.Internal(err)
	}

	return &LoginResponse{
		Token:       token,
		User:        user.ToResponse(),
		Permissions: permissions,
	}, nil
}

func (s *authService) ResetPassword(req *ResetPasswordRequest) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return apperr.Newf(apperr.KindInvalid, "Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Unauthenticated("Invalid email or password")
		}
		return apperr.Internal(err)
	}

	if !user.CheckPassword(req.OldPassword) {
		return apperr.Unauthenticated("Invalid email or password")
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return apperr.Internal(err)
	}
	if err := s.userRepo.UpdatePassword(user.ID, user.Password); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
