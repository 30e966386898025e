package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// User is an authenticated account. Every user has exactly one role;
// CustomPermissions replaces (never merges with) the role's bundle when
// HasCustomPermissions is set. The override list is stored verbatim and is
// not checked against the permission registry.
type User struct {
	BaseModel
	Name                 string         `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email                string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password             string         `gorm:"type:varchar(255);not null" json:"-"`
	Phone                string         `gorm:"type:varchar(32)" json:"phone"`
	RoleID               uuid.UUID      `gorm:"type:uuid;not null;index" json:"role_id"`
	Role                 *Role          `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	CustomPermissions    pq.StringArray `gorm:"type:text[]" json:"custom_permissions"`
	HasCustomPermissions bool           `gorm:"default:false" json:"has_custom_permissions"`
	IsActive             bool           `gorm:"default:true" json:"is_active"`
	EmailVerified        bool           `gorm:"default:false" json:"email_verified"`
	LastLogin            *time.Time     `json:"last_login,omitempty"`
	LoginCount           int            `gorm:"default:0" json:"login_count"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID                   uuid.UUID  `json:"id"`
	Name                 string     `json:"name"`
	Email                string     `json:"email"`
	Phone                string     `json:"phone,omitempty"`
	RoleID               uuid.UUID  `json:"role_id"`
	Role                 *Role      `json:"role,omitempty"`
	CustomPermissions    []string   `json:"custom_permissions"`
	HasCustomPermissions bool       `json:"has_custom_permissions"`
	IsActive             bool       `json:"is_active"`
	EmailVerified        bool       `json:"email_verified"`
	LastLogin            *time.Time `json:"last_login,omitempty"`
	LoginCount           int        `json:"login_count"`
	CreatedAt            time.Time  `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:                   u.ID,
		Name:                 u.Name,
		Email:                u.Email,
		Phone:                u.Phone,
		RoleID:               u.RoleID,
		Role:                 u.Role,
		CustomPermissions:    u.CustomPermissions,
		HasCustomPermissions: u.HasCustomPermissions,
		IsActive:             u.IsActive,
		EmailVerified:        u.EmailVerified,
		LastLogin:            u.LastLogin,
		LoginCount:           u.LoginCount,
		CreatedAt:            u.CreatedAt,
	}
}
