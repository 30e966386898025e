package model

import (
	"time"

	"github.com/google/uuid"
)

// Role bundles permission tokens for assignment to users. Permissions are a
// real many-to-many relation so a role can never cite a permission that does
// not exist; referential checks happen at the service boundary.
type Role struct {
	BaseModel
	Name        string       `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	DisplayName string       `gorm:"type:varchar(255);not null" json:"display_name" validate:"required"`
	Description string       `gorm:"type:text;not null" json:"description" validate:"required"`
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"-"`
	IsSystem    bool         `gorm:"default:false" json:"is_system"`
	Color       string       `gorm:"type:varchar(16);default:'#6B7280'" json:"color"`
	Priority    int          `gorm:"default:0" json:"priority"`
	IsActive    bool         `gorm:"default:true" json:"is_active"`

	// Audit only, not ownership
	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
}

// Canonical system role names
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleManager    = "MANAGER"
	RoleEmployee   = "EMPLOYEE"
	RoleCashier    = "CASHIER"
	RoleCustomer   = "CUSTOMER"
)

// PermissionNames returns the names of the role's permissions.
func (r *Role) PermissionNames() []string {
	names := make([]string, len(r.Permissions))
	for i, p := range r.Permissions {
		names[i] = p.Name
	}
	return names
}

// RoleResponse is the API shape: permissions flattened to names, user count
// annotated live.
type RoleResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name"`
	Description string     `json:"description"`
	Permissions []string   `json:"permissions"`
	IsSystem    bool       `json:"is_system"`
	Color       string     `json:"color"`
	Priority    int        `json:"priority"`
	IsActive    bool       `json:"is_active"`
	UserCount   int64      `json:"user_count"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty"`
	UpdatedBy   *uuid.UUID `json:"updated_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToResponse converts Role to RoleResponse with the given user count.
func (r *Role) ToResponse(userCount int64) RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		DisplayName: r.DisplayName,
		Description: r.Description,
		Permissions: r.PermissionNames(),
		IsSystem:    r.IsSystem,
		Color:       r.Color,
		Priority:    r.Priority,
		IsActive:    r.IsActive,
		UserCount:   userCount,
		CreatedBy:   r.CreatedByID,
		UpdatedBy:   r.UpdatedByID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// DefaultRoleSpec describes one seeded role. Permission sets are resolved
// against the live registry at seed time, so the permission seed must run
// first or these degrade to roles with no permissions.
type DefaultRoleSpec struct {
	Name        string
	DisplayName string
	Description string
	Color       string
	Priority    int
	// AllActive grants every active permission; ExcludeSubstring drops names
	// containing the substring from an AllActive grant.
	AllActive        bool
	ExcludeSubstring string
	Permissions      []string
}

var DefaultRoles = []DefaultRoleSpec{
	{
		Name:        RoleSuperAdmin,
		DisplayName: "Super Admin",
		Description: "Full system access with all permissions",
		Color:       "#9333EA",
		Priority:    100,
		AllActive:   true,
	},
	{
		Name:             RoleAdmin,
		DisplayName:      "Admin",
		Description:      "Administrative access with most permissions",
		Color:            "#DC2626",
		Priority:         90,
		AllActive:        true,
		ExcludeSubstring: "system",
	},
	{
		Name:        RoleManager,
		DisplayName: "Manager",
		Description: "Management level access",
		Color:       "#2563EB",
		Priority:    80,
		Permissions: []string{
			"view_dashboard",
			"view_products",
			"create_products",
			"edit_products",
			"view_orders",
			"edit_orders",
			"process_orders",
			"view_users",
			"view_inventory",
			"manage_inventory",
			"view_suppliers",
			"access_pos",
			"process_sales",
			"manage_cash_register",
			"view_reports",
			"view_analytics",
			"view_reviews",
			"moderate_reviews",
		},
	},
	{
		Name:        RoleEmployee,
		DisplayName: "Employee",
		Description: "Basic employee access",
		Color:       "#16A34A",
		Priority:    70,
		Permissions: []string{
			"view_dashboard",
			"view_products",
			"view_orders",
			"view_inventory",
			"access_pos",
			"process_sales",
			"view_reviews",
		},
	},
	{
		Name:        RoleCashier,
		DisplayName: "Cashier",
		Description: "POS and sales access",
		Color:       "#CA8A04",
		Priority:    60,
		Permissions: []string{"access_pos", "process_sales", "view_products", "view_inventory"},
	},
	{
		Name:        RoleCustomer,
		DisplayName: "Customer",
		Description: "Customer access",
		Color:       "#6B7280",
		Priority:    50,
		Permissions: []string{},
	},
}
