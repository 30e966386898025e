package model

import "strings"

// Permission is a named capability token admins grant through roles or
// per-user overrides. System permissions are seeded once and locked.
type Permission struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	DisplayName string `gorm:"type:varchar(255);not null" json:"display_name" validate:"required"`
	Description string `gorm:"type:text;not null" json:"description" validate:"required"`
	Category    string `gorm:"type:varchar(50);not null;index" json:"category" validate:"required"`
	IsSystem    bool   `gorm:"default:false" json:"is_system"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

// Wildcard grants every capability when present in an effective set.
const Wildcard = "*"

// Categories is the fixed set a permission may belong to.
var Categories = []string{
	"Dashboard",
	"Products",
	"Orders",
	"Users",
	"Inventory",
	"POS",
	"Reports",
	"Settings",
	"System",
	"Content",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// NormalizePermissionName produces the canonical key: lowercase with
// whitespace runs collapsed to single underscores.
func NormalizePermissionName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// NormalizeRoleName produces the canonical role key: uppercase with
// whitespace runs collapsed to single underscores.
func NormalizeRoleName(name string) string {
	return strings.Join(strings.Fields(strings.ToUpper(name)), "_")
}

// DefaultPermissions is the bootstrap catalog. Seeding refuses to run against
// a non-empty registry, so these exist exactly once.
var DefaultPermissions = []Permission{
	// Dashboard & analytics
	{Name: "view_dashboard", DisplayName: "View Dashboard", Description: "Access to main dashboard", Category: "Dashboard", IsSystem: true, IsActive: true},
	{Name: "view_analytics", DisplayName: "View Analytics", Description: "Access to analytics and insights", Category: "Dashboard", IsSystem: true, IsActive: true},
	{Name: "view_reports", DisplayName: "View Reports", Description: "Access to view reports", Category: "Reports", IsSystem: true, IsActive: true},
	{Name: "export_data", DisplayName: "Export Data", Description: "Export data to CSV/Excel", Category: "Reports", IsSystem: true, IsActive: true},

	// Product management
	{Name: "view_products", DisplayName: "View Products", Description: "View product listings", Category: "Products", IsSystem: true, IsActive: true},
	{Name: "create_products", DisplayName: "Create Products", Description: "Create new products", Category: "Products", IsSystem: true, IsActive: true},
	{Name: "edit_products", DisplayName: "Edit Products", Description: "Edit existing products", Category: "Products", IsSystem: true, IsActive: true},
	{Name: "delete_products", DisplayName: "Delete Products", Description: "Delete products", Category: "Products", IsSystem: true, IsActive: true},
	{Name: "manage_product_categories", DisplayName: "Manage Categories", Description: "Manage product categories", Category: "Products", IsSystem: true, IsActive: true},
	{Name: "manage_product_brands", DisplayName: "Manage Brands", Description: "Manage product brands", Category: "Products", IsSystem: true, IsActive: true},

	// Order management
	{Name: "view_orders", DisplayName: "View Orders", Description: "View order listings", Category: "Orders", IsSystem: true, IsActive: true},
	{Name: "create_orders", DisplayName: "Create Orders", Description: "Create new orders", Category: "Orders", IsSystem: true, IsActive: true},
	{Name: "edit_orders", DisplayName: "Edit Orders", Description: "Edit existing orders", Category: "Orders", IsSystem: true, IsActive: true},
	{Name: "delete_orders", DisplayName: "Delete Orders", Description: "Delete orders", Category: "Orders", IsSystem: true, IsActive: true},
	{Name: "process_orders", DisplayName: "Process Orders", Description: "Process and fulfill orders", Category: "Orders", IsSystem: true, IsActive: true},

	// User management
	{Name: "view_users", DisplayName: "View Users", Description: "View user listings", Category: "Users", IsSystem: true, IsActive: true},
	{Name: "create_users", DisplayName: "Create Users", Description: "Create new users", Category: "Users", IsSystem: true, IsActive: true},
	{Name: "edit_users", DisplayName: "Edit Users", Description: "Edit existing users", Category: "Users", IsSystem: true, IsActive: true},
	{Name: "delete_users", DisplayName: "Delete Users", Description: "Delete users", Category: "Users", IsSystem: true, IsActive: true},
	{Name: "manage_user_roles", DisplayName: "Manage User Roles", Description: "Assign roles to users", Category: "Users", IsSystem: true, IsActive: true},
	{Name: "view_customers", DisplayName: "View Customers", Description: "View customer accounts", Category: "Users", IsSystem: true, IsActive: true},

	// Inventory & suppliers
	{Name: "view_inventory", DisplayName: "View Inventory", Description: "View inventory levels", Category: "Inventory", IsSystem: true, IsActive: true},
	{Name: "manage_inventory", DisplayName: "Manage Inventory", Description: "Update inventory levels", Category: "Inventory", IsSystem: true, IsActive: true},
	{Name: "view_suppliers", DisplayName: "View Suppliers", Description: "View supplier listings", Category: "Inventory", IsSystem: true, IsActive: true},
	{Name: "manage_suppliers", DisplayName: "Manage Suppliers", Description: "Create and edit suppliers", Category: "Inventory", IsSystem: true, IsActive: true},

	// POS & sales
	{Name: "access_pos", DisplayName: "Access POS", Description: "Access point of sale system", Category: "POS", IsSystem: true, IsActive: true},
	{Name: "process_sales", DisplayName: "Process Sales", Description: "Process sales transactions", Category: "POS", IsSystem: true, IsActive: true},
	{Name: "manage_cash_register", DisplayName: "Manage Cash Register", Description: "Manage cash register operations", Category: "POS", IsSystem: true, IsActive: true},

	// Content & settings
	{Name: "manage_site_settings", DisplayName: "Manage Site Settings", Description: "Configure site settings", Category: "Settings", IsSystem: true, IsActive: true},
	{Name: "manage_banners", DisplayName: "Manage Banners", Description: "Create and edit banners", Category: "Content", IsSystem: true, IsActive: true},
	{Name: "manage_home_settings", DisplayName: "Manage Home Settings", Description: "Configure home page settings", Category: "Content", IsSystem: true, IsActive: true},
	{Name: "manage_coupons", DisplayName: "Manage Coupons", Description: "Create and edit discount coupons", Category: "Content", IsSystem: true, IsActive: true},
	{Name: "view_reviews", DisplayName: "View Reviews", Description: "View product reviews", Category: "Content", IsSystem: true, IsActive: true},
	{Name: "moderate_reviews", DisplayName: "Moderate Reviews", Description: "Approve or reject reviews", Category: "Content", IsSystem: true, IsActive: true},

	// System administration
	{Name: "manage_roles", DisplayName: "Manage Roles", Description: "Create and edit roles", Category: "System", IsSystem: true, IsActive: true},
	{Name: "manage_permissions", DisplayName: "Manage Permissions", Description: "Create and edit permissions", Category: "System", IsSystem: true, IsActive: true},
	{Name: "view_system_logs", DisplayName: "View System Logs", Description: "Access system logs", Category: "System", IsSystem: true, IsActive: true},
}
