package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-shop-admin/internal/handler"
	"go-shop-admin/internal/middleware"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/internal/service"
	"go-shop-admin/internal/ws"
	"go-shop-admin/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Permission{}, &model.Role{}, &model.User{},
		&model.Product{}, &model.Supplier{}, &model.Sale{},
		&model.Cart{}, &model.CartItem{},
		&model.SiteSettings{}, &model.RegisterSession{},
	)

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	permissionRepo := repository.NewPermissionRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	cartRepo := repository.NewCartRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)
	registerRepo := repository.NewRegisterRepo(db)

	permissionService := service.NewPermissionService(permissionRepo)
	roleService := service.NewRoleService(roleRepo, permissionRepo)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, roleRepo)
	catalogService := service.NewCatalogService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	saleService := service.NewSaleService(db, saleRepo, productRepo, supplierRepo, registerRepo, wsHub)
	supplierService := service.NewSupplierService(supplierRepo, saleRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	registerService := service.NewRegisterService(registerRepo, saleRepo, wsHub)

	// 5. Seed permissions, roles and the admin account on an empty database
	seedDefaults(permissionService, roleService, roleRepo, userRepo)

	permissionHandler := handler.NewPermissionHandler(permissionService)
	roleHandler := handler.NewRoleHandler(roleService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService)
	saleHandler := handler.NewSaleHandler(saleService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	registerHandler := handler.NewRegisterHandler(registerService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Shop Admin API v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Get("/auth/me", authHandler.Me)

	// Permission registry
	protected.Get("/permissions", middleware.RequireAnyPermission("manage_permissions", "manage_roles"), permissionHandler.List)
	protected.Get("/permissions/categories", middleware.RequireAnyPermission("manage_permissions", "manage_roles"), permissionHandler.ListCategories)
	protected.Get("/permissions/:id", middleware.RequireAnyPermission("manage_permissions", "manage_roles"), permissionHandler.Get)
	protected.Post("/permissions", middleware.RequirePermission("manage_permissions"), permissionHandler.Create)
	protected.Post("/permissions/seed", middleware.RequirePermission("manage_permissions"), permissionHandler.Seed)
	protected.Put("/permissions/:id", middleware.RequirePermission("manage_permissions"), permissionHandler.Update)
	protected.Delete("/permissions/:id", middleware.RequirePermission("manage_permissions"), permissionHandler.Delete)

	// Role registry
	protected.Get("/roles", middleware.RequireAnyPermission("manage_roles", "manage_user_roles"), roleHandler.List)
	protected.Get("/roles/:id", middleware.RequireAnyPermission("manage_roles", "manage_user_roles"), roleHandler.Get)
	protected.Get("/roles/:id/users", middleware.RequirePermission("manage_roles"), roleHandler.ListUsers)
	protected.Post("/roles", middleware.RequirePermission("manage_roles"), roleHandler.Create)
	protected.Post("/roles/seed", middleware.RequirePermission("manage_roles"), roleHandler.Seed)
	protected.Put("/roles/:id", middleware.RequirePermission("manage_roles"), roleHandler.Update)
	protected.Delete("/roles/:id", middleware.RequirePermission("manage_roles"), roleHandler.Delete)

	// User management
	protected.Get("/users", middleware.RequirePermission("view_users"), userHandler.List)
	protected.Get("/users/:id", middleware.RequirePermission("view_users"), userHandler.Get)
	protected.Post("/users", middleware.RequirePermission("create_users"), userHandler.Create)
	protected.Put("/users/:id", middleware.RequirePermission("edit_users"), userHandler.Update)
	protected.Put("/users/:id/permissions", middleware.RequirePermission("manage_user_roles"), userHandler.UpdatePermissions)
	protected.Delete("/users/:id", middleware.RequirePermission("delete_users"), userHandler.Delete)

	// Product catalog
	protected.Get("/products", middleware.RequirePermission("view_products"), productHandler.List)
	protected.Get("/products/slug/:slug", middleware.RequirePermission("view_products"), productHandler.GetBySlug)
	protected.Get("/products/:id", middleware.RequirePermission("view_products"), productHandler.Get)
	protected.Post("/products", middleware.RequirePermission("create_products"), productHandler.Create)
	protected.Put("/products/:id", middleware.RequirePermission("edit_products"), productHandler.Update)
	protected.Delete("/products/:id", middleware.RequirePermission("delete_products"), productHandler.Delete)

	// Cart (any authenticated user operates on their own cart)
	protected.Get("/cart", cartHandler.Get)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Put("/cart/items/:itemId", cartHandler.UpdateItem)
	protected.Delete("/cart/items/:itemId", cartHandler.RemoveItem)
	protected.Delete("/cart", cartHandler.Clear)

	// Sales and purchases
	protected.Get("/sales", middleware.RequirePermission("view_orders"), saleHandler.List)
	protected.Get("/sales/summary", middleware.RequireAnyPermission("view_reports", "view_analytics"), saleHandler.Summary)
	protected.Get("/sales/:id", middleware.RequirePermission("view_orders"), saleHandler.Get)
	protected.Post("/sales", middleware.RequirePermission("process_sales"), saleHandler.Record)

	// Suppliers
	protected.Get("/suppliers", middleware.RequirePermission("view_suppliers"), supplierHandler.List)
	protected.Get("/suppliers/:id", middleware.RequirePermission("view_suppliers"), supplierHandler.Get)
	protected.Post("/suppliers", middleware.RequirePermission("manage_suppliers"), supplierHandler.Create)
	protected.Put("/suppliers/:id", middleware.RequirePermission("manage_suppliers"), supplierHandler.Update)
	protected.Delete("/suppliers/:id", middleware.RequirePermission("manage_suppliers"), supplierHandler.Delete)

	// Site settings
	protected.Get("/settings", middleware.RequirePermission("manage_site_settings"), settingsHandler.Get)
	protected.Put("/settings", middleware.RequirePermission("manage_site_settings"), settingsHandler.Update)

	// Register sessions
	protected.Get("/register/current", middleware.RequirePermission("access_pos"), registerHandler.Current)
	protected.Get("/register/sessions", middleware.RequirePermission("access_pos"), registerHandler.List)
	protected.Post("/register/open", middleware.RequirePermission("access_pos"), registerHandler.Open)
	protected.Post("/register/close", middleware.RequirePermission("access_pos"), registerHandler.Close)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedDefaults bootstraps permissions, roles and an initial admin account.
// Each step refuses on a non-empty table, so reboots are no-ops.
func seedDefaults(permissionService service.PermissionService, roleService service.RoleService, roleRepo repository.RoleRepository, userRepo repository.UserRepository) {
	system := uuid.Nil

	if _, err := permissionService.SeedDefaults(); err != nil {
		log.Printf("Permission seed skipped: %v", err)
	} else {
		log.Println("Default permissions seeded")
	}

	if _, err := roleService.SeedDefaults(system); err != nil {
		log.Printf("Role seed skipped: %v", err)
	} else {
		log.Println("Default roles seeded")
	}

	if _, err := userRepo.FindByEmail("admin@example.com"); err == nil {
		return
	}

	superAdmin, err := roleRepo.FindByName(model.RoleSuperAdmin)
	if err != nil {
		log.Printf("Warning: SUPER_ADMIN role missing, admin user not created: %v", err)
		return
	}

	admin := &model.User{
		Name:     "Administrator",
		Email:    "admin@example.com",
		RoleID:   superAdmin.ID,
		IsActive: true,
	}
	if err := admin.SetPassword("admin123"); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
		return
	}
	log.Println("Admin user created: admin@example.com / admin123 (SUPER_ADMIN)")
}
