package middleware

import (
	"net/http/httptest"
	"testing"

	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"
	"go-shop-admin/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeUserRepo serves the single user it was built with.
type fakeUserRepo struct {
	user *model.User
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindAll(filter repository.UserFilter, offset, limit int) ([]model.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) Create(user *model.User) error { return nil }
func (f *fakeUserRepo) Save(user *model.User) error   { return nil }
func (f *fakeUserRepo) Delete(id uuid.UUID) error     { return nil }
func (f *fakeUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	return nil
}
func (f *fakeUserRepo) Count() (int64, error) { return 0, nil }

func newTestApp(user *model.User, guards ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{RequireAuth(&fakeUserRepo{user: user})}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/guarded", handlers...)
	return app
}

func testUser(permissions ...string) *model.User {
	user := &model.User{
		Name:     "Test User",
		Email:    "test@example.com",
		IsActive: true,
		Role:     &model.Role{Name: "TEST_ROLE"},
	}
	user.ID = uuid.New()
	for _, p := range permissions {
		user.Role.Permissions = append(user.Role.Permissions, model.Permission{Name: p})
	}
	return user
}

func tokenFor(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := jwt.GenerateToken(user.ID, user.Email, user.Name, user.Role.Name, nil)
	require.NoError(t, err)
	return token
}

func TestRequireAuth_MissingToken(t *testing.T) {
	app := newTestApp(testUser())

	req := httptest.NewRequest("GET", "/guarded", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	app := newTestApp(testUser())

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Token abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	app := newTestApp(testUser())

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	user := testUser()
	app := newTestApp(nil) // repo no longer knows the user

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, user))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_DeactivatedUser(t *testing.T) {
	user := testUser("view_products")
	user.IsActive = false
	app := newTestApp(user)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, user))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequirePermission_Forbidden(t *testing.T) {
	user := testUser("view_products")
	app := newTestApp(user, RequirePermission("manage_roles"))

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, user))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequirePermission_Granted(t *testing.T) {
	user := testUser("manage_roles")
	app := newTestApp(user, RequirePermission("manage_roles"))

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, user))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequirePermission_LiveResolution(t *testing.T) {
	// Permission claims baked into the token never matter; the middleware
	// resolves against the stored user.
	user := testUser() // no permissions in the database
	app := newTestApp(user, RequirePermission("manage_roles"))

	token, err := jwt.GenerateToken(user.ID, user.Email, user.Name, user.Role.Name, []string{"manage_roles"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireAnyPermission(t *testing.T) {
	user := testUser("access_pos")
	app := newTestApp(user, RequireAnyPermission("manage_roles", "access_pos"))

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, user))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequirePermission_WildcardOverride(t *testing.T) {
	user := testUser()
	user.HasCustomPermissions = true
	user.CustomPermissions = []string{model.Wildcard}
	app := newTestApp(user, RequirePermission("manage_roles"))

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, user))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
