package service

import (
	"strings"
	"testing"

	"go-shop-admin/internal/apperr"
	"go-shop-admin/internal/model"
	"go-shop-admin/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRoleRepo is an in-memory RoleRepository for service tests.
type fakeRoleRepo struct {
	roles      map[uuid.UUID]*model.Role
	userCounts map[uuid.UUID]int64
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{
		roles:      make(map[uuid.UUID]*model.Role),
		userCounts: make(map[uuid.UUID]int64),
	}
}

func (f *fakeRoleRepo) add(r model.Role) *model.Role {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	f.roles[r.ID] = &r
	return &r
}

func (f *fakeRoleRepo) FindAll(filter repository.RoleFilter) ([]model.Role, error) {
	var out []model.Role
	for _, r := range f.roles {
		if filter.IsActive != nil && r.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRoleRepo) FindByID(id uuid.UUID) (*model.Role, error) {
	r, ok := f.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoleRepo) FindByName(name string) (*model.Role, error) {
	for _, r := range f.roles {
		if r.Name == name {
			cp := *r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRoleRepo) Create(r *model.Role) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	cp := *r
	f.roles[r.ID] = &cp
	return nil
}

func (f *fakeRoleRepo) Save(r *model.Role) error {
	cp := *r
	f.roles[r.ID] = &cp
	return nil
}

func (f *fakeRoleRepo) ReplacePermissions(r *model.Role, permissions []model.Permission) error {
	if stored, ok := f.roles[r.ID]; ok {
		stored.Permissions = permissions
	}
	return nil
}

func (f *fakeRoleRepo) Delete(r *model.Role) error {
	delete(f.roles, r.ID)
	return nil
}

func (f *fakeRoleRepo) Count() (int64, error) {
	return int64(len(f.roles)), nil
}

func (f *fakeRoleRepo) CountUsers(roleID uuid.UUID) (int64, error) {
	return f.userCounts[roleID], nil
}

func (f *fakeRoleRepo) FindUsers(roleID uuid.UUID, offset, limit int) ([]model.User, int64, error) {
	return nil, 0, nil
}

func seededPermissionRepo(t *testing.T) *fakePermissionRepo {
	t.Helper()
	repo := newFakePermissionRepo()
	require.NoError(t, repo.BulkCreate(append([]model.Permission(nil), model.DefaultPermissions...)))
	return repo
}

func TestRoleCreate_NormalizesName(t *testing.T) {
	roleRepo := newFakeRoleRepo()
	svc := NewRoleService(roleRepo, seededPermissionRepo(t))

	role, err := svc.Create(&CreateRoleRequest{
		Name:        "store manager",
		DisplayName: "Store Manager",
		Permissions: []string{"view_products", "edit_products"},
	}, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "STORE_MANAGER", role.Name)
	assert.ElementsMatch(t, []string{"view_products", "edit_products"}, role.Permissions)
	assert.False(t, role.IsSystem)
}

func TestRoleCreate_UnknownPermissionRejectsWholeRequest(t *testing.T) {
	roleRepo := newFakeRoleRepo()
	svc := NewRoleService(roleRepo, seededPermissionRepo(t))

	_, err := svc.Create(&CreateRoleRequest{
		Name:        "AUDITOR",
		DisplayName: "Auditor",
		Permissions: []string{"view_products", "no_such_token"},
	}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	assert.Contains(t, apperr.Message(err), "no_such_token")
	assert.Empty(t, roleRepo.roles, "nothing may be created on partial failure")
}

func TestRoleCreate_DuplicateName(t *testing.T) {
	roleRepo := newFakeRoleRepo()
	roleRepo.add(model.Role{Name: "AUDITOR", DisplayName: "Auditor"})
	svc := NewRoleService(roleRepo, seededPermissionRepo(t))

	_, err := svc.Create(&CreateRoleRequest{Name: "auditor", DisplayName: "Auditor"}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRoleUpdate_SystemProtected(t *testing.T) {
	roleRepo := newFakeRoleRepo()
	role := roleRepo.add(model.Role{Name: model.RoleSuperAdmin, DisplayName: "Super Admin", IsSystem: true})
	svc := NewRoleService(roleRepo, seededPermissionRepo(t))

	name := "Renamed"
	_, err := svc.Update(role.ID, &UpdateRoleRequest{DisplayName: &name}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestRoleDelete_BlockedWhenAssigned(t *testing.T) {
	roleRepo := newFakeRoleRepo()
	role := roleRepo.add(model.Role{Name: "AUDITOR", DisplayName: "Auditor"})
	roleRepo.userCounts[role.ID] = 2
	svc := NewRoleService(roleRepo, seededPermissionRepo(t))

	err := svc.Delete(role.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Contains(t, apperr.Message(err), "2 user(s)")
}

func TestRoleDelete_SystemProtected(t *testing.T) {
	roleRepo := newFakeRoleRepo()
	role := roleRepo.add(model.Role{Name: model.RoleSuperAdmin, DisplayName: "Super Admin", IsSystem: true})
	svc := NewRoleService(roleRepo, seededPermissionRepo(t))

	err := svc.Delete(role.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestRoleSeed_DerivedPermissionSets(t *testing.T) {
	roleRepo := newFakeRoleRepo()
	permissionRepo := seededPermissionRepo(t)
	svc := NewRoleService(roleRepo, permissionRepo)

	roles, err := svc.SeedDefaults(uuid.New())
	require.NoError(t, err)
	require.Len(t, roles, 6)

	byName := make(map[string]model.RoleResponse)
	for _, r := range roles {
		byName[r.Name] = r
		assert.True(t, r.IsSystem)
	}

	superAdmin := byName[model.RoleSuperAdmin]
	assert.Len(t, superAdmin.Permissions, len(model.DefaultPermissions))

	admin := byName[model.RoleAdmin]
	assert.NotEmpty(t, admin.Permissions)
	for _, name := range admin.Permissions {
		assert.False(t, strings.Contains(name, "system"), "ADMIN must not hold %s", name)
	}
	assert.Less(t, len(admin.Permissions), len(superAdmin.Permissions))

	assert.Empty(t, byName[model.RoleCustomer].Permissions)
}

func TestRoleSeed_OnceOnly(t *testing.T) {
	roleRepo := newFakeRoleRepo()
	svc := NewRoleService(roleRepo, seededPermissionRepo(t))

	_, err := svc.SeedDefaults(uuid.New())
	require.NoError(t, err)

	_, err = svc.SeedDefaults(uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}
