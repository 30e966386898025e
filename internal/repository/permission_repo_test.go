package repository

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB wraps sqlmock with GORM for repository tests.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 mockDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)

	return gormDB, mock
}

func TestPermissionRepo_FindByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPermissionRepo(db)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "name", "display_name", "category", "is_system", "is_active"}).
		AddRow(id, "view_products", "View Products", "Products", true, true)
	mock.ExpectQuery(`SELECT .* FROM "permissions"`).
		WithArgs("view_products", 1).
		WillReturnRows(rows)

	permission, err := repo.FindByName("view_products")
	require.NoError(t, err)
	assert.Equal(t, id, permission.ID)
	assert.True(t, permission.IsSystem)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionRepo_FindByName_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPermissionRepo(db)

	mock.ExpectQuery(`SELECT .* FROM "permissions"`).
		WithArgs("no_such_permission", 1).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByName("no_such_permission")
	assert.Error(t, err)
}

func TestPermissionRepo_CountRoles(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPermissionRepo(db)

	permissionID := uuid.New()
	rows := sqlmock.NewRows([]string{"count"}).AddRow(int64(4))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "role_permissions"`).
		WithArgs(permissionID).
		WillReturnRows(rows)

	count, err := repo.CountRoles(permissionID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionRepo_Count(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPermissionRepo(db)

	rows := sqlmock.NewRows([]string{"count"}).AddRow(int64(37))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "permissions"`).
		WillReturnRows(rows)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(37), count)
}
