package rbac

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"trip_dispatch/internal/apperrors"
	"trip_dispatch/internal/config"
	"trip_dispatch/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func TestPermissionsDefaultToNoAccess(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(db)

	role, err := resolver.CreateRole("Observer", "read-only staff")
	require.NoError(t, err)

	permissions, err := resolver.PermissionsFor(role.ID)
	require.NoError(t, err)
	require.Len(t, permissions, len(ModuleCodes))
	for _, code := range ModuleCodes {
		assert.False(t, permissions[code].View, "module %s", code)
		assert.False(t, permissions[code].Edit, "module %s", code)
	}
}

func TestUpdateRolePermissionsUpserts(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(db)

	role, err := resolver.CreateRole("Coordinator", "")
	require.NoError(t, err)

	require.NoError(t, resolver.UpdateRolePermissions(role.ID, []ModulePermission{
		{ModuleCode: "trips", CanView: true, CanEdit: true},
		{ModuleCode: "dashboard", CanView: true},
	}))

	permissions, err := resolver.PermissionsFor(role.ID)
	require.NoError(t, err)
	assert.True(t, permissions["trips"].Edit)
	assert.True(t, permissions["dashboard"].View)
	assert.False(t, permissions["dashboard"].Edit)
	assert.False(t, permissions["vehicles"].View, "unsubmitted cells stay denied")

	// Second submit for the same cell updates in place, no duplicate row
	require.NoError(t, resolver.UpdateRolePermissions(role.ID, []ModulePermission{
		{ModuleCode: "trips", CanView: true, CanEdit: false},
	}))

	canEdit, err := resolver.CanEdit(role.ID, "trips")
	require.NoError(t, err)
	assert.False(t, canEdit)

	var rows int64
	require.NoError(t, db.Model(&models.RolePermission{}).
		Where("role_id = ? AND module_code = ?", role.ID, "trips").Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestUpdateRolePermissionsUnknownRole(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(db)

	err := resolver.UpdateRolePermissions(4242, []ModulePermission{{ModuleCode: "trips"}})
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestDeleteSystemRoleRefused(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(db)

	var admin models.Role
	require.NoError(t, db.Where("name = ?", "Super Admin").First(&admin).Error)
	require.True(t, admin.IsSystemRole)

	err := resolver.DeleteRole(admin.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.Conflict, apperrors.KindOf(err))

	var still int64
	require.NoError(t, db.Model(&models.Role{}).Where("id = ?", admin.ID).Count(&still).Error)
	assert.EqualValues(t, 1, still)
}

func TestDeleteRoleRemovesPermissionRows(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(db)

	role, err := resolver.CreateRole("Temp", "")
	require.NoError(t, err)
	require.NoError(t, resolver.UpdateRolePermissions(role.ID, []ModulePermission{
		{ModuleCode: "trips", CanView: true},
	}))

	require.NoError(t, resolver.DeleteRole(role.ID))

	var orphans int64
	require.NoError(t, db.Model(&models.RolePermission{}).Where("role_id = ?", role.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)

	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(resolver.DeleteRole(role.ID)))
}

func TestCreateRoleDuplicateName(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(db)

	_, err := resolver.CreateRole("Dispatcher", "")
	assert.Equal(t, apperrors.Conflict, apperrors.KindOf(err), "seeded role name is taken")
}
