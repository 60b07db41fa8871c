package config

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"trip_dispatch/internal/models"
)

func openMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestMigrateRecordsVersions(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, Migrate(db))

	var applied []SchemaMigration
	require.NoError(t, db.Order("version ASC").Find(&applied).Error)
	require.Len(t, applied, len(migrations))
	for i, m := range migrations {
		assert.Equal(t, m.version, applied[i].Version)
		assert.Equal(t, m.name, applied[i].Name)
		assert.False(t, applied[i].AppliedAt.IsZero())
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var versions int64
	require.NoError(t, db.Model(&SchemaMigration{}).Count(&versions).Error)
	assert.EqualValues(t, len(migrations), versions)

	// Seeds are not duplicated either
	var statuses int64
	require.NoError(t, db.Model(&models.TripStatus{}).Count(&statuses).Error)
	assert.EqualValues(t, 6, statuses)
	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 1, users)
}

func TestSeededTaxonomy(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, Migrate(db))

	var completed models.TripStatus
	require.NoError(t, db.Where("name = ?", "Completed").First(&completed).Error)
	assert.True(t, completed.PassengerCountRequired, "only Completed demands a passenger count")

	var others int64
	require.NoError(t, db.Model(&models.TripStatus{}).
		Where("passenger_count_required = ? AND name <> ?", true, "Completed").Count(&others).Error)
	assert.Zero(t, others)

	var enroute models.TripSubStatus
	require.NoError(t, db.Where("name = ?", "Enroute").First(&enroute).Error)
	assert.Equal(t, "Active", enroute.LinkedStatus)
}

func TestSeededAdminCredentials(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, Migrate(db))

	var admin models.User
	require.NoError(t, db.Where("email = ?", "admin@transport.com").First(&admin).Error)
	assert.Equal(t, "SUPER_ADMIN", admin.Role)
	require.NotNil(t, admin.RoleID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))
}
