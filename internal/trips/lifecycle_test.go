package trips

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"trip_dispatch/internal/apperrors"
	"trip_dispatch/internal/config"
	"trip_dispatch/internal/models"
	"trip_dispatch/internal/taxonomy"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func newLifecycle(t *testing.T) (*gorm.DB, *Lifecycle) {
	t.Helper()
	db := newTestDB(t)
	return db, NewLifecycle(db, taxonomy.NewRegistry(db))
}

func baseTrip() models.Trip {
	return models.Trip{
		RouteCode: "R42",
		StartTime: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func historyCount(t *testing.T, db *gorm.DB, tripID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.TripStatusHistory{}).Where("trip_id = ?", tripID).Count(&n).Error)
	return n
}

func TestCreateRecordsInitialHistory(t *testing.T) {
	db, lc := newLifecycle(t)

	trip := baseTrip()
	require.NoError(t, lc.Create(&trip))
	require.NotZero(t, trip.ID)

	assert.Equal(t, "Planned", trip.Status)
	assert.Equal(t, "Scheduled", trip.SubStatus)

	var rows []models.TripStatusHistory
	require.NoError(t, db.Where("trip_id = ?", trip.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "Planned", rows[0].Status)
	assert.Equal(t, "Scheduled", rows[0].SubStatus)
	assert.Nil(t, rows[0].BreakdownIssue)
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	_, lc := newLifecycle(t)

	trip := baseTrip()
	trip.Status = "Teleporting"
	err := lc.Create(&trip)
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidState, apperrors.KindOf(err))
}

func TestApplyStatusChangeAppendsHistory(t *testing.T) {
	db, lc := newLifecycle(t)

	trip := baseTrip()
	require.NoError(t, lc.Create(&trip))

	sub := "Enroute"
	require.NoError(t, lc.ApplyStatusChange(trip.ID, "Active", &sub, nil))
	assert.EqualValues(t, 2, historyCount(t, db, trip.ID))

	var reread models.Trip
	require.NoError(t, db.First(&reread, trip.ID).Error)
	assert.Equal(t, "Active", reread.Status)
	assert.Equal(t, "Enroute", reread.SubStatus)
}

func TestApplyStatusChangeIdempotent(t *testing.T) {
	db, lc := newLifecycle(t)

	trip := baseTrip()
	require.NoError(t, lc.Create(&trip))

	sub := "Enroute"
	require.NoError(t, lc.ApplyStatusChange(trip.ID, "Active", &sub, nil))
	// Same triple again: no-op, no new history row
	require.NoError(t, lc.ApplyStatusChange(trip.ID, "Active", &sub, nil))
	require.NoError(t, lc.ApplyStatusChange(trip.ID, "Active", &sub, nil))
	assert.EqualValues(t, 2, historyCount(t, db, trip.ID))
}

func TestApplyStatusChangeCountsRevisits(t *testing.T) {
	db, lc := newLifecycle(t)

	trip := baseTrip()
	require.NoError(t, lc.Create(&trip)) // Planned/Scheduled -> row 1

	enroute := "Enroute"
	scheduled := "Scheduled"
	require.NoError(t, lc.ApplyStatusChange(trip.ID, "Active", &enroute, nil))   // row 2
	require.NoError(t, lc.ApplyStatusChange(trip.ID, "Planned", &scheduled, nil)) // back again -> row 3
	require.NoError(t, lc.ApplyStatusChange(trip.ID, "Active", &enroute, nil))   // row 4

	assert.EqualValues(t, 4, historyCount(t, db, trip.ID))
}

func TestApplyStatusChangeBreakdownIssueAlone(t *testing.T) {
	db, lc := newLifecycle(t)

	trip := baseTrip()
	require.NoError(t, lc.Create(&trip))

	issue := "Flat tyre"
	sub := "Scheduled"
	// Only the breakdown issue differs from the current triple
	require.NoError(t, lc.ApplyStatusChange(trip.ID, "Planned", &sub, &issue))
	assert.EqualValues(t, 2, historyCount(t, db, trip.ID))

	var rows []models.TripStatusHistory
	require.NoError(t, db.Where("trip_id = ?", trip.ID).Order("changed_at ASC, id ASC").Find(&rows).Error)
	require.NotNil(t, rows[1].BreakdownIssue)
	assert.Equal(t, "Flat tyre", *rows[1].BreakdownIssue)
}

func TestApplyStatusChangeNilSubStatusStoredEmpty(t *testing.T) {
	db, lc := newLifecycle(t)

	trip := baseTrip()
	require.NoError(t, lc.Create(&trip))

	require.NoError(t, lc.ApplyStatusChange(trip.ID, "Cancelled", nil, nil))

	var reread models.Trip
	require.NoError(t, db.First(&reread, trip.ID).Error)
	assert.Equal(t, "Cancelled", reread.Status)
	assert.Equal(t, "", reread.SubStatus)
}

func TestApplyStatusChangeUnknownStatus(t *testing.T) {
	_, lc := newLifecycle(t)

	trip := baseTrip()
	require.NoError(t, lc.Create(&trip))

	err := lc.ApplyStatusChange(trip.ID, "Hovering", nil, nil)
	assert.Equal(t, apperrors.InvalidState, apperrors.KindOf(err))
}

func TestApplyStatusChangeMissingTrip(t *testing.T) {
	_, lc := newLifecycle(t)

	err := lc.ApplyStatusChange(12345, "Active", nil, nil)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestUpdateHistoryOnlyWhenTripleChanges(t *testing.T) {
	db, lc := newLifecycle(t)

	trip := baseTrip()
	require.NoError(t, lc.Create(&trip))

	// Editing route/times alone must not touch the history log
	edited := trip
	edited.RouteCode = "R43"
	require.NoError(t, lc.Update(trip.ID, edited))
	assert.EqualValues(t, 1, historyCount(t, db, trip.ID))

	edited.Status = "Active"
	edited.SubStatus = "Enroute"
	require.NoError(t, lc.Update(trip.ID, edited))
	assert.EqualValues(t, 2, historyCount(t, db, trip.ID))
}

func TestUpdateMissingTrip(t *testing.T) {
	_, lc := newLifecycle(t)

	err := lc.Update(999, baseTrip())
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestDriverFlagSideEffect(t *testing.T) {
	db, lc := newLifecycle(t)

	profile := models.Profile{Name: "Dana", Phone: "0712000000"}
	require.NoError(t, db.Create(&profile).Error)
	require.False(t, profile.IsDriver)

	trip := baseTrip()
	trip.DriverID = &profile.ID
	require.NoError(t, lc.Create(&trip))

	var reread models.Profile
	require.NoError(t, db.First(&reread, profile.ID).Error)
	assert.True(t, reread.IsDriver)
}
