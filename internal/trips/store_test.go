package trips

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"trip_dispatch/internal/apperrors"
	"trip_dispatch/internal/models"
	"trip_dispatch/internal/taxonomy"
)

// seedDispatchWorld creates one region with a venue, two locations, a
// vehicle and two staff profiles, plus two trips between them.
func seedDispatchWorld(t *testing.T, db *gorm.DB) (models.Region, []models.Trip) {
	t.Helper()

	region := models.Region{Name: "Nairobi"}
	require.NoError(t, db.Create(&region).Error)
	venue := models.Venue{Name: "Main Hall", RegionID: region.ID}
	require.NoError(t, db.Create(&venue).Error)
	lobby := models.Location{Name: "Lobby A", VenueID: &venue.ID, RegionID: region.ID}
	require.NoError(t, db.Create(&lobby).Error)
	gate := models.Location{Name: "North Gate", RegionID: region.ID}
	require.NoError(t, db.Create(&gate).Error)

	vehicle := models.Vehicle{Type: "Bus", Registration: "KDA 123X", Capacity: 40}
	require.NoError(t, db.Create(&vehicle).Error)
	volunteer := models.Profile{Name: "Amina", Phone: "0712345678"}
	require.NoError(t, db.Create(&volunteer).Error)
	driver := models.Profile{Name: "Otieno", Phone: "0798765432"}
	require.NoError(t, db.Create(&driver).Error)

	lc := NewLifecycle(db, taxonomy.NewRegistry(db))
	first := models.Trip{
		RouteCode:     "RT-100",
		OriginID:      &gate.ID,
		DestinationID: &lobby.ID,
		RegionID:      &region.ID,
		StartTime:     time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		VehicleID:     &vehicle.ID,
		VolunteerID:   &volunteer.ID,
		DriverID:      &driver.ID,
	}
	require.NoError(t, lc.Create(&first))

	second := models.Trip{
		RouteCode: "RT-200",
		StartTime: time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, lc.Create(&second))

	return region, []models.Trip{first, second}
}

func TestListJoinsDisplayNames(t *testing.T) {
	db := newTestDB(t)
	_, seeded := seedDispatchWorld(t, db)

	store := NewStore(db)
	results, err := store.List("", nil, -1, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Newest start_time first
	assert.Equal(t, "RT-200", results[0].RouteCode)

	var detail *TripDetails
	for i := range results {
		if results[i].ID == seeded[0].ID {
			detail = &results[i]
		}
	}
	require.NotNil(t, detail)
	require.NotNil(t, detail.VolunteerName)
	assert.Equal(t, "Amina", *detail.VolunteerName)
	require.NotNil(t, detail.DriverName)
	assert.Equal(t, "Otieno", *detail.DriverName)
	require.NotNil(t, detail.VehicleRegistration)
	assert.Equal(t, "KDA 123X", *detail.VehicleRegistration)
	require.NotNil(t, detail.OriginName)
	assert.Equal(t, "North Gate", *detail.OriginName)
	require.NotNil(t, detail.DestinationName)
	assert.Equal(t, "Lobby A", *detail.DestinationName)
	require.NotNil(t, detail.DestinationVenueName)
	assert.Equal(t, "Main Hall", *detail.DestinationVenueName)
}

func TestListSearchAcrossJoinedColumns(t *testing.T) {
	db := newTestDB(t)
	seedDispatchWorld(t, db)
	store := NewStore(db)

	for _, term := range []string{"RT-100", "Amina", "Otieno", "KDA", "North", "Lobby"} {
		results, err := store.List(term, nil, -1, 0)
		require.NoError(t, err)
		require.Len(t, results, 1, "search %q", term)
		assert.Equal(t, "RT-100", results[0].RouteCode)
	}

	// Multi-term search: all terms must match
	results, err := store.List("Amina RT-200", nil, -1, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestListRegionScopeAndPaging(t *testing.T) {
	db := newTestDB(t)
	region, _ := seedDispatchWorld(t, db)
	store := NewStore(db)

	scoped, err := store.List("", &region.ID, -1, 0)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "RT-100", scoped[0].RouteCode)

	page, err := store.List("", nil, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "RT-100", page[0].RouteCode)
}

func TestCountMatchesListFilters(t *testing.T) {
	db := newTestDB(t)
	region, _ := seedDispatchWorld(t, db)
	store := NewStore(db)

	total, err := store.Count("", nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	scoped, err := store.Count("", &region.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, scoped)

	searched, err := store.Count("Amina", nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, searched)
}

func TestGetNotFound(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)

	_, err := store.Get(777)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestTouchingLocation(t *testing.T) {
	db := newTestDB(t)
	_, seeded := seedDispatchWorld(t, db)
	store := NewStore(db)

	results, err := store.TouchingLocation(*seeded[0].DestinationID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, seeded[0].ID, results[0].ID)

	none, err := store.TouchingLocation(9999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestHistoryOrderedOldestFirst(t *testing.T) {
	db := newTestDB(t)
	_, seeded := seedDispatchWorld(t, db)
	store := NewStore(db)
	lc := NewLifecycle(db, taxonomy.NewRegistry(db))

	sub := "Enroute"
	require.NoError(t, lc.ApplyStatusChange(seeded[0].ID, "Active", &sub, nil))

	rows, err := store.History(seeded[0].ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Planned", rows[0].Status)
	assert.Equal(t, "Active", rows[1].Status)
}

func TestDeletePurgesHistory(t *testing.T) {
	db := newTestDB(t)
	_, seeded := seedDispatchWorld(t, db)
	store := NewStore(db)

	require.NoError(t, store.Delete(seeded[0].ID))

	var trips int64
	require.NoError(t, db.Model(&models.Trip{}).Where("id = ?", seeded[0].ID).Count(&trips).Error)
	assert.Zero(t, trips)

	var history int64
	require.NoError(t, db.Model(&models.TripStatusHistory{}).Where("trip_id = ?", seeded[0].ID).Count(&history).Error)
	assert.Zero(t, history)

	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(store.Delete(seeded[0].ID)))
}
