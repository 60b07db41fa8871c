// Package trips holds the trip record store and the lifecycle manager
// that moves trips through their status state machine while keeping
// the append-only history in sync.
package trips

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"trip_dispatch/internal/apperrors"
	"trip_dispatch/internal/models"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// TripDetails is a trip row joined with the display names consumers
// need: staff, vehicle registration and resolved origin/destination.
type TripDetails struct {
	ID                   uint      `json:"id"`
	RouteCode            string    `json:"route_code"`
	OriginID             *uint     `json:"origin_id"`
	DestinationID        *uint     `json:"destination_id"`
	OriginVenueID        *uint     `json:"origin_venue_id"`
	DestinationVenueID   *uint     `json:"destination_venue_id"`
	RegionID             *uint     `json:"region_id"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	VehicleID            *uint     `json:"vehicle_id"`
	VolunteerID          *uint     `json:"volunteer_id"`
	DriverID             *uint     `json:"driver_id"`
	Status               string    `json:"status"`
	SubStatus            string    `json:"sub_status"`
	BreakdownIssue       *string   `json:"breakdown_issue"`
	PassengersBoarded    int       `json:"passengers_boarded"`
	WheelchairsBoarded   int       `json:"wheelchairs_boarded"`
	Notes                string    `json:"notes"`
	CreatedAt            time.Time `json:"created_at"`
	VolunteerName        *string   `json:"volunteer_name"`
	VolunteerPhone       *string   `json:"volunteer_phone"`
	DriverName           *string   `json:"driver_name"`
	DriverPhone          *string   `json:"driver_phone"`
	VehicleRegistration  *string   `json:"vehicle_registration"`
	OriginName           *string   `json:"origin_name"`
	DestinationName      *string   `json:"destination_name"`
	OriginVenueName      *string   `json:"origin_venue_name"`
	DestinationVenueName *string   `json:"destination_venue_name"`
}

func (s *Store) detailQuery() *gorm.DB {
	return s.db.Table("trips").
		Select(`trips.*,
			v.name AS volunteer_name, v.phone AS volunteer_phone,
			d.name AS driver_name, d.phone AS driver_phone,
			vehicles.registration AS vehicle_registration,
			COALESCE(loc_o.name, ven_o.name) AS origin_name,
			COALESCE(loc_d.name, ven_d.name) AS destination_name,
			ven_o.name AS origin_venue_name,
			ven_d.name AS destination_venue_name`).
		Joins("LEFT JOIN profiles v ON trips.volunteer_id = v.id").
		Joins("LEFT JOIN profiles d ON trips.driver_id = d.id").
		Joins("LEFT JOIN vehicles ON trips.vehicle_id = vehicles.id").
		Joins("LEFT JOIN locations loc_o ON trips.origin_id = loc_o.id").
		Joins("LEFT JOIN locations loc_d ON trips.destination_id = loc_d.id").
		Joins("LEFT JOIN venues ven_o ON trips.origin_venue_id = ven_o.id OR loc_o.venue_id = ven_o.id").
		Joins("LEFT JOIN venues ven_d ON trips.destination_venue_id = ven_d.id OR loc_d.venue_id = ven_d.id")
}

// applySearch splits the search text into terms; every term must match
// at least one of the searchable columns.
func applySearch(q *gorm.DB, search string) *gorm.DB {
	for _, t := range strings.Fields(search) {
		term := "%" + t + "%"
		q = q.Where(`trips.route_code LIKE ? OR loc_o.name LIKE ? OR loc_d.name LIKE ?
			OR ven_o.name LIKE ? OR ven_d.name LIKE ?
			OR v.name LIKE ? OR v.phone LIKE ? OR d.name LIKE ? OR d.phone LIKE ?
			OR vehicles.registration LIKE ? OR CAST(trips.start_time AS TEXT) LIKE ?`,
			term, term, term, term, term, term, term, term, term, term, term)
	}
	return q
}

// List returns trips newest first, optionally region-scoped and
// filtered by free-text search. limit < 0 disables paging.
func (s *Store) List(search string, regionID *uint, limit, offset int) ([]TripDetails, error) {
	q := s.detailQuery()
	if regionID != nil {
		q = q.Where("trips.region_id = ?", *regionID)
	}
	q = applySearch(q, search)
	q = q.Order("trips.start_time DESC")
	if limit >= 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var results []TripDetails
	if err := q.Scan(&results).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	return results, nil
}

// Count mirrors List's filters without its paging.
func (s *Store) Count(search string, regionID *uint) (int64, error) {
	var q *gorm.DB
	if search != "" {
		// Joins are only needed when searching across related names.
		q = applySearch(s.detailQuery(), search)
	} else {
		q = s.db.Table("trips")
	}
	if regionID != nil {
		q = q.Where("trips.region_id = ?", *regionID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, apperrors.FromDB(err, "")
	}
	return count, nil
}

func (s *Store) Get(id uint) (*TripDetails, error) {
	var detail TripDetails
	res := s.detailQuery().Where("trips.id = ?", id).Limit(1).Scan(&detail)
	if res.Error != nil {
		return nil, apperrors.FromDB(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFoundf("Trip not found")
	}
	return &detail, nil
}

// TouchingLocation returns every trip that starts or ends at the given
// location or venue id, newest first.
func (s *Store) TouchingLocation(id uint) ([]TripDetails, error) {
	var results []TripDetails
	err := s.detailQuery().
		Where("trips.origin_id = ? OR trips.destination_id = ? OR trips.origin_venue_id = ? OR trips.destination_venue_id = ?",
			id, id, id, id).
		Order("trips.start_time DESC").
		Scan(&results).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	return results, nil
}

// History returns the trip's status audit trail, oldest first.
func (s *Store) History(tripID uint) ([]models.TripStatusHistory, error) {
	var rows []models.TripStatusHistory
	err := s.db.Where("trip_id = ?", tripID).Order("changed_at ASC, id ASC").Find(&rows).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	return rows, nil
}

// Delete removes a trip and its history rows. History goes first to
// satisfy the foreign key, both inside one transaction.
func (s *Store) Delete(id uint) error {
	var trip models.Trip
	if err := s.db.First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("Trip not found")
		}
		return apperrors.FromDB(err, "")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trip_id = ?", id).Delete(&models.TripStatusHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Trip{}, id).Error
	})
	if err != nil {
		return apperrors.FromDB(err, "")
	}
	return nil
}
