// Package hierarchy manages the Region → Venue → Location containment
// tree (plus region-level Events) and guards it against deletes that
// would strand live trips.
package hierarchy

import (
	"errors"
	"sort"

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

func (s *Store) CreateRegion(name string) (*models.Region, error) {
	region := models.Region{Name: name}
	if err := s.db.Create(&region).Error; err != nil {
		return nil, apperrors.FromDB(err, "Region name already exists")
	}
	return &region, nil
}

func (s *Store) CreateVenue(name string, regionID uint) (*models.Venue, error) {
	if err := s.requireRow(&models.Region{}, regionID, "Region"); err != nil {
		return nil, err
	}
	venue := models.Venue{Name: name, RegionID: regionID}
	if err := s.db.Create(&venue).Error; err != nil {
		return nil, apperrors.FromDB(err, "Could not create venue")
	}
	return &venue, nil
}

// CreateLocation adds a location under a venue, or directly under the
// region when venueID is nil.
func (s *Store) CreateLocation(name string, venueID *uint, regionID uint) (*models.Location, error) {
	if err := s.requireRow(&models.Region{}, regionID, "Region"); err != nil {
		return nil, err
	}
	if venueID != nil {
		if err := s.requireRow(&models.Venue{}, *venueID, "Venue"); err != nil {
			return nil, err
		}
	}
	location := models.Location{Name: name, VenueID: venueID, RegionID: regionID}
	if err := s.db.Create(&location).Error; err != nil {
		return nil, apperrors.FromDB(err, "Could not create location")
	}
	return &location, nil
}

func (s *Store) CreateEvent(name string, regionID uint) (*models.Event, error) {
	if err := s.requireRow(&models.Region{}, regionID, "Region"); err != nil {
		return nil, err
	}
	event := models.Event{Name: name, RegionID: regionID}
	if err := s.db.Create(&event).Error; err != nil {
		return nil, apperrors.FromDB(err, "Could not create event")
	}
	return &event, nil
}

var renamableTables = map[string]bool{
	"regions":   true,
	"venues":    true,
	"locations": true,
	"events":    true,
}

// Rename is a single-row update. Names are never used as foreign keys
// in this subtree, so nothing cascades.
func (s *Store) Rename(table string, id uint, name string) error {
	if !renamableTables[table] {
		return apperrors.InvalidStatef("Invalid table")
	}
	res := s.db.Table(table).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return apperrors.FromDB(res.Error, "Name already exists")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("Entity not found")
	}
	return nil
}

// Tree holds the full hierarchy as flat slices, the shape consumers
// render region/venue/location pickers from.
type Tree struct {
	Regions   []models.Region   `json:"regions"`
	Venues    []models.Venue    `json:"venues"`
	Locations []models.Location `json:"locations"`
}

func (s *Store) Tree() (*Tree, error) {
	var tree Tree
	if err := s.db.Order("name ASC").Find(&tree.Regions).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	if err := s.db.Order("name ASC").Find(&tree.Venues).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	if err := s.db.Order("name ASC").Find(&tree.Locations).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	return &tree, nil
}

const (
	KindLocation = "Location"
	KindEvent    = "Event"
)

// LocationOption is one entry of the combined location/event lookup.
// Kind tags the source table explicitly; ID keeps the legacy wire
// convention of negating event ids so mixed consumers can still tell
// the two apart from the identifier alone.
type LocationOption struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	RegionID uint   `json:"region_id"`
	Kind     string `json:"type"`
}

// LocationOptions returns locations and events merged and sorted by
// display name, optionally filtered to one region. Event names carry
// the " (Event)" suffix.
func (s *Store) LocationOptions(regionID *uint) ([]LocationOption, error) {
	locQuery := s.db.Model(&models.Location{})
	eventQuery := s.db.Model(&models.Event{})
	if regionID != nil {
		locQuery = locQuery.Where("region_id = ?", *regionID)
		eventQuery = eventQuery.Where("region_id = ?", *regionID)
	}

	var locations []models.Location
	if err := locQuery.Find(&locations).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	var events []models.Event
	if err := eventQuery.Find(&events).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}

	options := make([]LocationOption, 0, len(locations)+len(events))
	for _, l := range locations {
		options = append(options, LocationOption{
			ID:       int64(l.ID),
			Name:     l.Name,
			RegionID: l.RegionID,
			Kind:     KindLocation,
		})
	}
	for _, e := range events {
		options = append(options, LocationOption{
			ID:       -int64(e.ID),
			Name:     e.Name + " (Event)",
			RegionID: e.RegionID,
			Kind:     KindEvent,
		})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Name < options[j].Name })
	return options, nil
}

func (s *Store) requireRow(model interface{}, id uint, label string) error {
	if err := s.db.First(model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("%s not found", label)
		}
		return apperrors.FromDB(err, "")
	}
	return nil
}
