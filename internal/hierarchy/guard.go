package hierarchy

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"trip_dispatch/internal/apperrors"
	"trip_dispatch/internal/models"
)

// Delete removes a hierarchy entity after checking that no live trip
// still references it, directly or through an owned location. Refusals
// come back as Conflict with nothing deleted; allowed deletes cascade
// to owned rows inside one transaction.
func (s *Store) Delete(table string, id uint) error {
	switch table {
	case "regions":
		return s.deleteRegion(id)
	case "venues":
		return s.deleteVenue(id)
	case "locations":
		return s.deleteLocation(id)
	default:
		return apperrors.InvalidStatef("Invalid table")
	}
}

func (s *Store) deleteRegion(id uint) error {
	if err := s.requireRow(&models.Region{}, id, "Region"); err != nil {
		return err
	}

	var direct int64
	if err := s.db.Model(&models.Trip{}).Where("region_id = ?", id).Count(&direct).Error; err != nil {
		return apperrors.FromDB(err, "")
	}
	if direct > 0 {
		return apperrors.Conflictf("Cannot delete Region. It has %d Trips attached.", direct)
	}

	// A trip may point into the region without carrying region_id, via
	// a venue or location inside it. Those block the delete too.
	venueIDs := s.db.Model(&models.Venue{}).Select("id").Where("region_id = ?", id)
	locationIDs := s.db.Model(&models.Location{}).Select("id").Where("region_id = ?", id)
	var transitive int64
	err := s.db.Model(&models.Trip{}).
		Where("origin_venue_id IN (?) OR destination_venue_id IN (?) OR origin_id IN (?) OR destination_id IN (?)",
			venueIDs, venueIDs, locationIDs, locationIDs).
		Count(&transitive).Error
	if err != nil {
		return apperrors.FromDB(err, "")
	}
	if transitive > 0 {
		return apperrors.Conflictf("Cannot delete Region. Trips still reference its venues or locations.")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		ownedVenues := tx.Model(&models.Venue{}).Select("id").Where("region_id = ?", id)
		if err := tx.Where("venue_id IN (?)", ownedVenues).Delete(&models.Location{}).Error; err != nil {
			return err
		}
		if err := tx.Where("region_id = ?", id).Delete(&models.Venue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("region_id = ? AND venue_id IS NULL", id).Delete(&models.Location{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Region{}, id).Error
	})
	return translateDeleteErr(err)
}

func (s *Store) deleteVenue(id uint) error {
	if err := s.requireRow(&models.Venue{}, id, "Venue"); err != nil {
		return err
	}

	var direct int64
	err := s.db.Model(&models.Trip{}).
		Where("origin_venue_id = ? OR destination_venue_id = ?", id, id).
		Count(&direct).Error
	if err != nil {
		return apperrors.FromDB(err, "")
	}
	if direct > 0 {
		return apperrors.Conflictf("Cannot delete this Venue. Trips are currently routed directly to it.")
	}

	ownedLocations := s.db.Model(&models.Location{}).Select("id").Where("venue_id = ?", id)
	var viaLocations int64
	err = s.db.Model(&models.Trip{}).
		Where("origin_id IN (?) OR destination_id IN (?)", ownedLocations, ownedLocations).
		Count(&viaLocations).Error
	if err != nil {
		return apperrors.FromDB(err, "")
	}
	if viaLocations > 0 {
		return apperrors.Conflictf("Cannot delete this Venue. Trips use its locations as an origin or destination.")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("venue_id = ?", id).Delete(&models.Location{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Venue{}, id).Error
	})
	return translateDeleteErr(err)
}

func (s *Store) deleteLocation(id uint) error {
	if err := s.requireRow(&models.Location{}, id, "Location"); err != nil {
		return err
	}

	var refs int64
	err := s.db.Model(&models.Trip{}).
		Where("origin_id = ? OR destination_id = ?", id, id).
		Count(&refs).Error
	if err != nil {
		return apperrors.FromDB(err, "")
	}
	if refs > 0 {
		return apperrors.Conflictf("Cannot delete this Location. It is currently acting as an Origin or Destination for an existing Trip.")
	}

	return translateDeleteErr(s.db.Delete(&models.Location{}, id).Error)
}

// translateDeleteErr maps low-level reference-constraint violations to
// a user-facing Conflict instead of a raw storage error.
func translateDeleteErr(err error) error {
	if err == nil {
		return nil
	}
	var ae *apperrors.Error
	if errors.As(err, &ae) {
		return ae
	}
	msg := err.Error()
	if strings.Contains(msg, "FOREIGN KEY constraint") || strings.Contains(msg, "violates foreign key") {
		return apperrors.Conflictf("Cannot delete: still referenced")
	}
	return apperrors.FromDB(err, "")
}
