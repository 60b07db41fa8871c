package trips

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"trip_dispatch/internal/apperrors"
	"trip_dispatch/internal/models"
	"trip_dispatch/internal/taxonomy"
)

// Lifecycle validates and applies status transitions and keeps the
// history log in lockstep with the trip row. It reads the taxonomy
// registry to validate status names but does not own it.
type Lifecycle struct {
	db       *gorm.DB
	registry *taxonomy.Registry
}

func NewLifecycle(db *gorm.DB, registry *taxonomy.Registry) *Lifecycle {
	return &Lifecycle{db: db, registry: registry}
}

// allowTransition is the single transition policy point. Today any
// status may move to any other status; a future allow-list lands here
// without touching call sites.
func allowTransition(from, to string) bool {
	return true
}

func (m *Lifecycle) validateStatus(current, next string) error {
	ok, err := m.registry.StatusExists(next)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.InvalidStatef("Unknown status %q", next)
	}
	if !allowTransition(current, next) {
		return apperrors.InvalidStatef("Transition %q -> %q is not allowed", current, next)
	}
	return nil
}

// Create inserts a new trip and unconditionally records its initial
// triple as history entry #1, in one transaction. A set driver_id also
// flags the profile as a driver.
func (m *Lifecycle) Create(trip *models.Trip) error {
	if trip.Status == "" {
		trip.Status = "Planned"
	}
	if trip.SubStatus == "" {
		trip.SubStatus = "Scheduled"
	}
	if err := m.validateStatus("", trip.Status); err != nil {
		return err
	}

	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trip).Error; err != nil {
			return err
		}
		if err := m.appendHistory(tx, trip); err != nil {
			return err
		}
		return m.markDriver(tx, trip.DriverID)
	})
	if err != nil {
		return apperrors.FromDB(err, "Trip conflicts with an existing record")
	}

	logrus.WithField("trip_id", trip.ID).Info("trip created")
	return nil
}

// Update replaces the trip's mutable fields. A history row is appended
// only when the (status, sub_status, breakdown_issue) triple actually
// changed; the trip update and the history insert share one
// transaction, update first.
func (m *Lifecycle) Update(id uint, updated models.Trip) error {
	var current models.Trip
	if err := m.db.First(&current, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("Trip not found")
		}
		return apperrors.FromDB(err, "")
	}

	if updated.Status == "" {
		updated.Status = "Planned"
	}
	if updated.SubStatus == "" {
		updated.SubStatus = "Scheduled"
	}
	if err := m.validateStatus(current.Status, updated.Status); err != nil {
		return err
	}

	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt

	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Trip{}).Where("id = ?", id).Select("*").
			Omit("id", "created_at").Updates(&updated).Error; err != nil {
			return err
		}
		if tripleChanged(&current, updated.Status, updated.SubStatus, updated.BreakdownIssue) {
			if err := m.appendHistory(tx, &updated); err != nil {
				return err
			}
		}
		return m.markDriver(tx, updated.DriverID)
	})
	if err != nil {
		return apperrors.FromDB(err, "Trip conflicts with an existing record")
	}
	return nil
}

// ApplyStatusChange moves a trip to a new status triple. A nil
// sub-status is stored as the empty string (the column is non-null); a
// nil breakdown issue is stored as NULL. When the triple equals the
// trip's current one the call is a no-op and no history is written.
func (m *Lifecycle) ApplyStatusChange(id uint, status string, subStatus, breakdownIssue *string) error {
	var trip models.Trip
	if err := m.db.First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("Trip not found")
		}
		return apperrors.FromDB(err, "")
	}

	newSub := ""
	if subStatus != nil {
		newSub = *subStatus
	}

	if err := m.validateStatus(trip.Status, status); err != nil {
		return err
	}

	if !tripleChanged(&trip, status, newSub, breakdownIssue) {
		return nil
	}

	trip.Status = status
	trip.SubStatus = newSub
	trip.BreakdownIssue = breakdownIssue

	err := m.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Trip{}).Where("id = ?", id).Updates(map[string]interface{}{
			"status":          status,
			"sub_status":      newSub,
			"breakdown_issue": breakdownIssue,
		}).Error
		if err != nil {
			return err
		}
		return m.appendHistory(tx, &trip)
	})
	if err != nil {
		return apperrors.FromDB(err, "")
	}

	logrus.WithFields(logrus.Fields{"trip_id": id, "status": status, "sub_status": newSub}).
		Info("trip status changed")
	return nil
}

func tripleChanged(current *models.Trip, status, subStatus string, breakdown *string) bool {
	if current.Status != status || current.SubStatus != subStatus {
		return true
	}
	switch {
	case current.BreakdownIssue == nil && breakdown == nil:
		return false
	case current.BreakdownIssue == nil || breakdown == nil:
		return true
	default:
		return *current.BreakdownIssue != *breakdown
	}
}

// appendHistory writes one audit row carrying the trip's current
// triple with a server-assigned timestamp.
func (m *Lifecycle) appendHistory(tx *gorm.DB, trip *models.Trip) error {
	return tx.Create(&models.TripStatusHistory{
		TripID:            trip.ID,
		Status:            trip.Status,
		SubStatus:         trip.SubStatus,
		BreakdownIssue:    trip.BreakdownIssue,
		PassengersBoarded: trip.PassengersBoarded,
		ChangedAt:         time.Now(),
	}).Error
}

// markDriver keeps the denormalized is_driver flag in sync whenever a
// trip names a profile as its driver.
func (m *Lifecycle) markDriver(tx *gorm.DB, driverID *uint) error {
	if driverID == nil {
		return nil
	}
	return tx.Model(&models.Profile{}).Where("id = ?", *driverID).Update("is_driver", true).Error
}
