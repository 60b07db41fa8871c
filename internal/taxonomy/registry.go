// Package taxonomy owns the trip status catalog: the primary statuses
// and the sub-statuses that refine them. Trips store status by name,
// so a status rename has to cascade to every dependent row in one
// transaction.
package taxonomy

import (
	"errors"

	"gorm.io/gorm"

	"trip_dispatch/internal/apperrors"
	"trip_dispatch/internal/models"
)

type Registry struct {
	db *gorm.DB
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// ListStatuses returns the catalog ordered for display.
func (r *Registry) ListStatuses() ([]models.TripStatus, error) {
	var statuses []models.TripStatus
	if err := r.db.Order("sort_order ASC").Find(&statuses).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	return statuses, nil
}

// StatusExists reports whether name is a recognized primary status.
func (r *Registry) StatusExists(name string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.TripStatus{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, apperrors.FromDB(err, "")
	}
	return count > 0, nil
}

func (r *Registry) CreateStatus(name string, passengerCountRequired bool, sortOrder int) (*models.TripStatus, error) {
	status := models.TripStatus{
		Name:                   name,
		PassengerCountRequired: passengerCountRequired,
		SortOrder:              sortOrder,
	}
	if err := r.db.Create(&status).Error; err != nil {
		return nil, apperrors.FromDB(err, "Status name already exists")
	}
	return &status, nil
}

// UpdateStatus updates a status row. When the name changes, the rename
// cascades to trip_sub_statuses.linked_status and trips.status in the
// same transaction: either all three tables move to the new name or
// none do.
func (r *Registry) UpdateStatus(id uint, name string, passengerCountRequired bool, sortOrder int) error {
	var current models.TripStatus
	if err := r.db.First(&current, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("Status not found")
		}
		return apperrors.FromDB(err, "")
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":                     name,
			"passenger_count_required": passengerCountRequired,
			"sort_order":               sortOrder,
		}
		if err := tx.Model(&models.TripStatus{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if current.Name != name {
			if err := tx.Model(&models.TripSubStatus{}).Where("linked_status = ?", current.Name).
				Update("linked_status", name).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Trip{}).Where("status = ?", current.Name).
				Update("status", name).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.FromDB(err, "Status name already exists")
	}
	return nil
}

// DeleteStatus removes a status and blanks linked_status on any
// sub-status that referenced it. Orphaned sub-statuses stay selectable.
func (r *Registry) DeleteStatus(id uint) error {
	var current models.TripStatus
	if err := r.db.First(&current, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("Status not found")
		}
		return apperrors.FromDB(err, "")
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.TripStatus{}, id).Error; err != nil {
			return err
		}
		return tx.Model(&models.TripSubStatus{}).Where("linked_status = ?", current.Name).
			Update("linked_status", "").Error
	})
	if err != nil {
		return apperrors.FromDB(err, "")
	}
	return nil
}

func (r *Registry) ListSubStatuses() ([]models.TripSubStatus, error) {
	var subStatuses []models.TripSubStatus
	if err := r.db.Order("sort_order ASC").Find(&subStatuses).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	return subStatuses, nil
}

func (r *Registry) CreateSubStatus(name, linkedStatus string, sortOrder int) (*models.TripSubStatus, error) {
	subStatus := models.TripSubStatus{
		Name:         name,
		LinkedStatus: linkedStatus,
		SortOrder:    sortOrder,
	}
	if err := r.db.Create(&subStatus).Error; err != nil {
		return nil, apperrors.FromDB(err, "Sub-status name already exists")
	}
	return &subStatus, nil
}

// UpdateSubStatus does not cascade: sub-status names are not referenced
// by trip rows, only by the display mapping.
func (r *Registry) UpdateSubStatus(id uint, name, linkedStatus string, sortOrder int) error {
	res := r.db.Model(&models.TripSubStatus{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":          name,
		"linked_status": linkedStatus,
		"sort_order":    sortOrder,
	})
	if res.Error != nil {
		return apperrors.FromDB(res.Error, "Sub-status name already exists")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("Sub-status not found")
	}
	return nil
}

func (r *Registry) DeleteSubStatus(id uint) error {
	res := r.db.Delete(&models.TripSubStatus{}, id)
	if res.Error != nil {
		return apperrors.FromDB(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("Sub-status not found")
	}
	return nil
}
