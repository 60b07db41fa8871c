package models

import "time"

// Location is a pickup/drop-off point. VenueID is nullable: a location
// may sit directly under a region without a venue.
type Location struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name" binding:"required"`
	VenueID   *uint     `gorm:"index" json:"venue_id"`
	RegionID  uint      `gorm:"index" json:"region_id"`
	CreatedAt time.Time `json:"created_at"`
}
