package models

import "time"

// Venue belongs to exactly one region and owns zero or more locations.
type Venue struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name" binding:"required"`
	RegionID  uint      `gorm:"index" json:"region_id"`
	CreatedAt time.Time `json:"created_at"`

	Locations []Location `gorm:"foreignKey:VenueID" json:"locations,omitempty"`
}
