package models

import "time"

// Event plays the same logical role as a region-level location but is
// stored in its own table. Generic location lookups surface it with a
// negated id and an " (Event)" display suffix.
type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name" binding:"required"`
	RegionID  uint      `gorm:"index;not null" json:"region_id"`
	CreatedAt time.Time `json:"created_at"`
}
