package models

import "time"

// Region is the root of the dispatch hierarchy. Venues and
// region-level locations hang off it.
type Region struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name" binding:"required"`
	CreatedAt time.Time `json:"created_at"`

	Venues    []Venue    `gorm:"foreignKey:RegionID" json:"venues,omitempty"`
	Locations []Location `gorm:"foreignKey:RegionID" json:"locations,omitempty"`
}
