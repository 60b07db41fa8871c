package models

import "time"

// Profile is a volunteer/driver staff record. IsDriver is a derived
// flag: it flips to true whenever a trip names the profile as driver.
type Profile struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Email          *string   `gorm:"unique" json:"email"`
	Phone          string    `json:"phone"`
	AlternatePhone string    `json:"alternate_phone"`
	Dob            string    `json:"dob"`
	Bio            string    `json:"bio"`
	IsDriver       bool      `gorm:"default:false" json:"is_driver"`
	LocationID     *uint     `json:"location_id"`
	CreatedAt      time.Time `json:"created_at"`
}
