package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"default:VOLUNTEER" json:"role"` // "SUPER_ADMIN", "VOLUNTEER", ...
	RoleID       *uint     `json:"role_id"`
	RegionID     *uint     `json:"region_id"`
	LocationID   *uint     `json:"location_id"`
	CreatedAt    time.Time `json:"created_at"`
}
