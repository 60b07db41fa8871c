package models

import "time"

type Vehicle struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Type         string    `gorm:"not null" json:"type"`
	Registration string    `gorm:"unique;not null" json:"registration"`
	Capacity     int       `gorm:"not null;default:0" json:"capacity"`
	MakeModel    string    `json:"make_model"`
	Status       string    `gorm:"not null;default:Active" json:"status"` // Active, Maintenance, Out of Service
	CreatedAt    time.Time `json:"created_at"`
}
