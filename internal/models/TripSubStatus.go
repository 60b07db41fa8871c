package models

// TripSubStatus refines a primary status. LinkedStatus holds the
// TripStatus *name* it maps to; deleting that status blanks the link
// instead of deleting the sub-status.
type TripSubStatus struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"unique;not null" json:"name" binding:"required"`
	LinkedStatus string `gorm:"not null" json:"linked_status"`
	SortOrder    int    `gorm:"not null;default:0" json:"sort_order"`
}
