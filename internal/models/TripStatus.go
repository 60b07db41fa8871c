package models

// TripStatus defines the finite set of legal primary trip states.
// Trips reference it by name, not id, so renames must cascade.
type TripStatus struct {
	ID                     uint   `gorm:"primaryKey" json:"id"`
	Name                   string `gorm:"unique;not null" json:"name" binding:"required"`
	PassengerCountRequired bool   `gorm:"default:false" json:"passenger_count_required"`
	SortOrder              int    `gorm:"default:0" json:"sort_order"`
}
