package models

import "time"

// TripStatusHistory is the append-only audit trail of a trip's
// (status, sub_status, breakdown_issue) triple. Rows are never updated;
// they are purged only when the parent trip is deleted.
type TripStatusHistory struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	TripID            uint      `gorm:"index;not null" json:"trip_id"`
	Status            string    `gorm:"not null" json:"status"`
	SubStatus         string    `gorm:"not null" json:"sub_status"`
	BreakdownIssue    *string   `json:"breakdown_issue"`
	PassengersBoarded int       `gorm:"default:0" json:"passengers_boarded"`
	ChangedAt         time.Time `json:"changed_at"`
}

func (TripStatusHistory) TableName() string {
	return "trip_status_history"
}
