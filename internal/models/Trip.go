package models

import "time"

// Trip is one dispatch of a vehicle between an origin and destination.
// Each side resolves to either a location or a venue, so both id pairs
// are nullable. Status/SubStatus are stored by name; the lifecycle
// manager validates Status against trip_statuses before commit.
type Trip struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	RouteCode          string    `gorm:"not null" json:"route_code"`
	OriginID           *uint     `gorm:"index" json:"origin_id"`
	DestinationID      *uint     `gorm:"index" json:"destination_id"`
	OriginVenueID      *uint     `gorm:"index" json:"origin_venue_id"`
	DestinationVenueID *uint     `gorm:"index" json:"destination_venue_id"`
	RegionID           *uint     `gorm:"index" json:"region_id"`
	StartTime          time.Time `gorm:"index;not null" json:"start_time"`
	EndTime            time.Time `gorm:"not null" json:"end_time"`
	VehicleID          *uint     `gorm:"index" json:"vehicle_id"`
	VolunteerID        *uint     `gorm:"index" json:"volunteer_id"`
	DriverID           *uint     `gorm:"index" json:"driver_id"`
	Status             string    `gorm:"index;not null;default:Planned" json:"status"`
	SubStatus          string    `gorm:"not null;default:Scheduled" json:"sub_status"`
	BreakdownIssue     *string   `json:"breakdown_issue"`
	PassengersBoarded  int       `gorm:"default:0" json:"passengers_boarded"`
	WheelchairsBoarded int       `gorm:"default:0" json:"wheelchairs_boarded"`
	Notes              string    `json:"notes"`
	CreatedAt          time.Time `json:"created_at"`
}
