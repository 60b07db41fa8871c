package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"trip_dispatch/internal/apperrors"
	"trip_dispatch/internal/middleware"
	"trip_dispatch/internal/models"
	"trip_dispatch/internal/rbac"
	"trip_dispatch/internal/trips"
)

type TripController struct {
	db        *gorm.DB
	store     *trips.Store
	lifecycle *trips.Lifecycle
	perms     *rbac.Resolver
}

func NewTripController(db *gorm.DB, store *trips.Store, lifecycle *trips.Lifecycle, perms *rbac.Resolver) *TripController {
	return &TripController{db: db, store: store, lifecycle: lifecycle, perms: perms}
}

// requireTripsEdit enforces the trips-module edit permission for
// mutating operations. SUPER_ADMIN bypasses the matrix.
func (t *TripController) requireTripsEdit(c *gin.Context) bool {
	if role, ok := c.Get("role"); ok {
		if r, isStr := role.(string); isStr && r == "SUPER_ADMIN" {
			return true
		}
	}
	roleID, ok := middleware.CallerRoleID(c)
	if !ok {
		respondError(c, apperrors.Unauthorizedf("You do not have permission to modify trips."))
		return false
	}
	canEdit, err := t.perms.CanEdit(roleID, "trips")
	if err != nil {
		respondError(c, err)
		return false
	}
	if !canEdit {
		respondError(c, apperrors.Unauthorizedf("You do not have permission to modify trips."))
		return false
	}
	return true
}

type tripInput struct {
	RouteCode          string    `json:"route_code" binding:"required"`
	OriginID           *uint     `json:"origin_id"`
	DestinationID      *uint     `json:"destination_id"`
	OriginVenueID      *uint     `json:"origin_venue_id"`
	DestinationVenueID *uint     `json:"destination_venue_id"`
	RegionID           *uint     `json:"region_id"`
	StartTime          time.Time `json:"start_time" binding:"required"`
	EndTime            time.Time `json:"end_time" binding:"required"`
	VehicleID          *uint     `json:"vehicle_id"`
	VolunteerID        *uint     `json:"volunteer_id"`
	DriverID           *uint     `json:"driver_id"`
	Status             string    `json:"status"`
	SubStatus          string    `json:"sub_status"`
	BreakdownIssue     *string   `json:"breakdown_issue"`
	PassengersBoarded  int       `json:"passengers_boarded"`
	WheelchairsBoarded int       `json:"wheelchairs_boarded"`
	Notes              string    `json:"notes"`
}

func (in *tripInput) toModel() models.Trip {
	return models.Trip{
		RouteCode:          in.RouteCode,
		OriginID:           in.OriginID,
		DestinationID:      in.DestinationID,
		OriginVenueID:      in.OriginVenueID,
		DestinationVenueID: in.DestinationVenueID,
		RegionID:           in.RegionID,
		StartTime:          in.StartTime,
		EndTime:            in.EndTime,
		VehicleID:          in.VehicleID,
		VolunteerID:        in.VolunteerID,
		DriverID:           in.DriverID,
		Status:             in.Status,
		SubStatus:          in.SubStatus,
		BreakdownIssue:     in.BreakdownIssue,
		PassengersBoarded:  in.PassengersBoarded,
		WheelchairsBoarded: in.WheelchairsBoarded,
		Notes:              in.Notes,
	}
}

func (t *TripController) CreateTrip(c *gin.Context) {
	if !t.requireTripsEdit(c) {
		return
	}

	var input tripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid trip input: " + err.Error()})
		return
	}

	trip := input.toModel()
	if err := t.lifecycle.Create(&trip); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": trip.ID})
}

func (t *TripController) UpdateTrip(c *gin.Context) {
	if !t.requireTripsEdit(c) {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid trip ID"})
		return
	}

	var input tripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid trip input: " + err.Error()})
		return
	}

	if err := t.lifecycle.Update(uint(id), input.toModel()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateProgress is the lifecycle endpoint used from the field: it
// moves only the status triple and appends history when it changed.
func (t *TripController) UpdateProgress(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid trip ID"})
		return
	}

	var input struct {
		Status         string  `json:"status" binding:"required"`
		SubStatus      *string `json:"sub_status"`
		BreakdownIssue *string `json:"breakdown_issue"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := t.lifecycle.ApplyStatusChange(uint(id), input.Status, input.SubStatus, input.BreakdownIssue); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (t *TripController) GetTrip(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip ID"})
		return
	}

	trip, err := t.store.Get(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// regionScope resolves the effective region filter: an explicit
// region_id query parameter wins, else the caller's region claim.
func regionScope(c *gin.Context) *uint {
	if raw := c.Query("region_id"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(parsed)
			return &id
		}
	}
	if id, ok := middleware.CallerRegionID(c); ok {
		return &id
	}
	return nil
}

func (t *TripController) ListTrips(c *gin.Context) {
	search := c.Query("search")
	regionID := regionScope(c)

	limit := -1
	offset := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			offset = parsed
		}
	}

	results, err := t.store.List(search, regionID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": results})
}

func (t *TripController) CountTrips(c *gin.Context) {
	count, err := t.store.Count(c.Query("search"), regionScope(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (t *TripController) GetTripHistory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip ID"})
		return
	}

	// 404 for a missing trip, empty list for a trip with no changes
	if _, err := t.store.Get(uint(id)); err != nil {
		respondError(c, err)
		return
	}

	history, err := t.store.History(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": history})
}

// TripsTouchingLocation lists trips that start or end at a location or
// venue, the view location volunteers work from.
func (t *TripController) TripsTouchingLocation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	results, err := t.store.TouchingLocation(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": results})
}

func (t *TripController) DeleteTrip(c *gin.Context) {
	if !t.requireTripsEdit(c) {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid trip ID"})
		return
	}

	if err := t.store.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}

	logrus.WithField("trip_id", id).Info("trip deleted")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// QuickUpdateDetails patches staffing and counts without touching the
// status triple. A typed vehicle registration resolves to an existing
// vehicle or creates a stub one.
func (t *TripController) QuickUpdateDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid trip ID"})
		return
	}

	var input struct {
		VolunteerID         *uint  `json:"volunteer_id"`
		DriverID            *uint  `json:"driver_id"`
		VehicleRegistration string `json:"vehicle_registration"`
		Passengers          int    `json:"passengers"`
		Wheelchairs         int    `json:"wheelchairs"`
		Notes               string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var trip models.Trip
	if err := t.db.First(&trip, id).Error; err != nil {
		respondError(c, apperrors.NotFoundf("Trip not found"))
		return
	}

	var vehicleID *uint
	if reg := strings.TrimSpace(input.VehicleRegistration); reg != "" {
		var vehicle models.Vehicle
		err := t.db.Where("registration = ?", reg).
			Attrs(models.Vehicle{Type: "Unknown", Registration: reg}).
			FirstOrCreate(&vehicle).Error
		if err != nil {
			respondError(c, apperrors.FromDB(err, "A vehicle with this registration already exists"))
			return
		}
		vehicleID = &vehicle.ID
	}

	err = t.db.Model(&models.Trip{}).Where("id = ?", id).Updates(map[string]interface{}{
		"volunteer_id":        input.VolunteerID,
		"driver_id":           input.DriverID,
		"vehicle_id":          vehicleID,
		"passengers_boarded":  input.Passengers,
		"wheelchairs_boarded": input.Wheelchairs,
		"notes":               input.Notes,
	}).Error
	if err != nil {
		respondError(c, apperrors.FromDB(err, ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
