package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"trip_dispatch/internal/apperrors"
	"trip_dispatch/internal/models"
)

type VehicleController struct {
	db *gorm.DB
}

func NewVehicleController(db *gorm.DB) *VehicleController {
	return &VehicleController{db: db}
}

func (v *VehicleController) CreateVehicle(c *gin.Context) {
	var input struct {
		Type         string `json:"type" binding:"required"`
		Registration string `json:"registration" binding:"required"`
		Capacity     int    `json:"capacity"`
		MakeModel    string `json:"make_model"`
		Status       string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid vehicle input: " + err.Error()})
		return
	}

	if input.Status == "" {
		input.Status = "Active"
	}
	vehicle := models.Vehicle{
		Type:         input.Type,
		Registration: input.Registration,
		Capacity:     input.Capacity,
		MakeModel:    input.MakeModel,
		Status:       input.Status,
	}
	if err := v.db.Create(&vehicle).Error; err != nil {
		respondError(c, apperrors.FromDB(err, "Registration number already exists"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "vehicle": vehicle})
}

// ListVehicles supports the same free-text search the original UI
// offers: type, registration or make/model.
func (v *VehicleController) ListVehicles(c *gin.Context) {
	q := v.db.Model(&models.Vehicle{})
	if search := c.Query("search"); search != "" {
		term := "%" + search + "%"
		q = q.Where("type LIKE ? OR registration LIKE ? OR make_model LIKE ?", term, term, term)
	}

	var vehicles []models.Vehicle
	if err := q.Order("created_at DESC").Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing vehicles: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

func (v *VehicleController) GetVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := v.db.First(&vehicle, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

func (v *VehicleController) UpdateVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := v.db.First(&vehicle, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Vehicle not found"})
		return
	}

	var input struct {
		Type         *string `json:"type"`
		Registration *string `json:"registration"`
		Capacity     *int    `json:"capacity"`
		MakeModel    *string `json:"make_model"`
		Status       *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if input.Type != nil {
		vehicle.Type = *input.Type
	}
	if input.Registration != nil {
		vehicle.Registration = *input.Registration
	}
	if input.Capacity != nil {
		vehicle.Capacity = *input.Capacity
	}
	if input.MakeModel != nil {
		vehicle.MakeModel = *input.MakeModel
	}
	if input.Status != nil {
		vehicle.Status = *input.Status
	}

	if err := v.db.Save(&vehicle).Error; err != nil {
		respondError(c, apperrors.FromDB(err, "Registration number already exists"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "vehicle": vehicle})
}

func (v *VehicleController) DeleteVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := v.db.First(&vehicle, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Vehicle not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := v.db.Delete(&vehicle).Error; err != nil {
		respondError(c, apperrors.FromDB(err, "Vehicle is still referenced by trips"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
