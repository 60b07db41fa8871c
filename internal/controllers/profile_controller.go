package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"trip_dispatch/internal/apperrors"
	"trip_dispatch/internal/models"
)

// ProfileController manages volunteer/driver staff records. The
// is_driver flag is owned by the trip lifecycle; it is surfaced here
// read-only.
type ProfileController struct {
	db *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{db: db}
}

type profileInput struct {
	Name           string  `json:"name" binding:"required"`
	Email          *string `json:"email"`
	Phone          string  `json:"phone"`
	AlternatePhone string  `json:"alternate_phone"`
	Dob            string  `json:"dob"`
	Bio            string  `json:"bio"`
	LocationID     *uint   `json:"location_id"`
}

func (p *ProfileController) CreateProfile(c *gin.Context) {
	var input profileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	profile := models.Profile{
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		AlternatePhone: input.AlternatePhone,
		Dob:            input.Dob,
		Bio:            input.Bio,
		LocationID:     input.LocationID,
	}
	if err := p.db.Create(&profile).Error; err != nil {
		respondError(c, apperrors.FromDB(err, "Email already exists"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": profile.ID})
}

func (p *ProfileController) ListProfiles(c *gin.Context) {
	q := p.db.Model(&models.Profile{})
	if search := c.Query("search"); search != "" {
		term := "%" + search + "%"
		q = q.Where("name LIKE ? OR phone LIKE ?", term, term)
	}

	var profiles []models.Profile
	if err := q.Order("created_at DESC").Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch profiles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profiles})
}

func (p *ProfileController) GetProfile(c *gin.Context) {
	var profile models.Profile
	if err := p.db.First(&profile, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (p *ProfileController) UpdateProfile(c *gin.Context) {
	var profile models.Profile
	if err := p.db.First(&profile, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Profile not found"})
		return
	}

	var input struct {
		Name           *string `json:"name"`
		Email          *string `json:"email"`
		Phone          *string `json:"phone"`
		AlternatePhone *string `json:"alternate_phone"`
		Dob            *string `json:"dob"`
		Bio            *string `json:"bio"`
		LocationID     *uint   `json:"location_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.Email != nil {
		profile.Email = input.Email
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.AlternatePhone != nil {
		profile.AlternatePhone = *input.AlternatePhone
	}
	if input.Dob != nil {
		profile.Dob = *input.Dob
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.LocationID != nil {
		profile.LocationID = input.LocationID
	}

	if err := p.db.Save(&profile).Error; err != nil {
		respondError(c, apperrors.FromDB(err, "Email already exists"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}
