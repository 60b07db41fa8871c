package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"trip_dispatch/internal/taxonomy"
)

type StatusController struct {
	registry *taxonomy.Registry
}

func NewStatusController(registry *taxonomy.Registry) *StatusController {
	return &StatusController{registry: registry}
}

func (s *StatusController) ListStatuses(c *gin.Context) {
	statuses, err := s.registry.ListStatuses()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": statuses})
}

type statusInput struct {
	Name                   string `json:"name" binding:"required"`
	PassengerCountRequired bool   `json:"passenger_count_required"`
	SortOrder              int    `json:"sort_order"`
}

func (s *StatusController) CreateStatus(c *gin.Context) {
	var input statusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	status, err := s.registry.CreateStatus(input.Name, input.PassengerCountRequired, input.SortOrder)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": status.ID})
}

// UpdateStatus renames a status; the registry cascades the rename to
// sub-statuses and trips atomically.
func (s *StatusController) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid status ID"})
		return
	}

	var input statusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := s.registry.UpdateStatus(uint(id), input.Name, input.PassengerCountRequired, input.SortOrder); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *StatusController) DeleteStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid status ID"})
		return
	}

	if err := s.registry.DeleteStatus(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *StatusController) ListSubStatuses(c *gin.Context) {
	subStatuses, err := s.registry.ListSubStatuses()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": subStatuses})
}

type subStatusInput struct {
	Name         string `json:"name" binding:"required"`
	LinkedStatus string `json:"linked_status"`
	SortOrder    int    `json:"sort_order"`
}

func (s *StatusController) CreateSubStatus(c *gin.Context) {
	var input subStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	subStatus, err := s.registry.CreateSubStatus(input.Name, input.LinkedStatus, input.SortOrder)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": subStatus.ID})
}

func (s *StatusController) UpdateSubStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid sub-status ID"})
		return
	}

	var input subStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := s.registry.UpdateSubStatus(uint(id), input.Name, input.LinkedStatus, input.SortOrder); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *StatusController) DeleteSubStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid sub-status ID"})
		return
	}

	if err := s.registry.DeleteSubStatus(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
