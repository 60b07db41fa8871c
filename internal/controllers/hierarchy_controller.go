package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"trip_dispatch/internal/hierarchy"
	"trip_dispatch/internal/middleware"
)

type HierarchyController struct {
	store *hierarchy.Store
}

func NewHierarchyController(store *hierarchy.Store) *HierarchyController {
	return &HierarchyController{store: store}
}

func (h *HierarchyController) CreateRegion(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	region, err := h.store.CreateRegion(input.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": region.ID})
}

func (h *HierarchyController) CreateVenue(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		RegionID uint   `json:"region_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	venue, err := h.store.CreateVenue(input.Name, input.RegionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": venue.ID})
}

func (h *HierarchyController) CreateLocation(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		VenueID  *uint  `json:"venue_id"`
		RegionID uint   `json:"region_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	location, err := h.store.CreateLocation(input.Name, input.VenueID, input.RegionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": location.ID})
}

func (h *HierarchyController) CreateEvent(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		RegionID uint   `json:"region_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	event, err := h.store.CreateEvent(input.Name, input.RegionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": event.ID})
}

// RenameEntity updates a single row's name; table comes from the path.
func (h *HierarchyController) RenameEntity(c *gin.Context) {
	table := c.Param("table")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid id"})
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.store.Rename(table, uint(id), input.Name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteEntity dispatches to the integrity guard. Deletes blocked by
// live trips come back as 409 with nothing removed.
func (h *HierarchyController) DeleteEntity(c *gin.Context) {
	table := c.Param("table")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid id"})
		return
	}

	if err := h.store.Delete(table, uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *HierarchyController) GetTree(c *gin.Context) {
	tree, err := h.store.Tree()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

// ListLocationOptions returns the combined location/event lookup,
// scoped to the caller's region unless an explicit region_id query
// parameter overrides it.
func (h *HierarchyController) ListLocationOptions(c *gin.Context) {
	var regionID *uint
	if raw := c.Query("region_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid region_id"})
			return
		}
		id := uint(parsed)
		regionID = &id
	} else if id, ok := middleware.CallerRegionID(c); ok {
		regionID = &id
	}

	options, err := h.store.LocationOptions(regionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": options})
}
