package routes

import (
	"github.com/gin-gonic/gin"

	"trip_dispatch/internal/controllers"
	"trip_dispatch/internal/middleware"
)

func HierarchyRoutes(r *gin.Engine, tree *controllers.HierarchyController) {
	group := r.Group("/hierarchy")
	group.Use(middleware.RequireAuth())
	{
		group.GET("", tree.GetTree)
		group.GET("/location-options", tree.ListLocationOptions)
		group.POST("/regions", tree.CreateRegion)
		group.POST("/venues", tree.CreateVenue)
		group.POST("/locations", tree.CreateLocation)
		group.POST("/events", tree.CreateEvent)
		group.PUT("/:table/:id", tree.RenameEntity)
		group.DELETE("/:table/:id", tree.DeleteEntity)
	}
}
