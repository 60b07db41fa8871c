package routes

import (
	"github.com/gin-gonic/gin"

	"trip_dispatch/internal/controllers"
	"trip_dispatch/internal/middleware"
)

func VehicleRoutes(r *gin.Engine, vehicle *controllers.VehicleController) {
	group := r.Group("/vehicles")
	group.Use(middleware.RequireAuth())
	{
		group.POST("", vehicle.CreateVehicle)
		group.GET("", vehicle.ListVehicles)
		group.GET("/:id", vehicle.GetVehicle)
		group.PUT("/:id", vehicle.UpdateVehicle)
		group.DELETE("/:id", vehicle.DeleteVehicle)
	}
}
