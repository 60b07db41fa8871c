package routes

import (
	"github.com/gin-gonic/gin"

	"trip_dispatch/internal/controllers"
	"trip_dispatch/internal/middleware"
)

func TripRoutes(r *gin.Engine, trip *controllers.TripController) {
	group := r.Group("/trips")
	group.Use(middleware.RequireAuth())
	{
		group.POST("", trip.CreateTrip)
		group.GET("", trip.ListTrips)
		group.GET("/count", trip.CountTrips)
		group.GET("/:id", trip.GetTrip)
		group.PUT("/:id", trip.UpdateTrip)
		group.PATCH("/:id/progress", trip.UpdateProgress)
		group.PATCH("/:id/details", trip.QuickUpdateDetails)
		group.GET("/:id/history", trip.GetTripHistory)
		group.DELETE("/:id", trip.DeleteTrip)
	}

	// Location volunteers watch the trips touching their post
	r.GET("/locations/:id/trips", middleware.RequireAuth(), trip.TripsTouchingLocation)
}
