package routes

import (
	"github.com/gin-gonic/gin"

	"trip_dispatch/internal/controllers"
	"trip_dispatch/internal/middleware"
)

func ProfileRoutes(r *gin.Engine, profile *controllers.ProfileController) {
	group := r.Group("/profiles")
	group.Use(middleware.RequireAuth())
	{
		group.POST("", profile.CreateProfile)
		group.GET("", profile.ListProfiles)
		group.GET("/:id", profile.GetProfile)
		group.PUT("/:id", profile.UpdateProfile)
	}
}
