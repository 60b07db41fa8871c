package routes

import (
	"github.com/gin-gonic/gin"

	"trip_dispatch/internal/controllers"
	"trip_dispatch/internal/middleware"
)

func StatusRoutes(r *gin.Engine, status *controllers.StatusController) {
	group := r.Group("/statuses")
	group.Use(middleware.RequireAuth())
	{
		group.GET("", status.ListStatuses)
		group.POST("", status.CreateStatus)
		group.PUT("/:id", status.UpdateStatus)
		group.DELETE("/:id", status.DeleteStatus)

		group.GET("/sub", status.ListSubStatuses)
		group.POST("/sub", status.CreateSubStatus)
		group.PUT("/sub/:id", status.UpdateSubStatus)
		group.DELETE("/sub/:id", status.DeleteSubStatus)
	}
}
