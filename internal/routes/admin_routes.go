package routes

import (
	"github.com/gin-gonic/gin"

	"trip_dispatch/internal/controllers"
	"trip_dispatch/internal/middleware"
)

func AdminRoutes(r *gin.Engine, auth *controllers.AuthController, role *controllers.RoleController) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("SUPER_ADMIN"))
	{
		admin.POST("/users", auth.Register)
		admin.GET("/roles", role.ListRoles)
		admin.POST("/roles", role.CreateRole)
		admin.DELETE("/roles/:id", role.DeleteRole)
		admin.GET("/roles/:id/permissions", role.GetRolePermissions)
		admin.PUT("/roles/:id/permissions", role.UpdateRolePermissions)
	}
}
