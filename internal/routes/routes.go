package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"trip_dispatch/internal/controllers"
	"trip_dispatch/internal/hierarchy"
	"trip_dispatch/internal/rbac"
	"trip_dispatch/internal/taxonomy"
	"trip_dispatch/internal/trips"
)

// SetupRouter wires every component off the one injected DB handle and
// registers the per-area route groups.
func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	registry := taxonomy.NewRegistry(db)
	hierarchyStore := hierarchy.NewStore(db)
	tripStore := trips.NewStore(db)
	lifecycle := trips.NewLifecycle(db, registry)
	resolver := rbac.NewResolver(db)

	auth := controllers.NewAuthController(db)
	status := controllers.NewStatusController(registry)
	tree := controllers.NewHierarchyController(hierarchyStore)
	trip := controllers.NewTripController(db, tripStore, lifecycle, resolver)
	vehicle := controllers.NewVehicleController(db)
	profile := controllers.NewProfileController(db)
	role := controllers.NewRoleController(resolver)

	AuthRoutes(r, auth)
	TripRoutes(r, trip)
	HierarchyRoutes(r, tree)
	StatusRoutes(r, status)
	VehicleRoutes(r, vehicle)
	ProfileRoutes(r, profile)
	AdminRoutes(r, auth, role)

	return r
}
