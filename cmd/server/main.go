package main

import (
	"log"
	"net/http"

	ginlog "github.com/gin-contrib/logger"

	"trip_dispatch/internal/config"
	"trip_dispatch/internal/logger"
	"trip_dispatch/internal/middleware"
	"trip_dispatch/internal/routes"
)

func main() {
	// Structured logging to a rotating file
	logger.Setup()

	db, err := config.OpenDB()
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	r := routes.SetupRouter(db)

	// Request logging middleware
	r.Use(ginlog.SetLogger())

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Println("🚀 Server running at :8080")
	log.Fatal(http.ListenAndServe("0.0.0.0:8080", handler))
}
