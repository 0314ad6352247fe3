package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jobbyhq/jobby-api/internal/config"
	"github.com/jobbyhq/jobby-api/internal/database"
	"github.com/jobbyhq/jobby-api/internal/handlers"
	"github.com/jobbyhq/jobby-api/internal/services"
)

func main() {
	// 1. Load Configuration (.env + defaults)
	cfg := config.Load()

	// 2. Database Connection + Migrations
	db := database.Connect(cfg)

	// 3. Initialize Core Services
	appService := services.NewApplicationService(db)

	// 4. Initialize Handlers
	appHandler := handlers.NewApplicationHandler(appService)

	// 5. Setup Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 6. Define Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/applications", appHandler.Create)
		api.GET("/applications", appHandler.List)
		api.GET("/applications/:id", appHandler.Get)
		api.PUT("/applications/:id", appHandler.Update)
		api.DELETE("/applications/:id", appHandler.Delete)
		api.POST("/applications/:id/transition", appHandler.Transition)
		api.GET("/applications/:id/events", appHandler.Events)
	}

	log.Printf("🚀 %s starting on port %s...", cfg.AppName, cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
