package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jobbie-labs/jobbie-backend/internal/config"
	"github.com/jobbie-labs/jobbie-backend/internal/database"
	"github.com/jobbie-labs/jobbie-backend/internal/handlers"
	"github.com/jobbie-labs/jobbie-backend/internal/services"
)

func main() {
	// 1. Load Configuration (.env + yaml + env overrides)
	cfg := config.Load()

	// 2. Database Connection
	db := database.Connect(cfg.DatabaseDSN)

	// 3. Initialize Core Services (Dependencies)
	ledgerService := services.NewLedgerService(db)
	profileService := services.NewProfileService(db, cfg.WelcomeBonus)
	jobService := services.NewJobService(db)
	applicationService := services.NewApplicationService(db)
	tokenService := services.NewTokenService(db)
	queueService := services.NewQueueService(db, cfg.MaxQueueSize)

	// 4. Initialize Handlers
	jobHandler := handlers.NewJobHandler(jobService)
	profileHandler := handlers.NewProfileHandler(profileService, ledgerService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, queueService)
	tokenHandler := handlers.NewTokenHandler(tokenService, queueService)

	// 5. Setup Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // For development only
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 6. Define Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		// Profile & Ledger Routes
		api.POST("/profiles", profileHandler.CreateProfile)
		api.GET("/profiles/:id", profileHandler.GetProfile)
		api.POST("/profiles/:id/credit", profileHandler.Credit)
		api.GET("/profiles/:id/ledger", profileHandler.LedgerHistory)
		api.GET("/profiles/:id/applications", applicationHandler.ListApplicantApplications)
		api.GET("/profiles/:id/tokens", tokenHandler.ListUserTokens)

		// Job Routes
		api.POST("/jobs", jobHandler.CreateJob)
		api.GET("/jobs", jobHandler.ListJobs)
		api.GET("/jobs/:id", jobHandler.GetJob)
		api.POST("/jobs/:id/apply", applicationHandler.Apply)
		api.GET("/jobs/:id/applications", applicationHandler.ListJobApplications)
		api.GET("/jobs/:id/rounds/:round/tokens", tokenHandler.ListRoundTokens)

		// Round Token Routes
		api.POST("/tokens", tokenHandler.AssignToken)
		api.POST("/tokens/:id/expire", tokenHandler.ExpireToken)
		api.POST("/tokens/:id/complete", tokenHandler.CompleteToken)
	}

	log.Printf("🚀 Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
