package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"wedding-hall-server/config"
	"wedding-hall-server/database"
	"wedding-hall-server/jobs"
	"wedding-hall-server/middleware"
	"wedding-hall-server/models"
	"wedding-hall-server/routes"
	"wedding-hall-server/utils"
	ws "wedding-hall-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Ensure the admin account exists
	if err := seedAdmin(); err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Input validation
	router.Use(middleware.InputValidationMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())

	// CORS
	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = []string{origins}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Audit logging
	router.Use(middleware.AuditLogMiddleware())

	// Booking event hub
	hub := ws.NewHub()
	go hub.Run()

	routes.RegisterRoutes(router, hub)

	// Background token cleanup
	cleanupJob := jobs.NewTokenCleanupJob()
	cleanupJob.Start()
	defer cleanupJob.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// seedAdmin creates the admin user from configuration if it does not exist
func seedAdmin() error {
	cfg := config.AppConfig.Admin

	var existing models.User
	if err := database.DB.Where("email = ?", cfg.Email).First(&existing).Error; err == nil {
		return nil
	}

	hash, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        cfg.Email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin account created: %s", cfg.Email)
	return nil
}
