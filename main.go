package main

import (
	"log"
	"net/http"

	"github.com/fieldlink/fieldlink-api/config"
	"github.com/fieldlink/fieldlink-api/controllers"
	"github.com/fieldlink/fieldlink-api/middleware"
	"github.com/fieldlink/fieldlink-api/models"
	"github.com/fieldlink/fieldlink-api/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Basic logging
	log.Println("Starting FieldLink API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Distributor{},
		&models.Shop{},
		&models.Product{},
		&models.Variant{},
		&models.CheckIn{},
		&models.DamageClaim{},
		&models.Replacement{},
		&models.SalesInquiry{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := config.RepairTrackingIDIndex(db); err != nil {
		log.Fatalf("Failed to repair tracking ID index: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize S3 storage when configured; local uploads otherwise
	if cfg.HasS3() {
		if _, err := services.InitS3Service(); err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		log.Println("S3 storage initialized")
	} else {
		log.Println("S3 not configured, storing uploads locally")
	}

	// Initialize Gin router
	router := gin.Default()
	router.Use(cors.Default())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Locally served uploads (no auth; filenames are unguessable)
		v1.GET("/uploads/:filename", controllers.GetUploadedImage)

		// Everything below requires a valid token
		authed := v1.Group("")
		authed.Use(middleware.EnsureValidToken(cfg))
		{
			// Users
			authed.POST("/users", controllers.CreateUser)
			authed.GET("/users/me", controllers.GetMyProfile)
			authed.PUT("/users/me", controllers.UpdateMyProfile)

			// Distributors (admin writes)
			authed.POST("/distributors", middleware.RequireRole(models.RoleAdmin), controllers.CreateDistributor)
			authed.GET("/distributors", controllers.ListDistributors)
			authed.GET("/distributors/:id", controllers.GetDistributor)
			authed.PUT("/distributors/:id", middleware.RequireRole(models.RoleAdmin), controllers.UpdateDistributor)
			authed.DELETE("/distributors/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteDistributor)

			// Shops
			authed.POST("/shops", middleware.RequireRole(models.RoleMarketing, models.RoleAdmin), controllers.CreateShop)
			authed.PUT("/shops/:id/review", middleware.RequireRole(models.RoleAdmin), controllers.ReviewShop)
			authed.GET("/shops", controllers.ListShops)
			authed.GET("/shops/:id", controllers.GetShop)

			// Field check-ins
			authed.POST("/checkins", middleware.RequireRole(models.RoleMarketing), controllers.CreateCheckIn)
			authed.GET("/checkins", controllers.ListCheckIns)

			// Product catalog
			authed.POST("/products", middleware.RequireRole(models.RoleAdmin), controllers.CreateProduct)
			authed.GET("/products", controllers.ListProducts)
			authed.GET("/products/:id", controllers.GetProduct)
			authed.PUT("/products/:id", middleware.RequireRole(models.RoleAdmin), controllers.UpdateProduct)
			authed.DELETE("/products/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteProduct)
			authed.POST("/products/:id/variants", middleware.RequireRole(models.RoleAdmin), controllers.CreateVariant)
			authed.DELETE("/variants/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteVariant)

			// Damage claims
			authed.POST("/claims", middleware.RequireRole(models.RoleMarketing, models.RoleDistributor), controllers.CreateClaim)
			authed.GET("/claims", controllers.ListClaims)
			authed.GET("/claims/tracking/:trackingId", controllers.GetClaimByTracking)
			authed.GET("/claims/:id", controllers.GetClaim)
			authed.PUT("/claims/:id/decision", middleware.RequireRole(models.RoleManager), controllers.DecideClaim)
			authed.PUT("/claims/:id/comment", middleware.RequireRole(models.RoleManager), controllers.AnnotateClaim)
			authed.DELETE("/claims/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteClaim)

			// Replacement dispatch
			authed.POST("/replacements", middleware.RequireRole(models.RoleGodown), controllers.CreateReplacement)

			// Sales inquiries
			authed.POST("/inquiries", middleware.RequireRole(models.RoleMarketing, models.RoleDistributor), controllers.CreateInquiry)
			authed.GET("/inquiries", controllers.ListInquiries)
			authed.GET("/inquiries/:id", controllers.GetInquiry)
			authed.PUT("/inquiries/:id/review", middleware.RequireRole(models.RoleManager), controllers.ReviewInquiry)
			authed.PUT("/inquiries/:id/dispatch", middleware.RequireRole(models.RoleGodown), controllers.DispatchInquiry)
		}
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "FieldLink API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
