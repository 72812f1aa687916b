package main

import (
	"log"
	"os"

	"github.com/fleetdesk/fleetdesk-backend/internal/database"
	"github.com/fleetdesk/fleetdesk-backend/internal/handlers"
	"github.com/fleetdesk/fleetdesk-backend/internal/jobs"
	"github.com/fleetdesk/fleetdesk-backend/internal/middleware"
	"github.com/fleetdesk/fleetdesk-backend/internal/models"
	"github.com/fleetdesk/fleetdesk-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := services.InitRedis(); err != nil {
		log.Printf("Redis unavailable, caching and submit locks disabled: %v", err)
	}

	if err := services.InitFirebase(); err != nil {
		log.Printf("Firebase unavailable, push notifications disabled: %v", err)
	}

	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	hub := services.NewHub()
	go hub.Run()

	extractor := services.NewOCRExtractor()
	paymentProvider := services.NewPaymentProvider()

	sweeper := jobs.StartOverdueSweep(db)
	defer sweeper.Stop()

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	// Local uploads are served directly when S3 is not configured
	router.Static("/uploads", "./uploads")

	adminOnly := middleware.RequireRole(string(models.UserRoleAdmin), string(models.UserRoleOwner))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
			auth.POST("/verify-email", handlers.VerifyEmail(db))
			auth.POST("/forgot-password", handlers.ForgotPassword(db))
			auth.POST("/verify-otp", handlers.VerifyResetOTP(db))
			auth.POST("/reset-password", handlers.ResetPassword(db))
		}

		// Provider callback authenticates via webhook signature, not JWT
		api.POST("/payments/webhook", handlers.PaymentWebhook(db, paymentProvider, hub))

		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			users := protected.Group("/users")
			{
				users.GET("/me", handlers.GetProfile(db))
				users.PUT("/me", handlers.UpdateProfile(db))
				users.PUT("/me/fcm-token", handlers.UpdateFCMToken(db))
				users.DELETE("/me/fcm-token", handlers.RemoveFCMToken(db))
				users.PUT("/me/approval-alerts", handlers.UpdateApprovalAlerts(db))
				users.POST("/me/test-notification", handlers.SendTestNotification(db))
			}

			vehicles := protected.Group("/vehicles")
			{
				vehicles.GET("", handlers.GetVehicles(db))
				vehicles.GET("/available", handlers.GetAvailableVehicles(db))
				vehicles.POST("", adminOnly, handlers.CreateVehicle(db))
				vehicles.PUT("/:id", adminOnly, handlers.UpdateVehicle(db))
				vehicles.DELETE("/:id", adminOnly, handlers.DeleteVehicle(db))
			}

			customers := protected.Group("/customers")
			{
				customers.GET("", handlers.SearchCustomers(db))
				customers.GET("/:id", handlers.GetCustomer(db))
				customers.POST("", handlers.UpsertCustomer(db))
			}

			rentals := protected.Group("/rentals")
			{
				rentals.POST("/quote", handlers.QuoteRental(db))
				rentals.POST("", handlers.CreateRental(db, hub))
				rentals.GET("", handlers.GetRentals(db))
				rentals.GET("/:id", handlers.GetRental(db))
				rentals.PUT("/:id", handlers.UpdateRental(db, hub))
				rentals.POST("/:id/cancel", handlers.CancelRental(db, hub))
				rentals.POST("/:id/status", handlers.UpdateRentalStatus(db, hub))
				rentals.POST("/:id/payment-status", handlers.SetRentalPaymentStatus(db))
				rentals.POST("/:id/approve-price", adminOnly, handlers.ApprovePriceOverride(db, hub))
				rentals.GET("/:id/payments", handlers.GetRentalPayments(db))
			}

			settings := protected.Group("/settings")
			{
				settings.GET("/transport-fees", handlers.GetTransportFees(db))
				settings.PUT("/transport-fees", adminOnly, handlers.UpdateTransportFees(db))
				settings.GET("/damage-deposits", handlers.GetDamageDepositPresets(db))
				settings.POST("/damage-deposits", adminOnly, handlers.CreateDamageDepositPreset(db))
				settings.PUT("/damage-deposits/:id", adminOnly, handlers.UpdateDamageDepositPreset(db))
			}

			tours := protected.Group("/tours")
			{
				tours.GET("", handlers.GetTours(db))
				tours.POST("", adminOnly, handlers.CreateTour(db))
				tours.PUT("/:id", adminOnly, handlers.UpdateTour(db))
				tours.POST("/:id/image", adminOnly, handlers.UploadTourImage(db))
				tours.POST("/bookings", handlers.CreateTourBooking(db))
				tours.GET("/bookings", handlers.GetTourBookings(db))
				tours.PUT("/bookings/:id/status", handlers.UpdateTourBookingStatus(db))
			}

			documents := protected.Group("/documents")
			{
				documents.POST("/scan", handlers.UploadScan(db, hub, extractor))
				documents.GET("/scan/:scanId", handlers.GetScan(db))
				documents.POST("/scan/:scanId/cancel", handlers.CancelScan(db))
				documents.POST("/scan/:scanId/merge", handlers.MergeScanFields(db))
			}

			payments := protected.Group("/payments")
			{
				payments.POST("/intent", handlers.CreateDepositPayment(db, paymentProvider))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("FleetDesk API listening on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
