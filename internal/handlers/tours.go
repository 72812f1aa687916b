package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/fleetdesk/fleetdesk-backend/internal/models"
	"github.com/fleetdesk/fleetdesk-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateTour adds a new tour card
func CreateTour(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Title          string  `json:"title" binding:"required"`
			Description    string  `json:"description"`
			PricePerPerson float64 `json:"pricePerPerson" binding:"required,gt=0"`
			DurationHours  int     `json:"durationHours" binding:"required,gt=0"`
			MaxPartySize   int     `json:"maxPartySize"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		tour := models.Tour{
			Title:          input.Title,
			Description:    input.Description,
			PricePerPerson: input.PricePerPerson,
			DurationHours:  input.DurationHours,
			MaxPartySize:   input.MaxPartySize,
			IsActive:       true,
		}
		if tour.MaxPartySize == 0 {
			tour.MaxPartySize = 8
		}

		if err := db.Create(&tour).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create tour"})
			return
		}

		c.JSON(201, tour)
	}
}

// GetTours lists tour cards. By default only active tours are returned.
func GetTours(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tours []models.Tour
		query := db.Order("created_at DESC")
		if c.Query("all") != "true" {
			query = query.Where("is_active = ?", true)
		}

		if err := query.Find(&tours).Error; err != nil {
			log.Printf("Failed to fetch tours: %v", err)
			c.JSON(200, []models.Tour{})
			return
		}

		c.JSON(200, tours)
	}
}

// UpdateTour edits a tour card
func UpdateTour(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tourID := c.Param("id")

		var tour models.Tour
		if err := db.First(&tour, tourID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Tour not found"})
			return
		}

		var input struct {
			Title          *string  `json:"title"`
			Description    *string  `json:"description"`
			PricePerPerson *float64 `json:"pricePerPerson"`
			DurationHours  *int     `json:"durationHours"`
			MaxPartySize   *int     `json:"maxPartySize"`
			IsActive       *bool    `json:"isActive"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.Title != nil {
			tour.Title = *input.Title
		}
		if input.Description != nil {
			tour.Description = *input.Description
		}
		if input.PricePerPerson != nil {
			tour.PricePerPerson = *input.PricePerPerson
		}
		if input.DurationHours != nil {
			tour.DurationHours = *input.DurationHours
		}
		if input.MaxPartySize != nil {
			tour.MaxPartySize = *input.MaxPartySize
		}
		if input.IsActive != nil {
			tour.IsActive = *input.IsActive
		}

		if err := db.Save(&tour).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update tour"})
			return
		}

		c.JSON(200, tour)
	}
}

// UploadTourImage stores a tour card image and saves its URL
func UploadTourImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tourID := c.Param("id")

		var tour models.Tour
		if err := db.First(&tour, tourID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Tour not found"})
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(400, gin.H{"error": "No image file provided"})
			return
		}

		url, err := services.UploadImage(file, "tours")
		if err != nil {
			log.Printf("Failed to upload tour image: %v", err)
			c.JSON(500, gin.H{"error": "Failed to upload image"})
			return
		}

		tour.ImageURL = url
		if err := db.Save(&tour).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update tour"})
			return
		}

		c.JSON(200, tour)
	}
}

// CreateTourBooking books a party onto a tour
func CreateTourBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input struct {
			TourID     uint   `json:"tourId" binding:"required"`
			CustomerID uint   `json:"customerId" binding:"required"`
			PartySize  int    `json:"partySize" binding:"required,gt=0"`
			TourDate   string `json:"tourDate" binding:"required"` // 2006-01-02
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var tour models.Tour
		if err := db.First(&tour, input.TourID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Tour not found"})
			return
		}
		if !tour.IsActive {
			c.JSON(409, gin.H{"error": "Tour is not open for booking"})
			return
		}
		if input.PartySize > tour.MaxPartySize {
			c.JSON(400, gin.H{"error": fmt.Sprintf("Party size exceeds the maximum of %d", tour.MaxPartySize)})
			return
		}

		tourDate, err := time.Parse("2006-01-02", input.TourDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid tour date"})
			return
		}

		bookingRecord := models.TourBooking{
			TourID:      tour.ID,
			CustomerID:  input.CustomerID,
			PartySize:   input.PartySize,
			TourDate:    tourDate,
			TotalAmount: tour.PricePerPerson * float64(input.PartySize),
			Status:      models.TourBookingStatusPending,
			CreatedBy:   userID,
		}

		if err := db.Create(&bookingRecord).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create tour booking"})
			return
		}

		c.JSON(201, bookingRecord)
	}
}

// GetTourBookings lists bookings, optionally for a single tour
func GetTourBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bookings []models.TourBooking
		query := db.Preload("Tour").Preload("Customer").Order("tour_date ASC")

		if tourID := c.Query("tourId"); tourID != "" {
			query = query.Where("tour_id = ?", tourID)
		}
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		if err := query.Find(&bookings).Error; err != nil {
			log.Printf("Failed to fetch tour bookings: %v", err)
			c.JSON(200, []models.TourBooking{})
			return
		}

		c.JSON(200, bookings)
	}
}

// UpdateTourBookingStatus confirms or cancels a tour booking
func UpdateTourBookingStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID := c.Param("id")

		var input struct {
			Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var bookingRecord models.TourBooking
		if err := db.First(&bookingRecord, bookingID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Tour booking not found"})
			return
		}

		bookingRecord.Status = input.Status
		if err := db.Save(&bookingRecord).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update tour booking"})
			return
		}

		c.JSON(200, bookingRecord)
	}
}
