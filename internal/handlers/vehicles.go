package handlers

import (
	"log"
	"time"

	"github.com/fleetdesk/fleetdesk-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateVehicle adds a vehicle to the fleet
func CreateVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Plate      string  `json:"plate" binding:"required"`
			Make       string  `json:"make" binding:"required"`
			ModelName  string  `json:"modelName" binding:"required"`
			Color      string  `json:"color"`
			Year       int     `json:"year"`
			DailyRate  float64 `json:"dailyRate" binding:"required"`
			HourlyRate float64 `json:"hourlyRate" binding:"required"`
			ImageURL   string  `json:"imageUrl"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.DailyRate < 0 || input.HourlyRate < 0 {
			c.JSON(400, gin.H{"error": "Rates must be non-negative"})
			return
		}

		vehicle := models.Vehicle{
			Plate:      input.Plate,
			Make:       input.Make,
			ModelName:  input.ModelName,
			Color:      input.Color,
			Year:       input.Year,
			DailyRate:  input.DailyRate,
			HourlyRate: input.HourlyRate,
			Status:     models.VehicleStatusAvailable,
			ImageURL:   input.ImageURL,
		}

		if err := db.Create(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create vehicle"})
			return
		}

		c.JSON(201, vehicle)
	}
}

// GetVehicles lists the whole fleet
func GetVehicles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vehicles []models.Vehicle
		if err := db.Order("make, model_name").Find(&vehicles).Error; err != nil {
			// Degrade to an empty list so the form stays usable
			log.Printf("Failed to fetch vehicles: %v", err)
			c.JSON(200, []models.Vehicle{})
			return
		}

		c.JSON(200, vehicles)
	}
}

// GetAvailableVehicles lists vehicles free in the requested window.
// Without a window it returns every vehicle not in maintenance and not
// currently rented.
func GetAvailableVehicles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		startStr := c.Query("start")
		endStr := c.Query("end")

		query := db.Where("status = ?", models.VehicleStatusAvailable)

		if startStr != "" && endStr != "" {
			start, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid start date"})
				return
			}
			end, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid end date"})
				return
			}

			query = query.Where(
				"id NOT IN (?)",
				db.Model(&models.Rental{}).
					Select("vehicle_id").
					Where("status IN ?", []string{models.RentalStatusBooked, models.RentalStatusActive}).
					Where("starts_at < ? AND ends_at > ?", end.AddDate(0, 0, 1), start),
			)
		}

		var vehicles []models.Vehicle
		if err := query.Order("make, model_name").Find(&vehicles).Error; err != nil {
			log.Printf("Failed to fetch available vehicles: %v", err)
			c.JSON(200, []models.Vehicle{})
			return
		}

		c.JSON(200, vehicles)
	}
}

// UpdateVehicle edits a vehicle's details or status
func UpdateVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicleID := c.Param("id")

		var input struct {
			Plate      *string  `json:"plate"`
			Color      *string  `json:"color"`
			DailyRate  *float64 `json:"dailyRate"`
			HourlyRate *float64 `json:"hourlyRate"`
			Status     *string  `json:"status"`
			ImageURL   *string  `json:"imageUrl"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, vehicleID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}

		if input.Plate != nil {
			vehicle.Plate = *input.Plate
		}
		if input.Color != nil {
			vehicle.Color = *input.Color
		}
		if input.DailyRate != nil {
			if *input.DailyRate < 0 {
				c.JSON(400, gin.H{"error": "Daily rate must be non-negative"})
				return
			}
			vehicle.DailyRate = *input.DailyRate
		}
		if input.HourlyRate != nil {
			if *input.HourlyRate < 0 {
				c.JSON(400, gin.H{"error": "Hourly rate must be non-negative"})
				return
			}
			vehicle.HourlyRate = *input.HourlyRate
		}
		if input.Status != nil {
			switch *input.Status {
			case models.VehicleStatusAvailable, models.VehicleStatusRented, models.VehicleStatusMaintenance:
				vehicle.Status = *input.Status
			default:
				c.JSON(400, gin.H{"error": "Invalid vehicle status"})
				return
			}
		}
		if input.ImageURL != nil {
			vehicle.ImageURL = *input.ImageURL
		}

		if err := db.Save(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update vehicle"})
			return
		}

		c.JSON(200, vehicle)
	}
}

// DeleteVehicle removes a vehicle from the fleet
func DeleteVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vehicleID := c.Param("id")

		var count int64
		db.Model(&models.Rental{}).
			Where("vehicle_id = ? AND status IN ?", vehicleID, []string{models.RentalStatusBooked, models.RentalStatusActive}).
			Count(&count)
		if count > 0 {
			c.JSON(409, gin.H{"error": "Vehicle has active rentals"})
			return
		}

		if err := db.Delete(&models.Vehicle{}, vehicleID).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete vehicle"})
			return
		}

		c.JSON(200, gin.H{"message": "Vehicle deleted"})
	}
}
