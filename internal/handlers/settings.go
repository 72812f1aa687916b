package handlers

import (
	"context"
	"log"

	"github.com/fleetdesk/fleetdesk-backend/internal/booking"
	"github.com/fleetdesk/fleetdesk-backend/internal/models"
	"github.com/fleetdesk/fleetdesk-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LoadTransportFees returns the configured per-leg transport fees, trying
// the Redis cache before the database. Any failure degrades to zero fees so
// the form stays usable.
func LoadTransportFees(ctx context.Context, db *gorm.DB) booking.TransportFees {
	if services.RedisClient != nil {
		if fees, err := services.GetCachedTransportFees(ctx); err == nil {
			return fees
		}
	}

	var settings models.RentalSettings
	if err := db.First(&settings).Error; err != nil {
		log.Printf("Transport fee config unavailable, using zero fees: %v", err)
		return booking.TransportFees{}
	}

	fees := booking.TransportFees{PickupFee: settings.PickupFee, DropoffFee: settings.DropoffFee}
	if services.RedisClient != nil {
		if err := services.SetCachedTransportFees(ctx, fees); err != nil {
			log.Printf("Failed to cache transport fees: %v", err)
		}
	}
	return fees
}

// GetTransportFees returns the transport fee configuration
func GetTransportFees(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		fees := LoadTransportFees(c.Request.Context(), db)
		c.JSON(200, fees)
	}
}

// UpdateTransportFees updates the transport fee configuration
func UpdateTransportFees(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			PickupFee  *float64 `json:"pickupFee"`
			DropoffFee *float64 `json:"dropoffFee"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.PickupFee != nil && *input.PickupFee < 0 {
			c.JSON(400, gin.H{"error": "Pickup fee must be non-negative"})
			return
		}
		if input.DropoffFee != nil && *input.DropoffFee < 0 {
			c.JSON(400, gin.H{"error": "Dropoff fee must be non-negative"})
			return
		}

		var settings models.RentalSettings
		if err := db.First(&settings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to load settings"})
			return
		}

		if input.PickupFee != nil {
			settings.PickupFee = *input.PickupFee
		}
		if input.DropoffFee != nil {
			settings.DropoffFee = *input.DropoffFee
		}

		if err := db.Save(&settings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update settings"})
			return
		}

		if services.RedisClient != nil {
			if err := services.InvalidateTransportFees(c.Request.Context()); err != nil {
				log.Printf("Failed to invalidate fee cache: %v", err)
			}
		}

		c.JSON(200, settings)
	}
}

// GetDamageDepositPresets lists the deposit presets grouped by vehicle model
func GetDamageDepositPresets(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var presets []models.DamageDepositPreset
		query := db.Order("vehicle_model, sort_order")
		if model := c.Query("vehicleModel"); model != "" {
			query = query.Where("vehicle_model = ?", model)
		}
		if err := query.Find(&presets).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch deposit presets"})
			return
		}

		grouped := make(map[string][]models.DamageDepositPreset)
		for _, p := range presets {
			grouped[p.VehicleModel] = append(grouped[p.VehicleModel], p)
		}

		c.JSON(200, grouped)
	}
}

// CreateDamageDepositPreset adds a deposit preset for a vehicle model
func CreateDamageDepositPreset(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			VehicleModel string  `json:"vehicleModel" binding:"required"`
			Label        string  `json:"label" binding:"required"`
			Amount       float64 `json:"amount" binding:"required"`
			SortOrder    int     `json:"sortOrder"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.Amount < 0 {
			c.JSON(400, gin.H{"error": "Amount must be non-negative"})
			return
		}

		preset := models.DamageDepositPreset{
			VehicleModel: input.VehicleModel,
			Label:        input.Label,
			Amount:       input.Amount,
			SortOrder:    input.SortOrder,
			Enabled:      true,
		}

		if err := db.Create(&preset).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create deposit preset"})
			return
		}

		c.JSON(201, preset)
	}
}

// UpdateDamageDepositPreset updates or disables a deposit preset
func UpdateDamageDepositPreset(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		presetID := c.Param("id")

		var input struct {
			Label     *string  `json:"label"`
			Amount    *float64 `json:"amount"`
			Enabled   *bool    `json:"enabled"`
			SortOrder *int     `json:"sortOrder"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var preset models.DamageDepositPreset
		if err := db.First(&preset, presetID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Deposit preset not found"})
			return
		}

		if input.Label != nil {
			preset.Label = *input.Label
		}
		if input.Amount != nil {
			if *input.Amount < 0 {
				c.JSON(400, gin.H{"error": "Amount must be non-negative"})
				return
			}
			preset.Amount = *input.Amount
		}
		if input.Enabled != nil {
			preset.Enabled = *input.Enabled
		}
		if input.SortOrder != nil {
			preset.SortOrder = *input.SortOrder
		}

		if err := db.Save(&preset).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update deposit preset"})
			return
		}

		c.JSON(200, preset)
	}
}
