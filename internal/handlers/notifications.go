package handlers

import (
	"context"
	"time"

	"github.com/fleetdesk/fleetdesk-backend/internal/models"
	"github.com/fleetdesk/fleetdesk-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SendTestNotification pushes a test notification to the caller's device.
// Useful for verifying FCM setup from the settings screen.
func SendTestNotification(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		if user.FCMToken == "" {
			c.JSON(400, gin.H{"error": "No device token registered"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		err := services.SendNotificationToToken(ctx, user.FCMToken, services.NotificationPayload{
			Title: "FleetDesk",
			Body:  "Test notification delivered",
			Data:  map[string]interface{}{"type": "test"},
		})
		if err != nil {
			c.JSON(502, gin.H{"error": "Failed to deliver notification"})
			return
		}

		c.JSON(200, gin.H{"message": "Notification sent"})
	}
}
