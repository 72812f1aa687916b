package handlers

import (
	"context"
	"log"
	"time"

	"github.com/fleetdesk/fleetdesk-backend/internal/models"
	"github.com/fleetdesk/fleetdesk-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProfile returns the authenticated user's profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		c.JSON(200, gin.H{
			"id":             user.ID,
			"username":       user.Username,
			"email":          user.Email,
			"phoneNumber":    user.PhoneNumber,
			"role":           user.Role,
			"approvalAlerts": user.ApprovalAlerts,
		})
	}
}

// UpdateProfile edits the authenticated user's contact details
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input struct {
			Username    *string `json:"username"`
			PhoneNumber *string `json:"phoneNumber"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		if input.Username != nil {
			user.Username = *input.Username
		}
		if input.PhoneNumber != nil {
			user.PhoneNumber = *input.PhoneNumber
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update profile"})
			return
		}

		c.JSON(200, gin.H{"message": "Profile updated"})
	}
}

// UpdateFCMToken registers the device token used for push notifications.
// Approvers are also subscribed to the approvals topic.
func UpdateFCMToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input struct {
			FCMToken string `json:"fcmToken" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		user.FCMToken = input.FCMToken
		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to save token"})
			return
		}

		if user.CanApprove() {
			go func(token string) {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := services.SubscribeToTopic(ctx, []string{token}, "approvals"); err != nil {
					log.Printf("Failed to subscribe user %d to approvals topic: %v", userID, err)
				}
			}(user.FCMToken)
		}

		c.JSON(200, gin.H{"message": "Token registered"})
	}
}

// RemoveFCMToken clears the device token on sign-out
func RemoveFCMToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		oldToken := user.FCMToken
		user.FCMToken = ""
		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to remove token"})
			return
		}

		if oldToken != "" && user.CanApprove() {
			go func(token string) {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := services.UnsubscribeFromTopic(ctx, []string{token}, "approvals"); err != nil {
					log.Printf("Failed to unsubscribe user %d from approvals topic: %v", userID, err)
				}
			}(oldToken)
		}

		c.JSON(200, gin.H{"message": "Token removed"})
	}
}

// UpdateApprovalAlerts toggles price-override approval notifications
func UpdateApprovalAlerts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input struct {
			Enabled *bool `json:"enabled" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if err := db.Model(&models.User{}).Where("id = ?", userID).
			Update("approval_alerts", *input.Enabled).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update preference"})
			return
		}

		c.JSON(200, gin.H{"approvalAlerts": *input.Enabled})
	}
}
