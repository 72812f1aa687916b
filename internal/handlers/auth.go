package handlers

import (
	"log"
	"time"

	"github.com/fleetdesk/fleetdesk-backend/internal/models"
	"github.com/fleetdesk/fleetdesk-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register creates a staff account
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Username    string `json:"username" binding:"required"`
			Email       string `json:"email" binding:"required,email"`
			Password    string `json:"password" binding:"required,min=8"`
			PhoneNumber string `json:"phoneNumber"`
			Role        string `json:"role" binding:"omitempty,oneof=employee guide admin owner"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var existing models.User
		if err := db.Where("email = ? OR username = ?", input.Email, input.Username).
			First(&existing).Error; err == nil {
			c.JSON(409, gin.H{"error": "An account with this email or username already exists"})
			return
		}

		user := models.User{
			Username:    input.Username,
			Email:       input.Email,
			Password:    input.Password,
			PhoneNumber: input.PhoneNumber,
			Role:        input.Role,
		}
		if user.Role == "" {
			user.Role = string(models.UserRoleEmployee)
		}

		if err := user.HashPassword(); err != nil {
			c.JSON(500, gin.H{"error": "Failed to process password"})
			return
		}

		if err := db.Create(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create account"})
			return
		}

		// Email verification OTP; registration succeeds even if the
		// email cannot be sent.
		code := utils.GenerateOTP(user.Email)
		otp := models.OTP{
			UserID:    user.ID,
			Code:      code,
			Type:      models.OTPTypeEmailVerification,
			ExpiresAt: time.Now().Add(15 * time.Minute),
		}
		if err := db.Create(&otp).Error; err == nil {
			if err := utils.SendEmailVerificationOTP(user.Email, code); err != nil {
				log.Printf("Failed to send verification email to %s: %v", user.Email, err)
			}
		}

		c.JSON(201, gin.H{
			"message": "Account created. Check your email for a verification code.",
			"userId":  user.ID,
		})
	}
}

// VerifyEmail confirms the OTP sent at registration
func VerifyEmail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required,email"`
			Code  string `json:"code" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			c.JSON(404, gin.H{"error": "Account not found"})
			return
		}

		var otp models.OTP
		if err := db.Where("user_id = ? AND code = ? AND type = ?",
			user.ID, input.Code, models.OTPTypeEmailVerification).
			Order("created_at DESC").First(&otp).Error; err != nil {
			c.JSON(400, gin.H{"error": "Invalid verification code"})
			return
		}

		if !otp.IsValid() {
			c.JSON(400, gin.H{"error": "Verification code has expired"})
			return
		}

		if err := otp.MarkAsUsed(db); err != nil {
			c.JSON(500, gin.H{"error": "Failed to verify account"})
			return
		}

		user.IsVerified = true
		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to verify account"})
			return
		}

		c.JSON(200, gin.H{"message": "Email verified. You can now sign in."})
	}
}

// Login authenticates a staff account and returns a JWT
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			c.JSON(401, gin.H{"error": "Invalid email or password"})
			return
		}

		if err := user.CheckPassword(input.Password); err != nil {
			c.JSON(401, gin.H{"error": "Invalid email or password"})
			return
		}

		if !user.IsVerified {
			c.JSON(403, gin.H{"error": "Email not verified"})
			return
		}

		token, err := utils.GenerateToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{
			"token": token,
			"user": gin.H{
				"id":       user.ID,
				"username": user.Username,
				"email":    user.Email,
				"role":     user.Role,
			},
		})
	}
}

// ForgotPassword sends a password reset OTP by email and SMS
func ForgotPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required,email"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			// Do not reveal whether the account exists
			c.JSON(200, gin.H{"message": "If the account exists, a reset code has been sent"})
			return
		}

		code := utils.GenerateOTP(user.Email)
		otp := models.OTP{
			UserID:    user.ID,
			Code:      code,
			Type:      models.OTPTypePasswordReset,
			ExpiresAt: time.Now().Add(15 * time.Minute),
		}
		if err := db.Create(&otp).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create reset code"})
			return
		}

		if err := utils.SendPasswordResetOTP(user.Email, user.PhoneNumber, code); err != nil {
			log.Printf("Failed to send reset code to %s: %v", user.Email, err)
		}

		c.JSON(200, gin.H{"message": "If the account exists, a reset code has been sent"})
	}
}

// VerifyResetOTP checks a password reset code without consuming it
func VerifyResetOTP(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required,email"`
			Code  string `json:"code" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			c.JSON(400, gin.H{"error": "Invalid reset code"})
			return
		}

		var otp models.OTP
		if err := db.Where("user_id = ? AND code = ? AND type = ?",
			user.ID, input.Code, models.OTPTypePasswordReset).
			Order("created_at DESC").First(&otp).Error; err != nil {
			c.JSON(400, gin.H{"error": "Invalid reset code"})
			return
		}

		if !otp.IsValid() {
			c.JSON(400, gin.H{"error": "Reset code has expired"})
			return
		}

		c.JSON(200, gin.H{"message": "Code verified"})
	}
}

// ResetPassword consumes a valid reset OTP and sets a new password
func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email       string `json:"email" binding:"required,email"`
			Code        string `json:"code" binding:"required"`
			NewPassword string `json:"newPassword" binding:"required,min=8"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			c.JSON(400, gin.H{"error": "Invalid reset code"})
			return
		}

		var otp models.OTP
		if err := db.Where("user_id = ? AND code = ? AND type = ?",
			user.ID, input.Code, models.OTPTypePasswordReset).
			Order("created_at DESC").First(&otp).Error; err != nil {
			c.JSON(400, gin.H{"error": "Invalid reset code"})
			return
		}

		if !otp.IsValid() {
			c.JSON(400, gin.H{"error": "Reset code has expired"})
			return
		}

		user.Password = input.NewPassword
		if err := user.HashPassword(); err != nil {
			c.JSON(500, gin.H{"error": "Failed to process password"})
			return
		}

		if err := otp.MarkAsUsed(db); err != nil {
			c.JSON(500, gin.H{"error": "Failed to reset password"})
			return
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to reset password"})
			return
		}

		c.JSON(200, gin.H{"message": "Password reset. You can now sign in."})
	}
}
