package handlers

import (
	"encoding/json"
	"io"
	"log"

	"github.com/fleetdesk/fleetdesk-backend/internal/booking"
	"github.com/fleetdesk/fleetdesk-backend/internal/models"
	"github.com/fleetdesk/fleetdesk-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateDepositPayment charges a card for a rental's deposit through the
// payment provider. A declined card comes back as a 402 with the mapped
// human-readable message; the rental itself is untouched until the charge
// succeeds.
func CreateDepositPayment(db *gorm.DB, provider services.PaymentProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			RentalID  uint    `json:"rentalId" binding:"required"`
			Amount    float64 `json:"amount" binding:"required,gt=0"`
			Currency  string  `json:"currency"`
			CardToken string  `json:"cardToken" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var rental models.Rental
		if err := db.First(&rental, input.RentalID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Rental not found"})
			return
		}

		if input.Currency == "" {
			input.Currency = "usd"
		}

		record := models.PaymentRecord{
			RentalID:   rental.ID,
			ExternalID: uuid.New().String(),
			Amount:     input.Amount,
			Currency:   input.Currency,
			Status:     models.PaymentStatusRequiresPayment,
		}
		if err := db.Create(&record).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create payment"})
			return
		}

		resp, err := provider.CreateCardPayment(services.CreatePaymentReq{
			ExternalID:  record.ExternalID,
			Amount:      input.Amount,
			Currency:    input.Currency,
			Description: "Rental deposit",
			CardToken:   input.CardToken,
		})
		if err != nil {
			log.Printf("Payment provider error for rental %d: %v", rental.ID, err)
			record.Status = models.PaymentStatusFailed
			record.FailureMessage = "Payment provider is unavailable"
			db.Save(&record)
			c.JSON(502, gin.H{"error": "Payment provider is unavailable"})
			return
		}

		record.ProviderID = resp.PaymentID
		switch resp.Status {
		case "succeeded":
			record.Status = models.PaymentStatusSucceeded
		case "failed":
			record.Status = models.PaymentStatusFailed
			record.FailureCode = resp.DeclineCode
			record.FailureMessage = services.DeclineMessage(resp.DeclineCode)
		default:
			record.Status = models.PaymentStatusProcessing
		}
		if err := db.Save(&record).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to save payment"})
			return
		}

		if record.Status == models.PaymentStatusFailed {
			c.JSON(402, gin.H{"error": record.FailureMessage, "code": record.FailureCode, "payment": record})
			return
		}

		if record.Status == models.PaymentStatusSucceeded {
			applyDepositPayment(db, &rental, record.Amount)
		}

		c.JSON(201, record)
	}
}

// applyDepositPayment credits a successful charge against the rental and
// re-infers its payment status.
func applyDepositPayment(db *gorm.DB, rental *models.Rental, amount float64) {
	rental.DepositAmount += amount
	rental.RemainingAmount = rental.TotalAmount - rental.DepositAmount
	if rental.RemainingAmount < 0 {
		rental.RemainingAmount = 0
	}
	rental.PaymentStatus = string(booking.DerivePaymentStatus(
		rental.DepositAmount, rental.TotalAmount,
		booking.PaymentStatus(rental.PaymentStatus), nil,
	))
	if err := db.Save(rental).Error; err != nil {
		log.Printf("Failed to apply deposit payment to rental %d: %v", rental.ID, err)
	}
}

// GetRentalPayments lists payment attempts for one rental
func GetRentalPayments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rentalID := c.Param("id")

		var records []models.PaymentRecord
		if err := db.Where("rental_id = ?", rentalID).Order("created_at DESC").
			Find(&records).Error; err != nil {
			log.Printf("Failed to fetch payments: %v", err)
			c.JSON(200, []models.PaymentRecord{})
			return
		}

		c.JSON(200, records)
	}
}

type webhookEvent struct {
	Type string `json:"type"` // payment.succeeded, payment.failed
	Data struct {
		PaymentID   string  `json:"paymentId"`
		ExternalID  string  `json:"externalId"`
		Amount      float64 `json:"amount"`
		DeclineCode string  `json:"declineCode"`
	} `json:"data"`
}

// PaymentWebhook receives asynchronous payment outcomes from the provider.
// The signature is verified against the raw body before anything is parsed.
func PaymentWebhook(db *gorm.DB, provider services.PaymentProvider, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawBody, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(400, gin.H{"error": "Unreadable request body"})
			return
		}

		if err := provider.VerifyWebhookSignature(c.GetHeader("X-Webhook-Signature"), rawBody); err != nil {
			log.Printf("Rejected webhook with bad signature: %v", err)
			c.JSON(401, gin.H{"error": "Invalid signature"})
			return
		}

		var event webhookEvent
		if err := json.Unmarshal(rawBody, &event); err != nil || event.Data.ExternalID == "" {
			c.JSON(400, gin.H{"error": "Malformed event"})
			return
		}

		var record models.PaymentRecord
		if err := db.Where("external_id = ?", event.Data.ExternalID).First(&record).Error; err != nil {
			// Unknown payment: acknowledge so the provider stops retrying
			c.JSON(200, gin.H{"received": true})
			return
		}

		// Terminal states are final; replayed events are ignored
		if record.Status == models.PaymentStatusSucceeded || record.Status == models.PaymentStatusFailed {
			c.JSON(200, gin.H{"received": true})
			return
		}

		switch event.Type {
		case "payment.succeeded":
			record.Status = models.PaymentStatusSucceeded
			record.ProviderID = event.Data.PaymentID
			if err := db.Save(&record).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to save payment"})
				return
			}

			var rental models.Rental
			if err := db.First(&rental, record.RentalID).Error; err == nil {
				applyDepositPayment(db, &rental, record.Amount)
				announceRentalChange(hub, rental)
			}

		case "payment.failed":
			record.Status = models.PaymentStatusFailed
			record.ProviderID = event.Data.PaymentID
			record.FailureCode = event.Data.DeclineCode
			record.FailureMessage = services.DeclineMessage(event.Data.DeclineCode)
			if err := db.Save(&record).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to save payment"})
				return
			}

		default:
			log.Printf("Ignoring webhook event type %q", event.Type)
		}

		c.JSON(200, gin.H{"received": true})
	}
}
