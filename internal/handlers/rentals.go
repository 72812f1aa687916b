package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fleetdesk/fleetdesk-backend/internal/booking"
	"github.com/fleetdesk/fleetdesk-backend/internal/models"
	"github.com/fleetdesk/fleetdesk-backend/internal/services"
	"github.com/fleetdesk/fleetdesk-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// submitTimeout bounds how long a rental submission may hold the request.
const submitTimeout = 30 * time.Second

type rentalDraftInput struct {
	RentalType       string   `json:"rentalType" binding:"required,oneof=hourly daily"`
	StartDate        string   `json:"startDate" binding:"required"`
	StartTime        string   `json:"startTime"`
	EndDate          string   `json:"endDate" binding:"required"`
	EndTime          string   `json:"endTime"`
	VehicleID        uint     `json:"vehicleId" binding:"required"`
	CustomerID       uint     `json:"customerId"`
	UnitPrice        *float64 `json:"unitPrice"` // nil means use the vehicle's rate
	TransportPickup  bool     `json:"transportPickup"`
	TransportDropoff bool     `json:"transportDropoff"`
	DepositAmount    float64  `json:"depositAmount"`
	DamageDeposit    float64  `json:"damageDeposit"`
	Notes            string   `json:"notes"`
}

// deriveDraft replays the form input through the booking reducer so every
// derived field (quantity, fees, totals, statuses) is recomputed server-side
// from raw input. The client's derived values are never trusted.
func deriveDraft(c *gin.Context, db *gorm.DB, input rentalDraftInput, seed booking.Draft) (booking.Draft, []booking.Advisory, error) {
	var vehicle models.Vehicle
	if err := db.First(&vehicle, input.VehicleID).Error; err != nil {
		return booking.Draft{}, nil, fmt.Errorf("vehicle not found")
	}

	env := booking.Env{
		Role: booking.Role(c.GetString("userRole")),
		Fees: LoadTransportFees(c.Request.Context(), db),
	}

	d := seed
	var advisories []booking.Advisory

	apply := func(a booking.Action) {
		var adv []booking.Advisory
		d, adv = booking.Apply(d, a, env)
		advisories = append(advisories, adv...)
	}

	apply(booking.SetRentalType{Value: booking.RentalType(input.RentalType)})
	apply(booking.SetVehicle{ID: vehicle.ID, AutoUnitPrice: vehicle.RateFor(input.RentalType)})
	apply(booking.SetCustomer{ID: input.CustomerID})
	apply(booking.SetDates{
		StartDate: input.StartDate, StartTime: input.StartTime,
		EndDate: input.EndDate, EndTime: input.EndTime,
	})
	apply(booking.SetTransportOptions{Pickup: input.TransportPickup, Dropoff: input.TransportDropoff})
	if input.UnitPrice != nil {
		apply(booking.SetUnitPrice{Value: *input.UnitPrice})
	}
	apply(booking.SetDamageDeposit{Value: input.DamageDeposit})
	apply(booking.SetDeposit{Value: input.DepositAmount})

	return d, advisories, nil
}

// QuoteRental runs the full derivation without persisting anything. The
// form calls it to populate its read-only derived fields.
func QuoteRental(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input rentalDraftInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		draft, advisories, err := deriveDraft(c, db, input, booking.NewDraft(booking.RentalType(input.RentalType)))
		if err != nil {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"draft":      draft,
			"advisories": advisories,
		})
	}
}

// hasBookingConflict reports whether the vehicle already has a rental
// overlapping the window.
func hasBookingConflict(db *gorm.DB, vehicleID uint, startsAt, endsAt time.Time, excludeRentalID uint) bool {
	var count int64
	query := db.Model(&models.Rental{}).
		Where("vehicle_id = ?", vehicleID).
		Where("status IN ?", []string{models.RentalStatusBooked, models.RentalStatusActive}).
		Where("starts_at < ? AND ends_at > ?", endsAt, startsAt)
	if excludeRentalID != 0 {
		query = query.Where("id != ?", excludeRentalID)
	}
	query.Count(&count)
	return count > 0
}

func rentalFromDraft(d booking.Draft, createdBy uint, notes string) (models.Rental, error) {
	startsAt, err := booking.ComposeDateTime(d.StartDate, d.StartTime)
	if err != nil {
		return models.Rental{}, err
	}
	endsAt, err := booking.ComposeDateTime(d.EndDate, d.EndTime)
	if err != nil {
		return models.Rental{}, err
	}

	return models.Rental{
		CustomerID:          d.CustomerID,
		VehicleID:           d.VehicleID,
		CreatedBy:           createdBy,
		RentalType:          string(d.RentalType),
		StartDate:           d.StartDate,
		StartTime:           d.StartTime,
		EndDate:             d.EndDate,
		EndTime:             d.EndTime,
		StartsAt:            startsAt,
		EndsAt:              endsAt,
		Quantity:            d.Quantity,
		UnitPrice:           d.UnitPrice,
		AutoUnitPrice:       d.AutoUnitPrice,
		TransportPickup:     d.TransportPickup,
		TransportDropoff:    d.TransportDropoff,
		TransportFee:        d.TransportFee,
		DepositAmount:       d.DepositAmount,
		DamageDeposit:       d.DamageDeposit,
		Subtotal:            d.Subtotal,
		TotalAmount:         d.TotalAmount,
		RemainingAmount:     d.RemainingAmount,
		Status:              models.RentalStatusBooked,
		PaymentStatus:       string(d.PaymentStatus),
		ApprovalStatus:      string(d.ApprovalStatus),
		PendingTotalRequest: d.PendingTotalRequest,
		Notes:               notes,
	}, nil
}

// announceRentalChange pushes a rental change to connected dashboards and
// onto the Redis channel other instances subscribe to. Best effort.
func announceRentalChange(hub *services.Hub, rental models.Rental) {
	if hub != nil {
		services.BroadcastRentalChanged(hub, services.RentalChanged{
			RentalID:      rental.ID,
			Status:        rental.Status,
			PaymentStatus: rental.PaymentStatus,
			TotalAmount:   rental.TotalAmount,
		})
	}

	if services.RedisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := services.PublishRentalUpdate(ctx, rental.ID, rental.Status, map[string]interface{}{
			"paymentStatus": rental.PaymentStatus,
			"totalAmount":   rental.TotalAmount,
		})
		if err != nil {
			log.Printf("Failed to publish rental update: %v", err)
		}
	}
}

// sendRentalConfirmation texts the customer that the booking went through.
// Failures are logged and never surface to the request.
func sendRentalConfirmation(db *gorm.DB, rental models.Rental) {
	var customer models.Customer
	if err := db.First(&customer, rental.CustomerID).Error; err != nil {
		log.Printf("Customer %d not found for confirmation SMS: %v", rental.CustomerID, err)
		return
	}
	if customer.PhoneNumber == "" {
		return
	}
	if err := utils.SendRentalConfirmationSMS(customer.PhoneNumber, rental.ID, rental.StartDate); err != nil {
		log.Printf("Failed to send confirmation SMS for rental %d: %v", rental.ID, err)
	}
}

// notifyApprovers alerts admins and owners about a pending price override.
// Best effort: every failure path is logged and swallowed; the caller's
// response does not depend on the outcome.
func notifyApprovers(db *gorm.DB, hub *services.Hub, rental models.Rental) {
	if rental.PendingTotalRequest == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var approvers []models.User
	if err := db.Where("role IN ? AND approval_alerts = ? AND fcm_token != ''",
		[]string{string(models.UserRoleAdmin), string(models.UserRoleOwner)}, true).
		Find(&approvers).Error; err != nil {
		log.Printf("Failed to fetch approvers for rental %d: %v", rental.ID, err)
		return
	}

	tokens := make([]string, 0, len(approvers))
	for _, u := range approvers {
		tokens = append(tokens, u.FCMToken)
	}

	notified := services.NotifyApprovers(ctx, tokens, *rental.PendingTotalRequest, rental.ID)
	log.Printf("Notified %d approver(s) for rental %d", notified, rental.ID)

	if hub != nil {
		services.BroadcastApprovalRequested(hub, services.ApprovalRequested{
			RentalID:     rental.ID,
			PendingTotal: *rental.PendingTotalRequest,
			RequestedBy:  rental.CreatedBy,
		})
	}
}

// CreateRental validates, derives and persists a new rental
func CreateRental(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input rentalDraftInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		draft, advisories, err := deriveDraft(c, db, input, booking.NewDraft(booking.RentalType(input.RentalType)))
		if err != nil {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}

		if fieldErrors := booking.ValidateForSubmit(draft); len(fieldErrors) > 0 {
			c.JSON(400, gin.H{"error": "Validation failed", "fields": fieldErrors})
			return
		}

		// At most one in-flight submission per draft
		lockKey := fmt.Sprintf("%d:%d:%s", userID, draft.VehicleID, draft.StartDate)
		if services.RedisClient != nil {
			acquired, err := services.AcquireSubmitLock(c.Request.Context(), lockKey)
			if err != nil {
				log.Printf("Submit lock unavailable, proceeding without it: %v", err)
			} else if !acquired {
				c.JSON(409, gin.H{"error": "A submission for this booking is already in progress"})
				return
			} else {
				defer func() {
					if err := services.ReleaseSubmitLock(context.Background(), lockKey); err != nil {
						log.Printf("Failed to release submit lock: %v", err)
					}
				}()
			}
		}

		rental, err := rentalFromDraft(draft, userID, input.Notes)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid rental period"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), submitTimeout)
		defer cancel()

		if hasBookingConflict(db.WithContext(ctx), rental.VehicleID, rental.StartsAt, rental.EndsAt, 0) {
			c.JSON(409, gin.H{"error": "Vehicle is already booked for the selected period"})
			return
		}

		if err := db.WithContext(ctx).Create(&rental).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create rental"})
			return
		}

		if rental.ApprovalStatus == string(booking.ApprovalStatusPending) {
			go notifyApprovers(db, hub, rental)
		}
		go sendRentalConfirmation(db, rental)

		announceRentalChange(hub, rental)

		response := gin.H{
			"rental":     rental,
			"advisories": advisories,
		}
		if rental.ApprovalStatus == string(booking.ApprovalStatusPending) {
			// The user sees the same message whatever happened to the
			// notification fan-out.
			response["message"] = "Approval request saved"
		}

		c.JSON(http.StatusCreated, response)
	}
}

// GetRentals lists rentals with optional status filtering
func GetRentals(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rentals []models.Rental
		query := db.Preload("Customer").Preload("Vehicle").Order("starts_at DESC")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if approval := c.Query("approvalStatus"); approval != "" {
			query = query.Where("approval_status = ?", approval)
		}

		if err := query.Limit(100).Find(&rentals).Error; err != nil {
			log.Printf("Failed to fetch rentals: %v", err)
			c.JSON(200, []models.Rental{})
			return
		}

		c.JSON(200, rentals)
	}
}

// GetRental retrieves one rental with its customer and vehicle
func GetRental(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rentalID := c.Param("id")

		var rental models.Rental
		if err := db.Preload("Customer").Preload("Vehicle").Preload("Creator").
			First(&rental, rentalID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Rental not found"})
			return
		}

		c.JSON(200, rental)
	}
}

// UpdateRental re-derives and saves an edited rental
func UpdateRental(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		rentalID := c.Param("id")

		var rental models.Rental
		if err := db.First(&rental, rentalID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Rental not found"})
			return
		}

		if rental.Status == models.RentalStatusCompleted || rental.Status == models.RentalStatusCancelled {
			c.JSON(409, gin.H{"error": "Rental can no longer be edited"})
			return
		}

		var input rentalDraftInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if input.CustomerID == 0 {
			input.CustomerID = rental.CustomerID
		}

		// Seed the draft with the persisted statuses so stickiness
		// (overdue, pending approval) survives the edit.
		seed := booking.NewDraft(booking.RentalType(input.RentalType))
		seed.PaymentStatus = booking.PaymentStatus(rental.PaymentStatus)
		seed.ApprovalStatus = booking.ApprovalStatus(rental.ApprovalStatus)
		seed.PendingTotalRequest = rental.PendingTotalRequest

		draft, advisories, err := deriveDraft(c, db, input, seed)
		if err != nil {
			c.JSON(404, gin.H{"error": err.Error()})
			return
		}

		if fieldErrors := booking.ValidateForSubmit(draft); len(fieldErrors) > 0 {
			c.JSON(400, gin.H{"error": "Validation failed", "fields": fieldErrors})
			return
		}

		updated, err := rentalFromDraft(draft, rental.CreatedBy, input.Notes)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid rental period"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), submitTimeout)
		defer cancel()

		if hasBookingConflict(db.WithContext(ctx), updated.VehicleID, updated.StartsAt, updated.EndsAt, rental.ID) {
			c.JSON(409, gin.H{"error": "Vehicle is already booked for the selected period"})
			return
		}

		updated.ID = rental.ID
		updated.CreatedAt = rental.CreatedAt
		updated.Status = rental.Status
		updated.ApprovedBy = rental.ApprovedBy

		if err := db.WithContext(ctx).Save(&updated).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update rental"})
			return
		}

		wasPending := rental.ApprovalStatus == string(booking.ApprovalStatusPending)
		if updated.ApprovalStatus == string(booking.ApprovalStatusPending) && !wasPending {
			go notifyApprovers(db, hub, updated)
		}

		announceRentalChange(hub, updated)

		c.JSON(200, gin.H{"rental": updated, "advisories": advisories})
	}
}

// UpdateRentalStatus moves a rental through its lifecycle
func UpdateRentalStatus(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		rentalID := c.Param("id")

		var input struct {
			Status string `json:"status" binding:"required,oneof=booked active completed cancelled"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var rental models.Rental
		if err := db.First(&rental, rentalID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Rental not found"})
			return
		}

		if rental.Status == models.RentalStatusCompleted || rental.Status == models.RentalStatusCancelled {
			c.JSON(409, gin.H{"error": "Rental is already finalized"})
			return
		}

		rental.Status = input.Status
		if err := db.Save(&rental).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update rental status"})
			return
		}

		announceRentalChange(hub, rental)

		c.JSON(200, rental)
	}
}

// SetRentalPaymentStatus is the explicit status button: the chosen status is
// applied verbatim, bypassing automatic inference (this is how overdue gets
// cleared manually).
func SetRentalPaymentStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rentalID := c.Param("id")

		var input struct {
			PaymentStatus string `json:"paymentStatus" binding:"required,oneof=unpaid partial paid overdue"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var rental models.Rental
		if err := db.First(&rental, rentalID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Rental not found"})
			return
		}

		manual := booking.PaymentStatus(input.PaymentStatus)
		rental.PaymentStatus = string(booking.DerivePaymentStatus(
			rental.DepositAmount, rental.TotalAmount,
			booking.PaymentStatus(rental.PaymentStatus), &manual,
		))

		if err := db.Save(&rental).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update payment status"})
			return
		}

		c.JSON(200, rental)
	}
}

// ApprovePriceOverride resolves a pending price override, applying the
// requested total. Admin/owner only (enforced by route middleware).
func ApprovePriceOverride(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		rentalID := c.Param("id")
		userID := c.GetUint("userId")

		var rental models.Rental
		if err := db.First(&rental, rentalID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Rental not found"})
			return
		}

		if rental.ApprovalStatus != string(booking.ApprovalStatusPending) || rental.PendingTotalRequest == nil {
			c.JSON(409, gin.H{"error": "Rental has no pending price override"})
			return
		}

		// Apply the requested total: the manual unit price takes effect now.
		total := *rental.PendingTotalRequest
		rental.TotalAmount = total
		rental.Subtotal = total - rental.TransportFee
		fin := booking.DeriveFinancials(rental.Quantity, rental.UnitPrice, rental.TransportFee, rental.DepositAmount)
		rental.RemainingAmount = fin.RemainingAmount
		rental.ApprovalStatus = string(booking.ApprovalStatusApproved)
		rental.PendingTotalRequest = nil
		rental.ApprovedBy = &userID

		rental.PaymentStatus = string(booking.DerivePaymentStatus(
			rental.DepositAmount, rental.TotalAmount,
			booking.PaymentStatus(rental.PaymentStatus), nil,
		))

		if err := db.Save(&rental).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to approve price override"})
			return
		}

		announceRentalChange(hub, rental)

		c.JSON(200, rental)
	}
}

// CancelRental marks a rental cancelled
func CancelRental(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		rentalID := c.Param("id")

		var rental models.Rental
		if err := db.First(&rental, rentalID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Rental not found"})
			return
		}

		if rental.Status == models.RentalStatusCompleted {
			c.JSON(409, gin.H{"error": "Completed rentals cannot be cancelled"})
			return
		}

		rental.Status = models.RentalStatusCancelled
		if err := db.Save(&rental).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to cancel rental"})
			return
		}

		announceRentalChange(hub, rental)

		c.JSON(200, rental)
	}
}
