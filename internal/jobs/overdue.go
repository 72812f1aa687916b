package jobs

import (
	"log"
	"time"

	"github.com/fleetdesk/fleetdesk-backend/internal/booking"
	"github.com/fleetdesk/fleetdesk-backend/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartOverdueSweep schedules the periodic sweep that flags rentals whose
// period has ended without full payment. The returned cron is already
// running; the caller stops it on shutdown.
func StartOverdueSweep(db *gorm.DB) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("*/15 * * * *", func() {
		SweepOverdueRentals(db)
	})
	if err != nil {
		log.Printf("Failed to schedule overdue sweep: %v", err)
		return c
	}

	c.Start()
	log.Println("Overdue payment sweep scheduled (every 15 minutes)")
	return c
}

// SweepOverdueRentals marks past-due, not fully paid rentals as overdue.
// Overdue is sticky: once set it only changes through the explicit status
// button, so the sweep never needs to undo itself.
func SweepOverdueRentals(db *gorm.DB) {
	var rentals []models.Rental
	err := db.Where("ends_at < ?", time.Now()).
		Where("status IN ?", []string{models.RentalStatusBooked, models.RentalStatusActive}).
		Where("payment_status IN ?", []string{
			string(booking.PaymentStatusUnpaid),
			string(booking.PaymentStatusPartial),
		}).
		Find(&rentals).Error
	if err != nil {
		log.Printf("Overdue sweep query failed: %v", err)
		return
	}

	for _, rental := range rentals {
		manual := booking.PaymentStatusOverdue
		rental.PaymentStatus = string(booking.DerivePaymentStatus(
			rental.DepositAmount, rental.TotalAmount,
			booking.PaymentStatus(rental.PaymentStatus), &manual,
		))
		if err := db.Model(&models.Rental{}).Where("id = ?", rental.ID).
			Update("payment_status", rental.PaymentStatus).Error; err != nil {
			log.Printf("Failed to mark rental %d overdue: %v", rental.ID, err)
		}
	}

	if len(rentals) > 0 {
		log.Printf("Overdue sweep flagged %d rental(s)", len(rentals))
	}
}
