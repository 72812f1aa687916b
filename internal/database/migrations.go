package database

import (
	"github.com/fleetdesk/fleetdesk-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Vehicle{},
		&models.Rental{},
		&models.RentalSettings{},
		&models.DamageDepositPreset{},
		&models.Tour{},
		&models.TourBooking{},
		&models.PaymentRecord{},
		&models.DocumentScan{},
		&models.OTP{},
	)
	if err != nil {
		return err
	}

	// Update users table
	if db.Migrator().HasTable(&models.User{}) {
		columns := []string{
			"ADD COLUMN IF NOT EXISTS fcm_token text DEFAULT ''",
			"ADD COLUMN IF NOT EXISTS approval_alerts boolean DEFAULT true",
			"ADD COLUMN IF NOT EXISTS role text DEFAULT 'employee'",
		}

		for _, column := range columns {
			if err := db.Exec("ALTER TABLE users " + column).Error; err != nil {
				return err
			}
		}

		// Update constraint
		db.Exec(`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_role_check`)
		db.Exec(`ALTER TABLE users ADD CONSTRAINT users_role_check CHECK (role IN ('employee', 'guide', 'admin', 'owner'))`)
	}

	// Older databases predate the approval columns on rentals
	if db.Migrator().HasTable(&models.Rental{}) {
		var columnExists bool
		err := db.Raw(`
			SELECT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'rentals'
				AND column_name = 'approval_status'
			)`).Scan(&columnExists).Error
		if err != nil {
			return err
		}

		if !columnExists {
			if err := db.Exec(`ALTER TABLE rentals ADD COLUMN approval_status text DEFAULT 'auto'`).Error; err != nil {
				return err
			}
			if err := db.Exec(`UPDATE rentals SET approval_status = 'auto' WHERE approval_status IS NULL`).Error; err != nil {
				return err
			}
			if err := db.Exec(`ALTER TABLE rentals ALTER COLUMN approval_status SET NOT NULL`).Error; err != nil {
				return err
			}
		}
	}

	// Seed the settings row so fee lookups never miss
	var count int64
	if err := db.Model(&models.RentalSettings{}).Count(&count).Error; err == nil && count == 0 {
		if err := db.Create(&models.RentalSettings{}).Error; err != nil {
			return err
		}
	}

	return nil
}
