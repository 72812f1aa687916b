package models

import (
	"time"

	"gorm.io/gorm"
)

// Tour is a bookable tour card shown on the dashboard.
type Tour struct {
	gorm.Model
	Title          string  `json:"title" gorm:"not null"`
	Description    string  `json:"description"`
	PricePerPerson float64 `json:"pricePerPerson" gorm:"not null"`
	DurationHours  int     `json:"durationHours" gorm:"not null"`
	MaxPartySize   int     `json:"maxPartySize" gorm:"default:8"`
	ImageURL       string  `json:"imageUrl"`
	IsActive       bool    `json:"isActive" gorm:"not null;default:true"`
}

// TableName specifies the table name
func (Tour) TableName() string {
	return "tours"
}

// TourBookingStatus constants
const (
	TourBookingStatusPending   = "pending"
	TourBookingStatusConfirmed = "confirmed"
	TourBookingStatusCancelled = "cancelled"
)

type TourBooking struct {
	gorm.Model
	TourID      uint      `json:"tourId" gorm:"not null"`
	Tour        *Tour     `json:"tour,omitempty" gorm:"foreignKey:TourID"`
	CustomerID  uint      `json:"customerId" gorm:"not null"`
	Customer    *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	PartySize   int       `json:"partySize" gorm:"not null"`
	TourDate    time.Time `json:"tourDate" gorm:"not null"`
	TotalAmount float64   `json:"totalAmount" gorm:"not null"`
	Status      string    `json:"status" gorm:"not null;default:'pending'"`
	CreatedBy   uint      `json:"createdBy" gorm:"not null"`
}

// TableName specifies the table name
func (TourBooking) TableName() string {
	return "tour_bookings"
}
