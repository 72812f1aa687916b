package models

import (
	"time"

	"gorm.io/gorm"
)

// RentalStatus constants
const (
	RentalStatusBooked    = "booked"
	RentalStatusActive    = "active"
	RentalStatusCompleted = "completed"
	RentalStatusCancelled = "cancelled"
)

// Rental is the persisted form of a submitted booking draft. The derived
// money fields are written as computed at submit time; edits re-derive them.
type Rental struct {
	gorm.Model
	CustomerID uint      `json:"customerId" gorm:"not null"`
	Customer   *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	VehicleID  uint      `json:"vehicleId" gorm:"not null"`
	Vehicle    *Vehicle  `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	CreatedBy  uint      `json:"createdBy" gorm:"not null"`
	Creator    *User     `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`

	RentalType string    `json:"rentalType" gorm:"not null"` // hourly, daily
	StartDate  string    `json:"startDate" gorm:"not null"`  // 2006-01-02
	StartTime  string    `json:"startTime"`
	EndDate    string    `json:"endDate" gorm:"not null"`
	EndTime    string    `json:"endTime"`
	StartsAt   time.Time `json:"startsAt" gorm:"index"` // composed timestamp for range queries
	EndsAt     time.Time `json:"endsAt" gorm:"index"`

	Quantity      int     `json:"quantity" gorm:"not null"`
	UnitPrice     float64 `json:"unitPrice" gorm:"not null"`
	AutoUnitPrice float64 `json:"autoUnitPrice" gorm:"not null"`

	TransportPickup  bool    `json:"transportPickup"`
	TransportDropoff bool    `json:"transportDropoff"`
	TransportFee     float64 `json:"transportFee"`

	DepositAmount   float64 `json:"depositAmount"`
	DamageDeposit   float64 `json:"damageDeposit"` // refundable hold, not part of total
	Subtotal        float64 `json:"subtotal"`
	TotalAmount     float64 `json:"totalAmount"`
	RemainingAmount float64 `json:"remainingAmount"`

	Status        string `json:"status" gorm:"not null;default:'booked'"`
	PaymentStatus string `json:"paymentStatus" gorm:"not null;default:'unpaid'"`

	ApprovalStatus      string   `json:"approvalStatus" gorm:"not null;default:'auto'"`
	PendingTotalRequest *float64 `json:"pendingTotalRequest,omitempty"`
	ApprovedBy          *uint    `json:"approvedBy,omitempty"`

	Notes string `json:"notes"`
}

// TableName specifies the table name
func (Rental) TableName() string {
	return "rentals"
}
