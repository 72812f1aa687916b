package models

import "gorm.io/gorm"

// PaymentRecord status constants, mirroring the card provider's lifecycle.
const (
	PaymentStatusRequiresPayment = "requires_payment"
	PaymentStatusProcessing      = "processing"
	PaymentStatusSucceeded       = "succeeded"
	PaymentStatusFailed          = "failed"
)

// PaymentRecord tracks one card payment attempt against a rental.
type PaymentRecord struct {
	gorm.Model
	RentalID   uint    `json:"rentalId" gorm:"not null;index"`
	Rental     *Rental `json:"rental,omitempty" gorm:"foreignKey:RentalID"`
	ExternalID string  `json:"externalId" gorm:"uniqueIndex;not null"` // our idempotency key sent to the provider
	ProviderID string  `json:"providerId" gorm:"index"`                // the provider's payment id
	Amount     float64 `json:"amount" gorm:"not null"`
	Currency   string  `json:"currency" gorm:"not null;default:'usd'"`
	Status     string  `json:"status" gorm:"not null;default:'requires_payment'"`

	// Provider decline code and the human-readable message shown in the UI.
	FailureCode    string `json:"failureCode,omitempty"`
	FailureMessage string `json:"failureMessage,omitempty"`
}

// TableName specifies the table name
func (PaymentRecord) TableName() string {
	return "payment_records"
}
