package models

import "gorm.io/gorm"

// Customer is the renter identity a rental references. Customers are
// upserted keyed by document number (or email when no document is on file),
// typically pre-filled from an ID-document scan.
type Customer struct {
	gorm.Model
	FullName       string `json:"fullName" gorm:"not null"`
	Email          string `json:"email" gorm:"index"`
	PhoneNumber    string `json:"phoneNumber"`
	DocumentNumber string `json:"documentNumber" gorm:"index"`
	Nationality    string `json:"nationality"`
	DateOfBirth    string `json:"dateOfBirth"`
	DocumentImage  string `json:"documentImage"` // storage key of the scanned ID
}

// TableName specifies the table name
func (Customer) TableName() string {
	return "customers"
}
