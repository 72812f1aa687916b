package models

import "gorm.io/gorm"

// RentalSettings is a single-row table holding the transport fee
// configuration. A missing row means free transport.
type RentalSettings struct {
	gorm.Model
	PickupFee  float64 `json:"pickupFee" gorm:"not null;default:0"`
	DropoffFee float64 `json:"dropoffFee" gorm:"not null;default:0"`
}

// TableName specifies the table name
func (RentalSettings) TableName() string {
	return "rental_settings"
}

// DamageDepositPreset is one selectable damage-deposit amount offered for a
// vehicle model. The form also accepts a custom amount.
type DamageDepositPreset struct {
	gorm.Model
	VehicleModel string  `json:"vehicleModel" gorm:"column:vehicle_model;index;not null"`
	Label        string  `json:"label" gorm:"not null"`
	Amount       float64 `json:"amount" gorm:"not null"`
	Enabled      bool    `json:"enabled" gorm:"not null;default:true"`
	SortOrder    int     `json:"sortOrder" gorm:"default:0"`
}

// TableName specifies the table name
func (DamageDepositPreset) TableName() string {
	return "damage_deposit_presets"
}
