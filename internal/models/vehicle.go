package models

import "gorm.io/gorm"

// VehicleStatus constants
const (
	VehicleStatusAvailable   = "available"
	VehicleStatusRented      = "rented"
	VehicleStatusMaintenance = "maintenance"
)

type Vehicle struct {
	gorm.Model
	Plate      string  `json:"plate" gorm:"unique;not null"`
	Make       string  `json:"make" gorm:"not null"`
	ModelName  string  `json:"modelName" gorm:"column:model_name;not null"`
	Color      string  `json:"color"`
	Year       int     `json:"year"`
	DailyRate  float64 `json:"dailyRate" gorm:"not null"`
	HourlyRate float64 `json:"hourlyRate" gorm:"not null"`
	Status     string  `json:"status" gorm:"not null;default:'available'"`
	ImageURL   string  `json:"imageUrl"`
}

// TableName specifies the table name
func (Vehicle) TableName() string {
	return "vehicles"
}

// RateFor returns the unit price for the given rental type.
func (v *Vehicle) RateFor(rentalType string) float64 {
	if rentalType == "hourly" {
		return v.HourlyRate
	}
	return v.DailyRate
}
