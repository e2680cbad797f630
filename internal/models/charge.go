package models

import (
	"time"
)

// Charge represents a recurring fee a building collects from its tenants,
// e.g. rent or a service charge. Amounts are whole Naira.
type Charge struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BuildingID uint      `gorm:"not null;index" json:"building_id"`
	Name       string    `gorm:"not null" json:"name"`
	Amount     int64     `gorm:"not null" json:"amount"`
	Frequency  string    `gorm:"not null;default:monthly" json:"frequency"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Associations
	Building Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
}

// TableName specifies the table name for Charge
func (Charge) TableName() string {
	return "charges"
}

// Charge frequency constants
const (
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// ValidFrequency reports whether f is a supported billing frequency.
func ValidFrequency(f string) bool {
	return f == FrequencyMonthly || f == FrequencyYearly
}
