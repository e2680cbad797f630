package models

import (
	"time"
)

// TenantChargePreference stores the billing frequency a tenant chose for a
// charge. LockedAt is stamped on the tenant's first successful payment;
// after that the frequency is considered bound for the pair.
type TenantChargePreference struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;uniqueIndex:idx_user_charge" json:"user_id"`
	ChargeID        uint       `gorm:"not null;uniqueIndex:idx_user_charge" json:"charge_id"`
	ChosenFrequency *string    `json:"chosen_frequency"`
	LockedAt        *time.Time `json:"locked_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Associations
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Charge Charge `gorm:"foreignKey:ChargeID" json:"-"`
}

// TableName specifies the table name for TenantChargePreference
func (TenantChargePreference) TableName() string {
	return "tenant_charge_preferences"
}

// IsLocked returns true once the preference has been locked by a
// successful payment.
func (p *TenantChargePreference) IsLocked() bool {
	return p.LockedAt != nil
}

// Frequency returns the chosen frequency or empty string when unset.
func (p *TenantChargePreference) Frequency() string {
	if p.ChosenFrequency == nil {
		return ""
	}
	return *p.ChosenFrequency
}
