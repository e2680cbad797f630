package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	Building     BuildingRepository
	Charge       ChargeRepository
	Tenancy      TenancyRepository
	Payment      PaymentRepository
	Preference   PreferenceRepository
	Notification NotificationRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Building:     NewBuildingRepository(db),
		Charge:       NewChargeRepository(db),
		Tenancy:      NewTenancyRepository(db),
		Payment:      NewPaymentRepository(db),
		Preference:   NewPreferenceRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
