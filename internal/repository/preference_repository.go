package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hostelhq/hostel-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceRepository defines the interface for tenant charge preference
// data access
type PreferenceRepository interface {
	// Find returns the preference for the pair, or nil when none exists.
	Find(ctx context.Context, userID, chargeID uint) (*models.TenantChargePreference, error)
	// Upsert writes the chosen frequency and lock timestamp for the pair.
	// The write is unconditional: it does not read the current lock state
	// first. Idempotent for repeated calls with the same frequency.
	Upsert(ctx context.Context, userID, chargeID uint, frequency string, lockedAt time.Time) error
}

type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Find(ctx context.Context, userID, chargeID uint) (*models.TenantChargePreference, error) {
	var pref models.TenantChargePreference
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND charge_id = ?", userID, chargeID).
		First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *preferenceRepository) Upsert(ctx context.Context, userID, chargeID uint, frequency string, lockedAt time.Time) error {
	pref := models.TenantChargePreference{
		UserID:          userID,
		ChargeID:        chargeID,
		ChosenFrequency: &frequency,
		LockedAt:        &lockedAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "charge_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"chosen_frequency", "locked_at", "updated_at"}),
		}).
		Create(&pref).Error
}
