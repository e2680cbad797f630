package repository

import (
	"context"

	"github.com/hostelhq/hostel-api/internal/models"

	"gorm.io/gorm"
)

// ChargeRepository defines the interface for charge data access
type ChargeRepository interface {
	Create(ctx context.Context, charge *models.Charge) error
	Update(ctx context.Context, charge *models.Charge) error
	FindByID(ctx context.Context, id uint) (*models.Charge, error)
	FindByBuilding(ctx context.Context, buildingID uint) ([]models.Charge, error)
}

type chargeRepository struct {
	db *gorm.DB
}

// NewChargeRepository creates a new charge repository
func NewChargeRepository(db *gorm.DB) ChargeRepository {
	return &chargeRepository{db: db}
}

func (r *chargeRepository) Create(ctx context.Context, charge *models.Charge) error {
	return r.db.WithContext(ctx).Create(charge).Error
}

func (r *chargeRepository) Update(ctx context.Context, charge *models.Charge) error {
	return r.db.WithContext(ctx).Save(charge).Error
}

func (r *chargeRepository) FindByID(ctx context.Context, id uint) (*models.Charge, error) {
	var charge models.Charge
	err := r.db.WithContext(ctx).First(&charge, id).Error
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

func (r *chargeRepository) FindByBuilding(ctx context.Context, buildingID uint) ([]models.Charge, error) {
	var charges []models.Charge
	err := r.db.WithContext(ctx).
		Where("building_id = ?", buildingID).
		Order("created_at ASC").
		Find(&charges).Error
	return charges, err
}
