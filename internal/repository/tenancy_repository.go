package repository

import (
	"context"
	"errors"

	"github.com/hostelhq/hostel-api/internal/models"

	"gorm.io/gorm"
)

// TenancyRepository defines the interface for tenancy data access
type TenancyRepository interface {
	Create(ctx context.Context, tenancy *models.Tenancy) error
	Update(ctx context.Context, tenancy *models.Tenancy) error
	FindByID(ctx context.Context, id uint) (*models.Tenancy, error)
	FindActiveByUser(ctx context.Context, userID uint) ([]models.Tenancy, error)
	// FindActiveByUserAndBuilding returns the tenant's active tenancy in the
	// building, or nil when the tenant has none there.
	FindActiveByUserAndBuilding(ctx context.Context, userID, buildingID uint) (*models.Tenancy, error)
	FindActiveByBuilding(ctx context.Context, buildingID uint) ([]models.Tenancy, error)
	FindAllActive(ctx context.Context) ([]models.Tenancy, error)
}

type tenancyRepository struct {
	db *gorm.DB
}

// NewTenancyRepository creates a new tenancy repository
func NewTenancyRepository(db *gorm.DB) TenancyRepository {
	return &tenancyRepository{db: db}
}

func (r *tenancyRepository) Create(ctx context.Context, tenancy *models.Tenancy) error {
	return r.db.WithContext(ctx).Create(tenancy).Error
}

func (r *tenancyRepository) Update(ctx context.Context, tenancy *models.Tenancy) error {
	return r.db.WithContext(ctx).Save(tenancy).Error
}

func (r *tenancyRepository) FindByID(ctx context.Context, id uint) (*models.Tenancy, error) {
	var tenancy models.Tenancy
	err := r.db.WithContext(ctx).
		Preload("Room").
		First(&tenancy, id).Error
	if err != nil {
		return nil, err
	}
	return &tenancy, nil
}

func (r *tenancyRepository) FindActiveByUser(ctx context.Context, userID uint) ([]models.Tenancy, error) {
	var tenancies []models.Tenancy
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("user_id = ? AND active = ?", userID, true).
		Find(&tenancies).Error
	return tenancies, err
}

func (r *tenancyRepository) FindActiveByUserAndBuilding(ctx context.Context, userID, buildingID uint) (*models.Tenancy, error) {
	var tenancy models.Tenancy
	err := r.db.WithContext(ctx).
		Joins("JOIN rooms ON rooms.id = tenancies.room_id").
		Where("tenancies.user_id = ? AND tenancies.active = ? AND rooms.building_id = ?", userID, true, buildingID).
		First(&tenancy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tenancy, nil
}

func (r *tenancyRepository) FindAllActive(ctx context.Context) ([]models.Tenancy, error) {
	var tenancies []models.Tenancy
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Room").
		Where("active = ?", true).
		Find(&tenancies).Error
	return tenancies, err
}

func (r *tenancyRepository) FindActiveByBuilding(ctx context.Context, buildingID uint) ([]models.Tenancy, error) {
	var tenancies []models.Tenancy
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Room").
		Joins("JOIN rooms ON rooms.id = tenancies.room_id").
		Where("tenancies.active = ? AND rooms.building_id = ?", true, buildingID).
		Find(&tenancies).Error
	return tenancies, err
}
