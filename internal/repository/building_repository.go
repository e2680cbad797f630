package repository

import (
	"context"

	"github.com/hostelhq/hostel-api/internal/models"

	"gorm.io/gorm"
)

// BuildingRepository defines the interface for building and room data access
type BuildingRepository interface {
	Create(ctx context.Context, building *models.Building) error
	FindByID(ctx context.Context, id uint) (*models.Building, error)
	FindByLandlord(ctx context.Context, landlordUserID uint) ([]models.Building, error)
	CreateRoom(ctx context.Context, room *models.Room) error
	UpdateRoom(ctx context.Context, room *models.Room) error
	FindRoomByID(ctx context.Context, id uint) (*models.Room, error)
}

type buildingRepository struct {
	db *gorm.DB
}

// NewBuildingRepository creates a new building repository
func NewBuildingRepository(db *gorm.DB) BuildingRepository {
	return &buildingRepository{db: db}
}

func (r *buildingRepository) Create(ctx context.Context, building *models.Building) error {
	return r.db.WithContext(ctx).Create(building).Error
}

func (r *buildingRepository) FindByID(ctx context.Context, id uint) (*models.Building, error) {
	var building models.Building
	err := r.db.WithContext(ctx).
		Preload("Rooms").
		Preload("Charges").
		First(&building, id).Error
	if err != nil {
		return nil, err
	}
	return &building, nil
}

func (r *buildingRepository) FindByLandlord(ctx context.Context, landlordUserID uint) ([]models.Building, error) {
	var buildings []models.Building
	err := r.db.WithContext(ctx).
		Where("landlord_user_id = ?", landlordUserID).
		Order("created_at ASC").
		Find(&buildings).Error
	return buildings, err
}

func (r *buildingRepository) CreateRoom(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *buildingRepository) UpdateRoom(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *buildingRepository) FindRoomByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}
