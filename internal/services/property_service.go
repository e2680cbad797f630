package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hostelhq/hostel-api/internal/models"
	"github.com/hostelhq/hostel-api/internal/repository"
	"github.com/hostelhq/hostel-api/pkg/logger"
)

// PropertyService manages buildings, rooms, charges and tenancies.
type PropertyService struct {
	buildingRepo    repository.BuildingRepository
	chargeRepo      repository.ChargeRepository
	tenancyRepo     repository.TenancyRepository
	userRepo        repository.UserRepository
	notificationSvc *NotificationService
}

// NewPropertyService creates a new property service
func NewPropertyService(
	buildingRepo repository.BuildingRepository,
	chargeRepo repository.ChargeRepository,
	tenancyRepo repository.TenancyRepository,
	userRepo repository.UserRepository,
	notificationSvc *NotificationService,
) *PropertyService {
	return &PropertyService{
		buildingRepo:    buildingRepo,
		chargeRepo:      chargeRepo,
		tenancyRepo:     tenancyRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
	}
}

func (s *PropertyService) CreateBuilding(ctx context.Context, building *models.Building) error {
	return s.buildingRepo.Create(ctx, building)
}

func (s *PropertyService) GetBuilding(ctx context.Context, id uint) (*models.Building, error) {
	return s.buildingRepo.FindByID(ctx, id)
}

func (s *PropertyService) ListByLandlord(ctx context.Context, landlordUserID uint) ([]models.Building, error) {
	return s.buildingRepo.FindByLandlord(ctx, landlordUserID)
}

func (s *PropertyService) CreateRoom(ctx context.Context, room *models.Room) error {
	if _, err := s.buildingRepo.FindByID(ctx, room.BuildingID); err != nil {
		return fmt.Errorf("load building %d: %w", room.BuildingID, err)
	}
	return s.buildingRepo.CreateRoom(ctx, room)
}

// CreateCharge registers a recurring charge on a building and notifies its
// active tenants.
func (s *PropertyService) CreateCharge(ctx context.Context, charge *models.Charge) error {
	if !models.ValidFrequency(charge.Frequency) {
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, charge.Frequency)
	}
	if charge.Amount <= 0 {
		return fmt.Errorf("charge amount must be positive, got %d", charge.Amount)
	}

	if _, err := s.buildingRepo.FindByID(ctx, charge.BuildingID); err != nil {
		return fmt.Errorf("load building %d: %w", charge.BuildingID, err)
	}

	if err := s.chargeRepo.Create(ctx, charge); err != nil {
		return err
	}

	if s.notificationSvc != nil {
		tenancies, err := s.tenancyRepo.FindActiveByBuilding(ctx, charge.BuildingID)
		if err != nil {
			logger.Error("Failed to load tenants for charge notification", "charge_id", charge.ID, "error", err)
			return nil
		}
		message := fmt.Sprintf("A new charge %q (₦%d %s) was added to your building.", charge.Name, charge.Amount, charge.Frequency)
		for _, t := range tenancies {
			if err := s.notificationSvc.NotifyUser(ctx, t.UserID, "New charge", message, models.NotificationTypeChargeCreated); err != nil {
				logger.Error("Failed to notify tenant of new charge", "user_id", t.UserID, "error", err)
			}
		}
	}

	return nil
}

func (s *PropertyService) GetCharge(ctx context.Context, id uint) (*models.Charge, error) {
	return s.chargeRepo.FindByID(ctx, id)
}

func (s *PropertyService) ListCharges(ctx context.Context, buildingID uint) ([]models.Charge, error) {
	return s.chargeRepo.FindByBuilding(ctx, buildingID)
}

// CreateTenancy moves a tenant into a room. The start date anchors period
// enumeration for every charge of the building, so it must be set.
func (s *PropertyService) CreateTenancy(ctx context.Context, tenancy *models.Tenancy) error {
	if tenancy.StartDate.IsZero() {
		return fmt.Errorf("tenancy start date is required")
	}

	room, err := s.buildingRepo.FindRoomByID(ctx, tenancy.RoomID)
	if err != nil {
		return fmt.Errorf("load room %d: %w", tenancy.RoomID, err)
	}

	if _, err := s.userRepo.FindByID(ctx, tenancy.UserID); err != nil {
		return fmt.Errorf("load user %d: %w", tenancy.UserID, err)
	}

	existing, err := s.tenancyRepo.FindActiveByUserAndBuilding(ctx, tenancy.UserID, room.BuildingID)
	if err != nil {
		return fmt.Errorf("check existing tenancy: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("user %d already has an active tenancy in building %d", tenancy.UserID, room.BuildingID)
	}

	tenancy.Active = true
	if err := s.tenancyRepo.Create(ctx, tenancy); err != nil {
		return err
	}

	room.Occupied = true
	if err := s.buildingRepo.UpdateRoom(ctx, room); err != nil {
		logger.Error("Failed to mark room occupied", "room_id", room.ID, "error", err)
	}

	return nil
}

// EndTenancy deactivates a tenancy and frees its room.
func (s *PropertyService) EndTenancy(ctx context.Context, tenancyID uint) error {
	tenancy, err := s.tenancyRepo.FindByID(ctx, tenancyID)
	if err != nil {
		return fmt.Errorf("load tenancy %d: %w", tenancyID, err)
	}

	now := time.Now()
	tenancy.Active = false
	tenancy.EndDate = &now
	if err := s.tenancyRepo.Update(ctx, tenancy); err != nil {
		return err
	}

	room, err := s.buildingRepo.FindRoomByID(ctx, tenancy.RoomID)
	if err == nil {
		room.Occupied = false
		if err := s.buildingRepo.UpdateRoom(ctx, room); err != nil {
			logger.Error("Failed to mark room vacant", "room_id", room.ID, "error", err)
		}
	}

	return nil
}
