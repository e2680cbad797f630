package services

import (
	"context"
	"time"

	"github.com/hostelhq/hostel-api/internal/gateway"
	"github.com/hostelhq/hostel-api/internal/models"
	"github.com/hostelhq/hostel-api/internal/repository"
)

// Mocks embed their interfaces so only the methods a test exercises need
// an implementation; calling an unset method panics, which surfaces an
// unexpected dependency immediately.

type mockPaymentRepository struct {
	repository.PaymentRepository
	mockCreate         func(ctx context.Context, payment *models.Payment) error
	mockUpdate         func(ctx context.Context, payment *models.Payment) error
	mockFindByID       func(ctx context.Context, id uint) (*models.Payment, error)
	mockFindByRef      func(ctx context.Context, reference string) (*models.Payment, error)
	mockFindSuccessful func(ctx context.Context, userID, chargeID uint) ([]models.Payment, error)
	mockFindPending    func(ctx context.Context, userID, chargeID uint, month *int, year int) (*models.Payment, error)
	mockExpire         func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *mockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return m.mockCreate(ctx, payment)
}

func (m *mockPaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	return m.mockUpdate(ctx, payment)
}

func (m *mockPaymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockPaymentRepository) FindByReference(ctx context.Context, reference string) (*models.Payment, error) {
	return m.mockFindByRef(ctx, reference)
}

func (m *mockPaymentRepository) FindSuccessfulByUserAndCharge(ctx context.Context, userID, chargeID uint) ([]models.Payment, error) {
	return m.mockFindSuccessful(ctx, userID, chargeID)
}

func (m *mockPaymentRepository) FindPendingByPeriod(ctx context.Context, userID, chargeID uint, month *int, year int) (*models.Payment, error) {
	return m.mockFindPending(ctx, userID, chargeID, month, year)
}

func (m *mockPaymentRepository) ExpirePendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return m.mockExpire(ctx, cutoff)
}

type mockPreferenceRepository struct {
	repository.PreferenceRepository
	mockFind   func(ctx context.Context, userID, chargeID uint) (*models.TenantChargePreference, error)
	mockUpsert func(ctx context.Context, userID, chargeID uint, frequency string, lockedAt time.Time) error
}

func (m *mockPreferenceRepository) Find(ctx context.Context, userID, chargeID uint) (*models.TenantChargePreference, error) {
	if m.mockFind != nil {
		return m.mockFind(ctx, userID, chargeID)
	}
	return nil, nil
}

func (m *mockPreferenceRepository) Upsert(ctx context.Context, userID, chargeID uint, frequency string, lockedAt time.Time) error {
	return m.mockUpsert(ctx, userID, chargeID, frequency, lockedAt)
}

type mockChargeRepository struct {
	repository.ChargeRepository
	mockFindByID       func(ctx context.Context, id uint) (*models.Charge, error)
	mockFindByBuilding func(ctx context.Context, buildingID uint) ([]models.Charge, error)
}

func (m *mockChargeRepository) FindByID(ctx context.Context, id uint) (*models.Charge, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockChargeRepository) FindByBuilding(ctx context.Context, buildingID uint) ([]models.Charge, error) {
	return m.mockFindByBuilding(ctx, buildingID)
}

type mockTenancyRepository struct {
	repository.TenancyRepository
	mockFindActiveByUserAndBuilding func(ctx context.Context, userID, buildingID uint) (*models.Tenancy, error)
	mockFindActiveByBuilding        func(ctx context.Context, buildingID uint) ([]models.Tenancy, error)
}

func (m *mockTenancyRepository) FindActiveByUserAndBuilding(ctx context.Context, userID, buildingID uint) (*models.Tenancy, error) {
	return m.mockFindActiveByUserAndBuilding(ctx, userID, buildingID)
}

func (m *mockTenancyRepository) FindActiveByBuilding(ctx context.Context, buildingID uint) ([]models.Tenancy, error) {
	return m.mockFindActiveByBuilding(ctx, buildingID)
}

type mockBuildingRepository struct {
	repository.BuildingRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Building, error)
}

func (m *mockBuildingRepository) FindByID(ctx context.Context, id uint) (*models.Building, error) {
	return m.mockFindByID(ctx, id)
}

type mockUserRepository struct {
	repository.UserRepository
	mockFindByID    func(ctx context.Context, id uint) (*models.User, error)
	mockFindByEmail func(ctx context.Context, email string) (*models.User, error)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return &models.User{ID: id, Email: "tenant@example.com"}, nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.mockFindByEmail(ctx, email)
}

type mockNotificationRepository struct {
	repository.NotificationRepository
	mockCreate func(ctx context.Context, notification *models.Notification) error
}

func (m *mockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, notification)
	}
	return nil
}

type mockGatewayClient struct {
	mockInitialize func(ctx context.Context, req gateway.InitializeRequest) (*gateway.InitializeResponse, error)
	mockVerify     func(ctx context.Context, reference string) (*gateway.Transaction, error)
	references     []string
}

func (m *mockGatewayClient) GenerateReference() string {
	ref := "HSTL-test-" + time.Now().Format("150405.000000000")
	m.references = append(m.references, ref)
	return ref
}

func (m *mockGatewayClient) InitializeTransaction(ctx context.Context, req gateway.InitializeRequest) (*gateway.InitializeResponse, error) {
	if m.mockInitialize != nil {
		return m.mockInitialize(ctx, req)
	}
	return &gateway.InitializeResponse{
		AuthorizationURL: "https://checkout.example.com/" + req.Reference,
		Reference:        req.Reference,
	}, nil
}

func (m *mockGatewayClient) VerifyTransaction(ctx context.Context, reference string) (*gateway.Transaction, error) {
	return m.mockVerify(ctx, reference)
}
