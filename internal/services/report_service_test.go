package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhq/hostel-api/internal/models"
)

// newReportFixture wires a report service over one building with one monthly
// charge and two active tenants. paymentsByUser drives each tenant's ledger.
func newReportFixture(t *testing.T, paymentsByUser map[uint][]models.Payment) *ReportService {
	t.Helper()

	charge := &models.Charge{ID: 10, BuildingID: 1, Name: "Rent", Amount: 50000, Frequency: models.FrequencyMonthly}
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	tenancies := []models.Tenancy{
		{
			ID: 1, UserID: 1, StartDate: start, Active: true,
			User: models.User{ID: 1, FullName: "Ada Obi", Email: "ada@example.com"},
			Room: models.Room{ID: 1, BuildingID: 1, Label: "A1"},
		},
		{
			ID: 2, UserID: 2, StartDate: start, Active: true,
			User: models.User{ID: 2, FullName: "Ben Eze", Email: "ben@example.com"},
			Room: models.Room{ID: 2, BuildingID: 1, Label: "A2"},
		},
	}

	paymentRepo := &mockPaymentRepository{
		mockFindSuccessful: func(ctx context.Context, userID, chargeID uint) ([]models.Payment, error) {
			return paymentsByUser[userID], nil
		},
	}
	chargeRepo := &mockChargeRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Charge, error) {
			return charge, nil
		},
		mockFindByBuilding: func(ctx context.Context, buildingID uint) ([]models.Charge, error) {
			return []models.Charge{*charge}, nil
		},
	}
	tenancyRepo := &mockTenancyRepository{
		mockFindActiveByUserAndBuilding: func(ctx context.Context, userID, buildingID uint) (*models.Tenancy, error) {
			for i := range tenancies {
				if tenancies[i].UserID == userID {
					return &tenancies[i], nil
				}
			}
			return nil, nil
		},
		mockFindActiveByBuilding: func(ctx context.Context, buildingID uint) ([]models.Tenancy, error) {
			return tenancies, nil
		},
	}
	buildingRepo := &mockBuildingRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Building, error) {
			return &models.Building{ID: 1, Name: "Sunrise Hostel"}, nil
		},
	}

	statusSvc := NewChargeStatusService(paymentRepo, &mockPreferenceRepository{}, chargeRepo, tenancyRepo)
	statusSvc.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}

	return NewReportService(statusSvc, buildingRepo, chargeRepo, tenancyRepo, nil, nil)
}

func TestBuildingArrears(t *testing.T) {
	// Tenant 1 paid January through June; tenant 2 paid nothing.
	var paid []models.Payment
	for m := 1; m <= 6; m++ {
		paid = append(paid, successPayment(uint(m), month(m), nil, 2025, 50000))
	}

	svc := newReportFixture(t, map[uint][]models.Payment{1: paid})

	report, err := svc.BuildingArrears(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Sunrise Hostel", report.BuildingName)
	require.Len(t, report.Tenants, 2)

	upToDate := report.Tenants[0]
	assert.Equal(t, "Ada Obi", upToDate.TenantName)
	assert.Empty(t, upToDate.Lines)
	assert.Zero(t, upToDate.TotalArrears)

	behind := report.Tenants[1]
	assert.Equal(t, "Ben Eze", behind.TenantName)
	assert.Equal(t, "A2", behind.RoomLabel)
	require.Len(t, behind.Lines, 1)
	assert.Equal(t, "Rent", behind.Lines[0].ChargeName)
	assert.Equal(t, 6, behind.Lines[0].Periods)
	assert.Equal(t, int64(300000), behind.Lines[0].Amount)

	assert.Equal(t, int64(300000), report.TotalArrears)
}

func TestBuildingArrearsXLSX(t *testing.T) {
	svc := newReportFixture(t, nil)

	data, filename, err := svc.BuildingArrearsXLSX(context.Background(), 1)
	require.NoError(t, err)

	assert.NotEmpty(t, data)
	assert.Contains(t, filename, "arrears_Sunrise Hostel")
	assert.Contains(t, filename, ".xlsx")
}

func TestPaymentReceiptPDF(t *testing.T) {
	svc := newReportFixture(t, nil)
	user := &models.User{FullName: "Ada Obi"}

	t.Run("rejects non-successful payment", func(t *testing.T) {
		payment := &models.Payment{Status: models.PaymentStatusPending}

		_, _, err := svc.PaymentReceiptPDF(payment, user)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("renders a PDF for a successful payment", func(t *testing.T) {
		paidAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
		payment := &models.Payment{
			Status:      models.PaymentStatusSuccess,
			Amount:      50000,
			PeriodLabel: "June 2025",
			Reference:   "HSTL-ref",
			PaidAt:      &paidAt,
			Charge:      models.Charge{Name: "Rent"},
		}

		data, filename, err := svc.PaymentReceiptPDF(payment, user)
		require.NoError(t, err)

		assert.Equal(t, "receipt_HSTL-ref.pdf", filename)
		assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF")
	})
}
