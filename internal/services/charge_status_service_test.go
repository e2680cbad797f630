package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhq/hostel-api/internal/models"
)

// statusFixture wires a ChargeStatusService against mocks with the clock
// pinned to 2025-06-01.
type statusFixture struct {
	svc      *ChargeStatusService
	payments *mockPaymentRepository
	prefs    *mockPreferenceRepository
}

func newStatusFixture(t *testing.T, charge *models.Charge, tenancy *models.Tenancy, payments []models.Payment) *statusFixture {
	t.Helper()

	paymentRepo := &mockPaymentRepository{
		mockFindSuccessful: func(ctx context.Context, userID, chargeID uint) ([]models.Payment, error) {
			return payments, nil
		},
	}
	prefRepo := &mockPreferenceRepository{}
	chargeRepo := &mockChargeRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Charge, error) {
			return charge, nil
		},
	}
	tenancyRepo := &mockTenancyRepository{
		mockFindActiveByUserAndBuilding: func(ctx context.Context, userID, buildingID uint) (*models.Tenancy, error) {
			return tenancy, nil
		},
	}

	svc := NewChargeStatusService(paymentRepo, prefRepo, chargeRepo, tenancyRepo)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}

	return &statusFixture{svc: svc, payments: paymentRepo, prefs: prefRepo}
}

func successPayment(id uint, month, monthEnd *int, year int, amount int64) models.Payment {
	paidAt := time.Date(year, 1, 20, 0, 0, 0, 0, time.UTC)
	return models.Payment{
		ID:             id,
		UserID:         1,
		ChargeID:       10,
		Amount:         amount,
		Status:         models.PaymentStatusSuccess,
		PeriodMonth:    month,
		PeriodMonthEnd: monthEnd,
		PeriodYear:     year,
		PaidAt:         &paidAt,
	}
}

func month(m int) *int { return &m }

func TestGetChargePaymentStatus_YearlyNoPayments(t *testing.T) {
	charge := &models.Charge{ID: 10, BuildingID: 1, Name: "Rent", Amount: 450000, Frequency: models.FrequencyYearly}
	tenancy := &models.Tenancy{UserID: 1, StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}
	f := newStatusFixture(t, charge, tenancy, nil)

	status, err := f.svc.GetChargePaymentStatus(context.Background(), 1, 10, "")
	require.NoError(t, err)

	assert.Equal(t, models.FrequencyYearly, status.EffectiveFrequency)
	assert.False(t, status.IsLocked)
	assert.Empty(t, status.PaidPeriods)
	require.Len(t, status.UnpaidPeriods, 2)
	assert.Equal(t, 2024, status.UnpaidPeriods[0].Year)
	assert.Equal(t, 2025, status.UnpaidPeriods[1].Year)
	assert.Equal(t, int64(450000), status.UnpaidPeriods[0].Amount)
	assert.Equal(t, int64(900000), status.TotalArrears)
	assert.False(t, status.IsUpToDate)
	assert.False(t, status.CurrentPeriodPaid)
	require.NotNil(t, status.NextPaymentDue)
	assert.Equal(t, 2024, status.NextPaymentDue.Year)
}

func TestGetChargePaymentStatus_YearlyPartiallyPaid(t *testing.T) {
	charge := &models.Charge{ID: 10, BuildingID: 1, Name: "Rent", Amount: 450000, Frequency: models.FrequencyYearly}
	tenancy := &models.Tenancy{UserID: 1, StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}
	payments := []models.Payment{
		successPayment(100, month(1), month(12), 2024, 450000),
	}
	f := newStatusFixture(t, charge, tenancy, payments)

	status, err := f.svc.GetChargePaymentStatus(context.Background(), 1, 10, "")
	require.NoError(t, err)

	require.Len(t, status.PaidPeriods, 1)
	assert.Equal(t, 2024, status.PaidPeriods[0].Year)
	assert.Equal(t, uint(100), status.PaidPeriods[0].PaymentID)
	require.Len(t, status.UnpaidPeriods, 1)
	assert.Equal(t, 2025, status.UnpaidPeriods[0].Year)
	assert.Equal(t, int64(450000), status.TotalArrears)
	assert.False(t, status.CurrentPeriodPaid)
	assert.False(t, status.IsUpToDate)
}

func TestGetChargePaymentStatus_MonthlyGapSurfacesAsUnpaid(t *testing.T) {
	charge := &models.Charge{ID: 10, BuildingID: 1, Name: "Service Charge", Amount: 50000, Frequency: models.FrequencyMonthly}
	tenancy := &models.Tenancy{UserID: 1, StartDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)}
	payments := []models.Payment{
		successPayment(1, month(1), nil, 2025, 50000),
		successPayment(2, month(2), nil, 2025, 50000),
		successPayment(3, month(4), nil, 2025, 50000),
	}
	f := newStatusFixture(t, charge, tenancy, payments)

	status, err := f.svc.GetChargePaymentStatus(context.Background(), 1, 10, "")
	require.NoError(t, err)

	require.Len(t, status.PaidPeriods, 3)
	require.Len(t, status.UnpaidPeriods, 3)
	assert.Equal(t, 3, status.UnpaidPeriods[0].Month)
	assert.Equal(t, 5, status.UnpaidPeriods[1].Month)
	assert.Equal(t, 6, status.UnpaidPeriods[2].Month)
	assert.Equal(t, int64(150000), status.TotalArrears)

	// The skipped March is due before the later unpaid months.
	require.NotNil(t, status.NextPaymentDue)
	assert.Equal(t, 3, status.NextPaymentDue.Month)
	assert.Equal(t, "March 2025", status.NextPaymentDue.Label)
	assert.False(t, status.CurrentPeriodPaid)
}

func TestGetChargePaymentStatus_MonthlyUpToDate(t *testing.T) {
	charge := &models.Charge{ID: 10, BuildingID: 1, Name: "Service Charge", Amount: 50000, Frequency: models.FrequencyMonthly}
	tenancy := &models.Tenancy{UserID: 1, StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)}
	payments := []models.Payment{
		successPayment(1, month(4), nil, 2025, 50000),
		successPayment(2, month(5), nil, 2025, 50000),
		successPayment(3, month(6), nil, 2025, 50000),
	}
	f := newStatusFixture(t, charge, tenancy, payments)

	status, err := f.svc.GetChargePaymentStatus(context.Background(), 1, 10, "")
	require.NoError(t, err)

	assert.True(t, status.IsUpToDate)
	assert.True(t, status.CurrentPeriodPaid)
	assert.Nil(t, status.NextPaymentDue)
	assert.Zero(t, status.TotalArrears)
}

func TestGetChargePaymentStatus_SpanPaymentCoversMonths(t *testing.T) {
	// A yearly payment spanning March-August 2025 settles each month it
	// covers when the ledger is read at monthly granularity.
	charge := &models.Charge{ID: 10, BuildingID: 1, Name: "Rent", Amount: 50000, Frequency: models.FrequencyMonthly}
	tenancy := &models.Tenancy{UserID: 1, StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	payments := []models.Payment{
		successPayment(7, month(3), month(8), 2025, 600000),
	}
	f := newStatusFixture(t, charge, tenancy, payments)

	status, err := f.svc.GetChargePaymentStatus(context.Background(), 1, 10, "")
	require.NoError(t, err)

	require.Len(t, status.PaidPeriods, 4) // March through June
	for _, p := range status.PaidPeriods {
		assert.Equal(t, uint(7), p.PaymentID)
	}
	assert.Empty(t, status.UnpaidPeriods)
	assert.True(t, status.CurrentPeriodPaid)
	assert.True(t, status.IsUpToDate)
}

func TestGetChargePaymentStatus_EffectiveFrequencyResolution(t *testing.T) {
	charge := &models.Charge{ID: 10, BuildingID: 1, Name: "Rent", Amount: 50000, Frequency: models.FrequencyMonthly}
	tenancy := &models.Tenancy{UserID: 1, StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	f := newStatusFixture(t, charge, tenancy, nil)

	t.Run("native frequency by default", func(t *testing.T) {
		status, err := f.svc.GetChargePaymentStatus(context.Background(), 1, 10, "")
		require.NoError(t, err)
		assert.Equal(t, models.FrequencyMonthly, status.EffectiveFrequency)
	})

	t.Run("stored preference wins over native", func(t *testing.T) {
		yearly := models.FrequencyYearly
		lockedAt := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
		f.prefs.mockFind = func(ctx context.Context, userID, chargeID uint) (*models.TenantChargePreference, error) {
			return &models.TenantChargePreference{
				UserID:          userID,
				ChargeID:        chargeID,
				ChosenFrequency: &yearly,
				LockedAt:        &lockedAt,
			}, nil
		}

		status, err := f.svc.GetChargePaymentStatus(context.Background(), 1, 10, "")
		require.NoError(t, err)
		assert.Equal(t, models.FrequencyYearly, status.EffectiveFrequency)
		assert.True(t, status.IsLocked)
		assert.Equal(t, &lockedAt, status.LockedAt)

		// Unpaid amounts still derive from the charge's native monthly
		// amount converted up.
		require.Len(t, status.UnpaidPeriods, 1)
		assert.Equal(t, int64(600000), status.UnpaidPeriods[0].Amount)
	})

	t.Run("override wins over preference", func(t *testing.T) {
		status, err := f.svc.GetChargePaymentStatus(context.Background(), 1, 10, models.FrequencyMonthly)
		require.NoError(t, err)
		assert.Equal(t, models.FrequencyMonthly, status.EffectiveFrequency)
	})

	t.Run("invalid override rejected", func(t *testing.T) {
		_, err := f.svc.GetChargePaymentStatus(context.Background(), 1, 10, "weekly")
		assert.ErrorIs(t, err, ErrInvalidFrequency)
	})
}

func TestGetChargePaymentStatus_NoActiveTenancy(t *testing.T) {
	charge := &models.Charge{ID: 10, BuildingID: 1, Name: "Rent", Amount: 50000, Frequency: models.FrequencyMonthly}
	f := newStatusFixture(t, charge, nil, nil)

	_, err := f.svc.GetChargePaymentStatus(context.Background(), 1, 10, "")
	assert.ErrorIs(t, err, ErrNoActiveTenancy)
}

func TestGetChargePaymentStatus_IgnoresNonSuccessPayments(t *testing.T) {
	charge := &models.Charge{ID: 10, BuildingID: 1, Name: "Rent", Amount: 50000, Frequency: models.FrequencyMonthly}
	tenancy := &models.Tenancy{UserID: 1, StartDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}
	pending := successPayment(1, month(5), nil, 2025, 50000)
	pending.Status = models.PaymentStatusPending
	f := newStatusFixture(t, charge, tenancy, []models.Payment{pending})

	status, err := f.svc.GetChargePaymentStatus(context.Background(), 1, 10, "")
	require.NoError(t, err)

	assert.Empty(t, status.PaidPeriods)
	require.Len(t, status.UnpaidPeriods, 2) // May, June
}

func TestIsPeriodPaid(t *testing.T) {
	payments := []models.Payment{
		successPayment(1, month(3), month(8), 2025, 600000),
	}
	paymentRepo := &mockPaymentRepository{
		mockFindSuccessful: func(ctx context.Context, userID, chargeID uint) ([]models.Payment, error) {
			return payments, nil
		},
	}
	svc := NewChargeStatusService(paymentRepo, &mockPreferenceRepository{}, &mockChargeRepository{}, &mockTenancyRepository{})

	for m := 3; m <= 8; m++ {
		paid, err := svc.IsPeriodPaid(context.Background(), 1, 10, m, 2025)
		require.NoError(t, err)
		assert.True(t, paid, "month %d", m)
	}

	paid, err := svc.IsPeriodPaid(context.Background(), 1, 10, 2, 2025)
	require.NoError(t, err)
	assert.False(t, paid)

	paid, err = svc.IsPeriodPaid(context.Background(), 1, 10, 3, 2024)
	require.NoError(t, err)
	assert.False(t, paid)
}

func TestIsPeriodPaid_WrappedAnniversarySpan(t *testing.T) {
	// September 2025 - August 2026, recorded against the start year.
	payments := []models.Payment{
		successPayment(1, month(9), month(8), 2025, 600000),
	}
	paymentRepo := &mockPaymentRepository{
		mockFindSuccessful: func(ctx context.Context, userID, chargeID uint) ([]models.Payment, error) {
			return payments, nil
		},
	}
	svc := NewChargeStatusService(paymentRepo, &mockPreferenceRepository{}, &mockChargeRepository{}, &mockTenancyRepository{})

	for m := 9; m <= 12; m++ {
		paid, err := svc.IsPeriodPaid(context.Background(), 1, 10, m, 2025)
		require.NoError(t, err)
		assert.True(t, paid, "month %d of the start year", m)
	}
	for m := 1; m <= 8; m++ {
		paid, err := svc.IsPeriodPaid(context.Background(), 1, 10, m, 2026)
		require.NoError(t, err)
		assert.True(t, paid, "month %d of the following year", m)
	}

	paid, err := svc.IsPeriodPaid(context.Background(), 1, 10, 8, 2025)
	require.NoError(t, err)
	assert.False(t, paid, "month before the span starts")

	paid, err = svc.IsPeriodPaid(context.Background(), 1, 10, 9, 2026)
	require.NoError(t, err)
	assert.False(t, paid, "month after the span ends")
}
