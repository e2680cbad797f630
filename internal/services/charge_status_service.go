package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hostelhq/hostel-api/internal/models"
	"github.com/hostelhq/hostel-api/internal/repository"
)

// PaidPeriod is one settled billing period in a charge status.
type PaidPeriod struct {
	Month     int        `json:"month"`
	MonthEnd  *int       `json:"month_end,omitempty"`
	Year      int        `json:"year"`
	Label     string     `json:"label"`
	PaymentID uint       `json:"payment_id"`
	PaidAt    *time.Time `json:"paid_at"`
}

// UnpaidPeriod is one outstanding billing period in a charge status.
type UnpaidPeriod struct {
	Month  int    `json:"month"`
	Year   int    `json:"year"`
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// ChargePaymentStatus is the reconciled view of a tenant's standing on one
// charge. It is recomputed from the ledger on every request and never
// persisted.
type ChargePaymentStatus struct {
	ChargeID           uint           `json:"charge_id"`
	ChargeName         string         `json:"charge_name"`
	ChargeAmount       int64          `json:"charge_amount"`
	ChargeFrequency    string         `json:"charge_frequency"`
	ChosenFrequency    *string        `json:"chosen_frequency"`
	EffectiveFrequency string         `json:"effective_frequency"`
	IsLocked           bool           `json:"is_locked"`
	LockedAt           *time.Time     `json:"locked_at"`
	CurrentPeriodPaid  bool           `json:"current_period_paid"`
	IsUpToDate         bool           `json:"is_up_to_date"`
	PaidPeriods        []PaidPeriod   `json:"paid_periods"`
	UnpaidPeriods      []UnpaidPeriod `json:"unpaid_periods"`
	NextPaymentDue     *UnpaidPeriod  `json:"next_payment_due"`
	TotalArrears       int64          `json:"total_arrears"`
}

// ChargeStatusService reconciles a tenant's payment ledger against the
// period calendar for a charge.
type ChargeStatusService struct {
	paymentRepo repository.PaymentRepository
	prefRepo    repository.PreferenceRepository
	chargeRepo  repository.ChargeRepository
	tenancyRepo repository.TenancyRepository

	// now is injectable so reconciliation can be pinned to a date in tests
	now func() time.Time
}

// NewChargeStatusService creates a new charge status service
func NewChargeStatusService(
	paymentRepo repository.PaymentRepository,
	prefRepo repository.PreferenceRepository,
	chargeRepo repository.ChargeRepository,
	tenancyRepo repository.TenancyRepository,
) *ChargeStatusService {
	return &ChargeStatusService{
		paymentRepo: paymentRepo,
		prefRepo:    prefRepo,
		chargeRepo:  chargeRepo,
		tenancyRepo: tenancyRepo,
		now:         time.Now,
	}
}

// GetChargePaymentStatus computes the paid/unpaid period breakdown for one
// (tenant, charge) pair.
//
// The effective frequency resolves as override, then the tenant's stored
// preference, then the charge's native frequency. Periods are derived by
// walking the calendar forward from the tenancy start to the current
// period, so a skipped month surfaces as unpaid even when later months are
// settled. Unpaid amounts are always converted from the charge's native
// frequency.
//
// Any repository failure propagates to the caller; the status is never
// fabricated from a partial read.
func (s *ChargeStatusService) GetChargePaymentStatus(ctx context.Context, userID, chargeID uint, overrideFrequency string) (*ChargePaymentStatus, error) {
	if overrideFrequency != "" && !models.ValidFrequency(overrideFrequency) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFrequency, overrideFrequency)
	}

	charge, err := s.chargeRepo.FindByID(ctx, chargeID)
	if err != nil {
		return nil, fmt.Errorf("load charge %d: %w", chargeID, err)
	}

	tenancy, err := s.tenancyRepo.FindActiveByUserAndBuilding(ctx, userID, charge.BuildingID)
	if err != nil {
		return nil, fmt.Errorf("load tenancy: %w", err)
	}
	if tenancy == nil {
		return nil, ErrNoActiveTenancy
	}

	pref, err := s.prefRepo.Find(ctx, userID, chargeID)
	if err != nil {
		return nil, fmt.Errorf("load frequency preference: %w", err)
	}

	payments, err := s.paymentRepo.FindSuccessfulByUserAndCharge(ctx, userID, chargeID)
	if err != nil {
		return nil, fmt.Errorf("fetch payment ledger: %w", err)
	}

	effective := charge.Frequency
	if pref != nil && pref.Frequency() != "" {
		effective = pref.Frequency()
	}
	if overrideFrequency != "" {
		effective = overrideFrequency
	}

	status := &ChargePaymentStatus{
		ChargeID:           charge.ID,
		ChargeName:         charge.Name,
		ChargeAmount:       charge.Amount,
		ChargeFrequency:    charge.Frequency,
		EffectiveFrequency: effective,
	}
	if pref != nil {
		status.ChosenFrequency = pref.ChosenFrequency
		status.IsLocked = pref.IsLocked()
		status.LockedAt = pref.LockedAt
	}

	now := s.now()
	if effective == models.FrequencyYearly {
		if err := s.reconcileYearly(status, charge, tenancy, payments, now); err != nil {
			return nil, err
		}
	} else {
		if err := s.reconcileMonthly(status, charge, tenancy, payments, now); err != nil {
			return nil, err
		}
	}

	status.IsUpToDate = len(status.UnpaidPeriods) == 0
	if len(status.UnpaidPeriods) > 0 {
		status.NextPaymentDue = &status.UnpaidPeriods[0]
	}
	for _, p := range status.UnpaidPeriods {
		status.TotalArrears += p.Amount
	}

	return status, nil
}

func (s *ChargeStatusService) reconcileYearly(status *ChargePaymentStatus, charge *models.Charge, tenancy *models.Tenancy, payments []models.Payment, now time.Time) error {
	yearlyAmount, err := CalculatePaymentAmount(charge.Amount, charge.Frequency, models.FrequencyYearly)
	if err != nil {
		return err
	}

	for _, year := range EnumerateYears(tenancy.StartDate.Year(), now.Year()) {
		if payment := matchYearPayment(payments, year); payment != nil {
			paid := PaidPeriod{
				Month:     1,
				MonthEnd:  payment.PeriodMonthEnd,
				Year:      year,
				Label:     AnnualLabel(year),
				PaymentID: payment.ID,
				PaidAt:    payment.PaidAt,
			}
			if payment.PeriodMonth != nil {
				paid.Month = *payment.PeriodMonth
			}
			status.PaidPeriods = append(status.PaidPeriods, paid)
			if year == now.Year() {
				status.CurrentPeriodPaid = true
			}
			continue
		}

		status.UnpaidPeriods = append(status.UnpaidPeriods, UnpaidPeriod{
			Month:  1,
			Year:   year,
			Label:  AnnualLabel(year),
			Amount: yearlyAmount,
		})
	}
	return nil
}

func (s *ChargeStatusService) reconcileMonthly(status *ChargePaymentStatus, charge *models.Charge, tenancy *models.Tenancy, payments []models.Payment, now time.Time) error {
	monthlyAmount, err := CalculatePaymentAmount(charge.Amount, charge.Frequency, models.FrequencyMonthly)
	if err != nil {
		return err
	}

	start := tenancy.StartDate
	for _, period := range EnumerateMonths(int(start.Month()), start.Year(), int(now.Month()), now.Year()) {
		if payment := matchCoveringPayment(payments, period.Month, period.Year); payment != nil {
			status.PaidPeriods = append(status.PaidPeriods, PaidPeriod{
				Month:     period.Month,
				Year:      period.Year,
				Label:     MonthLabel(period.Month, period.Year),
				PaymentID: payment.ID,
				PaidAt:    payment.PaidAt,
			})
			if period.Month == int(now.Month()) && period.Year == now.Year() {
				status.CurrentPeriodPaid = true
			}
			continue
		}

		status.UnpaidPeriods = append(status.UnpaidPeriods, UnpaidPeriod{
			Month:  period.Month,
			Year:   period.Year,
			Label:  MonthLabel(period.Month, period.Year),
			Amount: monthlyAmount,
		})
	}
	return nil
}

// IsPeriodPaid reports whether a successful payment already covers the
// given month for the (tenant, charge) pair.
func (s *ChargeStatusService) IsPeriodPaid(ctx context.Context, userID, chargeID uint, month, year int) (bool, error) {
	payments, err := s.paymentRepo.FindSuccessfulByUserAndCharge(ctx, userID, chargeID)
	if err != nil {
		return false, fmt.Errorf("fetch payment ledger: %w", err)
	}
	return matchCoveringPayment(payments, month, year) != nil, nil
}

// matchCoveringPayment returns the first successful payment whose period
// covers the given month, or nil. The ledger is assumed to hold no
// overlapping successful payments for the same period; overlap prevention
// belongs to payment creation.
func matchCoveringPayment(payments []models.Payment, month, year int) *models.Payment {
	for i := range payments {
		p := &payments[i]
		if p.Status != models.PaymentStatusSuccess {
			continue
		}
		if p.CoversMonth(month, year) {
			return p
		}
	}
	return nil
}

// matchYearPayment returns the first successful payment recorded against
// the given calendar year, or nil.
func matchYearPayment(payments []models.Payment, year int) *models.Payment {
	for i := range payments {
		p := &payments[i]
		if p.Status != models.PaymentStatusSuccess {
			continue
		}
		if p.CoversYear(year) {
			return p
		}
	}
	return nil
}
