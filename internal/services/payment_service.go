package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hostelhq/hostel-api/internal/gateway"
	"github.com/hostelhq/hostel-api/internal/jobs"
	"github.com/hostelhq/hostel-api/internal/models"
	"github.com/hostelhq/hostel-api/internal/repository"
	"github.com/hostelhq/hostel-api/internal/statemachine"
	"github.com/hostelhq/hostel-api/pkg/logger"
)

// PeriodSelection is a caller-chosen billing period, e.g. a month picked
// from the arrears list. Month is nil for yearly selections.
type PeriodSelection struct {
	Month *int `json:"month"`
	Year  int  `json:"year"`
}

// PaymentIntent is the result of initiating a payment: either a fresh
// pending record with a checkout URL, or the reused reference of a pending
// attempt already open for the same period.
type PaymentIntent struct {
	Payment          *models.Payment `json:"payment"`
	Reference        string          `json:"reference"`
	AuthorizationURL string          `json:"authorization_url,omitempty"`
	Reused           bool            `json:"reused"`
}

// PaymentService creates payment records, finalizes gateway confirmations
// and maintains the tenant's frequency lock.
type PaymentService struct {
	repo            repository.PaymentRepository
	chargeRepo      repository.ChargeRepository
	tenancyRepo     repository.TenancyRepository
	prefRepo        repository.PreferenceRepository
	userRepo        repository.UserRepository
	statusSvc       *ChargeStatusService
	gateway         gateway.Client
	notificationSvc *NotificationService
	emailSvc        *EmailService
	worker          *jobs.Worker
	currency        string
	pendingTTL      time.Duration
	now             func() time.Time
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	repo repository.PaymentRepository,
	chargeRepo repository.ChargeRepository,
	tenancyRepo repository.TenancyRepository,
	prefRepo repository.PreferenceRepository,
	userRepo repository.UserRepository,
	statusSvc *ChargeStatusService,
	gw gateway.Client,
	notificationSvc *NotificationService,
	emailSvc *EmailService,
	worker *jobs.Worker,
	currency string,
	pendingTTL time.Duration,
) *PaymentService {
	return &PaymentService{
		repo:            repo,
		chargeRepo:      chargeRepo,
		tenancyRepo:     tenancyRepo,
		prefRepo:        prefRepo,
		userRepo:        userRepo,
		statusSvc:       statusSvc,
		gateway:         gw,
		notificationSvc: notificationSvc,
		emailSvc:        emailSvc,
		worker:          worker,
		currency:        currency,
		pendingTTL:      pendingTTL,
		now:             time.Now,
	}
}

func (s *PaymentService) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PaymentService) FindByUser(ctx context.Context, userID uint) ([]models.Payment, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *PaymentService) FindUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// CreatePaymentRecord opens a pending payment for one period of a charge.
//
// The amount is the charge's native amount converted to the requested
// frequency. The period is either the caller's selection or the current
// period: current month for monthly, and for yearly a twelve-month span
// anchored to the tenancy's start month, wrapping into the next calendar
// year when the span crosses December.
//
// Guards, re-checked on every call: a period already covered by a
// successful payment fails with ErrAlreadyPaid, and an open pending
// attempt for the same period is reused (its gateway reference is returned
// instead of inserting a second row).
func (s *PaymentService) CreatePaymentRecord(ctx context.Context, userID, chargeID uint, requestedFrequency string, sel *PeriodSelection) (*PaymentIntent, error) {
	if !models.ValidFrequency(requestedFrequency) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFrequency, requestedFrequency)
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

	amount, err := CalculatePaymentAmount(charge.Amount, charge.Frequency, requestedFrequency)
	if err != nil {
		return nil, err
	}

	month, monthEnd, year, label := resolvePeriod(requestedFrequency, tenancy, sel, s.now())

	if month != nil {
		paid, err := s.statusSvc.IsPeriodPaid(ctx, userID, chargeID, *month, year)
		if err != nil {
			return nil, err
		}
		if paid {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyPaid, label)
		}
	}

	existing, err := s.repo.FindPendingByPeriod(ctx, userID, chargeID, month, year)
	if err != nil {
		return nil, fmt.Errorf("check pending payments: %w", err)
	}
	if existing != nil {
		return &PaymentIntent{
			Payment:   existing,
			Reference: existing.Reference,
			Reused:    true,
		}, nil
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}

	reference := s.gateway.GenerateReference()
	init, err := s.gateway.InitializeTransaction(ctx, gateway.InitializeRequest{
		Email:     user.Email,
		Amount:    amount,
		Reference: reference,
		Currency:  s.currency,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize gateway transaction: %w", err)
	}

	payment := &models.Payment{
		UserID:         userID,
		ChargeID:       chargeID,
		Amount:         amount,
		Status:         models.PaymentStatusPending,
		PeriodMonth:    month,
		PeriodMonthEnd: monthEnd,
		PeriodYear:     year,
		PeriodLabel:    label,
		Reference:      reference,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment record: %w", err)
	}

	return &PaymentIntent{
		Payment:          payment,
		Reference:        reference,
		AuthorizationURL: init.AuthorizationURL,
	}, nil
}

// resolvePeriod picks the concrete period a payment will cover.
func resolvePeriod(requestedFrequency string, tenancy *models.Tenancy, sel *PeriodSelection, now time.Time) (month, monthEnd *int, year int, label string) {
	if requestedFrequency == models.FrequencyMonthly {
		m, y := int(now.Month()), now.Year()
		if sel != nil && sel.Month != nil {
			m, y = *sel.Month, sel.Year
		}
		return intPtr(m), nil, y, MonthLabel(m, y)
	}

	// yearly
	if sel != nil {
		return intPtr(1), intPtr(12), sel.Year, AnnualLabel(sel.Year)
	}

	y := now.Year()
	if tenancy.StartDate.IsZero() {
		return intPtr(1), intPtr(12), y, AnnualLabel(y)
	}

	// Anchor the span to the tenancy anniversary month. The span wraps into
	// the next calendar year whenever the end month number is below the
	// start month number; the row stays recorded against the start year.
	startMonth := int(tenancy.StartDate.Month())
	endMonth := AnniversarySpanEnd(startMonth)
	if startMonth == 1 {
		return intPtr(1), intPtr(12), y, AnnualLabel(y)
	}
	label = fmt.Sprintf("%s %d - %s %d", MonthName(startMonth), y, MonthName(endMonth), y+1)
	return intPtr(startMonth), intPtr(endMonth), y, label
}

// FinalizeSuccessfulPayment marks the payment behind a gateway reference
// successful and locks the tenant's frequency preference to the frequency
// the payment was made under.
//
// The preference write is an unconditional upsert: repeated confirmations
// for the same frequency are no-ops in effect. When the upsert fails after
// the payment row was already marked successful, the returned error wraps
// ErrPreferenceNotSaved so callers can surface "payment succeeded,
// preference not saved" for manual follow-up instead of a blanket failure.
func (s *PaymentService) FinalizeSuccessfulPayment(ctx context.Context, reference string) (*models.Payment, error) {
	payment, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("load payment %s: %w", reference, err)
	}

	// Webhook deliveries can repeat; a payment already finalized only
	// re-runs the idempotent preference upsert.
	if payment.Status != models.PaymentStatusSuccess {
		pfsm := statemachine.NewPaymentFSM(payment)
		if err := pfsm.Succeed(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
		}

		now := s.now()
		payment.PaidAt = &now
		if err := s.repo.Update(ctx, payment); err != nil {
			return nil, fmt.Errorf("update payment %s: %w", reference, err)
		}

		s.notifyPaymentResult(payment, "Payment received",
			fmt.Sprintf("Your payment of ₦%d for %s was successful", payment.Amount, payment.PeriodLabel),
			models.NotificationTypePaymentSuccess, true)
	}

	chosen := models.FrequencyMonthly
	if payment.IsYearly() {
		chosen = models.FrequencyYearly
	}
	if err := s.prefRepo.Upsert(ctx, payment.UserID, payment.ChargeID, chosen, s.now()); err != nil {
		logger.Error("Preference lock not saved after successful payment",
			"reference", reference, "user_id", payment.UserID, "charge_id", payment.ChargeID, "error", err)
		return payment, fmt.Errorf("%w (reference %s): %v", ErrPreferenceNotSaved, reference, err)
	}

	return payment, nil
}

// MarkPaymentFailed records a gateway-declined payment attempt.
func (s *PaymentService) MarkPaymentFailed(ctx context.Context, reference string) (*models.Payment, error) {
	payment, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("load payment %s: %w", reference, err)
	}

	pfsm := statemachine.NewPaymentFSM(payment)
	if err := pfsm.Fail(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("update payment %s: %w", reference, err)
	}

	s.notifyPaymentResult(payment, "Payment failed",
		fmt.Sprintf("Your payment for %s was not successful. Please try again.", payment.PeriodLabel),
		models.NotificationTypePaymentFailed, false)

	return payment, nil
}

// VerifyAndFinalize asks the gateway for the state of a payment attempt
// and applies the matching transition.
func (s *PaymentService) VerifyAndFinalize(ctx context.Context, reference string) (*models.Payment, error) {
	tx, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, err
	}

	switch tx.Status {
	case "success":
		return s.FinalizeSuccessfulPayment(ctx, reference)
	case "failed", "abandoned":
		return s.MarkPaymentFailed(ctx, reference)
	default:
		return nil, fmt.Errorf("%w: gateway status %q for %s", ErrInvalidState, tx.Status, reference)
	}
}

// ExpireStalePending sweeps pending payments older than the configured TTL
// to expired. Abandoned checkout attempts leave pending rows behind; this
// keeps them from accumulating.
func (s *PaymentService) ExpireStalePending(ctx context.Context) error {
	cutoff := s.now().Add(-s.pendingTTL)
	count, err := s.repo.ExpirePendingOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("expire stale pending payments: %w", err)
	}
	if count > 0 {
		logger.Info("Expired stale pending payments", "count", count)
	}
	return nil
}

func (s *PaymentService) notifyPaymentResult(payment *models.Payment, title, message, notificationType string, email bool) {
	if s.worker == nil || s.notificationSvc == nil {
		return
	}
	userID := payment.UserID
	p := *payment
	s.worker.EnqueueAsync(func(ctx context.Context) error {
		if err := s.notificationSvc.NotifyUser(ctx, userID, title, message, notificationType); err != nil {
			return err
		}
		if email && s.emailSvc != nil {
			user, err := s.userRepo.FindByID(ctx, userID)
			if err != nil {
				return err
			}
			return s.emailSvc.SendPaymentReceipt(ctx, user, &p)
		}
		return nil
	})
}

func intPtr(i int) *int {
	return &i
}
