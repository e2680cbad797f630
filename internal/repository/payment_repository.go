package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hostelhq/hostel-api/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id uint) (*models.Payment, error)
	FindByReference(ctx context.Context, reference string) (*models.Payment, error)
	// FindSuccessfulByUserAndCharge returns success payments for the pair
	// ordered by (period_year, period_month) ascending.
	FindSuccessfulByUserAndCharge(ctx context.Context, userID, chargeID uint) ([]models.Payment, error)
	// FindPendingByPeriod returns the pending payment for the same period, or
	// nil when none exists. A nil month matches on year alone (yearly flows).
	FindPendingByPeriod(ctx context.Context, userID, chargeID uint, month *int, year int) (*models.Payment, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Payment, error)
	FindByCharge(ctx context.Context, chargeID uint) ([]models.Payment, error)
	// ExpirePendingOlderThan flips stale pending rows to expired and returns
	// the number of rows affected.
	ExpirePendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Preload("Charge").
		First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByReference(ctx context.Context, reference string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Preload("Charge").
		Where("reference = ?", reference).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindSuccessfulByUserAndCharge(ctx context.Context, userID, chargeID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND charge_id = ? AND status = ?", userID, chargeID, models.PaymentStatusSuccess).
		Order("period_year ASC, period_month ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) FindPendingByPeriod(ctx context.Context, userID, chargeID uint, month *int, year int) (*models.Payment, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND charge_id = ? AND status = ? AND period_year = ?",
			userID, chargeID, models.PaymentStatusPending, year)
	if month != nil {
		query = query.Where("period_month = ?", *month)
	}

	var payment models.Payment
	err := query.Order("created_at ASC").First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByUser(ctx context.Context, userID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Preload("Charge").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) FindByCharge(ctx context.Context, chargeID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("charge_id = ?", chargeID).
		Order("period_year ASC, period_month ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ExpirePendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("status = ? AND created_at < ?", models.PaymentStatusPending, cutoff).
		Update("status", models.PaymentStatusExpired)
	return result.RowsAffected, result.Error
}
