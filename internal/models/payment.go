package models

import (
	"time"
)

// Payment represents one attempt to settle a charge period for a tenant.
// A monthly payment carries only PeriodMonth; a yearly payment carries
// PeriodMonth and PeriodMonthEnd marking the inclusive month span covered
// within PeriodYear.
type Payment struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	ChargeID       uint       `gorm:"not null;index" json:"charge_id"`
	Amount         int64      `gorm:"not null" json:"amount"`
	Status         string     `gorm:"default:pending;not null;index" json:"status"`
	PeriodMonth    *int       `gorm:"column:period_month" json:"period_month"`
	PeriodMonthEnd *int       `gorm:"column:period_month_end" json:"period_month_end"`
	PeriodYear     int        `gorm:"not null;index" json:"period_year"`
	PeriodLabel    string     `json:"period_label"`
	Reference      string     `gorm:"uniqueIndex;not null" json:"reference"`
	PaidAt         *time.Time `gorm:"index" json:"paid_at"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Associations
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Charge Charge `gorm:"foreignKey:ChargeID" json:"charge,omitempty"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// Payment status constants
const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
	PaymentStatusExpired = "expired"
)

// MaySucceed returns true if payment can transition to success
func (p *Payment) MaySucceed() bool {
	return p.Status == PaymentStatusPending
}

// MayFail returns true if payment can transition to failed
func (p *Payment) MayFail() bool {
	return p.Status == PaymentStatusPending
}

// MayExpire returns true if payment can transition to expired
func (p *Payment) MayExpire() bool {
	return p.Status == PaymentStatusPending
}

// IsYearly reports whether the payment covers a month span rather than a
// single month.
func (p *Payment) IsYearly() bool {
	return p.PeriodMonthEnd != nil
}

// CoversMonth reports whether this payment's period includes the given
// calendar month. A span payment covers every month in
// [PeriodMonth, PeriodMonthEnd] inclusive; when the end month number is
// below the start month number the span wraps, covering
// [PeriodMonth..12] of PeriodYear and [1..PeriodMonthEnd] of the year
// after. A single-month payment covers exactly PeriodMonth.
func (p *Payment) CoversMonth(month, year int) bool {
	if p.PeriodMonth == nil {
		return false
	}
	if p.PeriodMonthEnd == nil {
		return p.PeriodYear == year && *p.PeriodMonth == month
	}

	start, end := *p.PeriodMonth, *p.PeriodMonthEnd
	if start <= end {
		return p.PeriodYear == year && start <= month && month <= end
	}

	// Wrapped anniversary span
	switch year {
	case p.PeriodYear:
		return month >= start
	case p.PeriodYear + 1:
		return month <= end
	}
	return false
}

// CoversYear reports whether this payment is recorded against the given
// calendar year.
func (p *Payment) CoversYear(year int) bool {
	return p.PeriodYear == year
}

// PaymentResponse is the JSON response format for payments
type PaymentResponse struct {
	ID             uint       `json:"id"`
	ChargeID       uint       `json:"charge_id"`
	ChargeName     string     `json:"charge_name,omitempty"`
	Amount         int64      `json:"amount"`
	Status         string     `json:"status"`
	PeriodMonth    *int       `json:"period_month"`
	PeriodMonthEnd *int       `json:"period_month_end"`
	PeriodYear     int        `json:"period_year"`
	PeriodLabel    string     `json:"period_label"`
	Reference      string     `json:"reference"`
	PaidAt         *time.Time `json:"paid_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToResponse converts Payment to PaymentResponse
func (p *Payment) ToResponse() PaymentResponse {
	resp := PaymentResponse{
		ID:             p.ID,
		ChargeID:       p.ChargeID,
		Amount:         p.Amount,
		Status:         p.Status,
		PeriodMonth:    p.PeriodMonth,
		PeriodMonthEnd: p.PeriodMonthEnd,
		PeriodYear:     p.PeriodYear,
		PeriodLabel:    p.PeriodLabel,
		Reference:      p.Reference,
		PaidAt:         p.PaidAt,
		CreatedAt:      p.CreatedAt,
	}

	if p.Charge.ID != 0 {
		resp.ChargeName = p.Charge.Name
	}

	return resp
}
