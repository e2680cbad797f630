package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhq/hostel-api/internal/config"
	"github.com/hostelhq/hostel-api/internal/models"
	"github.com/hostelhq/hostel-api/pkg/logger"
)

func TestEmailService_renderTemplate(t *testing.T) {
	logger.Setup("test")
	service := NewEmailService(&config.Config{})

	t.Run("payment receipt", func(t *testing.T) {
		body, err := service.renderTemplate("payment_receipt.html", struct {
			Name        string
			Amount      int64
			PeriodLabel string
			Reference   string
			ChargeName  string
		}{
			Name:        "Ada Obi",
			Amount:      50000,
			PeriodLabel: "June 2025",
			Reference:   "HSTL-ref",
			ChargeName:  "Rent",
		})
		require.NoError(t, err)

		assert.Contains(t, body, "Hi Ada Obi")
		assert.Contains(t, body, "June 2025")
		assert.Contains(t, body, "HSTL-ref")
		assert.Contains(t, body, "Rent")
	})

	t.Run("arrears reminder", func(t *testing.T) {
		body, err := service.renderTemplate("arrears_reminder.html", struct {
			Name  string
			Lines []ArrearsLine
			Total int64
		}{
			Name: "Ada Obi",
			Lines: []ArrearsLine{
				{ChargeName: "Rent", Periods: 2, Amount: 100000},
				{ChargeName: "Water", Periods: 1, Amount: 5000},
			},
			Total: 105000,
		})
		require.NoError(t, err)

		assert.Contains(t, body, "Rent (2 period(s))")
		assert.Contains(t, body, "Water (1 period(s))")
		assert.Contains(t, body, "105000")
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := service.renderTemplate("missing.html", nil)
		assert.Error(t, err)
	})
}

func TestEmailService_SkipsWithoutAPIKey(t *testing.T) {
	logger.Setup("test")
	service := NewEmailService(&config.Config{ResendAPIKey: ""})

	user := &models.User{Email: "tenant@example.com", FullName: "Ada Obi"}
	payment := &models.Payment{Amount: 50000, PeriodLabel: "June 2025", Reference: "HSTL-ref"}

	err := service.SendPaymentReceipt(context.Background(), user, payment)
	assert.NoError(t, err)
}
