package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hostelhq/hostel-api/internal/models"
)

func TestCalculatePaymentAmount(t *testing.T) {
	t.Run("same frequency is identity", func(t *testing.T) {
		got, err := CalculatePaymentAmount(50000, models.FrequencyMonthly, models.FrequencyMonthly)
		assert.NoError(t, err)
		assert.Equal(t, int64(50000), got)

		got, err = CalculatePaymentAmount(450000, models.FrequencyYearly, models.FrequencyYearly)
		assert.NoError(t, err)
		assert.Equal(t, int64(450000), got)
	})

	t.Run("monthly to yearly multiplies by twelve", func(t *testing.T) {
		got, err := CalculatePaymentAmount(50000, models.FrequencyMonthly, models.FrequencyYearly)
		assert.NoError(t, err)
		assert.Equal(t, int64(600000), got)
	})

	t.Run("yearly to monthly divides and rounds half up", func(t *testing.T) {
		got, err := CalculatePaymentAmount(450000, models.FrequencyYearly, models.FrequencyMonthly)
		assert.NoError(t, err)
		assert.Equal(t, int64(37500), got)

		// 100000 / 12 = 8333.33..., rounds down
		got, err = CalculatePaymentAmount(100000, models.FrequencyYearly, models.FrequencyMonthly)
		assert.NoError(t, err)
		assert.Equal(t, int64(8333), got)

		// 50 / 12 = 4.1666..., rounds down
		got, err = CalculatePaymentAmount(50, models.FrequencyYearly, models.FrequencyMonthly)
		assert.NoError(t, err)
		assert.Equal(t, int64(4), got)

		// 66 / 12 = 5.5, rounds up
		got, err = CalculatePaymentAmount(66, models.FrequencyYearly, models.FrequencyMonthly)
		assert.NoError(t, err)
		assert.Equal(t, int64(6), got)
	})

	t.Run("double conversion is lossy", func(t *testing.T) {
		monthly, err := CalculatePaymentAmount(100000, models.FrequencyYearly, models.FrequencyMonthly)
		assert.NoError(t, err)

		back, err := CalculatePaymentAmount(monthly, models.FrequencyMonthly, models.FrequencyYearly)
		assert.NoError(t, err)
		assert.Equal(t, int64(99996), back)
		assert.NotEqual(t, int64(100000), back)
	})

	t.Run("invalid frequencies rejected", func(t *testing.T) {
		_, err := CalculatePaymentAmount(100, "weekly", models.FrequencyMonthly)
		assert.ErrorIs(t, err, ErrInvalidFrequency)

		_, err = CalculatePaymentAmount(100, models.FrequencyMonthly, "")
		assert.ErrorIs(t, err, ErrInvalidFrequency)
	})
}
