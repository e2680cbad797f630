package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hostelhq/hostel-api/internal/models"
)

// CalculatePaymentAmount converts a charge's native amount to its equivalent
// under the requested billing frequency.
//
// Monthly to yearly multiplies by twelve. Yearly to monthly divides by
// twelve and rounds half away from zero to a whole Naira. The division is
// lossy: converting yearly to monthly and back is not guaranteed to
// reproduce the original amount, and arrears sums over converted monthly
// amounts inherit the same rounding.
func CalculatePaymentAmount(amount int64, nativeFrequency, requestedFrequency string) (int64, error) {
	if !models.ValidFrequency(nativeFrequency) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFrequency, nativeFrequency)
	}
	if !models.ValidFrequency(requestedFrequency) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFrequency, requestedFrequency)
	}

	if nativeFrequency == requestedFrequency {
		return amount, nil
	}

	if nativeFrequency == models.FrequencyMonthly {
		// monthly -> yearly
		return amount * 12, nil
	}

	// yearly -> monthly, round half up
	monthly := decimal.NewFromInt(amount).
		Div(decimal.NewFromInt(12)).
		Round(0)
	return monthly.IntPart(), nil
}
