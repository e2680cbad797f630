package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthName(t *testing.T) {
	assert.Equal(t, "January", MonthName(1))
	assert.Equal(t, "December", MonthName(12))
	assert.Equal(t, "", MonthName(0))
	assert.Equal(t, "", MonthName(13))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "March 2025", MonthLabel(3, 2025))
}

func TestAnnualLabel(t *testing.T) {
	assert.Equal(t, "2024 Annual (Jan-Dec)", AnnualLabel(2024))
}

func TestEnumerateMonths(t *testing.T) {
	t.Run("within one year", func(t *testing.T) {
		periods := EnumerateMonths(3, 2025, 6, 2025)
		assert.Equal(t, []Period{
			{Month: 3, Year: 2025},
			{Month: 4, Year: 2025},
			{Month: 5, Year: 2025},
			{Month: 6, Year: 2025},
		}, periods)
	})

	t.Run("rolls over year boundary", func(t *testing.T) {
		periods := EnumerateMonths(11, 2024, 2, 2025)
		assert.Equal(t, []Period{
			{Month: 11, Year: 2024},
			{Month: 12, Year: 2024},
			{Month: 1, Year: 2025},
			{Month: 2, Year: 2025},
		}, periods)
	})

	t.Run("single period", func(t *testing.T) {
		periods := EnumerateMonths(6, 2025, 6, 2025)
		assert.Equal(t, []Period{{Month: 6, Year: 2025}}, periods)
	})

	t.Run("start after end is empty", func(t *testing.T) {
		assert.Empty(t, EnumerateMonths(7, 2025, 6, 2025))
		assert.Empty(t, EnumerateMonths(1, 2026, 12, 2025))
	})
}

func TestEnumerateYears(t *testing.T) {
	assert.Equal(t, []int{2024, 2025}, EnumerateYears(2024, 2025))
	assert.Equal(t, []int{2025}, EnumerateYears(2025, 2025))
	assert.Empty(t, EnumerateYears(2026, 2025))
}

func TestAnniversarySpanEnd(t *testing.T) {
	// A span starting in January ends in December of the same year; any
	// other start wraps into the next year, ending the month before the
	// anniversary.
	cases := map[int]int{
		1:  12,
		2:  1,
		3:  2,
		6:  5,
		9:  8,
		12: 11,
	}
	for start, want := range cases {
		assert.Equal(t, want, AnniversarySpanEnd(start), "start month %d", start)
	}
}
