package services

import (
	"fmt"
	"time"
)

// Period identifies one billing month on the calendar.
type Period struct {
	Month int
	Year  int
}

// MonthName returns the full English month name for a 1-12 month number,
// or an empty string outside that range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()
}

// MonthLabel formats a monthly period for display, e.g. "January 2024".
func MonthLabel(month, year int) string {
	return fmt.Sprintf("%s %d", MonthName(month), year)
}

// AnnualLabel formats a calendar-year period for display.
func AnnualLabel(year int) string {
	return fmt.Sprintf("%d Annual (Jan-Dec)", year)
}

// EnumerateMonths produces every (month, year) pair from the start period to
// the end period inclusive, in chronological order, rolling month 12 into
// January of the next year. The result is empty when the start period is
// after the end period.
func EnumerateMonths(startMonth, startYear, endMonth, endYear int) []Period {
	if startYear > endYear || (startYear == endYear && startMonth > endMonth) {
		return nil
	}

	var periods []Period
	month, year := startMonth, startYear
	for year < endYear || (year == endYear && month <= endMonth) {
		periods = append(periods, Period{Month: month, Year: year})
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return periods
}

// EnumerateYears produces every calendar year from startYear to endYear
// inclusive, or an empty slice when the start is in the future.
func EnumerateYears(startYear, endYear int) []int {
	if startYear > endYear {
		return nil
	}
	years := make([]int, 0, endYear-startYear+1)
	for y := startYear; y <= endYear; y++ {
		years = append(years, y)
	}
	return years
}

// AnniversarySpanEnd returns the final month of a twelve-month span that
// begins in startMonth. The span wraps into the next calendar year whenever
// the returned month number is less than startMonth.
func AnniversarySpanEnd(startMonth int) int {
	return ((startMonth + 10) % 12) + 1
}
