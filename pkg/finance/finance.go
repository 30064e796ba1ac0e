package finance

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is an installment cadence.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiWeekly  Frequency = "bi-weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnually  Frequency = "annually"
)

// Calendar-approximate day spans per cadence, not calendar-exact.
var frequencyDays = map[Frequency]int{
	FrequencyWeekly:    7,
	FrequencyBiWeekly:  14,
	FrequencyMonthly:   30,
	FrequencyQuarterly: 90,
	FrequencyAnnually:  365,
}

// ValidFrequency reports whether f is a known installment cadence.
func ValidFrequency(f Frequency) bool {
	_, ok := frequencyDays[f]
	return ok
}

// DaysBetween returns the number of days from start to end, rounding
// partial days up. Negative when end precedes start.
func DaysBetween(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// InstallmentCount returns how many installments fit between start and end
// at the given cadence. A zero-day range still yields one installment so
// the amount calculation never divides by zero.
func InstallmentCount(start, end time.Time, freq Frequency) int {
	interval, ok := frequencyDays[freq]
	if !ok {
		interval = frequencyDays[FrequencyMonthly]
	}

	totalDays := DaysBetween(start, end)
	if totalDays < 0 {
		totalDays = 0
	}

	count := int(math.Ceil(float64(totalDays) / float64(interval)))
	if count < 1 {
		count = 1
	}

	return count
}

// InstallmentAmount splits totalAmount evenly across the installments that
// fit between start and end. No rounding is applied here; callers round to
// 2 decimal places for storage and display.
func InstallmentAmount(totalAmount decimal.Decimal, start, end time.Time, freq Frequency) decimal.Decimal {
	count := InstallmentCount(start, end, freq)
	return totalAmount.Div(decimal.NewFromInt(int64(count)))
}
