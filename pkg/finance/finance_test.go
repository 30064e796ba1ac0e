package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInstallmentCount(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		freq     Frequency
		expected int
	}{
		{
			name:     "30 days weekly",
			start:    date(2024, 1, 1),
			end:      date(2024, 1, 31),
			freq:     FrequencyWeekly,
			expected: 5, // ceil(30/7)
		},
		{
			name:     "30 days bi-weekly",
			start:    date(2024, 1, 1),
			end:      date(2024, 1, 31),
			freq:     FrequencyBiWeekly,
			expected: 3,
		},
		{
			name:     "90 days monthly",
			start:    date(2024, 1, 1),
			end:      date(2024, 3, 31),
			freq:     FrequencyMonthly,
			expected: 3,
		},
		{
			name:     "one year quarterly",
			start:    date(2024, 1, 1),
			end:      date(2024, 12, 31),
			freq:     FrequencyQuarterly,
			expected: 5, // ceil(365/90)
		},
		{
			name:     "zero-day range floors to one installment",
			start:    date(2024, 6, 15),
			end:      date(2024, 6, 15),
			freq:     FrequencyMonthly,
			expected: 1,
		},
		{
			name:     "end before start floors to one installment",
			start:    date(2024, 6, 15),
			end:      date(2024, 6, 1),
			freq:     FrequencyWeekly,
			expected: 1,
		},
		{
			name:     "unknown cadence falls back to monthly",
			start:    date(2024, 1, 1),
			end:      date(2024, 3, 1),
			freq:     Frequency("fortnightly"),
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InstallmentCount(tt.start, tt.end, tt.freq))
		})
	}
}

func TestInstallmentAmount(t *testing.T) {
	tests := []struct {
		name     string
		total    decimal.Decimal
		start    time.Time
		end      time.Time
		freq     Frequency
		expected decimal.Decimal
	}{
		{
			name:     "1000 over 30 days weekly",
			total:    decimal.NewFromInt(1000),
			start:    date(2024, 1, 1),
			end:      date(2024, 1, 31),
			freq:     FrequencyWeekly,
			expected: decimal.NewFromInt(200), // 5 installments
		},
		{
			name:     "same-day range pays everything at once",
			total:    decimal.NewFromFloat(432.10),
			start:    date(2024, 1, 1),
			end:      date(2024, 1, 1),
			freq:     FrequencyMonthly,
			expected: decimal.NewFromFloat(432.10),
		},
		{
			name:     "uneven split left unrounded",
			total:    decimal.NewFromInt(1000),
			start:    date(2024, 1, 1),
			end:      date(2024, 3, 31),
			freq:     FrequencyMonthly,
			expected: decimal.NewFromInt(1000).Div(decimal.NewFromInt(3)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := InstallmentAmount(tt.total, tt.start, tt.end, tt.freq)
			assert.True(t, result.Equal(tt.expected),
				"expected %v, got %v", tt.expected, result)
		})
	}
}

func TestValidFrequency(t *testing.T) {
	assert.True(t, ValidFrequency(FrequencyBiWeekly))
	assert.False(t, ValidFrequency(Frequency("hourly")))
}

func TestApplyDurationRoundTrip(t *testing.T) {
	today := date(2024, 1, 15)

	for _, opt := range DurationOptions {
		t.Run(opt.Label, func(t *testing.T) {
			start, end := ApplyDuration(today, opt.Days)

			assert.Equal(t, today, start)
			assert.Equal(t, opt.Days, DaysBetween(start, end))
			assert.Equal(t, opt.Label, DurationLabel(start, end))
		})
	}
}

func TestDurationLabelCustom(t *testing.T) {
	start := date(2024, 1, 1)

	assert.Equal(t, DurationCustom, DurationLabel(start, start.AddDate(0, 0, 45)))
	assert.Equal(t, DurationCustom, DurationLabel(start, start))
}
