package finance

import "time"

// DurationOption pairs a display label with a fixed day span.
type DurationOption struct {
	Label string `json:"label"`
	Days  int    `json:"days"`
}

// DurationCustom is the label rendered when a loan's date range does not
// match any named duration.
const DurationCustom = "Custom"

// DurationOptions lists the named loan durations in the order clients
// present them.
var DurationOptions = []DurationOption{
	{Label: "1 Month", Days: 30},
	{Label: "3 Months", Days: 90},
	{Label: "6 Months", Days: 180},
	{Label: "1 Year", Days: 365},
	{Label: "2 Years", Days: 730},
	{Label: "3 Years", Days: 1095},
	{Label: "5 Years", Days: 1825},
}

// ApplyDuration resolves a named duration's day span into concrete dates:
// the loan starts today and ends exactly days later.
func ApplyDuration(today time.Time, days int) (start, end time.Time) {
	return today, today.AddDate(0, 0, days)
}

// DurationLabel reverses ApplyDuration: it recomputes the day difference of
// an existing date range and returns the matching named duration, or
// "Custom" when no entry matches exactly.
func DurationLabel(start, end time.Time) string {
	days := DaysBetween(start, end)
	for _, opt := range DurationOptions {
		if opt.Days == days {
			return opt.Label
		}
	}
	return DurationCustom
}
