package finance

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// InterestType selects the interest formula for a loan.
type InterestType string

const (
	InterestTypeFixed       InterestType = "fixed"
	InterestTypeCompounding InterestType = "compounding"
)

// CompoundingFrequency selects how often compounding interest capitalizes.
// Meaningful only when the interest type is compounding.
type CompoundingFrequency string

const (
	CompoundDaily     CompoundingFrequency = "daily"
	CompoundMonthly   CompoundingFrequency = "monthly"
	CompoundQuarterly CompoundingFrequency = "quarterly"
	CompoundAnnually  CompoundingFrequency = "annually"
)

var compoundingPeriods = map[CompoundingFrequency]int{
	CompoundDaily:     365,
	CompoundMonthly:   12,
	CompoundQuarterly: 4,
	CompoundAnnually:  1,
}

var daysInYear = decimal.NewFromInt(365)

// ValidInterestType reports whether t is a known interest type.
func ValidInterestType(t InterestType) bool {
	return t == InterestTypeFixed || t == InterestTypeCompounding
}

// ValidCompoundingFrequency reports whether f is a known compounding cadence.
func ValidCompoundingFrequency(f CompoundingFrequency) bool {
	_, ok := compoundingPeriods[f]
	return ok
}

// TotalInterest computes the interest accrued over the loan term, rounded
// to 2 decimal places. The term length in years is days/365.
//
// Fixed: simple interest, P * r * t.
// Compounding: P * (1 + r/n)^(n*t) - P, with n capitalizations per year.
// An unknown compounding frequency falls back to monthly.
func TotalInterest(principal, ratePercent decimal.Decimal, interestType InterestType, compounding CompoundingFrequency, start, end time.Time) decimal.Decimal {
	days := DaysBetween(start, end)
	if days < 0 {
		days = 0
	}

	if interestType == InterestTypeCompounding {
		n, ok := compoundingPeriods[compounding]
		if !ok {
			n = compoundingPeriods[CompoundMonthly]
		}

		rate := ratePercent.InexactFloat64() / 100
		years := float64(days) / 365
		factor := math.Pow(1+rate/float64(n), float64(n)*years)

		total := principal.Mul(decimal.NewFromFloat(factor))
		return total.Sub(principal).Round(2)
	}

	years := decimal.NewFromInt(int64(days)).Div(daysInYear)
	interest := principal.Mul(ratePercent).Div(decimal.NewFromInt(100)).Mul(years)
	return interest.Round(2)
}
