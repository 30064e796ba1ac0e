package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	scoreBase = 650
	scoreMin  = 300
	scoreMax  = 850

	scoreAdjustPaid      = 150
	scoreAdjustDefaulted = -300
)

// ScoreResult is an estimated credit score with its rating band.
// Tier runs 1 (Poor) through 5 (Excellent).
type ScoreResult struct {
	Score int    `json:"score"`
	Label string `json:"label"`
	Tier  int    `json:"tier"`
}

// CreditScore estimates a credit score from a loan's repayment aggregates.
// Starting from a base of 650, up to 200 points are added in proportion to
// paid/total balance, then a status adjustment is applied (paid +150,
// defaulted -300). The result is clamped to [300, 850]. A zero or negative
// total balance contributes a ratio of 0 rather than dividing by zero.
func CreditScore(status string, paidAmount, totalBalance decimal.Decimal) ScoreResult {
	ratio := 0.0
	if totalBalance.IsPositive() {
		ratio = paidAmount.Div(totalBalance).InexactFloat64()
	}

	score := scoreBase + int(math.Round(ratio*200))

	switch status {
	case "paid":
		score += scoreAdjustPaid
	case "defaulted":
		score += scoreAdjustDefaulted
	}

	if score < scoreMin {
		score = scoreMin
	}
	if score > scoreMax {
		score = scoreMax
	}

	label, tier := scoreBand(score)

	return ScoreResult{
		Score: score,
		Label: label,
		Tier:  tier,
	}
}

func scoreBand(score int) (string, int) {
	switch {
	case score >= 800:
		return "Excellent", 5
	case score >= 740:
		return "Very Good", 4
	case score >= 670:
		return "Good", 3
	case score >= 580:
		return "Fair", 2
	default:
		return "Poor", 1
	}
}
