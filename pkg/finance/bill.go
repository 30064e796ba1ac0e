package finance

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BillTotals computes a bill's pre-penalty total and the amount actually
// due. The penalty arrives as free-form client input; blank or unparsable
// values count as zero.
func BillTotals(baseAmount decimal.Decimal, penalty string) (totalAmount, totalAmountDue decimal.Decimal) {
	p := decimal.Zero
	if s := strings.TrimSpace(penalty); s != "" {
		if parsed, err := decimal.NewFromString(s); err == nil {
			p = parsed
		}
	}
	return baseAmount, baseAmount.Add(p)
}

// BillBase picks the amount a new bill demands: the loan's configured
// installment amount when installments are set up, otherwise the remaining
// balance clamped at zero.
func BillBase(installmentAmount *decimal.Decimal, totalBalance, paidAmount decimal.Decimal) decimal.Decimal {
	if installmentAmount != nil && installmentAmount.IsPositive() {
		return *installmentAmount
	}

	remaining := totalBalance.Sub(paidAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
