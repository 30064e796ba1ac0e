package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBillTotals(t *testing.T) {
	tests := []struct {
		name        string
		base        decimal.Decimal
		penalty     string
		expectedDue decimal.Decimal
	}{
		{
			name:        "penalty added to base",
			base:        decimal.NewFromInt(500),
			penalty:     "50",
			expectedDue: decimal.NewFromInt(550),
		},
		{
			name:        "blank penalty treated as zero",
			base:        decimal.NewFromInt(500),
			penalty:     "",
			expectedDue: decimal.NewFromInt(500),
		},
		{
			name:        "whitespace penalty treated as zero",
			base:        decimal.NewFromInt(500),
			penalty:     "   ",
			expectedDue: decimal.NewFromInt(500),
		},
		{
			name:        "unparsable penalty treated as zero",
			base:        decimal.NewFromInt(500),
			penalty:     "n/a",
			expectedDue: decimal.NewFromInt(500),
		},
		{
			name:        "fractional penalty",
			base:        decimal.NewFromFloat(120.50),
			penalty:     "4.75",
			expectedDue: decimal.NewFromFloat(125.25),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, due := BillTotals(tt.base, tt.penalty)

			assert.True(t, total.Equal(tt.base), "total_amount must stay pre-penalty")
			assert.True(t, due.Equal(tt.expectedDue),
				"expected %v, got %v", tt.expectedDue, due)
		})
	}
}

func TestBillBase(t *testing.T) {
	installment := decimal.NewFromFloat(120.50)
	zero := decimal.Zero

	tests := []struct {
		name         string
		installment  *decimal.Decimal
		totalBalance decimal.Decimal
		paidAmount   decimal.Decimal
		expected     decimal.Decimal
	}{
		{
			name:         "configured installment wins",
			installment:  &installment,
			totalBalance: decimal.NewFromInt(1000),
			paidAmount:   decimal.NewFromInt(400),
			expected:     installment,
		},
		{
			name:         "no installment falls back to remaining balance",
			installment:  nil,
			totalBalance: decimal.NewFromInt(1000),
			paidAmount:   decimal.NewFromInt(400),
			expected:     decimal.NewFromInt(600),
		},
		{
			name:         "zero installment falls back to remaining balance",
			installment:  &zero,
			totalBalance: decimal.NewFromInt(1000),
			paidAmount:   decimal.Zero,
			expected:     decimal.NewFromInt(1000),
		},
		{
			name:         "overpaid loan clamps at zero",
			installment:  nil,
			totalBalance: decimal.NewFromInt(1000),
			paidAmount:   decimal.NewFromInt(1200),
			expected:     decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BillBase(tt.installment, tt.totalBalance, tt.paidAmount)
			assert.True(t, result.Equal(tt.expected),
				"expected %v, got %v", tt.expected, result)
		})
	}
}
