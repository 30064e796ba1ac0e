package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andrifs/solutions-engine/pkg/finance"
)

const (
	LoanStatusActive    = "active"
	LoanStatusPaid      = "paid"
	LoanStatusDefaulted = "defaulted"
)

// Loan represents a loan entity. TotalInterest, TotalBalance and PaidAmount
// are stored aggregates this service owns; clients read them as-is and never
// recompute them.
type Loan struct {
	ID                   uuid.UUID        `json:"id" db:"id"`
	BorrowerName         string           `json:"borrower_name" db:"borrower_name"`
	Amount               decimal.Decimal  `json:"amount" db:"amount"`
	InterestRate         decimal.Decimal  `json:"interest_rate" db:"interest_rate"`
	InterestType         string           `json:"interest_type" db:"interest_type"`
	CompoundingFrequency string           `json:"compounding_frequency,omitempty" db:"compounding_frequency"`
	StartDate            time.Time        `json:"start_date" db:"start_date"`
	EndDate              time.Time        `json:"end_date" db:"end_date"`
	Status               string           `json:"status" db:"status"`
	TotalInterest        decimal.Decimal  `json:"total_interest" db:"total_interest"`
	TotalBalance         decimal.Decimal  `json:"total_balance" db:"total_balance"`
	PaidAmount           decimal.Decimal  `json:"paid_amount" db:"paid_amount"`
	InstallmentFrequency *string          `json:"installment_frequency,omitempty" db:"installment_frequency"`
	InstallmentAmount    *decimal.Decimal `json:"installment_amount,omitempty" db:"installment_amount"`
	CreatedAt            time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at" db:"updated_at"`
}

// Outstanding is the unpaid balance, clamped at zero when overpaid.
func (l *Loan) Outstanding() decimal.Decimal {
	outstanding := l.TotalBalance.Sub(l.PaidAmount)
	if outstanding.IsNegative() {
		return decimal.Zero
	}
	return outstanding
}

// DurationLabel renders the loan's term as a named duration, or "Custom".
func (l *Loan) DurationLabel() string {
	return finance.DurationLabel(l.StartDate, l.EndDate)
}

// ValidLoanStatus reports whether s is a known loan status.
func ValidLoanStatus(s string) bool {
	return s == LoanStatusActive || s == LoanStatusPaid || s == LoanStatusDefaulted
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	BorrowerName         string          `json:"borrower_name" validate:"required"`
	Amount               decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
	InterestRate         decimal.Decimal `json:"interest_rate" validate:"decimal_gte=0"`
	InterestType         string          `json:"interest_type" validate:"required,oneof=fixed compounding"`
	CompoundingFrequency string          `json:"compounding_frequency" validate:"omitempty,oneof=daily monthly quarterly annually"`
	DurationDays         *int            `json:"duration_days" validate:"omitempty,gt=0"`
	StartDate            string          `json:"start_date" validate:"required_without=DurationDays,omitempty,datetime=2006-01-02"`
	EndDate              string          `json:"end_date" validate:"required_without=DurationDays,omitempty,datetime=2006-01-02"`
	InstallmentFrequency string          `json:"installment_frequency" validate:"omitempty,oneof=weekly bi-weekly monthly quarterly annually"`
}

type UpdateLoanRequest struct {
	BorrowerName         string          `json:"borrower_name" validate:"required"`
	Amount               decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
	InterestRate         decimal.Decimal `json:"interest_rate" validate:"decimal_gte=0"`
	InterestType         string          `json:"interest_type" validate:"required,oneof=fixed compounding"`
	CompoundingFrequency string          `json:"compounding_frequency" validate:"omitempty,oneof=daily monthly quarterly annually"`
	StartDate            string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate              string          `json:"end_date" validate:"required,datetime=2006-01-02"`
	Status               string          `json:"status" validate:"required,oneof=active paid defaulted"`
	InstallmentFrequency string          `json:"installment_frequency" validate:"omitempty,oneof=weekly bi-weekly monthly quarterly annually"`
}

type LoanResponse struct {
	Loan          *Loan           `json:"loan"`
	DurationLabel string          `json:"duration_label"`
	Outstanding   decimal.Decimal `json:"outstanding"`
}

func NewLoanResponse(loan *Loan) *LoanResponse {
	return &LoanResponse{
		Loan:          loan,
		DurationLabel: loan.DurationLabel(),
		Outstanding:   loan.Outstanding(),
	}
}

type ScoreResponse struct {
	LoanID uuid.UUID           `json:"loan_id"`
	Result finance.ScoreResult `json:"result"`
}
