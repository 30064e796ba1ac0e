package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	BillStatusPending = "pending"
	BillStatusPaid    = "paid"
	BillStatusOverdue = "overdue"
)

// Bill is a generated demand for payment of one installment (or the
// remaining balance) plus any penalty. BillNumber is sequential per loan.
// Principal and Interest are copied from the parent loan at creation time,
// not recomputed per bill.
type Bill struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	LoanID         uuid.UUID       `json:"loan_id" db:"loan_id"`
	BillNumber     int             `json:"bill_number" db:"bill_number"`
	DueDate        time.Time       `json:"due_date" db:"due_date"`
	Principal      decimal.Decimal `json:"principal" db:"principal"`
	Interest       decimal.Decimal `json:"interest" db:"interest"`
	TotalAmount    decimal.Decimal `json:"total_amount" db:"total_amount"`
	PenaltyAmount  decimal.Decimal `json:"penalty_amount" db:"penalty_amount"`
	TotalAmountDue decimal.Decimal `json:"total_amount_due" db:"total_amount_due"`
	Status         string          `json:"status" db:"status"`
	Note           string          `json:"note" db:"note"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// ValidBillStatus reports whether s is a known bill status. Every transition
// between valid statuses is allowed; this service is the authority and the
// full matrix (pending<->paid, pending->overdue, overdue<->paid) is legal.
func ValidBillStatus(s string) bool {
	return s == BillStatusPending || s == BillStatusPaid || s == BillStatusOverdue
}

type CreateBillRequest struct {
	DueDate string `json:"due_date" validate:"required,datetime=2006-01-02"`
	Penalty string `json:"penalty"`
	Note    string `json:"note"`
}

type UpdateBillStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid overdue"`
}

type BillListResponse struct {
	LoanID uuid.UUID `json:"loan_id"`
	Bills  []*Bill   `json:"bills"`
}
