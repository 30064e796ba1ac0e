package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/andrifs/solutions-engine/internal/domain"
)

type billRepository struct {
	db *sqlx.DB
}

func NewBillRepository(db *sqlx.DB) BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *domain.Bill) error {
	query := `
		INSERT INTO bills (id, loan_id, bill_number, due_date, principal, interest,
			total_amount, penalty_amount, total_amount_due, status, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		bill.ID,
		bill.LoanID,
		bill.BillNumber,
		bill.DueDate,
		bill.Principal,
		bill.Interest,
		bill.TotalAmount,
		bill.PenaltyAmount,
		bill.TotalAmountDue,
		bill.Status,
		bill.Note,
		bill.CreatedAt,
		bill.UpdatedAt,
	)

	return err
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error) {
	query := `
		SELECT id, loan_id, bill_number, due_date, principal, interest,
			total_amount, penalty_amount, total_amount_due, status, note, created_at, updated_at
		FROM bills
		WHERE id = $1
	`

	var bill domain.Bill
	if err := r.db.GetContext(ctx, &bill, query, id); err != nil {
		return nil, err
	}

	return &bill, nil
}

func (r *billRepository) GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.Bill, error) {
	query := `
		SELECT id, loan_id, bill_number, due_date, principal, interest,
			total_amount, penalty_amount, total_amount_due, status, note, created_at, updated_at
		FROM bills
		WHERE loan_id = $1
		ORDER BY bill_number
	`

	var bills []*domain.Bill
	if err := r.db.SelectContext(ctx, &bills, query, loanID); err != nil {
		return nil, err
	}

	return bills, nil
}

func (r *billRepository) NextBillNumber(ctx context.Context, loanID uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(MAX(bill_number), 0) + 1
		FROM bills
		WHERE loan_id = $1
	`

	var next int
	if err := r.db.GetContext(ctx, &next, query, loanID); err != nil {
		return 0, err
	}

	return next, nil
}

func (r *billRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE bills
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	return err
}

func (r *billRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bills WHERE id = $1`, id)
	return err
}

func (r *billRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	query := `
		UPDATE bills
		SET status = $1, updated_at = $2
		WHERE status = $3 AND due_date < $4
	`

	result, err := r.db.ExecContext(ctx, query,
		domain.BillStatusOverdue, time.Now(), domain.BillStatusPending, asOf)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *billRepository) ListDueWithin(ctx context.Context, from, to time.Time) ([]*domain.Bill, error) {
	query := `
		SELECT id, loan_id, bill_number, due_date, principal, interest,
			total_amount, penalty_amount, total_amount_due, status, note, created_at, updated_at
		FROM bills
		WHERE status = $1 AND due_date BETWEEN $2 AND $3
		ORDER BY due_date
	`

	var bills []*domain.Bill
	if err := r.db.SelectContext(ctx, &bills, query, domain.BillStatusPending, from, to); err != nil {
		return nil, err
	}

	return bills, nil
}
