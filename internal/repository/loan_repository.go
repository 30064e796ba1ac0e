package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/andrifs/solutions-engine/internal/domain"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (id, borrower_name, amount, interest_rate, interest_type, compounding_frequency,
			start_date, end_date, status, total_interest, total_balance, paid_amount,
			installment_frequency, installment_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.BorrowerName,
		loan.Amount,
		loan.InterestRate,
		loan.InterestType,
		loan.CompoundingFrequency,
		loan.StartDate,
		loan.EndDate,
		loan.Status,
		loan.TotalInterest,
		loan.TotalBalance,
		loan.PaidAmount,
		loan.InstallmentFrequency,
		loan.InstallmentAmount,
		loan.CreatedAt,
		loan.UpdatedAt,
	)

	return err
}

func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	query := `
		SELECT id, borrower_name, amount, interest_rate, interest_type, compounding_frequency,
			start_date, end_date, status, total_interest, total_balance, paid_amount,
			installment_frequency, installment_amount, created_at, updated_at
		FROM loans
		WHERE id = $1
	`

	var loan domain.Loan
	if err := r.db.GetContext(ctx, &loan, query, id); err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) List(ctx context.Context) ([]*domain.Loan, error) {
	query := `
		SELECT id, borrower_name, amount, interest_rate, interest_type, compounding_frequency,
			start_date, end_date, status, total_interest, total_balance, paid_amount,
			installment_frequency, installment_amount, created_at, updated_at
		FROM loans
		ORDER BY created_at DESC
	`

	var loans []*domain.Loan
	if err := r.db.SelectContext(ctx, &loans, query); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	query := `
		UPDATE loans
		SET borrower_name = $2, amount = $3, interest_rate = $4, interest_type = $5,
			compounding_frequency = $6, start_date = $7, end_date = $8, status = $9,
			total_interest = $10, total_balance = $11, paid_amount = $12,
			installment_frequency = $13, installment_amount = $14, updated_at = $15
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.BorrowerName,
		loan.Amount,
		loan.InterestRate,
		loan.InterestType,
		loan.CompoundingFrequency,
		loan.StartDate,
		loan.EndDate,
		loan.Status,
		loan.TotalInterest,
		loan.TotalBalance,
		loan.PaidAmount,
		loan.InstallmentFrequency,
		loan.InstallmentAmount,
		time.Now(),
	)

	return err
}

func (r *loanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bills WHERE loan_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE loan_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM loans WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}
