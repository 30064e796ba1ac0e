package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andrifs/solutions-engine/internal/domain"
	"github.com/andrifs/solutions-engine/internal/repository"
	customError "github.com/andrifs/solutions-engine/pkg/errors"
	"github.com/andrifs/solutions-engine/pkg/finance"
)

// BillingService generates bills from a loan's current balance or
// installment amount and manages their status lifecycle.
type BillingService struct {
	LoanRepo repository.LoanRepository
	BillRepo repository.BillRepository
	logger   *zap.Logger
}

func NewBillingService(
	loanRepo repository.LoanRepository,
	billRepo repository.BillRepository,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		LoanRepo: loanRepo,
		BillRepo: billRepo,
		logger:   logger,
	}
}

// CreateBill issues the next bill for a loan. The demand is the loan's
// installment amount when installments are configured, else the remaining
// balance; the penalty is free-form client input and defaults to zero.
// Principal and interest are copied from the parent loan as-is.
func (s *BillingService) CreateBill(ctx context.Context, loanID uuid.UUID, request *domain.CreateBillRequest) (*domain.Bill, error) {
	loan, err := s.LoanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(loanID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	dueDate, err := time.Parse(dateLayout, request.DueDate)
	if err != nil {
		return nil, customError.WrapInvalidDate(request.DueDate)
	}

	base := finance.BillBase(loan.InstallmentAmount, loan.TotalBalance, loan.PaidAmount).Round(2)
	totalAmount, totalAmountDue := finance.BillTotals(base, request.Penalty)

	number, err := s.BillRepo.NextBillNumber(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	now := time.Now()
	bill := &domain.Bill{
		ID:             uuid.New(),
		LoanID:         loanID,
		BillNumber:     number,
		DueDate:        dueDate,
		Principal:      loan.Amount,
		Interest:       loan.TotalInterest,
		TotalAmount:    totalAmount,
		PenaltyAmount:  totalAmountDue.Sub(totalAmount),
		TotalAmountDue: totalAmountDue,
		Status:         domain.BillStatusPending,
		Note:           request.Note,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.BillRepo.Create(ctx, bill); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.logger.Info("bill created",
		zap.String("loan_id", loanID.String()),
		zap.Int("bill_number", bill.BillNumber),
		zap.String("total_amount_due", bill.TotalAmountDue.String()),
	)

	return bill, nil
}

// ListBills retrieves a loan's bills in bill-number order.
func (s *BillingService) ListBills(ctx context.Context, loanID uuid.UUID) ([]*domain.Bill, error) {
	if _, err := s.LoanRepo.GetByID(ctx, loanID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(loanID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	bills, err := s.BillRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return bills, nil
}

// UpdateBillStatus sets a bill's status. Any transition between valid
// statuses is allowed.
func (s *BillingService) UpdateBillStatus(ctx context.Context, billID uuid.UUID, status string) (*domain.Bill, error) {
	if !domain.ValidBillStatus(status) {
		return nil, customError.WrapInvalidStatus(status)
	}

	bill, err := s.BillRepo.GetByID(ctx, billID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapBillNotFound(billID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if err := s.BillRepo.UpdateStatus(ctx, billID, status); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	bill.Status = status
	bill.UpdatedAt = time.Now()
	return bill, nil
}

// DeleteBill removes a bill.
func (s *BillingService) DeleteBill(ctx context.Context, billID uuid.UUID) error {
	if _, err := s.BillRepo.GetByID(ctx, billID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapBillNotFound(billID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	if err := s.BillRepo.Delete(ctx, billID); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}

// MarkOverdueBills flips every pending bill past its due date to overdue.
// The scheduler runs this daily.
func (s *BillingService) MarkOverdueBills(ctx context.Context) (int64, error) {
	count, err := s.BillRepo.MarkOverdue(ctx, time.Now())
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	if count > 0 {
		s.logger.Info("bills marked overdue", zap.Int64("count", count))
	}

	return count, nil
}

// BillsDueSoon lists pending bills due within the horizon, for reminders.
func (s *BillingService) BillsDueSoon(ctx context.Context, horizon time.Duration) ([]*domain.Bill, error) {
	now := time.Now()
	bills, err := s.BillRepo.ListDueWithin(ctx, now, now.Add(horizon))
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return bills, nil
}
