package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andrifs/solutions-engine/internal/domain"
	"github.com/andrifs/solutions-engine/tests/mocks"
)

func newBillingService(loanRepo *mocks.MockLoanRepository, billRepo *mocks.MockBillRepository) *BillingService {
	return NewBillingService(loanRepo, billRepo, zap.NewNop())
}

func TestCreateBill(t *testing.T) {
	loanID := uuid.New()
	installment := decimal.NewFromFloat(84.62)

	tests := []struct {
		name        string
		loan        *domain.Loan
		request     *domain.CreateBillRequest
		nextNumber  int
		expectTotal decimal.Decimal
		expectDue   decimal.Decimal
	}{
		{
			name: "installment loan bills the installment amount",
			loan: &domain.Loan{
				ID:                loanID,
				Amount:            decimal.NewFromInt(1000),
				TotalInterest:     decimal.NewFromInt(100),
				TotalBalance:      decimal.NewFromInt(1100),
				PaidAmount:        decimal.NewFromInt(200),
				InstallmentAmount: &installment,
			},
			request:     &domain.CreateBillRequest{DueDate: "2024-07-01"},
			nextNumber:  3,
			expectTotal: decimal.NewFromFloat(84.62),
			expectDue:   decimal.NewFromFloat(84.62),
		},
		{
			name: "no installments bills the remaining balance",
			loan: &domain.Loan{
				ID:            loanID,
				Amount:        decimal.NewFromInt(1000),
				TotalInterest: decimal.NewFromInt(100),
				TotalBalance:  decimal.NewFromInt(1100),
				PaidAmount:    decimal.NewFromInt(300),
			},
			request:     &domain.CreateBillRequest{DueDate: "2024-07-01"},
			nextNumber:  1,
			expectTotal: decimal.NewFromInt(800),
			expectDue:   decimal.NewFromInt(800),
		},
		{
			name: "numeric penalty is added to the amount due only",
			loan: &domain.Loan{
				ID:            loanID,
				Amount:        decimal.NewFromInt(1000),
				TotalInterest: decimal.NewFromInt(100),
				TotalBalance:  decimal.NewFromInt(1100),
				PaidAmount:    decimal.Zero,
			},
			request:     &domain.CreateBillRequest{DueDate: "2024-07-01", Penalty: "50"},
			nextNumber:  2,
			expectTotal: decimal.NewFromInt(1100),
			expectDue:   decimal.NewFromInt(1150),
		},
		{
			name: "unparsable penalty counts as zero",
			loan: &domain.Loan{
				ID:            loanID,
				Amount:        decimal.NewFromInt(1000),
				TotalInterest: decimal.NewFromInt(100),
				TotalBalance:  decimal.NewFromInt(1100),
				PaidAmount:    decimal.Zero,
			},
			request:     &domain.CreateBillRequest{DueDate: "2024-07-01", Penalty: "waived"},
			nextNumber:  2,
			expectTotal: decimal.NewFromInt(1100),
			expectDue:   decimal.NewFromInt(1100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loanRepo := &mocks.MockLoanRepository{}
			billRepo := &mocks.MockBillRepository{}

			loanRepo.On("GetByID", mock.Anything, loanID).Return(tt.loan, nil)
			billRepo.On("NextBillNumber", mock.Anything, loanID).Return(tt.nextNumber, nil)
			billRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

			svc := newBillingService(loanRepo, billRepo)

			bill, err := svc.CreateBill(context.Background(), loanID, tt.request)

			require.NoError(t, err)
			assert.Equal(t, tt.nextNumber, bill.BillNumber)
			assert.True(t, bill.TotalAmount.Equal(tt.expectTotal), "total %v", bill.TotalAmount)
			assert.True(t, bill.TotalAmountDue.Equal(tt.expectDue), "due %v", bill.TotalAmountDue)
			assert.True(t, bill.Principal.Equal(tt.loan.Amount))
			assert.True(t, bill.Interest.Equal(tt.loan.TotalInterest))
			assert.Equal(t, domain.BillStatusPending, bill.Status)

			loanRepo.AssertExpectations(t)
			billRepo.AssertExpectations(t)
		})
	}
}

func TestCreateBillLoanNotFound(t *testing.T) {
	loanRepo := &mocks.MockLoanRepository{}
	billRepo := &mocks.MockBillRepository{}

	loanRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)

	svc := newBillingService(loanRepo, billRepo)

	_, err := svc.CreateBill(context.Background(), uuid.New(), &domain.CreateBillRequest{DueDate: "2024-07-01"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOAN_NOT_FOUND")
}

func TestCreateBillInvalidDueDate(t *testing.T) {
	loanID := uuid.New()

	loanRepo := &mocks.MockLoanRepository{}
	billRepo := &mocks.MockBillRepository{}

	loanRepo.On("GetByID", mock.Anything, loanID).Return(&domain.Loan{
		ID:           loanID,
		TotalBalance: decimal.NewFromInt(1000),
	}, nil)

	svc := newBillingService(loanRepo, billRepo)

	_, err := svc.CreateBill(context.Background(), loanID, &domain.CreateBillRequest{DueDate: "not-a-date"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `Date "not-a-date" is not a valid`)
}

func TestUpdateBillStatus(t *testing.T) {
	billID := uuid.New()

	t.Run("any transition between valid statuses is allowed", func(t *testing.T) {
		transitions := []struct{ from, to string }{
			{domain.BillStatusPending, domain.BillStatusPaid},
			{domain.BillStatusPaid, domain.BillStatusPending},
			{domain.BillStatusOverdue, domain.BillStatusPaid},
			{domain.BillStatusPaid, domain.BillStatusOverdue},
		}

		stale := time.Now().Add(-24 * time.Hour)

		for _, tr := range transitions {
			loanRepo := &mocks.MockLoanRepository{}
			billRepo := &mocks.MockBillRepository{}

			billRepo.On("GetByID", mock.Anything, billID).Return(&domain.Bill{
				ID:        billID,
				Status:    tr.from,
				UpdatedAt: stale,
			}, nil)
			billRepo.On("UpdateStatus", mock.Anything, billID, tr.to).Return(nil)

			svc := newBillingService(loanRepo, billRepo)

			bill, err := svc.UpdateBillStatus(context.Background(), billID, tr.to)
			require.NoError(t, err, "%s -> %s", tr.from, tr.to)
			assert.Equal(t, tr.to, bill.Status)
			assert.True(t, bill.UpdatedAt.After(stale))
		}
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		svc := newBillingService(&mocks.MockLoanRepository{}, &mocks.MockBillRepository{})

		_, err := svc.UpdateBillStatus(context.Background(), billID, "archived")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "INVALID_STATUS")
	})

	t.Run("missing bill", func(t *testing.T) {
		loanRepo := &mocks.MockLoanRepository{}
		billRepo := &mocks.MockBillRepository{}
		billRepo.On("GetByID", mock.Anything, billID).Return(nil, sql.ErrNoRows)

		svc := newBillingService(loanRepo, billRepo)

		_, err := svc.UpdateBillStatus(context.Background(), billID, domain.BillStatusPaid)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BILL_NOT_FOUND")
	})
}

func TestMarkOverdueBills(t *testing.T) {
	loanRepo := &mocks.MockLoanRepository{}
	billRepo := &mocks.MockBillRepository{}

	billRepo.On("MarkOverdue", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(3), nil)

	svc := newBillingService(loanRepo, billRepo)

	count, err := svc.MarkOverdueBills(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	billRepo.AssertExpectations(t)
}

func TestBillsDueSoon(t *testing.T) {
	loanRepo := &mocks.MockLoanRepository{}
	billRepo := &mocks.MockBillRepository{}

	due := []*domain.Bill{{ID: uuid.New(), Status: domain.BillStatusPending}}
	billRepo.On("ListDueWithin", mock.Anything, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(due, nil)

	svc := newBillingService(loanRepo, billRepo)

	bills, err := svc.BillsDueSoon(context.Background(), 7*24*time.Hour)

	require.NoError(t, err)
	assert.Len(t, bills, 1)
}
