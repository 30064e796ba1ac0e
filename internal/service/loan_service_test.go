package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andrifs/solutions-engine/internal/domain"
	"github.com/andrifs/solutions-engine/tests/mocks"
)

func newLoanService(loanRepo *mocks.MockLoanRepository, paymentRepo *mocks.MockPaymentRepository) *LoanService {
	return NewLoanService(loanRepo, paymentRepo, nil, nil, zap.NewNop())
}

func TestCreateLoan(t *testing.T) {
	durationDays := 90

	tests := []struct {
		name           string
		request        *domain.CreateLoanRequest
		setupMocks     func(*mocks.MockLoanRepository)
		expectedError  bool
		errorContains  string
		validateResult func(*testing.T, *domain.Loan)
	}{
		{
			name: "fixed interest with explicit dates and installments",
			request: &domain.CreateLoanRequest{
				BorrowerName:         "Acme Trading",
				Amount:               decimal.NewFromInt(1000),
				InterestRate:         decimal.NewFromInt(10),
				InterestType:         "fixed",
				StartDate:            "2024-01-01",
				EndDate:              "2024-12-31",
				InstallmentFrequency: "monthly",
			},
			setupMocks: func(loanRepo *mocks.MockLoanRepository) {
				loanRepo.On("Create", mock.Anything, mock.MatchedBy(func(loan *domain.Loan) bool {
					return loan.BorrowerName == "Acme Trading"
				})).Return(nil)
			},
			validateResult: func(t *testing.T, loan *domain.Loan) {
				// 365-day term at 10% simple interest
				assert.True(t, loan.TotalInterest.Equal(decimal.NewFromInt(100)))
				assert.True(t, loan.TotalBalance.Equal(decimal.NewFromInt(1100)))
				assert.Equal(t, domain.LoanStatusActive, loan.Status)
				require.NotNil(t, loan.InstallmentAmount)
				// ceil(365/30) = 13 installments
				assert.True(t, loan.InstallmentAmount.Equal(decimal.NewFromFloat(84.62)),
					"got %v", loan.InstallmentAmount)
			},
		},
		{
			name: "named duration resolves to concrete dates",
			request: &domain.CreateLoanRequest{
				BorrowerName: "Beta Corp",
				Amount:       decimal.NewFromInt(500),
				InterestRate: decimal.NewFromInt(5),
				InterestType: "fixed",
				DurationDays: &durationDays,
			},
			setupMocks: func(loanRepo *mocks.MockLoanRepository) {
				loanRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			validateResult: func(t *testing.T, loan *domain.Loan) {
				assert.Equal(t, "3 Months", loan.DurationLabel())
				assert.Nil(t, loan.InstallmentAmount)
			},
		},
		{
			name: "end date before start date",
			request: &domain.CreateLoanRequest{
				BorrowerName: "Acme Trading",
				Amount:       decimal.NewFromInt(1000),
				InterestRate: decimal.NewFromInt(10),
				InterestType: "fixed",
				StartDate:    "2024-06-01",
				EndDate:      "2024-01-01",
			},
			setupMocks:    func(loanRepo *mocks.MockLoanRepository) {},
			expectedError: true,
			errorContains: "INVALID_DATE_RANGE",
		},
		{
			name: "database error on create",
			request: &domain.CreateLoanRequest{
				BorrowerName: "Acme Trading",
				Amount:       decimal.NewFromInt(1000),
				InterestRate: decimal.NewFromInt(10),
				InterestType: "fixed",
				StartDate:    "2024-01-01",
				EndDate:      "2024-06-01",
			},
			setupMocks: func(loanRepo *mocks.MockLoanRepository) {
				loanRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))
			},
			expectedError: true,
			errorContains: "DATABASE_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loanRepo := &mocks.MockLoanRepository{}
			paymentRepo := &mocks.MockPaymentRepository{}
			tt.setupMocks(loanRepo)

			svc := newLoanService(loanRepo, paymentRepo)

			loan, err := svc.CreateLoan(context.Background(), tt.request)

			if tt.expectedError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Nil(t, loan)
			} else {
				require.NoError(t, err)
				require.NotNil(t, loan)
				tt.validateResult(t, loan)
			}

			loanRepo.AssertExpectations(t)
		})
	}
}

func TestMakePayment(t *testing.T) {
	loanID := uuid.New()

	activeLoan := func() *domain.Loan {
		return &domain.Loan{
			ID:           loanID,
			Status:       domain.LoanStatusActive,
			TotalBalance: decimal.NewFromInt(1000),
			PaidAmount:   decimal.NewFromInt(400),
		}
	}

	tests := []struct {
		name           string
		amount         decimal.Decimal
		expectedStatus string
		expectedPaid   decimal.Decimal
	}{
		{
			name:           "partial payment keeps loan active",
			amount:         decimal.NewFromInt(100),
			expectedStatus: domain.LoanStatusActive,
			expectedPaid:   decimal.NewFromInt(500),
		},
		{
			name:           "covering payment flips loan to paid",
			amount:         decimal.NewFromInt(600),
			expectedStatus: domain.LoanStatusPaid,
			expectedPaid:   decimal.NewFromInt(1000),
		},
		{
			name:           "overpayment clamps paid amount at the balance",
			amount:         decimal.NewFromInt(900),
			expectedStatus: domain.LoanStatusPaid,
			expectedPaid:   decimal.NewFromInt(1000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loanRepo := &mocks.MockLoanRepository{}
			paymentRepo := &mocks.MockPaymentRepository{}

			loanRepo.On("GetByID", mock.Anything, loanID).Return(activeLoan(), nil)
			paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
				return p.LoanID == loanID && p.Amount.Equal(tt.amount)
			})).Return(nil)
			loanRepo.On("Update", mock.Anything, mock.MatchedBy(func(l *domain.Loan) bool {
				return l.Status == tt.expectedStatus && l.PaidAmount.Equal(tt.expectedPaid)
			})).Return(nil)

			svc := newLoanService(loanRepo, paymentRepo)

			result, err := svc.MakePayment(context.Background(), loanID, &domain.MakePaymentRequest{
				Amount:      tt.amount,
				PaymentDate: "2024-05-01",
			})

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, result.LoanStatus)
			assert.True(t, result.PaidAmount.Equal(tt.expectedPaid))
			assert.True(t, result.PaidAmount.LessThanOrEqual(decimal.NewFromInt(1000)))

			loanRepo.AssertExpectations(t)
			paymentRepo.AssertExpectations(t)
		})
	}
}

func TestMakePaymentLoanNotFound(t *testing.T) {
	loanRepo := &mocks.MockLoanRepository{}
	paymentRepo := &mocks.MockPaymentRepository{}

	loanRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)

	svc := newLoanService(loanRepo, paymentRepo)

	_, err := svc.MakePayment(context.Background(), uuid.New(), &domain.MakePaymentRequest{
		Amount: decimal.NewFromInt(100),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOAN_NOT_FOUND")
}

func TestMakePaymentInvalidDate(t *testing.T) {
	loanID := uuid.New()

	loanRepo := &mocks.MockLoanRepository{}
	paymentRepo := &mocks.MockPaymentRepository{}

	loanRepo.On("GetByID", mock.Anything, loanID).Return(&domain.Loan{
		ID:           loanID,
		Status:       domain.LoanStatusActive,
		TotalBalance: decimal.NewFromInt(1000),
	}, nil)

	svc := newLoanService(loanRepo, paymentRepo)

	_, err := svc.MakePayment(context.Background(), loanID, &domain.MakePaymentRequest{
		Amount:      decimal.NewFromInt(100),
		PaymentDate: "2024-13-40",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `Date "2024-13-40" is not a valid`)
}

func TestDeletePayment(t *testing.T) {
	loanID := uuid.New()
	paymentID := uuid.New()

	t.Run("payment of another loan is treated as missing", func(t *testing.T) {
		loanRepo := &mocks.MockLoanRepository{}
		paymentRepo := &mocks.MockPaymentRepository{}

		loanRepo.On("GetByID", mock.Anything, loanID).Return(&domain.Loan{ID: loanID}, nil)
		paymentRepo.On("GetByID", mock.Anything, paymentID).Return(&domain.Payment{
			ID:     paymentID,
			LoanID: uuid.New(),
		}, nil)

		svc := newLoanService(loanRepo, paymentRepo)

		err := svc.DeletePayment(context.Background(), loanID, paymentID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PAYMENT_NOT_FOUND")
	})

	t.Run("remaining payments above the balance stay clamped", func(t *testing.T) {
		loanRepo := &mocks.MockLoanRepository{}
		paymentRepo := &mocks.MockPaymentRepository{}

		loanRepo.On("GetByID", mock.Anything, loanID).Return(&domain.Loan{
			ID:           loanID,
			Status:       domain.LoanStatusPaid,
			TotalBalance: decimal.NewFromInt(1000),
			PaidAmount:   decimal.NewFromInt(1000),
		}, nil)
		paymentRepo.On("GetByID", mock.Anything, paymentID).Return(&domain.Payment{
			ID:     paymentID,
			LoanID: loanID,
			Amount: decimal.NewFromInt(100),
		}, nil)
		paymentRepo.On("Delete", mock.Anything, paymentID).Return(nil)
		paymentRepo.On("TotalPaid", mock.Anything, loanID).Return(decimal.NewFromInt(1100), nil)
		loanRepo.On("Update", mock.Anything, mock.MatchedBy(func(l *domain.Loan) bool {
			return l.Status == domain.LoanStatusPaid && l.PaidAmount.Equal(decimal.NewFromInt(1000))
		})).Return(nil)

		svc := newLoanService(loanRepo, paymentRepo)

		err := svc.DeletePayment(context.Background(), loanID, paymentID)
		require.NoError(t, err)

		loanRepo.AssertExpectations(t)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("deleting the covering payment reopens the loan", func(t *testing.T) {
		loanRepo := &mocks.MockLoanRepository{}
		paymentRepo := &mocks.MockPaymentRepository{}

		loanRepo.On("GetByID", mock.Anything, loanID).Return(&domain.Loan{
			ID:           loanID,
			Status:       domain.LoanStatusPaid,
			TotalBalance: decimal.NewFromInt(1000),
			PaidAmount:   decimal.NewFromInt(1000),
		}, nil)
		paymentRepo.On("GetByID", mock.Anything, paymentID).Return(&domain.Payment{
			ID:     paymentID,
			LoanID: loanID,
			Amount: decimal.NewFromInt(600),
		}, nil)
		paymentRepo.On("Delete", mock.Anything, paymentID).Return(nil)
		paymentRepo.On("TotalPaid", mock.Anything, loanID).Return(decimal.NewFromInt(400), nil)
		loanRepo.On("Update", mock.Anything, mock.MatchedBy(func(l *domain.Loan) bool {
			return l.Status == domain.LoanStatusActive && l.PaidAmount.Equal(decimal.NewFromInt(400))
		})).Return(nil)

		svc := newLoanService(loanRepo, paymentRepo)

		err := svc.DeletePayment(context.Background(), loanID, paymentID)
		require.NoError(t, err)

		loanRepo.AssertExpectations(t)
		paymentRepo.AssertExpectations(t)
	})
}

func TestScore(t *testing.T) {
	loanID := uuid.New()

	tests := []struct {
		name          string
		loan          *domain.Loan
		expectedScore int
		expectedLabel string
	}{
		{
			name: "fully repaid loan",
			loan: &domain.Loan{
				ID:           loanID,
				Status:       domain.LoanStatusPaid,
				TotalBalance: decimal.NewFromInt(100),
				PaidAmount:   decimal.NewFromInt(100),
			},
			expectedScore: 850,
			expectedLabel: "Excellent",
		},
		{
			name: "defaulted loan",
			loan: &domain.Loan{
				ID:           loanID,
				Status:       domain.LoanStatusDefaulted,
				TotalBalance: decimal.NewFromInt(100),
				PaidAmount:   decimal.Zero,
			},
			expectedScore: 350,
			expectedLabel: "Poor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loanRepo := &mocks.MockLoanRepository{}
			paymentRepo := &mocks.MockPaymentRepository{}

			loanRepo.On("GetByID", mock.Anything, loanID).Return(tt.loan, nil)
			paymentRepo.On("GetByLoanID", mock.Anything, loanID).Return([]*domain.Payment{}, nil)

			svc := newLoanService(loanRepo, paymentRepo)

			result, err := svc.Score(context.Background(), loanID)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedScore, result.Result.Score)
			assert.Equal(t, tt.expectedLabel, result.Result.Label)
		})
	}
}
